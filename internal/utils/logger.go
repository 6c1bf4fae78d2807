package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

const colorReset = "\033[0m"

var levelStyles = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

var (
	// DebugMode is set by -debug. Programs also start with the debug
	// overlay shown when it is on.
	DebugMode    bool
	CurrentLevel LogLevel = LevelWarn

	logger = log.New(os.Stderr, "", log.LstdFlags)
)

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelStyles[l].name
}

// ParseLogLevel accepts the names printed by LogLevel.String, in any case.
func ParseLogLevel(s string) (LogLevel, error) {
	for l := LevelDebug; l <= LevelError; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// Configure applies the -log-level and -debug flags. debug wins over the
// named level.
func Configure(level string, debug bool) error {
	l, err := ParseLogLevel(level)
	if err != nil {
		return err
	}
	DebugMode = debug
	CurrentLevel = l
	if debug {
		CurrentLevel = LevelDebug
	}
	return nil
}

// SetLogOutput redirects every message, e.g. into a buffer in tests.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	style := levelStyles[level]
	logger.Printf(style.color+"["+style.name+"]"+colorReset+" "+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

const raylibTag = "\033[35m[RAYLIB]" + colorReset + " "

// raylibLevels maps raylib's TraceLogLevel values, LOG_TRACE (1) to
// LOG_FATAL (6).
var raylibLevels = map[int]LogLevel{
	1: LevelDebug,
	2: LevelDebug,
	3: LevelInfo,
	4: LevelWarn,
	5: LevelError,
	6: LevelError,
}

// RaylibLogCallback forwards raylib's trace log into the levelled logger.
// Shader compile errors and texture loads show up here.
func RaylibLogCallback(level int, text string) {
	l, ok := raylibLevels[level]
	if !ok {
		return
	}
	logMessage(l, "%s", raylibTag+text)
}
