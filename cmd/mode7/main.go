package main

import (
	"flag"
	"os"
	"path/filepath"

	"mode7/internal/scene"
	"mode7/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML scene file (default: built-in demo)")
	assetsDir := flag.String("assets", "", "Extra directory searched for textures")
	pkgPath := flag.String("pack", "", "Path to a .pkg asset pack to extract and search for textures")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and start with the debug overlay")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	x11Pointer := flag.Bool("x11-pointer", false, "Read the pointer from X11 so grabbing keeps working outside the window")
	fps := flag.Int("fps", 0, "Target FPS (default: from the scene)")
	simple := flag.Bool("simple", false, "Draw a single ground plane with Camera.Update")
	flag.Parse()

	if err := utils.Configure(*logLevel, *debugFlag); err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}

	utils.Info("--- Mode 7 Demo Start ---")

	if err := run(*configPath, *assetsDir, *pkgPath, *fps, *simple, *x11Pointer); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

func run(configPath, assetsDir, pkgPath string, fps int, simple, x11Pointer bool) error {
	utils.AddAssetDir(assetsDir)
	if pkgPath != "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			cache = "tmp"
		}
		dir, err := scene.MountPack(pkgPath, filepath.Join(cache, "mode7"))
		if err != nil {
			return err
		}
		if configPath == "" {
			configPath = scene.FindSceneFile(dir)
		}
	}

	cfg, err := scene.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if fps > 0 {
		cfg.Window.FPS = fps
	}

	if x11Pointer {
		if err := utils.InitX11(); err != nil {
			utils.Warn("X11 pointer unavailable, using the window pointer: %v", err)
			x11Pointer = false
		} else {
			defer utils.CloseX11()
		}
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	window, err := NewWindow(cfg, x11Pointer)
	if err != nil {
		return err
	}
	defer window.Unload()

	window.scene.Simple = simple
	window.showDebug = utils.DebugMode

	utils.Info("Starting render loop...")
	window.Run()
	return nil
}
