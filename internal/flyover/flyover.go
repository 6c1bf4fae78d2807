// Package flyover plays scripted camera paths: a list of keyframes whose
// parameters are tweened one after the other.
package flyover

import (
	"fmt"
	"math"
	"sort"

	"mode7/internal/mode7"
	"mode7/internal/utils"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the part of mode7.Camera a flyover drives.
type Camera interface {
	Position() mode7.Vec2
	Rotation() float32
	Zoom() float32
	FOV() float32
	Offset() float32
	SetPosition(mode7.Vec2)
	SetRotation(float32)
	SetZoom(float32)
	SetFOV(float32)
	SetOffset(float32)
}

// Keyframe is a camera pose reached Duration seconds after the previous one.
type Keyframe struct {
	Position mode7.Vec2 `yaml:"position"`
	Rotation float32    `yaml:"rotation"`
	Zoom     float32    `yaml:"zoom"`
	FOV      float32    `yaml:"fov"`
	Offset   float32    `yaml:"offset"`
	Duration float32    `yaml:"duration"`
	Ease     string     `yaml:"ease"`
}

var easings = map[string]ease.TweenFunc{
	"":            ease.InOutSine,
	"linear":      ease.Linear,
	"in-out-sine": ease.InOutSine,
	"in-out-quad": ease.InOutQuad,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-back": ease.InOutBack,
}

// Easings lists the accepted Keyframe.Ease names.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func Validate(path []Keyframe) error {
	for i, k := range path {
		if _, ok := easings[k.Ease]; !ok {
			return fmt.Errorf("keyframe %d: unknown ease %q", i, k.Ease)
		}
		if k.Duration < 0 {
			return fmt.Errorf("keyframe %d: negative duration", i)
		}
		if k.Zoom <= 0 || k.FOV <= 0 {
			return fmt.Errorf("keyframe %d: zoom and fov must be positive", i)
		}
		if k.Offset < 0 || k.Offset > 1 {
			return fmt.Errorf("keyframe %d: offset %f out of [0, 1]", i, k.Offset)
		}
	}
	return nil
}

// segment tweens every camera parameter towards one keyframe.
type segment struct {
	x, y, rot, zoom, fov, offset *gween.Tween
}

// Player moves a camera along a keyframe path. Each segment starts from
// wherever the camera is when it begins, so a flyover can be started from
// any pose.
type Player struct {
	path    []Keyframe
	loop    bool
	index   int
	current *segment
	done    bool
}

func NewPlayer(path []Keyframe, loop bool) *Player {
	return &Player{path: path, loop: loop, done: len(path) == 0}
}

func (p *Player) Done() bool { return p.done }

func (p *Player) Reset() {
	p.index = 0
	p.current = nil
	p.done = len(p.path) == 0
}

func (p *Player) begin(cam Camera) {
	k := p.path[p.index]
	fn := easings[k.Ease]
	if fn == nil {
		fn = ease.InOutSine
	}
	d := k.Duration
	pos := cam.Position()

	// Turn the short way round.
	from := cam.Rotation()
	to := from + float32(math.Remainder(float64(k.Rotation-from), 2*math.Pi))

	p.current = &segment{
		x:      gween.New(pos.X, k.Position.X, d, fn),
		y:      gween.New(pos.Y, k.Position.Y, d, fn),
		rot:    gween.New(from, to, d, fn),
		zoom:   gween.New(cam.Zoom(), k.Zoom, d, fn),
		fov:    gween.New(cam.FOV(), k.FOV, d, fn),
		offset: gween.New(cam.Offset(), k.Offset, d, fn),
	}
	utils.Debug("Flyover: keyframe %d/%d (%.2fs)", p.index+1, len(p.path), d)
}

// Update advances the flyover by dt seconds and applies the result to cam.
// It returns true once the path is finished.
func (p *Player) Update(cam Camera, dt float32) bool {
	if p.done {
		return true
	}
	if p.current == nil {
		p.begin(cam)
	}

	s := p.current
	x, finished := s.x.Update(dt)
	y, _ := s.y.Update(dt)
	rot, _ := s.rot.Update(dt)
	zoom, _ := s.zoom.Update(dt)
	fov, _ := s.fov.Update(dt)
	offset, _ := s.offset.Update(dt)

	cam.SetPosition(mode7.Vec2{X: x, Y: y})
	cam.SetRotation(rot)
	cam.SetZoom(zoom)
	cam.SetFOV(fov)
	cam.SetOffset(offset)

	if !finished {
		return false
	}

	p.current = nil
	p.index++
	if p.index == len(p.path) {
		if !p.loop {
			p.done = true
			return true
		}
		p.index = 0
	}
	return false
}
