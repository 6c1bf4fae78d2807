package engine2D

import (
	"mode7/internal/mode7"
	"mode7/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBindings maps camera actions to raylib keys. Any bound key holds the
// action.
var KeyBindings = map[mode7.Action][]int32{
	mode7.ActionLeft:       {rl.KeyA},
	mode7.ActionRight:      {rl.KeyD},
	mode7.ActionForward:    {rl.KeyW},
	mode7.ActionBackward:   {rl.KeyS},
	mode7.ActionTurnLeft:   {rl.KeyLeft, rl.KeyQ},
	mode7.ActionTurnRight:  {rl.KeyRight, rl.KeyE},
	mode7.ActionZoomIn:     {rl.KeyUp},
	mode7.ActionZoomOut:    {rl.KeyDown},
	mode7.ActionOffsetUp:   {rl.KeyPageUp},
	mode7.ActionOffsetDown: {rl.KeyPageDown},
}

// Input reads the raylib keyboard and mouse state.
type Input struct {
	// Global reads the pointer from X11 instead of the window, so a camera
	// can be driven while another window has focus.
	Global bool
}

func (in *Input) FrameTime() float32 { return rl.GetFrameTime() }
func (in *Input) Wheel() float32     { return rl.GetMouseWheelMove() }

func (in *Input) Held(a mode7.Action) bool {
	for _, key := range KeyBindings[a] {
		if rl.IsKeyDown(key) {
			return true
		}
	}
	return false
}

// Pointer returns the pointer position in window pixels.
func (in *Input) Pointer() mode7.Vec2 {
	if in.Global && utils.XConn != nil {
		x, y, err := utils.GetGlobalMousePosition()
		if err == nil {
			win := rl.GetWindowPosition()
			return mode7.Vec2{X: float32(x) - win.X, Y: float32(y) - win.Y}
		}
		utils.Debug("X11 pointer query failed, using window pointer: %v", err)
	}
	p := rl.GetMousePosition()
	return mode7.Vec2{X: p.X, Y: p.Y}
}

// Grabbing reports whether the primary button is held.
func (in *Input) Grabbing() bool {
	if in.Global && utils.XConn != nil {
		if left, _, _, err := utils.GetGlobalButtons(); err == nil {
			return left
		}
	}
	return rl.IsMouseButtonDown(rl.MouseButtonLeft)
}
