package ebiten2D

import (
	"mode7/internal/mode7"

	"github.com/hajimehoshi/ebiten/v2"
)

var KeyBindings = map[mode7.Action][]ebiten.Key{
	mode7.ActionLeft:       {ebiten.KeyA},
	mode7.ActionRight:      {ebiten.KeyD},
	mode7.ActionForward:    {ebiten.KeyW},
	mode7.ActionBackward:   {ebiten.KeyS},
	mode7.ActionTurnLeft:   {ebiten.KeyArrowLeft, ebiten.KeyQ},
	mode7.ActionTurnRight:  {ebiten.KeyArrowRight, ebiten.KeyE},
	mode7.ActionZoomIn:     {ebiten.KeyArrowUp},
	mode7.ActionZoomOut:    {ebiten.KeyArrowDown},
	mode7.ActionOffsetUp:   {ebiten.KeyPageUp},
	mode7.ActionOffsetDown: {ebiten.KeyPageDown},
}

// Input reads ebiten's keyboard and mouse state. ebiten calls Update at a
// fixed rate, so the frame time is one tick.
type Input struct{}

func (Input) FrameTime() float32 { return 1 / float32(ebiten.TPS()) }

func (Input) Wheel() float32 {
	_, dy := ebiten.Wheel()
	return float32(dy)
}

func (Input) Held(a mode7.Action) bool {
	for _, key := range KeyBindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// Pointer returns the cursor in layout pixels.
func (Input) Pointer() mode7.Vec2 {
	x, y := ebiten.CursorPosition()
	return mode7.Vec2{X: float32(x), Y: float32(y)}
}

func (Input) Grabbing() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
