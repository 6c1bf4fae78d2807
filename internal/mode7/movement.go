package mode7

import "math"

// Action is a camera control bound to a key by the input backend.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionZoomIn
	ActionZoomOut
	ActionOffsetUp
	ActionOffsetDown
)

// Input is the host state Move reads once per frame.
type Input interface {
	FrameTime() float32
	Held(a Action) bool
	Wheel() float32
}

const minCameraScalar = 1e-3

// Translate moves the camera by (dx, dy) in camera space, so +dy always
// moves towards the horizon whatever the rotation.
func (c *Camera) Translate(dx, dy float32) {
	m := c.proj.rotMat
	c.SetPosition(c.proj.position.Add(Vec2{
		X: dx*m.M0 + dy*m.M1,
		Y: dx*m.M2 + dy*m.M3,
	}))
}

// Rotate turns the camera by delta radians.
func (c *Camera) Rotate(delta float32) {
	c.SetRotation(c.proj.rotation + delta)
}

// Move applies one frame of keyboard and wheel control: strafing at speed
// world units per second, turning at one radian per second, the wheel on
// fov, and zoom and offset on their own key pairs.
func (c *Camera) Move(speed float32, in Input) {
	dt := in.FrameTime()

	dx := axis(in, ActionLeft, ActionRight)
	dy := axis(in, ActionForward, ActionBackward)
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		c.Translate(dx/l*speed*dt, dy/l*speed*dt)
	}

	if turn := axis(in, ActionTurnRight, ActionTurnLeft); turn != 0 {
		c.Rotate(turn * dt)
	}

	if wheel := in.Wheel(); wheel != 0 {
		c.SetFOV(max(c.proj.fov-wheel*0.1, minCameraScalar))
	}

	if zoom := axis(in, ActionZoomOut, ActionZoomIn); zoom != 0 {
		c.SetZoom(max(c.proj.zoom+zoom*speed*dt, minCameraScalar))
	}

	if off := axis(in, ActionOffsetDown, ActionOffsetUp); off != 0 {
		c.SetOffset(min(max(c.proj.offset+off*dt, 0), 1))
	}
}

func axis(in Input, pos, neg Action) float32 {
	var v float32
	if in.Held(pos) {
		v++
	}
	if in.Held(neg) {
		v--
	}
	return v
}
