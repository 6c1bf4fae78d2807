package mode7

import (
	"errors"
	"fmt"
	"image/color"

	"mode7/internal/utils"
)

// ErrFrameState is returned when a frame operation is called out of order.
var ErrFrameState = errors.New("mode7: invalid camera frame state")

type cameraState int

const (
	stateUnloaded cameraState = iota
	stateLoaded
	stateInFrame
)

// Options holds the initial camera parameters.
type Options struct {
	Width, Height int
	Position      Vec2
	Rotation      float32
	Zoom          float32
	FOV           float32
	Offset        float32
	MaxElements   int
}

// Camera owns the render target, the plane program and the element buffer,
// and is the only entry point for drawing a Mode 7 scene.
//
// Every setter pushes its value to the plane program immediately, so a
// parameter changed between two DrawPlane calls applies to the second one.
type Camera struct {
	device  Device
	target  Target
	program Program
	buffer  *Buffer
	proj    Projection
	state   cameraState
}

// Load allocates the camera's GPU resources and applies opts.
func Load(device Device, opts Options) (*Camera, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("mode7: invalid surface size %dx%d", opts.Width, opts.Height)
	}

	program, err := device.LoadPlaneProgram()
	if err != nil {
		return nil, fmt.Errorf("mode7: load plane program: %w", err)
	}

	target, err := device.LoadTarget(opts.Width, opts.Height)
	if err != nil {
		program.Unload()
		return nil, fmt.Errorf("mode7: load render target: %w", err)
	}

	c := &Camera{
		device:  device,
		target:  target,
		program: program,
		buffer:  NewBuffer(opts.MaxElements),
		proj:    NewProjection(target.Width(), target.Height()),
		state:   stateLoaded,
	}

	c.SetPosition(opts.Position)
	c.SetRotation(opts.Rotation)
	c.SetOffset(opts.Offset)
	c.SetZoom(opts.Zoom)
	c.SetFOV(opts.FOV)

	utils.Debug("Mode7: camera loaded (%dx%d, %d elements)", opts.Width, opts.Height, c.buffer.Cap())
	return c, nil
}

// Unload releases the target, the program and the buffer, unbinding the
// target first when called mid-frame. Calling it again does nothing.
func (c *Camera) Unload() {
	if c.state == stateUnloaded {
		return
	}
	if c.state == stateInFrame {
		c.target.End()
	}
	c.program.Unload()
	c.target.Unload()
	c.program = nil
	c.target = nil
	c.buffer = nil
	c.state = stateUnloaded
	utils.Debug("Mode7: camera unloaded")
}

// Begin binds the camera's target and clears it.
func (c *Camera) Begin(background color.RGBA) error {
	if c.state != stateLoaded {
		return ErrFrameState
	}
	c.target.Begin()
	c.target.Clear(background)
	c.state = stateInFrame
	return nil
}

// DrawPlane composites one plane into the target.
func (c *Camera) DrawPlane(plane Plane) error {
	if c.state != stateInFrame {
		return ErrFrameState
	}

	var wrap int32
	if plane.Wrap {
		wrap = 1
	}

	c.program.SetVec2(UniformMapSize, plane.MapSize())
	c.program.SetVec2(UniformCamPos, c.proj.position.Add(plane.Position).Add(plane.Origin))
	c.program.SetInt(UniformWrap, wrap)
	c.program.SetTexture(UniformMap, plane.Texture)

	c.device.DrawPlane(c.program, c.target)
	return nil
}

// End projects, sorts and draws every element, then unbinds the target.
func (c *Camera) End() error {
	if c.state != stateInFrame {
		return ErrFrameState
	}

	c.buffer.Update(&c.proj)
	c.buffer.Sort()
	c.buffer.Each(c.drawElement)

	c.target.End()
	c.state = stateLoaded
	return nil
}

// Update renders a frame with a single plane centered on position.
func (c *Camera) Update(texture Texture, position, scale Vec2, wrap bool, background color.RGBA) error {
	if err := c.Begin(background); err != nil {
		return err
	}
	plane := Plane{Texture: texture, Position: position, Scale: scale, Wrap: wrap}
	plane.Origin = plane.CenteredOrigin()
	if err := c.DrawPlane(plane); err != nil {
		return err
	}
	return c.End()
}

// Render blits the last finished frame to the active display surface.
func (c *Camera) Render() {
	if c.state == stateUnloaded {
		return
	}
	c.target.Present()
}

func (c *Camera) drawElement(e *Element) {
	switch s := e.Shape.(type) {
	case *Sprite:
		if e.Mirrored() {
			return
		}
		c.device.DrawTexture(s.Texture, s.Source, e.screen.Rect, e.Tint)
	case *Rectangle:
		c.device.DrawRectangle(e.screen.Rect, e.Tint)
	case *Circle:
		center := e.screen.Position
		center.Y -= e.screen.Rect.Width
		c.device.DrawCircle(center, e.screen.Rect.Width, e.Tint)
	default:
		panic(fmt.Sprintf("mode7: unknown shape %T", e.Shape))
	}
}

func (c *Camera) SetPosition(position Vec2) {
	// camPos is pushed per plane, as it includes the plane placement.
	c.proj.SetPosition(position)
}

func (c *Camera) SetRotation(rotation float32) {
	c.proj.SetRotation(rotation)
	if c.program != nil {
		c.program.SetMat2(UniformCamRot, c.proj.rotMat)
	}
}

func (c *Camera) SetZoom(zoom float32) {
	c.proj.SetZoom(zoom)
	if c.program != nil {
		c.program.SetFloat(UniformZoom, zoom)
	}
}

func (c *Camera) SetFOV(fov float32) {
	c.proj.SetFOV(fov)
	if c.program != nil {
		c.program.SetFloat(UniformFOV, fov)
	}
}

func (c *Camera) SetOffset(offset float32) {
	c.proj.SetOffset(offset)
	if c.program != nil {
		c.program.SetFloat(UniformOffset, offset)
	}
}

// Sync pushes every camera parameter to the plane program again.
func (c *Camera) Sync() {
	if c.program == nil {
		return
	}
	c.program.SetMat2(UniformCamRot, c.proj.rotMat)
	c.program.SetFloat(UniformZoom, c.proj.zoom)
	c.program.SetFloat(UniformFOV, c.proj.fov)
	c.program.SetFloat(UniformOffset, c.proj.offset)
}

func (c *Camera) Position() Vec2       { return c.proj.position }
func (c *Camera) Rotation() float32    { return c.proj.rotation }
func (c *Camera) RotationMatrix() Mat2 { return c.proj.rotMat }
func (c *Camera) Zoom() float32        { return c.proj.zoom }
func (c *Camera) FOV() float32         { return c.proj.fov }
func (c *Camera) Offset() float32      { return c.proj.offset }
func (c *Camera) Aspect() float32      { return c.proj.aspect }

// Projection returns a copy of the camera's current projection state.
func (c *Camera) Projection() Projection { return c.proj }

// Buffer exposes the element buffer, e.g. for debug overlays.
func (c *Camera) Buffer() *Buffer { return c.buffer }

func (c *Camera) Width() int  { return int(c.proj.width) }
func (c *Camera) Height() int { return int(c.proj.height) }

// ToScreen converts a world point to screen coordinates and apparent size.
func (c *Camera) ToScreen(point Vec2) (Vec2, float32) {
	return c.proj.ToScreen(point)
}

// ToWorld converts a screen point to world coordinates on the ground plane.
func (c *Camera) ToWorld(point Vec2) Vec2 {
	return c.proj.ToWorld(point)
}

// AddTexture registers a textured element.
func (c *Camera) AddTexture(texture Texture, source Rect, position, scale Vec2, tint color.RGBA) (*Element, error) {
	return c.add(Element{
		Position: position,
		Tint:     tint,
		Shape:    &Sprite{Texture: texture, Source: source, Scale: scale},
	})
}

// AddRectangle registers a flat rectangle whose corner sits at rect.X, rect.Y.
func (c *Camera) AddRectangle(rect Rect, tint color.RGBA) (*Element, error) {
	return c.add(Element{
		Position: Vec2{rect.X, rect.Y},
		Tint:     tint,
		Shape:    &Rectangle{Size: Vec2{rect.Width, rect.Height}},
	})
}

// AddCircle registers a circle standing on position.
func (c *Camera) AddCircle(position Vec2, radius float32, tint color.RGBA) (*Element, error) {
	return c.add(Element{
		Position: position,
		Tint:     tint,
		Shape:    &Circle{Radius: radius},
	})
}

func (c *Camera) add(e Element) (*Element, error) {
	if c.state == stateUnloaded {
		return nil, ErrFrameState
	}
	elem, err := c.buffer.Add(e)
	if errors.Is(err, ErrBufferFull) {
		utils.Debug("Mode7: buffer full (%d elements), dropping %T", c.buffer.Cap(), e.Shape)
	}
	return elem, err
}
