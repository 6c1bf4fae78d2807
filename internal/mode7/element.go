package mode7

import "image/color"

// Shape is the closed set of drawable element kinds: *Sprite, *Rectangle
// and *Circle.
type Shape interface {
	// footprint returns the reference rectangle and world scale the
	// projection is applied to.
	footprint(position Vec2) (ref Rect, scale Vec2)
	shape()
}

// Sprite is a textured quad. Source is the texture region and Scale the
// size of the quad in world units.
type Sprite struct {
	Texture Texture
	Source  Rect
	Scale   Vec2
}

type Rectangle struct {
	Size Vec2
}

type Circle struct {
	Radius float32
}

func (s *Sprite) footprint(Vec2) (Rect, Vec2) { return s.Source, s.Scale }

func (r *Rectangle) footprint(position Vec2) (Rect, Vec2) {
	return Rect{X: position.X, Y: position.Y, Width: 1, Height: 1}, r.Size
}

func (c *Circle) footprint(position Vec2) (Rect, Vec2) {
	ref := Rect{X: position.X - c.Radius, Y: position.Y - c.Radius, Width: 1, Height: 1}
	return ref, Vec2{c.Radius, c.Radius}
}

func (*Sprite) shape()    {}
func (*Rectangle) shape() {}
func (*Circle) shape()    {}

// Element is one entry of the camera's buffer. Position, Tint and the
// fields of Shape may be changed between frames; screen data is recomputed
// by Buffer.Update and is stale until then.
type Element struct {
	Position Vec2
	Tint     color.RGBA
	Shape    Shape

	screen   Placement
	distance float32
}

// Screen returns the placement computed by the last update.
func (e *Element) Screen() Placement { return e.screen }

// Distance is the apparent size computed by the last update. It grows as
// the element gets closer to the camera and is negative behind it.
func (e *Element) Distance() float32 { return e.distance }

// World returns the reference rectangle, position and scale the element is
// projected from.
func (e *Element) World() Placement {
	ref, scale := e.Shape.footprint(e.Position)
	return Placement{Rect: ref, Position: e.Position, Scale: scale}
}

// Mirrored reports whether the last update flipped the element's scale
// relative to its world scale, which happens once it crosses behind the
// camera.
func (e *Element) Mirrored() bool {
	_, scale := e.Shape.footprint(e.Position)
	return (e.screen.Scale.X > 0) != (scale.X > 0) ||
		(e.screen.Scale.Y > 0) != (scale.Y > 0)
}
