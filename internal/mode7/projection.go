package mode7

// Projection is the camera state shared by the sprite projection and the
// plane kernel. The rotation matrix is only written by SetRotation.
type Projection struct {
	position Vec2
	rotation float32
	rotMat   Mat2
	zoom     float32
	fov      float32
	offset   float32

	width  float32
	height float32
	aspect float32
}

// NewProjection builds a projection for a width x height surface with an
// identity rotation, zoom and fov of 1 and the pivot line at mid-height.
func NewProjection(width, height int) Projection {
	p := Projection{
		width:  float32(width),
		height: float32(height),
		zoom:   1,
		fov:    1,
		offset: 0.5,
	}
	if width > height {
		p.aspect = float32(width) / float32(height)
	} else {
		p.aspect = float32(height) / float32(width)
	}
	p.SetRotation(0)
	return p
}

func (p *Projection) SetPosition(position Vec2) { p.position = position }
func (p *Projection) SetZoom(zoom float32)      { p.zoom = zoom }
func (p *Projection) SetFOV(fov float32)        { p.fov = fov }
func (p *Projection) SetOffset(offset float32)  { p.offset = offset }

func (p *Projection) SetRotation(rotation float32) {
	p.rotation = rotation
	p.rotMat = RotationMat2(rotation)
}

func (p *Projection) Position() Vec2       { return p.position }
func (p *Projection) Rotation() float32    { return p.rotation }
func (p *Projection) RotationMatrix() Mat2 { return p.rotMat }
func (p *Projection) Zoom() float32        { return p.zoom }
func (p *Projection) FOV() float32         { return p.fov }
func (p *Projection) Offset() float32      { return p.offset }
func (p *Projection) Aspect() float32      { return p.aspect }
func (p *Projection) Size() (w, h float32) { return p.width, p.height }

// space returns the rotated camera-space coordinates of a world point, with
// the vertical component already compressed by the field of view.
func (p *Projection) space(point Vec2) (x, y float32) {
	objX := -(p.position.X - point.X) / p.zoom
	objY := (p.position.Y - point.Y) / p.zoom

	m := p.rotMat
	x = -objX*m.M0 - objY*m.M1
	y = (objX*m.M2 + objY*m.M3) * p.fov
	return x, y
}

// Depth is the perspective divisor of a world point. Points with a depth
// of zero or less are behind the camera.
func (p *Projection) Depth(point Vec2) float32 {
	_, y := p.space(point)
	return 1 - y
}

// ToScreen projects a world point onto the surface and returns its screen
// position along with its apparent size in pixels per world unit.
// Points behind the camera come back mirrored with a negative size.
func (p *Projection) ToScreen(point Vec2) (Vec2, float32) {
	spaceX, spaceY := p.space(point)
	depth := 1 - spaceY

	screen := Vec2{
		X: (spaceX/depth)*p.offset*p.width + p.width/2,
		Y: ((spaceY+p.offset-1)/depth)*p.height + p.height,
	}
	size := (p.offset * p.width) / (p.zoom * depth)

	return screen, size
}

// ToWorld maps a screen point back onto the ground plane. The screen Y
// coordinate is the perspective divisor, so it must not be zero.
func (p *Projection) ToWorld(point Vec2) Vec2 {
	sx := (p.width/2 - point.X) * (p.zoom / p.aspect)
	sy := (p.offset*p.height - point.Y) * (p.zoom / p.fov)

	m := p.rotMat
	rotX := sx*m.M0 + sy*m.M1
	rotY := sx*m.M2 + sy*m.M3

	return Vec2{
		X: rotX/point.Y + p.position.X,
		Y: rotY/point.Y + p.position.Y,
	}
}
