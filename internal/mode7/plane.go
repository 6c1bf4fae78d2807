package mode7

import "math"

// Plane kernel uniform names. Every backend's kernel declares these.
const (
	UniformMap     = "map"
	UniformMapSize = "mapSize"
	UniformCamPos  = "camPos"
	UniformCamRot  = "camRot"
	UniformOffset  = "offset"
	UniformZoom    = "zoom"
	UniformFOV     = "fov"
	UniformWrap    = "wrap"
)

// PlaneUniforms lists every uniform the kernel reads.
var PlaneUniforms = []string{
	UniformMap,
	UniformMapSize,
	UniformCamPos,
	UniformCamRot,
	UniformOffset,
	UniformZoom,
	UniformFOV,
	UniformWrap,
}

// Plane is a single ground plane draw request.
type Plane struct {
	Texture  Texture
	Position Vec2
	Origin   Vec2
	Scale    Vec2
	Wrap     bool
}

// MapSize is the world footprint of the plane.
func (pl Plane) MapSize() Vec2 {
	w, h := pl.Texture.Size()
	return Vec2{float32(w) * pl.Scale.X, float32(h) * pl.Scale.Y}
}

// CenteredOrigin returns the origin that puts the middle of the plane's
// footprint on its position.
func (pl Plane) CenteredOrigin() Vec2 {
	return pl.MapSize().Scale(0.5)
}

// RemapTexel evaluates the plane kernel for one point of the target, given
// in normalised coordinates (v grows downwards). It returns the texture
// coordinate the kernel samples and whether the pixel is drawn at all.
// Rendering never goes through this; it exists for picking.
func RemapTexel(p *Projection, pl Plane, u, v float32) (Vec2, bool) {
	size := pl.MapSize()
	camPos := p.position.Add(pl.Position).Add(pl.Origin)

	x := (0.5 - u) * p.zoom
	y := (p.offset - v) * (p.zoom / p.fov)

	m := p.rotMat
	rx := x*m.M0 + y*m.M1
	ry := x*m.M2 + y*m.M3

	uv := Vec2{
		X: (rx/v + camPos.X) / size.X,
		Y: (ry/v + camPos.Y) / size.Y,
	}

	if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
		if !pl.Wrap {
			return uv, false
		}
		uv.X -= float32(math.Floor(float64(uv.X)))
		uv.Y -= float32(math.Floor(float64(uv.Y)))
	}

	return uv, true
}
