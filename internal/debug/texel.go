package debug

import (
	"fmt"

	"mode7/internal/mode7"
)

// Texel is the plane pixel under the pointer.
type Texel struct {
	Plane int
	UV    mode7.Vec2
	X, Y  int
}

func (t Texel) String() string {
	return fmt.Sprintf("Plane %d texel (%d, %d) uv (%.3f, %.3f)", t.Plane, t.X, t.Y, t.UV.X, t.UV.Y)
}

// PickTexel finds the plane drawn last under pointer, given in target pixels.
// planes must be in the order they were drawn.
func PickTexel(p *mode7.Projection, planes []mode7.Plane, pointer mode7.Vec2) (Texel, bool) {
	w, h := p.Size()
	u := pointer.X / w
	v := pointer.Y / h
	if u < 0 || u > 1 || v <= 0 || v > 1 {
		return Texel{}, false
	}

	for i := len(planes) - 1; i >= 0; i-- {
		uv, ok := mode7.RemapTexel(p, planes[i], u, v)
		if !ok {
			continue
		}
		tw, th := planes[i].Texture.Size()
		return Texel{
			Plane: i,
			UV:    uv,
			X:     min(int(uv.X*float32(tw)), tw-1),
			Y:     min(int(uv.Y*float32(th)), th-1),
		}, true
	}
	return Texel{}, false
}
