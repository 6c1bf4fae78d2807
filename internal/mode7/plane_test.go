package mode7

import "testing"

func TestRemapTexel(t *testing.T) {
	ground := Plane{
		Texture: fakeTexture{64, 64},
		Origin:  Vec2{32, 32},
		Scale:   Vec2{1, 1},
	}
	wrapped := ground
	wrapped.Wrap = true

	testCases := map[string]struct {
		plane    Plane
		u, v     float32
		expected bool
	}{
		"Center":              {plane: ground, u: 0.5, v: 0.5, expected: true},
		"NearHorizon":         {plane: ground, u: 0.5, v: 0.01, expected: false},
		"NearHorizonWrapped":  {plane: wrapped, u: 0.5, v: 0.01, expected: true},
		"FarSide":             {plane: ground, u: 0.02, v: 0.6, expected: false},
		"FarSideWrapped":      {plane: wrapped, u: 0.02, v: 0.6, expected: true},
		"InsideFootprintLow":  {plane: ground, u: 0.5, v: 0.55, expected: true},
		"InsideFootprintSide": {plane: ground, u: 0.55, v: 0.5, expected: true},
	}

	p := newDemoProjection()
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			uv, ok := RemapTexel(&p, tt.plane, tt.u, tt.v)
			if ok != tt.expected {
				t.Fatalf("RemapTexel(%f, %f) is expected to return %v, got %v (uv %+v)", tt.u, tt.v, tt.expected, ok, uv)
			}
			if ok && (uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1) {
				t.Errorf("sampled coordinate %+v is out of the texture", uv)
			}
		})
	}
}

func TestRemapTexelCenter(t *testing.T) {
	p := newDemoProjection()
	uv, ok := RemapTexel(&p, Plane{Texture: fakeTexture{64, 64}, Origin: Vec2{32, 32}, Scale: Vec2{1, 1}}, 0.5, 0.5)
	if !ok || uv != (Vec2{0.5, 0.5}) {
		t.Errorf("pivot pixel is expected to sample the centre of a centred plane, got %+v %v", uv, ok)
	}
}

// The kernel and ToWorld are the same inverse mapping; the kernel only adds
// the plane placement and normalises by the footprint.
func TestRemapTexelMatchesToWorld(t *testing.T) {
	p := newDemoProjection()
	p.SetPosition(Vec2{30, -20})
	p.SetRotation(0.9)

	plane := Plane{
		Texture:  fakeTexture{128, 64},
		Position: Vec2{16, 8},
		Origin:   Vec2{64, 32},
		Scale:    Vec2{2, 2},
	}
	size := plane.MapSize()

	for _, px := range [][2]float32{{640, 500}, {100, 700}, {1200, 420}, {320, 380}} {
		world := p.ToWorld(Vec2{px[0], px[1]})
		raw := world.Add(plane.Position).Add(plane.Origin)

		uv, _ := RemapTexel(&p, plane, px[0]/1280, px[1]/720)
		got := Vec2{uv.X * size.X, uv.Y * size.Y}
		if !near(got.X, raw.X, 1e-2) || !near(got.Y, raw.Y, 1e-2) {
			t.Errorf("pixel (%f, %f): kernel maps to %+v, ToWorld to %+v", px[0], px[1], got, raw)
		}
	}
}
