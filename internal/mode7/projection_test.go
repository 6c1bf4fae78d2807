package mode7

import (
	"math"
	"testing"
)

func newDemoProjection() Projection {
	p := NewProjection(1280, 720)
	p.SetZoom(80)
	p.SetFOV(0.5)
	p.SetOffset(0.5)
	return p
}

func TestProjectionCenteredPoint(t *testing.T) {
	p := newDemoProjection()

	screen, size := p.ToScreen(Vec2{0, 0})
	if screen.X != 640 || screen.Y != 360 {
		t.Errorf("camera position is expected to project to (640, 360), got (%f, %f)", screen.X, screen.Y)
	}
	if size != 8 {
		t.Errorf("apparent size at depth 1 is expected to be 8, got %f", size)
	}
	if d := p.Depth(Vec2{0, 0}); d != 1 {
		t.Errorf("depth at camera position is expected to be 1, got %f", d)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	testCases := map[string]struct {
		position Vec2
		rotation float32
		offset   float32
	}{
		"Identity":      {rotation: 0, offset: 0.5},
		"Translated":    {position: Vec2{100, -40}, rotation: 0, offset: 0.5},
		"Rotated":       {position: Vec2{-12, 30}, rotation: 0.7, offset: 0.5},
		"RotatedOffset": {position: Vec2{5, 5}, rotation: -2.1, offset: 0.3},
	}

	points := []Vec2{
		{0, 0}, {16, -16}, {-32, -48}, {64, 64}, {-8, 120}, {200, -30},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p := newDemoProjection()
			p.SetPosition(tt.position)
			p.SetRotation(tt.rotation)
			p.SetOffset(tt.offset)

			for _, pt := range points {
				world := pt.Add(tt.position)
				if p.Depth(world) <= 0 {
					continue
				}
				screen, _ := p.ToScreen(world)
				back := p.ToWorld(screen)
				tol := float32(1e-3) * max(1, world.Length())
				if !near(back.X, world.X, tol) || !near(back.Y, world.Y, tol) {
					t.Errorf("(%f, %f) -> (%f, %f) -> (%f, %f)",
						world.X, world.Y, screen.X, screen.Y, back.X, back.Y,
					)
				}
			}
		})
	}
}

func TestProjectionDepthOrdering(t *testing.T) {
	p := newDemoProjection()

	// +Y is away from the camera with no rotation.
	_, far := p.ToScreen(Vec2{0, 64})
	_, mid := p.ToScreen(Vec2{0, 0})
	_, nearSize := p.ToScreen(Vec2{0, -64})
	if !(far < mid && mid < nearSize) {
		t.Errorf("apparent size is expected to grow towards the camera, got %f, %f, %f", far, mid, nearSize)
	}

	behind := Vec2{0, -400}
	if d := p.Depth(behind); d >= 0 {
		t.Fatalf("depth of %v is expected to be negative, got %f", behind, d)
	}
	if _, size := p.ToScreen(behind); size >= 0 {
		t.Errorf("apparent size behind the camera is expected to be negative, got %f", size)
	}
}

func TestRotationMatrix(t *testing.T) {
	for _, theta := range []float32{0, 0.5, math.Pi / 2, -1.3, 3} {
		p := NewProjection(1280, 720)
		p.SetRotation(theta)

		m := p.RotationMatrix()
		c := float32(math.Cos(float64(theta)))
		s := float32(math.Sin(float64(theta)))
		if !near(m.M0, c, 1e-6) || !near(m.M1, -s, 1e-6) ||
			!near(m.M2, s, 1e-6) || !near(m.M3, c, 1e-6) {
			t.Errorf("rotation %f: expected (%f, %f, %f, %f), got %+v", theta, c, -s, s, c, m)
		}
		if p.Rotation() != theta {
			t.Errorf("rotation is expected to be %f, got %f", theta, p.Rotation())
		}
	}
}

func TestProjectionAspect(t *testing.T) {
	landscape := NewProjection(1280, 720)
	if a := landscape.Aspect(); !near(a, 1280.0/720.0, 1e-6) {
		t.Errorf("landscape aspect is expected to be %f, got %f", 1280.0/720.0, a)
	}
	portrait := NewProjection(720, 1280)
	if a := portrait.Aspect(); !near(a, 1280.0/720.0, 1e-6) {
		t.Errorf("portrait aspect is expected to be %f, got %f", 1280.0/720.0, a)
	}
}
