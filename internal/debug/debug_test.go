package debug

import (
	"image/color"
	"testing"

	"mode7/internal/mode7"
)

type nopTexture struct{ w, h int }

func (t nopTexture) Size() (int, int) { return t.w, t.h }

type nopTarget struct{ w, h int }

func (t nopTarget) Width() int     { return t.w }
func (t nopTarget) Height() int    { return t.h }
func (nopTarget) Begin()           {}
func (nopTarget) Clear(color.RGBA) {}
func (nopTarget) End()             {}
func (nopTarget) Present()         {}
func (nopTarget) Unload()          {}

type nopProgram struct{}

func (nopProgram) SetFloat(string, float32)         {}
func (nopProgram) SetInt(string, int32)             {}
func (nopProgram) SetVec2(string, mode7.Vec2)       {}
func (nopProgram) SetMat2(string, mode7.Mat2)       {}
func (nopProgram) SetTexture(string, mode7.Texture) {}
func (nopProgram) Unload()                          {}

type nopDevice struct{}

func (nopDevice) LoadTarget(w, h int) (mode7.Target, error)                     { return nopTarget{w, h}, nil }
func (nopDevice) LoadPlaneProgram() (mode7.Program, error)                      { return nopProgram{}, nil }
func (nopDevice) DrawPlane(mode7.Program, mode7.Target)                         {}
func (nopDevice) DrawTexture(mode7.Texture, mode7.Rect, mode7.Rect, color.RGBA) {}
func (nopDevice) DrawRectangle(mode7.Rect, color.RGBA)                          {}
func (nopDevice) DrawCircle(mode7.Vec2, float32, color.RGBA)                    {}

func loadCamera(t *testing.T) *mode7.Camera {
	t.Helper()
	cam, err := mode7.Load(nopDevice{}, mode7.Options{
		Width:       1280,
		Height:      720,
		Zoom:        80,
		FOV:         0.5,
		Offset:      0.5,
		MaxElements: 48,
	})
	if err != nil {
		t.Fatal(err)
	}
	return cam
}

func TestInfoLines(t *testing.T) {
	cam := loadCamera(t)
	cam.SetPosition(mode7.Vec2{X: 1.5, Y: -2})
	cam.AddCircle(mode7.Vec2{}, 8, color.RGBA{255, 255, 0, 255})
	cam.AddRectangle(mode7.Rect{X: 64, Y: 64, Width: 16, Height: 16}, color.RGBA{255, 0, 0, 255})

	lines := CameraInfo(cam, 60, 0.02).Lines()

	expected := map[int]string{
		0: "FPS: 60",
		1: "MS/Frame: 20.00",
		3: "Position: { 1.50, -2.00 }",
		5: "Zoom: 80.000000",
		8: "Sprite count: 2/48",
	}
	for i, text := range expected {
		if lines[i].Text != text {
			t.Errorf("line %d is expected to be %q, got %q", i, text, lines[i].Text)
		}
	}

	for _, l := range lines {
		x, y := float32(l.X), float32(l.Y)
		if x < PanelRect.X || y < PanelRect.Y ||
			y+FontSize > PanelRect.Y+PanelRect.Height {
			t.Errorf("line %q at (%d, %d) is outside the panel", l.Text, l.X, l.Y)
		}
	}
}

func TestBoundingBoxes(t *testing.T) {
	cam := loadCamera(t)
	white := color.RGBA{255, 255, 255, 255}
	character := nopTexture{16, 32}
	source := mode7.Rect{Width: 16, Height: 32}

	cam.AddTexture(character, source, mode7.Vec2{}, mode7.Vec2{X: 8, Y: 8}, white)
	cam.AddTexture(character, source, mode7.Vec2{Y: -400}, mode7.Vec2{X: 8, Y: 8}, white)
	cam.AddCircle(mode7.Vec2{Y: 64}, 8, white)

	if err := cam.Begin(white); err != nil {
		t.Fatal(err)
	}
	if err := cam.End(); err != nil {
		t.Fatal(err)
	}

	boxes := BoundingBoxes(cam, 0.5, 0.5)
	if len(boxes) != 2 {
		t.Fatalf("mirrored sprite is expected to be skipped, got %d boxes", len(boxes))
	}

	var sprite *Box
	for i := range boxes {
		if boxes[i].Kind == BoxSprite {
			sprite = &boxes[i]
		}
	}
	if sprite == nil {
		t.Fatal("sprite box is missing")
	}
	want := mode7.Rect{X: 304, Y: 148, Width: 32, Height: 32}
	if sprite.Rect != want {
		t.Errorf("sprite box is expected to be %+v, got %+v", want, sprite.Rect)
	}
	if sprite.Anchor != (mode7.Vec2{X: 320, Y: 180}) {
		t.Errorf("sprite anchor is expected to be (320, 180), got %+v", sprite.Anchor)
	}
}

func TestPickTexel(t *testing.T) {
	p := mode7.NewProjection(1280, 720)
	p.SetZoom(80)
	p.SetFOV(0.5)
	p.SetOffset(0.5)

	ground := mode7.Plane{
		Texture: nopTexture{64, 64},
		Origin:  mode7.Vec2{X: 32, Y: 32},
		Scale:   mode7.Vec2{X: 1, Y: 1},
	}

	testCases := map[string]struct {
		planes   []mode7.Plane
		pointer  mode7.Vec2
		expected bool
		plane    int
		x, y     int
	}{
		"Center":      {planes: []mode7.Plane{ground}, pointer: mode7.Vec2{X: 640, Y: 360}, expected: true, x: 32, y: 32},
		"TopMost":     {planes: []mode7.Plane{ground, ground}, pointer: mode7.Vec2{X: 640, Y: 360}, expected: true, plane: 1, x: 32, y: 32},
		"NearHorizon": {planes: []mode7.Plane{ground}, pointer: mode7.Vec2{X: 640, Y: 7}},
		"Outside":     {planes: []mode7.Plane{ground}, pointer: mode7.Vec2{X: -5, Y: 360}},
		"NoPlanes":    {pointer: mode7.Vec2{X: 640, Y: 360}},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			texel, ok := PickTexel(&p, tt.planes, tt.pointer)
			if ok != tt.expected {
				t.Fatalf("PickTexel is expected to return %v, got %v (%v)", tt.expected, ok, texel)
			}
			if !ok {
				return
			}
			if texel.Plane != tt.plane || texel.X != tt.x || texel.Y != tt.y {
				t.Errorf("expected plane %d texel (%d, %d), got %v", tt.plane, tt.x, tt.y, texel)
			}
		})
	}
}
