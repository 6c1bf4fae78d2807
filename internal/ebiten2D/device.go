// Package ebiten2D runs a mode7 camera on ebiten. Plane remapping happens in
// a Kage shader; elements are drawn with DrawImage and the vector package.
package ebiten2D

import (
	"fmt"
	"image"
	"image/color"

	"mode7/internal/convert"
	"mode7/internal/mode7"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Texture wraps an ebiten image.
type Texture struct {
	*ebiten.Image
}

func (t *Texture) Size() (int, int) {
	b := t.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) Unload() {
	if t.Image != nil {
		t.Deallocate()
		t.Image = nil
	}
}

// LoadTexture decodes an image file (including .tex) into an ebiten image.
func LoadTexture(path string) (*Texture, error) {
	img, err := convert.DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(img)
}

func TextureFromImage(img image.Image) (*Texture, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("ebiten2D: empty image")
	}
	return &Texture{ebiten.NewImageFromImage(img)}, nil
}

type renderTarget struct {
	device *Device
	img    *ebiten.Image
}

func (t *renderTarget) Width() int         { return t.img.Bounds().Dx() }
func (t *renderTarget) Height() int        { return t.img.Bounds().Dy() }
func (t *renderTarget) Begin()             { t.device.current = t.img }
func (t *renderTarget) Clear(c color.RGBA) { t.img.Fill(c) }
func (t *renderTarget) End()               { t.device.current = nil }

// Present draws the target scaled over the screen set with SetScreen.
func (t *renderTarget) Present() {
	screen := t.device.screen
	if screen == nil {
		return
	}
	sb := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(t.Width()), float64(sb.Dy())/float64(t.Height()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(t.img, op)
}

func (t *renderTarget) Unload() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// Device draws on ebiten images. Draw calls outside Begin/End of a target go
// nowhere.
type Device struct {
	screen  *ebiten.Image
	current *ebiten.Image

	vertices [4]ebiten.Vertex
	indices  [6]uint16
}

func NewDevice() *Device {
	return &Device{indices: [6]uint16{0, 1, 2, 1, 2, 3}}
}

// SetScreen sets the image Present draws onto. Call it at the start of
// every ebiten Draw.
func (d *Device) SetScreen(screen *ebiten.Image) {
	d.screen = screen
}

// LoadTexture returns the package LoadTexture result as a mode7.Texture.
func (d *Device) LoadTexture(path string) (mode7.Texture, error) {
	t, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (d *Device) TextureFromImage(img image.Image) (mode7.Texture, error) {
	t, err := TextureFromImage(img)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (d *Device) LoadTarget(width, height int) (mode7.Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ebiten2D: invalid target size %dx%d", width, height)
	}
	return &renderTarget{device: d, img: ebiten.NewImage(width, height)}, nil
}

func (d *Device) LoadPlaneProgram() (mode7.Program, error) {
	return loadPlaneProgram()
}

// DrawPlane covers the whole target with two triangles shaded by the plane
// kernel.
func (d *Device) DrawPlane(p mode7.Program, t mode7.Target) {
	prog := p.(*planeProgram)
	target := t.(*renderTarget)
	if prog.texture == nil || target.img == nil {
		return
	}

	w, h := float32(target.Width()), float32(target.Height())
	mw, mh := prog.texture.Size()
	quad := [4][4]float32{
		{0, 0, 0, 0},
		{w, 0, float32(mw), 0},
		{0, h, 0, float32(mh)},
		{w, h, float32(mw), float32(mh)},
	}
	for i, q := range quad {
		d.vertices[i] = ebiten.Vertex{
			DstX: q[0], DstY: q[1],
			SrcX: q[2], SrcY: q[3],
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}

	prog.uniforms[uniformTargetSize] = []float32{w, h}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: prog.uniforms,
		Images:   [4]*ebiten.Image{prog.texture.Image},
	}
	target.img.DrawTrianglesShader(d.vertices[:], d.indices[:], prog.shader, op)
}

func (d *Device) DrawTexture(t mode7.Texture, src, dst mode7.Rect, tint color.RGBA) {
	tex, ok := t.(*Texture)
	if !ok || d.current == nil || src.Width == 0 || src.Height == 0 {
		return
	}

	sub := tex.SubImage(image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height))).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Width/src.Width), float64(dst.Height/src.Height))
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))
	op.ColorScale.ScaleWithColor(tint)
	d.current.DrawImage(sub, op)
}

func (d *Device) DrawRectangle(dst mode7.Rect, tint color.RGBA) {
	if d.current == nil {
		return
	}
	vector.DrawFilledRect(d.current, dst.X, dst.Y, dst.Width, dst.Height, tint, false)
}

func (d *Device) DrawCircle(center mode7.Vec2, radius float32, tint color.RGBA) {
	if d.current == nil {
		return
	}
	vector.DrawFilledCircle(d.current, center.X, center.Y, radius, tint, true)
}

var (
	_ mode7.Device  = (*Device)(nil)
	_ mode7.Program = (*planeProgram)(nil)
	_ mode7.Target  = (*renderTarget)(nil)
	_ mode7.Texture = (*Texture)(nil)
	_ mode7.Input   = (*Input)(nil)
)
