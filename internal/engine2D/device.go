package engine2D

import (
	"fmt"
	"image"
	"image/color"

	"mode7/internal/convert"
	"mode7/internal/mode7"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture is a raylib texture usable as a plane map or sprite sheet.
type Texture struct {
	rl.Texture2D
}

func (t *Texture) Size() (int, int) { return int(t.Width), int(t.Height) }

// Unload frees the GPU texture.
func (t *Texture) Unload() {
	if t.ID != 0 {
		rl.UnloadTexture(t.Texture2D)
		t.ID = 0
	}
}

// LoadTexture decodes an image file (including .tex) and uploads it.
func LoadTexture(path string) (*Texture, error) {
	img, err := convert.DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(img)
}

// TextureFromImage uploads img with repeat addressing so wrapped planes tile.
func TextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("engine2D: empty image")
	}

	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if tex.ID == 0 {
		return nil, fmt.Errorf("engine2D: texture upload failed (%dx%d)", b.Dx(), b.Dy())
	}
	rl.SetTextureWrap(tex, rl.TextureWrapRepeat)
	return &Texture{tex}, nil
}

type renderTarget struct {
	rt rl.RenderTexture2D
}

func (t *renderTarget) Width() int         { return int(t.rt.Texture.Width) }
func (t *renderTarget) Height() int        { return int(t.rt.Texture.Height) }
func (t *renderTarget) Begin()             { rl.BeginTextureMode(t.rt) }
func (t *renderTarget) Clear(c color.RGBA) { rl.ClearBackground(c) }
func (t *renderTarget) End()               { rl.EndTextureMode() }

// Present draws the target over the whole window. Render textures are stored
// upside down, hence the negative source height.
func (t *renderTarget) Present() {
	w, h := float32(t.rt.Texture.Width), float32(t.rt.Texture.Height)
	src := rl.NewRectangle(0, 0, w, -h)
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(t.rt.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (t *renderTarget) Unload() {
	if t.rt.ID != 0 {
		rl.UnloadRenderTexture(t.rt)
		t.rt = rl.RenderTexture2D{}
	}
}

// Device draws through raylib. It needs an open window.
type Device struct{}

func NewDevice() *Device {
	return &Device{}
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
	rt := rl.LoadRenderTexture(int32(width), int32(height))
	if rt.ID == 0 {
		return nil, fmt.Errorf("engine2D: could not create %dx%d render texture", width, height)
	}
	return &renderTarget{rt: rt}, nil
}

func (d *Device) LoadPlaneProgram() (mode7.Program, error) {
	return loadPlaneProgram()
}

// DrawPlane runs the plane shader once per target pixel by drawing the bound
// map across the whole target; fragTexCoord is then the normalised pixel.
func (d *Device) DrawPlane(p mode7.Program, t mode7.Target) {
	prog := p.(*planeProgram)
	if prog.texture == nil {
		return
	}

	tex := prog.texture.Texture2D
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(t.Width()), float32(t.Height()))

	rl.BeginShaderMode(prog.shader)
	prog.bindTexture()
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	rl.EndShaderMode()
}

func (d *Device) DrawTexture(t mode7.Texture, src, dst mode7.Rect, tint color.RGBA) {
	tex, ok := t.(*Texture)
	if !ok {
		return
	}
	rl.DrawTexturePro(tex.Texture2D, toRectangle(src), toRectangle(dst), rl.NewVector2(0, 0), 0, tint)
}

func (d *Device) DrawRectangle(dst mode7.Rect, tint color.RGBA) {
	rl.DrawRectangleRec(toRectangle(dst), tint)
}

func (d *Device) DrawCircle(center mode7.Vec2, radius float32, tint color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(center.X, center.Y), radius, tint)
}

func toRectangle(r mode7.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.Width, r.Height)
}

var (
	_ mode7.Device  = (*Device)(nil)
	_ mode7.Program = (*planeProgram)(nil)
	_ mode7.Target  = (*renderTarget)(nil)
	_ mode7.Texture = (*Texture)(nil)
	_ mode7.Input   = (*Input)(nil)
)
