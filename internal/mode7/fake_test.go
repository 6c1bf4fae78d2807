package mode7

import (
	"errors"
	"image/color"
)

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeTarget struct {
	w, h     int
	bound    bool
	clears   []color.RGBA
	presents int
	unloaded int
}

func (t *fakeTarget) Width() int         { return t.w }
func (t *fakeTarget) Height() int        { return t.h }
func (t *fakeTarget) Begin()             { t.bound = true }
func (t *fakeTarget) Clear(c color.RGBA) { t.clears = append(t.clears, c) }
func (t *fakeTarget) End()               { t.bound = false }
func (t *fakeTarget) Present()           { t.presents++ }
func (t *fakeTarget) Unload()            { t.unloaded++ }

type fakeProgram struct {
	floats   map[string]float32
	ints     map[string]int32
	vec2s    map[string]Vec2
	mats     map[string]Mat2
	textures map[string]Texture
	unloaded int
}

func newFakeProgram() *fakeProgram {
	return &fakeProgram{
		floats:   map[string]float32{},
		ints:     map[string]int32{},
		vec2s:    map[string]Vec2{},
		mats:     map[string]Mat2{},
		textures: map[string]Texture{},
	}
}

func (p *fakeProgram) SetFloat(name string, v float32)   { p.floats[name] = v }
func (p *fakeProgram) SetInt(name string, v int32)       { p.ints[name] = v }
func (p *fakeProgram) SetVec2(name string, v Vec2)       { p.vec2s[name] = v }
func (p *fakeProgram) SetMat2(name string, m Mat2)       { p.mats[name] = m }
func (p *fakeProgram) SetTexture(name string, t Texture) { p.textures[name] = t }
func (p *fakeProgram) Unload()                           { p.unloaded++ }

type drawCall struct {
	kind   string
	rect   Rect
	center Vec2
	radius float32
	tint   color.RGBA
}

// planeCall is a snapshot of the program state when a plane was drawn.
type planeCall struct {
	camRot  Mat2
	camPos  Vec2
	mapSize Vec2
	wrap    int32
	bound   bool
}

type fakeDevice struct {
	target  *fakeTarget
	program *fakeProgram

	targetErr  error
	programErr error

	planes []planeCall
	draws  []drawCall
}

var errFakeResource = errors.New("fake resource failure")

func (d *fakeDevice) LoadTarget(w, h int) (Target, error) {
	if d.targetErr != nil {
		return nil, d.targetErr
	}
	d.target = &fakeTarget{w: w, h: h}
	return d.target, nil
}

func (d *fakeDevice) LoadPlaneProgram() (Program, error) {
	if d.programErr != nil {
		return nil, d.programErr
	}
	d.program = newFakeProgram()
	return d.program, nil
}

func (d *fakeDevice) DrawPlane(p Program, t Target) {
	fp := p.(*fakeProgram)
	d.planes = append(d.planes, planeCall{
		camRot:  fp.mats[UniformCamRot],
		camPos:  fp.vec2s[UniformCamPos],
		mapSize: fp.vec2s[UniformMapSize],
		wrap:    fp.ints[UniformWrap],
		bound:   t.(*fakeTarget).bound,
	})
}

func (d *fakeDevice) DrawTexture(_ Texture, _, dst Rect, tint color.RGBA) {
	d.draws = append(d.draws, drawCall{kind: "texture", rect: dst, tint: tint})
}

func (d *fakeDevice) DrawRectangle(dst Rect, tint color.RGBA) {
	d.draws = append(d.draws, drawCall{kind: "rectangle", rect: dst, tint: tint})
}

func (d *fakeDevice) DrawCircle(center Vec2, radius float32, tint color.RGBA) {
	d.draws = append(d.draws, drawCall{kind: "circle", center: center, radius: radius, tint: tint})
}

// demoOptions is the camera the demo program starts with.
func demoOptions() Options {
	return Options{
		Width:       1280,
		Height:      720,
		Zoom:        80,
		FOV:         0.5,
		Offset:      0.5,
		MaxElements: 48,
	}
}

func near(a, b, tol float32) bool {
	d := a - b
	return -tol <= d && d <= tol
}
