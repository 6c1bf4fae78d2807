package mode7

import "image/color"

// Texture is a GPU texture owned by a backend.
type Texture interface {
	Size() (w, h int)
}

// Target is an off-screen render surface. Begin/End bind and unbind it as
// the draw destination; Present blits it to the display.
type Target interface {
	Width() int
	Height() int
	Begin()
	Clear(c color.RGBA)
	End()
	Present()
	Unload()
}

// Program is the compiled plane kernel. Values are pushed to the GPU when
// set and stay in effect until overwritten.
type Program interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec2(name string, v Vec2)
	SetMat2(name string, m Mat2)
	SetTexture(name string, t Texture)
	Unload()
}

// Device is the graphics backend a Camera draws with.
type Device interface {
	LoadTarget(width, height int) (Target, error)
	LoadPlaneProgram() (Program, error)

	// DrawPlane runs p over every pixel of t, which must be bound.
	DrawPlane(p Program, t Target)

	DrawTexture(t Texture, src, dst Rect, tint color.RGBA)
	DrawRectangle(dst Rect, tint color.RGBA)
	DrawCircle(center Vec2, radius float32, tint color.RGBA)
}
