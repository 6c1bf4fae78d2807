package mode7

import "math"

type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

type Rect struct {
	X, Y          float32
	Width, Height float32
}

func NewRect(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Mat2 is a 2x2 matrix stored row by row: (M0 M1 / M2 M3).
type Mat2 struct {
	M0, M1 float32
	M2, M3 float32
}

// RotationMat2 returns (cos, -sin, sin, cos) for angle.
func RotationMat2(angle float32) Mat2 {
	sin, cos := math.Sincos(float64(angle))
	return Mat2{
		M0: float32(cos), M1: float32(-sin),
		M2: float32(sin), M3: float32(cos),
	}
}

// Placement is a rectangle/position/scale triple in one coordinate space.
type Placement struct {
	Rect     Rect
	Position Vec2
	Scale    Vec2
}
