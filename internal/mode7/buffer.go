package mode7

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

// ErrBufferFull is returned by Add once every slot of the buffer is taken.
var ErrBufferFull = errors.New("mode7: element buffer is full")

// Buffer is a fixed-capacity element store. The backing slice is never
// reallocated, so pointers returned by Add stay valid for the lifetime of
// the buffer; sorting only permutes the order indices.
type Buffer struct {
	elems []Element
	order []int32
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		elems: make([]Element, 0, capacity),
		order: make([]int32, 0, capacity),
	}
}

func (b *Buffer) Len() int { return len(b.elems) }
func (b *Buffer) Cap() int { return cap(b.elems) }

// Add copies e into the next free slot and returns a stable reference to it.
func (b *Buffer) Add(e Element) (*Element, error) {
	if e.Shape == nil {
		return nil, errors.New("mode7: element has no shape")
	}
	if len(b.elems) == cap(b.elems) {
		return nil, ErrBufferFull
	}

	b.elems = append(b.elems, e)
	b.order = append(b.order, int32(len(b.elems)-1))

	return &b.elems[len(b.elems)-1], nil
}

// Element returns the i-th element in insertion order.
func (b *Buffer) Element(i int) *Element {
	return &b.elems[i]
}

// Update recomputes screen placement and distance for every element.
func (b *Buffer) Update(p *Projection) {
	for i := range b.elems {
		updateElement(&b.elems[i], p)
	}
}

func updateElement(e *Element, p *Projection) {
	pos, size := p.ToScreen(e.Position)
	ref, scale := e.Shape.footprint(e.Position)

	e.screen.Scale = Vec2{
		X: (size * scale.X) / ref.Width,
		Y: (size * scale.Y) / ref.Height,
	}

	w := ref.Width * e.screen.Scale.X
	h := ref.Height * e.screen.Scale.Y
	e.screen.Rect = Rect{
		X:      pos.X - w*0.5,
		Y:      pos.Y - h,
		Width:  w,
		Height: h,
	}
	e.screen.Position = pos

	d := float64(size)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		size = -math.MaxFloat32
	}
	e.distance = size
}

// Sort orders the draw sequence by ascending distance, which puts the
// farthest elements first. Ties are left in no particular order.
func (b *Buffer) Sort() {
	slices.SortFunc(b.order, func(i, j int32) int {
		return cmp.Compare(b.elems[i].distance, b.elems[j].distance)
	})
}

// Each calls fn for every element in draw order.
func (b *Buffer) Each(fn func(e *Element)) {
	for _, i := range b.order {
		fn(&b.elems[i])
	}
}
