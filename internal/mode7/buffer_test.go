package mode7

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestBufferCapacity(t *testing.T) {
	for _, capacity := range []int{0, 1, 5, 48} {
		b := NewBuffer(capacity)

		seen := make(map[*Element]bool)
		for i := 0; i < capacity; i++ {
			e, err := b.Add(Element{Position: Vec2{float32(i), 0}, Shape: &Circle{Radius: 1}})
			if err != nil {
				t.Fatalf("capacity %d: add %d failed: %v", capacity, i, err)
			}
			if seen[e] {
				t.Fatalf("capacity %d: add %d returned a duplicated reference", capacity, i)
			}
			seen[e] = true
		}

		e, err := b.Add(Element{Shape: &Circle{Radius: 1}})
		if !errors.Is(err, ErrBufferFull) {
			t.Errorf("capacity %d: add beyond capacity is expected to fail with ErrBufferFull, got %v", capacity, err)
		}
		if e != nil {
			t.Errorf("capacity %d: add beyond capacity is expected to return nil", capacity)
		}
		if b.Len() != capacity || b.Cap() != capacity {
			t.Errorf("capacity %d: expected len/cap %d, got %d/%d", capacity, capacity, b.Len(), b.Cap())
		}
	}
}

func TestBufferNegativeCapacity(t *testing.T) {
	b := NewBuffer(-3)
	if _, err := b.Add(Element{Shape: &Circle{}}); !errors.Is(err, ErrBufferFull) {
		t.Errorf("expected ErrBufferFull, got %v", err)
	}
}

func TestBufferRejectsEmptyShape(t *testing.T) {
	b := NewBuffer(1)
	if _, err := b.Add(Element{}); err == nil {
		t.Error("element without shape is expected to be rejected")
	}
	if b.Len() != 0 {
		t.Errorf("rejected element is expected not to take a slot, len %d", b.Len())
	}
}

func TestBufferReferencesSurviveSort(t *testing.T) {
	p := newDemoProjection()
	b := NewBuffer(4)

	refs := make([]*Element, 0, 4)
	for _, y := range []float32{-48, 32, -16, 96} {
		e, err := b.Add(Element{Position: Vec2{0, y}, Shape: &Rectangle{Size: Vec2{4, 4}}})
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, e)
	}

	b.Update(&p)
	b.Sort()

	for i, e := range refs {
		if e != b.Element(i) {
			t.Errorf("reference %d is expected to stay at backing slot %d", i, i)
		}
	}

	refs[0].Position = Vec2{0, 200}
	b.Update(&p)
	if _, size := p.ToScreen(Vec2{0, 200}); b.Element(0).Distance() != size {
		t.Errorf("moved element is expected to have distance %f, got %f", size, b.Element(0).Distance())
	}
}

func TestBufferSort(t *testing.T) {
	testCases := map[string]struct {
		rotation  float32
		positions []Vec2
	}{
		"Column": {
			positions: []Vec2{{0, 0}, {0, -16}, {0, -32}, {0, 64}, {0, 128}, {0, 16}},
		},
		"Scattered": {
			rotation:  0.4,
			positions: []Vec2{{16, -16}, {-32, 48}, {64, 8}, {-64, 64}, {8, -40}, {100, 100}},
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p := newDemoProjection()
			p.SetRotation(tt.rotation)

			b := NewBuffer(len(tt.positions))
			for _, pos := range tt.positions {
				if _, err := b.Add(Element{Position: pos, Shape: &Circle{Radius: 2}}); err != nil {
					t.Fatal(err)
				}
			}
			b.Update(&p)
			b.Sort()

			var prev float32 = -math.MaxFloat32
			n := 0
			b.Each(func(e *Element) {
				if e.Distance() < prev {
					t.Errorf("distance %f follows %f", e.Distance(), prev)
				}
				prev = e.Distance()
				n++
			})
			if n != len(tt.positions) {
				t.Errorf("expected %d elements in draw order, got %d", len(tt.positions), n)
			}
		})
	}
}

func TestBufferNonFiniteDistance(t *testing.T) {
	p := newDemoProjection()
	b := NewBuffer(2)

	// Depth is exactly zero on the line y = -zoom/fov.
	horizon, _ := b.Add(Element{Position: Vec2{0, -160}, Shape: &Circle{Radius: 1}})
	b.Add(Element{Position: Vec2{0, 0}, Shape: &Circle{Radius: 1}})

	b.Update(&p)
	b.Sort()

	if horizon.Distance() != -math.MaxFloat32 {
		t.Errorf("non-finite distance is expected to be clamped, got %f", horizon.Distance())
	}
	var first *Element
	b.Each(func(e *Element) {
		if first == nil {
			first = e
		}
	})
	if first != horizon {
		t.Error("clamped element is expected to sort first")
	}
}

func TestElementUpdate(t *testing.T) {
	// 8 pixels per world unit at the camera position, 8 world units each way.
	testCases := map[string]struct {
		source Rect
		scale  Vec2
		rect   Rect
	}{
		"Tall": {
			source: Rect{0, 0, 16, 32},
			scale:  Vec2{4, 2},
			rect:   Rect{X: 608, Y: 296, Width: 64, Height: 64},
		},
		"Square": {
			source: Rect{0, 0, 16, 16},
			scale:  Vec2{4, 4},
			rect:   Rect{X: 608, Y: 296, Width: 64, Height: 64},
		},
		"Wide": {
			source: Rect{0, 0, 32, 16},
			scale:  Vec2{2, 4},
			rect:   Rect{X: 608, Y: 296, Width: 64, Height: 64},
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p := newDemoProjection()
			b := NewBuffer(1)
			e, _ := b.Add(Element{
				Position: Vec2{0, 0},
				Tint:     color.RGBA{255, 255, 255, 255},
				Shape:    &Sprite{Texture: fakeTexture{int(tt.source.Width), int(tt.source.Height)}, Source: tt.source, Scale: Vec2{8, 8}},
			})
			b.Update(&p)

			s := e.Screen()
			if s.Scale != tt.scale {
				t.Errorf("screen scale is expected to be %+v, got %+v", tt.scale, s.Scale)
			}
			if s.Rect != tt.rect {
				t.Errorf("screen rect is expected to be %+v, got %+v", tt.rect, s.Rect)
			}
			if s.Position != (Vec2{640, 360}) {
				t.Errorf("screen position is expected to be (640, 360), got %+v", s.Position)
			}
			if e.Mirrored() {
				t.Error("element in front of the camera is expected not to be mirrored")
			}
		})
	}
}
