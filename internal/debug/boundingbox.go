package debug

import "mode7/internal/mode7"

type BoxKind int

const (
	BoxSprite BoxKind = iota
	BoxRectangle
	BoxCircle
)

// Box is the window-space outline of one element.
type Box struct {
	Kind   BoxKind
	Rect   mode7.Rect
	Anchor mode7.Vec2
}

// BoundingBoxes returns the outline of every element the last frame drew,
// in draw order. scaleX and scaleY map target pixels to window pixels.
func BoundingBoxes(cam *mode7.Camera, scaleX, scaleY float32) []Box {
	b := cam.Buffer()
	if b == nil {
		return nil
	}

	boxes := make([]Box, 0, b.Len())
	b.Each(func(e *mode7.Element) {
		var kind BoxKind
		switch e.Shape.(type) {
		case *mode7.Sprite:
			if e.Mirrored() {
				return
			}
			kind = BoxSprite
		case *mode7.Rectangle:
			kind = BoxRectangle
		case *mode7.Circle:
			kind = BoxCircle
		}

		s := e.Screen()
		boxes = append(boxes, Box{
			Kind: kind,
			Rect: mode7.Rect{
				X:      s.Rect.X * scaleX,
				Y:      s.Rect.Y * scaleY,
				Width:  s.Rect.Width * scaleX,
				Height: s.Rect.Height * scaleY,
			},
			Anchor: mode7.Vec2{X: s.Position.X * scaleX, Y: s.Position.Y * scaleY},
		})
	})
	return boxes
}
