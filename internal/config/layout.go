package config

import (
	"fmt"

	"mode7/internal/mode7"
	"mode7/internal/utils"

	"github.com/qmuntal/gltf"
)

// Layout holds the elements imported from a glTF scene.
type Layout struct {
	Sprites    []Sprite
	Rectangles []Rectangle
	Circles    []Circle
}

// Node extras read by LoadLayout.
const (
	extraKind    = "m7"
	extraTexture = "texture"
	extraTint    = "tint"
	extraRadius  = "radius"
)

// LoadLayout imports scene elements from a glTF file. Nodes carry their kind
// in the "m7" custom property ("sprite", "rectangle" or "circle"); nodes
// without it are ignored. The ground plane is glTF's XZ plane: translation
// X and Z give the world position. Sprites take their scale from the node's
// X and Y scale, rectangles their size from X and Z.
func LoadLayout(path string) (*Layout, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	layout := &Layout{}
	for _, node := range doc.Nodes {
		extras, _ := node.Extras.(map[string]interface{})
		kind, _ := extras[extraKind].(string)
		if kind == "" {
			continue
		}

		pos := mode7.Vec2{X: float32(node.Translation[0]), Y: float32(node.Translation[2])}
		sx, sy, sz := float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2])
		if sx == 0 && sy == 0 && sz == 0 {
			sx, sy, sz = 1, 1, 1
		}
		tint, err := extraColor(extras[extraTint])
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.Name, err)
		}

		switch kind {
		case "sprite":
			texture, _ := extras[extraTexture].(string)
			if texture == "" {
				return nil, fmt.Errorf("node %q: sprite without texture", node.Name)
			}
			layout.Sprites = append(layout.Sprites, Sprite{
				Texture:  texture,
				Position: pos,
				Scale:    mode7.Vec2{X: sx, Y: sy},
				Tint:     tint,
			})
		case "rectangle":
			layout.Rectangles = append(layout.Rectangles, Rectangle{
				Rect: mode7.Rect{X: pos.X, Y: pos.Y, Width: sx, Height: sz},
				Tint: tint,
			})
		case "circle":
			radius := sx
			if r, ok := extras[extraRadius].(float64); ok {
				radius = float32(r)
			}
			layout.Circles = append(layout.Circles, Circle{Position: pos, Radius: radius, Tint: tint})
		default:
			utils.Warn("Layout: node %q has unknown kind %q", node.Name, kind)
		}
	}
	return layout, nil
}

// extraColor reads a [r, g, b, a] array of 0..255 numbers. A missing value
// is white.
func extraColor(v interface{}) (Color, error) {
	if v == nil {
		return White, nil
	}
	list, ok := v.([]interface{})
	if !ok || (len(list) != 3 && len(list) != 4) {
		return Color{}, fmt.Errorf("tint must be a list of 3 or 4 numbers")
	}
	c := Color{255, 255, 255, 255}
	for i, item := range list {
		f, ok := item.(float64)
		if !ok || f < 0 || f > 255 {
			return Color{}, fmt.Errorf("tint component %v out of range", item)
		}
		c[i] = uint8(f)
	}
	return c, nil
}
