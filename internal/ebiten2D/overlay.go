package ebiten2D

import (
	"image/color"

	"mode7/internal/debug"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelFill   = color.RGBA{200, 200, 200, 166}
	panelBorder = color.RGBA{80, 80, 80, 255}
)

// DrawInfoPanel draws the camera info panel with the raylib row layout.
func DrawInfoPanel(screen *ebiten.Image, info debug.Info) {
	r := debug.PanelRect
	vector.DrawFilledRect(screen, r.X, r.Y, r.Width, r.Height, panelFill, false)
	vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 3, panelBorder, false)

	for _, line := range info.Lines() {
		ebitenutil.DebugPrintAt(screen, line.Text, int(line.X), int(line.Y))
	}
}

func DrawBoundingBoxes(screen *ebiten.Image, boxes []debug.Box) {
	for _, box := range boxes {
		col := color.RGBA{0, 228, 48, 255}
		switch box.Kind {
		case debug.BoxRectangle:
			col = color.RGBA{102, 191, 255, 255}
		case debug.BoxCircle:
			col = color.RGBA{255, 161, 0, 255}
		}
		r := box.Rect
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 1, col, false)
		vector.DrawFilledRect(screen, box.Anchor.X-2, box.Anchor.Y-2, 4, 4, color.RGBA{230, 41, 55, 255}, false)
	}
}

func DrawTexelLabel(screen *ebiten.Image, texel debug.Texel, ok bool) {
	y := int(debug.PanelRect.Y + debug.PanelRect.Height + 8)
	if !ok {
		ebitenutil.DebugPrintAt(screen, "Plane: none", 16, y)
		return
	}
	ebitenutil.DebugPrintAt(screen, texel.String(), 16, y)
}
