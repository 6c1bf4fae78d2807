package engine2D

import (
	"mode7/internal/debug"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrawInfoPanel draws the camera info panel in the top left corner.
func DrawInfoPanel(info debug.Info) {
	rec := toRectangle(debug.PanelRect)
	rl.DrawRectangleRec(rec, rl.Fade(rl.LightGray, 0.65))
	rl.DrawRectangleLinesEx(rec, 3, rl.DarkGray)

	for _, line := range info.Lines() {
		rl.DrawText(line.Text, line.X, line.Y, debug.FontSize, rl.Black)
	}
}

// DrawBoundingBoxes outlines every element and marks its anchor.
func DrawBoundingBoxes(boxes []debug.Box) {
	for _, box := range boxes {
		col := rl.Green
		switch box.Kind {
		case debug.BoxRectangle:
			col = rl.SkyBlue
		case debug.BoxCircle:
			col = rl.Orange
		}
		rl.DrawRectangleLinesEx(toRectangle(box.Rect), 1, col)
		rl.DrawRectangle(int32(box.Anchor.X-2), int32(box.Anchor.Y-2), 4, 4, rl.Red)
	}
}

// DrawTexelLabel prints the picked plane texel under the info panel.
func DrawTexelLabel(texel debug.Texel, ok bool) {
	y := int32(debug.PanelRect.Y + debug.PanelRect.Height + 8)
	if !ok {
		rl.DrawText("Plane: none", 16, y, debug.FontSize, rl.White)
		return
	}
	rl.DrawText(texel.String(), 16, y, debug.FontSize, rl.White)
}
