// Package debug computes what the debug overlays show. Drawing is left to
// the backends so this package stays free of any graphics library.
package debug

import (
	"fmt"

	"mode7/internal/mode7"
)

// PanelRect is where the info panel sits on the window.
var PanelRect = mode7.Rect{X: 8, Y: 8, Width: 320, Height: 216}

const FontSize = 20

// Line is one piece of panel text at a window position.
type Line struct {
	Text string
	X, Y int32
}

// Info is a snapshot of the values the panel prints.
type Info struct {
	FPS       int
	FrameTime float32
	Position  mode7.Vec2
	Rotation  float32
	Zoom      float32
	FOV       float32
	Offset    float32
	Elements  int
	Capacity  int
}

func CameraInfo(cam *mode7.Camera, fps int, frameTime float32) Info {
	info := Info{
		FPS:       fps,
		FrameTime: frameTime,
		Position:  cam.Position(),
		Rotation:  cam.Rotation(),
		Zoom:      cam.Zoom(),
		FOV:       cam.FOV(),
		Offset:    cam.Offset(),
	}
	if b := cam.Buffer(); b != nil {
		info.Elements = b.Len()
		info.Capacity = b.Cap()
	}
	return info
}

// Lines lays the panel out in rows of FontSize pixels.
func (i Info) Lines() []Line {
	return []Line{
		{fmt.Sprintf("FPS: %d", i.FPS), 16, 16},
		{fmt.Sprintf("MS/Frame: %.2f", 1000*i.FrameTime), 162, 16},
		{"Camera:", 16, 56},
		{fmt.Sprintf("Position: { %.2f, %.2f }", i.Position.X, i.Position.Y), 32, 76},
		{fmt.Sprintf("Rotation: %f", i.Rotation), 32, 96},
		{fmt.Sprintf("Zoom: %f", i.Zoom), 32, 116},
		{fmt.Sprintf("FOV: %f", i.FOV), 32, 136},
		{fmt.Sprintf("Offset: %f", i.Offset), 32, 156},
		{fmt.Sprintf("Sprite count: %d/%d", i.Elements, i.Capacity), 16, 196},
	}
}
