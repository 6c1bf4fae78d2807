package main

import (
	"fmt"

	"mode7/internal/config"
	"mode7/internal/debug"
	"mode7/internal/engine2D"
	"mode7/internal/mode7"
	"mode7/internal/scene"
	"mode7/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	cam       *mode7.Camera
	scene     *scene.Scene
	textures  map[string]mode7.Texture
	input     *engine2D.Input
	fps       int
	showDebug bool
}

func NewWindow(cfg *config.Config, globalPointer bool) (*Window, error) {
	device := engine2D.NewDevice()

	cam, err := mode7.Load(device, scene.CameraOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	textures, err := scene.LoadTextures(cfg, device)
	if err != nil {
		cam.Unload()
		return nil, err
	}

	s, err := scene.New(cam, cfg, textures)
	if err != nil {
		scene.UnloadTextures(textures)
		cam.Unload()
		return nil, err
	}

	return &Window{
		cam:      cam,
		scene:    s,
		textures: textures,
		input:    &engine2D.Input{Global: globalPointer},
		fps:      cfg.Window.FPS,
	}, nil
}

func (window *Window) Run() {
	rl.SetTargetFPS(int32(window.fps))

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func screenSize() mode7.Vec2 {
	return mode7.NewVec2(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// Update applies input and renders the scene into the camera target.
func (window *Window) Update() {
	if rl.IsKeyPressed(rl.KeyF) {
		window.scene.ToggleFlyover()
	}
	if rl.IsKeyPressed(rl.KeyF8) {
		window.showDebug = !window.showDebug
	}

	window.scene.Step(window.input, screenSize())

	if err := window.scene.Draw(rl.IsKeyDown(rl.KeySpace)); err != nil {
		utils.Error("Frame: %v", err)
	}
}

func (window *Window) Draw() {
	rl.ClearBackground(rl.Black)
	window.cam.Render()

	engine2D.DrawInfoPanel(debug.CameraInfo(window.cam, int(rl.GetFPS()), rl.GetFrameTime()))

	if window.showDebug {
		screen := screenSize()
		scaleX := screen.X / float32(window.cam.Width())
		scaleY := screen.Y / float32(window.cam.Height())
		engine2D.DrawBoundingBoxes(debug.BoundingBoxes(window.cam, scaleX, scaleY))

		proj := window.cam.Projection()
		pointer := window.scene.ToTarget(window.input.Pointer(), screen)
		engine2D.DrawTexelLabel(debug.PickTexel(&proj, window.scene.Planes(), pointer))
	}
}

func (window *Window) Unload() {
	scene.UnloadTextures(window.textures)
	window.cam.Unload()
	utils.Debug("Window: resources unloaded")
}
