package main

import (
	"fmt"

	"mode7/internal/config"
	"mode7/internal/debug"
	"mode7/internal/ebiten2D"
	"mode7/internal/mode7"
	"mode7/internal/scene"
	"mode7/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game renders into the camera target during Update and presents it in
// Draw, so the frame rate follows the tick rate.
type Game struct {
	device    *ebiten2D.Device
	cam       *mode7.Camera
	scene     *scene.Scene
	textures  map[string]mode7.Texture
	input     ebiten2D.Input
	width     int
	height    int
	showDebug bool
}

func NewGame(cfg *config.Config) (*Game, error) {
	device := ebiten2D.NewDevice()

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

	return &Game{
		device:   device,
		cam:      cam,
		scene:    s,
		textures: textures,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}, nil
}

func (g *Game) layoutSize() mode7.Vec2 {
	return mode7.NewVec2(float32(g.width), float32(g.height))
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.scene.ToggleFlyover()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		g.showDebug = !g.showDebug
	}

	g.scene.Step(g.input, g.layoutSize())
	return g.scene.Draw(ebiten.IsKeyPressed(ebiten.KeySpace))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.device.SetScreen(screen)
	g.cam.Render()

	info := debug.CameraInfo(g.cam, int(ebiten.ActualFPS()+0.5), g.input.FrameTime())
	ebiten2D.DrawInfoPanel(screen, info)

	if g.showDebug {
		// Layout pins the screen to the target size.
		ebiten2D.DrawBoundingBoxes(screen, debug.BoundingBoxes(g.cam, 1, 1))

		proj := g.cam.Projection()
		texel, ok := debug.PickTexel(&proj, g.scene.Planes(), g.input.Pointer())
		ebiten2D.DrawTexelLabel(screen, texel, ok)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) Unload() {
	scene.UnloadTextures(g.textures)
	g.cam.Unload()
	utils.Debug("Game: resources unloaded")
}
