package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"mode7/internal/scene"
	"mode7/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML scene file (default: built-in demo)")
	assetsDir := flag.String("assets", "", "Extra directory searched for textures")
	pkgPath := flag.String("pack", "", "Path to a .pkg asset pack to extract and search for textures")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and start with the debug overlay")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	fps := flag.Int("fps", 0, "Ticks per second (default: from the scene)")
	simple := flag.Bool("simple", false, "Draw a single ground plane with Camera.Update")
	flag.Parse()

	if err := utils.Configure(*logLevel, *debugFlag); err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}

	utils.Info("--- Mode 7 Demo Start (ebiten) ---")

	utils.AddAssetDir(*assetsDir)
	if *pkgPath != "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			cache = "tmp"
		}
		dir, err := scene.MountPack(*pkgPath, filepath.Join(cache, "mode7"))
		if err != nil {
			utils.Error("Failed to mount pack: %v", err)
			os.Exit(1)
		}
		if *configPath == "" {
			*configPath = scene.FindSceneFile(dir)
		}
	}

	cfg, err := scene.LoadConfig(*configPath)
	if err != nil {
		utils.Error("Failed to load scene: %v", err)
		os.Exit(1)
	}
	if *fps > 0 {
		cfg.Window.FPS = *fps
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.FPS)

	game, err := NewGame(cfg)
	if err != nil {
		utils.Error("Failed to load scene: %v", err)
		os.Exit(1)
	}
	game.scene.Simple = *simple
	game.showDebug = utils.DebugMode

	utils.Info("Starting game loop...")
	err = ebiten.RunGame(game)
	game.Unload()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		utils.Error("Game loop error: %v", err)
		os.Exit(1)
	}
}
