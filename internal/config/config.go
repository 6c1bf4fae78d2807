// Package config describes the demo scene: window, camera, textures,
// ground planes, elements and an optional flyover path. Scenes are YAML
// files decoded over Default.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"mode7/internal/flyover"
	"mode7/internal/mode7"
	"mode7/internal/utils"

	"gopkg.in/yaml.v3"
)

// Color is an RGBA colour written as [r, g, b, a] in YAML.
type Color [4]uint8

func (c Color) RGBA() color.RGBA { return color.RGBA{c[0], c[1], c[2], c[3]} }

var (
	White  = Color{255, 255, 255, 255}
	Red    = Color{230, 41, 55, 255}
	Yellow = Color{253, 249, 0, 255}
	Blue   = Color{0, 121, 241, 255}
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

type Camera struct {
	Position mode7.Vec2 `yaml:"position"`
	Rotation float32    `yaml:"rotation"`
	Zoom     float32    `yaml:"zoom"`
	FOV      float32    `yaml:"fov"`
	Offset   float32    `yaml:"offset"`
	Capacity int        `yaml:"capacity"`
	Speed    float32    `yaml:"speed"`
}

// Generator names accepted in Texture.Generate.
const (
	GenerateGrid    = "grid"
	GenerateChecker = "checker"
)

// Texture is a named image. Path is looked up through the asset search
// path; when it is empty or missing, the image is generated instead.
type Texture struct {
	Path     string `yaml:"path"`
	Generate string `yaml:"generate"`
	Size     int    `yaml:"size"`
	Cell     int    `yaml:"cell"`
}

// Tiles covers [From, To) on both axes with copies of a texture, one plane
// per copy, each anchored by its far corner.
type Tiles struct {
	Texture string `yaml:"texture"`
	From    int    `yaml:"from"`
	To      int    `yaml:"to"`
}

// Ring places eight copies of a texture around the origin, Spacing apart.
type Ring struct {
	Texture string  `yaml:"texture"`
	Spacing float32 `yaml:"spacing"`
}

// Single is one plane, used by the alternate ground and by simple mode.
type Single struct {
	Texture  string     `yaml:"texture"`
	Position mode7.Vec2 `yaml:"position"`
	Scale    mode7.Vec2 `yaml:"scale"`
	Wrap     bool       `yaml:"wrap"`
}

type Ground struct {
	Tiles     *Tiles  `yaml:"tiles"`
	Ring      *Ring   `yaml:"ring"`
	Alternate *Single `yaml:"alternate"`
	Simple    *Single `yaml:"simple"`
}

type Sprite struct {
	Texture  string      `yaml:"texture"`
	Source   *mode7.Rect `yaml:"source"`
	Position mode7.Vec2  `yaml:"position"`
	Scale    mode7.Vec2  `yaml:"scale"`
	Tint     Color       `yaml:"tint"`
}

type Rectangle struct {
	Rect mode7.Rect `yaml:"rect"`
	Tint Color      `yaml:"tint"`
}

type Circle struct {
	Position mode7.Vec2 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Tint     Color      `yaml:"tint"`
}

type Config struct {
	Window     Window             `yaml:"window"`
	Camera     Camera             `yaml:"camera"`
	Background Color              `yaml:"background"`
	Textures   map[string]Texture `yaml:"textures"`
	Ground     Ground             `yaml:"ground"`
	Sprites    []Sprite           `yaml:"sprites"`
	Rectangles []Rectangle        `yaml:"rectangles"`
	Circles    []Circle           `yaml:"circles"`
	Layout     string             `yaml:"layout"`
	Flyover    []flyover.Keyframe `yaml:"flyover"`
	Loop       bool               `yaml:"loop"`
}

// Default is the stock demo: a column of characters over tiled ground with a
// grid ring around it.
func Default() *Config {
	cfg := &Config{
		Window: Window{Width: 1280, Height: 720, Title: "M7-Demo", FPS: 60},
		Camera: Camera{
			Zoom:     80,
			FOV:      0.5,
			Offset:   0.5,
			Capacity: 48,
			Speed:    64,
		},
		Background: Blue,
		Textures: map[string]Texture{
			"grid":      {Generate: GenerateGrid, Size: 512, Cell: 64},
			"ground":    {Path: "ground.png", Generate: GenerateChecker, Size: 64, Cell: 8},
			"character": {Path: "character.png", Generate: GenerateChecker, Size: 16, Cell: 4},
		},
		Ground: Ground{
			Tiles: &Tiles{Texture: "ground", From: -256, To: 256},
			Ring:  &Ring{Texture: "grid", Spacing: 512},
			Alternate: &Single{
				Texture: "grid",
				Scale:   mode7.Vec2{X: 1, Y: 1},
				Wrap:    true,
			},
			Simple: &Single{
				Texture: "ground",
				Scale:   mode7.Vec2{X: 8, Y: 8},
			},
		},
		Rectangles: []Rectangle{{Rect: mode7.Rect{X: 64, Y: 64, Width: 16, Height: 16}, Tint: Red}},
		Circles:    []Circle{{Position: mode7.Vec2{X: -64, Y: 64}, Radius: 8, Tint: Yellow}},
		Flyover: []flyover.Keyframe{
			{Position: mode7.Vec2{X: 0, Y: -200}, Rotation: 0, Zoom: 80, FOV: 0.5, Offset: 0.5, Duration: 3},
			{Position: mode7.Vec2{X: 200, Y: 0}, Rotation: 1.5708, Zoom: 120, FOV: 0.4, Offset: 0.4, Duration: 4},
			{Position: mode7.Vec2{X: 0, Y: 200}, Rotation: 3.1416, Zoom: 60, FOV: 0.6, Offset: 0.5, Duration: 4},
			{Position: mode7.Vec2{X: 0, Y: 0}, Rotation: 0, Zoom: 80, FOV: 0.5, Offset: 0.5, Duration: 3, Ease: "out-cubic"},
		},
		Loop: true,
	}

	cfg.Sprites = append(cfg.Sprites, Sprite{
		Texture: "character", Scale: mode7.Vec2{X: 8, Y: 8}, Tint: White,
	})
	for i := 1; i < 10; i++ {
		y := float32(i * -16)
		cfg.Sprites = append(cfg.Sprites,
			Sprite{Texture: "character", Position: mode7.Vec2{X: 0, Y: y}, Scale: mode7.Vec2{X: 12, Y: 12}, Tint: White},
			Sprite{Texture: "character", Position: mode7.Vec2{X: -16, Y: y}, Scale: mode7.Vec2{X: 8, Y: 8}, Tint: White},
			Sprite{Texture: "character", Position: mode7.Vec2{X: 16, Y: y}, Scale: mode7.Vec2{X: 8, Y: 8}, Tint: White},
			Sprite{Texture: "character", Position: mode7.Vec2{X: -32, Y: y}, Scale: mode7.Vec2{X: 8, Y: 8}, Tint: White},
			Sprite{Texture: "character", Position: mode7.Vec2{X: 32, Y: y}, Scale: mode7.Vec2{X: 8, Y: 8}, Tint: White},
		)
	}
	return cfg
}

// Load decodes the YAML file at path over Default and validates the
// result. A layout file named by the scene is resolved relative to it and
// appended to the scene elements.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Layout != "" {
		layoutPath := cfg.Layout
		if !filepath.IsAbs(layoutPath) {
			layoutPath = filepath.Join(filepath.Dir(path), layoutPath)
		}
		layout, err := LoadLayout(layoutPath)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", cfg.Layout, err)
		}
		cfg.Sprites = append(cfg.Sprites, layout.Sprites...)
		cfg.Rectangles = append(cfg.Rectangles, layout.Rectangles...)
		cfg.Circles = append(cfg.Circles, layout.Circles...)
		utils.Info("Layout %s: %d sprites, %d rectangles, %d circles",
			cfg.Layout, len(layout.Sprites), len(layout.Rectangles), len(layout.Circles))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML scene over Default without validating it. Lists in
// the document replace the default lists rather than extending them.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ElementCount() int {
	return len(c.Sprites) + len(c.Rectangles) + len(c.Circles)
}

var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	invalid := func(format string, v ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, v...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Zoom <= 0 {
		return invalid("camera zoom must be positive, got %f", c.Camera.Zoom)
	}
	if c.Camera.FOV <= 0 {
		return invalid("camera fov must be positive, got %f", c.Camera.FOV)
	}
	if c.Camera.Offset < 0 || c.Camera.Offset > 1 {
		return invalid("camera offset %f out of [0, 1]", c.Camera.Offset)
	}
	if c.Camera.Capacity < 0 {
		return invalid("negative capacity %d", c.Camera.Capacity)
	}

	for name, t := range c.Textures {
		switch t.Generate {
		case "":
			if t.Path == "" {
				return invalid("texture %q has neither path nor generator", name)
			}
		case GenerateGrid, GenerateChecker:
			if t.Size <= 0 || t.Cell <= 0 {
				return invalid("texture %q: generator needs a positive size and cell", name)
			}
		default:
			return invalid("texture %q: unknown generator %q", name, t.Generate)
		}
	}

	ref := func(what, name string) error {
		if _, ok := c.Textures[name]; !ok {
			return invalid("%s refers to unknown texture %q", what, name)
		}
		return nil
	}
	if g := c.Ground.Tiles; g != nil {
		if err := ref("ground tiles", g.Texture); err != nil {
			return err
		}
		if g.To < g.From {
			return invalid("ground tiles range [%d, %d)", g.From, g.To)
		}
	}
	if g := c.Ground.Ring; g != nil {
		if err := ref("ground ring", g.Texture); err != nil {
			return err
		}
	}
	for what, g := range map[string]*Single{"alternate ground": c.Ground.Alternate, "simple ground": c.Ground.Simple} {
		if g == nil {
			continue
		}
		if err := ref(what, g.Texture); err != nil {
			return err
		}
	}
	for i, s := range c.Sprites {
		if err := ref(fmt.Sprintf("sprite %d", i), s.Texture); err != nil {
			return err
		}
	}

	if err := flyover.Validate(c.Flyover); err != nil {
		return fmt.Errorf("%w: flyover: %v", ErrInvalid, err)
	}

	if n := c.ElementCount(); n > c.Camera.Capacity {
		utils.Warn("Scene has %d elements but the camera holds %d, the rest are dropped", n, c.Camera.Capacity)
	}
	return nil
}
