// Package scene runs the demo described by a config.Config on any mode7
// backend: it loads the textures, fills the camera buffer and draws the
// ground planes every frame.
package scene

import (
	"errors"
	"fmt"
	"image"

	"mode7/internal/config"
	"mode7/internal/convert"
	"mode7/internal/flyover"
	"mode7/internal/mode7"
	"mode7/internal/utils"
)

// Backend creates textures for a graphics device.
type Backend interface {
	LoadTexture(path string) (mode7.Texture, error)
	TextureFromImage(img image.Image) (mode7.Texture, error)
}

// Controls is the per-frame input the scene reads. Pointer is in window
// pixels.
type Controls interface {
	mode7.Input
	Pointer() mode7.Vec2
	Grabbing() bool
}

type Scene struct {
	// Simple draws the single ground of the config through Camera.Update
	// instead of the tiled ground.
	Simple bool

	cfg      *config.Config
	cam      *mode7.Camera
	textures map[string]mode7.Texture
	grabbed  *mode7.Element
	flyover  *flyover.Player
	flying   bool
	planes   []mode7.Plane
}

// GenerateImage builds the procedural image a texture falls back to.
func GenerateImage(t config.Texture) (image.Image, error) {
	switch t.Generate {
	case config.GenerateGrid:
		return convert.GenerateGrid(t.Size, t.Cell), nil
	case config.GenerateChecker:
		return convert.GenerateChecker(t.Size, t.Cell), nil
	case "":
		return nil, fmt.Errorf("no generator")
	}
	return nil, fmt.Errorf("unknown generator %q", t.Generate)
}

// LoadTextures loads every texture of cfg. Files are looked up through the
// asset search path; a missing or broken file falls back to the texture's
// generator.
func LoadTextures(cfg *config.Config, b Backend) (map[string]mode7.Texture, error) {
	textures := make(map[string]mode7.Texture, len(cfg.Textures))
	for name, t := range cfg.Textures {
		tex, err := loadTexture(name, t, b)
		if err != nil {
			UnloadTextures(textures)
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		textures[name] = tex
	}
	return textures, nil
}

func loadTexture(name string, t config.Texture, b Backend) (mode7.Texture, error) {
	var loadErr error
	if t.Path != "" {
		if path := utils.FindTextureFile(t.Path); path != "" {
			tex, err := b.LoadTexture(path)
			if err == nil {
				w, h := tex.Size()
				utils.Debug("Texture %s: loaded %s (%dx%d)", name, path, w, h)
				return tex, nil
			}
			loadErr = err
		} else {
			loadErr = fmt.Errorf("%s not found in %v", t.Path, utils.AssetDirs)
		}
		if t.Generate == "" {
			return nil, loadErr
		}
		utils.Warn("Texture %s: %v, using generated %s", name, loadErr, t.Generate)
	}

	img, err := GenerateImage(t)
	if err != nil {
		return nil, err
	}
	return b.TextureFromImage(img)
}

type unloader interface {
	Unload()
}

// UnloadTextures frees every texture whose backend supports it.
func UnloadTextures(textures map[string]mode7.Texture) {
	for _, tex := range textures {
		if u, ok := tex.(unloader); ok {
			u.Unload()
		}
	}
}

// CameraOptions returns the camera settings of cfg. The target has the
// window size.
func CameraOptions(cfg *config.Config) mode7.Options {
	return mode7.Options{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Position:    cfg.Camera.Position,
		Rotation:    cfg.Camera.Rotation,
		Zoom:        cfg.Camera.Zoom,
		FOV:         cfg.Camera.FOV,
		Offset:      cfg.Camera.Offset,
		MaxElements: cfg.Camera.Capacity,
	}
}

// New adds the elements of cfg to cam. Elements past the camera capacity are
// dropped with a warning.
func New(cam *mode7.Camera, cfg *config.Config, textures map[string]mode7.Texture) (*Scene, error) {
	s := &Scene{
		cfg:      cfg,
		cam:      cam,
		textures: textures,
		flyover:  flyover.NewPlayer(cfg.Flyover, cfg.Loop),
	}

	added := 0
	add := func(e *mode7.Element, err error) bool {
		if errors.Is(err, mode7.ErrBufferFull) {
			utils.Warn("Camera buffer full after %d elements", added)
			return false
		}
		if err != nil {
			return false
		}
		added++
		return true
	}

	for i, sp := range cfg.Sprites {
		tex, ok := textures[sp.Texture]
		if !ok {
			return nil, fmt.Errorf("sprite %d: texture %q is not loaded", i, sp.Texture)
		}
		var src mode7.Rect
		if sp.Source != nil {
			src = *sp.Source
		} else {
			w, h := tex.Size()
			src = mode7.NewRect(0, 0, float32(w), float32(h))
		}
		e, err := cam.AddTexture(tex, src, sp.Position, sp.Scale, sp.Tint.RGBA())
		if !add(e, err) {
			return s, nil
		}
		if s.grabbed == nil {
			s.grabbed = e
		}
	}
	for _, r := range cfg.Rectangles {
		if !add(cam.AddRectangle(r.Rect, r.Tint.RGBA())) {
			return s, nil
		}
	}
	for _, c := range cfg.Circles {
		if !add(cam.AddCircle(c.Position, c.Radius, c.Tint.RGBA())) {
			return s, nil
		}
	}

	utils.Info("Scene: %d elements, %d textures", added, len(textures))
	return s, nil
}

func (s *Scene) Camera() *mode7.Camera { return s.cam }
func (s *Scene) Flying() bool          { return s.flying }

// Planes returns the planes of the last frame in draw order.
func (s *Scene) Planes() []mode7.Plane { return s.planes }

// Grabbed is the element the pointer moves, the first sprite of the scene.
func (s *Scene) Grabbed() *mode7.Element { return s.grabbed }

// ToggleFlyover starts the flyover from its first keyframe or stops it
// where it is.
func (s *Scene) ToggleFlyover() {
	if s.flying {
		s.flying = false
		utils.Info("Flyover stopped")
		return
	}
	if len(s.cfg.Flyover) == 0 {
		utils.Warn("Scene has no flyover")
		return
	}
	s.flyover.Reset()
	s.flying = true
	utils.Info("Flyover started (%d keyframes)", len(s.cfg.Flyover))
}

// Step applies one frame of input. window is the size of the surface the
// pointer is measured on.
func (s *Scene) Step(in Controls, window mode7.Vec2) {
	if s.flying {
		if s.flyover.Update(s.cam, in.FrameTime()) {
			s.flying = false
			utils.Info("Flyover finished")
		}
	} else {
		s.cam.Move(s.cfg.Camera.Speed, in)
	}

	if s.grabbed != nil && in.Grabbing() && window.X > 0 && window.Y > 0 {
		s.grabbed.Position = s.cam.ToWorld(s.ToTarget(in.Pointer(), window))
	}
}

// ToTarget maps a point on a window of the given size to target pixels.
func (s *Scene) ToTarget(p, window mode7.Vec2) mode7.Vec2 {
	return mode7.Vec2{
		X: p.X * float32(s.cam.Width()) / window.X,
		Y: p.Y * float32(s.cam.Height()) / window.Y,
	}
}

// Draw renders the frame into the camera target. alternate swaps the tiled
// ground for the single alternate plane.
func (s *Scene) Draw(alternate bool) error {
	bg := s.cfg.Background.RGBA()
	g := s.cfg.Ground

	if s.Simple && g.Simple != nil {
		s.planes = append(s.planes[:0], s.single(g.Simple))
		return s.cam.Update(s.textures[g.Simple.Texture], g.Simple.Position, g.Simple.Scale, g.Simple.Wrap, bg)
	}

	s.planes = s.groundPlanes(alternate)
	if err := s.cam.Begin(bg); err != nil {
		return err
	}
	for _, pl := range s.planes {
		if err := s.cam.DrawPlane(pl); err != nil {
			return err
		}
	}
	return s.cam.End()
}

func (s *Scene) single(g *config.Single) mode7.Plane {
	pl := mode7.Plane{
		Texture:  s.textures[g.Texture],
		Position: g.Position,
		Scale:    g.Scale,
		Wrap:     g.Wrap,
	}
	pl.Origin = pl.CenteredOrigin()
	return pl
}

func (s *Scene) groundPlanes(alternate bool) []mode7.Plane {
	g := s.cfg.Ground
	planes := s.planes[:0]

	if alternate && g.Alternate != nil {
		return append(planes, s.single(g.Alternate))
	}

	if t := g.Tiles; t != nil {
		tex := s.textures[t.Texture]
		w, h := tex.Size()
		if w > 0 && h > 0 {
			origin := mode7.NewVec2(float32(w), float32(h))
			for y := t.From; y < t.To; y += h {
				for x := t.From; x < t.To; x += w {
					planes = append(planes, mode7.Plane{
						Texture:  tex,
						Position: mode7.NewVec2(float32(x), float32(y)),
						Origin:   origin,
						Scale:    mode7.NewVec2(1, 1),
					})
				}
			}
		}
	}

	if r := g.Ring; r != nil {
		tex := s.textures[r.Texture]
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				if x == 0 && y == 0 {
					continue
				}
				pl := mode7.Plane{
					Texture:  tex,
					Position: mode7.NewVec2(float32(x)*r.Spacing, float32(y)*r.Spacing),
					Scale:    mode7.NewVec2(1, 1),
				}
				pl.Origin = pl.CenteredOrigin()
				planes = append(planes, pl)
			}
		}
	}
	return planes
}
