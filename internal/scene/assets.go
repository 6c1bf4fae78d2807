package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mode7/internal/config"
	"mode7/internal/convert"
	"mode7/internal/utils"
)

// SceneFile is the config file name looked up inside extracted packs.
const SceneFile = "scene.yaml"

var errFound = errors.New("found")

// MountPack extracts pkg into a directory under cache, unless a previous run
// already did, converts its .tex files to PNG and adds the directory to the
// asset search path. It returns the extracted directory.
func MountPack(pkg, cache string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(pkg), filepath.Ext(pkg))
	out := filepath.Join(cache, name)

	if _, err := os.Stat(out); os.IsNotExist(err) {
		utils.Info("Unpacking %s...", pkg)
		if err := convert.ExtractPkg(pkg, out); err != nil {
			os.RemoveAll(out)
			return "", err
		}
		n := convert.PrewarmTextures(out, "")
		utils.Info("Pack %s: %d textures converted", name, n)
	} else if err != nil {
		return "", err
	} else {
		utils.Debug("Pack %s: using cached %s", name, out)
	}

	utils.AddAssetDir(out)
	return out, nil
}

// FindSceneFile returns the first scene file below root, or "" if there is
// none.
func FindSceneFile(root string) string {
	var found string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && d.Name() == SceneFile {
			utils.Debug("Found %s at: %s", SceneFile, path)
			found = path
			return errFound
		}
		return nil
	})
	return found
}

// LoadConfig loads the scene at path, or the built-in demo when path is
// empty.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		utils.Info("Using the built-in scene")
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	utils.Info("Scene %s: %d elements, %d textures", path, cfg.ElementCount(), len(cfg.Textures))
	return cfg, nil
}
