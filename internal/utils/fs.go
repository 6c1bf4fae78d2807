package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetDirs are searched in order by ResolveAssetPath and FindTextureFile.
// Directories added with AddAssetDir take precedence over the defaults.
var AssetDirs = []string{
	"assets",
	"resources",
}

var TextureExtensions = []string{".tex", ".png", ".jpg", ".jpeg", ".bmp", ".webp"}

var errFound = errors.New("found")

func AddAssetDir(dir string) {
	if dir == "" {
		return
	}
	for _, d := range AssetDirs {
		if d == dir {
			return
		}
	}
	AssetDirs = append([]string{dir}, AssetDirs...)
}

func ResolveAssetPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	for _, dir := range AssetDirs {
		p := filepath.Join(dir, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(AssetDirs) == 0 {
		return relPath
	}
	return filepath.Join(AssetDirs[0], relPath) // Fallback even if it does not exist
}

// FindTextureFile looks for a texture by name, with or without extension,
// in every asset directory and then recursively below them. It returns ""
// when nothing matches.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	cleanName := strings.TrimPrefix(name, "textures/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	for _, dir := range AssetDirs {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}

	for _, dir := range AssetDirs {
		for _, ext := range TextureExtensions {
			if p := filepath.Join(dir, cleanName+ext); fileExists(p) {
				return p
			}
			if p := filepath.Join(dir, "textures", cleanName+ext); fileExists(p) {
				return p
			}
		}
	}

	// Deep search by base name
	targetBase := filepath.Base(cleanName)
	var foundPath string
	for _, d := range AssetDirs {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		filepath.WalkDir(d, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if strings.TrimSuffix(base, ext) == targetBase && IsTextureExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}

func IsTextureExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range TextureExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
