package convert

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"mode7/internal/utils"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureOutDir is where ConvertToPNG writes converted .tex files. If empty,
// they are written next to their source.
var TextureOutDir string

// DecodeImageFile decodes a .tex container or any registered image format.
func DecodeImageFile(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		return DecodeTexFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	utils.Debug("Decoded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

func pngPathFor(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
	if TextureOutDir != "" {
		return filepath.Join(TextureOutDir, name)
	}
	return filepath.Join(filepath.Dir(path), name)
}

// ConvertToPNG decodes a .tex file and caches it as PNG, returning the PNG
// path. An existing cached PNG is reused. Other formats are returned as is.
func ConvertToPNG(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".tex") {
		return path, nil
	}

	pngPath := pngPathFor(path)
	if _, err := os.Stat(pngPath); err == nil {
		return pngPath, nil
	}

	img, err := DecodeTexFile(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(pngPath)
		return "", fmt.Errorf("encode %s: %w", pngPath, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	utils.Debug("Converted %s -> %s", path, pngPath)
	return pngPath, nil
}
