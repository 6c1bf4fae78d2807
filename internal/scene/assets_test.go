package scene

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"mode7/internal/utils"
)

func writePack(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var index, payload bytes.Buffer
	putString := func(s string) {
		binary.Write(&index, binary.LittleEndian, uint32(len(s)))
		index.WriteString(s)
	}

	putString("PKGV0001")
	binary.Write(&index, binary.LittleEndian, uint32(len(files)))
	for name, data := range files {
		putString(name)
		binary.Write(&index, binary.LittleEndian, uint32(payload.Len()))
		binary.Write(&index, binary.LittleEndian, uint32(len(data)))
		payload.WriteString(data)
	}

	if err := os.WriteFile(path, append(index.Bytes(), payload.Bytes()...), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMountPack(t *testing.T) {
	withAssetDir(t)
	dir := t.TempDir()
	pkg := filepath.Join(dir, "demo.pkg")
	writePack(t, pkg, map[string]string{
		"scene/scene.yaml":    "camera:\n  zoom: 40\n",
		"textures/ground.png": "not really a png",
	})

	cache := filepath.Join(dir, "cache")
	out, err := MountPack(pkg, cache)
	if err != nil {
		t.Fatal(err)
	}
	if out != filepath.Join(cache, "demo") {
		t.Errorf("unexpected pack directory %s", out)
	}
	if utils.AssetDirs[0] != out {
		t.Errorf("pack directory is expected first in the search path, got %v", utils.AssetDirs)
	}
	if p := utils.FindTextureFile("ground.png"); p != filepath.Join(out, "textures", "ground.png") {
		t.Errorf("ground.png is expected to resolve inside the pack, got %q", p)
	}

	// A second mount reuses the extracted files.
	if err := os.Remove(pkg); err != nil {
		t.Fatal(err)
	}
	if _, err := MountPack(pkg, cache); err != nil {
		t.Errorf("cached pack is expected to mount without the package, got %v", err)
	}

	scene := FindSceneFile(out)
	if scene != filepath.Join(out, "scene", SceneFile) {
		t.Fatalf("scene file not found, got %q", scene)
	}
	cfg, err := LoadConfig(scene)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Zoom != 40 {
		t.Errorf("expected zoom 40 from the pack, got %f", cfg.Camera.Zoom)
	}
}

func TestMountPackMissing(t *testing.T) {
	withAssetDir(t)
	dir := t.TempDir()

	if _, err := MountPack(filepath.Join(dir, "missing.pkg"), dir); err == nil {
		t.Error("missing package is expected to fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Error("failed extraction is expected to leave no directory behind")
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ElementCount() != 48 {
		t.Errorf("built-in scene is expected to have 48 elements, got %d", cfg.ElementCount())
	}
	if FindSceneFile(t.TempDir()) != "" {
		t.Error("empty directory is expected to have no scene file")
	}
}
