package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"mode7/internal/utils"
)

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// maxPkgString bounds length prefixes so a corrupt header cannot make us
// allocate gigabytes.
const maxPkgString = 1 << 16

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > maxPkgString {
		return "", fmt.Errorf("string length %d out of range", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPackIndex reads the version string and the entry table of a .pkg
// file. It returns the offset the entry offsets are relative to.
func ReadPackIndex(r io.ReadSeeker) (string, []FileEntry, int64, error) {
	version, err := readPkgString(r)
	if err != nil {
		return "", nil, 0, fmt.Errorf("read version: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, 0, fmt.Errorf("read file count: %w", err)
	}

	entries := make([]FileEntry, 0, min(fileCount, 4096))
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d: %w", i, err)
		}
		var pos [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
			return "", nil, 0, fmt.Errorf("read entry %d: %w", i, err)
		}
		entries = append(entries, FileEntry{Name: name, Offset: pos[0], Size: pos[1]})
	}

	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", nil, 0, err
	}
	return version, entries, dataStart, nil
}

func ExtractPkg(pkgPath, outputDir string) error {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	version, entries, dataStart, err := ReadPackIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: Package Version: %s, File Count: %d", version, len(entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for i, entry := range entries {
		if i%10 == 0 || i == len(entries)-1 {
			utils.Debug("Unpacker: Extracting file %d/%d: %s", i+1, len(entries), entry.Name)
		}

		destPath := filepath.Join(outputDir, filepath.FromSlash(entry.Name))
		if !strings.HasPrefix(destPath, filepath.Clean(outputDir)+string(filepath.Separator)) {
			return fmt.Errorf("entry %q escapes the output directory", entry.Name)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		if _, err := f.Seek(dataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return err
		}

		outF, err := os.Create(destPath)
		if err != nil {
			return err
		}

		_, err = io.CopyN(outF, f, int64(entry.Size))
		outF.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", entry.Name, err)
		}
	}

	utils.Debug("Unpacker: Extraction completed successfully")
	return nil
}

// PrewarmTextures converts every .tex below root to PNG in parallel and
// returns how many were converted.
func PrewarmTextures(root string, outDir string) int {
	utils.Info("Converting textures in %s...", root)
	var convertedCount int32
	var wg sync.WaitGroup

	// Limit concurrency to avoid RAM spikes
	const maxConcurrency = 8
	sem := make(chan struct{}, maxConcurrency)

	TextureOutDir = outDir
	if outDir != "" {
		os.MkdirAll(outDir, 0755)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.HasSuffix(path, ".tex") {
			wg.Add(1)
			sem <- struct{}{}
			go func(p string) {
				defer wg.Done()
				defer func() { <-sem }()
				if _, err := ConvertToPNG(p); err != nil {
					utils.Error("Failed to convert %s: %v", p, err)
				} else {
					atomic.AddInt32(&convertedCount, 1)
				}
			}(path)
		}
		return nil
	})

	if err != nil {
		utils.Error("Error walking through directory: %v", err)
	}

	wg.Wait()
	utils.Info("Texture conversion finished. Processed %d textures.", convertedCount)
	return int(convertedCount)
}
