package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"mode7/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// Pixel formats stored in a .tex header.
const (
	FormatRGBA8888 = 0
	FormatDXT5     = 4
	FormatDXT3     = 6
	FormatDXT1     = 7
	FormatRG88     = 8
	FormatR8       = 9
)

const (
	texMagic   = "TEXV0005"
	texInfo    = "TEXI0001"
	texBlocks1 = "TEXB0001"
	texBlocks2 = "TEXB0002"
	texBlocks3 = "TEXB0003"
)

var ErrInvalidTex = errors.New("invalid tex container")

// texReader reads little-endian fields and keeps the first error.
type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) u32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an 8 byte tag followed by its NUL terminator.
func (t *texReader) magic() string {
	if t.err != nil {
		return ""
	}
	b := make([]byte, 9)
	if _, err := io.ReadFull(t.r, b); err != nil {
		t.err = err
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(t.r, b); err != nil {
		t.err = err
		return nil
	}
	return b
}

type TexHeader struct {
	Format        uint32
	TextureWidth  uint32
	TextureHeight uint32
	ImageWidth    uint32
	ImageHeight   uint32
	Container     string
	ImageCount    uint32
}

// DecodeTex decodes the first mip of the first image of a .tex container.
// The result is cropped to the image size recorded in the header.
func DecodeTex(r io.Reader) (image.Image, error) {
	tr := &texReader{r: r}

	var h TexHeader
	if m := tr.magic(); tr.err == nil && m != texMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidTex, m)
	}
	if m := tr.magic(); tr.err == nil && m != texInfo {
		return nil, fmt.Errorf("%w: info %q", ErrInvalidTex, m)
	}
	h.Format = tr.u32()
	tr.u32() // flags
	h.TextureWidth = tr.u32()
	h.TextureHeight = tr.u32()
	h.ImageWidth = tr.u32()
	h.ImageHeight = tr.u32()
	tr.u32()
	h.Container = tr.magic()
	h.ImageCount = tr.u32()
	if tr.err != nil {
		return nil, fmt.Errorf("read tex header: %w", tr.err)
	}

	switch h.Container {
	case texBlocks1, texBlocks2:
	case texBlocks3:
		tr.u32() // image format hint
	default:
		return nil, fmt.Errorf("%w: container %q", ErrInvalidTex, h.Container)
	}
	if h.ImageCount == 0 {
		return nil, fmt.Errorf("%w: no image", ErrInvalidTex)
	}

	utils.Debug("Tex: format %d, texture %dx%d, image %dx%d, %s",
		h.Format, h.TextureWidth, h.TextureHeight, h.ImageWidth, h.ImageHeight, h.Container)

	if mips := tr.u32(); tr.err == nil && mips == 0 {
		return nil, fmt.Errorf("%w: no mipmap", ErrInvalidTex)
	}
	mW := tr.u32()
	mH := tr.u32()
	var isLZ4 bool
	var decompressedSize uint32
	if h.Container != texBlocks1 {
		isLZ4 = tr.u32() == 1
		decompressedSize = tr.u32()
	}
	data := tr.bytes(tr.u32())
	if tr.err != nil {
		return nil, fmt.Errorf("read tex mipmap: %w", tr.err)
	}

	if isLZ4 {
		utils.Debug("Tex: decompressing LZ4 %d -> %d", len(data), decompressedSize)
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = out[:n]
	}

	pix, err := decodePixels(h.Format, data, mW, mH)
	if err != nil {
		return nil, err
	}

	img := &image.NRGBA{
		Pix:    pix,
		Stride: int(mW * 4),
		Rect:   image.Rect(0, 0, int(mW), int(mH)),
	}
	w, ht := int(h.ImageWidth), int(h.ImageHeight)
	if w == 0 || ht == 0 || (w == int(mW) && ht == int(mH)) {
		return img, nil
	}
	return img.SubImage(image.Rect(0, 0, w, ht)), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	size := uint32(len(data))

	switch {
	case size == w*h*4 && format == FormatRGBA8888:
		return data, nil
	case format == FormatDXT5 && size >= blocks*16:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == FormatDXT3 && size >= blocks*16:
		return dxt.DecodeDXT3(data, uint(w), uint(h))
	case format == FormatDXT1 && size >= blocks*8:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case format == FormatR8 && size == w*h:
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4] = v
			pix[i*4+1] = v
			pix[i*4+2] = v
			pix[i*4+3] = 255
		}
		return pix, nil
	case format == FormatRG88 && size == w*h*2:
		// Luminance in the first byte, alpha in the second.
		pix := make([]byte, w*h*4)
		for i := 0; i < int(w*h); i++ {
			pix[i*4] = data[i*2]
			pix[i*4+1] = data[i*2]
			pix[i*4+2] = data[i*2]
			pix[i*4+3] = data[i*2+1]
		}
		return pix, nil
	}
	return nil, fmt.Errorf("unsupported format %d with size %d for %dx%d", format, size, w, h)
}

func DecodeTexFile(path string) (image.Image, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
