package convert

import "image"

// GenerateGrid draws a gridSize x gridSize greyscale image split into
// cellSize squares. Every square has a one pixel 0xFF border and a black
// interior, so two neighbouring cells show a two pixel line.
func GenerateGrid(gridSize, cellSize int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, gridSize, gridSize))
	if cellSize <= 0 {
		return img
	}

	set := func(x, y int) {
		if x < gridSize && y < gridSize {
			img.Pix[y*img.Stride+x] = 0xFF
		}
	}

	last := cellSize - 1
	for y := 0; y < gridSize; y += cellSize {
		for x := 0; x < gridSize; x += cellSize {
			for i := 0; i < cellSize; i++ {
				set(x+i, y)
				set(x+i, y+last)
				set(x, y+i)
				set(x+last, y+i)
			}
		}
	}
	return img
}

// GenerateChecker draws a size x size checkerboard of cellSize squares,
// alternating light and dark grey. It stands in for ground and sprite images
// that are missing from the asset dirs.
func GenerateChecker(size, cellSize int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	if cellSize <= 0 {
		cellSize = size
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(0x40)
			if (x/cellSize+y/cellSize)%2 == 0 {
				v = 0xC0
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	return img
}
