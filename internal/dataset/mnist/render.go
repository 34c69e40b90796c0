package mnist

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
)

// ramp maps brightness to glyphs, dark to bright.
const ramp = " .:-=+*#%@"

// RenderASCII draws one flat 28x28 image as terminal art.
func RenderASCII(img []float32) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			v := img[r*Cols+c]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			idx := int(v * float32(len(ramp)-1))
			sb.WriteByte(ramp[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SavePNG writes the first cols*rows images of the dataset as a grid
// to a grayscale PNG, one dataset image per cell.
func SavePNG(d *Dataset, gridRows, gridCols int, path string) error {
	n := gridRows * gridCols
	if n > d.N {
		return fmt.Errorf("mnist: grid needs %d images, dataset has %d", n, d.N)
	}

	img := image.NewGray(image.Rect(0, 0, gridCols*Cols, gridRows*Rows))
	for i := 0; i < n; i++ {
		cellX := (i % gridCols) * Cols
		cellY := (i / gridCols) * Rows
		pixels := d.Image(i)
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				img.SetGray(cellX+c, cellY+r, color.Gray{Y: uint8(pixels[r*Cols+c] * 255)})
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mnist: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("mnist: encoding %s: %w", path, err)
	}
	return nil
}
