// Package mnist loads the MNIST handwritten-digit dataset: IDX file
// parsing, download/caching, batching and sample rendering.
package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// IDX magic numbers: 0x00000803 for uint8 image cubes, 0x00000801 for
// uint8 label vectors.
const (
	imageMagic = 2051
	labelMagic = 2049
)

// ReadImageFile parses an IDX image file ([count, rows, cols] uint8),
// transparently decompressing .gz files.
func ReadImageFile(path string) (pixels []uint8, count, rows, cols int, err error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	defer closeFn()

	var header struct {
		Magic, Count, Rows, Cols int32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("mnist: reading image header of %s: %w", path, err)
	}
	if header.Magic != imageMagic {
		return nil, 0, 0, 0, fmt.Errorf("mnist: %s: bad image magic %d, want %d", path, header.Magic, imageMagic)
	}

	count, rows, cols = int(header.Count), int(header.Rows), int(header.Cols)
	pixels = make([]uint8, count*rows*cols)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("mnist: reading %d images from %s: %w", count, path, err)
	}
	return pixels, count, rows, cols, nil
}

// ReadLabelFile parses an IDX label file ([count] uint8).
func ReadLabelFile(path string) ([]uint8, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var header struct {
		Magic, Count int32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("mnist: reading label header of %s: %w", path, err)
	}
	if header.Magic != labelMagic {
		return nil, fmt.Errorf("mnist: %s: bad label magic %d, want %d", path, header.Magic, labelMagic)
	}

	labels := make([]uint8, header.Count)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("mnist: reading %d labels from %s: %w", header.Count, path, err)
	}
	return labels, nil
}

func openMaybeGzip(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mnist: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, func() { f.Close() }, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mnist: opening gzip %s: %w", path, err)
	}
	return gz, func() { gz.Close(); f.Close() }, nil
}
