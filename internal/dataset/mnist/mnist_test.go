package mnist_test

import (
	"compress/gzip"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grava-ml/grava/internal/backend/cpu"
	"github.com/grava-ml/grava/internal/dataset/mnist"
	"github.com/grava-ml/grava/internal/tensor"
)

// writeIDXImages writes a minimal IDX image file, optionally gzipped.
func writeIDXImages(t *testing.T, path string, images [][]uint8, gz bool) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var w interface {
		Write([]byte) (int, error)
	} = f
	var gzw *gzip.Writer
	if gz {
		gzw = gzip.NewWriter(f)
		w = gzw
	}

	header := []int32{2051, int32(len(images)), mnist.Rows, mnist.Cols}
	require.NoError(t, binary.Write(w, binary.BigEndian, header))
	for _, img := range images {
		_, err := w.Write(img)
		require.NoError(t, err)
	}
	if gzw != nil {
		require.NoError(t, gzw.Close())
	}
}

func writeIDXLabels(t *testing.T, path string, labels []uint8) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, binary.Write(f, binary.BigEndian, []int32{2049, int32(len(labels))}))
	_, err = f.Write(labels)
	require.NoError(t, err)
}

func blankImage(fill uint8) []uint8 {
	img := make([]uint8, mnist.ImageSize)
	for i := range img {
		img[i] = fill
	}
	return img
}

func TestReadImageFile(t *testing.T) {
	dir := t.TempDir()

	images := [][]uint8{blankImage(0), blankImage(255)}
	for _, gz := range []bool{false, true} {
		name := "images-idx3-ubyte"
		if gz {
			name += ".gz"
		}
		path := filepath.Join(dir, name)
		writeIDXImages(t, path, images, gz)

		pixels, count, rows, cols, err := mnist.ReadImageFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, mnist.Rows, rows)
		assert.Equal(t, mnist.Cols, cols)
		assert.Len(t, pixels, 2*mnist.ImageSize)
		assert.Equal(t, uint8(255), pixels[mnist.ImageSize])
	}
}

func TestReadImageFileRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.BigEndian, []int32{1234, 0, 28, 28}))
	f.Close()

	_, _, _, _, err = mnist.ReadImageFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magic")
}

func TestReadLabelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels-idx1-ubyte")
	writeIDXLabels(t, path, []uint8{3, 1, 4})

	labels, err := mnist.ReadLabelFile(path)
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 1, 4}, labels)
}

func TestFromRawNormalizes(t *testing.T) {
	d := mnist.FromRaw([]uint8{0, 51, 255}, []uint8{7})
	assert.InDeltaSlice(t, []float32{0, 0.2, 1}, d.Images, 1e-5)
	assert.Equal(t, []int32{7}, d.Labels)
	assert.Equal(t, 1, d.N)
}

func TestSplitAndSubset(t *testing.T) {
	d := mnist.Synthetic(100, 1)

	train, val := d.Split(0.9)
	assert.Equal(t, 90, train.N)
	assert.Equal(t, 10, val.N)
	assert.Len(t, train.Images, 90*mnist.ImageSize)

	small := d.Subset(25)
	assert.Equal(t, 25, small.N)
	// Subset larger than the dataset clamps.
	assert.Equal(t, 100, d.Subset(1000).N)
}

func TestSyntheticIsDeterministic(t *testing.T) {
	a := mnist.Synthetic(20, 42)
	b := mnist.Synthetic(20, 42)
	assert.Equal(t, a.Images, b.Images)
	assert.Equal(t, a.Labels, b.Labels)

	// Labels cycle through the ten classes.
	assert.Equal(t, int32(0), a.Labels[0])
	assert.Equal(t, int32(9), a.Labels[9])
	assert.Equal(t, int32(0), a.Labels[10])
}

func TestBatches(t *testing.T) {
	backend := cpu.New()
	d := mnist.Synthetic(25, 7)

	batches := mnist.Batches(d, 10, nil, backend)
	require.Len(t, batches, 2) // remainder of 5 dropped

	b0 := batches[0]
	assert.True(t, b0.Images.Shape().Equal(tensor.Shape{10, mnist.ImageSize}))
	assert.True(t, b0.Labels.Shape().Equal(tensor.Shape{10}))
	assert.Equal(t, 10, b0.Size)

	// Unshuffled batches keep dataset order.
	assert.Equal(t, d.Labels[0], b0.Labels.Data()[0])
	assert.Equal(t, d.Labels[10], batches[1].Labels.Data()[0])
}

func TestBatchesShuffled(t *testing.T) {
	backend := cpu.New()
	d := mnist.Synthetic(100, 7)

	rng := rand.New(rand.NewSource(3))
	batches := mnist.Batches(d, 50, rng, backend)
	require.Len(t, batches, 2)

	inOrder := true
	labels := batches[0].Labels.Data()
	for i := range labels {
		if labels[i] != d.Labels[i] {
			inOrder = false
			break
		}
	}
	assert.False(t, inOrder, "shuffled batches kept dataset order")
}

func TestRenderASCII(t *testing.T) {
	d := mnist.Synthetic(1, 1)
	art := mnist.RenderASCII(d.Image(0))

	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	require.Len(t, lines, mnist.Rows)
	for _, line := range lines {
		assert.Len(t, line, mnist.Cols)
	}
	// The bright band must show up as dense glyphs.
	assert.Contains(t, art, "#")
}

func TestSavePNG(t *testing.T) {
	d := mnist.Synthetic(12, 1)
	path := filepath.Join(t.TempDir(), "grid.png")

	require.NoError(t, mnist.SavePNG(d, 3, 4, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Asking for more cells than images fails.
	require.Error(t, mnist.SavePNG(d, 4, 4, path))
}
