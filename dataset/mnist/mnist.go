// Package mnist exposes the MNIST dataset loader: download/caching,
// IDX parsing, batching and sample rendering.
package mnist

import (
	"math/rand"

	"github.com/grava-ml/grava/internal/dataset/mnist"
	"github.com/grava-ml/grava/internal/tensor"
)

const (
	Rows       = mnist.Rows
	Cols       = mnist.Cols
	ImageSize  = mnist.ImageSize
	NumClasses = mnist.NumClasses
)

// Dataset holds normalized images and int32 labels.
type Dataset = mnist.Dataset

// Batch is one mini-batch as backend tensors.
type Batch[B tensor.Backend] = mnist.Batch[B]

// Load reads the train and test splits from dir, downloading into it
// first if needed.
func Load(dir string) (train, test *Dataset, err error) {
	return mnist.Load(dir)
}

// Download fetches the MNIST archives into dir, skipping cached files.
func Download(dir string) (map[string]string, error) {
	return mnist.Download(dir)
}

// Synthetic builds a deterministic stand-in dataset for offline runs.
func Synthetic(n int, seed int64) *Dataset {
	return mnist.Synthetic(n, seed)
}

// Batches cuts the dataset into mini-batch tensors.
func Batches[B tensor.Backend](d *Dataset, batchSize int, rng *rand.Rand, backend B) []Batch[B] {
	return mnist.Batches(d, batchSize, rng, backend)
}

// RenderASCII draws one flat 28x28 image as terminal art.
func RenderASCII(img []float32) string {
	return mnist.RenderASCII(img)
}

// SavePNG writes a grid of dataset images to a grayscale PNG.
func SavePNG(d *Dataset, gridRows, gridCols int, path string) error {
	return mnist.SavePNG(d, gridRows, gridCols, path)
}
