package mnist

import (
	"math/rand"

	"github.com/grava-ml/grava/internal/tensor"
)

// Batch is one mini-batch as backend tensors: images [n, 784] float32
// and labels [n] int32. Models reshape rows to [n, 1, 28, 28] when
// they need image geometry.
type Batch[B tensor.Backend] struct {
	Images *tensor.Tensor[float32, B]
	Labels *tensor.Tensor[int32, B]
	Size   int
}

// Batches cuts the dataset into mini-batches of batchSize, dropping
// the remainder. With a non-nil rng the example order is shuffled
// first.
func Batches[B tensor.Backend](d *Dataset, batchSize int, rng *rand.Rand, backend B) []Batch[B] {
	order := make([]int, d.N)
	for i := range order {
		order[i] = i
	}
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	numBatches := d.N / batchSize
	batches := make([]Batch[B], 0, numBatches)

	for b := 0; b < numBatches; b++ {
		images := tensor.Zeros[float32](tensor.Shape{batchSize, ImageSize}, backend)
		labels := tensor.Zeros[int32](tensor.Shape{batchSize}, backend)

		imgData := images.Raw().AsFloat32()
		lblData := labels.Raw().AsInt32()
		for i := 0; i < batchSize; i++ {
			src := order[b*batchSize+i]
			copy(imgData[i*ImageSize:(i+1)*ImageSize], d.Image(src))
			lblData[i] = d.Labels[src]
		}
		batches = append(batches, Batch[B]{Images: images, Labels: labels, Size: batchSize})
	}
	return batches
}
