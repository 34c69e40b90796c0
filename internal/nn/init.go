package nn

import (
	"math"
	"math/rand"

	"github.com/grava-ml/grava/internal/tensor"
)

// xavierUniform fills t with values drawn from U(-a, a) where
// a = sqrt(6 / (fanIn + fanOut)), keeping activation variance roughly
// constant across layers (Glorot & Bengio, 2010).
func xavierUniform[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	bound := math.Sqrt(6 / float64(fanIn+fanOut))
	data := t.Raw().AsFloat32()
	for i := range data {
		data[i] = float32((rand.Float64()*2 - 1) * bound)
	}
}
