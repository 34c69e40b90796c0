package cpu

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// MatMul multiplies two 2-D tensors: [M, K] x [K, N] -> [M, N].
func (b *Backend) MatMul(x, y *tensor.Raw) *tensor.Raw {
	xs, ys := x.Shape(), y.Shape()
	if len(xs) != 2 || len(ys) != 2 {
		panic(fmt.Sprintf("cpu: MatMul needs 2-D tensors, got %v x %v", xs, ys))
	}
	if xs[1] != ys[0] {
		panic(fmt.Sprintf("cpu: MatMul inner dimensions differ: %v x %v", xs, ys))
	}
	switch x.DType() {
	case tensor.Float32:
		return matmul[float32](x, y)
	case tensor.Float64:
		return matmul[float64](x, y)
	default:
		panic(badDType("MatMul", x.DType()))
	}
}

// matmul uses i-k-j loop order so the inner loop walks both the output
// row and the right operand row sequentially.
func matmul[T float](x, y *tensor.Raw) *tensor.Raw {
	m, k := x.Shape()[0], x.Shape()[1]
	n := y.Shape()[1]
	out := tensor.MustNewRaw(tensor.Shape{m, n}, x.DType(), x.Device())

	xd, yd, od := view[T](x), view[T](y), view[T](out)
	for i := 0; i < m; i++ {
		outRow := od[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			a := xd[i*k+kk]
			if a == 0 {
				continue
			}
			yRow := yd[kk*n : (kk+1)*n]
			for j, v := range yRow {
				outRow[j] += a * v
			}
		}
	}
	return out
}
