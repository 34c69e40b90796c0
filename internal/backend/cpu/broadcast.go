package cpu

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// broadcastStrides maps a (possibly lower-rank) input shape onto the
// output shape, returning one stride per output dimension. Dimensions
// of size 1 get stride 0 so the same element repeats along them.
func broadcastStrides(in, out tensor.Shape) []int {
	real := in.Strides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for i := range out {
		if i < offset {
			continue // dimension absent from the input
		}
		if in[i-offset] == 1 && out[i] != 1 {
			continue // repeated along this dimension
		}
		strides[i] = real[i-offset]
	}
	return strides
}

// broadcastOp evaluates op over the broadcast of x and y.
func broadcastOp[T number](x, y *tensor.Raw, op func(T, T) T) *tensor.Raw {
	outShape, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	out := tensor.MustNewRaw(outShape, x.DType(), x.Device())

	xd, yd, od := view[T](x), view[T](y), view[T](out)
	xs := broadcastStrides(x.Shape(), outShape)
	ys := broadcastStrides(y.Shape(), outShape)

	idx := make([]int, len(outShape))
	for i := range od {
		xi, yi := 0, 0
		for d, j := range idx {
			xi += j * xs[d]
			yi += j * ys[d]
		}
		od[i] = op(xd[xi], yd[yi])

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}
