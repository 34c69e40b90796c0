package cpu

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// Reshape returns a view over the same buffer with a new shape.
func (b *Backend) Reshape(x *tensor.Raw, shape tensor.Shape) *tensor.Raw {
	out, err := x.View(shape)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return out
}

// Transpose permutes dimensions, materializing the result. With no
// axes the dimension order is reversed.
func (b *Backend) Transpose(x *tensor.Raw, axes ...int) *tensor.Raw {
	shape := x.Shape()
	nd := len(shape)

	if len(axes) == 0 {
		axes = make([]int, nd)
		for i := range axes {
			axes[i] = nd - 1 - i
		}
	}
	if len(axes) != nd {
		panic(fmt.Sprintf("cpu: Transpose got %d axes for %d-d tensor", len(axes), nd))
	}
	seen := make([]bool, nd)
	for _, a := range axes {
		if a < 0 || a >= nd || seen[a] {
			panic(fmt.Sprintf("cpu: Transpose axes %v is not a permutation of 0..%d", axes, nd-1))
		}
		seen[a] = true
	}

	outShape := make(tensor.Shape, nd)
	for i, a := range axes {
		outShape[i] = shape[a]
	}

	switch x.DType() {
	case tensor.Float32:
		return transpose[float32](x, outShape, axes)
	case tensor.Float64:
		return transpose[float64](x, outShape, axes)
	case tensor.Int32:
		return transpose[int32](x, outShape, axes)
	case tensor.Int64:
		return transpose[int64](x, outShape, axes)
	case tensor.Uint8:
		return transpose[uint8](x, outShape, axes)
	default:
		panic(badDType("Transpose", x.DType()))
	}
}

func transpose[T number](x *tensor.Raw, outShape tensor.Shape, axes []int) *tensor.Raw {
	out := tensor.MustNewRaw(outShape, x.DType(), x.Device())
	xd, od := view[T](x), view[T](out)

	inStrides := x.Shape().Strides()
	idx := make([]int, len(outShape))
	for i := range od {
		src := 0
		for d, j := range idx {
			src += j * inStrides[axes[d]]
		}
		od[i] = xd[src]

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
