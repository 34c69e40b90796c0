package cpu

import (
	"fmt"
	"math"

	"github.com/grava-ml/grava/internal/tensor"
)

// Sum reduces every element to a single value of shape [1].
func (b *Backend) Sum(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return sumAll[float32](x)
	case tensor.Float64:
		return sumAll[float64](x)
	case tensor.Int32:
		return sumAll[int32](x)
	case tensor.Int64:
		return sumAll[int64](x)
	default:
		panic(badDType("Sum", x.DType()))
	}
}

// Mean returns the average of all elements, shape [1].
func (b *Backend) Mean(x *tensor.Raw) *tensor.Raw {
	n := x.NumElements()
	sum := b.Sum(x)
	return b.MulScalar(sum, 1/float64(n))
}

func sumAll[T number](x *tensor.Raw) *tensor.Raw {
	out := tensor.MustNewRaw(tensor.Shape{1}, x.DType(), x.Device())
	var acc T
	for _, v := range view[T](x) {
		acc += v
	}
	view[T](out)[0] = acc
	return out
}

// SumDim sums along one dimension, removing it from the shape.
func (b *Backend) SumDim(x *tensor.Raw, dim int) *tensor.Raw {
	checkDim("SumDim", x.Shape(), dim)
	switch x.DType() {
	case tensor.Float32:
		return sumDim[float32](x, dim)
	case tensor.Float64:
		return sumDim[float64](x, dim)
	case tensor.Int32:
		return sumDim[int32](x, dim)
	case tensor.Int64:
		return sumDim[int64](x, dim)
	default:
		panic(badDType("SumDim", x.DType()))
	}
}

func sumDim[T number](x *tensor.Raw, dim int) *tensor.Raw {
	outer, n, inner := splitAt(x.Shape(), dim)

	outShape := make(tensor.Shape, 0, len(x.Shape())-1)
	outShape = append(outShape, x.Shape()[:dim]...)
	outShape = append(outShape, x.Shape()[dim+1:]...)
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}
	out := tensor.MustNewRaw(outShape, x.DType(), x.Device())

	xd, od := view[T](x), view[T](out)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var acc T
			base := o*n*inner + in
			for j := 0; j < n; j++ {
				acc += xd[base+j*inner]
			}
			od[o*inner+in] = acc
		}
	}
	return out
}

// Argmax returns int32 indices of the maximum along dim, with that
// dimension removed.
func (b *Backend) Argmax(x *tensor.Raw, dim int) *tensor.Raw {
	checkDim("Argmax", x.Shape(), dim)
	switch x.DType() {
	case tensor.Float32:
		return argmax[float32](x, dim)
	case tensor.Float64:
		return argmax[float64](x, dim)
	default:
		panic(badDType("Argmax", x.DType()))
	}
}

func argmax[T float](x *tensor.Raw, dim int) *tensor.Raw {
	outer, n, inner := splitAt(x.Shape(), dim)

	outShape := make(tensor.Shape, 0, len(x.Shape())-1)
	outShape = append(outShape, x.Shape()[:dim]...)
	outShape = append(outShape, x.Shape()[dim+1:]...)
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}
	out := tensor.MustNewRaw(outShape, tensor.Int32, x.Device())

	xd := view[T](x)
	od := out.AsInt32()
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			best, bestVal := 0, xd[base]
			for j := 1; j < n; j++ {
				if v := xd[base+j*inner]; v > bestVal {
					best, bestVal = j, v
				}
			}
			od[o*inner+in] = int32(best)
		}
	}
	return out
}

// Softmax applies a numerically stable softmax along dim.
func (b *Backend) Softmax(x *tensor.Raw, dim int) *tensor.Raw {
	checkDim("Softmax", x.Shape(), dim)
	switch x.DType() {
	case tensor.Float32:
		return softmax[float32](x, dim)
	case tensor.Float64:
		return softmax[float64](x, dim)
	default:
		panic(badDType("Softmax", x.DType()))
	}
}

func softmax[T float](x *tensor.Raw, dim int) *tensor.Raw {
	outer, n, inner := splitAt(x.Shape(), dim)
	out := tensor.MustNewRaw(x.Shape(), x.DType(), x.Device())

	xd, od := view[T](x), view[T](out)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in

			// Subtract the max before exponentiating.
			maxV := xd[base]
			for j := 1; j < n; j++ {
				if v := xd[base+j*inner]; v > maxV {
					maxV = v
				}
			}
			var sum float64
			for j := 0; j < n; j++ {
				e := math.Exp(float64(xd[base+j*inner] - maxV))
				od[base+j*inner] = T(e)
				sum += e
			}
			inv := T(1 / sum)
			for j := 0; j < n; j++ {
				od[base+j*inner] *= inv
			}
		}
	}
	return out
}

// splitAt factors a shape into (outer, n, inner) around dimension dim,
// so flat index = (o*n + j)*inner + in.
func splitAt(shape tensor.Shape, dim int) (outer, n, inner int) {
	outer, inner = 1, 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	return outer, shape[dim], inner
}

func checkDim(op string, shape tensor.Shape, dim int) {
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("cpu: %s: dim %d out of range for shape %v", op, dim, shape))
	}
}
