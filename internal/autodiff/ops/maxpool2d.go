package ops

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// MaxPool2DOp records z = maxpool2d(input, kernelSize, stride).
//
// The winning position of every pooling window is found at record
// time; backward routes each output gradient to that position and
// leaves the rest of the window at zero.
type MaxPool2DOp struct {
	input, out         *tensor.Raw
	maxIndices         []int
	kernelSize, stride int
}

func NewMaxPool2DOp(input, out *tensor.Raw, kernelSize, stride int) *MaxPool2DOp {
	return &MaxPool2DOp{
		input:      input,
		out:        out,
		maxIndices: poolMaxIndices(input, out, kernelSize, stride),
		kernelSize: kernelSize,
		stride:     stride,
	}
}

func (op *MaxPool2DOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.input} }
func (op *MaxPool2DOp) Output() *tensor.Raw   { return op.out }

func (op *MaxPool2DOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	grad := backend.MaxPool2DBackward(op.input, outputGrad, op.maxIndices, op.kernelSize, op.stride)
	return []*tensor.Raw{grad}
}

// poolMaxIndices returns, per output element in output order, the flat
// input index that held the window maximum.
func poolMaxIndices(input, output *tensor.Raw, kernelSize, stride int) []int {
	switch input.DType() {
	case tensor.Float32:
		return poolIndices[float32](input.AsFloat32(), input.Shape(), output.Shape(), kernelSize, stride)
	case tensor.Float64:
		return poolIndices[float64](input.AsFloat64(), input.Shape(), output.Shape(), kernelSize, stride)
	default:
		panic(fmt.Sprintf("ops: MaxPool2D: unsupported dtype %s", input.DType()))
	}
}

func poolIndices[T float32 | float64](in []T, is, os tensor.Shape, kernelSize, stride int) []int {
	n, c, h, w := is[0], is[1], is[2], is[3]
	hOut, wOut := os[2], os[3]

	indices := make([]int, n*c*hOut*wOut)
	outIdx := 0
	for ni := 0; ni < n; ni++ {
		for ci := 0; ci < c; ci++ {
			base := ((ni*c + ci) * h) * w
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					best := base + (oh*stride)*w + ow*stride
					bestVal := in[best]
					for kh := 0; kh < kernelSize; kh++ {
						row := base + (oh*stride+kh)*w
						for kw := 0; kw < kernelSize; kw++ {
							idx := row + ow*stride + kw
							if in[idx] > bestVal {
								best, bestVal = idx, in[idx]
							}
						}
					}
					indices[outIdx] = best
					outIdx++
				}
			}
		}
	}
	return indices
}
