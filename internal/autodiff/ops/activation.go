package ops

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// ReLUOp records z = max(0, a). The gradient passes through where the
// input was positive and is zero elsewhere.
type ReLUOp struct {
	a, out *tensor.Raw
}

func NewReLUOp(a, out *tensor.Raw) *ReLUOp { return &ReLUOp{a: a, out: out} }

func (op *ReLUOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *ReLUOp) Output() *tensor.Raw   { return op.out }

func (op *ReLUOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	mask := reluMask(op.a)
	return []*tensor.Raw{backend.Mul(outputGrad, mask)}
}

func reluMask(input *tensor.Raw) *tensor.Raw {
	mask := tensor.MustNewRaw(input.Shape(), input.DType(), input.Device())
	switch input.DType() {
	case tensor.Float32:
		in, m := input.AsFloat32(), mask.AsFloat32()
		for i, v := range in {
			if v > 0 {
				m[i] = 1
			}
		}
	case tensor.Float64:
		in, m := input.AsFloat64(), mask.AsFloat64()
		for i, v := range in {
			if v > 0 {
				m[i] = 1
			}
		}
	default:
		panic(fmt.Sprintf("ops: ReLU: unsupported dtype %s", input.DType()))
	}
	return mask
}

// SoftmaxOp records z = softmax(a, dim).
//
// With y = softmax(x):
//
//	dx = y * (dy - sum(dy * y, dim))
type SoftmaxOp struct {
	a, out *tensor.Raw
	dim    int
}

func NewSoftmaxOp(a, out *tensor.Raw, dim int) *SoftmaxOp {
	return &SoftmaxOp{a: a, out: out, dim: dim}
}

func (op *SoftmaxOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *SoftmaxOp) Output() *tensor.Raw   { return op.out }

func (op *SoftmaxOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	dot := backend.SumDim(backend.Mul(outputGrad, op.out), op.dim)

	keep := op.out.Shape().Clone()
	keep[op.dim] = 1
	dot = backend.Reshape(dot, keep)

	grad := backend.Mul(op.out, backend.Sub(outputGrad, dot))
	return []*tensor.Raw{grad}
}
