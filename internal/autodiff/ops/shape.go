package ops

import "github.com/grava-ml/grava/internal/tensor"

// ReshapeOp records a shape change. The gradient is the output
// gradient reshaped back.
type ReshapeOp struct {
	a, out *tensor.Raw
}

func NewReshapeOp(a, out *tensor.Raw) *ReshapeOp { return &ReshapeOp{a: a, out: out} }

func (op *ReshapeOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *ReshapeOp) Output() *tensor.Raw   { return op.out }

func (op *ReshapeOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Reshape(outputGrad, op.a.Shape())}
}

// TransposeOp records a dimension permutation. The gradient applies
// the inverse permutation. axes == nil means "reverse dimensions",
// which is its own inverse.
type TransposeOp struct {
	a, out *tensor.Raw
	axes   []int
}

func NewTransposeOp(a, out *tensor.Raw, axes []int) *TransposeOp {
	return &TransposeOp{a: a, out: out, axes: axes}
}

func (op *TransposeOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *TransposeOp) Output() *tensor.Raw   { return op.out }

func (op *TransposeOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	if len(op.axes) == 0 {
		return []*tensor.Raw{backend.Transpose(outputGrad)}
	}
	inverse := make([]int, len(op.axes))
	for i, a := range op.axes {
		inverse[a] = i
	}
	return []*tensor.Raw{backend.Transpose(outputGrad, inverse...)}
}
