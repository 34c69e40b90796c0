package ops

import "github.com/grava-ml/grava/internal/tensor"

// MatMulOp records z = a @ b for 2-D tensors.
//
//	dz/da = outputGrad @ b^T
//	dz/db = a^T @ outputGrad
type MatMulOp struct {
	a, b, out *tensor.Raw
}

func NewMatMulOp(a, b, out *tensor.Raw) *MatMulOp { return &MatMulOp{a: a, b: b, out: out} }

func (op *MatMulOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a, op.b} }
func (op *MatMulOp) Output() *tensor.Raw   { return op.out }

func (op *MatMulOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	gradA := backend.MatMul(outputGrad, backend.Transpose(op.b))
	gradB := backend.MatMul(backend.Transpose(op.a), outputGrad)
	return []*tensor.Raw{gradA, gradB}
}
