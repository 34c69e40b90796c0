package ops

import "github.com/grava-ml/grava/internal/tensor"

// SumOp records z = sum(a), a full reduction to shape [1]. The
// gradient broadcasts the scalar back over the input shape.
type SumOp struct {
	a, out *tensor.Raw
}

func NewSumOp(a, out *tensor.Raw) *SumOp { return &SumOp{a: a, out: out} }

func (op *SumOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *SumOp) Output() *tensor.Raw   { return op.out }

func (op *SumOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	ones := onesLike(op.a.Shape(), op.a.DType(), op.a.Device())
	return []*tensor.Raw{backend.Mul(ones, outputGrad)}
}

// MeanOp records z = mean(a). Every input element receives
// outputGrad / n.
type MeanOp struct {
	a, out *tensor.Raw
}

func NewMeanOp(a, out *tensor.Raw) *MeanOp { return &MeanOp{a: a, out: out} }

func (op *MeanOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *MeanOp) Output() *tensor.Raw   { return op.out }

func (op *MeanOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	n := op.a.NumElements()
	ones := onesLike(op.a.Shape(), op.a.DType(), op.a.Device())
	spread := backend.Mul(ones, outputGrad)
	return []*tensor.Raw{backend.MulScalar(spread, 1/float64(n))}
}
