package ops

import "github.com/grava-ml/grava/internal/tensor"

// NegOp records z = -a.
type NegOp struct {
	a, out *tensor.Raw
}

func NewNegOp(a, out *tensor.Raw) *NegOp { return &NegOp{a: a, out: out} }

func (op *NegOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *NegOp) Output() *tensor.Raw   { return op.out }

func (op *NegOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Neg(outputGrad)}
}

// ExpOp records z = e^a. The saved output doubles as the derivative.
type ExpOp struct {
	a, out *tensor.Raw
}

func NewExpOp(a, out *tensor.Raw) *ExpOp { return &ExpOp{a: a, out: out} }

func (op *ExpOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *ExpOp) Output() *tensor.Raw   { return op.out }

func (op *ExpOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Mul(outputGrad, op.out)}
}

// LogOp records z = ln(a), with dz/da = 1/a.
type LogOp struct {
	a, out *tensor.Raw
}

func NewLogOp(a, out *tensor.Raw) *LogOp { return &LogOp{a: a, out: out} }

func (op *LogOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *LogOp) Output() *tensor.Raw   { return op.out }

func (op *LogOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Div(outputGrad, op.a)}
}

// SqrtOp records z = sqrt(a), with dz/da = 1/(2*sqrt(a)) = 1/(2z).
type SqrtOp struct {
	a, out *tensor.Raw
}

func NewSqrtOp(a, out *tensor.Raw) *SqrtOp { return &SqrtOp{a: a, out: out} }

func (op *SqrtOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *SqrtOp) Output() *tensor.Raw   { return op.out }

func (op *SqrtOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.MulScalar(backend.Div(outputGrad, op.out), 0.5)}
}
