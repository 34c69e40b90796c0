package ops

import "github.com/grava-ml/grava/internal/tensor"

// AddOp records z = a + b.
type AddOp struct {
	a, b, out *tensor.Raw
}

func NewAddOp(a, b, out *tensor.Raw) *AddOp { return &AddOp{a: a, b: b, out: out} }

func (op *AddOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a, op.b} }
func (op *AddOp) Output() *tensor.Raw   { return op.out }

func (op *AddOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(outputGrad, op.b.Shape(), backend),
	}
}

// SubOp records z = a - b.
type SubOp struct {
	a, b, out *tensor.Raw
}

func NewSubOp(a, b, out *tensor.Raw) *SubOp { return &SubOp{a: a, b: b, out: out} }

func (op *SubOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a, op.b} }
func (op *SubOp) Output() *tensor.Raw   { return op.out }

func (op *SubOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(backend.Neg(outputGrad), op.b.Shape(), backend),
	}
}

// MulOp records z = a * b (element-wise).
type MulOp struct {
	a, b, out *tensor.Raw
}

func NewMulOp(a, b, out *tensor.Raw) *MulOp { return &MulOp{a: a, b: b, out: out} }

func (op *MulOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a, op.b} }
func (op *MulOp) Output() *tensor.Raw   { return op.out }

func (op *MulOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{
		reduceBroadcast(backend.Mul(outputGrad, op.b), op.a.Shape(), backend),
		reduceBroadcast(backend.Mul(outputGrad, op.a), op.b.Shape(), backend),
	}
}

// DivOp records z = a / b (element-wise).
//
//	dz/da = 1/b
//	dz/db = -a/b^2
type DivOp struct {
	a, b, out *tensor.Raw
}

func NewDivOp(a, b, out *tensor.Raw) *DivOp { return &DivOp{a: a, b: b, out: out} }

func (op *DivOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a, op.b} }
func (op *DivOp) Output() *tensor.Raw   { return op.out }

func (op *DivOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	gradA := backend.Div(outputGrad, op.b)
	bSquared := backend.Mul(op.b, op.b)
	gradB := backend.Neg(backend.Div(backend.Mul(outputGrad, op.a), bSquared))
	return []*tensor.Raw{
		reduceBroadcast(gradA, op.a.Shape(), backend),
		reduceBroadcast(gradB, op.b.Shape(), backend),
	}
}

// AddScalarOp records z = a + s.
type AddScalarOp struct {
	a, out *tensor.Raw
}

func NewAddScalarOp(a, out *tensor.Raw) *AddScalarOp { return &AddScalarOp{a: a, out: out} }

func (op *AddScalarOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *AddScalarOp) Output() *tensor.Raw   { return op.out }

func (op *AddScalarOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{outputGrad}
}

// MulScalarOp records z = a * s.
type MulScalarOp struct {
	a, out *tensor.Raw
	s      float64
}

func NewMulScalarOp(a, out *tensor.Raw, s float64) *MulScalarOp {
	return &MulScalarOp{a: a, out: out, s: s}
}

func (op *MulScalarOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.a} }
func (op *MulScalarOp) Output() *tensor.Raw   { return op.out }

func (op *MulScalarOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.MulScalar(outputGrad, op.s)}
}
