// Package autodiff provides reverse-mode automatic differentiation as
// a backend decorator: it wraps any tensor.Backend, forwards every
// operation to it, and records the differentiable ones on a gradient
// tape.
package autodiff

import (
	"fmt"

	"github.com/grava-ml/grava/internal/autodiff/ops"
	"github.com/grava-ml/grava/internal/tensor"
)

// Backend decorates an inner compute backend with gradient recording.
// It satisfies tensor.Backend itself, so tensors built on it use the
// same API as tensors on the raw device backend.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps inner with a fresh gradient tape. Recording starts off.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{inner: inner, tape: NewGradientTape()}
}

func (b *Backend[B]) Name() string          { return fmt.Sprintf("autodiff(%s)", b.inner.Name()) }
func (b *Backend[B]) Device() tensor.Device { return b.inner.Device() }

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B { return b.inner }

// Tape returns the gradient tape owned by this backend.
func (b *Backend[B]) Tape() *GradientTape { return b.tape }

func (b *Backend[B]) record(op ops.Operation) {
	if b.tape.IsRecording() {
		b.tape.Record(op)
	}
}

func (b *Backend[B]) Add(x, y *tensor.Raw) *tensor.Raw {
	out := b.inner.Add(x, y)
	b.record(ops.NewAddOp(x, y, out))
	return out
}

func (b *Backend[B]) Sub(x, y *tensor.Raw) *tensor.Raw {
	out := b.inner.Sub(x, y)
	b.record(ops.NewSubOp(x, y, out))
	return out
}

func (b *Backend[B]) Mul(x, y *tensor.Raw) *tensor.Raw {
	out := b.inner.Mul(x, y)
	b.record(ops.NewMulOp(x, y, out))
	return out
}

func (b *Backend[B]) Div(x, y *tensor.Raw) *tensor.Raw {
	out := b.inner.Div(x, y)
	b.record(ops.NewDivOp(x, y, out))
	return out
}

func (b *Backend[B]) AddScalar(x *tensor.Raw, s float64) *tensor.Raw {
	out := b.inner.AddScalar(x, s)
	b.record(ops.NewAddScalarOp(x, out))
	return out
}

func (b *Backend[B]) MulScalar(x *tensor.Raw, s float64) *tensor.Raw {
	out := b.inner.MulScalar(x, s)
	b.record(ops.NewMulScalarOp(x, out, s))
	return out
}

func (b *Backend[B]) Neg(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Neg(x)
	b.record(ops.NewNegOp(x, out))
	return out
}

func (b *Backend[B]) Exp(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Exp(x)
	b.record(ops.NewExpOp(x, out))
	return out
}

func (b *Backend[B]) Log(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Log(x)
	b.record(ops.NewLogOp(x, out))
	return out
}

func (b *Backend[B]) Sqrt(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Sqrt(x)
	b.record(ops.NewSqrtOp(x, out))
	return out
}

func (b *Backend[B]) ReLU(x *tensor.Raw) *tensor.Raw {
	out := b.inner.ReLU(x)
	b.record(ops.NewReLUOp(x, out))
	return out
}

func (b *Backend[B]) MatMul(x, y *tensor.Raw) *tensor.Raw {
	out := b.inner.MatMul(x, y)
	b.record(ops.NewMatMulOp(x, y, out))
	return out
}

func (b *Backend[B]) Reshape(x *tensor.Raw, shape tensor.Shape) *tensor.Raw {
	out := b.inner.Reshape(x, shape)
	b.record(ops.NewReshapeOp(x, out))
	return out
}

func (b *Backend[B]) Transpose(x *tensor.Raw, axes ...int) *tensor.Raw {
	out := b.inner.Transpose(x, axes...)
	b.record(ops.NewTransposeOp(x, out, axes))
	return out
}

func (b *Backend[B]) Sum(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Sum(x)
	b.record(ops.NewSumOp(x, out))
	return out
}

func (b *Backend[B]) Mean(x *tensor.Raw) *tensor.Raw {
	out := b.inner.Mean(x)
	b.record(ops.NewMeanOp(x, out))
	return out
}

// SumDim and Argmax are evaluation-only reductions; neither is
// recorded. Argmax has no useful gradient, and SumDim is only used by
// backward passes and metrics.
func (b *Backend[B]) SumDim(x *tensor.Raw, dim int) *tensor.Raw {
	return b.inner.SumDim(x, dim)
}

func (b *Backend[B]) Argmax(x *tensor.Raw, dim int) *tensor.Raw {
	return b.inner.Argmax(x, dim)
}

func (b *Backend[B]) Softmax(x *tensor.Raw, dim int) *tensor.Raw {
	out := b.inner.Softmax(x, dim)
	b.record(ops.NewSoftmaxOp(x, out, dim))
	return out
}

func (b *Backend[B]) Conv2D(input, kernel *tensor.Raw, stride, padding int) *tensor.Raw {
	out := b.inner.Conv2D(input, kernel, stride, padding)
	b.record(ops.NewConv2DOp(input, kernel, out, stride, padding))
	return out
}

func (b *Backend[B]) Conv2DInputBackward(input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	return b.inner.Conv2DInputBackward(input, kernel, outputGrad, stride, padding)
}

func (b *Backend[B]) Conv2DKernelBackward(input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	return b.inner.Conv2DKernelBackward(input, kernel, outputGrad, stride, padding)
}

func (b *Backend[B]) MaxPool2D(input *tensor.Raw, kernelSize, stride int) *tensor.Raw {
	out := b.inner.MaxPool2D(input, kernelSize, stride)
	// Constructing the op scans every pooling window for its argmax,
	// so skip it entirely when nothing is being recorded.
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMaxPool2DOp(input, out, kernelSize, stride))
	}
	return out
}

func (b *Backend[B]) MaxPool2DBackward(input, outputGrad *tensor.Raw, maxIndices []int, kernelSize, stride int) *tensor.Raw {
	return b.inner.MaxPool2DBackward(input, outputGrad, maxIndices, kernelSize, stride)
}

// CrossEntropy computes the fused softmax/negative-log-likelihood loss
// for [batch, classes] logits and [batch] int32 class targets. It is
// specific to the autodiff backend because its backward pass needs the
// saved logits.
func (b *Backend[B]) CrossEntropy(logits, targets *tensor.Raw) *tensor.Raw {
	out := ops.CrossEntropyForward(logits, targets)
	b.record(ops.NewCrossEntropyOp(logits, targets, out))
	return out
}
