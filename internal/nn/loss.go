package nn

import "github.com/grava-ml/grava/internal/tensor"

// MSELoss computes mean((pred - target)^2) as a shape-[1] tensor.
// It is built from primitive tensor ops, so on an autodiff backend the
// whole expression, mean included, lands on the tape.
type MSELoss[B tensor.Backend] struct{}

func NewMSELoss[B tensor.Backend]() *MSELoss[B] { return &MSELoss[B]{} }

func (l *MSELoss[B]) Forward(pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := pred.Sub(target)
	return diff.Mul(diff).Mean()
}
