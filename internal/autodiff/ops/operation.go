// Package ops holds the differentiable operations recorded on the
// gradient tape. Each operation keeps the raw tensors its backward
// pass needs and delegates heavy computation to the backend.
package ops

import "github.com/grava-ml/grava/internal/tensor"

// Operation is one recorded step of a forward computation.
//
// Backward receives the gradient of the loss with respect to this
// operation's output and returns one gradient per input, in the same
// order as Inputs. A nil entry means the input is not differentiable
// (integer targets, for example).
type Operation interface {
	Inputs() []*tensor.Raw
	Output() *tensor.Raw
	Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw
}
