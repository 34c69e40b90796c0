package autodiff

import (
	"github.com/grava-ml/grava/internal/tensor"
)

// Backward runs reverse-mode differentiation from loss, seeding the
// walk with a ones gradient. It returns the gradient map keyed by raw
// tensor identity, and also attaches the gradient of loss's direct
// raw tensor to loss itself.
func Backward[T tensor.DType, B tensor.Backend](loss *tensor.Tensor[T, *Backend[B]]) map[*tensor.Raw]*tensor.Raw {
	backend := loss.Backend()
	seed := tensor.Ones[T, *Backend[B]](loss.Shape(), backend)
	grads := backend.Tape().Backward(loss.Raw(), seed.Raw(), backend)
	if g, ok := grads[loss.Raw()]; ok {
		loss.SetGrad(g)
	}
	return grads
}
