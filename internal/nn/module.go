// Package nn provides neural-network layers, losses and metrics on
// top of the tensor and autodiff packages.
package nn

import "github.com/grava-ml/grava/internal/tensor"

// Module is anything with a forward pass and learnable parameters.
// Layers without parameters return an empty slice.
type Module[B tensor.Backend] interface {
	Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
	Parameters() []*Parameter[B]
}
