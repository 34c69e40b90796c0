package nn

import "github.com/grava-ml/grava/internal/tensor"

// Parameter is a named learnable tensor. Optimizers look its gradient
// up by the identity of the underlying raw tensor, so the raw buffer
// must stay stable across training steps; updates write into it
// through its typed view.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

func (p *Parameter[B]) Name() string                        { return p.name }
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] { return p.tensor }
