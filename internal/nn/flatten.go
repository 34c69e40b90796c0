package nn

import "github.com/grava-ml/grava/internal/tensor"

// Flatten collapses every dimension after the batch dimension, turning
// [N, C, H, W] feature maps into [N, C*H*W] rows for linear layers.
type Flatten[B tensor.Backend] struct{}

func NewFlatten[B tensor.Backend]() *Flatten[B] { return &Flatten[B]{} }

func (f *Flatten[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	batch := x.Shape()[0]
	return x.Reshape(batch, x.NumElements()/batch)
}

func (f *Flatten[B]) Parameters() []*Parameter[B] { return nil }
