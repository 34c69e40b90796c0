package nn

import "github.com/grava-ml/grava/internal/tensor"

// ReLU applies max(0, x) element-wise.
type ReLU[B tensor.Backend] struct{}

func NewReLU[B tensor.Backend]() *ReLU[B] { return &ReLU[B]{} }

func (r *ReLU[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.ReLU()
}

func (r *ReLU[B]) Parameters() []*Parameter[B] { return nil }

// Softmax normalizes along a dimension into a probability
// distribution. Mostly useful for inspecting predictions; training
// should prefer CrossEntropyLoss, which fuses the softmax.
type Softmax[B tensor.Backend] struct {
	dim int
}

func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] { return &Softmax[B]{dim: dim} }

func (s *Softmax[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Softmax(s.dim)
}

func (s *Softmax[B]) Parameters() []*Parameter[B] { return nil }
