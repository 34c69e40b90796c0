package nn

import "github.com/grava-ml/grava/internal/tensor"

// MaxPool2D downsamples [N, C, H, W] inputs by taking the maximum of
// each square window. It has no learnable parameters.
type MaxPool2D[B tensor.Backend] struct {
	kernelSize int
	stride     int
}

func NewMaxPool2D[B tensor.Backend](kernelSize, stride int) *MaxPool2D[B] {
	return &MaxPool2D[B]{kernelSize: kernelSize, stride: stride}
}

func (m *MaxPool2D[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := x.Backend()
	return tensor.New[float32](backend.MaxPool2D(x.Raw(), m.kernelSize, m.stride), backend)
}

func (m *MaxPool2D[B]) Parameters() []*Parameter[B] { return nil }
