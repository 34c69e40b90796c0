package nn

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// Conv2D is a 2-D convolution layer over [N, C, H, W] inputs with a
// square kernel. Weight shape is [outChannels, inChannels, K, K],
// bias is [outChannels].
type Conv2D[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]

	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int
}

func NewConv2D[B tensor.Backend](inChannels, outChannels, kernelSize, stride, padding int, backend B) *Conv2D[B] {
	w := tensor.Zeros[float32](tensor.Shape{outChannels, inChannels, kernelSize, kernelSize}, backend)
	fan := kernelSize * kernelSize
	xavierUniform(w, inChannels*fan, outChannels*fan)
	b := tensor.Zeros[float32](tensor.Shape{outChannels}, backend)

	name := fmt.Sprintf("conv%dx%dk%d", inChannels, outChannels, kernelSize)
	return &Conv2D[B]{
		weight:      NewParameter(name+".weight", w),
		bias:        NewParameter(name+".bias", b),
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
	}
}

func (c *Conv2D[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := x.Backend()
	raw := backend.Conv2D(x.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding)
	out := tensor.New[float32](raw, backend)
	// Bias broadcasts over batch and spatial dimensions.
	return out.Add(c.bias.Tensor().Reshape(1, c.outChannels, 1, 1))
}

func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.weight, c.bias}
}
