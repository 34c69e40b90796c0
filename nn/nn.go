// Package nn exposes neural-network layers, losses and metrics.
package nn

import (
	"github.com/grava-ml/grava/internal/nn"
	"github.com/grava-ml/grava/internal/tensor"
)

// Module is anything with a forward pass and learnable parameters.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named learnable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter wraps a tensor as a named parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully-connected layer: y = x @ W^T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Conv2D is a 2-D convolution layer over [N, C, H, W] inputs.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

func NewConv2D[B tensor.Backend](inChannels, outChannels, kernelSize, stride, padding int, backend B) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelSize, stride, padding, backend)
}

// MaxPool2D downsamples feature maps by window maxima.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

func NewMaxPool2D[B tensor.Backend](kernelSize, stride int) *MaxPool2D[B] {
	return nn.NewMaxPool2D[B](kernelSize, stride)
}

// ReLU applies max(0, x).
type ReLU[B tensor.Backend] = nn.ReLU[B]

func NewReLU[B tensor.Backend]() *ReLU[B] { return nn.NewReLU[B]() }

// Softmax normalizes along a dimension.
type Softmax[B tensor.Backend] = nn.Softmax[B]

func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] { return nn.NewSoftmax[B](dim) }

// Flatten collapses all dimensions after the batch dimension.
type Flatten[B tensor.Backend] = nn.Flatten[B]

func NewFlatten[B tensor.Backend]() *Flatten[B] { return nn.NewFlatten[B]() }

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// MSELoss computes mean((pred - target)^2).
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

func NewMSELoss[B tensor.Backend]() *MSELoss[B] { return nn.NewMSELoss[B]() }

// CrossEntropyLoss fuses softmax and negative log-likelihood.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss[B]()
}

// Accuracy returns the fraction of correctly classified rows.
func Accuracy[B tensor.Backend](logits *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float32 {
	return nn.Accuracy(logits, targets)
}
