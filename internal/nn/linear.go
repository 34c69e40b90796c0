package nn

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// Linear is a fully-connected layer computing y = x @ W^T + b.
// Weight shape is [outFeatures, inFeatures], bias is [outFeatures].
type Linear[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]

	inFeatures  int
	outFeatures int
}

// NewLinear creates a fully-connected layer with Xavier-initialized
// weights and zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	w := tensor.Zeros[float32](tensor.Shape{outFeatures, inFeatures}, backend)
	xavierUniform(w, inFeatures, outFeatures)
	b := tensor.Zeros[float32](tensor.Shape{outFeatures}, backend)

	return &Linear[B]{
		weight:      NewParameter(fmt.Sprintf("linear%dx%d.weight", inFeatures, outFeatures), w),
		bias:        NewParameter(fmt.Sprintf("linear%dx%d.bias", inFeatures, outFeatures), b),
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
	}
}

// Forward applies the layer to a [batch, inFeatures] input.
func (l *Linear[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := x.MatMul(l.weight.Tensor().T())
	// Reshape the bias to a row so it broadcasts over the batch.
	return out.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
}

func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }
func (l *Linear[B]) Bias() *Parameter[B]   { return l.bias }
