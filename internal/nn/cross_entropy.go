package nn

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// crossEntropyBackend is the extra capability the loss needs beyond
// tensor.Backend. The autodiff decorator provides it.
type crossEntropyBackend interface {
	CrossEntropy(logits, targets *tensor.Raw) *tensor.Raw
}

// CrossEntropyLoss computes the fused softmax/negative-log-likelihood
// loss over [batch, classes] logits and [batch] int32 class targets.
type CrossEntropyLoss[B tensor.Backend] struct{}

func NewCrossEntropyLoss[B tensor.Backend]() *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{}
}

func (l *CrossEntropyLoss[B]) Forward(logits *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	backend := logits.Backend()
	ce, ok := any(backend).(crossEntropyBackend)
	if !ok {
		panic(fmt.Sprintf("nn: backend %s does not support CrossEntropy; wrap it with autodiff.New", backend.Name()))
	}
	return tensor.New[float32](ce.CrossEntropy(logits.Raw(), targets.Raw()), backend)
}
