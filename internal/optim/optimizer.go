// Package optim implements gradient-descent parameter update rules.
package optim

import (
	"github.com/grava-ml/grava/internal/tensor"
)

// Optimizer applies one update step from a gradient map produced by
// the gradient tape. The map is keyed by raw-tensor identity, matching
// each parameter's Raw().
type Optimizer interface {
	Step(grads map[*tensor.Raw]*tensor.Raw)
	ZeroGrad()
	LR() float32
}

// gradientFor looks a parameter's gradient up in the tape output.
// Parameters that did not participate in the forward pass have no
// gradient and are skipped by the optimizers.
func gradientFor(grads map[*tensor.Raw]*tensor.Raw, param *tensor.Raw) (*tensor.Raw, bool) {
	g, ok := grads[param]
	return g, ok
}
