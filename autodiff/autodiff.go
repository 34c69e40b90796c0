// Package autodiff exposes reverse-mode automatic differentiation.
//
// Wrap a compute backend, record a forward pass, then walk it
// backwards:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := ... // tensor ops on backend
//	grads := autodiff.Backward(loss)
//	backend.Tape().Clear()
package autodiff

import (
	"github.com/grava-ml/grava/internal/autodiff"
	"github.com/grava-ml/grava/internal/tensor"
)

// Backend decorates an inner backend with gradient recording.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New wraps inner with a fresh gradient tape.
func New[B tensor.Backend](inner B) *Backend[B] {
	return autodiff.New(inner)
}

// Backward runs reverse-mode differentiation from loss with a ones
// seed gradient, returning gradients keyed by raw-tensor identity.
func Backward[T tensor.DType, B tensor.Backend](loss *tensor.Tensor[T, *Backend[B]]) map[*tensor.Raw]*tensor.Raw {
	return autodiff.Backward(loss)
}
