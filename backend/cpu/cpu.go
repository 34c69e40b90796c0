// Package cpu exposes the pure-Go CPU backend.
package cpu

import (
	"github.com/grava-ml/grava/internal/backend/cpu"
)

// Backend implements tensor.Backend on the host CPU.
type Backend = cpu.Backend

// New creates a CPU backend.
func New() *Backend {
	return cpu.New()
}
