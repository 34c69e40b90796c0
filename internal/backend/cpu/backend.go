// Package cpu is the pure-Go reference backend. Kernels favor clarity
// over vectorization; every operation runs on a single goroutine.
package cpu

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"github.com/grava-ml/grava/internal/tensor"
)

// Backend implements tensor.Backend on the host CPU.
type Backend struct {
	name string
}

// New creates a CPU backend. The name embeds the detected processor
// brand so printed tensors and logs identify the machine they ran on.
func New() *Backend {
	brand := strings.TrimSpace(cpuid.CPU.BrandName)
	if brand == "" {
		brand = "unknown"
	}
	return &Backend{name: fmt.Sprintf("cpu[%s]", brand)}
}

func (b *Backend) Name() string          { return b.name }
func (b *Backend) Device() tensor.Device { return tensor.CPU }

// number covers the dtypes arithmetic kernels operate on.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// float covers the dtypes transcendental and conv kernels support.
type float interface {
	~float32 | ~float64
}

// view reinterprets a Raw's buffer as a typed slice. T must match the
// tensor's dtype.
func view[T number](r *tensor.Raw) []T {
	var z T
	switch any(z).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	case uint8:
		return any(r.AsUint8()).([]T)
	default:
		panic(fmt.Sprintf("cpu: no view for %T", z))
	}
}

func badDType(op string, dt tensor.DataType) string {
	return fmt.Sprintf("cpu: %s: unsupported dtype %s", op, dt)
}
