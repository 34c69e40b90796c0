// Package tensor is the public API for tensor creation and
// manipulation.
//
// Tensors are generic over their element type and compute backend:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor

import (
	"github.com/grava-ml/grava/internal/tensor"
)

// DType constrains the Go types a tensor may hold: float32, float64,
// int32, int64, uint8, bool.
type DType = tensor.DType

// DataType identifies a tensor's element type at runtime.
type DataType = tensor.DataType

const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device names where tensor data lives.
type Device = tensor.Device

const (
	CPU Device = tensor.CPU
	GPU Device = tensor.GPU
)

// Shape holds the extent of each dimension.
type Shape = tensor.Shape

// Backend is the compute interface device implementations satisfy.
type Backend = tensor.Backend

// Raw is the untyped tensor underlying Tensor.
type Raw = tensor.Raw

// Tensor is a typed, backend-bound multi-dimensional array.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New wraps a Raw tensor in a typed Tensor.
func New[T DType, B Backend](raw *Raw, backend B) *Tensor[T, B] {
	return tensor.New[T, B](raw, backend)
}

// NewRaw allocates a zeroed untyped tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*Raw, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, backend)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, backend)
}

// Randn creates a tensor drawn from the standard normal distribution.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, backend)
}

// Rand creates a tensor drawn uniformly from [0, 1).
func Rand[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, backend)
}

// Arange creates a 1-D tensor with values start, start+1, ..., end-1.
func Arange[T DType, B Backend](start, end T, backend B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, backend)
}

// Eye creates an n x n identity matrix.
func Eye[T DType, B Backend](n int, backend B) *Tensor[T, B] {
	return tensor.Eye[T, B](n, backend)
}

// FromSlice creates a tensor from row-major data.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, backend)
}

// BroadcastShapes computes the NumPy-style broadcast of two shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
