package cpu

import (
	"math"

	"github.com/grava-ml/grava/internal/tensor"
)

// Add returns x + y with broadcasting.
func (b *Backend) Add(x, y *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return binaryOp(x, y, func(a, c float32) float32 { return a + c })
	case tensor.Float64:
		return binaryOp(x, y, func(a, c float64) float64 { return a + c })
	case tensor.Int32:
		return binaryOp(x, y, func(a, c int32) int32 { return a + c })
	case tensor.Int64:
		return binaryOp(x, y, func(a, c int64) int64 { return a + c })
	case tensor.Uint8:
		return binaryOp(x, y, func(a, c uint8) uint8 { return a + c })
	default:
		panic(badDType("Add", x.DType()))
	}
}

// Sub returns x - y with broadcasting.
func (b *Backend) Sub(x, y *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return binaryOp(x, y, func(a, c float32) float32 { return a - c })
	case tensor.Float64:
		return binaryOp(x, y, func(a, c float64) float64 { return a - c })
	case tensor.Int32:
		return binaryOp(x, y, func(a, c int32) int32 { return a - c })
	case tensor.Int64:
		return binaryOp(x, y, func(a, c int64) int64 { return a - c })
	case tensor.Uint8:
		return binaryOp(x, y, func(a, c uint8) uint8 { return a - c })
	default:
		panic(badDType("Sub", x.DType()))
	}
}

// Mul returns x * y element-wise with broadcasting.
func (b *Backend) Mul(x, y *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return binaryOp(x, y, func(a, c float32) float32 { return a * c })
	case tensor.Float64:
		return binaryOp(x, y, func(a, c float64) float64 { return a * c })
	case tensor.Int32:
		return binaryOp(x, y, func(a, c int32) int32 { return a * c })
	case tensor.Int64:
		return binaryOp(x, y, func(a, c int64) int64 { return a * c })
	case tensor.Uint8:
		return binaryOp(x, y, func(a, c uint8) uint8 { return a * c })
	default:
		panic(badDType("Mul", x.DType()))
	}
}

// Div returns x / y element-wise with broadcasting. Integer dtypes
// truncate like Go's / operator.
func (b *Backend) Div(x, y *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return binaryOp(x, y, func(a, c float32) float32 { return a / c })
	case tensor.Float64:
		return binaryOp(x, y, func(a, c float64) float64 { return a / c })
	case tensor.Int32:
		return binaryOp(x, y, func(a, c int32) int32 { return a / c })
	case tensor.Int64:
		return binaryOp(x, y, func(a, c int64) int64 { return a / c })
	case tensor.Uint8:
		return binaryOp(x, y, func(a, c uint8) uint8 { return a / c })
	default:
		panic(badDType("Div", x.DType()))
	}
}

// AddScalar returns x + s element-wise.
func (b *Backend) AddScalar(x *tensor.Raw, s float64) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		c := float32(s)
		return unaryOp(x, func(a float32) float32 { return a + c })
	case tensor.Float64:
		return unaryOp(x, func(a float64) float64 { return a + s })
	case tensor.Int32:
		c := int32(s)
		return unaryOp(x, func(a int32) int32 { return a + c })
	case tensor.Int64:
		c := int64(s)
		return unaryOp(x, func(a int64) int64 { return a + c })
	default:
		panic(badDType("AddScalar", x.DType()))
	}
}

// MulScalar returns x * s element-wise.
func (b *Backend) MulScalar(x *tensor.Raw, s float64) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		c := float32(s)
		return unaryOp(x, func(a float32) float32 { return a * c })
	case tensor.Float64:
		return unaryOp(x, func(a float64) float64 { return a * s })
	case tensor.Int32:
		c := int32(s)
		return unaryOp(x, func(a int32) int32 { return a * c })
	case tensor.Int64:
		c := int64(s)
		return unaryOp(x, func(a int64) int64 { return a * c })
	default:
		panic(badDType("MulScalar", x.DType()))
	}
}

// Neg returns -x.
func (b *Backend) Neg(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(a float32) float32 { return -a })
	case tensor.Float64:
		return unaryOp(x, func(a float64) float64 { return -a })
	case tensor.Int32:
		return unaryOp(x, func(a int32) int32 { return -a })
	case tensor.Int64:
		return unaryOp(x, func(a int64) int64 { return -a })
	default:
		panic(badDType("Neg", x.DType()))
	}
}

// Exp returns e^x element-wise.
func (b *Backend) Exp(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(a float32) float32 { return float32(math.Exp(float64(a))) })
	case tensor.Float64:
		return unaryOp(x, math.Exp)
	default:
		panic(badDType("Exp", x.DType()))
	}
}

// Log returns the natural logarithm element-wise.
func (b *Backend) Log(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(a float32) float32 { return float32(math.Log(float64(a))) })
	case tensor.Float64:
		return unaryOp(x, math.Log)
	default:
		panic(badDType("Log", x.DType()))
	}
}

// Sqrt returns the square root element-wise.
func (b *Backend) Sqrt(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(a float32) float32 { return float32(math.Sqrt(float64(a))) })
	case tensor.Float64:
		return unaryOp(x, math.Sqrt)
	default:
		panic(badDType("Sqrt", x.DType()))
	}
}

// ReLU returns max(0, x) element-wise.
func (b *Backend) ReLU(x *tensor.Raw) *tensor.Raw {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(x, func(a float32) float32 {
			if a > 0 {
				return a
			}
			return 0
		})
	case tensor.Float64:
		return unaryOp(x, func(a float64) float64 {
			if a > 0 {
				return a
			}
			return 0
		})
	default:
		panic(badDType("ReLU", x.DType()))
	}
}

// unaryOp applies op to every element into a fresh tensor.
func unaryOp[T number](x *tensor.Raw, op func(T) T) *tensor.Raw {
	out := tensor.MustNewRaw(x.Shape(), x.DType(), x.Device())
	xd, od := view[T](x), view[T](out)
	for i, v := range xd {
		od[i] = op(v)
	}
	return out
}

// binaryOp applies op pairwise. Equal shapes take a flat loop;
// otherwise the inputs are broadcast to their common shape.
func binaryOp[T number](x, y *tensor.Raw, op func(T, T) T) *tensor.Raw {
	if x.Shape().Equal(y.Shape()) {
		out := tensor.MustNewRaw(x.Shape(), x.DType(), x.Device())
		xd, yd, od := view[T](x), view[T](y), view[T](out)
		for i := range xd {
			od[i] = op(xd[i], yd[i])
		}
		return out
	}
	return broadcastOp(x, y, op)
}
