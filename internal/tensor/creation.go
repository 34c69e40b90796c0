package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw := MustNewRaw(shape, dataTypeOf[T](), backend.Device())
	return New[T, B](raw, backend)
}

// Ones creates a tensor filled with ones (true for bool).
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return Full[T, B](shape, fromFloat[T](1), backend)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.elems()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor drawn from the standard normal distribution.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.elems()
	for i := range data {
		data[i] = fromFloat[T](rand.NormFloat64())
	}
	return t
}

// Rand creates a tensor drawn uniformly from [0, 1).
func Rand[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.elems()
	for i := range data {
		data[i] = fromFloat[T](rand.Float64())
	}
	return t
}

// Arange creates a 1-D tensor with values start, start+1, ..., end-1.
func Arange[T DType, B Backend](start, end T, backend B) *Tensor[T, B] {
	lo, hi := toFloat(start), toFloat(end)
	n := int(hi - lo)
	if n <= 0 {
		panic(fmt.Sprintf("tensor: Arange(%v, %v) is empty", start, end))
	}
	t := Zeros[T, B](Shape{n}, backend)
	data := t.elems()
	for i := range data {
		data[i] = fromFloat[T](lo + float64(i))
	}
	return t
}

// Eye creates an n x n identity matrix.
func Eye[T DType, B Backend](n int, backend B) *Tensor[T, B] {
	t := Zeros[T, B](Shape{n, n}, backend)
	data := t.elems()
	for i := 0; i < n; i++ {
		data[i*n+i] = fromFloat[T](1)
	}
	return t
}

// FromSlice creates a tensor from data laid out in row-major order.
// The slice length must match the shape's element count.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("tensor: %d values for shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := Zeros[T, B](shape, backend)
	copy(t.elems(), data)
	return t, nil
}

// fromFloat converts a float64 to the element type T. Bool maps
// nonzero to true.
func fromFloat[T DType](v float64) T {
	var zero T
	switch p := any(&zero).(type) {
	case *float32:
		*p = float32(v)
	case *float64:
		*p = v
	case *int32:
		*p = int32(v)
	case *int64:
		*p = int64(v)
	case *uint8:
		*p = uint8(v)
	case *bool:
		*p = v != 0
	default:
		panic(fmt.Sprintf("tensor: unsupported element type %T", zero))
	}
	return zero
}

func toFloat[T DType](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("tensor: unsupported element type %T", v))
	}
}
