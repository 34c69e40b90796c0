package tensor

import (
	"fmt"
	"strings"
)

// Tensor is the typed view over a Raw tensor. T fixes the element type
// at compile time, B fixes the backend so mixed-device expressions fail
// to build instead of failing at runtime.
type Tensor[T DType, B Backend] struct {
	raw     *Raw
	backend B
	grad    *Raw
}

// New wraps an existing Raw tensor. The Raw's dtype must match T.
func New[T DType, B Backend](raw *Raw, backend B) *Tensor[T, B] {
	if raw.DType() != dataTypeOf[T]() {
		panic(fmt.Sprintf("tensor: wrapping %s raw as %s", raw.DType(), dataTypeOf[T]()))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

func (t *Tensor[T, B]) Shape() Shape     { return t.raw.Shape() }
func (t *Tensor[T, B]) DType() DataType  { return t.raw.DType() }
func (t *Tensor[T, B]) Device() Device   { return t.raw.Device() }
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }
func (t *Tensor[T, B]) Raw() *Raw        { return t.raw }
func (t *Tensor[T, B]) Backend() B       { return t.backend }

// Data returns a copy of the elements in row-major order.
func (t *Tensor[T, B]) Data() []T {
	out := make([]T, t.NumElements())
	copy(out, t.elems())
	return out
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("tensor: Item on tensor with %d elements", t.NumElements()))
	}
	return t.elems()[0]
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(idx ...int) T {
	return t.elems()[t.flatIndex(idx)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor[T, B]) Set(value T, idx ...int) {
	t.elems()[t.flatIndex(idx)] = value
}

func (t *Tensor[T, B]) flatIndex(idx []int) int {
	shape := t.raw.Shape()
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d-d tensor", len(idx), len(shape)))
	}
	strides := shape.Strides()
	flat := 0
	for i, j := range idx {
		if j < 0 || j >= shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dim %d (size %d)", j, i, shape[i]))
		}
		flat += j * strides[i]
	}
	return flat
}

func (t *Tensor[T, B]) elems() []T {
	return asSlice[T](t.raw, dataTypeOf[T]())
}

// Clone returns a deep copy that shares nothing with the receiver.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// Detach returns a tensor sharing this data but with no gradient
// attached, useful for treating a value as a constant.
func (t *Tensor[T, B]) Detach() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw, backend: t.backend}
}

// Grad returns the gradient accumulated for this tensor by the last
// backward pass, or nil if none was recorded.
func (t *Tensor[T, B]) Grad() *Tensor[T, B] {
	if t.grad == nil {
		return nil
	}
	return &Tensor[T, B]{raw: t.grad, backend: t.backend}
}

// SetGrad attaches a gradient to this tensor.
func (t *Tensor[T, B]) SetGrad(grad *Raw) { t.grad = grad }

const maxPrintElems = 64

// String renders small tensors with their values and large tensors as
// a shape/dtype summary.
func (t *Tensor[T, B]) String() string {
	n := t.NumElements()
	if n > maxPrintElems {
		return fmt.Sprintf("Tensor(shape=%v, dtype=%s, device=%s)", t.Shape(), t.DType(), t.Device())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor(%s", formatElems(t.elems(), t.Shape()))
	fmt.Fprintf(&sb, ", shape=%v, dtype=%s)", t.Shape(), t.DType())
	return sb.String()
}

func formatElems[T any](data []T, shape Shape) string {
	if len(shape) == 0 {
		return fmt.Sprintf("%v", data[0])
	}
	return formatDim(data, shape, shape.Strides(), 0, 0)
}

func formatDim[T any](data []T, shape Shape, strides []int, dim, offset int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < shape[dim]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		pos := offset + i*strides[dim]
		if dim == len(shape)-1 {
			fmt.Fprintf(&sb, "%v", data[pos])
		} else {
			sb.WriteString(formatDim(data, shape, strides, dim+1, pos))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
