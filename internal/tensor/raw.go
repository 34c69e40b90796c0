package tensor

import (
	"fmt"
	"unsafe"
)

// Raw is the untyped tensor: a contiguous row-major buffer plus shape,
// dtype and device. Typed access goes through the AsXxx views, which
// reinterpret the buffer without copying.
//
// Operations never mutate their operands. In-place writes happen only
// through CopyFrom or a typed view, which is how optimizers update
// parameters between training steps.
type Raw struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw allocates a zeroed tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType, device Device) (*Raw, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Raw{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustNewRaw is NewRaw for shapes already known to be valid.
func MustNewRaw(shape Shape, dtype DataType, device Device) *Raw {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return r
}

func (r *Raw) Shape() Shape     { return r.shape }
func (r *Raw) DType() DataType  { return r.dtype }
func (r *Raw) Device() Device   { return r.device }
func (r *Raw) NumElements() int { return r.shape.NumElements() }
func (r *Raw) Data() []byte     { return r.data }

// View returns a tensor sharing this buffer under a different shape.
// The element count must match.
func (r *Raw) View(shape Shape) (*Raw, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("tensor: cannot view %v as %v: element count %d != %d",
			r.shape, shape, r.NumElements(), shape.NumElements())
	}
	return &Raw{data: r.data, shape: shape.Clone(), dtype: r.dtype, device: r.device}, nil
}

// Clone returns a deep copy with its own buffer.
func (r *Raw) Clone() *Raw {
	out := MustNewRaw(r.shape, r.dtype, r.device)
	copy(out.data, r.data)
	return out
}

// CopyFrom overwrites this tensor's data with src's. Shapes and dtypes
// must match.
func (r *Raw) CopyFrom(src *Raw) error {
	if r.dtype != src.dtype || !r.shape.Equal(src.shape) {
		return fmt.Errorf("tensor: copy mismatch: %v/%s into %v/%s",
			src.shape, src.dtype, r.shape, r.dtype)
	}
	copy(r.data, src.data)
	return nil
}

func (r *Raw) String() string {
	return fmt.Sprintf("Raw(shape=%v, dtype=%s, device=%s)", r.shape, r.dtype, r.device)
}

// Typed views. Each reinterprets the byte buffer; the caller must only
// use the view matching the tensor's dtype.

func (r *Raw) AsFloat32() []float32 { return asSlice[float32](r, Float32) }
func (r *Raw) AsFloat64() []float64 { return asSlice[float64](r, Float64) }
func (r *Raw) AsInt32() []int32     { return asSlice[int32](r, Int32) }
func (r *Raw) AsInt64() []int64     { return asSlice[int64](r, Int64) }
func (r *Raw) AsUint8() []uint8     { return asSlice[uint8](r, Uint8) }
func (r *Raw) AsBool() []bool       { return asSlice[bool](r, Bool) }

func asSlice[T any](r *Raw, want DataType) []T {
	if r.dtype != want {
		panic(fmt.Sprintf("tensor: %s view of %s tensor", want, r.dtype))
	}
	n := r.NumElements()
	if n == 0 || len(r.data) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}
