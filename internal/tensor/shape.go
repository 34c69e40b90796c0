package tensor

import "fmt"

// Shape holds the extent of each tensor dimension. Shape{2, 3} is a
// 2x3 matrix; the empty shape is a scalar.
type Shape []int

// NumElements returns the product of all dimensions (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate reports an error if any dimension is not positive.
func (s Shape) Validate() error {
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("shape: dimension %d is %d, must be > 0", i, d)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Strides returns row-major strides in elements.
// Shape{2, 3, 4} -> [12, 4, 1].
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// BroadcastShapes computes the result shape of combining a and b under
// NumPy broadcasting rules: dimensions are aligned from the right and
// each pair must be equal or contain a 1. The bool result reports
// whether any broadcasting is needed at all.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Shape, n)
	needed := len(a) != len(b)

	for i := 0; i < n; i++ {
		da, db := 1, 1
		if i < len(a) {
			da = a[len(a)-1-i]
		}
		if i < len(b) {
			db = b[len(b)-1-i]
		}
		switch {
		case da == db:
			out[n-1-i] = da
		case da == 1:
			out[n-1-i] = db
			needed = true
		case db == 1:
			out[n-1-i] = da
			needed = true
		default:
			return nil, false, fmt.Errorf("shape: cannot broadcast %v with %v (dim %d: %d vs %d)",
				a, b, n-1-i, da, db)
		}
	}
	return out, needed, nil
}
