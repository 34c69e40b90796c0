package ops

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// reduceBroadcast folds a gradient computed at the broadcast shape
// back down to an operand's original shape: leading broadcast
// dimensions are summed away, and size-1 dimensions that were expanded
// are summed back to 1.
func reduceBroadcast(grad *tensor.Raw, inputShape tensor.Shape, backend tensor.Backend) *tensor.Raw {
	g := grad

	for len(g.Shape()) > len(inputShape) {
		g = backend.SumDim(g, 0)
	}

	for d := 0; d < len(inputShape); d++ {
		if inputShape[d] == 1 && g.Shape()[d] != 1 {
			keep := g.Shape().Clone()
			keep[d] = 1
			g = backend.Reshape(backend.SumDim(g, d), keep)
		}
	}

	if !g.Shape().Equal(inputShape) {
		// Ranks match and no dimension needed reduction, so only a
		// reshape separates the two (e.g. [1] vs scalar-like shapes).
		g = backend.Reshape(g, inputShape)
	}
	return g
}

// onesLike allocates a tensor of the given shape filled with 1.
func onesLike(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.Raw {
	out := tensor.MustNewRaw(shape, dtype, device)
	switch dtype {
	case tensor.Float32:
		data := out.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("ops: onesLike: unsupported dtype %s", dtype))
	}
	return out
}

// scalarValue reads the single element of a shape-[1] float tensor.
func scalarValue(r *tensor.Raw) float64 {
	if r.NumElements() != 1 {
		panic(fmt.Sprintf("ops: expected scalar, got shape %v", r.Shape()))
	}
	switch r.DType() {
	case tensor.Float32:
		return float64(r.AsFloat32()[0])
	case tensor.Float64:
		return r.AsFloat64()[0]
	default:
		panic(fmt.Sprintf("ops: scalarValue: unsupported dtype %s", r.DType()))
	}
}
