package cpu

import (
	"testing"

	"github.com/grava-ml/grava/internal/tensor"
)

func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.Raw {
	t.Helper()
	r := tensor.MustNewRaw(shape, tensor.Float32, tensor.CPU)
	copy(r.AsFloat32(), data)
	return r
}

func assertFloat32(t *testing.T, got *tensor.Raw, want []float32) {
	t.Helper()
	data := got.AsFloat32()
	if len(data) != len(want) {
		t.Fatalf("length = %d, want %d", len(data), len(want))
	}
	for i := range want {
		if diff := data[i] - want[i]; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("element %d = %v, want %v (full: %v)", i, data[i], want[i], data)
		}
	}
}

func TestName(t *testing.T) {
	b := New()
	if b.Name() == "" {
		t.Error("Name() is empty")
	}
	if b.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", b.Device())
	}
}

func TestBinaryOpsAllocate(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	y := rawFromFloat32(t, []float32{10, 10, 10, 10}, tensor.Shape{4})

	got := b.Add(x, y)
	assertFloat32(t, got, []float32{11, 12, 13, 14})
	// Operands must be left untouched.
	assertFloat32(t, x, []float32{1, 2, 3, 4})

	got = b.AddScalar(x, 5)
	assertFloat32(t, got, []float32{6, 7, 8, 9})
	assertFloat32(t, x, []float32{1, 2, 3, 4})
}

func TestBroadcastColumn(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	col := rawFromFloat32(t, []float32{10, 100}, tensor.Shape{2, 1})

	got := b.Mul(x, col)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	assertFloat32(t, got, []float32{10, 20, 30, 400, 500, 600})
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 1000, 1001, 1002}, tensor.Shape{2, 3})

	got := b.Softmax(x, 1)
	data := got.AsFloat32()
	for r := 0; r < 2; r++ {
		var sum float32
		for c := 0; c < 3; c++ {
			sum += data[r*3+c]
		}
		if diff := sum - 1; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("row %d sums to %v, want 1", r, sum)
		}
	}
	// Both rows see the same relative logits, so the distributions match.
	for c := 0; c < 3; c++ {
		if diff := data[c] - data[3+c]; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("rows diverge at column %d: %v vs %v", c, data[c], data[3+c])
		}
	}
}

func TestConv2DIdentityKernel(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})
	// 1x1 kernel scaling by 2.
	kernel := rawFromFloat32(t, []float32{2}, tensor.Shape{1, 1, 1, 1})

	got := b.Conv2D(input, kernel, 1, 0)
	if !got.Shape().Equal(tensor.Shape{1, 1, 3, 3}) {
		t.Fatalf("shape = %v, want [1 1 3 3]", got.Shape())
	}
	assertFloat32(t, got, []float32{2, 4, 6, 8, 10, 12, 14, 16, 18})
}

func TestConv2DSumKernel(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{1, 1, 3, 3})
	kernel := rawFromFloat32(t, []float32{1, 1, 1, 1}, tensor.Shape{1, 1, 2, 2})

	got := b.Conv2D(input, kernel, 1, 0)
	if !got.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape = %v, want [1 1 2 2]", got.Shape())
	}
	assertFloat32(t, got, []float32{12, 16, 24, 28})
}

func TestConv2DPaddingAndStride(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})
	kernel := rawFromFloat32(t, []float32{1}, tensor.Shape{1, 1, 1, 1})

	got := b.Conv2D(input, kernel, 2, 1)
	// 2x2 input, 1x1 kernel, stride 2, padding 1 -> 2x2 output sampling
	// the padded corners.
	if !got.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape = %v, want [1 1 2 2]", got.Shape())
	}
	assertFloat32(t, got, []float32{0, 0, 0, 4})
}

func TestConv2DGradientsMatchFiniteDifference(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		0.5, -1, 2,
		1.5, 0.25, -0.75,
		-2, 1, 0.5,
	}, tensor.Shape{1, 1, 3, 3})
	kernel := rawFromFloat32(t, []float32{1, -0.5, 0.25, 2}, tensor.Shape{1, 1, 2, 2})

	// Loss = sum(conv output); its gradient w.r.t. the output is ones.
	out := b.Conv2D(input, kernel, 1, 0)
	outGrad := tensor.MustNewRaw(out.Shape(), tensor.Float32, tensor.CPU)
	for i := range outGrad.AsFloat32() {
		outGrad.AsFloat32()[i] = 1
	}

	inGrad := b.Conv2DInputBackward(input, kernel, outGrad, 1, 0)
	kGrad := b.Conv2DKernelBackward(input, kernel, outGrad, 1, 0)

	const eps = 1e-2
	sumConv := func(in, k *tensor.Raw) float32 {
		var s float32
		for _, v := range b.Conv2D(in, k, 1, 0).AsFloat32() {
			s += v
		}
		return s
	}

	for i := range input.AsFloat32() {
		bumped := input.Clone()
		bumped.AsFloat32()[i] += eps
		numeric := (sumConv(bumped, kernel) - sumConv(input, kernel)) / eps
		if diff := numeric - inGrad.AsFloat32()[i]; diff > 1e-2 || diff < -1e-2 {
			t.Errorf("input grad %d = %v, finite difference %v", i, inGrad.AsFloat32()[i], numeric)
		}
	}
	for i := range kernel.AsFloat32() {
		bumped := kernel.Clone()
		bumped.AsFloat32()[i] += eps
		numeric := (sumConv(input, bumped) - sumConv(input, kernel)) / eps
		if diff := numeric - kGrad.AsFloat32()[i]; diff > 1e-2 || diff < -1e-2 {
			t.Errorf("kernel grad %d = %v, finite difference %v", i, kGrad.AsFloat32()[i], numeric)
		}
	}
}

func TestMaxPool2D(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		1, 2, 5, 3,
		4, 8, 6, 7,
		9, 2, 1, 0,
		3, 5, 4, 2,
	}, tensor.Shape{1, 1, 4, 4})

	got := b.MaxPool2D(input, 2, 2)
	if !got.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape = %v, want [1 1 2 2]", got.Shape())
	}
	assertFloat32(t, got, []float32{8, 7, 9, 4})
}

func TestMaxPool2DBackwardRouting(t *testing.T) {
	b := New()
	input := rawFromFloat32(t, []float32{
		1, 2,
		3, 4,
	}, tensor.Shape{1, 1, 2, 2})
	outGrad := rawFromFloat32(t, []float32{10}, tensor.Shape{1, 1, 1, 1})

	got := b.MaxPool2DBackward(input, outGrad, []int{3}, 2, 2)
	assertFloat32(t, got, []float32{0, 0, 0, 10})
}

func TestTransposePermutation(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, []float32{
		1, 2, 3,
		4, 5, 6,
	}, tensor.Shape{2, 3})

	got := b.Transpose(x)
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	assertFloat32(t, got, []float32{1, 4, 2, 5, 3, 6})

	// NCHW -> NHWC style permutation on a 3-d tensor.
	y := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})
	got = b.Transpose(y, 1, 2, 0)
	if !got.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", got.Shape())
	}
	assertFloat32(t, got, []float32{1, 5, 2, 6, 3, 7, 4, 8})
}

func TestSumDimAndArgmax(t *testing.T) {
	b := New()
	x := rawFromFloat32(t, []float32{
		1, 5, 3,
		4, 2, 6,
	}, tensor.Shape{2, 3})

	assertFloat32(t, b.SumDim(x, 0), []float32{5, 7, 9})
	assertFloat32(t, b.SumDim(x, 1), []float32{9, 12})

	am := b.Argmax(x, 1)
	idx := am.AsInt32()
	if idx[0] != 1 || idx[1] != 2 {
		t.Errorf("Argmax = %v, want [1 2]", idx)
	}
}
