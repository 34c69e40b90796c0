package tensor_test

import (
	"testing"

	"github.com/grava-ml/grava/internal/backend/cpu"
	"github.com/grava-ml/grava/internal/tensor"
)

func assertFloat32Slice(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("element %d = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestZerosOnesFull(t *testing.T) {
	b := cpu.New()

	z := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
	assertFloat32Slice(t, z.Data(), []float32{0, 0, 0, 0, 0, 0})

	o := tensor.Ones[float32](tensor.Shape{2, 2}, b)
	assertFloat32Slice(t, o.Data(), []float32{1, 1, 1, 1})

	f := tensor.Full[float32](tensor.Shape{3}, 2.5, b)
	assertFloat32Slice(t, f.Data(), []float32{2.5, 2.5, 2.5})
}

func TestFromSlice(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}

	if _, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, b); err == nil {
		t.Error("FromSlice with wrong length: want error")
	}
}

func TestAtSet(t *testing.T) {
	b := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
	x.Set(7, 1, 1)
	if got := x.At(1, 1); got != 7 {
		t.Errorf("At(1,1) = %v, want 7", got)
	}
	if got := x.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %v, want 0", got)
	}
}

func TestArangeEye(t *testing.T) {
	b := cpu.New()

	a := tensor.Arange[float32](0, 5, b)
	assertFloat32Slice(t, a.Data(), []float32{0, 1, 2, 3, 4})

	e := tensor.Eye[float32](3, b)
	assertFloat32Slice(t, e.Data(), []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func TestArithmetic(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	y, _ := tensor.FromSlice([]float32{10, 20, 30, 40}, tensor.Shape{2, 2}, b)

	assertFloat32Slice(t, x.Add(y).Data(), []float32{11, 22, 33, 44})
	assertFloat32Slice(t, y.Sub(x).Data(), []float32{9, 18, 27, 36})
	assertFloat32Slice(t, x.Mul(y).Data(), []float32{10, 40, 90, 160})
	assertFloat32Slice(t, y.Div(x).Data(), []float32{10, 10, 10, 10})
	assertFloat32Slice(t, x.AddScalar(1).Data(), []float32{2, 3, 4, 5})
	assertFloat32Slice(t, x.MulScalar(2).Data(), []float32{2, 4, 6, 8})
}

func TestBroadcastAdd(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	row, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{1, 3}, b)

	got := x.Add(row)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	assertFloat32Slice(t, got.Data(), []float32{11, 22, 33, 14, 25, 36})
}

func TestReshapeSharesData(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)

	y := x.Reshape(3, 2)
	if !y.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", y.Shape())
	}
	assertFloat32Slice(t, y.Data(), []float32{1, 2, 3, 4, 5, 6})
}

func TestTranspose(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)

	y := x.T()
	if !y.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", y.Shape())
	}
	assertFloat32Slice(t, y.Data(), []float32{1, 4, 2, 5, 3, 6})
}

func TestMatMul(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	y, _ := tensor.FromSlice([]float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2}, b)

	got := x.MatMul(y)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", got.Shape())
	}
	assertFloat32Slice(t, got.Data(), []float32{58, 64, 139, 154})
}

func TestReductions(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)

	if got := x.Sum().Item(); got != 21 {
		t.Errorf("Sum = %v, want 21", got)
	}
	if got := x.Mean().Item(); got != 3.5 {
		t.Errorf("Mean = %v, want 3.5", got)
	}
	assertFloat32Slice(t, x.SumDim(0).Data(), []float32{5, 7, 9})
	assertFloat32Slice(t, x.SumDim(1).Data(), []float32{6, 15})
}

func TestArgmax(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{
		0.1, 0.7, 0.2,
		0.9, 0.05, 0.05,
	}, tensor.Shape{2, 3}, b)

	got := x.Argmax(1)
	if !got.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", got.Shape())
	}
	data := got.Data()
	if data[0] != 1 || data[1] != 0 {
		t.Errorf("Argmax = %v, want [1 0]", data)
	}
}

func TestItemPanicsOnNonScalar(t *testing.T) {
	b := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 2}, b)
	defer func() {
		if recover() == nil {
			t.Error("Item on 2x2 tensor: want panic")
		}
	}()
	_ = x.Item()
}

func TestCloneIsIndependent(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	y := x.Clone()
	y.Set(99, 0, 0)
	if got := x.At(0, 0); got != 1 {
		t.Errorf("original modified through clone: At(0,0) = %v, want 1", got)
	}
}
