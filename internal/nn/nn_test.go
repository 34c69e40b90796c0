package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grava-ml/grava/internal/autodiff"
	"github.com/grava-ml/grava/internal/backend/cpu"
	"github.com/grava-ml/grava/internal/nn"
	"github.com/grava-ml/grava/internal/tensor"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

func newBackend() adBackend {
	return autodiff.New(cpu.New())
}

func TestLinearForward(t *testing.T) {
	b := newBackend()
	layer := nn.NewLinear(3, 2, b)

	// Overwrite the random init with known values.
	copy(layer.Weight().Tensor().Raw().AsFloat32(), []float32{
		1, 0, 0,
		0, 1, 0,
	})
	copy(layer.Bias().Tensor().Raw().AsFloat32(), []float32{10, 20})

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)

	out := layer.Forward(x)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.InDeltaSlice(t, []float32{11, 22, 14, 25}, out.Data(), 1e-5)
}

func TestLinearParameters(t *testing.T) {
	b := newBackend()
	layer := nn.NewLinear(4, 3, b)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 4}))
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{3}))
	assert.NotEmpty(t, params[0].Name())
}

func TestConv2DForwardShape(t *testing.T) {
	b := newBackend()
	layer := nn.NewConv2D(1, 6, 5, 1, 0, b)

	x := tensor.Zeros[float32](tensor.Shape{2, 1, 28, 28}, b)
	out := layer.Forward(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 6, 24, 24}),
		"shape = %v", out.Shape())
}

func TestConv2DBiasIsAdded(t *testing.T) {
	b := newBackend()
	layer := nn.NewConv2D(1, 1, 1, 1, 0, b)
	copy(layer.Parameters()[0].Tensor().Raw().AsFloat32(), []float32{0}) // zero kernel
	copy(layer.Parameters()[1].Tensor().Raw().AsFloat32(), []float32{3}) // bias

	x := tensor.Ones[float32](tensor.Shape{1, 1, 2, 2}, b)
	out := layer.Forward(x)
	assert.InDeltaSlice(t, []float32{3, 3, 3, 3}, out.Data(), 1e-5)
}

func TestMaxPoolAndFlatten(t *testing.T) {
	b := newBackend()
	pool := nn.NewMaxPool2D[adBackend](2, 2)
	flatten := nn.NewFlatten[adBackend]()

	x, err := tensor.FromSlice([]float32{
		1, 2, 5, 6,
		3, 4, 7, 8,
		9, 10, 13, 14,
		11, 12, 15, 16,
	}, tensor.Shape{1, 1, 4, 4}, b)
	require.NoError(t, err)

	pooled := pool.Forward(x)
	require.True(t, pooled.Shape().Equal(tensor.Shape{1, 1, 2, 2}))
	assert.InDeltaSlice(t, []float32{4, 8, 12, 16}, pooled.Data(), 1e-5)

	flat := flatten.Forward(pooled)
	assert.True(t, flat.Shape().Equal(tensor.Shape{1, 4}))
}

func TestSequentialChainsAndCollectsParams(t *testing.T) {
	b := newBackend()
	model := nn.NewSequential[adBackend](
		nn.NewLinear(4, 8, b),
		nn.NewReLU[adBackend](),
		nn.NewLinear(8, 2, b),
	)

	x := tensor.Randn[float32](tensor.Shape{3, 4}, b)
	out := model.Forward(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Len(t, model.Parameters(), 4)
}

func TestMSELoss(t *testing.T) {
	b := newBackend()
	loss := nn.NewMSELoss[adBackend]()

	pred, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, b)
	target, _ := tensor.FromSlice([]float32{1, 2, 3, 8}, tensor.Shape{4}, b)

	got := loss.Forward(pred, target)
	require.Equal(t, 1, got.NumElements())
	assert.InDelta(t, 4.0, float64(got.Item()), 1e-5) // (4-8)^2 / 4
}

func TestMSELossGradientFlows(t *testing.T) {
	b := newBackend()
	loss := nn.NewMSELoss[adBackend]()

	pred, _ := tensor.FromSlice([]float32{3, 5}, tensor.Shape{2}, b)
	target, _ := tensor.FromSlice([]float32{1, 1}, tensor.Shape{2}, b)

	b.Tape().StartRecording()
	l := loss.Forward(pred, target)
	grads := autodiff.Backward(l)

	g, ok := grads[pred.Raw()]
	require.True(t, ok, "no gradient for predictions")
	// d mean((p-t)^2) / dp = 2(p-t)/n = [2, 4].
	assert.InDeltaSlice(t, []float32{2, 4}, g.AsFloat32(), 1e-5)
}

func TestCrossEntropyLossThroughBackend(t *testing.T) {
	b := newBackend()
	loss := nn.NewCrossEntropyLoss[adBackend]()

	logits, _ := tensor.FromSlice([]float32{0, 0, 0}, tensor.Shape{1, 3}, b)
	targets, _ := tensor.FromSlice([]int32{1}, tensor.Shape{1}, b)

	got := loss.Forward(logits, targets)
	// Uniform logits over 3 classes: loss = ln(3).
	assert.InDelta(t, 1.0986, float64(got.Item()), 1e-3)
}

func TestCrossEntropyLossRequiresAutodiff(t *testing.T) {
	raw := cpu.New()
	loss := nn.NewCrossEntropyLoss[*cpu.Backend]()

	logits := tensor.Zeros[float32](tensor.Shape{1, 3}, raw)
	targets := tensor.Zeros[int32](tensor.Shape{1}, raw)

	assert.Panics(t, func() { loss.Forward(logits, targets) })
}

func TestAccuracy(t *testing.T) {
	b := newBackend()
	logits, _ := tensor.FromSlice([]float32{
		0.9, 0.1,
		0.2, 0.8,
		0.7, 0.3,
		0.4, 0.6,
	}, tensor.Shape{4, 2}, b)
	targets, _ := tensor.FromSlice([]int32{0, 1, 1, 1}, tensor.Shape{4}, b)

	assert.InDelta(t, 0.75, float64(nn.Accuracy(logits, targets)), 1e-6)
}
