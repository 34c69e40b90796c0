package ops

import (
	"fmt"
	"math"

	"github.com/grava-ml/grava/internal/tensor"
)

// CrossEntropyOp records the fused softmax + negative-log-likelihood
// loss over a batch of logits.
//
// Forward (per row, with the log-sum-exp trick for stability):
//
//	loss_i = log(sum_j exp(x_ij - max_i)) + max_i - x_i,target_i
//	loss   = mean_i(loss_i)
//
// Backward:
//
//	dx = (softmax(x) - onehot(target)) / batch * outputGrad
//
// Targets are class indices and receive no gradient.
type CrossEntropyOp struct {
	logits  *tensor.Raw // [batch, classes]
	targets *tensor.Raw // [batch] int32
	out     *tensor.Raw // [1]
}

func NewCrossEntropyOp(logits, targets, out *tensor.Raw) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, out: out}
}

func (op *CrossEntropyOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.logits, op.targets} }
func (op *CrossEntropyOp) Output() *tensor.Raw   { return op.out }

func (op *CrossEntropyOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	scale := scalarValue(outputGrad)
	var grad *tensor.Raw
	switch op.logits.DType() {
	case tensor.Float32:
		grad = crossEntropyBackward[float32](op.logits, op.targets, scale)
	case tensor.Float64:
		grad = crossEntropyBackward[float64](op.logits, op.targets, scale)
	default:
		panic(fmt.Sprintf("ops: CrossEntropy: unsupported dtype %s", op.logits.DType()))
	}
	return []*tensor.Raw{grad, nil}
}

// CrossEntropyForward computes the scalar loss for a [batch, classes]
// logits tensor and [batch] int32 targets.
func CrossEntropyForward(logits, targets *tensor.Raw) *tensor.Raw {
	checkCrossEntropyArgs(logits, targets)
	switch logits.DType() {
	case tensor.Float32:
		return crossEntropyForward[float32](logits, targets)
	case tensor.Float64:
		return crossEntropyForward[float64](logits, targets)
	default:
		panic(fmt.Sprintf("ops: CrossEntropy: unsupported dtype %s", logits.DType()))
	}
}

func checkCrossEntropyArgs(logits, targets *tensor.Raw) {
	ls, ts := logits.Shape(), targets.Shape()
	if len(ls) != 2 {
		panic(fmt.Sprintf("ops: CrossEntropy: logits must be [batch, classes], got %v", ls))
	}
	if len(ts) != 1 || ts[0] != ls[0] {
		panic(fmt.Sprintf("ops: CrossEntropy: targets must be [%d], got %v", ls[0], ts))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("ops: CrossEntropy: targets must be int32, got %s", targets.DType()))
	}
}

func crossEntropyForward[T float32 | float64](logits, targets *tensor.Raw) *tensor.Raw {
	batch, classes := logits.Shape()[0], logits.Shape()[1]
	x := typed[T](logits)
	t := targets.AsInt32()

	var total float64
	for i := 0; i < batch; i++ {
		row := x[i*classes : (i+1)*classes]
		maxV := float64(row[0])
		for _, v := range row[1:] {
			if float64(v) > maxV {
				maxV = float64(v)
			}
		}
		var sum float64
		for _, v := range row {
			sum += math.Exp(float64(v) - maxV)
		}
		target := int(t[i])
		if target < 0 || target >= classes {
			panic(fmt.Sprintf("ops: CrossEntropy: target %d out of range [0, %d)", target, classes))
		}
		total += math.Log(sum) + maxV - float64(row[target])
	}

	out := tensor.MustNewRaw(tensor.Shape{1}, logits.DType(), logits.Device())
	typed[T](out)[0] = T(total / float64(batch))
	return out
}

func crossEntropyBackward[T float32 | float64](logits, targets *tensor.Raw, scale float64) *tensor.Raw {
	batch, classes := logits.Shape()[0], logits.Shape()[1]
	x := typed[T](logits)
	t := targets.AsInt32()

	grad := tensor.MustNewRaw(logits.Shape(), logits.DType(), logits.Device())
	g := typed[T](grad)
	factor := scale / float64(batch)

	for i := 0; i < batch; i++ {
		row := x[i*classes : (i+1)*classes]
		gRow := g[i*classes : (i+1)*classes]

		maxV := float64(row[0])
		for _, v := range row[1:] {
			if float64(v) > maxV {
				maxV = float64(v)
			}
		}
		var sum float64
		for _, v := range row {
			sum += math.Exp(float64(v) - maxV)
		}
		for j, v := range row {
			p := math.Exp(float64(v)-maxV) / sum
			gRow[j] = T(p * factor)
		}
		gRow[t[i]] -= T(factor)
	}
	return grad
}

func typed[T float32 | float64](r *tensor.Raw) []T {
	switch any(*new(T)).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	default:
		return any(r.AsFloat64()).([]T)
	}
}
