package autodiff

import (
	"github.com/grava-ml/grava/internal/autodiff/ops"
	"github.com/grava-ml/grava/internal/tensor"
)

// GradientTape records operations in execution order so gradients can
// be computed by replaying them in reverse. Tapes are not safe for
// concurrent use; the training loop owns one.
type GradientTape struct {
	ops       []ops.Operation
	recording bool
}

func NewGradientTape() *GradientTape {
	return &GradientTape{}
}

// StartRecording turns on recording. Operations executed while the
// tape records are retained until Clear.
func (t *GradientTape) StartRecording() { t.recording = true }

// StopRecording turns recording off without discarding recorded ops,
// letting validation forward passes run gradient-free.
func (t *GradientTape) StopRecording() { t.recording = false }

func (t *GradientTape) IsRecording() bool { return t.recording }

// Record appends an operation. Called by the autodiff backend after
// every forward op while recording.
func (t *GradientTape) Record(op ops.Operation) {
	t.ops = append(t.ops, op)
}

// NumOps reports how many operations are on the tape.
func (t *GradientTape) NumOps() int { return len(t.ops) }

// Clear discards all recorded operations. Call once per training step
// after the optimizer update.
func (t *GradientTape) Clear() {
	t.ops = t.ops[:0]
}

// Backward walks the tape in reverse from output, accumulating
// gradients for every tensor that contributed to it. outputGrad seeds
// the walk (normally ones shaped like the output). The returned map is
// keyed by raw tensor identity; look up parameters by their Raw().
func (t *GradientTape) Backward(output, outputGrad *tensor.Raw, backend tensor.Backend) map[*tensor.Raw]*tensor.Raw {
	// Backward passes call backend ops themselves; suspend recording
	// so they don't append to the tape being walked.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads := map[*tensor.Raw]*tensor.Raw{output: outputGrad}

	for i := len(t.ops) - 1; i >= 0; i-- {
		op := t.ops[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue // this op did not contribute to the output
		}
		inputGrads := op.Backward(outGrad, backend)
		for j, input := range op.Inputs() {
			g := inputGrads[j]
			if g == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, g)
			} else {
				grads[input] = g
			}
		}
	}
	return grads
}
