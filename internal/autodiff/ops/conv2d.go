package ops

import "github.com/grava-ml/grava/internal/tensor"

// Conv2DOp records z = conv2d(input, kernel, stride, padding).
//
// The input gradient is a transposed convolution of the output
// gradient with the kernel; the kernel gradient correlates the input
// with the output gradient. Both are backend kernels, keeping this op
// pure orchestration.
type Conv2DOp struct {
	input, kernel, out *tensor.Raw
	stride, padding    int
}

func NewConv2DOp(input, kernel, out *tensor.Raw, stride, padding int) *Conv2DOp {
	return &Conv2DOp{input: input, kernel: kernel, out: out, stride: stride, padding: padding}
}

func (op *Conv2DOp) Inputs() []*tensor.Raw { return []*tensor.Raw{op.input, op.kernel} }
func (op *Conv2DOp) Output() *tensor.Raw   { return op.out }

func (op *Conv2DOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	inputGrad := backend.Conv2DInputBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)
	kernelGrad := backend.Conv2DKernelBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)
	return []*tensor.Raw{inputGrad, kernelGrad}
}
