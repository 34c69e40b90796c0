package tensor

// Backend is the compute interface every device implementation
// satisfies. All operations take and return Raw tensors; the typed
// Tensor wrapper adds compile-time dtype safety on top.
//
// Binary element-wise operations follow NumPy broadcasting rules.
// Operations always allocate a fresh output and never mutate their
// operands.
//
// The backward kernels (Conv2DInputBackward, Conv2DKernelBackward,
// MaxPool2DBackward) exist so the autodiff layer can stay pure
// orchestration and leave number crunching to the device.
type Backend interface {
	Name() string
	Device() Device

	// Element-wise binary, with broadcasting.
	Add(a, b *Raw) *Raw
	Sub(a, b *Raw) *Raw
	Mul(a, b *Raw) *Raw
	Div(a, b *Raw) *Raw

	// Element-wise with a scalar operand.
	AddScalar(a *Raw, s float64) *Raw
	MulScalar(a *Raw, s float64) *Raw

	// Element-wise unary.
	Neg(a *Raw) *Raw
	Exp(a *Raw) *Raw
	Log(a *Raw) *Raw
	Sqrt(a *Raw) *Raw
	ReLU(a *Raw) *Raw

	// Linear algebra and structure.
	MatMul(a, b *Raw) *Raw
	Reshape(a *Raw, shape Shape) *Raw
	Transpose(a *Raw, axes ...int) *Raw

	// Reductions. Sum and Mean reduce to a scalar (shape [1]);
	// SumDim and Argmax reduce one dimension.
	Sum(a *Raw) *Raw
	Mean(a *Raw) *Raw
	SumDim(a *Raw, dim int) *Raw
	Argmax(a *Raw, dim int) *Raw
	Softmax(a *Raw, dim int) *Raw

	// Convolution and pooling over [N, C, H, W] tensors.
	Conv2D(input, kernel *Raw, stride, padding int) *Raw
	Conv2DInputBackward(input, kernel, outputGrad *Raw, stride, padding int) *Raw
	Conv2DKernelBackward(input, kernel, outputGrad *Raw, stride, padding int) *Raw
	MaxPool2D(input *Raw, kernelSize, stride int) *Raw
	MaxPool2DBackward(input, outputGrad *Raw, maxIndices []int, kernelSize, stride int) *Raw
}
