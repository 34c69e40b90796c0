package cpu

import (
	"github.com/grava-ml/grava/internal/tensor"
)

// Conv2DInputBackward computes the gradient of a convolution with
// respect to its input: every output-gradient element is scattered
// back through the kernel window that produced it.
func (b *Backend) Conv2DInputBackward(input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	checkConvArgs("Conv2DInputBackward", input, kernel, stride, padding)
	switch input.DType() {
	case tensor.Float32:
		return conv2dInputBackward[float32](input, kernel, outputGrad, stride, padding)
	case tensor.Float64:
		return conv2dInputBackward[float64](input, kernel, outputGrad, stride, padding)
	default:
		panic(badDType("Conv2DInputBackward", input.DType()))
	}
}

func conv2dInputBackward[T float](input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	is, ks, os := input.Shape(), kernel.Shape(), outputGrad.Shape()
	n, cin, h, w := is[0], is[1], is[2], is[3]
	cout, k := ks[0], ks[2]
	hOut, wOut := os[2], os[3]

	grad := tensor.MustNewRaw(is, input.DType(), input.Device())
	kd, gd, od := view[T](kernel), view[T](grad), view[T](outputGrad)

	for ni := 0; ni < n; ni++ {
		for co := 0; co < cout; co++ {
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					g := od[((ni*cout+co)*hOut+oh)*wOut+ow]
					if g == 0 {
						continue
					}
					for ci := 0; ci < cin; ci++ {
						gPlane := gd[((ni*cin+ci)*h)*w : ((ni*cin+ci)*h+h)*w]
						kPlane := kd[((co*cin+ci)*k)*k : ((co*cin+ci)*k+k)*k]
						for kh := 0; kh < k; kh++ {
							ih := oh*stride - padding + kh
							if ih < 0 || ih >= h {
								continue
							}
							for kw := 0; kw < k; kw++ {
								iw := ow*stride - padding + kw
								if iw < 0 || iw >= w {
									continue
								}
								gPlane[ih*w+iw] += g * kPlane[kh*k+kw]
							}
						}
					}
				}
			}
		}
	}
	return grad
}

// Conv2DKernelBackward computes the gradient of a convolution with
// respect to its kernel.
func (b *Backend) Conv2DKernelBackward(input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	checkConvArgs("Conv2DKernelBackward", input, kernel, stride, padding)
	switch input.DType() {
	case tensor.Float32:
		return conv2dKernelBackward[float32](input, kernel, outputGrad, stride, padding)
	case tensor.Float64:
		return conv2dKernelBackward[float64](input, kernel, outputGrad, stride, padding)
	default:
		panic(badDType("Conv2DKernelBackward", input.DType()))
	}
}

func conv2dKernelBackward[T float](input, kernel, outputGrad *tensor.Raw, stride, padding int) *tensor.Raw {
	is, ks, os := input.Shape(), kernel.Shape(), outputGrad.Shape()
	n, cin, h, w := is[0], is[1], is[2], is[3]
	cout, k := ks[0], ks[2]
	hOut, wOut := os[2], os[3]

	grad := tensor.MustNewRaw(ks, kernel.DType(), kernel.Device())
	in, gd, od := view[T](input), view[T](grad), view[T](outputGrad)

	for ni := 0; ni < n; ni++ {
		for co := 0; co < cout; co++ {
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					g := od[((ni*cout+co)*hOut+oh)*wOut+ow]
					if g == 0 {
						continue
					}
					for ci := 0; ci < cin; ci++ {
						inPlane := in[((ni*cin+ci)*h)*w : ((ni*cin+ci)*h+h)*w]
						gPlane := gd[((co*cin+ci)*k)*k : ((co*cin+ci)*k+k)*k]
						for kh := 0; kh < k; kh++ {
							ih := oh*stride - padding + kh
							if ih < 0 || ih >= h {
								continue
							}
							for kw := 0; kw < k; kw++ {
								iw := ow*stride - padding + kw
								if iw < 0 || iw >= w {
									continue
								}
								gPlane[kh*k+kw] += g * inPlane[ih*w+iw]
							}
						}
					}
				}
			}
		}
	}
	return grad
}
