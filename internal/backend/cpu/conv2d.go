package cpu

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// Conv2D computes a 2-D cross-correlation.
//
//	input:  [N, Cin, H, W]
//	kernel: [Cout, Cin, K, K]
//	output: [N, Cout, (H+2p-K)/stride+1, (W+2p-K)/stride+1]
func (b *Backend) Conv2D(input, kernel *tensor.Raw, stride, padding int) *tensor.Raw {
	checkConvArgs("Conv2D", input, kernel, stride, padding)
	switch input.DType() {
	case tensor.Float32:
		return conv2d[float32](input, kernel, stride, padding)
	case tensor.Float64:
		return conv2d[float64](input, kernel, stride, padding)
	default:
		panic(badDType("Conv2D", input.DType()))
	}
}

func conv2d[T float](input, kernel *tensor.Raw, stride, padding int) *tensor.Raw {
	is, ks := input.Shape(), kernel.Shape()
	n, cin, h, w := is[0], is[1], is[2], is[3]
	cout, k := ks[0], ks[2]

	hOut := (h+2*padding-k)/stride + 1
	wOut := (w+2*padding-k)/stride + 1
	out := tensor.MustNewRaw(tensor.Shape{n, cout, hOut, wOut}, input.DType(), input.Device())

	in, kd, od := view[T](input), view[T](kernel), view[T](out)
	for ni := 0; ni < n; ni++ {
		for co := 0; co < cout; co++ {
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					var acc T
					for ci := 0; ci < cin; ci++ {
						inPlane := in[((ni*cin+ci)*h)*w : ((ni*cin+ci)*h+h)*w]
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
								acc += inPlane[ih*w+iw] * kPlane[kh*k+kw]
							}
						}
					}
					od[((ni*cout+co)*hOut+oh)*wOut+ow] = acc
				}
			}
		}
	}
	return out
}

func checkConvArgs(op string, input, kernel *tensor.Raw, stride, padding int) {
	is, ks := input.Shape(), kernel.Shape()
	if len(is) != 4 || len(ks) != 4 {
		panic(fmt.Sprintf("cpu: %s: want 4-d input and kernel, got %v and %v", op, is, ks))
	}
	if is[1] != ks[1] {
		panic(fmt.Sprintf("cpu: %s: input channels %d != kernel channels %d", op, is[1], ks[1]))
	}
	if ks[2] != ks[3] {
		panic(fmt.Sprintf("cpu: %s: kernel must be square, got %dx%d", op, ks[2], ks[3]))
	}
	if stride < 1 {
		panic(fmt.Sprintf("cpu: %s: stride %d < 1", op, stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("cpu: %s: padding %d < 0", op, padding))
	}
}
