package cpu

import (
	"fmt"

	"github.com/grava-ml/grava/internal/tensor"
)

// MaxPool2D applies max pooling over an [N, C, H, W] tensor with a
// square window. H and W must divide evenly given the stride.
func (b *Backend) MaxPool2D(input *tensor.Raw, kernelSize, stride int) *tensor.Raw {
	if len(input.Shape()) != 4 {
		panic(fmt.Sprintf("cpu: MaxPool2D: want 4-d input, got %v", input.Shape()))
	}
	switch input.DType() {
	case tensor.Float32:
		return maxPool2d[float32](input, kernelSize, stride)
	case tensor.Float64:
		return maxPool2d[float64](input, kernelSize, stride)
	default:
		panic(badDType("MaxPool2D", input.DType()))
	}
}

func maxPool2d[T float](input *tensor.Raw, kernelSize, stride int) *tensor.Raw {
	is := input.Shape()
	n, c, h, w := is[0], is[1], is[2], is[3]
	hOut := (h-kernelSize)/stride + 1
	wOut := (w-kernelSize)/stride + 1

	out := tensor.MustNewRaw(tensor.Shape{n, c, hOut, wOut}, input.DType(), input.Device())
	in, od := view[T](input), view[T](out)

	outIdx := 0
	for ni := 0; ni < n; ni++ {
		for ci := 0; ci < c; ci++ {
			plane := in[((ni*c+ci)*h)*w : ((ni*c+ci)*h+h)*w]
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					maxV := plane[(oh*stride)*w+ow*stride]
					for kh := 0; kh < kernelSize; kh++ {
						row := (oh*stride + kh) * w
						for kw := 0; kw < kernelSize; kw++ {
							if v := plane[row+ow*stride+kw]; v > maxV {
								maxV = v
							}
						}
					}
					od[outIdx] = maxV
					outIdx++
				}
			}
		}
	}
	return out
}

// MaxPool2DBackward routes each output gradient to the input position
// that held the window maximum. maxIndices holds one flat input index
// per output element, in output order.
func (b *Backend) MaxPool2DBackward(input, outputGrad *tensor.Raw, maxIndices []int, kernelSize, stride int) *tensor.Raw {
	switch input.DType() {
	case tensor.Float32:
		return maxPool2dBackward[float32](input, outputGrad, maxIndices)
	case tensor.Float64:
		return maxPool2dBackward[float64](input, outputGrad, maxIndices)
	default:
		panic(badDType("MaxPool2DBackward", input.DType()))
	}
}

func maxPool2dBackward[T float](input, outputGrad *tensor.Raw, maxIndices []int) *tensor.Raw {
	grad := tensor.MustNewRaw(input.Shape(), input.DType(), input.Device())
	gd, od := view[T](grad), view[T](outputGrad)
	for i, src := range maxIndices {
		gd[src] += od[i]
	}
	return grad
}
