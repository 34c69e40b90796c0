package mnist

import (
	"fmt"
)

// Image dimensions of the dataset.
const (
	Rows       = 28
	Cols       = 28
	ImageSize  = Rows * Cols
	NumClasses = 10
)

// Dataset holds images as normalized float32 pixels in [0, 1], flat
// row-major [N * 784], and labels as int32 digits.
type Dataset struct {
	Images []float32
	Labels []int32
	N      int
}

// Load reads the train and test splits from the cache directory,
// downloading them first if needed.
func Load(dir string) (train, test *Dataset, err error) {
	paths, err := Download(dir)
	if err != nil {
		return nil, nil, err
	}
	train, err = loadSplit(paths["train-images"], paths["train-labels"])
	if err != nil {
		return nil, nil, err
	}
	test, err = loadSplit(paths["test-images"], paths["test-labels"])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func loadSplit(imagePath, labelPath string) (*Dataset, error) {
	pixels, count, rows, cols, err := ReadImageFile(imagePath)
	if err != nil {
		return nil, err
	}
	if rows != Rows || cols != Cols {
		return nil, fmt.Errorf("mnist: %s has %dx%d images, want %dx%d", imagePath, rows, cols, Rows, Cols)
	}
	labels, err := ReadLabelFile(labelPath)
	if err != nil {
		return nil, err
	}
	if len(labels) != count {
		return nil, fmt.Errorf("mnist: %d images but %d labels", count, len(labels))
	}
	return FromRaw(pixels, labels), nil
}

// FromRaw builds a Dataset from uint8 pixels and labels, normalizing
// pixels to [0, 1].
func FromRaw(pixels []uint8, labels []uint8) *Dataset {
	d := &Dataset{
		Images: make([]float32, len(pixels)),
		Labels: make([]int32, len(labels)),
		N:      len(labels),
	}
	for i, p := range pixels {
		d.Images[i] = float32(p) / 255
	}
	for i, l := range labels {
		d.Labels[i] = int32(l)
	}
	return d
}

// Image returns the i-th image's pixels as a flat 784-length slice.
func (d *Dataset) Image(i int) []float32 {
	return d.Images[i*ImageSize : (i+1)*ImageSize]
}

// Subset returns a dataset of the first n examples, useful for quick
// runs on a slice of the data.
func (d *Dataset) Subset(n int) *Dataset {
	if n > d.N {
		n = d.N
	}
	return &Dataset{
		Images: d.Images[:n*ImageSize],
		Labels: d.Labels[:n],
		N:      n,
	}
}

// Split divides the dataset at ratio into two parts, e.g. 0.9 for a
// 90/10 train/validation split.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	cut := int(float64(d.N) * ratio)
	first := &Dataset{
		Images: d.Images[:cut*ImageSize],
		Labels: d.Labels[:cut],
		N:      cut,
	}
	second := &Dataset{
		Images: d.Images[cut*ImageSize:],
		Labels: d.Labels[cut:],
		N:      d.N - cut,
	}
	return first, second
}
