package mnist

import "math/rand"

// Synthetic builds a deterministic stand-in dataset for offline runs
// and tests: each class is a distinct bright horizontal band, with a
// little noise so training is not completely trivial.
func Synthetic(n int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	pixels := make([]uint8, n*ImageSize)
	labels := make([]uint8, n)

	for i := 0; i < n; i++ {
		label := uint8(i % NumClasses)
		labels[i] = label

		img := pixels[i*ImageSize : (i+1)*ImageSize]
		// Band rows 2..4 for class 0, 5..7 for class 1, and so on.
		top := 2 + int(label)*2
		for r := top; r < top+3 && r < Rows; r++ {
			for c := 4; c < Cols-4; c++ {
				img[r*Cols+c] = uint8(200 + rng.Intn(56))
			}
		}
		// Background speckle.
		for k := 0; k < 20; k++ {
			img[rng.Intn(ImageSize)] = uint8(rng.Intn(64))
		}
	}
	return FromRaw(pixels, labels)
}
