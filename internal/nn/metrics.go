package nn

import "github.com/grava-ml/grava/internal/tensor"

// Accuracy returns the fraction of rows whose argmax over the class
// dimension equals the target label.
func Accuracy[B tensor.Backend](logits *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float32 {
	pred := logits.Argmax(1).Data()
	want := targets.Data()
	if len(pred) == 0 {
		return 0
	}
	correct := 0
	for i := range pred {
		if pred[i] == want[i] {
			correct++
		}
	}
	return float32(correct) / float32(len(pred))
}
