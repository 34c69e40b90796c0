package optim

import (
	"math"

	"github.com/grava-ml/grava/internal/nn"
	"github.com/grava-ml/grava/internal/tensor"
)

// AdamConfig configures the Adam optimizer. Zero values for Betas and
// Epsilon fall back to the defaults from Kingma & Ba (2015):
// betas (0.9, 0.999), epsilon 1e-8.
type AdamConfig struct {
	LR      float32
	Betas   [2]float32
	Epsilon float32
}

// Adam keeps per-parameter estimates of the gradient mean (m) and
// uncentered variance (v), corrects their startup bias, and scales
// each coordinate's step by the inverse variance estimate.
type Adam[B tensor.Backend] struct {
	params []*nn.Parameter[B]
	config AdamConfig
	step   int

	m map[*tensor.Raw][]float32
	v map[*tensor.Raw][]float32
}

func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	if config.Betas == [2]float32{} {
		config.Betas = [2]float32{0.9, 0.999}
	}
	if config.Epsilon == 0 {
		config.Epsilon = 1e-8
	}
	return &Adam[B]{
		params: params,
		config: config,
		m:      make(map[*tensor.Raw][]float32),
		v:      make(map[*tensor.Raw][]float32),
	}
}

func (a *Adam[B]) LR() float32 { return a.config.LR }

func (a *Adam[B]) Step(grads map[*tensor.Raw]*tensor.Raw) {
	a.step++
	beta1 := float64(a.config.Betas[0])
	beta2 := float64(a.config.Betas[1])
	// Bias correction: early steps are scaled up because m and v start
	// at zero.
	corr1 := 1 - math.Pow(beta1, float64(a.step))
	corr2 := 1 - math.Pow(beta2, float64(a.step))

	for _, p := range a.params {
		raw := p.Tensor().Raw()
		g, ok := gradientFor(grads, raw)
		if !ok {
			continue
		}
		p.Tensor().SetGrad(g)
		grad := g.AsFloat32()
		data := raw.AsFloat32()

		m, ok := a.m[raw]
		if !ok {
			m = make([]float32, len(data))
			a.m[raw] = m
		}
		v, ok := a.v[raw]
		if !ok {
			v = make([]float32, len(data))
			a.v[raw] = v
		}

		for i := range data {
			gi := float64(grad[i])
			mi := beta1*float64(m[i]) + (1-beta1)*gi
			vi := beta2*float64(v[i]) + (1-beta2)*gi*gi
			m[i] = float32(mi)
			v[i] = float32(vi)

			mHat := mi / corr1
			vHat := vi / corr2
			data[i] -= a.config.LR * float32(mHat/(math.Sqrt(vHat)+float64(a.config.Epsilon)))
		}
	}
}

// ZeroGrad clears gradients attached to the parameters.
func (a *Adam[B]) ZeroGrad() {
	for _, p := range a.params {
		p.Tensor().SetGrad(nil)
	}
}
