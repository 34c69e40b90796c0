package optim

import (
	"github.com/grava-ml/grava/internal/nn"
	"github.com/grava-ml/grava/internal/tensor"
)

// SGDConfig configures stochastic gradient descent.
// Momentum 0 gives the plain update p -= lr * grad.
type SGDConfig struct {
	LR       float32
	Momentum float32
}

// SGD updates parameters in the direction opposite their gradient,
// optionally smoothing the direction with momentum:
//
//	v = momentum*v + grad
//	p = p - lr*v
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	config     SGDConfig
	velocities map[*tensor.Raw][]float32
}

func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	return &SGD[B]{
		params:     params,
		config:     config,
		velocities: make(map[*tensor.Raw][]float32),
	}
}

func (s *SGD[B]) LR() float32 { return s.config.LR }

// Step applies one update in place on every parameter that has a
// gradient.
func (s *SGD[B]) Step(grads map[*tensor.Raw]*tensor.Raw) {
	for _, p := range s.params {
		raw := p.Tensor().Raw()
		g, ok := gradientFor(grads, raw)
		if !ok {
			continue
		}
		p.Tensor().SetGrad(g)
		grad := g.AsFloat32()
		data := raw.AsFloat32()

		if s.config.Momentum == 0 {
			for i := range data {
				data[i] -= s.config.LR * grad[i]
			}
			continue
		}

		v, ok := s.velocities[raw]
		if !ok {
			v = make([]float32, len(data))
			s.velocities[raw] = v
		}
		for i := range data {
			v[i] = s.config.Momentum*v[i] + grad[i]
			data[i] -= s.config.LR * v[i]
		}
	}
}

// ZeroGrad clears gradients attached to the parameters. Tape-produced
// gradient maps are per-step and need no clearing; this only resets
// what Step attached for inspection.
func (s *SGD[B]) ZeroGrad() {
	for _, p := range s.params {
		p.Tensor().SetGrad(nil)
	}
}
