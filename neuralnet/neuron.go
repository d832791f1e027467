package neuralnet

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Neuron owns one weight vector. Its output and delta rows are views into
// the owning layer's matrices; the neuron itself never refers back to the
// layer.
type Neuron struct {
	index      int
	bias       bool
	constant   float64
	weights    []float64
	activation ActivationFunction
	output     []float64
	delta      []float64
}

func newNeuron(index int, activation ActivationFunction) *Neuron {
	return &Neuron{index: index, activation: activation}
}

// Weights returns a copy of the neuron's weight vector.
func (n *Neuron) Weights() []float64 {
	w := make([]float64, len(n.weights))
	copy(w, n.weights)
	return w
}

func (n *Neuron) IsBias() bool { return n.bias }

// initializeWeights draws every weight uniformly from [-1, 1]. The vector
// is only allocated once so its length survives reconnection.
func (n *Neuron) initializeWeights(numInputs int, rng *rand.Rand) {
	if len(n.weights) != numInputs {
		n.weights = make([]float64, numInputs)
	}
	for k := range n.weights {
		n.weights[k] = 2*rng.Float64() - 1
	}
}

// compute writes activation(wᵀ·prev) into dst, one value per column of
// prev. A bias neuron ignores its weights and emits its constant.
func (n *Neuron) compute(prev mat.Matrix, dst []float64) []float64 {
	if n.bias {
		for t := range dst {
			dst[t] = n.constant
		}
		return dst
	}
	z := mat.NewVecDense(len(dst), dst)
	z.MulVec(prev.T(), mat.NewVecDense(len(n.weights), n.weights))
	activateInPlace(n.activation, dst)
	return dst
}

// outgoingWeights collects the weight every neuron of next assigns to this
// neuron's index. Output neurons have no successor and return nil.
func (n *Neuron) outgoingWeights(next *Layer) []float64 {
	if next == nil {
		return nil
	}
	w := make([]float64, len(next.neurons))
	for k, m := range next.neurons {
		w[k] = m.weights[n.index]
	}
	return w
}

func (n *Neuron) setDelta(row []float64) []float64 {
	copy(n.delta, row)
	return n.delta
}

// gradientStep is Σ_t delta(t)·prev_j(t) for every input j, the batch
// summed descent direction of this neuron's weights.
func (n *Neuron) gradientStep(prev mat.Matrix) []float64 {
	var step mat.VecDense
	step.MulVec(prev, mat.NewVecDense(len(n.delta), n.delta))
	return step.RawVector().Data
}

func (n *Neuron) updateWeight(prev mat.Matrix, eta float64, opt Optimizer) {
	opt.Apply(n.weights, n.gradientStep(prev), eta)
}
