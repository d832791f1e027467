package neuralnet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "input", InputKind.String())
	assert.Equal(t, "hidden", HiddenKind.String())
	assert.Equal(t, "output", OutputKind.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNewLayerReservesBiasNeuron(t *testing.T) {
	p := DefaultParams()
	hidden := newLayer(HiddenKind, 3, 5, p, Sigmoid{})
	assert.Equal(t, 4, hidden.Size())
	assert.True(t, hidden.neurons[0].IsBias())
	for _, n := range hidden.neurons[1:] {
		assert.False(t, n.IsBias())
	}

	out := newLayer(OutputKind, 3, 5, p, Sigmoid{})
	assert.Equal(t, 3, out.Size())
	for _, n := range out.neurons {
		assert.False(t, n.IsBias())
	}
}

func TestConnectSizesWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in := newInputLayer(2)
	hidden := newLayer(HiddenKind, 4, 3, DefaultParams(), Sigmoid{})
	out := newLayer(OutputKind, 1, 3, DefaultParams(), Sigmoid{})
	hidden.connect(in, rng)
	out.connect(hidden, rng)

	assert.Same(t, hidden, in.next)
	assert.Same(t, in, hidden.prev)
	assert.Equal(t, 2, out.index)
	for _, n := range hidden.neurons {
		require.Len(t, n.weights, 3)
		for _, w := range n.weights {
			assert.GreaterOrEqual(t, w, -1.0)
			assert.LessOrEqual(t, w, 1.0)
		}
	}
	for _, n := range out.neurons {
		assert.Len(t, n.weights, 5)
	}
}

func TestNeuronCompute(t *testing.T) {
	n := newNeuron(1, Sigmoid{})
	n.weights = []float64{1, -1}
	prev := mat.NewDense(2, 3, []float64{
		0, 1, 2,
		0, 1, 0,
	})
	dst := make([]float64, 3)
	n.compute(prev, dst)
	s := Sigmoid{}
	assert.InDeltaSlice(t, []float64{s.Activate(0), s.Activate(0), s.Activate(2)}, dst, 1e-12)
}

func TestBiasNeuronIgnoresWeights(t *testing.T) {
	n := newNeuron(0, Sigmoid{})
	n.bias = true
	n.constant = 0.99
	n.weights = []float64{100, 100}
	dst := make([]float64, 4)
	n.compute(mat.NewDense(2, 4, nil), dst)
	assert.Equal(t, []float64{0.99, 0.99, 0.99, 0.99}, dst)
}

func TestOutgoingWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := newInputLayer(2)
	hidden := newLayer(HiddenKind, 2, 1, DefaultParams(), Sigmoid{})
	out := newLayer(OutputKind, 3, 1, DefaultParams(), Sigmoid{})
	hidden.connect(in, rng)
	out.connect(hidden, rng)

	for i, n := range hidden.neurons {
		w := n.outgoingWeights(out)
		require.Len(t, w, 3)
		for k, m := range out.neurons {
			assert.Equal(t, m.weights[i], w[k])
		}
	}
	assert.Nil(t, out.neurons[0].outgoingWeights(out.next))
}

func TestSetDeltaWritesLayerMatrix(t *testing.T) {
	l := newLayer(OutputKind, 2, 3, DefaultParams(), Sigmoid{})
	got := l.neurons[1].setDelta([]float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2, 3}, got)
	assert.Equal(t, []float64{1, 2, 3}, mat.Row(nil, 1, l.delta))
	assert.Equal(t, []float64{0, 0, 0}, mat.Row(nil, 0, l.delta))
}

func TestOutputBackpropagate(t *testing.T) {
	l := newLayer(OutputKind, 1, 2, DefaultParams(), Sigmoid{})
	l.output.SetRow(0, []float64{0.5, 0.25})
	target := mat.NewDense(1, 2, []float64{1, 0})
	l.backpropagate(target)
	// (t - o) o (1 - o)
	assert.InDeltaSlice(t, []float64{0.125, -0.046875}, mat.Row(nil, 0, l.delta), 1e-12)
}

func TestUpdateIsBatchSummed(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	in := newInputLayer(1)
	in.setInput(mat.NewDense(2, 3, []float64{
		1, 2, 3,
		1, 1, 1,
	}))
	out := newLayer(OutputKind, 1, 3, Params{LearningRate: 0.5}, Sigmoid{})
	out.connect(in, rng)
	n := out.neurons[0]
	before := n.Weights()
	n.setDelta([]float64{1, 1, 1})
	out.update()

	// w_j += eta * Σ_t delta(t) prev_j(t), with no division by the batch size
	assert.InDeltaSlice(t, []float64{before[0] + 0.5*6, before[1] + 0.5*3}, n.weights, 1e-12)
}
