package neuralnet

import (
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Kind distinguishes the three layer variants.
type Kind int

const (
	InputKind Kind = iota
	HiddenKind
	OutputKind
)

func (k Kind) String() string {
	switch k {
	case InputKind:
		return "input"
	case HiddenKind:
		return "hidden"
	case OutputKind:
		return "output"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Layer owns its neurons and the N × batch output and delta matrices.
// prev and next are set by connect and are only read through.
type Layer struct {
	kind    Kind
	index   int
	size    int
	neurons []*Neuron
	output  *mat.Dense
	delta   *mat.Dense
	eta     float64
	opt     Optimizer
	loss    LossFunction

	prev *Layer
	next *Layer
}

func newInputLayer(numFeatures int) *Layer {
	// one extra row for the constant bias feature
	return &Layer{kind: InputKind, size: numFeatures + 1}
}

// newLayer builds a Hidden or Output layer. Hidden layers reserve index 0
// for a bias neuron on top of width.
func newLayer(kind Kind, width, batch int, p Params, activation ActivationFunction) *Layer {
	size := width
	if kind == HiddenKind {
		size = width + 1
	}
	l := &Layer{
		kind:    kind,
		size:    size,
		neurons: make([]*Neuron, size),
		output:  mat.NewDense(size, batch, nil),
		delta:   mat.NewDense(size, batch, nil),
		eta:     p.LearningRate,
		opt:     SGD{},
		loss:    SumOfSquares{},
	}
	for i := range l.neurons {
		n := newNeuron(i, activation)
		if kind == HiddenKind && i == 0 {
			n.bias = true
			n.constant = p.BiasConstant
		}
		n.output = l.output.RawRowView(i)
		n.delta = l.delta.RawRowView(i)
		l.neurons[i] = n
	}
	return l
}

// Kind reports which variant the layer is.
func (l *Layer) Kind() Kind { return l.kind }

// Size is the neuron count, bias neuron included.
func (l *Layer) Size() int { return l.size }

func (l *Layer) Neurons() []*Neuron { return l.neurons }
func (l *Layer) Output() mat.Matrix { return l.output }

// Delta is the error signal of the latest backward pass. Input layers have none.
func (l *Layer) Delta() mat.Matrix { return l.delta }

func (l *Layer) LearningRate() float64 { return l.eta }

// connect links l after prev and sizes every weight vector to prev's
// neuron count, bias slot included.
func (l *Layer) connect(prev *Layer, rng *rand.Rand) {
	l.prev = prev
	l.index = prev.index + 1
	prev.next = l
	for _, n := range l.neurons {
		n.initializeWeights(prev.size, rng)
	}
}

// setInput makes x, the bias augmented feature table, the input layer's
// output.
func (l *Layer) setInput(x *mat.Dense) {
	l.output = x
}

func (l *Layer) compute() *mat.Dense {
	if l.kind == InputKind {
		return l.output
	}
	for i, n := range l.neurons {
		n.compute(l.prev.output, l.output.RawRowView(i))
	}
	return l.output
}

// backpropagate fills the delta matrix. target is only read by the output
// layer; the input layer has no delta.
func (l *Layer) backpropagate(target *mat.Dense) {
	switch l.kind {
	case OutputKind:
		l.backpropagateOutput(target)
	case HiddenKind:
		l.backpropagateHidden()
	}
}

// backpropagateOutput applies delta_i = (t_i - o_i)·o_i·(1 - o_i).
func (l *Layer) backpropagateOutput(target *mat.Dense) {
	_, batch := l.output.Dims()
	row := make([]float64, batch)
	for i, n := range l.neurons {
		l.loss.Gradient(row, target.RawRowView(i), n.output)
		for t, o := range n.output {
			row[t] = -row[t] * n.activation.Derivative(o)
		}
		n.setDelta(row)
	}
}

// backpropagateHidden applies delta_i = o_i·(1 - o_i)·(w_out_i · next.delta).
// The bias neuron's output is constant, so its delta stays zero.
func (l *Layer) backpropagateHidden() {
	_, batch := l.output.Dims()
	row := make([]float64, batch)
	for _, n := range l.neurons {
		if n.bias {
			for t := range row {
				row[t] = 0
			}
			n.setDelta(row)
			continue
		}
		wOut := n.outgoingWeights(l.next)
		s := mat.NewVecDense(batch, row)
		s.MulVec(l.next.delta.T(), mat.NewVecDense(len(wOut), wOut))
		for t, o := range n.output {
			row[t] *= n.activation.Derivative(o)
		}
		n.setDelta(row)
	}
}

// update moves every non-bias neuron's weights along its batch gradient.
func (l *Layer) update() {
	if l.kind == InputKind {
		return
	}
	for _, n := range l.neurons {
		if n.bias {
			continue
		}
		n.updateWeight(l.prev.output, l.eta, l.opt)
	}
}

// Debug
func (l *Layer) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s layer %d, %d neurons\n", l.kind, l.index, l.size))
	for i, n := range l.neurons {
		sb.WriteString(fmt.Sprintf("Neuron %d: weights=%.3f\n", i, n.weights))
	}
	return sb.String()
}
