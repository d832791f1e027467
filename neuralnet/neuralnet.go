package neuralnet

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Network is a fully connected sigmoid network trained by full batch
// backpropagation. It is not safe for concurrent use.
type Network struct {
	params  Params
	layers  []*Layer
	input   *mat.Dense
	target  *mat.Dense
	classes []int
	loss    LossFunction
	rng     *rand.Rand
	logger  *log.Logger

	numFeatures int
	numPoints   int
}

// NewNetwork builds and connects a network of numLayers layers, input and
// output included. features is point major: one row per training point.
// targets holds one class label per training point.
func NewNetwork(numLayers int, features [][]float64, targets []int, params Params) (*Network, error) {
	p := params.withDefaults()
	if p.Mode != batchMode {
		return nil, &ConfigurationError{Field: "mode", Details: fmt.Sprintf("unsupported mode %q, only %q is available", p.Mode, batchMode)}
	}
	activation, err := ActivationByName(p.Activation)
	if err != nil {
		return nil, err
	}
	if numLayers < 3 {
		return nil, &ConfigurationError{Field: "layers", Details: fmt.Sprintf("need at least 3 layers, got %d", numLayers)}
	}
	x, err := augmentFeatures(features)
	if err != nil {
		return nil, err
	}
	if len(features) != len(targets) {
		return nil, &ConfigurationError{
			Field:   "targets",
			Details: fmt.Sprintf("%d training points but %d labels", len(features), len(targets)),
		}
	}

	nn := &Network{
		input:       x,
		loss:        SumOfSquares{},
		numFeatures: len(features[0]),
		numPoints:   len(features),
	}

	numHidden := numLayers - 2
	if len(p.Hidden) == 0 {
		p.Hidden = make([]int, numHidden)
		for i := range p.Hidden {
			p.Hidden[i] = nn.numFeatures
		}
	} else {
		p.Hidden = append([]int(nil), p.Hidden...)
	}
	if len(p.Hidden) != numHidden {
		return nil, &ConfigurationError{Field: "hidden", Details: fmt.Sprintf("%d widths for %d hidden layers", len(p.Hidden), numHidden)}
	}
	for i, w := range p.Hidden {
		if w < 1 {
			return nil, &ConfigurationError{Field: "hidden", Details: fmt.Sprintf("hidden layer %d has width %d", i, w)}
		}
	}

	nn.classes = classSet(targets)
	nn.target = encodeTargets(targets, nn.classes)

	if p.Seed == 0 {
		p.Seed = int64(NNSeed(nn.numFeatures, p.Hidden, len(nn.classes)))
	}
	//nolint:gosec // weight initialization, not security sensitive
	nn.rng = rand.New(rand.NewSource(p.Seed))
	nn.logger = p.Logger
	if nn.logger == nil {
		nn.logger = log.New(io.Discard, "", 0)
	}
	nn.params = p

	nn.construct(activation)
	nn.logger.Printf("network constructed with %d layers, learning rate is %g", numLayers, p.LearningRate)
	nn.Connect()
	nn.logger.Printf("layers connected")
	return nn, nil
}

// augmentFeatures transposes point major features to feature major and
// appends a constant row of ones.
func augmentFeatures(features [][]float64) (*mat.Dense, error) {
	if len(features) == 0 {
		return nil, &ConfigurationError{Field: "features", Details: "no training points"}
	}
	width := len(features[0])
	if width == 0 {
		return nil, &ConfigurationError{Field: "features", Details: "training points have no features"}
	}
	raw := mat.NewDense(len(features), width, nil)
	for i, row := range features {
		if len(row) != width {
			return nil, &ConfigurationError{
				Field:   "features",
				Details: fmt.Sprintf("point %d has %d features, want %d", i, len(row), width),
			}
		}
		raw.SetRow(i, row)
	}
	ones := mat.NewDense(1, len(features), nil)
	for j := 0; j < len(features); j++ {
		ones.Set(0, j, 1)
	}
	var x mat.Dense
	x.Stack(raw.T(), ones)
	return &x, nil
}

func (nn *Network) construct(activation ActivationFunction) {
	nn.layers = make([]*Layer, 0, len(nn.params.Hidden)+2)
	in := newInputLayer(nn.numFeatures)
	in.setInput(nn.input)
	nn.layers = append(nn.layers, in)
	for _, width := range nn.params.Hidden {
		nn.layers = append(nn.layers, newLayer(HiddenKind, width, nn.numPoints, nn.params, activation))
	}
	nn.layers = append(nn.layers, newLayer(OutputKind, outputWidth(len(nn.classes)), nn.numPoints, nn.params, activation))
}

// Connect wires the layers in order and draws fresh weights uniformly
// from [-1, 1]. Weight vector lengths never change.
func (nn *Network) Connect() {
	for i := 1; i < len(nn.layers); i++ {
		nn.layers[i].connect(nn.layers[i-1], nn.rng)
	}
}

func (nn *Network) forward() {
	for _, l := range nn.layers {
		l.compute()
	}
}

func (nn *Network) backpropagate() {
	for i := len(nn.layers) - 1; i > 0; i-- {
		nn.layers[i].backpropagate(nn.target)
	}
}

func (nn *Network) updateWeights() {
	for _, l := range nn.layers[1:] {
		l.update()
	}
}

func (nn *Network) outputLayer() *Layer {
	return nn.layers[len(nn.layers)-1]
}

// Step runs one epoch and returns the loss of that epoch's forward pass.
func (nn *Network) Step() float64 {
	nn.forward()
	loss := nn.loss.Compute(nn.target, nn.outputLayer().output)
	nn.backpropagate()
	nn.updateWeights()
	return loss
}

// Iterate runs epochs full batch training steps and returns the loss of
// each epoch. NaN or Inf losses are returned as they are.
func (nn *Network) Iterate(epochs int) []float64 {
	if epochs <= 0 {
		return nil
	}
	every := nn.params.LogEvery
	if every <= 0 {
		every = epochs / 10
	}
	if every == 0 {
		every = 1
	}
	losses := make([]float64, 0, epochs)
	for i := 0; i < epochs; i++ {
		losses = append(losses, nn.Step())
		if i%every == 0 {
			nn.logger.Printf("%d iterations, loss = %g", i, losses[i])
		}
	}
	return losses
}

// Loss evaluates the current weights on the training set without
// changing them.
func (nn *Network) Loss() float64 {
	nn.forward()
	return nn.loss.Compute(nn.target, nn.outputLayer().output)
}

// Predict runs a forward pass over new points and returns a class label
// per point. The training buffers are left untouched.
func (nn *Network) Predict(features [][]float64) ([]int, error) {
	x, err := augmentFeatures(features)
	if err != nil {
		return nil, err
	}
	if len(features[0]) != nn.numFeatures {
		return nil, &ConfigurationError{
			Field:   "features",
			Details: fmt.Sprintf("got %d features, network was trained on %d", len(features[0]), nn.numFeatures),
		}
	}
	out := x
	for _, l := range nn.layers[1:] {
		next := mat.NewDense(l.size, len(features), nil)
		for i, n := range l.neurons {
			n.compute(out, next.RawRowView(i))
		}
		out = next
	}
	return decodeOutputs(out, nn.classes)
}

// Layers returns the layers from input to output.
func (nn *Network) Layers() []*Layer { return nn.layers }

// Classes returns the class labels in output row order.
func (nn *Network) Classes() []int { return append([]int(nil), nn.classes...) }

// Target is the encoded target matrix, one column per training point.
func (nn *Network) Target() mat.Matrix { return nn.target }

// Output is the output layer's matrix from the latest forward pass.
func (nn *Network) Output() mat.Matrix { return nn.outputLayer().output }

// Params returns the hyperparameters after defaults were applied.
func (nn *Network) Params() Params { return nn.params }

func (nn *Network) String() string {
	var sb strings.Builder
	for i, layer := range nn.layers {
		sb.WriteString(fmt.Sprintf("Layer %d:\n%s\n", i, layer.String()))
	}
	return sb.String()
}
