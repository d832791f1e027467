package neuralnet

import "math"

// ActivationFunction squashes a neuron's weighted sum. Derivative is
// expressed in terms of the activation's output, which is what the
// delta rule has at hand after a forward pass.
type ActivationFunction interface {
	Activate(x float64) float64
	Derivative(output float64) float64
}

type Sigmoid struct{}

func (s Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func (s Sigmoid) Derivative(output float64) float64 {
	return output * (1 - output)
}

var activations = map[string]ActivationFunction{
	"sigmoid": Sigmoid{},
}

// ActivationByName resolves an activation tag.
func ActivationByName(name string) (ActivationFunction, error) {
	a, ok := activations[name]
	if !ok {
		return nil, &ConfigurationError{Field: "activation", Details: "unknown activation " + name}
	}
	return a, nil
}

func activateInPlace(a ActivationFunction, row []float64) {
	for i, x := range row {
		row[i] = a.Activate(x)
	}
}
