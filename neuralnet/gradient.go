package neuralnet

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
)

// GradientCheck compares the backpropagated derivative of the loss with
// respect to one weight against a central finite difference taken with
// the given step. The weights are restored before returning.
func (nn *Network) GradientCheck(layer, neuron, weight int, step float64) (analytic, numeric float64, err error) {
	if layer < 1 || layer >= len(nn.layers) {
		return 0, 0, fmt.Errorf("gradient check: layer %d out of range [1, %d)", layer, len(nn.layers))
	}
	l := nn.layers[layer]
	if neuron < 0 || neuron >= len(l.neurons) {
		return 0, 0, fmt.Errorf("gradient check: neuron %d out of range [0, %d)", neuron, len(l.neurons))
	}
	n := l.neurons[neuron]
	if weight < 0 || weight >= len(n.weights) {
		return 0, 0, fmt.Errorf("gradient check: weight %d out of range [0, %d)", weight, len(n.weights))
	}

	nn.forward()
	nn.backpropagate()
	// the update step points downhill, the derivative uphill
	analytic = -n.gradientStep(l.prev.output)[weight]

	w0 := n.weights[weight]
	numeric = fd.Derivative(func(w float64) float64 {
		n.weights[weight] = w
		return nn.Loss()
	}, w0, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
	n.weights[weight] = w0
	nn.forward()
	return analytic, numeric, nil
}
