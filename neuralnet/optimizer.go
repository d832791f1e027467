package neuralnet

import "gonum.org/v1/gonum/floats"

// Optimizer applies an accumulated batch gradient to a weight vector.
type Optimizer interface {
	Apply(weights, step []float64, lr float64)
}

// SGD adds lr * step to the weights. The step is the batch-summed
// descent direction and is not divided by the batch size, so the
// effective step grows with the number of training points.
type SGD struct{}

func (SGD) Apply(weights, step []float64, lr float64) {
	floats.AddScaled(weights, lr, step)
}
