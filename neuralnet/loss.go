package neuralnet

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LossFunction defines the interface for computing loss and its gradient.
type LossFunction interface {
	// Compute returns the scalar loss of output against target.
	Compute(target, output mat.Matrix) float64
	// Gradient writes ∂L/∂output for one row into dst.
	Gradient(dst, target, output []float64)
}

// SumOfSquares is ½·Σ(target - output)² summed over every class row and
// every training point.
type SumOfSquares struct{}

func (SumOfSquares) Compute(target, output mat.Matrix) float64 {
	var diff mat.Dense
	diff.Sub(target, output)
	r, _ := diff.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		row := diff.RawRowView(i)
		sum += floats.Dot(row, row)
	}
	return 0.5 * sum
}

// Gradient returns output - target.
func (SumOfSquares) Gradient(dst, target, output []float64) {
	floats.SubTo(dst, output, target)
}
