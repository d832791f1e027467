package neuralnet

import "log"

// Params holds the hyperparameters of a Network. Zero values fall back to
// DefaultParams.
type Params struct {
	// Hidden lists the width of every hidden layer, bias neuron excluded.
	// Empty means every hidden layer is as wide as the feature count.
	Hidden []int
	// LearningRate scales the batch summed gradient step. Zero is treated
	// as unset and becomes 0.1, so a zero rate cannot be requested.
	LearningRate float64
	// Mode selects the learning regime; only "batch" exists.
	Mode string
	Activation string
	// BiasConstant is the output of every hidden bias neuron. Zero is
	// treated as unset and becomes 0.99, so a zero constant cannot be
	// requested.
	BiasConstant float64
	// Seed for weight initialization. Zero derives one from the topology.
	Seed int64
	// Logger receives construction and progress messages. Nil discards them.
	Logger *log.Logger
	// LogEvery is the epoch interval of progress messages. Zero logs ten
	// times per Iterate call.
	LogEvery int
}

const (
	defaultLearningRate = 0.1
	defaultBiasConstant = 0.99
	batchMode           = "batch"
)

func DefaultParams() Params {
	return Params{
		LearningRate: defaultLearningRate,
		Mode:         batchMode,
		Activation:   "sigmoid",
		BiasConstant: defaultBiasConstant,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.LearningRate == 0 {
		p.LearningRate = d.LearningRate
	}
	if p.Mode == "" {
		p.Mode = d.Mode
	}
	if p.Activation == "" {
		p.Activation = d.Activation
	}
	if p.BiasConstant == 0 {
		p.BiasConstant = d.BiasConstant
	}
	return p
}

// NNSeed derives a deterministic seed from the layer widths. NewNetwork
// passes the class count as outputSize.
func NNSeed(inputSize int, hidden []int, outputSize int) int {
	seed := inputSize
	for _, h := range hidden {
		seed = seed + h
	}
	return seed + outputSize
}
