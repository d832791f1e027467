package neuralnet

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("invalid network configuration")

// ConfigurationError reports hyperparameters or training data that cannot
// form a network.
type ConfigurationError struct {
	Field   string // e.g. "targets", "hidden", "mode"
	Details string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("neuralnet: %s: %s", e.Field, e.Details)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
