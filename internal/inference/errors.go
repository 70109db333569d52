package inference

import "errors"

var (
	// ErrInvalidParameter indicates an unknown-parameter name outside D, a, mu, T.
	ErrInvalidParameter = errors.New("inference: unknown parameter must be one of D, a, mu, T")

	// ErrUnsupportedPrior indicates a prior family name that is not recognized.
	ErrUnsupportedPrior = errors.New("inference: prior family not recognized")

	// ErrMissingConstants indicates a non-D unknown without the two companion constants.
	ErrMissingConstants = errors.New("inference: known constants required when unknown is not D")
)
