package traj

import "errors"

// Domain errors for trajectory construction and derivation.
var (
	// ErrInvalidDimension indicates a trajectory outside 1-3 spatial dimensions.
	ErrInvalidDimension = errors.New("traj: dimension must be 1, 2, or 3")

	// ErrTooShort indicates fewer than two measurement records.
	ErrTooShort = errors.New("traj: trajectory needs at least 2 records")

	// ErrRaggedRecord indicates a record with the wrong number of columns.
	ErrRaggedRecord = errors.New("traj: record width differs from first record")

	// ErrOffsetDimension indicates a translation offset that does not match
	// the trajectory dimension.
	ErrOffsetDimension = errors.New("traj: offset length must equal trajectory dimension")
)
