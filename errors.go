package clustream

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is matched by every *InvalidDimensionError.
	ErrInvalidDimension = errors.New("clustream: invalid dimension")

	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("clustream: dimension mismatch")

	// ErrEmptyCluster is matched by every *EmptyClusterError.
	ErrEmptyCluster = errors.New("clustream: empty cluster")
)

// InvalidDimensionError is returned when a micro-cluster is seeded with a
// zero-length vector.
type InvalidDimensionError struct {
	Dimension int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("clustream: invalid dimension %d: seed vector must have at least one component", e.Dimension)
}

func (e *InvalidDimensionError) Is(target error) bool { return target == ErrInvalidDimension }

// DimensionMismatchError is returned when a vector or another micro-cluster
// does not have the dimensionality of the receiving micro-cluster.
type DimensionMismatchError struct {
	Op       string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("clustream: %s: dimension mismatch: expected %d, got %d", e.Op, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// EmptyClusterError is returned when a derived quantity is requested from a
// micro-cluster that has not absorbed any point, such as a zero-value
// MicroCluster.
type EmptyClusterError struct {
	Op string
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("clustream: %s: micro-cluster has no points", e.Op)
}

func (e *EmptyClusterError) Is(target error) bool { return target == ErrEmptyCluster }
