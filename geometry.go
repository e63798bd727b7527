package clustream

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// BoundaryKind tells how a [Boundary] must be interpreted.
type BoundaryKind string

const (
	// BoundaryRadius means Boundary.Radius is the computed maximum boundary.
	BoundaryRadius BoundaryKind = "radius"

	// BoundaryNearestCluster means the cluster holds a single point and has
	// no spread to derive a radius from. The caller must use the distance to
	// the nearest other micro-cluster's centroid instead (see ResolveBoundary).
	BoundaryNearestCluster BoundaryKind = "nearest_cluster"
)

// Boundary is the maximum boundary (assignment radius) of a micro-cluster.
// A zero Radius with Kind BoundaryRadius is a real radius of a multi-point
// cluster with no dispersion; it is never the single-point signal.
type Boundary struct {
	Kind   BoundaryKind
	Radius float64
}

// NeedsNearestCluster reports whether the caller must substitute the
// distance to the nearest other cluster.
func (b Boundary) NeedsNearestCluster() bool { return b.Kind == BoundaryNearestCluster }

// Value returns the boundary as a single number, using 0 for the
// single-point signal.
func (b Boundary) Value() float64 {
	if b.NeedsNearestCluster() {
		return 0
	}
	return b.Radius
}

// Centroid returns the mean of the absorbed points, linearSum[i] / Size.
func (mc *MicroCluster) Centroid() ([]float64, error) {
	if mc.n == 0 {
		return nil, &EmptyClusterError{Op: "centroid"}
	}
	n := float64(mc.n)
	center := make([]float64, len(mc.linearSum))
	for i, s := range mc.linearSum {
		center[i] = s / n
	}
	return center, nil
}

// Distance returns the distance from point to the centroid under the
// configured metric (Euclidean unless overridden).
func (mc *MicroCluster) Distance(point []float64) (float64, error) {
	center, err := mc.centroidFor(point)
	if err != nil {
		return 0, err
	}
	return mc.cfg.Metric.Distance(center, point), nil
}

func (mc *MicroCluster) centroidFor(point []float64) ([]float64, error) {
	if mc.n == 0 {
		return nil, &EmptyClusterError{Op: "distance"}
	}
	if len(point) != len(mc.linearSum) {
		return nil, &DimensionMismatchError{Op: "distance", Expected: len(mc.linearSum), Actual: len(point)}
	}
	return mc.Centroid()
}

// Variance returns the per-dimension variance of the absorbed points,
// |CF2x[i]/n - (CF1x[i]/n)²|. The absolute value absorbs round-off that
// pushes a zero variance slightly negative. A component that is negative
// beyond Config.InstabilityTolerance is logged as numerical instability and
// clamped the same way.
func (mc *MicroCluster) Variance() ([]float64, error) {
	if mc.n == 0 {
		return nil, &EmptyClusterError{Op: "variance"}
	}
	n := float64(mc.n)
	variance := make([]float64, len(mc.linearSum))
	for i := range mc.linearSum {
		mean := mc.linearSum[i] / n
		meanOfSquares := mc.squaredSum[i] / n
		v := meanOfSquares - mean*mean
		if v < 0 {
			if -v > mc.cfg.InstabilityTolerance*math.Max(1, meanOfSquares) {
				mc.cfg.Logger.WithFields(logrus.Fields{
					"action":    "microcluster_variance",
					"cluster":   mc.index,
					"dimension": i,
					"variance":  v,
					"points":    mc.n,
				}).Warn("negative variance beyond round-off, clamping to its absolute value")
			}
			v = -v
		}
		variance[i] = v
	}
	return variance, nil
}

// Dispersion returns the mean over all dimensions of the per-dimension
// standard deviation. It is not the RMS deviation of the points.
func (mc *MicroCluster) Dispersion() (float64, error) {
	variance, err := mc.Variance()
	if err != nil {
		return 0, err
	}
	for i, v := range variance {
		variance[i] = math.Sqrt(v)
	}
	return floats.Sum(variance) / float64(len(variance)), nil
}

// MaximumBoundary returns the assignment radius of the cluster: its
// dispersion times the boundary factor. A single-point cluster has no
// dispersion to work from and reports Kind BoundaryNearestCluster instead.
func (mc *MicroCluster) MaximumBoundary() (Boundary, error) {
	if mc.n == 0 {
		return Boundary{}, &EmptyClusterError{Op: "maximum boundary"}
	}
	if mc.n == 1 {
		return Boundary{Kind: BoundaryNearestCluster}, nil
	}
	dispersion, err := mc.Dispersion()
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Kind: BoundaryRadius, Radius: dispersion * mc.cfg.BoundaryFactor}, nil
}
