package clustream

import (
	"gonum.org/v1/gonum/floats"
)

// MicroCluster is the additive summary of the feature vectors absorbed so
// far: their count, their elementwise linear sum (CF1x) and sum of squares
// (CF2x), and the linear sum (CF1t) and sum of squares (CF2t) of their
// arrival timestamps. Every statistic is additive, so two clusters over
// disjoint points merge by summation.
//
// A MicroCluster is not safe for concurrent use while it is being mutated.
// Wrap it in a [Guarded] when reads and writes may overlap.
//
// The zero value has no dimensionality and no points; every derived quantity
// on it returns an *EmptyClusterError. Use [New] or [NewWithConfig].
type MicroCluster struct {
	n                   int
	linearSum           []float64
	squaredSum          []float64
	timestampSum        float64
	timestampSquaredSum float64
	index               int
	cfg                 Config
}

// New seeds a micro-cluster with a single point. The seed counts as the
// first absorbed point, so the new cluster has Size 1 and its centroid is
// center. boundaryFactor is the multiplier t applied to the dispersion to
// obtain the maximum boundary; index is the orchestrator's sequence number
// for this cluster. All other settings come from [DefaultConfig].
//
// Returns an *InvalidDimensionError if center is empty.
func New(center []float64, timestamp int64, boundaryFactor float64, index int) (*MicroCluster, error) {
	cfg := DefaultConfig()
	cfg.BoundaryFactor = boundaryFactor
	return NewWithConfig(center, timestamp, index, cfg)
}

// NewWithConfig is like [New] but takes every setting from cfg.
// Nil Metric and Logger fields are defaulted; an invalid cfg is an error.
func NewWithConfig(center []float64, timestamp int64, index int, cfg Config) (*MicroCluster, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(center) == 0 {
		return nil, &InvalidDimensionError{Dimension: len(center)}
	}

	d := len(center)
	mc := &MicroCluster{
		linearSum:  make([]float64, d),
		squaredSum: make([]float64, d),
		index:      index,
		cfg:        cfg,
	}
	mc.add(center, timestamp)
	return mc, nil
}

// Absorb adds featureVector, which arrived at timestamp, to the cluster.
// Returns a *DimensionMismatchError, leaving the cluster untouched, if
// featureVector does not have the cluster's dimensionality, and an
// *InvalidDimensionError on a zero-value MicroCluster.
func (mc *MicroCluster) Absorb(featureVector []float64, timestamp int64) error {
	if len(mc.linearSum) == 0 {
		return &InvalidDimensionError{Dimension: 0}
	}
	if len(featureVector) != len(mc.linearSum) {
		return &DimensionMismatchError{Op: "absorb", Expected: len(mc.linearSum), Actual: len(featureVector)}
	}
	mc.add(featureVector, timestamp)
	return nil
}

// add accumulates v into the sufficient statistics. len(v) must equal the
// cluster dimensionality.
func (mc *MicroCluster) add(v []float64, timestamp int64) {
	floats.Add(mc.linearSum, v)
	for i, x := range v {
		mc.squaredSum[i] += x * x
	}
	t := float64(timestamp)
	mc.timestampSum += t
	mc.timestampSquaredSum += t * t
	mc.n++
}

// Merge returns a new micro-cluster summarizing the union of the points of
// a and b. Every additive statistic of the result is the sum of the
// operands' statistics. The result inherits a's Config, boundary factor
// included, and takes index as its sequence number; neither operand is
// modified.
//
// Returns a *DimensionMismatchError if a and b differ in dimensionality and
// an *EmptyClusterError if either operand is nil.
func Merge(a, b *MicroCluster, index int) (*MicroCluster, error) {
	if a == nil || b == nil {
		return nil, &EmptyClusterError{Op: "merge"}
	}
	if len(a.linearSum) != len(b.linearSum) {
		return nil, &DimensionMismatchError{Op: "merge", Expected: len(a.linearSum), Actual: len(b.linearSum)}
	}

	d := len(a.linearSum)
	merged := &MicroCluster{
		n:                   a.n + b.n,
		linearSum:           floats.AddTo(make([]float64, d), a.linearSum, b.linearSum),
		squaredSum:          floats.AddTo(make([]float64, d), a.squaredSum, b.squaredSum),
		timestampSum:        a.timestampSum + b.timestampSum,
		timestampSquaredSum: a.timestampSquaredSum + b.timestampSquaredSum,
		index:               index,
		cfg:                 a.cfg,
	}
	return merged, nil
}

// Clone returns a deep copy of the cluster.
func (mc *MicroCluster) Clone() *MicroCluster {
	return &MicroCluster{
		n:                   mc.n,
		linearSum:           append([]float64(nil), mc.linearSum...),
		squaredSum:          append([]float64(nil), mc.squaredSum...),
		timestampSum:        mc.timestampSum,
		timestampSquaredSum: mc.timestampSquaredSum,
		index:               mc.index,
		cfg:                 mc.cfg,
	}
}

// Size returns the number of absorbed points, seed included.
func (mc *MicroCluster) Size() int { return mc.n }

// Dim returns the dimensionality fixed at construction.
func (mc *MicroCluster) Dim() int { return len(mc.linearSum) }

// Index returns the orchestrator-assigned sequence number (m).
func (mc *MicroCluster) Index() int { return mc.index }

// BoundaryFactor returns the multiplier t applied to the dispersion.
func (mc *MicroCluster) BoundaryFactor() float64 { return mc.cfg.BoundaryFactor }

// LinearSum returns a copy of CF1x.
func (mc *MicroCluster) LinearSum() []float64 { return append([]float64(nil), mc.linearSum...) }

// SquaredSum returns a copy of CF2x.
func (mc *MicroCluster) SquaredSum() []float64 { return append([]float64(nil), mc.squaredSum...) }

// TimestampSum returns CF1t.
func (mc *MicroCluster) TimestampSum() float64 { return mc.timestampSum }

// TimestampSquaredSum returns CF2t.
func (mc *MicroCluster) TimestampSquaredSum() float64 { return mc.timestampSquaredSum }
