// Package clustream implements CluStream micro-clusters: incremental,
// memory-bounded summaries of a stream of feature vectors.
//
// A micro-cluster keeps only additive sufficient statistics (point count,
// linear sum and sum of squares of the vectors and of their arrival
// timestamps), so absorbing a point, deriving the centroid, the spread and
// the assignment radius all take O(d) time and no raw point is retained.
//
// Basic usage:
//
//	mc, err := clustream.New([]float64{0, 0}, 0, 2, 1)
//	// mc.Size() == 1: the seed point counts
//	err = mc.Absorb([]float64{2, 2}, 1)
//	center, _ := mc.Centroid() // [1 1]
//	b, _ := mc.MaximumBoundary() // Radius 2 (dispersion 1 * boundary factor 2)
//
// # Single-point clusters
//
// A cluster holding one point has no spread. MaximumBoundary reports this as
// Boundary.Kind == BoundaryNearestCluster, and the caller uses the distance
// to the nearest other micro-cluster instead; ResolveBoundary does that over
// a slice of clusters.
//
// # Merging
//
// Merge sums every statistic of two clusters of equal dimensionality. The
// sequence number of the result is chosen by the caller.
//
// # Concurrency
//
// A MicroCluster must not be read while it is being mutated. Guarded adds a
// read/write lock and immutable snapshots for callers that share clusters
// between goroutines.
package clustream
