package clustream

import (
	"fmt"
	"math"
	"sync"
)

// Nearest returns the position in clusters of the micro-cluster whose
// centroid is closest to point, together with that distance. Ties resolve to
// the lowest position. Nil entries are skipped, which lets an orchestrator
// evict clusters by clearing their slot. With no candidate cluster it returns
// -1 and +Inf.
//
// Every candidate is measured with the metric of the first non-nil cluster,
// so clusters configured with different metrics are still ranked on one
// scale.
func Nearest(clusters []*MicroCluster, point []float64) (int, float64, error) {
	metric := searchMetric(clusters)
	if metric == nil {
		return -1, math.Inf(1), nil
	}
	best, _, err := nearestInRange(clusters, point, metric, 0, len(clusters))
	if err != nil {
		return -1, 0, err
	}
	return finishNearest(clusters, point, metric, best)
}

// searchMetric returns the metric of the first non-nil cluster, or nil if
// there is none.
func searchMetric(clusters []*MicroCluster) DistanceMetric {
	for _, mc := range clusters {
		if mc != nil {
			return mc.cfg.Metric
		}
	}
	return nil
}

// nearestInRange scans clusters[start:end] and returns the position and
// reduced distance under metric of the closest cluster, or -1 if the range
// holds none.
func nearestInRange(clusters []*MicroCluster, point []float64, metric DistanceMetric, start, end int) (int, float64, error) {
	best := -1
	bestDist := math.Inf(1)
	for i := start; i < end; i++ {
		mc := clusters[i]
		if mc == nil {
			continue
		}
		center, err := mc.centroidFor(point)
		if err != nil {
			return -1, 0, fmt.Errorf("clustream: nearest: cluster at position %d: %w", i, err)
		}
		if d := metric.ReducedDistance(center, point); best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist, nil
}

func finishNearest(clusters []*MicroCluster, point []float64, metric DistanceMetric, best int) (int, float64, error) {
	if best < 0 {
		return -1, math.Inf(1), nil
	}
	center, err := clusters[best].centroidFor(point)
	if err != nil {
		return -1, 0, err
	}
	return best, metric.Distance(center, point), nil
}

// NearestParallel computes the same result as Nearest using multiple
// goroutines. Each worker scans a contiguous range of clusters; the range
// winners are combined in order, so ties still resolve to the lowest
// position. numWorkers <= 1 falls back to Nearest.
//
// Every cluster in the slice is only read; callers must not absorb into or
// merge any of them until NearestParallel returns.
func NearestParallel(clusters []*MicroCluster, point []float64, numWorkers int) (int, float64, error) {
	n := len(clusters)
	if numWorkers <= 1 || n <= 1 {
		return Nearest(clusters, point)
	}
	if numWorkers > n {
		numWorkers = n
	}
	metric := searchMetric(clusters)
	if metric == nil {
		return -1, math.Inf(1), nil
	}

	type rangeResult struct {
		best int
		dist float64
		err  error
	}
	results := make([]rangeResult, numWorkers)

	var wg sync.WaitGroup
	perWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= n {
			results[w].best = -1
			continue
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			best, dist, err := nearestInRange(clusters, point, metric, start, end)
			results[w] = rangeResult{best: best, dist: dist, err: err}
		}(w, start, end)
	}

	wg.Wait()

	best := -1
	bestDist := math.Inf(1)
	for _, r := range results {
		if r.err != nil {
			return -1, 0, r.err
		}
		if r.best < 0 {
			continue
		}
		if best < 0 || r.dist < bestDist {
			best = r.best
			bestDist = r.dist
		}
	}
	return finishNearest(clusters, point, metric, best)
}

// NearestCentroidDistance returns the distance from the centroid of
// clusters[i] to the closest centroid among the other clusters, measured with
// clusters[i]'s metric. It returns +Inf when there is no other cluster.
func NearestCentroidDistance(clusters []*MicroCluster, i int) (float64, error) {
	if i < 0 || i >= len(clusters) || clusters[i] == nil {
		return 0, fmt.Errorf("clustream: nearest centroid distance: no cluster at position %d", i)
	}
	self := clusters[i]
	center, err := self.Centroid()
	if err != nil {
		return 0, err
	}

	nearest := math.Inf(1)
	for j, other := range clusters {
		if j == i || other == nil {
			continue
		}
		if other.Dim() != self.Dim() {
			return 0, &DimensionMismatchError{Op: "nearest centroid distance", Expected: self.Dim(), Actual: other.Dim()}
		}
		otherCenter, err := other.Centroid()
		if err != nil {
			return 0, fmt.Errorf("clustream: nearest centroid distance: cluster at position %d: %w", j, err)
		}
		if d := self.cfg.Metric.Distance(center, otherCenter); d < nearest {
			nearest = d
		}
	}
	return nearest, nil
}

// ResolveBoundary returns the assignment radius of clusters[i]. A
// multi-point cluster uses its own maximum boundary; a single-point cluster
// uses the distance to the nearest other cluster's centroid.
func ResolveBoundary(clusters []*MicroCluster, i int) (float64, error) {
	if i < 0 || i >= len(clusters) || clusters[i] == nil {
		return 0, fmt.Errorf("clustream: resolve boundary: no cluster at position %d", i)
	}
	b, err := clusters[i].MaximumBoundary()
	if err != nil {
		return 0, err
	}
	if !b.NeedsNearestCluster() {
		return b.Radius, nil
	}
	return NearestCentroidDistance(clusters, i)
}
