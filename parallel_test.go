package clustream

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomClusters(t *testing.T, rng *rand.Rand, n, dims, pointsEach int) []*MicroCluster {
	t.Helper()
	clusters := make([]*MicroCluster, n)
	for i := range clusters {
		for p := 0; p < pointsEach; p++ {
			v := make([]float64, dims)
			for j := range v {
				v[j] = rng.Float64() * 100
			}
			if p == 0 {
				clusters[i] = mustNew(t, v, int64(p), 2, i)
				continue
			}
			require.NoError(t, clusters[i].Absorb(v, int64(p)))
		}
	}
	return clusters
}

func TestNearest_HandComputed(t *testing.T) {
	clusters := []*MicroCluster{
		mustNew(t, []float64{0, 0}, 0, 2, 0),
		mustNew(t, []float64{10, 0}, 0, 2, 1),
		mustNew(t, []float64{3, 4}, 0, 2, 2),
	}

	idx, d, err := Nearest(clusters, []float64{3, 5})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 1.0, d, floatTol)
}

func TestNearest_TieResolvesToLowestPosition(t *testing.T) {
	clusters := []*MicroCluster{
		mustNew(t, []float64{-1}, 0, 2, 0),
		mustNew(t, []float64{1}, 0, 2, 1),
	}
	idx, d, err := Nearest(clusters, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, d, floatTol)
}

func TestNearest_SkipsNilAndEmpty(t *testing.T) {
	idx, d, err := Nearest(nil, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(d, 1))

	clusters := []*MicroCluster{nil, mustNew(t, []float64{5}, 0, 2, 1), nil}
	idx, _, err = Nearest(clusters, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestNearest_DimensionMismatch(t *testing.T) {
	clusters := []*MicroCluster{mustNew(t, []float64{1, 2}, 0, 2, 0)}
	_, _, err := Nearest(clusters, []float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNearestParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clusters := randomClusters(t, rng, 37, 3, 4)
	clusters[5] = nil

	for q := 0; q < 20; q++ {
		point := []float64{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 100}
		wantIdx, wantDist, err := Nearest(clusters, point)
		require.NoError(t, err)

		for _, workers := range []int{1, 2, 4, 8, 64} {
			idx, dist, err := NearestParallel(clusters, point, workers)
			require.NoError(t, err)
			assert.Equal(t, wantIdx, idx, "workers=%d", workers)
			assert.Equal(t, wantDist, dist, "workers=%d (bitwise)", workers)
		}
	}
}

func TestNearestParallel_AllNil(t *testing.T) {
	idx, d, err := NearestParallel([]*MicroCluster{nil, nil, nil}, []float64{1}, 2)
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(d, 1))
}

func TestNearestParallel_PropagatesError(t *testing.T) {
	clusters := []*MicroCluster{
		mustNew(t, []float64{1, 2}, 0, 2, 0),
		mustNew(t, []float64{1, 2}, 0, 2, 1),
		mustNew(t, []float64{1, 2, 3}, 0, 2, 2),
	}
	_, _, err := NearestParallel(clusters, []float64{0, 0}, 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNearestCentroidDistance(t *testing.T) {
	far := mustNew(t, []float64{0, 0}, 0, 2, 2)
	require.NoError(t, far.Absorb([]float64{0, 20}, 1)) // centroid (0, 10)
	clusters := []*MicroCluster{
		mustNew(t, []float64{0, 0}, 0, 2, 0),
		mustNew(t, []float64{3, 4}, 0, 2, 1),
		far,
	}

	d, err := NearestCentroidDistance(clusters, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, floatTol)

	d, err = NearestCentroidDistance(clusters[:1], 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))

	_, err = NearestCentroidDistance(clusters, 3)
	assert.Error(t, err)
}

func TestResolveBoundary(t *testing.T) {
	grown := mustNew(t, []float64{0, 0}, 0, 2, 0)
	require.NoError(t, grown.Absorb([]float64{2, 2}, 1)) // radius 2, centroid (1, 1)
	single := mustNew(t, []float64{4, 5}, 0, 2, 1)
	clusters := []*MicroCluster{grown, single}

	r, err := ResolveBoundary(clusters, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)

	// Single point: distance from (4,5) to (1,1).
	r, err = ResolveBoundary(clusters, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, r, floatTol)

	_, err = ResolveBoundary(clusters, -1)
	assert.Error(t, err)
}

func TestNearest_MixedMetricsUseOneScale(t *testing.T) {
	euclidean := mustNew(t, []float64{3, 0}, 0, 2, 0)
	cfg := DefaultConfig()
	cfg.Metric = ManhattanMetric{}
	manhattan, err := NewWithConfig([]float64{2, 2}, 0, 1, cfg)
	require.NoError(t, err)

	// Under Euclidean, (3,0) is 3 away and (2,2) is about 2.83 away.
	clusters := []*MicroCluster{euclidean, manhattan}
	origin := []float64{0, 0}

	idx, d, err := Nearest(clusters, origin)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, math.Sqrt(8), d, floatTol)

	pidx, pd, err := NearestParallel(clusters, origin, 2)
	require.NoError(t, err)
	assert.Equal(t, idx, pidx)
	assert.Equal(t, d, pd)

	// Led by the Manhattan cluster, both are ranked under L1: 4 versus 3.
	idx, d, err = Nearest([]*MicroCluster{manhattan, euclidean}, origin)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 3.0, d, floatTol)
}

func TestNearestParallel_MoreWorkersThanClusters(t *testing.T) {
	clusters := []*MicroCluster{
		mustNew(t, []float64{5}, 0, 2, 0),
		mustNew(t, []float64{1}, 0, 2, 1),
	}
	for _, workers := range []int{3, 1000, 1 << 45} {
		idx, d, err := NearestParallel(clusters, []float64{0}, workers)
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, 1, idx, "workers=%d", workers)
		assert.InDelta(t, 1.0, d, floatTol, "workers=%d", workers)
	}
}
