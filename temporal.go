package clustream

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// TimestampMean returns the mean arrival time of the absorbed points.
func (mc *MicroCluster) TimestampMean() (float64, error) {
	if mc.n == 0 {
		return 0, &EmptyClusterError{Op: "timestamp mean"}
	}
	return mc.timestampSum / float64(mc.n), nil
}

// TimestampStdDev returns the population standard deviation of the arrival
// times, derived from CF1t and CF2t. The variance is clamped to its absolute
// value like Variance, and a negative value beyond
// Config.InstabilityTolerance is logged.
//
// CF2t grows with the square of the timestamps, so at epoch scale (e.g.
// milliseconds since 1970) the subtraction cancels most significant digits
// and the spread is lost. Rebase timestamps to a recent origin to keep it.
func (mc *MicroCluster) TimestampStdDev() (float64, error) {
	mean, err := mc.TimestampMean()
	if err != nil {
		return 0, err
	}
	meanOfSquares := mc.timestampSquaredSum / float64(mc.n)
	v := meanOfSquares - mean*mean
	if v < 0 {
		if -v > mc.cfg.InstabilityTolerance*math.Max(1, meanOfSquares) {
			mc.cfg.Logger.WithFields(logrus.Fields{
				"action":   "microcluster_timestamp_variance",
				"cluster":  mc.index,
				"variance": v,
				"points":   mc.n,
			}).Warn("negative timestamp variance beyond round-off, clamping to its absolute value")
		}
		v = -v
	}
	return math.Sqrt(v), nil
}

// RelevanceStamp estimates the average arrival time of the last m points
// absorbed, the quantity CluStream compares against a recency threshold to
// decide which micro-cluster is stale. Arrival times are modelled as normally
// distributed; the estimate is their 1 - m/(2·Size) quantile. With fewer than
// 2m points the mean arrival time is returned. The estimate inherits the
// precision limits of TimestampStdDev.
func (mc *MicroCluster) RelevanceStamp(m int) (float64, error) {
	if m < 1 {
		return 0, fmt.Errorf("clustream: relevance stamp: m must be >= 1, got %d", m)
	}
	mean, err := mc.TimestampMean()
	if err != nil {
		return 0, err
	}
	if mc.n < 2*m {
		return mean, nil
	}
	sigma, err := mc.TimestampStdDev()
	if err != nil {
		return 0, err
	}
	if sigma == 0 {
		return mean, nil
	}
	normal := distuv.Normal{Mu: mean, Sigma: sigma}
	return normal.Quantile(1 - float64(m)/(2*float64(mc.n))), nil
}
