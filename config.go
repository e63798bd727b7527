package clustream

import (
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Config controls how a micro-cluster derives its geometry.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// BoundaryFactor (t) scales the dispersion of a micro-cluster into its
	// maximum boundary. It is a global tuning parameter; merged clusters
	// inherit it from their first operand.
	// Must be >= 0 and finite. Default: 2.
	BoundaryFactor float64

	// Metric measures the distance between a point and a centroid.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Logger receives numerical-instability diagnostics. Default: a logger
	// that discards everything.
	Logger logrus.FieldLogger

	// InstabilityTolerance is the relative amount by which a per-dimension
	// variance may fall below zero before it is reported as numerical
	// instability rather than round-off. The value is always clamped.
	// Must be >= 0. Default: 1e-9.
	InstabilityTolerance float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		BoundaryFactor:       2,
		Metric:               EuclideanMetric{},
		Logger:               discardLogger,
		InstabilityTolerance: 1e-9,
	}
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.BoundaryFactor < 0 || math.IsNaN(cfg.BoundaryFactor) || math.IsInf(cfg.BoundaryFactor, 0) {
		return fmt.Errorf("clustream: BoundaryFactor must be finite and >= 0, got %f", cfg.BoundaryFactor)
	}
	if cfg.InstabilityTolerance < 0 || math.IsNaN(cfg.InstabilityTolerance) {
		return fmt.Errorf("clustream: InstabilityTolerance must be >= 0, got %g", cfg.InstabilityTolerance)
	}
	switch m := cfg.Metric.(type) {
	case MinkowskiMetric:
		if !(m.P >= 1) {
			return fmt.Errorf("clustream: MinkowskiMetric P must be >= 1, got %g", m.P)
		}
	case *MinkowskiMetric:
		if m == nil || !(m.P >= 1) {
			return fmt.Errorf("clustream: MinkowskiMetric P must be >= 1")
		}
	}
	return nil
}

// applyDefaults fills in nil config fields with their defaults. Numeric
// fields are left alone because zero is a legitimate value for both.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger
	}
}
