package exporter

import (
	"math"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/dataset"
	"gonum.org/v1/gonum/spatial/r3"
)

type Config struct {
	// Export root directory. Cleared destructively before rendering.
	ExportPath string

	// The world-space point every camera orients toward.
	FocusPoint r3.Vec

	// Fixed camera distance from the focus point.
	Distance float64

	// Frame counts per dataset split.
	Sizes dataset.Sizes

	// Horizontal field of view in degrees.
	FOV float64

	// Random seed for pose sampling. Zero selects a time-based seed.
	Seed int64

	// Optional polar angle band in radians. Leave both zero to sample
	// the full sphere.
	MinPolar float64
	MaxPolar float64
}

// DefaultConfig describes a standard run: 100/100/200 frames at distance 7
// with a 50 degree lens.
func DefaultConfig() Config {
	return Config{
		Distance: 7,
		Sizes:    dataset.DefaultSizes(),
		FOV:      50,
	}
}

func (cfg Config) Validate() error {
	if cfg.ExportPath == "" {
		return ErrNoExportPath
	}
	if err := cfg.Sizes.Validate(); err != nil {
		return err
	}
	if cfg.FOV <= 0 || cfg.FOV >= 180 {
		return ErrInvalidFOV
	}
	// Distance and polar band bounds are validated by the sampler.
	return nil
}

// polarRange resolves the configured band, defaulting to the full sphere.
func (cfg Config) polarRange() (float64, float64) {
	if cfg.MinPolar == 0 && cfg.MaxPolar == 0 {
		return 0, math.Pi
	}
	return cfg.MinPolar, cfg.MaxPolar
}
