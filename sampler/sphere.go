package sampler

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere draws random camera positions on the surface of a sphere of fixed
// radius. Sampling is uniform by surface area: the azimuth is drawn
// uniformly in [0, 2pi) and the cosine of the polar angle uniformly over the
// configured band, so positions do not cluster at the poles.
type Sphere struct {
	distance float64

	// Polar angle band in radians, measured from the +Z axis.
	minPolar float64
	maxPolar float64

	rng *rand.Rand
}

type Option func(*Sphere)

// Seed the sampler's random source. Runs with the same seed and
// configuration produce identical position sequences.
func WithSeed(seed int64) Option {
	return func(s *Sphere) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// Restrict sampling to polar angles within [min, max] radians. The band is
// still sampled uniformly by surface area.
func WithPolarRange(min, max float64) Option {
	return func(s *Sphere) {
		s.minPolar = min
		s.maxPolar = max
	}
}

// Create a sphere sampler for the given radius.
func NewSphere(distance float64, opts ...Option) (*Sphere, error) {
	s := &Sphere{
		distance: distance,
		minPolar: 0,
		maxPolar: math.Pi,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.distance <= 0 {
		return nil, ErrInvalidDistance
	}
	if s.minPolar < 0 || s.maxPolar > math.Pi || s.minPolar >= s.maxPolar {
		return nil, ErrInvalidPolarRange
	}

	return s, nil
}

// Draw count random positions around focus. The returned order is the
// generation order; callers rely on it for split assignment.
func (s *Sphere) Sample(count int, focus r3.Vec) ([]r3.Vec, error) {
	if count < 0 {
		return nil, ErrInvalidCount
	}

	// cos is monotonically decreasing so minPolar maps to the upper bound.
	zMax := math.Cos(s.minPolar)
	zMin := math.Cos(s.maxPolar)

	positions := make([]r3.Vec, count)
	for i := range positions {
		theta := 2 * math.Pi * s.rng.Float64()
		z := zMin + (zMax-zMin)*s.rng.Float64()
		sinPolar := math.Sqrt(1 - z*z)

		unit := r3.Vec{
			X: sinPolar * math.Cos(theta),
			Y: sinPolar * math.Sin(theta),
			Z: z,
		}
		positions[i] = r3.Add(focus, r3.Scale(s.distance, unit))
	}

	return positions, nil
}
