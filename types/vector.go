package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const floatCmpEpsilon = 1e-9

// Parse a comma-separated "x,y,z" triplet into a vector. Used for CLI flags
// like --focus.
func ParseVec3(s string) (r3.Vec, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return r3.Vec{}, fmt.Errorf("types: expected 3 comma-separated components; got %d", len(fields))
	}

	var comps [3]float64
	for i, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("types: invalid vector component %q", field)
		}
		comps[i] = val
	}

	return r3.Vec{X: comps[0], Y: comps[1], Z: comps[2]}, nil
}

// Format a vector the way ParseVec3 consumes it.
func FormatVec3(v r3.Vec) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

// Compare two vectors component-wise within tolerance.
func VecApproxEqual(a, b r3.Vec, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
