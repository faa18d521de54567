package types

import (
	"encoding/json"
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrSingularBasis is returned when a look-at basis cannot be constructed
// because the eye and target positions coincide.
var ErrSingularBasis = errors.New("types: singular look-at basis; eye and target coincide")

// Mat4 is a 4x4 homogeneous transform stored as a flat column-major array.
// For camera poses it encodes a camera-to-world transform: the first three
// columns hold the camera's right, up and back axes in world space and the
// fourth column holds the camera position.
type Mat4 [16]float64

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Get the camera right axis (first column).
func (m Mat4) Right() r3.Vec {
	return r3.Vec{X: m[0], Y: m[1], Z: m[2]}
}

// Get the camera up axis (second column).
func (m Mat4) Up() r3.Vec {
	return r3.Vec{X: m[4], Y: m[5], Z: m[6]}
}

// Get the camera back axis (third column). The camera looks down its
// negative back axis.
func (m Mat4) Back() r3.Vec {
	return r3.Vec{X: m[8], Y: m[9], Z: m[10]}
}

// Get the camera view direction. Equal to the negated back axis.
func (m Mat4) Forward() r3.Vec {
	return r3.Vec{X: -m[8], Y: -m[9], Z: -m[10]}
}

// Get the translation component (fourth column).
func (m Mat4) Translation() r3.Vec {
	return r3.Vec{X: m[12], Y: m[13], Z: m[14]}
}

// Expand the matrix into 4 rows of 4 values. This is the layout downstream
// NeRF training code expects inside transforms_*.json.
func (m Mat4) Rows() [4][4]float64 {
	var rows [4][4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			rows[row][col] = m[col*4+row]
		}
	}
	return rows
}

// Serialize the matrix as a list of 4 row arrays.
func (m Mat4) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// Parse a matrix from a list of 4 row arrays.
func (m *Mat4) UnmarshalJSON(data []byte) error {
	var rows [4][4]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = rows[row][col]
		}
	}
	return nil
}

// Construct a camera-to-world transform for a camera at eye oriented so that
// its view direction passes through target. The camera looks down its local
// negative Z axis; up is a hint for eliminating roll. If the view direction
// is parallel to up the basis is rebuilt against the world X axis (then the
// world Y axis) so that cameras directly above or below the target still get
// a well-defined orientation.
func LookAt4(eye, target, up r3.Vec) (Mat4, error) {
	dir := r3.Sub(target, eye)
	if r3.Norm(dir) < floatCmpEpsilon {
		return Mat4{}, ErrSingularBasis
	}
	forward := r3.Unit(dir)

	right := r3.Cross(forward, up)
	for _, altUp := range []r3.Vec{{X: 1}, {Y: 1}} {
		if r3.Norm(right) >= floatCmpEpsilon {
			break
		}
		right = r3.Cross(forward, altUp)
	}
	if r3.Norm(right) < floatCmpEpsilon {
		// Unreachable: forward cannot be parallel to both fallback axes.
		return Mat4{}, ErrSingularBasis
	}
	right = r3.Unit(right)
	trueUp := r3.Cross(right, forward)

	return Mat4{
		right.X, right.Y, right.Z, 0,
		trueUp.X, trueUp.Y, trueUp.Z, 0,
		-forward.X, -forward.Y, -forward.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}, nil
}
