package scene

import (
	"math"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// The camera type tracks the virtual camera's extrinsics for the current
// frame. Orientation is always derived from the position and target via a
// look-at basis so the camera never accumulates roll between frames.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Horizontal field of view in degrees.
	FOV float64

	transform types.Mat4
}

func NewCamera(fov float64) *Camera {
	return &Camera{
		Position:  r3.Vec{},
		Target:    r3.Vec{X: 0, Y: 0, Z: -1},
		Up:        r3.Vec{Z: 1},
		FOV:       fov,
		transform: types.Ident4(),
	}
}

// Move the camera to a new position. The cached transform is stale until
// the next PointAt call.
func (c *Camera) MoveTo(position r3.Vec) {
	c.Position = position
}

// Orient the camera so it faces target and refresh the cached
// camera-to-world transform.
func (c *Camera) PointAt(target r3.Vec) error {
	transform, err := types.LookAt4(c.Position, target, c.Up)
	if err != nil {
		return err
	}

	c.Target = target
	c.transform = transform
	return nil
}

// Get the current camera-to-world transform.
func (c *Camera) Transform() types.Mat4 {
	return c.transform
}

// Get the horizontal field of view in radians. This is the camera_angle_x
// value recorded in dataset manifests.
func (c *Camera) AngleX() float64 {
	return c.FOV * math.Pi / 180
}
