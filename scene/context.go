package scene

import (
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// Context bundles the active camera with the focus point it orbits. It
// stands in for the host 3D engine's ambient scene state and is passed
// explicitly to any component that needs to manipulate or read the camera.
type Context struct {
	Camera     *Camera
	FocusPoint r3.Vec
}

func NewContext(camera *Camera, focusPoint r3.Vec) *Context {
	return &Context{
		Camera:     camera,
		FocusPoint: focusPoint,
	}
}

// Position the camera for the next frame and orient it toward the focus
// point.
func (sc *Context) PrepareFrame(position r3.Vec) error {
	sc.Camera.MoveTo(position)
	return sc.Camera.PointAt(sc.FocusPoint)
}

// Read the active camera's transform.
func (sc *Context) CameraTransform() types.Mat4 {
	return sc.Camera.Transform()
}
