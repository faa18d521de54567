package renderer

import (
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
)

// Renderer is the boundary to the host 3D engine. Implementations render
// the view from the supplied camera state to an image file at outPath. The
// call is synchronous: when it returns without error the file exists on
// disk.
type Renderer interface {
	// Render the current camera view to outPath.
	Render(cam *scene.Camera, outPath string) error

	// Shutdown renderer and release any attached resources.
	Close()
}
