package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
)

// RotationStep is the per-frame rotation value recorded with each frame,
// inherited from the NeRF synthetic dataset format (360 degrees over 200
// frames, in radians).
const RotationStep = (360.0 / 200.0) * math.Pi / 180.0

// A Frame pairs a rendered image reference with the camera transform it was
// rendered from. FilePath is relative to the export root and carries no
// extension ("./train/r_0"), matching what NeRF training loaders expect.
type Frame struct {
	FilePath        string     `json:"file_path"`
	Rotation        float64    `json:"rotation"`
	TransformMatrix types.Mat4 `json:"transform_matrix"`
}

// A Manifest accumulates the per-frame records for one split together with
// the shared camera intrinsics.
type Manifest struct {
	CameraAngleX float64 `json:"camera_angle_x"`
	Frames       []Frame `json:"frames"`
}

func NewManifest(cameraAngleX float64) *Manifest {
	return &Manifest{
		CameraAngleX: cameraAngleX,
		Frames:       make([]Frame, 0),
	}
}

// Serialize the manifest to path, overwriting any previous content.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("dataset: marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("dataset: writing manifest: %w", err)
	}
	return nil
}

// Parse a manifest previously written with WriteFile.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("dataset: parsing manifest: %w", err)
	}
	return &m, nil
}

// ManifestName returns the manifest filename for a split
// ("transforms_train.json").
func ManifestName(split string) string {
	return "transforms_" + split + ".json"
}
