package ply

// Dims summarizes the captured attribute group shapes for one cloud.
type Dims struct {
	// Number of points in the cloud.
	Points int

	// Number of per-vertex opacity values (0 or Points).
	Opacities int

	// Number of DC spherical harmonic triplets (0 or Points).
	DC int

	// Components per point in each multi-component group.
	SHRestComponents   int
	ScaleComponents    int
	RotationComponents int
}

func (c *Cloud) Dims() Dims {
	d := Dims{
		Points:    len(c.XYZ),
		Opacities: len(c.Opacities),
		DC:        len(c.DC),
	}
	if len(c.HigherOrderSH) > 0 {
		d.SHRestComponents = len(c.HigherOrderSH[0])
	}
	if len(c.Scales) > 0 {
		d.ScaleComponents = len(c.Scales[0])
	}
	if len(c.Rotations) > 0 {
		d.RotationComponents = len(c.Rotations[0])
	}
	return d
}

// Attribute group keys reported by MatchingDims.
const (
	GroupXYZ       = "xyz"
	GroupOpacities = "opacities"
	GroupDC        = "direct_current"
)

// MatchingDims compares the core attribute group sizes of two clouds, e.g.
// a trained splat model against its initialization point cloud.
func (c *Cloud) MatchingDims(other *Cloud) map[string]bool {
	return map[string]bool{
		GroupXYZ:       len(c.XYZ) == len(other.XYZ),
		GroupOpacities: len(c.Opacities) == len(other.Opacities),
		GroupDC:        len(c.DC) == len(other.DC),
	}
}
