package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPreviewRendersSphere(t *testing.T) {
	opts := Options{FrameW: 32, FrameH: 32, SamplesPerPixel: 4}
	focus := r3.Vec{}
	p := NewPreview(opts, focus, 1)
	defer p.Close()

	cam := scene.NewCamera(50)
	cam.MoveTo(r3.Vec{X: 5})
	if err := cam.PointAt(focus); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(t.TempDir(), "r_0.png")
	if err := p.Render(cam, outPath); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 32 {
		t.Fatalf("expected a 32x32 frame; got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// The camera faces the sphere, so the frame center must be brighter
	// than the corner background.
	centerR, _, _, _ := img.At(16, 16).RGBA()
	cornerR, _, _, _ := img.At(0, 0).RGBA()
	if centerR <= cornerR {
		t.Fatalf("expected sphere at frame center to be brighter than background; center %d, corner %d", centerR, cornerR)
	}
}

func TestPreviewRenderToInvalidPath(t *testing.T) {
	p := NewPreview(Options{FrameW: 4, FrameH: 4, SamplesPerPixel: 1}, r3.Vec{}, 1)

	cam := scene.NewCamera(50)
	cam.MoveTo(r3.Vec{X: 3})
	if err := cam.PointAt(r3.Vec{}); err != nil {
		t.Fatal(err)
	}

	err := p.Render(cam, filepath.Join(t.TempDir(), "missing-dir", "r_0.png"))
	if err == nil {
		t.Fatal("expected an error when the output directory does not exist")
	}
}
