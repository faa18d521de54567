package scene

import (
	"math"
	"testing"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCameraPointAt(t *testing.T) {
	cam := NewCamera(50)
	cam.MoveTo(r3.Vec{X: 4, Y: 4, Z: 2})

	target := r3.Vec{X: 1, Y: 0, Z: 1}
	if err := cam.PointAt(target); err != nil {
		t.Fatal(err)
	}

	expForward := r3.Unit(r3.Sub(target, cam.Position))
	if !types.VecApproxEqual(cam.Transform().Forward(), expForward, 1e-9) {
		t.Fatalf("expected camera forward axis %v; got %v", expForward, cam.Transform().Forward())
	}
	if !types.VecApproxEqual(cam.Transform().Translation(), cam.Position, 1e-9) {
		t.Fatalf("expected transform translation %v; got %v", cam.Position, cam.Transform().Translation())
	}
}

func TestCameraAngleX(t *testing.T) {
	cam := NewCamera(90)
	if exp := math.Pi / 2; math.Abs(cam.AngleX()-exp) > 1e-12 {
		t.Fatalf("expected angle x to be %g; got %g", exp, cam.AngleX())
	}
}

func TestContextPrepareFrame(t *testing.T) {
	focus := r3.Vec{X: 0.5, Y: -0.5, Z: 1}
	sc := NewContext(NewCamera(50), focus)

	position := r3.Vec{X: 3, Y: 3, Z: 3}
	if err := sc.PrepareFrame(position); err != nil {
		t.Fatal(err)
	}

	expForward := r3.Unit(r3.Sub(focus, position))
	if !types.VecApproxEqual(sc.CameraTransform().Forward(), expForward, 1e-9) {
		t.Fatalf("expected forward axis %v; got %v", expForward, sc.CameraTransform().Forward())
	}
}

func TestContextPrepareFrameAboveFocus(t *testing.T) {
	focus := r3.Vec{}
	sc := NewContext(NewCamera(50), focus)

	// Directly above the focus point along the up axis. The look-at
	// fallback must still produce a finite transform.
	if err := sc.PrepareFrame(r3.Vec{Z: 10}); err != nil {
		t.Fatal(err)
	}
	for i, val := range sc.CameraTransform() {
		if math.IsNaN(val) {
			t.Fatalf("transform element %d is NaN", i)
		}
	}
}
