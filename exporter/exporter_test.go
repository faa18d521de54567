package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/dataset"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// fakeRenderer stands in for the host engine: it touches the output file
// and remembers the camera position for each render call.
type fakeRenderer struct {
	positions []r3.Vec
	failAt    int // render call index to fail at; -1 disables
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{failAt: -1}
}

func (f *fakeRenderer) Render(cam *scene.Camera, outPath string) error {
	if f.failAt >= 0 && len(f.positions) == f.failAt {
		return errors.New("engine exploded")
	}
	f.positions = append(f.positions, cam.Position)
	return os.WriteFile(outPath, []byte{0}, 0644)
}

func (f *fakeRenderer) Close() {}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ExportPath = filepath.Join(t.TempDir(), "export")
	cfg.FocusPoint = r3.Vec{X: 1, Y: -1, Z: 0.5}
	cfg.Distance = 5
	cfg.Sizes = dataset.Sizes{Train: 3, Val: 2, Test: 1}
	cfg.Seed = 1234
	return cfg
}

func TestExporterRun(t *testing.T) {
	cfg := testConfig(t)
	r := newFakeRenderer()

	e, err := New(cfg, r)
	require.NoError(t, err)
	require.NoError(t, e.Run())

	// Every sampled pose rendered exactly once, in order.
	require.Len(t, r.positions, 6)
	assert.Equal(t, e.Positions(), r.positions)

	totalFrames := 0
	for _, spec := range []struct {
		split  string
		frames int
	}{
		{dataset.SplitTrain, 3},
		{dataset.SplitVal, 2},
		{dataset.SplitTest, 1},
	} {
		manifest, err := dataset.ReadManifest(filepath.Join(cfg.ExportPath, dataset.ManifestName(spec.split)))
		require.NoError(t, err, spec.split)
		require.Len(t, manifest.Frames, spec.frames, spec.split)
		totalFrames += len(manifest.Frames)

		for i, frame := range manifest.Frames {
			assert.Equal(t, fmt.Sprintf("./%s/r_%d", spec.split, i), frame.FilePath)

			// Images exist where the manifest points.
			_, err := os.Stat(filepath.Join(cfg.ExportPath, spec.split, fmt.Sprintf("r_%d.png", i)))
			assert.NoError(t, err)

			// Every recorded pose sits on the sampling sphere.
			position := frame.TransformMatrix.Translation()
			radius := r3.Norm(r3.Sub(position, cfg.FocusPoint))
			assert.InEpsilon(t, cfg.Distance, radius, 1e-6)
		}
	}
	assert.Equal(t, 6, totalFrames)

	// Split membership follows sampling order: train gets poses [0:3],
	// val [3:5], test [5:6].
	trainManifest, err := dataset.ReadManifest(filepath.Join(cfg.ExportPath, dataset.ManifestName(dataset.SplitTrain)))
	require.NoError(t, err)
	for i, frame := range trainManifest.Frames {
		position := frame.TransformMatrix.Translation()
		assert.InDelta(t, r.positions[i].X, position.X, 1e-9)
		assert.InDelta(t, r.positions[i].Y, position.Y, 1e-9)
		assert.InDelta(t, r.positions[i].Z, position.Z, 1e-9)
	}

	stats := e.Stats()
	assert.NotEmpty(t, stats.RunID)
	require.Len(t, stats.Splits, 3)
	assert.Equal(t, 3, stats.Splits[0].Frames)
}

func TestExporterRunWritesLog(t *testing.T) {
	cfg := testConfig(t)

	e, err := New(cfg, newFakeRenderer())
	require.NoError(t, err)
	require.NoError(t, e.Run())

	data, err := os.ReadFile(filepath.Join(cfg.ExportPath, dataset.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "finished rendering frames for train")
}

func TestExporterRenderFailureAbortsRun(t *testing.T) {
	cfg := testConfig(t)
	r := newFakeRenderer()
	r.failAt = 4 // second val frame

	e, err := New(cfg, r)
	require.NoError(t, err)

	err = e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `split "val" frame 1`)

	// The failing split's manifest must not exist; a partial manifest
	// would masquerade as a complete dataset.
	_, statErr := os.Stat(filepath.Join(cfg.ExportPath, dataset.ManifestName(dataset.SplitVal)))
	assert.True(t, os.IsNotExist(statErr))

	// Splits completed before the failure keep their manifests.
	_, statErr = os.Stat(filepath.Join(cfg.ExportPath, dataset.ManifestName(dataset.SplitTrain)))
	assert.NoError(t, statErr)
}

func TestExporterTestRender(t *testing.T) {
	cfg := testConfig(t)
	r := newFakeRenderer()

	e, err := New(cfg, r)
	require.NoError(t, err)

	outPath := filepath.Join(cfg.ExportPath, "test.png")
	require.NoError(t, e.TestRender(outPath))

	_, err = os.Stat(outPath)
	assert.NoError(t, err)
	require.Len(t, r.positions, 1)
	assert.Equal(t, e.Positions()[0], r.positions[0])
}

func TestExporterConfigErrors(t *testing.T) {
	base := testConfig(t)

	specs := []struct {
		name   string
		mutate func(*Config)
		expErr error
	}{
		{"no export path", func(c *Config) { c.ExportPath = "" }, ErrNoExportPath},
		{"negative split size", func(c *Config) { c.Sizes.Val = -1 }, dataset.ErrInvalidSizes},
		{"zero total frames", func(c *Config) { c.Sizes = dataset.Sizes{} }, dataset.ErrInvalidSizes},
		{"bad fov", func(c *Config) { c.FOV = 200 }, ErrInvalidFOV},
	}

	for _, spec := range specs {
		cfg := base
		spec.mutate(&cfg)
		_, err := New(cfg, newFakeRenderer())
		assert.ErrorIs(t, err, spec.expErr, spec.name)
	}
}

func TestExporterInvalidDistanceDoesNotClearPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Distance = -1

	// Pre-existing content at the export path must survive a rejected
	// configuration.
	require.NoError(t, os.MkdirAll(cfg.ExportPath, 0755))
	marker := filepath.Join(cfg.ExportPath, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0644))

	_, err := New(cfg, newFakeRenderer())
	require.Error(t, err)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr)
}

func TestExporterRequiresRenderer(t *testing.T) {
	_, err := New(testConfig(t), nil)
	assert.ErrorIs(t, err, ErrNoRenderer)
}
