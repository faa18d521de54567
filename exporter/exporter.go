package exporter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/dataset"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/log"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/renderer"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/sampler"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

var logger = log.New("exporter")

// Split rendering lifecycle. A split is COMPLETE once its manifest has been
// finalized on disk.
type splitState uint8

const (
	splitPending splitState = iota
	splitRendering
	splitComplete
)

type SplitStats struct {
	Name       string
	Frames     int
	RenderTime time.Duration
}

type RunStats struct {
	RunID      string
	Splits     []SplitStats
	RenderTime time.Duration
}

// Exporter drives one synthetic dataset export run: it samples all camera
// positions up front, then renders every frame split by split, records the
// camera transforms and finalizes one manifest per split.
type Exporter struct {
	cfg      Config
	renderer renderer.Renderer
	sc       *scene.Context
	writer   *dataset.Writer

	positions []r3.Vec
	splits    []dataset.Split
	states    []splitState

	runID string
	stats RunStats
}

// Create an exporter. Configuration and pose bookkeeping are validated
// before the export path is touched, so a misconfigured run never destroys
// an existing dataset. The export path is then cleared and recreated.
func New(cfg Config, r renderer.Renderer) (*Exporter, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []sampler.Option{}
	if cfg.Seed != 0 {
		opts = append(opts, sampler.WithSeed(cfg.Seed))
	}
	minPolar, maxPolar := cfg.polarRange()
	opts = append(opts, sampler.WithPolarRange(minPolar, maxPolar))

	sphere, err := sampler.NewSphere(cfg.Distance, opts...)
	if err != nil {
		return nil, err
	}

	positions, err := sphere.Sample(cfg.Sizes.Total(), cfg.FocusPoint)
	if err != nil {
		return nil, err
	}

	// Fail fast on any bookkeeping mismatch before rendering starts.
	splits, err := cfg.Sizes.Partition(len(positions))
	if err != nil {
		return nil, err
	}

	if err := dataset.PreparePath(cfg.ExportPath, cfg.Sizes.Names()); err != nil {
		return nil, err
	}

	cam := scene.NewCamera(cfg.FOV)
	runID := uuid.NewString()

	e := &Exporter{
		cfg:       cfg,
		renderer:  r,
		sc:        scene.NewContext(cam, cfg.FocusPoint),
		writer:    dataset.NewWriter(cfg.ExportPath, cfg.Sizes.Names(), cam.AngleX()),
		positions: positions,
		splits:    splits,
		states:    make([]splitState, len(splits)),
		runID:     runID,
	}
	e.stats.RunID = runID

	logger.Noticef("initialized export run %s: %d poses at distance %g around %v", runID, len(positions), cfg.Distance, cfg.FocusPoint)
	return e, nil
}

// Render every frame of every split and write one manifest per split. Any
// render or bookkeeping failure aborts the whole run; a skipped frame would
// silently break the split size invariants downstream training relies on.
func (e *Exporter) Run() error {
	start := time.Now()
	e.writer.Log(fmt.Sprintf("run %s: rendering %d frames to %s", e.runID, len(e.positions), e.cfg.ExportPath))

	defer func() {
		// The log is best-effort; a failed flush never fails the run.
		if err := e.writer.FlushLog(); err != nil {
			logger.Warningf("failed to flush export log: %v", err)
		}
	}()

	for i, split := range e.splits {
		if err := e.renderSplit(i, split); err != nil {
			return err
		}
	}

	e.stats.RenderTime = time.Since(start)
	logger.Noticef("run %s complete: %d frames in %s", e.runID, len(e.positions), e.stats.RenderTime)
	return nil
}

func (e *Exporter) renderSplit(index int, split dataset.Split) error {
	e.states[index] = splitRendering
	start := time.Now()

	for frame := 0; frame < split.Count; frame++ {
		position := e.positions[split.Offset+frame]
		if err := e.sc.PrepareFrame(position); err != nil {
			return fmt.Errorf("split %q frame %d: preparing camera: %w", split.Name, frame, err)
		}

		imagePath := filepath.Join(e.cfg.ExportPath, split.Name, fmt.Sprintf("r_%d.png", frame))
		e.writer.Log("rendering image to: " + imagePath)
		logger.Debugf("split %q frame %d: camera at %v", split.Name, frame, position)

		if err := e.renderer.Render(e.sc.Camera, imagePath); err != nil {
			return fmt.Errorf("split %q frame %d: %w", split.Name, frame, err)
		}

		imageRef := fmt.Sprintf("./%s/r_%d", split.Name, frame)
		if err := e.writer.Record(split.Name, frame, imageRef, e.sc.CameraTransform()); err != nil {
			return fmt.Errorf("split %q frame %d: %w", split.Name, frame, err)
		}
	}

	manifestPath, err := e.writer.Finalize(split.Name)
	if err != nil {
		return fmt.Errorf("split %q: %w", split.Name, err)
	}

	e.states[index] = splitComplete
	e.writer.Log("finished rendering frames for " + split.Name)
	e.writer.Log("saved camera transform data to " + manifestPath)

	e.stats.Splits = append(e.stats.Splits, SplitStats{
		Name:       split.Name,
		Frames:     split.Count,
		RenderTime: time.Since(start),
	})
	return nil
}

// Render a single frame from the first sampled pose without touching the
// dataset bookkeeping. Useful to verify engine settings before committing
// to a full run.
func (e *Exporter) TestRender(outPath string) error {
	if len(e.positions) == 0 {
		return dataset.ErrSizeMismatch
	}
	if err := e.sc.PrepareFrame(e.positions[0]); err != nil {
		return fmt.Errorf("test render: preparing camera: %w", err)
	}

	e.writer.Log("rendering image to: " + outPath)
	if err := e.renderer.Render(e.sc.Camera, outPath); err != nil {
		return fmt.Errorf("test render: %w", err)
	}
	return nil
}

// Get statistics for the completed run.
func (e *Exporter) Stats() RunStats {
	return e.stats
}

// Get the sampled camera positions in generation order.
func (e *Exporter) Positions() []r3.Vec {
	return e.positions
}
