package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
)

// LogFileName is the export log written at the export root.
const LogFileName = "exporter_log.txt"

// Writer owns the in-memory manifest accumulators and the export log buffer
// for one export run. It is not safe for concurrent use; the export run is
// strictly sequential.
type Writer struct {
	root   string
	angleX float64

	manifests map[string]*Manifest
	frames    map[string]map[int]struct{}
	finalized map[string]bool

	logLines []string
	// Number of log lines already written by a previous FlushLog call.
	// Repeated flushes only append lines past this watermark.
	logWritten int
}

// Create a writer rooted at the export directory for the given splits.
func NewWriter(root string, splits []string, cameraAngleX float64) *Writer {
	w := &Writer{
		root:      root,
		angleX:    cameraAngleX,
		manifests: make(map[string]*Manifest, len(splits)),
		frames:    make(map[string]map[int]struct{}, len(splits)),
		finalized: make(map[string]bool, len(splits)),
	}
	for _, split := range splits {
		w.manifests[split] = NewManifest(cameraAngleX)
		w.frames[split] = make(map[int]struct{})
	}
	return w
}

// Append one frame entry to the split's in-memory manifest. Frame indices
// must be unique within a split and the split must not have been finalized.
func (w *Writer) Record(split string, frame int, imageRef string, transform types.Mat4) error {
	manifest, exists := w.manifests[split]
	if !exists {
		return fmt.Errorf("%w: %q", ErrUnknownSplit, split)
	}
	if w.finalized[split] {
		return fmt.Errorf("%w: %q", ErrAlreadyFinalized, split)
	}
	if _, seen := w.frames[split][frame]; seen {
		return fmt.Errorf("%w: %q frame %d", ErrDuplicateFrame, split, frame)
	}

	w.frames[split][frame] = struct{}{}
	manifest.Frames = append(manifest.Frames, Frame{
		FilePath:        imageRef,
		Rotation:        RotationStep,
		TransformMatrix: transform,
	})
	return nil
}

// Serialize the split's accumulated manifest to transforms_<split>.json at
// the export root and mark the split complete. Calling Finalize twice for
// the same split is a reentry error; the manifest on disk is the dataset's
// ground truth and is written exactly once per run.
func (w *Writer) Finalize(split string) (string, error) {
	manifest, exists := w.manifests[split]
	if !exists {
		return "", fmt.Errorf("%w: %q", ErrUnknownSplit, split)
	}
	if w.finalized[split] {
		return "", fmt.Errorf("%w: %q", ErrAlreadyFinalized, split)
	}

	path := filepath.Join(w.root, ManifestName(split))
	if err := manifest.WriteFile(path); err != nil {
		return "", err
	}

	w.finalized[split] = true
	return path, nil
}

// Append a message to the in-memory log buffer. Never fails.
func (w *Writer) Log(message string) {
	w.logLines = append(w.logLines, message)
}

// Write buffered log lines, oldest first, to the export log file. Lines
// already written by an earlier flush are skipped, so repeated flushes do
// not duplicate content.
func (w *Writer) FlushLog() error {
	if w.logWritten >= len(w.logLines) {
		return nil
	}

	f, err := os.OpenFile(filepath.Join(w.root, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("dataset: opening log file: %w", err)
	}
	defer f.Close()

	for _, line := range w.logLines[w.logWritten:] {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("dataset: writing log file: %w", err)
		}
		w.logWritten++
	}
	return nil
}
