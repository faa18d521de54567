package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/types"
)

// Placeholders substituted into the engine command's arguments.
const (
	placeholderOut    = "{out}"
	placeholderWidth  = "{width}"
	placeholderHeight = "{height}"
	placeholderSPP    = "{spp}"
	placeholderDevice = "{device}"
)

// framePayload is the camera state piped to the engine command on stdin.
type framePayload struct {
	CameraAngleX    float64    `json:"camera_angle_x"`
	TransformMatrix types.Mat4 `json:"transform_matrix"`
	Width           uint32     `json:"width"`
	Height          uint32     `json:"height"`
	SamplesPerPixel uint32     `json:"samples_per_pixel"`
	Device          string     `json:"device,omitempty"`
}

// Command invokes an external rendering engine binary once per frame. The
// engine receives the camera pose as JSON on stdin and must write the image
// to the substituted {out} path before exiting.
type Command struct {
	opts Options
	argv []string
}

func NewCommand(opts Options, argv []string) (*Command, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}
	return &Command{opts: opts, argv: argv}, nil
}

func (c *Command) Render(cam *scene.Camera, outPath string) error {
	payload, err := json.Marshal(framePayload{
		CameraAngleX:    cam.AngleX(),
		TransformMatrix: cam.Transform(),
		Width:           c.opts.FrameW,
		Height:          c.opts.FrameH,
		SamplesPerPixel: c.opts.SamplesPerPixel,
		Device:          c.opts.Device,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding camera payload: %v", ErrRenderFailed, err)
	}

	args := make([]string, len(c.argv)-1)
	for i, arg := range c.argv[1:] {
		args[i] = c.substitute(arg, outPath)
	}

	cmd := exec.Command(c.argv[0], args...)
	cmd.Stdin = bytes.NewReader(payload)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrRenderFailed, err, bytes.TrimSpace(out))
	}

	// The render call must leave an image on disk; a missing file would
	// silently corrupt the dataset's split bookkeeping downstream.
	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("%w: %s", ErrNoOutput, outPath)
	}
	return nil
}

func (c *Command) Close() {}

func (c *Command) substitute(arg, outPath string) string {
	replacer := strings.NewReplacer(
		placeholderOut, outPath,
		placeholderWidth, fmt.Sprintf("%d", c.opts.FrameW),
		placeholderHeight, fmt.Sprintf("%d", c.opts.FrameH),
		placeholderSPP, fmt.Sprintf("%d", c.opts.SamplesPerPixel),
		placeholderDevice, c.opts.Device,
	)
	return replacer.Replace(arg)
}
