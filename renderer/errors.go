package renderer

import "errors"

var (
	ErrRenderFailed = errors.New("renderer: render call failed")
	ErrNoOutput     = errors.New("renderer: render call produced no output file")
	ErrNoCommand    = errors.New("renderer: no engine command configured")
)
