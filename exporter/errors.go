package exporter

import "errors"

var (
	ErrNoExportPath = errors.New("exporter: no export path configured")
	ErrNoRenderer   = errors.New("exporter: no renderer attached")
	ErrInvalidFOV   = errors.New("exporter: field of view must be in (0, 180) degrees")
)
