package ply

import "errors"

var (
	ErrBadMagic          = errors.New("ply: missing ply magic header")
	ErrUnsupportedFormat = errors.New("ply: unsupported format")
	ErrMissingProperty   = errors.New("ply: missing required vertex property")
	ErrTruncated         = errors.New("ply: truncated vertex data")
)
