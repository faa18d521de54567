package sampler

import "errors"

var (
	ErrInvalidCount      = errors.New("sampler: sample count cannot be negative")
	ErrInvalidDistance   = errors.New("sampler: distance must be greater than zero")
	ErrInvalidPolarRange = errors.New("sampler: polar range must satisfy 0 <= min < max <= pi")
)
