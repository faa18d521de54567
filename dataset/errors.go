package dataset

import "errors"

var (
	ErrInvalidSizes     = errors.New("dataset: split sizes cannot be negative and must total at least one frame")
	ErrSizeMismatch     = errors.New("dataset: pose count does not match the configured split total")
	ErrUnknownSplit     = errors.New("dataset: unknown split name")
	ErrDuplicateFrame   = errors.New("dataset: duplicate frame index for split")
	ErrAlreadyFinalized = errors.New("dataset: split manifest already finalized")
)
