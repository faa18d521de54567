package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per pixel.
	SamplesPerPixel uint32

	// Engine selection. Pass-through values for the host engine; the
	// exporter core attaches no meaning to them.
	Engine string
	Device string
}

// DefaultOptions returns the render settings a typical preview-quality
// export uses.
func DefaultOptions() Options {
	return Options{
		FrameW:          960,
		FrameH:          540,
		SamplesPerPixel: 128,
		Engine:          "preview",
		Device:          "GPU",
	}
}
