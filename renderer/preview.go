package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Preview is a built-in CPU renderer used when no host engine is attached.
// It ray-traces a single Lambert-shaded sphere at the focus point, which is
// enough to eyeball that sampled camera poses orbit and face the subject.
type Preview struct {
	opts   Options
	center r3.Vec
	radius float64
	rng    *rand.Rand
}

func NewPreview(opts Options, focus r3.Vec, radius float64) *Preview {
	if radius <= 0 {
		radius = 1
	}
	return &Preview{
		opts:   opts,
		center: focus,
		radius: radius,
		rng:    rand.New(rand.NewSource(1)),
	}
}

func (p *Preview) Render(cam *scene.Camera, outPath string) error {
	w := int(p.opts.FrameW)
	h := int(p.opts.FrameH)
	spp := int(p.opts.SamplesPerPixel)
	if spp < 1 {
		spp = 1
	}

	transform := cam.Transform()
	origin := transform.Translation()
	forward := transform.Forward()
	right := transform.Right()
	up := transform.Up()

	tanHalf := math.Tan(cam.AngleX() / 2)
	aspect := float64(h) / float64(w)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for s := 0; s < spp; s++ {
				jx, jy := p.rng.Float64(), p.rng.Float64()
				u := (2*(float64(x)+jx)/float64(w) - 1) * tanHalf
				v := (1 - 2*(float64(y)+jy)/float64(h)) * tanHalf * aspect

				dir := r3.Unit(r3.Add(r3.Add(forward, r3.Scale(u, right)), r3.Scale(v, up)))
				acc += p.shade(origin, dir)
			}

			val := uint8(math.Min(acc/float64(spp), 1) * 255)
			img.SetRGBA(x, y, color.RGBA{R: val, G: val, B: val, A: 255})
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("%w: encoding png: %v", ErrRenderFailed, err)
	}
	return nil
}

func (p *Preview) Close() {}

// Shade a primary ray: headlight-lit Lambert sphere over a dim background.
func (p *Preview) shade(origin, dir r3.Vec) float64 {
	const background = 0.08

	oc := r3.Sub(origin, p.center)
	b := r3.Dot(oc, dir)
	c := r3.Norm2(oc) - p.radius*p.radius
	disc := b*b - c
	if disc < 0 {
		return background
	}

	t := -b - math.Sqrt(disc)
	if t <= 0 {
		return background
	}

	hit := r3.Add(origin, r3.Scale(t, dir))
	normal := r3.Unit(r3.Sub(hit, p.center))
	lambert := r3.Dot(normal, r3.Scale(-1, dir))
	if lambert < 0 {
		lambert = 0
	}
	return 0.1 + 0.9*lambert
}
