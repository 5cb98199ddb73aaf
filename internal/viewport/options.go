package viewport

import (
	"errors"
	"image"
	"image/color"

	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/render"
)

// DefaultRelativeWidth is the design width crop coordinates are given in
// when none is configured.
const DefaultRelativeWidth = 750

// ErrInvalidConfiguration is returned by New when a required input is
// missing or unusable.
var ErrInvalidConfiguration = errors.New("invalid viewport configuration")

// Options configures a Controller.
type Options struct {
	// Surface is the element the image is drawn for. Required.
	Surface Host
	// Image is the source image. Required.
	Image image.Image
	// RelativeWidth is the width of the coordinate system Crop arguments
	// are expressed in.
	RelativeWidth float64
	// Format and Quality select the Crop encoding.
	Format  imgcodec.Format
	Quality int
	// Interpolation selects the resampling kernel for renders.
	Interpolation render.Interpolation
	// Background fills the surface on every clear. Nil means transparent.
	Background color.Color
	// Resync re-derives the gesture mode when a move reports a different
	// number of touches than the session started with.
	Resync bool
}

// WithDefaults returns a copy of o with unset fields filled in. Fields the
// caller set are kept as they are.
func (o Options) WithDefaults() Options {
	if o.RelativeWidth == 0 {
		o.RelativeWidth = DefaultRelativeWidth
	}
	if o.Format == "" {
		o.Format = imgcodec.PNG
	}
	if o.Quality == 0 {
		o.Quality = imgcodec.DefaultQuality
	}
	if o.Interpolation == "" {
		o.Interpolation = render.ApproxBiLinear
	}
	return o
}
