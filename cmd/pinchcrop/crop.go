package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/pinchcrop/internal/clipboard"
	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/render"
	"github.com/example/pinchcrop/internal/touch"
	"github.com/example/pinchcrop/internal/viewport"
)

// writeClipboardImage is swapped out in tests.
var writeClipboardImage = clipboard.WriteImage

// cropCmd builds a viewport for an image, replays recorded gestures on it
// and crops the result.
type cropCmd struct {
	file          string
	fromClipboard bool
	size          string
	width, height int
	relWidth      float64
	gestures      string
	format        string
	quality       int
	interpolation string
	rect          string
	region        *viewport.Region
	output        string
	toClipboard   bool
	dataURL       bool
	resync        bool
	stdout        io.Writer
	stdin         io.Reader
	*root
	fs *flag.FlagSet
}

func (c *cropCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCropCmd(args []string, r *root) (*cropCmd, error) {
	fs := flag.NewFlagSet("crop", flag.ExitOnError)
	c := &cropCmd{root: r.subcommand("crop"), fs: fs, stdout: os.Stdout, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	cfg := r.config
	fs.StringVar(&c.file, "file", "", "input image file")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&c.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.StringVar(&c.size, "size", "375x667", "surface size in pixels, WxH")
	fs.Float64Var(&c.relWidth, "relative-width", cfg.RelativeWidth, "width of the coordinate system -rect is given in")
	fs.StringVar(&c.gestures, "gestures", "", "gesture script to replay before cropping (- for stdin)")
	fs.StringVar(&c.format, "format", string(cfg.Format), "data URL format: png or jpeg")
	fs.IntVar(&c.quality, "quality", cfg.Quality, "JPEG quality 1-100")
	fs.StringVar(&c.interpolation, "interpolation", string(cfg.Interpolation), "resampling kernel")
	fs.StringVar(&c.rect, "rect", "", "crop region W,H,X,Y in relative-width units (default whole surface)")
	fs.StringVar(&c.output, "output", "", "write the crop to this file")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the cropped image to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the cropped image to the clipboard (alias)")
	fs.BoolVar(&c.dataURL, "data-url", false, "print the data URL even when writing a file")
	fs.BoolVar(&c.resync, "resync", false, "re-derive pan or zoom when the finger count changes mid-gesture")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fromClipboard && c.file != "" {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be combined")
	}
	if !c.fromClipboard && c.file == "" {
		return nil, &UsageError{of: c}
	}
	var err error
	if c.width, c.height, err = parseSize(c.size); err != nil {
		return nil, err
	}
	if c.rect != "" {
		reg, err := viewport.ParseRegion(c.rect)
		if err != nil {
			return nil, err
		}
		c.region = &reg
	}
	if _, err := imgcodec.ParseFormat(c.format); err != nil {
		return nil, err
	}
	if _, err := render.ParseInterpolation(c.interpolation); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cropCmd) viewportOptions() (viewport.Options, error) {
	opts, err := c.root.config.ViewportOptions()
	if err != nil {
		return viewport.Options{}, err
	}
	opts.RelativeWidth = c.relWidth
	opts.Format, _ = imgcodec.ParseFormat(c.format)
	opts.Quality = c.quality
	opts.Interpolation, _ = render.ParseInterpolation(c.interpolation)
	opts.Resync = c.resync
	return opts, nil
}

func (c *cropCmd) loadGestures() ([]*viewport.Event, error) {
	if c.gestures == "" {
		return nil, nil
	}
	if c.gestures == "-" {
		return touch.ParseScript(c.stdin)
	}
	f, err := os.Open(c.gestures)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	events, err := touch.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.gestures, err)
	}
	return events, nil
}

func (c *cropCmd) Run() error {
	src, err := loadSource(c.file, c.fromClipboard)
	if err != nil {
		return err
	}
	events, err := c.loadGestures()
	if err != nil {
		return err
	}
	opts, err := c.viewportOptions()
	if err != nil {
		return err
	}
	el := touch.NewElement(float64(c.width), float64(c.height))
	opts.Surface = el
	opts.Image = src
	vp, err := viewport.New(opts)
	if err != nil {
		if errors.Is(err, viewport.ErrInvalidConfiguration) {
			return fmt.Errorf("cannot build a %dx%d viewport: %w", c.width, c.height, err)
		}
		return err
	}
	if len(events) > 0 {
		n := touch.Replay(el, events)
		st := vp.State()
		fmt.Fprintf(os.Stderr, "replayed %d of %d steps: origin %.1f,%.1f size %.1fx%.1f\n",
			n, len(events), st.Origin.X, st.Origin.Y, st.RenderedWidth, st.RenderedHeight)
	}

	region := vp.FullRegion()
	if c.region != nil {
		region = *c.region
	}
	img := vp.CropImage(region.Width, region.Height, region.X, region.Y)
	c.root.notifyCrop(region.String(), img)

	o := vp.Options()
	if c.output != "" {
		if err := imgcodec.Save(c.output, img, imgcodec.FormatForPath(c.output, o.Format), o.Quality); err != nil {
			return fmt.Errorf("save crop: %w", err)
		}
		saved := c.output
		if abs, err := filepath.Abs(c.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		c.root.notifySave(saved)
	}
	if c.dataURL || (c.output == "" && !c.toClipboard) {
		url, err := imgcodec.DataURL(img, o.Format, o.Quality)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, url)
	}
	if c.toClipboard {
		if img.Bounds().Empty() {
			return fmt.Errorf("crop region %s is empty; nothing to copy", region)
		}
		if err := writeClipboardImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied crop to clipboard")
		c.root.notifyCopy("crop")
	}
	return nil
}
