package main

import (
	"flag"
	"fmt"

	"github.com/example/pinchcrop/internal/preview"
	"github.com/example/pinchcrop/internal/viewport"
)

type previewCmd struct {
	file          string
	fromClipboard bool
	size          string
	width, height int
	rect          string
	region        *viewport.Region
	output        string
	*root
	fs *flag.FlagSet
}

func (p *previewCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePreviewCmd(args []string, r *root) (*previewCmd, error) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	c := &previewCmd{root: r.subcommand("preview"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to open")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&c.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.StringVar(&c.size, "size", "375x667", "surface size in pixels, WxH")
	fs.StringVar(&c.rect, "rect", "", "crop region W,H,X,Y in relative-width units (default whole surface)")
	fs.StringVar(&c.output, "output", "", "file the s key saves the crop to (default crop.png in save_dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && !c.fromClipboard {
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
	if c.output == "" {
		c.output = defaultOutput(c.root.config.SaveDir, c.root.config.Format)
	}
	return c, nil
}

func (p *previewCmd) options() ([]preview.Option, error) {
	img, err := loadSource(p.file, p.fromClipboard)
	if err != nil {
		return nil, err
	}
	vopts, err := p.root.config.ViewportOptions()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	vopts.Image = img
	opts := []preview.Option{
		preview.WithViewport(vopts),
		preview.WithSize(p.width, p.height),
		preview.WithOutput(p.output),
		preview.WithTheme(p.root.activeTheme),
		preview.WithNotifier(p.root.notifier),
	}
	if p.region != nil {
		opts = append(opts, preview.WithRegion(*p.region))
	}
	return opts, nil
}

func (p *previewCmd) Run() error {
	opts, err := p.options()
	if err != nil {
		return err
	}
	preview.New(opts...).Run()
	return nil
}
