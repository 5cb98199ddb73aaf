package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/render"
	"github.com/example/pinchcrop/internal/theme"
	"github.com/example/pinchcrop/internal/viewport"
)

// Notify holds notification settings.
type Notify struct {
	Crop bool
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	RelativeWidth float64
	Format        imgcodec.Format
	Quality       int
	Interpolation render.Interpolation
	// Background is kept as written so String reproduces it.
	Background string
	Theme      string
	SaveDir    string
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		RelativeWidth: viewport.DefaultRelativeWidth,
		Format:        imgcodec.PNG,
		Quality:       imgcodec.DefaultQuality,
		Interpolation: render.ApproxBiLinear,
		Theme:         "", // Default to empty to allow fallback to Env/Default
		Themes:        make(map[string]*theme.Theme),
	}
}

// ViewportOptions returns the viewport settings this configuration
// describes. Surface and Image are left for the caller.
func (c *Config) ViewportOptions() (viewport.Options, error) {
	opts := viewport.Options{
		RelativeWidth: c.RelativeWidth,
		Format:        c.Format,
		Quality:       c.Quality,
		Interpolation: c.Interpolation,
	}
	if c.Background != "" {
		bg, err := theme.ParseColor(c.Background)
		if err != nil {
			return viewport.Options{}, fmt.Errorf("background: %w", err)
		}
		opts.Background = bg
	}
	return opts, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	fmt.Fprintf(&sb, "relative_width = %s\n", strconv.FormatFloat(c.RelativeWidth, 'f', -1, 64))
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	fmt.Fprintf(&sb, "quality = %d\n", c.Quality)
	fmt.Fprintf(&sb, "interpolation = %s\n", c.Interpolation)
	if c.Background != "" {
		fmt.Fprintf(&sb, "background = %s\n", c.Background)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "crop = %v\n", c.Notify.Crop)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, key := range theme.Fields() {
			col, _ := t.Get(key)
			fmt.Fprintf(&sb, "%s: %s\n", key, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
