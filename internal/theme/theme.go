package theme

import (
	"image/color"
)

// Theme defines the color palette for the preview window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Behind the viewport and around the status bar

	// Status bar
	StatusBar  color.RGBA
	StatusText color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Crop guide, drawn as alternating dashes
	GuideLight color.RGBA
	GuideDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:         "Default",
		Background:   color.RGBA{220, 220, 220, 255},
		StatusBar:    color.RGBA{200, 200, 200, 255},
		StatusText:   color.RGBA{0, 0, 0, 255},
		CheckerLight: color.RGBA{220, 220, 220, 255},
		CheckerDark:  color.RGBA{192, 192, 192, 255},
		GuideLight:   color.RGBA{255, 255, 255, 255},
		GuideDark:    color.RGBA{0, 0, 0, 255},
	}
}

// Fields lists the color keys a theme file may set, in file order.
func Fields() []string {
	return []string{"Background", "StatusBar", "StatusText", "CheckerLight", "CheckerDark", "GuideLight", "GuideDark"}
}
