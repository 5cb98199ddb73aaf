package viewport

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Region is a crop rectangle in relative-width units.
type Region struct {
	Width, Height, X, Y float64
}

// ParseRegion reads "W,H,X,Y". X and Y may be omitted and default to 0.
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 && len(parts) != 4 {
		return Region{}, fmt.Errorf("region %q: want W,H or W,H,X,Y", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Region{}, fmt.Errorf("region %q: bad number %q", s, p)
		}
		v[i] = f
	}
	return Region{Width: v[0], Height: v[1], X: v[2], Y: v[3]}, nil
}

func (r Region) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(r.Width) + "," + f(r.Height) + "," + f(r.X) + "," + f(r.Y)
}

// FullRegion covers the whole surface.
func (c *Controller) FullRegion() Region {
	b := c.surface.Bounds()
	scale := c.CropScale()
	return Region{Width: float64(b.Dx()) / scale, Height: float64(b.Dy()) / scale}
}

// RegionPixels returns the surface rectangle CropImage would copy for r.
func (c *Controller) RegionPixels(r Region) image.Rectangle {
	size, from := c.cropBounds(r.Width, r.Height, r.X, r.Y)
	if size == (image.Point{}) {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: from, Max: from.Add(size)}
}

// CropRegion is Crop for a Region.
func (c *Controller) CropRegion(r Region) (string, error) {
	return c.Crop(r.Width, r.Height, r.X, r.Y)
}
