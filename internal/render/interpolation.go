package render

import (
	"fmt"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Interpolation names a resampling kernel.
type Interpolation string

const (
	Nearest        Interpolation = "nearest"
	ApproxBiLinear Interpolation = "approx-bilinear"
	BiLinear       Interpolation = "bilinear"
	CatmullRom     Interpolation = "catmull-rom"
)

// Interpolations lists the accepted kernel names.
func Interpolations() []Interpolation {
	return []Interpolation{Nearest, ApproxBiLinear, BiLinear, CatmullRom}
}

// ParseInterpolation resolves a kernel name. The empty string selects
// ApproxBiLinear.
func ParseInterpolation(s string) (Interpolation, error) {
	name := Interpolation(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return ApproxBiLinear, nil
	}
	for _, known := range Interpolations() {
		if name == known {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown interpolation %q", s)
}

func (i Interpolation) interpolator() xdraw.Interpolator {
	switch i {
	case Nearest:
		return xdraw.NearestNeighbor
	case BiLinear:
		return xdraw.BiLinear
	case CatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.ApproxBiLinear
	}
}
