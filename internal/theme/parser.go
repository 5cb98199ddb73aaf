package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: color. Colors are
// SVG names, #RGB, #RRGGBB, #RRGGBBAA or "transparent".
func Parse(r io.Reader) (*Theme, error) {
	t := Default() // Start with defaults
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := t.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}

	return t, scanner.Err()
}

// Set assigns one key of the theme. Keys match case-insensitively and
// unknown keys are ignored for forward compatibility.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}

	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Get returns the color stored under key.
func (t *Theme) Get(key string) (color.RGBA, bool) {
	f := reflect.ValueOf(t).Elem().FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, key) })
	if !f.IsValid() {
		return color.RGBA{}, false
	}
	c, ok := f.Interface().(color.RGBA)
	return c, ok
}

// ParseColor parses a color name or hex value.
func ParseColor(s string) (color.RGBA, error) {
	val := strings.ToLower(strings.TrimSpace(s))
	if val == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if val == "transparent" || val == "none" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[val]; ok {
		return c, nil
	}
	if !strings.HasPrefix(val, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	alpha := uint8(255)
	if len(val) == 9 {
		a, err := strconv.ParseUint(val[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = uint8(a)
		val = val[:7]
	}
	c, err := colorful.Hex(val)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 255),
		G: uint8(uint16(g) * uint16(alpha) / 255),
		B: uint8(uint16(b) * uint16(alpha) / 255),
		A: alpha,
	}, nil
}

// Hex renders c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		cf, _ := colorful.MakeColor(c)
		return strings.ToUpper(cf.Hex())
	}
	if c.A == 0 {
		return "#00000000"
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X%02X", nc.R, nc.G, nc.B, nc.A)
}
