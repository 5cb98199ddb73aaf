package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pinchcrop/internal/imgcodec"
	"github.com/example/pinchcrop/internal/render"
)

func TestParse(t *testing.T) {
	input := `
relative_width = 1080
format = jpg
quality = 80   # smaller files
interpolation = catmull-rom
background = "white"
theme = my_custom_theme
save_dir = /tmp/crops

[notify]
crop = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
StatusText: yellow
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.RelativeWidth != 1080 {
		t.Errorf("RelativeWidth = %v", cfg.RelativeWidth)
	}
	if cfg.Format != imgcodec.JPEG || cfg.Quality != 80 {
		t.Errorf("format/quality = %s/%d", cfg.Format, cfg.Quality)
	}
	if cfg.Interpolation != render.CatmullRom {
		t.Errorf("Interpolation = %s", cfg.Interpolation)
	}
	if cfg.Background != "white" {
		t.Errorf("Background = %q", cfg.Background)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/crops" {
		t.Errorf("Expected save_dir '/tmp/crops', got '%s'", cfg.SaveDir)
	}
	if cfg.Notify != (Notify{Crop: true, Copy: true}) {
		t.Errorf("Notify = %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 0xff}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.StatusText != (color.RGBA{0xff, 0xff, 0, 0xff}) {
		t.Errorf("Unexpected StatusText color: %+v", th.StatusText)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ViewportOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.RelativeWidth != 750 || opts.Format != imgcodec.PNG || opts.Quality != imgcodec.DefaultQuality || opts.Background != nil {
		t.Errorf("default options = %+v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"relative_width = 0":          "relative_width",
		"relative_width = -3":         "relative_width",
		"format = gif":                "gif",
		"quality = 101":               "quality",
		"interpolation = lanczos":     "lanczos",
		"background = nope":           "background",
		"\n[notify]\ncrop = maybe":    "line 3 [notify]",
		"[theme.x]\nBackground = #12": "theme.x",
	}
	for src, want := range tests {
		_, err := Parse(strings.NewReader(src))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("Parse(%q) err = %v, want mention of %q", src, err, want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `relative_width = 412.5
format = jpeg
quality = 70
interpolation = nearest
background = #FF000080
theme = dark
save_dir = /home/user/crops

[notify]
crop = true
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
GuideLight = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.RelativeWidth != cfg2.RelativeWidth || cfg.Format != cfg2.Format || cfg.Quality != cfg2.Quality {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Interpolation != cfg2.Interpolation || cfg.Background != cfg2.Background {
		t.Errorf("render mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestViewportOptionsBackground(t *testing.T) {
	cfg := New()
	cfg.Background = "black"
	opts, err := cfg.ViewportOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Background != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("Background = %v", opts.Background)
	}
	cfg.Background = "#nothex"
	if _, err := cfg.ViewportOptions(); err == nil {
		t.Errorf("bad background accepted")
	}
}

func TestLoaderPrefersOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	override := filepath.Join(dir, "override.rc")
	if err := os.WriteFile(override, []byte("relative_width = 320\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	xdg := filepath.Join(dir, ".config", "pinchcrop")
	if err := os.MkdirAll(xdg, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(xdg, "config.rc"), []byte("relative_width = 640\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader("1.0.0", override).Load()
	if err != nil || cfg.RelativeWidth != 320 {
		t.Fatalf("override load = %+v, %v", cfg, err)
	}
	cfg, err = NewLoader("1.0.0", filepath.Join(dir, "missing.rc")).Load()
	if err != nil || cfg.RelativeWidth != 640 {
		t.Fatalf("xdg load = %+v, %v", cfg, err)
	}
}

func TestLoaderWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("1.0.0", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("GetConfigPath = %q", p)
	}
	cfg, err := l.Load()
	if err != nil || cfg.RelativeWidth != 750 {
		t.Fatalf("default load = %+v, %v", cfg, err)
	}
}

func TestLoaderReportsPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	bad := filepath.Join(dir, "bad.rc")
	if err := os.WriteFile(bad, []byte("quality = lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewLoader("1.0.0", bad).Load()
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("err = %v, want path in message", err)
	}
}
