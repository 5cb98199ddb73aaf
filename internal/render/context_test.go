package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/math/f64"
)

func solid(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return img
}

func TestSaveRestoreTranslate(t *testing.T) {
	ctx := NewContext(image.NewRGBA(image.Rect(0, 0, 4, 4)), Nearest, nil)
	ctx.Save()
	ctx.Translate(3, 5)
	ctx.Translate(1, -2)
	if got, want := ctx.Matrix(), (f64.Aff3{1, 0, 4, 0, 1, 3}); got != want {
		t.Fatalf("matrix = %v, want %v", got, want)
	}
	if ctx.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", ctx.Depth())
	}
	ctx.Restore()
	if got := ctx.Matrix(); got != identity {
		t.Fatalf("matrix after restore = %v, want identity", got)
	}
	ctx.Restore()
	if ctx.Depth() != 0 {
		t.Fatalf("unbalanced restore changed depth to %d", ctx.Depth())
	}
}

func TestClearUsesBackground(t *testing.T) {
	dst := solid(3, 3, color.RGBA{R: 255, A: 255})
	NewContext(dst, Nearest, nil).Clear()
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Fatalf("transparent clear left %v", got)
	}
	bg := color.RGBA{G: 10, B: 20, A: 255}
	NewContext(dst, Nearest, bg).Clear()
	if got := dst.RGBAAt(2, 2); got != bg {
		t.Fatalf("background clear = %v, want %v", got, bg)
	}
}

func TestDrawImageScalesAroundTranslatedOrigin(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	ctx := NewContext(dst, Nearest, nil)
	ctx.Save()
	ctx.Translate(10, 10)
	ctx.DrawImage(solid(2, 2, red), -2, -2, 4, 4)
	ctx.Restore()

	for _, p := range []image.Point{{8, 8}, {9, 10}, {11, 11}, {10, 8}} {
		if got := dst.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{5, 5}, {14, 14}, {10, 15}, {0, 0}} {
		if got := dst.RGBAAt(p.X, p.Y); got.A != 0 {
			t.Errorf("pixel %v = %v, want untouched", p, got)
		}
	}
}

func TestDrawImageOffsetSourceBounds(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	src := solid(10, 10, blue).SubImage(image.Rect(4, 4, 6, 6))
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	NewContext(dst, Nearest, nil).DrawImage(src, 2, 2, 4, 4)
	if got := dst.RGBAAt(3, 3); got != blue {
		t.Fatalf("pixel (3,3) = %v, want blue", got)
	}
	if got := dst.RGBAAt(7, 7); got.A != 0 {
		t.Fatalf("pixel (7,7) = %v, want untouched", got)
	}
}

func TestDrawImageIgnoresEmptyBox(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	ctx := NewContext(dst, BiLinear, nil)
	ctx.DrawImage(solid(2, 2, color.RGBA{R: 1, A: 255}), 0, 0, 0, 4)
	ctx.DrawImage(solid(2, 2, color.RGBA{R: 1, A: 255}), 0, 0, 4, -1)
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("pix[%d] = %d after empty draw", i, v)
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in      string
		want    Interpolation
		wantErr bool
	}{
		{"", ApproxBiLinear, false},
		{"nearest", Nearest, false},
		{" Catmull-Rom ", CatmullRom, false},
		{"bilinear", BiLinear, false},
		{"lanczos", "", true},
	}
	for _, tt := range tests {
		got, err := ParseInterpolation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseInterpolation(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseInterpolation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
