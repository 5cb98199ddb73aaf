package preview

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pinchcrop/internal/theme"
)

const (
	statusHeight = 20
	checkerSize  = 8
	guideDash    = 4
	guideWidth   = 2
)

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// backdrop caches the checkerboard for the last window size and theme.
type backdrop struct {
	img   *image.RGBA
	light color.RGBA
	dark  color.RGBA
}

func (b *backdrop) draw(dst *image.RGBA, th *theme.Theme) {
	r := dst.Bounds()
	if b.img == nil || b.img.Bounds() != r || b.light != th.CheckerLight || b.dark != th.CheckerDark {
		b.img = image.NewRGBA(r)
		b.light, b.dark = th.CheckerLight, th.CheckerDark
		drawCheckerboard(b.img, r, checkerSize, b.light, b.dark)
	}
	draw.Draw(dst, r, b.img, r.Min, draw.Src)
}

func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	step := 1
	if length < 0 {
		length = -length
		step = -1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			if horiz {
				img.Set(x0+step*i, y0+t, col)
			} else {
				img.Set(x0+t, y0+step*i, col)
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}

// drawStatus paints the bar along the bottom edge of dst.
func drawStatus(dst *image.RGBA, text string, th *theme.Theme) {
	b := dst.Bounds()
	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBar), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: face}
	d.Dot = fixed.P(bar.Min.X+6, bar.Min.Y+(statusHeight-ascent-descent)/2+ascent)
	d.DrawString(text)
}

type paintState struct {
	width, height int
	surface       *image.RGBA
	guide         image.Rectangle
	status        string
	message       string
	messageUntil  time.Time
	theme         *theme.Theme
}

// composeFrame draws st into dst. It returns false when ctx was cancelled
// part way through.
func composeFrame(ctx context.Context, dst *image.RGBA, bd *backdrop, st paintState) bool {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(st.theme.Background), image.Point{}, draw.Src)
	view := st.surface.Bounds().Intersect(image.Rect(0, 0, st.width, st.height-statusHeight))
	if !view.Empty() {
		bd.draw(dst.SubImage(view).(*image.RGBA), st.theme)
	}
	if ctx.Err() != nil {
		return false
	}

	draw.Draw(dst, view, st.surface, view.Min, draw.Over)
	if ctx.Err() != nil {
		return false
	}

	if !st.guide.Empty() {
		drawDashedRect(dst, st.guide, guideDash, guideWidth, st.theme.GuideLight, st.theme.GuideDark)
	}

	text := st.status
	if st.message != "" && time.Now().Before(st.messageUntil) {
		text = st.message
	}
	drawStatus(dst, text, st.theme)
	return ctx.Err() == nil
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, bd *backdrop, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !composeFrame(ctx, b.RGBA(), bd, st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
