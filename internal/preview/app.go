// Package preview shows a viewport in a desktop window and drives it with
// the mouse standing in for touches.
package preview

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pinchcrop/internal/clipboard"
	"github.com/example/pinchcrop/internal/notify"
	"github.com/example/pinchcrop/internal/theme"
	"github.com/example/pinchcrop/internal/viewport"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// wheelStep is the zoom factor applied per scroll notch.
const wheelStep = 1.1

// App holds the preview window configuration.
type App struct {
	Viewport viewport.Options
	Width    int
	Height   int
	Region   *viewport.Region
	Output   string
	Theme    *theme.Theme
	Notifier *notify.Notifier

	onClose func()
}

// Option modifies an App during creation.
type Option func(*App)

// WithViewport sets the image and rendering options. Surface is ignored;
// the window provides it.
func WithViewport(opts viewport.Options) Option { return func(a *App) { a.Viewport = opts } }

// WithSize sets the initial surface size in pixels.
func WithSize(width, height int) Option {
	return func(a *App) { a.Width, a.Height = width, height }
}

// WithRegion sets the crop region shown by the guide.
func WithRegion(r viewport.Region) Option { return func(a *App) { a.Region = &r } }

// WithOutput sets where the save shortcut writes the crop.
func WithOutput(out string) Option { return func(a *App) { a.Output = out } }

// WithTheme sets the window palette.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithNotifier routes crop, save and copy notifications.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{Width: 375, Height: 667, Output: "crop.png"}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Width <= 0 || a.Height <= 0 {
		a.Width, a.Height = 375, 667
	}
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *App) Main(s screen.Screen) {
	defer func() {
		if a.onClose != nil {
			a.onClose()
		}
	}()

	sess, err := newSession(a.Viewport, a.Width, a.Height, a.Region)
	if err != nil {
		log.Printf("preview: %v", err)
		return
	}

	width, height := a.Width, a.Height+statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "PinchCrop"})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	var message string
	var messageUntil time.Time
	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	bd := &backdrop{}
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, bd, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	copyCrop := func() {
		url, err := sess.cropDataURL()
		if err != nil {
			say("crop: %v", err)
			return
		}
		a.Notifier.Crop(sess.cropRegion().String(), sess.cropImage())
		if err := clipboard.WriteText(url); err != nil {
			say("copy: %v", err)
			return
		}
		a.Notifier.Copy("data URL")
		say("data URL copied (%d bytes)", len(url))
	}
	saveCrop := func() {
		if err := sess.save(a.Output); err != nil {
			say("save: %v", err)
			return
		}
		a.Notifier.Save(a.Output)
		say("saved %s", filepath.Base(a.Output))
	}
	rebuild := func() {
		sw, sh := width, height-statusHeight
		if sw <= 0 || sh <= 0 {
			sw, sh = a.Width, a.Height
		}
		if err := sess.rebuild(sw, sh); err != nil {
			say("rebuild: %v", err)
			return
		}
		say("fit %dx%d", sw, sh)
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				width:        width,
				height:       height,
				surface:      sess.snapshot(),
				guide:        sess.guide(),
				status:       sess.status(),
				message:      message,
				messageUntil: messageUntil,
				theme:        a.Theme,
			}
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		case mouse.Event:
			if handleMouse(sess, e, height-statusHeight) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			switch {
			case e.Code == key.CodeEscape || e.Rune == 'q' || e.Rune == 'Q':
				stopPaint()
				return
			case e.Rune == 'c' || e.Rune == 'C':
				copyCrop()
			case e.Rune == 's' || e.Rune == 'S':
				saveCrop()
			case e.Rune == 'r' || e.Rune == 'R':
				rebuild()
			default:
				continue
			}
			w.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}

// handleMouse translates e into touches on sess and reports whether the
// view may have changed. Presses in the status bar below limitY are ignored.
func handleMouse(sess *session, e mouse.Event, limitY int) bool {
	p := viewport.Point{X: float64(e.X), Y: float64(e.Y)}
	switch {
	case e.Button.IsWheel():
		if e.Direction != mouse.DirStep && e.Direction != mouse.DirPress {
			return false
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			return sess.wheel(wheelStep)
		case mouse.ButtonWheelDown:
			return sess.wheel(1 / wheelStep)
		}
		return false
	case e.Direction == mouse.DirPress:
		if int(e.Y) >= limitY {
			return false
		}
		pinch := e.Button == mouse.ButtonRight || e.Modifiers&key.ModShift != 0
		if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonRight {
			return false
		}
		sess.press(p, pinch)
		return true
	case e.Direction == mouse.DirRelease:
		sess.release(p)
		return true
	case e.Direction == mouse.DirNone:
		return sess.drag(p)
	}
	return false
}
