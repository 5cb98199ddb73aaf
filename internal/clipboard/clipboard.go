// Package clipboard moves crops and source images through the system
// clipboard. Images travel as PNG; text travels as UTF-8.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/example/pinchcrop/internal/imgcodec"
)

// backend is one platform clipboard implementation.
type backend interface {
	writeText(data []byte) error
	writeImage(png []byte) error
	readText() ([]byte, error)
	readImage() ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend

	errNoImage = errors.New("clipboard does not contain image data")
	errNoText  = errors.New("clipboard does not contain text data")
)

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = openBackend()
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imgcodec.Encode(&buf, img, imgcodec.PNG, 0); err != nil {
		return err
	}
	return active.writeImage(buf.Bytes())
}

// ReadImage retrieves an image from the clipboard. Image data is preferred;
// failing that, text holding an image data URL is decoded.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.readImage()
	if err == nil && len(data) > 0 {
		return imgcodec.Decode(bytes.NewReader(data))
	}
	text, terr := active.readText()
	if terr == nil && strings.HasPrefix(string(text), "data:image/") {
		img, _, err := imgcodec.ParseDataURL(strings.TrimSpace(string(text)))
		return img, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoImage, err)
	}
	return nil, errNoImage
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writeText([]byte(text))
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.readText()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errNoText
	}
	return string(data), nil
}
