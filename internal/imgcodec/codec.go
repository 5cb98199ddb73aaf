// Package imgcodec loads source images and encodes crop output.
package imgcodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Decoders beyond the PNG/JPEG/GIF set imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// DefaultQuality matches the JPEG quality browsers use when none is given.
const DefaultQuality = 92

// emptyDataURL is what a zero-sized canvas serialises to.
const emptyDataURL = "data:,"

// ErrNotDataURL is returned when a string is not a base64 image data URL.
var ErrNotDataURL = errors.New("not a base64 image data URL")

// ParseFormat resolves a format name. The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// MimeType returns the media type for f.
func (f Format) MimeType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Decode reads an image, applying any EXIF orientation so the pixels match
// what a browser would show.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Open decodes the image at path.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img in format f. quality only applies to JPEG; values
// outside 1..100 fall back to DefaultQuality.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if f == JPEG {
		if quality < 1 || quality > 100 {
			quality = DefaultQuality
		}
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	return imaging.Encode(w, img, imaging.PNG)
}

// Save writes img to path in format f.
func Save(path string, img image.Image, f Format, quality int) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := Encode(out, img, f, quality); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// FormatForPath picks the format matching path's extension, or fallback
// when the extension names neither PNG nor JPEG.
func FormatForPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	}
	return fallback
}

// DataURL encodes img as a self-contained data URL. An image with no pixels
// yields "data:,".
func DataURL(img image.Image, f Format, quality int) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return emptyDataURL, nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return "", fmt.Errorf("encode %s: %w", f, err)
	}
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(f.MimeType()) + base64.StdEncoding.EncodedLen(buf.Len()))
	sb.WriteString("data:")
	sb.WriteString(f.MimeType())
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(buf.Bytes()))
	return sb.String(), nil
}

// ParseDataURL decodes a data URL produced by DataURL. The empty data URL
// decodes to a nil image.
func ParseDataURL(s string) (image.Image, Format, error) {
	if s == emptyDataURL {
		return nil, PNG, nil
	}
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	var f Format
	switch mime {
	case "image/png":
		f = PNG
	case "image/jpeg":
		f = JPEG
	default:
		return nil, "", fmt.Errorf("%w: media type %q", ErrNotDataURL, mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("data URL payload: %w", err)
	}
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return img, f, nil
}
