package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/pinchcrop/internal/clipboard"
	"github.com/example/pinchcrop/internal/imgcodec"
)

// readClipboardImage is swapped out in tests.
var readClipboardImage = clipboard.ReadImage

func loadSource(file string, fromClipboard bool) (image.Image, error) {
	if fromClipboard {
		img, err := readClipboardImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return imgcodec.Open(file)
}

// parseSize reads "WxH" in whole pixels.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad height", s)
	}
	return w, h, nil
}
