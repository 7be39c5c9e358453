package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/larriantoniy/ocrspace/internal/adapters/ocrspace"
)

// resolveTarget turns a command-line input into a targeted request: http(s)
// inputs become URL payloads, anything else is a local file. With reencode,
// local rasters are decoded and sent as base64 PNG.
func resolveTarget(b *ocrspace.Builder, input string, reencode bool) (*ocrspace.TargetedRequest, error) {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return b.TargetRawURL(input)
	}
	if !reencode {
		return b.TargetFile(input)
	}
	img, err := decodeImage(input)
	if err != nil {
		return nil, err
	}
	return b.TargetImage(img)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ocrspace.ErrValidation, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ocrspace.ErrValidation, path, err)
	}
	return img, nil
}
