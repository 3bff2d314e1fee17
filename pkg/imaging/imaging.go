package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// MaxProfileSide bounds both sides of a stored profile image.
const MaxProfileSide = 300

const jpegQuality = 90

// ErrUnsupportedFormat is returned for content none of the registered decoders accept.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DetectFormat reports the format name ("jpeg", "png", "gif") of content
// without decoding the pixel data.
func DetectFormat(content []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return format, nil
}

var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

// Extension maps a format name from DetectFormat to the file extension
// stored media uses. Unknown formats map to "".
func Extension(format string) string {
	return extensions[format]
}

// Fit scales w x h down so neither side exceeds limit, keeping the aspect
// ratio. Sizes already within bounds are returned unchanged.
func Fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		nh := (h*limit + w/2) / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := (w*limit + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// Thumbnail downscales the image at path in place so its longer side is at
// most limit, re-encoding it in its original format. It reports whether the
// file was rewritten.
func Thumbnail(path string, limit int) (bool, error) {
	src, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open image: %w", err)
	}
	img, format, err := image.Decode(src)
	src.Close()
	if err != nil {
		return false, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := Fit(bounds.Dx(), bounds.Dy(), limit)
	if w == bounds.Dx() && h == bounds.Dy() {
		return false, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	// write next to the original then swap, so a failed encode leaves it intact
	tmp, err := os.CreateTemp(filepath.Dir(path), ".thumb-*")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, dst, format); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("replace image: %w", err)
	}
	return true, nil
}

func encode(f *os.File, img image.Image, format string) error {
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(f, img)
	case "gif":
		err = gif.Encode(f, img, nil)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
