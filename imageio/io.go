// Package imageio loads targets and writes results for evolve.
//
// Decoding supports PNG, JPEG and GIF from the standard library and BMP,
// TIFF and WebP from golang.org/x/image. Encoding supports PNG, JPEG, BMP
// and TIFF.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/gogpu/evolve"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("imageio: empty image")
)

// Format is an output encoding.
type Format int

const (
	// PNG is lossless and keeps alpha.
	PNG Format = iota
	// JPEG drops alpha.
	JPEG
	// BMP is uncompressed.
	BMP
	// TIFF keeps alpha.
	TIFF
)

// String returns the file extension of the format, without the dot.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes an image file, auto-detecting the format from
// its content.
func Load(path string) (*evolve.Canvas, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*evolve.Canvas, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, format)
	}
	return evolve.FromImage(img), nil
}

// Encode writes c to w in the given format.
func Encode(w io.Writer, c *evolve.Canvas, format Format) error {
	img := c.ToImage()
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %v: %w", format, err)
	}
	return nil
}

// Save writes c to path, choosing the format from the extension.
func Save(path string, c *evolve.Canvas) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, c, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// SavePNG writes c to path as PNG regardless of the extension.
func SavePNG(path string, c *evolve.Canvas) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, c, PNG); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
