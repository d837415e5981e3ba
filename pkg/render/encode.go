package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/softrender/pkg/status"
	"golang.org/x/image/tiff"
)

// ImageFormat selects a lossless encoding for Surface output.
type ImageFormat int

const (
	PNG ImageFormat = iota
	TIFF
)

func (f ImageFormat) String() string {
	if f == TIFF {
		return "tiff"
	}
	return "png"
}

// ImageFormatFromPath picks the format from a file extension.
func ImageFormatFromPath(path string) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return PNG, fmt.Errorf("unsupported image extension %q: %w", filepath.Ext(path), status.InvalidValue)
}

// Encode writes s as an 8-bit-per-channel RGBA image.
func (s *Surface) Encode(w io.Writer, format ImageFormat) error {
	img := s.ToImage()
	switch format {
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return png.Encode(w, img)
	}
}

// Save encodes s to path, choosing the format from the extension. A file
// that cannot be created yields status.FileOpenFailed. Write errors during
// encoding and a failed close both yield status.FileCloseFailed.
func (s *Surface) Save(path string) error {
	format, err := ImageFormatFromPath(path)
	if err != nil {
		return err
	}
	return s.saveAs(path, format)
}

// SavePNG saves the surface as a PNG file regardless of extension.
func (s *Surface) SavePNG(path string) error {
	return s.saveAs(path, PNG)
}

func (s *Surface) saveAs(path string, format ImageFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %v: %w", path, err, status.FileOpenFailed)
	}
	if err := s.Encode(f, format); err != nil {
		f.Close()
		return fmt.Errorf("write %s %s: %v: %w", format, path, err, status.FileCloseFailed)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %v: %w", path, err, status.FileCloseFailed)
	}
	return nil
}

// DecodeSurface reads a PNG or TIFF image into a Surface.
func DecodeSurface(r io.Reader) (*Surface, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %v: %w", err, status.InvalidValue)
	}
	return SurfaceFromImage(img), nil
}

// LoadSurface opens and decodes the image at path.
func LoadSurface(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, status.FileOpenFailed)
	}
	defer f.Close()
	return DecodeSurface(f)
}
