// Package imageio writes rendered frames as PNG, WebP, TGA or binary PPM and
// composes labelled contact sheets.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	WebP
	TGA
	PPM
)

var formatExts = [...]string{
	PNG:  ".png",
	WebP: ".webp",
	TGA:  ".tga",
	PPM:  ".ppm",
}

// ErrUnknownFormat is returned for unrecognised file extensions.
var ErrUnknownFormat = errors.New("unknown image format")

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f < 0 || int(f) >= len(formatExts) {
		return ""
	}
	return formatExts[f]
}

func (f Format) String() string {
	if ext := f.Ext(); ext != "" {
		return ext[1:]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension, ignoring case.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpeg" || ext == ".jpg" {
		return 0, fmt.Errorf("%w: %q (lossy formats are not written)", ErrUnknownFormat, ext)
	}
	for f, e := range formatExts {
		if e == ext {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case PPM:
		err = EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("encode %v: %w", f, err)
	}
	return nil
}

// WriteFile encodes img in the format named by the path's extension,
// creating parent directories as needed.
func WriteFile(path string, img image.Image) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("imageio: create %s: %w", dir, err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	return Encode(out, img, f)
}
