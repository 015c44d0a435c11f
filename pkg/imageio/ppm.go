package imageio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/spakin/netpbm"
	"golang.org/x/image/draw"
)

// ErrBadPPM is returned by DecodePPM for input that is not a readable PPM.
var ErrBadPPM = errors.New("imageio: malformed PPM")

// maxPPMPixels bounds the images DecodePPM will allocate.
const maxPPMPixels = 1 << 26

// EncodePPM writes img as a binary (P6) PPM with a maxval of 255. Alpha is
// dropped.
func EncodePPM(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	err := netpbm.Encode(bw, img, &netpbm.EncodeOptions{
		Format:   netpbm.PPM,
		MaxValue: 255,
	})
	if err != nil {
		return fmt.Errorf("encode ppm: %w", err)
	}
	return bw.Flush()
}

// DecodePPM reads a PPM (binary P6 or plain P3). Samples wider than 8 bits
// are scaled down. The header is checked before any pixel memory is
// allocated, so a hostile size fails with ErrBadPPM.
func DecodePPM(r io.Reader) (*image.RGBA, error) {
	var header bytes.Buffer
	cfg, err := netpbm.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrBadPPM, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadPPM, cfg.Width, cfg.Height)
	}
	if cfg.Width > maxPPMPixels/cfg.Height {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrBadPPM, cfg.Width, cfg.Height, maxPPMPixels)
	}

	src, err := netpbm.Decode(io.MultiReader(&header, r), &netpbm.DecodeOptions{
		Target: netpbm.PPM,
		Exact:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPPM, err)
	}

	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img, nil
}
