package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/taigrr/scanline/pkg/math3d"
)

// cameraFields is the number of values in a camera file: six frustum
// scalars followed by eye, center and up.
const cameraFields = 15

// ReadCamera parses a camera description: left, right, bottom, top, near,
// far, then the eye, center and up vectors as three numbers each. Values are
// separated by any whitespace.
func ReadCamera(r io.Reader) (Camera, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var v [cameraFields]float64
	n := 0
	for sc.Scan() {
		if n == cameraFields {
			return Camera{}, fmt.Errorf("read camera: more than %d values", cameraFields)
		}
		f, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return Camera{}, fmt.Errorf("read camera: value %d: %w", n+1, err)
		}
		v[n] = f
		n++
	}
	if err := sc.Err(); err != nil {
		return Camera{}, fmt.Errorf("read camera: %w", err)
	}
	if n < cameraFields {
		return Camera{}, fmt.Errorf("read camera: got %d values, want %d", n, cameraFields)
	}

	return NewCamera(v[0], v[1], v[2], v[3], v[4], v[5],
		math3d.V3(v[6], v[7], v[8]),
		math3d.V3(v[9], v[10], v[11]),
		math3d.V3(v[12], v[13], v[14]),
	), nil
}

// LoadCamera reads a camera file from disk.
func LoadCamera(path string) (Camera, error) {
	f, err := os.Open(path)
	if err != nil {
		return Camera{}, fmt.Errorf("open camera: %w", err)
	}
	defer f.Close()

	c, err := ReadCamera(f)
	if err != nil {
		return Camera{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteTo writes the camera in the format ReadCamera accepts, one value per
// line. It implements io.WriterTo.
func (c Camera) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, f := range []float64{
		c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far,
		c.Eye.X, c.Eye.Y, c.Eye.Z,
		c.Center.X, c.Center.Y, c.Center.Z,
		c.Up.X, c.Up.Y, c.Up.Z,
	} {
		n, err := bw.WriteString(strconv.FormatFloat(f, 'g', -1, 64) + "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// SaveCamera writes the camera to path.
func SaveCamera(path string, c Camera) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create camera: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err := c.WriteTo(f); err != nil {
		return fmt.Errorf("write camera: %w", err)
	}
	return nil
}
