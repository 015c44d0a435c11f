package render

import "errors"

var (
	// ErrUnsupportedShading is returned for shading modes the rasterizer
	// cannot produce, currently ShadeTexture.
	ErrUnsupportedShading = errors.New("render: unsupported shading mode")

	// ErrInvalidSize is returned when the output width or height is not positive.
	ErrInvalidSize = errors.New("render: invalid output size")

	// ErrEmptyScene is returned when there are no faces to draw.
	ErrEmptyScene = errors.New("render: no faces")
)
