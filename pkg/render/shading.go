package render

import (
	"fmt"
	"math"
	"strings"
)

// Shading selects how covered pixels are coloured.
type Shading int

const (
	ShadeNone                         Shading = iota // face diffuse colour
	ShadeWhite                                       // constant white
	ShadeRandom                                      // one random colour per face
	ShadeNormalFlat                                  // first vertex normal, view space
	ShadeNormalGouraud                               // normals interpolated along the span edges
	ShadeNormalBarycentric                           // normals blended by barycentric weight
	ShadeNormalGouraudPerspective                    // Gouraud with perspective correction
	ShadeNormalBarycentricPerspective                // barycentric with perspective correction
	ShadeTexture                                     // reserved; always ErrUnsupportedShading
)

var shadingNames = [...]string{
	ShadeNone:                         "none",
	ShadeWhite:                        "white",
	ShadeRandom:                       "random",
	ShadeNormalFlat:                   "flat",
	ShadeNormalGouraud:                "gouraud",
	ShadeNormalBarycentric:            "barycentric",
	ShadeNormalGouraudPerspective:     "gouraud-z",
	ShadeNormalBarycentricPerspective: "barycentric-z",
	ShadeTexture:                      "texture",
}

func (s Shading) String() string {
	if s < 0 || int(s) >= len(shadingNames) {
		return fmt.Sprintf("Shading(%d)", int(s))
	}
	return shadingNames[s]
}

// ParseShading returns the mode with the given name, ignoring case.
func ParseShading(name string) (Shading, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shadingNames {
		if n == name {
			return Shading(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown name %q (want one of %s)", ErrUnsupportedShading, name, strings.Join(shadingNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s Shading) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(shadingNames) {
		return nil, fmt.Errorf("invalid shading mode %d", int(s))
	}
	return []byte(shadingNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shading) UnmarshalText(text []byte) error {
	v, err := ParseShading(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Supported reports whether the rasterizer can produce this mode.
func (s Shading) Supported() bool {
	return s >= ShadeNone && s < ShadeTexture
}

// Modes returns every supported mode in declaration order.
func Modes() []Shading {
	modes := make([]Shading, 0, ShadeTexture)
	for s := ShadeNone; s < ShadeTexture; s++ {
		modes = append(modes, s)
	}
	return modes
}

// usesNormals reports whether setup must derive per-vertex normal colours.
func (s Shading) usesNormals() bool {
	return s >= ShadeNormalFlat && s <= ShadeNormalBarycentricPerspective
}

// fragment is one candidate pixel on a scanline.
type fragment struct {
	tri   *triangle
	x, y  float64    // pixel column and row centre
	l     [3]float64 // barycentric weights
	depth float64
	span  [2]float64 // left and right intercepts of the row
	edges [2][2]int  // vertex pairs of the intercepted edges
}

// shader colours a fragment that passed the depth test.
type shader func(f *fragment) Color

// shader resolves the mode to its colour function once per render.
func (s Shading) shader() (shader, error) {
	switch s {
	case ShadeNone, ShadeRandom:
		return func(f *fragment) Color { return f.tri.color }, nil
	case ShadeWhite:
		return func(*fragment) Color { return ColorWhite }, nil
	case ShadeNormalFlat:
		return func(f *fragment) Color { return f.tri.flat }, nil
	case ShadeNormalGouraud:
		return func(f *fragment) Color {
			return rgb(f.gouraud(&f.tri.quantized))
		}, nil
	case ShadeNormalBarycentric:
		return func(f *fragment) Color {
			return rgb(f.barycentric(&f.tri.normalColors))
		}, nil
	case ShadeNormalGouraudPerspective:
		return func(f *fragment) Color {
			return rgb(scale3(f.gouraud(&f.tri.quantizedOverZ), f.depth))
		}, nil
	case ShadeNormalBarycentricPerspective:
		return func(f *fragment) Color {
			return rgb(scale3(f.barycentric(&f.tri.normalColorsOverZ), f.depth))
		}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedShading, s)
}

// gouraud interpolates vertex colours along both intercepted edges, then
// across the span.
func (f *fragment) gouraud(c *[3][3]float64) [3]float64 {
	p := &f.tri.pixel
	e0, e1 := f.edges[0], f.edges[1]

	d0 := p[e0[1]].Distance(p[e0[0]])
	d1 := p[e1[1]].Distance(p[e1[0]])
	t0 := p[e0[0]].Distance(v2(f.span[0], f.y)) / d0
	t1 := p[e1[0]].Distance(v2(f.span[1], f.y)) / d1
	t := (f.x - f.span[0]) / (f.span[1] - f.span[0])

	var out [3]float64
	for ch := range 3 {
		left := lerp(c[e0[0]][ch], c[e0[1]][ch], t0)
		right := lerp(c[e1[0]][ch], c[e1[1]][ch], t1)
		out[ch] = lerp(left, right, t)
	}
	return out
}

func (f *fragment) barycentric(c *[3][3]float64) [3]float64 {
	var out [3]float64
	for ch := range 3 {
		out[ch] = c[0][ch]*f.l[0] + c[1][ch]*f.l[1] + c[2][ch]*f.l[2]
	}
	return out
}

// normalColor maps each component of a view-space normal from [-1, 1] to
// [0, 255].
func normalColor(x, y, z float64) [3]float64 {
	return [3]float64{(x + 1) * 127.5, (y + 1) * 127.5, (z + 1) * 127.5}
}

// clampByte converts a channel value to 8 bits. Values are truncated toward
// zero after clamping to [0, 255]; NaN becomes 0.
func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func rgb(c [3]float64) Color {
	return RGB(clampByte(c[0]), clampByte(c[1]), clampByte(c[2]))
}

func scale3(c [3]float64, s float64) [3]float64 {
	return [3]float64{c[0] * s, c[1] * s, c[2] * s}
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
