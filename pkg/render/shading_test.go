package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestShadingNames(t *testing.T) {
	for s := ShadeNone; s <= ShadeTexture; s++ {
		got, err := ParseShading(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShading(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}

	var s Shading
	if err := s.UnmarshalText([]byte(" Gouraud-Z ")); err != nil || s != ShadeNormalGouraudPerspective {
		t.Errorf("UnmarshalText(Gouraud-Z) = %v, %v", s, err)
	}
	if _, err := ParseShading("phong"); !errors.Is(err, ErrUnsupportedShading) {
		t.Errorf("ParseShading(phong) err = %v, want ErrUnsupportedShading", err)
	}
	if got := Shading(99).String(); got != "Shading(99)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := Shading(-1).MarshalText(); err == nil {
		t.Error("MarshalText(-1) should fail")
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if len(modes) != 8 {
		t.Fatalf("Modes() returned %d modes, want 8", len(modes))
	}
	for _, m := range modes {
		if !m.Supported() {
			t.Errorf("%v listed but not supported", m)
		}
		if _, err := m.shader(); err != nil {
			t.Errorf("%v.shader() error = %v", m, err)
		}
	}
	if ShadeTexture.Supported() {
		t.Error("texture shading should not be supported")
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{math.NaN(), 0},
		{math.Inf(-1), 0},
		{-5, 0},
		{0, 0},
		{127.9, 127},
		{254.99, 254},
		{255, 255},
		{300, 255},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		if got := clampByte(tt.in); got != tt.want {
			t.Errorf("clampByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// shadedTriangle returns a triangle whose vertex 0 is the left end of the
// span on row y=20.5, with distinct normals and depths per vertex.
func shadedTriangle() *triangle {
	tri := &triangle{
		pixel: [3]math3d.Vec2{{X: 10, Y: 20.5}, {X: 40, Y: 5.5}, {X: 50, Y: 40.5}},
		ndc: [3]math3d.Vec4{
			{X: 0, Y: 0, Z: 0.5, W: 1},
			{X: 0, Y: 0, Z: 0.7, W: 1},
			{X: 0, Y: 0, Z: 0.9, W: 1},
		},
		normals: [3]math3d.Vec4{
			math3d.V4(0.6, -0.2, 0.77, 0).Normalize(),
			math3d.V4(0, 1, 0, 0),
			math3d.V4(-1, 0, 0, 0),
		},
	}
	tri.shadeNormals(math3d.Identity())
	return tri
}

func fragmentAt(tri *triangle, x, y float64) *fragment {
	span, edges, ok := tri.intercepts(y)
	if !ok {
		panic("no span")
	}
	l := barycentric(&tri.pixel, x, y)
	return &fragment{
		tri:   tri,
		x:     x,
		y:     y,
		l:     l,
		depth: 1 / (l[0]/tri.ndc[0].Z + l[1]/tri.ndc[1].Z + l[2]/tri.ndc[2].Z),
		span:  span,
		edges: edges,
	}
}

func closeColor(a, b Color) bool {
	d := func(x, y uint8) int { return absInt(int(x) - int(y)) }
	return d(a.R, b.R) <= 1 && d(a.G, b.G) <= 1 && d(a.B, b.B) <= 1
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestGouraudMatchesBarycentricAtVertex(t *testing.T) {
	tests := []struct {
		name          string
		gouraud, bary Shading
	}{
		{"affine", ShadeNormalGouraud, ShadeNormalBarycentric},
		{"perspective", ShadeNormalGouraudPerspective, ShadeNormalBarycentricPerspective},
	}

	tri := shadedTriangle()
	f := fragmentAt(tri, 10, 20.5)
	want := rgb(tri.normalColors[0])

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := tt.gouraud.shader()
			b, _ := tt.bary.shader()
			gc, bc := g(f), b(f)
			if !closeColor(gc, bc) {
				t.Errorf("%v = %v, %v = %v at vertex 0", tt.gouraud, gc, tt.bary, bc)
			}
			if !closeColor(bc, want) {
				t.Errorf("%v = %v, want vertex colour %v", tt.bary, bc, want)
			}
		})
	}
}

func TestPerspectiveShadingAtCentroid(t *testing.T) {
	tri := shadedTriangle()
	f := fragmentAt(tri, 100.0/3, 22.5)
	f.l = [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	f.depth = 1 / ((1/0.5 + 1/0.7 + 1/0.9) / 3)

	shade, _ := ShadeNormalBarycentricPerspective.shader()
	got := shade(f)

	// Nearer vertices pull harder: weights are (1/z) / sum(1/z)
	inv := [3]float64{1 / 0.5, 1 / 0.7, 1 / 0.9}
	sum := inv[0] + inv[1] + inv[2]
	var want [3]float64
	for k := range 3 {
		for ch := range 3 {
			want[ch] += tri.normalColors[k][ch] * inv[k] / sum
		}
	}
	if !closeColor(got, rgb(want)) {
		t.Errorf("perspective blend = %v, want %v", got, rgb(want))
	}
}

func TestNormalColor(t *testing.T) {
	tests := []struct {
		n    math3d.Vec4
		want Color
	}{
		{math3d.V4(0, 0, -1, 0), RGB(127, 127, 0)},
		{math3d.V4(1, 1, 1, 0), RGB(255, 255, 255)},
		{math3d.V4(-1, 0, 1, 0), RGB(0, 127, 255)},
	}

	for _, tt := range tests {
		if got := rgb(normalColor(tt.n.X, tt.n.Y, tt.n.Z)); got != tt.want {
			t.Errorf("normal %v maps to %v, want %v", tt.n, got, tt.want)
		}
	}
}
