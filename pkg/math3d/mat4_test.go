package math3d

import (
	"math"
	"testing"
)

func TestMat4Layout(t *testing.T) {
	m := Translate(V3(7, 8, 9))

	if got := m.Col(3); !got.Equal(V4(7, 8, 9, 1)) {
		t.Errorf("Col(3) = %v, want (7, 8, 9, 1)", got)
	}
	if got := m.At(3, 1); got != 8 {
		t.Errorf("At(3, 1) = %v, want 8", got)
	}
	if got := m.Get(1, 3); got != 8 {
		t.Errorf("Get(1, 3) = %v, want 8", got)
	}
	if got := m.Transpose().At(1, 3); got != 8 {
		t.Errorf("Transpose().At(1, 3) = %v, want 8", got)
	}
}

func TestMat4MulAppliesRightFirst(t *testing.T) {
	m := Translate(V3(1, 0, 0)).Mul(Scale(V3(2, 2, 2)))
	got := m.MulVec4(V4(1, 1, 1, 1))
	if !vec4Near(got, V4(3, 2, 2, 1)) {
		t.Errorf("T*S*p = %v, want (3, 2, 2, 1)", got)
	}

	if got := Identity().Mul(m); got != m {
		t.Errorf("I*M = %v, want %v", got, m)
	}
}

func TestRotateDeg(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		axis    Vec3
		in, out Vec4
	}{
		{"z 90 maps x to y", 90, V3(0, 0, 1), V4(1, 0, 0, 0), V4(0, 1, 0, 0)},
		{"y 90 maps z to x", 90, V3(0, 1, 0), V4(0, 0, 1, 0), V4(1, 0, 0, 0)},
		{"x 180 flips y", 180, V3(1, 0, 0), V4(0, 1, 0, 1), V4(0, -1, 0, 1)},
		{"zero angle", 0, V3(0, 1, 0), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RotateDeg(tt.angle, tt.axis.X, tt.axis.Y, tt.axis.Z)
			if got := m.MulVec4(tt.in); !vec4Near(got, tt.out) {
				t.Errorf("RotateDeg(%v) * %v = %v, want %v", tt.angle, tt.in, got, tt.out)
			}
		})
	}
}

func TestProjectionDepthRange(t *testing.T) {
	near, far := 1.0, 10.0
	p := Projection(-1, 1, 1, -1, near, far)

	tests := []struct {
		name string
		z    float64
		want float64
	}{
		{"near plane", near, 0},
		{"far plane", far, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := p.MulVec4(V4(0, 0, tt.z, 1))
			if math.Abs(clip.W-tt.z) > epsilon {
				t.Errorf("clip w = %v, want view z %v", clip.W, tt.z)
			}
			if got := clip.Z / clip.W; math.Abs(got-tt.want) > epsilon {
				t.Errorf("ndc z = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectionKeepsFrustumInsideUnitBox(t *testing.T) {
	p := Projection(-2, 1, 1.5, -0.5, 0.5, 20)

	// x/z in [-2, 4], y/z in [-3, 1]
	for _, pt := range []Vec3{
		V3(0, 0, 1),
		V3(-3.8, 1.8, 2),
		V3(79, -59, 19.8),
		V3(-0.1, 0.05, 0.6),
	} {
		clip := p.MulVec4(Point(pt))
		x, y, z := clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W
		if x < -1 || x > 1 || y < -1 || y > 1 || z < 0 || z > 1 {
			t.Errorf("point %v projects to (%v, %v, %v), outside the unit box", pt, x, y, z)
		}
	}
}

func TestProjectionOffAxisWindow(t *testing.T) {
	p := Projection(-2, 1, 1.5, -0.5, 0.5, 20)

	tests := []struct {
		name string
		pt   Vec3
		axis int
		want float64
	}{
		{"x/z = -right/near", V3(-2, 0, 1), 0, -1},
		{"x/z = -left/near", V3(4, 0, 1), 0, 1},
		{"y/z = -top/near", V3(0, -3, 1), 1, -1},
		{"y/z = -bottom/near", V3(0, 1, 1), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := p.MulVec4(Point(tt.pt))
			if got := clip.At(tt.axis) / clip.W; math.Abs(got-tt.want) > epsilon {
				t.Errorf("ndc[%d] = %v, want %v", tt.axis, got, tt.want)
			}
		})
	}
}

func TestView(t *testing.T) {
	tests := []struct {
		name        string
		eye, center Vec3
		in, want    Vec4
	}{
		{
			name: "looking down +z mirrors x",
			eye:  V3(0, 0, 0), center: V3(0, 0, 1),
			in: V4(1, 2, 3, 1), want: V4(-1, 2, 3, 1),
		},
		{
			name: "eye translated",
			eye:  V3(0, 0, -5), center: V3(0, 0, 0),
			in: V4(0, 0, 0, 1), want: V4(0, 0, 5, 1),
		},
		{
			name: "directions ignore translation",
			eye:  V3(3, 3, 3), center: V3(3, 3, 4),
			in: V4(0, 0, 1, 0), want: V4(0, 0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := View(tt.eye, tt.center, V3(0, 1, 0))
			if got := v.MulVec4(tt.in); !vec4Near(got, tt.want) {
				t.Errorf("View * %v = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
