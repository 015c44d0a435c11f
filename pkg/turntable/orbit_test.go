package turntable

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const epsilon = 1e-9

func TestOrbitEvenAngles(t *testing.T) {
	got := DefaultOrbit(4).Angles()
	want := []float64{0, 90, 180, 270}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("angle %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got := (Orbit{}).Angles(); got != nil {
		t.Errorf("zero frames = %v, want nil", got)
	}
}

func TestOrbitSpringEases(t *testing.T) {
	o := Orbit{Frames: 48, FPS: 12, Degrees: 90, Frequency: 2, Damping: 1}
	angles := o.Angles()

	if angles[0] != 0 {
		t.Errorf("first angle = %v, want 0", angles[0])
	}
	for i := 1; i < len(angles); i++ {
		if angles[i] < angles[i-1] {
			t.Fatalf("angle %d = %v went backwards from %v", i, angles[i], angles[i-1])
		}
		if angles[i] > 90+epsilon {
			t.Fatalf("angle %d = %v overshot 90", i, angles[i])
		}
	}
	if last := angles[len(angles)-1]; last < 80 {
		t.Errorf("last angle = %v, want close to 90", last)
	}

	// Easing starts slower than the even spacing would.
	if angles[1] >= 90.0/48 {
		t.Errorf("second angle = %v, want below linear step", angles[1])
	}
}

func TestCameras(t *testing.T) {
	base := render.DefaultCamera()
	base.Eye = math3d.V3(0, 0, -2)
	base.Center = math3d.V3(0, 0, 1)
	base.Update()

	cams := Cameras(base, []float64{0, 90, 180})
	if len(cams) != 3 {
		t.Fatalf("len = %d, want 3", len(cams))
	}

	tests := []struct {
		name string
		eye  math3d.Vec3
	}{
		{"start", math3d.V3(0, 0, -2)},
		{"quarter", math3d.V3(-3, 0, 1)},
		{"half", math3d.V3(0, 0, 4)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cams[i]
			if c.Eye.Sub(tt.eye).Len() > 1e-9 {
				t.Errorf("eye = %+v, want %+v", c.Eye, tt.eye)
			}
			if c.Center != base.Center {
				t.Errorf("center moved to %+v", c.Center)
			}
			want := base.Center.Sub(tt.eye).Normalize()
			if c.Forward.Sub(want).Len() > 1e-9 {
				t.Errorf("forward = %+v, want %+v", c.Forward, want)
			}
		})
	}
}

func TestSpinDecays(t *testing.T) {
	s := NewSpin(30)
	s.Impulse(5)
	if s.Resting() {
		t.Fatal("spin resting right after impulse")
	}

	for range 300 {
		s.Update()
	}
	if !s.Resting() {
		t.Errorf("velocity = %v after 10s, want rest", s.Velocity)
	}
	if s.Angle <= 5 {
		t.Errorf("angle = %v, want more than one frame of travel", s.Angle)
	}
}
