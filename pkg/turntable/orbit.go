// Package turntable renders a scene from a camera orbiting its target.
package turntable

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Orbit describes how the camera angle advances over an animation.
type Orbit struct {
	Frames  int
	FPS     int
	Degrees float64

	// Frequency and Damping configure the easing spring. A zero Frequency
	// spaces the angles evenly instead, which loops cleanly for a full turn.
	Frequency float64
	Damping   float64
}

// DefaultOrbit is one full, evenly spaced turn at 12 frames per second.
func DefaultOrbit(frames int) Orbit {
	return Orbit{Frames: frames, FPS: 12, Degrees: 360}
}

// Angles returns one camera angle in degrees per frame, starting at 0.
func (o Orbit) Angles() []float64 {
	if o.Frames <= 0 {
		return nil
	}
	angles := make([]float64, o.Frames)

	if o.Frequency <= 0 {
		step := o.Degrees / float64(o.Frames)
		for i := range angles {
			angles[i] = float64(i) * step
		}
		return angles
	}

	fps := o.FPS
	if fps <= 0 {
		fps = 12
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), o.Frequency, o.Damping)

	var pos, vel float64
	for i := range angles {
		angles[i] = pos
		pos, vel = spring.Update(pos, vel, o.Degrees)
	}
	return angles
}

// Cameras returns a copy of base per angle, with the eye rotated about the
// centre around base's up vector.
func Cameras(base render.Camera, angles []float64) []render.Camera {
	axis := base.Up.Normalize()
	arm := base.Eye.Sub(base.Center)

	cams := make([]render.Camera, len(angles))
	for i, a := range angles {
		rot := math3d.RotateDeg(a, axis.X, axis.Y, axis.Z)
		c := base
		c.Eye = base.Center.Add(rot.MulVec3Dir(arm))
		c.Update()
		cams[i] = c
	}
	return cams
}

// Spin is one rotation axis whose velocity decays to rest on a spring.
// Impulses add velocity; Update advances the angle one frame.
type Spin struct {
	Angle    float64
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewSpin creates a critically damped spin updated fps times per second.
func NewSpin(fps int) Spin {
	return Spin{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Impulse adds v degrees per frame to the current velocity.
func (s *Spin) Impulse(v float64) {
	s.Velocity += v
}

// Update applies the velocity and eases it toward zero.
func (s *Spin) Update() {
	s.Angle += s.Velocity
	s.Velocity, s.accel = s.spring.Update(s.Velocity, s.accel, 0)
}

// Resting reports whether the spin has effectively stopped.
func (s *Spin) Resting() bool {
	return s.Velocity < 1e-3 && s.Velocity > -1e-3
}
