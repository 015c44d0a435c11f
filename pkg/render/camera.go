package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera describes an off-axis perspective frustum and a viewpoint.
//
// Projection and View are derived from the other fields by Update and are
// what the rasterizer consumes. A Camera is a plain value: the rasterizer
// takes a copy, so changing a camera after starting a render has no effect
// on that render.
type Camera struct {
	// Frustum bounds on the near plane
	Left, Right float64
	Bottom, Top float64
	Near, Far   float64

	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	// Derived by Update
	Projection math3d.Mat4
	View       math3d.Mat4
	Forward    math3d.Vec3 // normalized Center - Eye
	XAxis      math3d.Vec3 // Forward × UpAxis
	UpAxis     math3d.Vec3 // normalized Up
}

// NewCamera creates a camera and computes its matrices.
func NewCamera(left, right, bottom, top, near, far float64, eye, center, up math3d.Vec3) Camera {
	c := Camera{
		Left: left, Right: right,
		Bottom: bottom, Top: top,
		Near: near, Far: far,
		Eye: eye, Center: center, Up: up,
	}
	c.Update()
	return c
}

// DefaultCamera looks down +Z from the origin through a symmetric frustum
// spanning [-1, 1] on the near plane at distance 1, with the far plane at 10.
func DefaultCamera() Camera {
	return NewCamera(-1, 1, -1, 1, 1, 10,
		math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0))
}

// Update recomputes the basis and the projection and view matrices.
//
// The up vector is normalized but not re-orthogonalized against the
// forward direction, so a tilted up vector yields a slightly sheared view.
func (c *Camera) Update() {
	c.Projection, c.View = BuildCamera(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far, c.Eye, c.Center, c.Up)
	c.Forward = c.Center.Sub(c.Eye).Normalize()
	c.UpAxis = c.Up.Normalize()
	c.XAxis = c.Forward.Cross(c.UpAxis)
}

// BuildCamera returns the projection and view matrices for the given
// frustum and viewpoint.
func BuildCamera(left, right, bottom, top, near, far float64, eye, center, up math3d.Vec3) (projection, view math3d.Mat4) {
	projection = math3d.Projection(left, right, top, bottom, near, far)
	view = math3d.View(eye, center, up)
	return projection, view
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection() math3d.Mat4 {
	return c.Projection.Mul(c.View)
}
