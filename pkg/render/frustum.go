package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// plane is n·p + d = 0 with n pointing into the frustum.
type plane struct {
	n math3d.Vec3
	d float64
}

func (p plane) distance(v math3d.Vec3) float64 {
	return p.n.Dot(v) + p.d
}

// Frustum is the volume a camera projects into the unit box, as six
// inward-facing planes: left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]plane
}

// Frustum extracts the camera's view volume in world space from
// Projection * View.
func (c Camera) Frustum() Frustum {
	return frustumFromMatrix(c.ViewProjection())
}

// frustumFromMatrix reads the planes off the rows of m. Clip depth runs
// from 0 to W, so the near plane is row 2 alone.
func frustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m.Get(i, 0), m.Get(i, 1), m.Get(i, 2)), m.Get(i, 3)
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	f := Frustum{planes: [6]plane{
		{r3.Add(r0), d3 + d0},
		{r3.Sub(r0), d3 - d0},
		{r3.Add(r1), d3 + d1},
		{r3.Sub(r1), d3 - d1},
		{r2, d2},
		{r3.Sub(r2), d3 - d2},
	}}
	for i, p := range f.planes {
		if l := p.n.Len(); l > 0 {
			f.planes[i] = plane{p.n.Scale(1 / l), p.d / l}
		}
	}
	return f
}

// Contains reports whether the point is inside or on the frustum.
func (f Frustum) Contains(p math3d.Vec3) bool {
	for _, pl := range f.planes {
		if pl.distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox reports whether any part of the axis-aligned box may be
// visible. It is conservative: a box near a frustum corner can pass
// without touching the volume.
func (f Frustum) IntersectsBox(lo, hi math3d.Vec3) bool {
	for _, pl := range f.planes {
		// corner furthest along the plane normal
		var c [3]float64
		for k := range c {
			c[k] = lo.At(k)
			if pl.n.At(k) >= 0 {
				c[k] = hi.At(k)
			}
		}
		v := math3d.V3(c[0], c[1], c[2])
		if pl.distance(v) < 0 {
			return false
		}
	}
	return true
}
