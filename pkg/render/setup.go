package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Face is a triangle with resolved attributes. Verts are homogeneous points
// (W=1) and Normals are directions (W=0).
type Face struct {
	Verts   [3]math3d.Vec4
	Normals [3]math3d.Vec4
	Color   Color
}

// triangle is the per-render state derived from a Face. It is rebuilt on
// every call and never written back to the caller's faces.
type triangle struct {
	ndc        [3]math3d.Vec4 // clip coordinates after the perspective divide
	pixel      [3]math3d.Vec2
	normals    [3]math3d.Vec4
	bbMin      math3d.Vec2
	bbMax      math3d.Vec2
	renderable bool

	color Color // diffuse, or the random colour under ShadeRandom
	flat  Color

	normalColors      [3][3]float64
	normalColorsOverZ [3][3]float64
	quantized         [3][3]float64 // normalColors truncated to 8 bits
	quantizedOverZ    [3][3]float64
}

// setupTriangle projects f to pixel space, orders its vertices by
// ascending pixel x and decides whether it can contribute any pixels.
//
// Under ShadeNormalFlat the normals keep their input order, so flat shading
// always uses the face's first input normal even when that vertex moved.
func setupTriangle(f *Face, mvp, view math3d.Mat4, width, height int, mode Shading, rnd func() float64) triangle {
	t := triangle{
		normals:    f.Normals,
		color:      RGB(f.Color.R, f.Color.G, f.Color.B),
		renderable: true,
	}

	w, h := float64(width), float64(height)
	for k := range 3 {
		clip := mvp.MulVec4(f.Verts[k])
		t.ndc[k] = clip.Div(clip.W)
		t.pixel[k] = math3d.V2((t.ndc[k].X+1)*w/2, (1-t.ndc[k].Y)*h/2)
	}

	z0, z1, z2 := t.ndc[0].Z, t.ndc[1].Z, t.ndc[2].Z
	if (z0 < 0 && z1 < 0 && z2 < 0) || (z0 > 1 && z1 > 1 && z2 > 1) {
		t.renderable = false
	}

	swapNormals := mode != ShadeNormalFlat
	if t.pixel[0].X > t.pixel[1].X {
		t.swap(0, 1, swapNormals)
	}
	if t.pixel[1].X > t.pixel[2].X {
		t.swap(1, 2, swapNormals)
	}
	if t.pixel[0].X > t.pixel[1].X {
		t.swap(0, 1, swapNormals)
	}

	t.bbMin = t.pixel[0].Min(t.pixel[1]).Min(t.pixel[2])
	t.bbMax = t.pixel[0].Max(t.pixel[1]).Max(t.pixel[2])
	if t.bbMin.X > w || t.bbMin.Y > h || t.bbMax.X < 0 || t.bbMax.Y < 0 {
		t.renderable = false
	}

	if mode == ShadeRandom {
		t.color = RGB(uint8(rnd()*255), uint8(rnd()*255), uint8(rnd()*255))
	}
	if mode.usesNormals() {
		t.shadeNormals(view)
	}
	return t
}

func (t *triangle) swap(a, b int, normals bool) {
	t.ndc[a], t.ndc[b] = t.ndc[b], t.ndc[a]
	t.pixel[a], t.pixel[b] = t.pixel[b], t.pixel[a]
	if normals {
		t.normals[a], t.normals[b] = t.normals[b], t.normals[a]
	}
}

// shadeNormals derives the per-vertex colours of the normal shading modes.
func (t *triangle) shadeNormals(view math3d.Mat4) {
	for k := range 3 {
		n := view.MulVec4(t.normals[k])
		c := normalColor(n.X, n.Y, n.Z)
		z := t.ndc[k].Z
		for ch := range 3 {
			q := float64(clampByte(c[ch]))
			t.normalColors[k][ch] = c[ch]
			t.normalColorsOverZ[k][ch] = c[ch] / z
			t.quantized[k][ch] = q
			t.quantizedOverZ[k][ch] = q / z
		}
		if k == 0 {
			t.flat = rgb(c)
		}
	}
}

// barycentric returns the weights of (x, y) relative to the triangle p.
// Points outside the triangle have at least one negative weight.
func barycentric(p *[3]math3d.Vec2, x, y float64) [3]float64 {
	x1, y1 := p[0].X, p[0].Y
	x2, y2 := p[1].X, p[1].Y
	x3, y3 := p[2].X, p[2].Y

	denom := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	l0 := ((y2-y3)*(x-x3) + (x3-x2)*(y-y3)) / denom
	l1 := ((y3-y1)*(x-x3) + (x1-x3)*(y-y3)) / denom
	return [3]float64{l0, l1, 1 - l0 - l1}
}

// scanEdges lists the edges in the order rows are intersected with them.
var scanEdges = [3][2]int{{0, 1}, {1, 2}, {0, 2}}

// intercepts returns the x range covered on row y and the vertex pairs of
// the edges that produced it. ok is false when fewer than two crossings
// were found.
//
// A near-vertical edge (both ends in the same pixel column) contributes a
// single crossing and a near-horizontal edge contributes both of its end
// points. Only the first two crossings are used.
func (t *triangle) intercepts(y float64) (span [2]float64, edges [2][2]int, ok bool) {
	var xs [6]float64
	var es [3][2]int
	nx, ne := 0, 0

	for _, e := range scanEdges {
		a, b := t.pixel[e[0]], t.pixel[e[1]]
		if !within(y, a.Y, b.Y) {
			continue
		}
		switch {
		case int(a.X) == int(b.X):
			x := a.X
			if e[1] == 2 && e[0] == 0 {
				// the long edge takes its right end
				x = b.X
			}
			xs[nx] = x
			nx++
		case int(a.Y) == int(b.Y):
			xs[nx], xs[nx+1] = a.X, b.X
			nx += 2
		default:
			m := (b.Y - a.Y) / (b.X - a.X)
			xs[nx] = (y + m*a.X - a.Y) / m
			nx++
		}
		es[ne] = e
		ne++
	}

	if nx < 2 || ne < 2 {
		return span, edges, false
	}
	span = [2]float64{xs[0], xs[1]}
	edges = [2][2]int{es[0], es[1]}
	if span[0] > span[1] {
		span[0], span[1] = span[1], span[0]
		edges[0], edges[1] = edges[1], edges[0]
	}
	if math.IsNaN(span[0]) || math.IsNaN(span[1]) {
		return span, edges, false
	}
	return span, edges, true
}

// within reports whether v lies between a and b inclusive, in either order.
func within(v, a, b float64) bool {
	return (a <= v && v <= b) || (b <= v && v <= a)
}

func v2(x, y float64) math3d.Vec2 {
	return math3d.Vec2{X: x, Y: y}
}
