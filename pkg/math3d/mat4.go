package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
// Element (col, row) lives at index col*4+row, and a.Mul(b) applies b first.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateDeg creates a rotation of angle degrees about the axis (x, y, z).
// The axis is used as given; callers wanting a pure rotation pass a unit axis.
func RotateDeg(angle, x, y, z float64) Mat4 {
	rad := angle * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c

	return Mat4{
		c + x*x*t, z*s + x*y*t, -y*s + x*z*t, 0,
		-z*s + x*y*t, c + y*y*t, x*s + y*z*t, 0,
		y*s + x*z*t, -x*s + y*z*t, c + z*z*t, 0,
		0, 0, 0, 1,
	}
}

// Projection creates an off-axis perspective projection. Clip W equals view
// Z, and after the divide Z is 0 on the near plane and 1 on the far plane.
//
// The offset terms carry the same sign as the scale terms, so with
// asymmetric bounds the visible window spans x/z in [-right, -left]/near and
// y/z in [-top, -bottom]/near. Symmetric frustums are unaffected.
func Projection(left, right, top, bottom, near, far float64) Mat4 {
	var m Mat4
	m[0] = 2 * near / (right - left)
	m[5] = 2 * near / (top - bottom)
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = far / (far - near)
	m[11] = 1
	m[14] = -far * near / (far - near)
	return m
}

// BasisChange returns the matrix whose first three rows are x, y and z.
func BasisChange(x, y, z Vec3) Mat4 {
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
}

// View creates a view matrix for a camera at eye looking at center.
// The right axis is forward × up and up is only normalized, not
// re-orthogonalized against forward.
func View(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	u := up.Normalize()
	x := forward.Cross(u)
	return BasisChange(x, u, forward).Mul(Translate(eye.Negate()))
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 as a point (w=1) and divides by the resulting W.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		(m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		(m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Col returns column i as a Vec4.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// At returns the element in column col, row row.
func (m Mat4) At(col, row int) float64 {
	return m[col*4+row]
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
