// Package models loads triangle meshes from OBJ and glTF files and converts
// them into faces for the rasterizer.
package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// DefaultDiffuse is the colour of faces without a material.
var DefaultDiffuse = [3]float64{0.8, 0.8, 0.8}

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a named diffuse colour with channels in [0, 1].
type Material struct {
	Name    string
	Diffuse [3]float64
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Div(2)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateNormals assigns each face's normal to its vertices. Shared
// vertices end up with the normal of the last face that uses them.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, vi := range f.V {
			m.Vertices[vi].Normal = n
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		n := m.faceNormal(f) // length proportional to area
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// hasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) hasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// Transform applies a transformation matrix to all vertices. Normals are
// transformed as directions and renormalized, which is exact for rotations
// and uniform scales.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Fit moves the mesh so its bounding box is centred on center and scales it
// uniformly so the largest dimension equals size.
func (m *Mesh) Fit(center math3d.Vec3, size float64) {
	m.CalculateBounds()
	ext := m.Size()
	largest := max(ext.X, ext.Y, ext.Z)
	if largest == 0 {
		return
	}

	s := size / largest
	m.Transform(math3d.Translate(center).
		Mul(math3d.Scale(math3d.V3(s, s, s))).
		Mul(math3d.Translate(m.Center().Negate())))
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// RenderFaces converts the mesh into rasterizer faces. Each face takes the
// diffuse colour of its material, or DefaultDiffuse without one.
func (m *Mesh) RenderFaces() []render.Face {
	faces := make([]render.Face, len(m.Faces))
	for i, f := range m.Faces {
		diffuse := DefaultDiffuse
		if mat := m.GetMaterial(f.Material); mat != nil {
			diffuse = mat.Diffuse
		}

		rf := &faces[i]
		rf.Color = render.RGB(channel(diffuse[0]), channel(diffuse[1]), channel(diffuse[2]))
		for k, vi := range f.V {
			v := m.Vertices[vi]
			rf.Verts[k] = math3d.Point(v.Position)
			rf.Normals[k] = math3d.Direction(v.Normal)
		}
	}
	return faces
}

// channel converts a [0, 1] colour component to 8 bits, truncating.
func channel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}
