package models

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/udhos/gwob"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrMalformed is returned for OBJ files that yield no usable triangles.
var ErrMalformed = errors.New("malformed model")

// OBJLoader loads Wavefront OBJ files and the MTL libraries they reference.
type OBJLoader struct {
	// SmoothNormals selects averaged normals when the file has none;
	// otherwise each face's normal is used.
	SmoothNormals bool
}

// NewOBJLoader creates an OBJ loader that computes smooth normals.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{SmoothNormals: true}
}

// LoadOBJ loads a Wavefront OBJ file. Material libraries are resolved
// relative to the file's directory.
func LoadOBJ(name string) (*Mesh, error) {
	return NewOBJLoader().Load(name)
}

// Load loads an OBJ file from disk.
func (l *OBJLoader) Load(name string) (*Mesh, error) {
	return l.LoadFS(os.DirFS(filepath.Dir(name)), filepath.Base(name))
}

// LoadFS loads the OBJ file name from fsys. Statements the parser cannot
// read are logged and skipped; a file with no triangles left is an error.
func (l *OBJLoader) LoadFS(fsys fs.FS, name string) (*Mesh, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	obj, err := gwob.NewObjFromReader(name, bufio.NewReader(f), parserOptions(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrMalformed, err)
	}

	b := objBuilder{
		obj:       obj,
		mesh:      NewMesh(path.Base(name)),
		vertices:  make(map[objKey]int),
		materials: make(map[string]int),
	}
	if obj.Mtllib != "" {
		b.lib = loadLibrary(fsys, path.Join(path.Dir(name), filepath.ToSlash(obj.Mtllib)))
	}
	if err := b.build(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	mesh := b.mesh
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w: no triangles", name, ErrMalformed)
	}
	if !mesh.hasNormals() {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}
	mesh.CalculateBounds()

	render.Logger().Debug("loaded obj", "name", name, "vertices", mesh.VertexCount(), "faces", mesh.TriangleCount())
	return mesh, nil
}

func parserOptions(name string) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			render.Logger().Warn("obj parser", "file", name, "msg", msg)
		},
	}
}

// loadLibrary reads an MTL file. A missing or broken library only costs
// its colours, so failures are logged rather than returned.
func loadLibrary(fsys fs.FS, name string) map[string]*gwob.Material {
	f, err := fsys.Open(name)
	if err != nil {
		render.Logger().Warn("material library unavailable", "library", name, "error", err)
		return nil
	}
	defer f.Close()

	lib, err := gwob.ReadMaterialLibFromReader(bufio.NewReader(f), parserOptions(name))
	if err != nil {
		render.Logger().Warn("material library skipped", "library", name, "error", err)
		return nil
	}
	return lib.Lib
}

// objKey identifies a mesh vertex by its position and normal.
type objKey struct {
	pos, normal math3d.Vec3
}

// objBuilder converts the parser's interleaved vertex stream into a Mesh,
// merging corners that share a position and normal.
type objBuilder struct {
	obj  *gwob.Obj
	mesh *Mesh
	lib  map[string]*gwob.Material

	vertices  map[objKey]int
	materials map[string]int
}

func (b *objBuilder) build() error {
	stride := b.obj.StrideSize / 4
	if stride <= 0 {
		return nil
	}
	count := len(b.obj.Coord) / stride

	for _, g := range b.obj.Groups {
		end := g.IndexBegin + g.IndexCount
		if g.IndexBegin < 0 || end > len(b.obj.Indices) {
			return fmt.Errorf("%w: group %q indices out of range", ErrMalformed, g.Name)
		}
		if g.IndexCount < 3 {
			continue
		}
		mat := b.material(g.Usemtl)
		for i := g.IndexBegin; i+2 < end; i += 3 {
			var face Face
			for k := range 3 {
				idx := b.obj.Indices[i+k]
				if idx < 0 || idx >= count {
					return fmt.Errorf("%w: vertex %d out of range for %d vertices", ErrMalformed, idx, count)
				}
				face.V[k] = b.vertex(idx * stride)
			}
			face.Material = mat
			b.mesh.Faces = append(b.mesh.Faces, face)
		}
	}
	return nil
}

func (b *objBuilder) vertex(base int) int {
	key := objKey{pos: b.coord(base + b.obj.StrideOffsetPosition/4)}
	if b.obj.NormCoordFound {
		key.normal = b.coord(base + b.obj.StrideOffsetNormal/4).Normalize()
	}

	if i, ok := b.vertices[key]; ok {
		return i
	}
	i := len(b.mesh.Vertices)
	b.mesh.Vertices = append(b.mesh.Vertices, MeshVertex{Position: key.pos, Normal: key.normal})
	b.vertices[key] = i
	return i
}

func (b *objBuilder) coord(off int) math3d.Vec3 {
	c := b.obj.Coord
	return math3d.V3(float64(c[off]), float64(c[off+1]), float64(c[off+2]))
}

// material returns the mesh index of the named material, or -1 for faces
// outside any usemtl. Names the library does not define get the default
// colour.
func (b *objBuilder) material(name string) int {
	if name == "" {
		return -1
	}
	if i, ok := b.materials[name]; ok {
		return i
	}

	m := Material{Name: name, Diffuse: DefaultDiffuse}
	if lm, ok := b.lib[name]; ok {
		m.Diffuse = [3]float64{float64(lm.Kd[0]), float64(lm.Kd[1]), float64(lm.Kd[2])}
	} else {
		render.Logger().Warn("undefined material", "material", name)
	}

	i := len(b.mesh.Materials)
	b.mesh.Materials = append(b.mesh.Materials, m)
	b.materials[name] = i
	return i
}
