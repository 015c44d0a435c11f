package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned by Load for unrecognised file extensions.
var ErrUnknownFormat = errors.New("unknown model format")

// Load reads a mesh, choosing the loader from the file extension:
// .obj, .gltf or .glb.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return NewGLTFLoader().Load(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
