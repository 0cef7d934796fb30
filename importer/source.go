package importer

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/urdfimport/utils"
)

// ErrMeshNotFound is returned by sources that have no asset for a path.
var ErrMeshNotFound = errors.New("mesh not found")

// MeshSource supplies the raw bytes of a mesh asset given its package-relative path.
// Implementations must be safe for concurrent use.
type MeshSource interface {
	Open(ctx context.Context, relativePath string) ([]byte, error)
}

// MeshSourceFunc adapts a function to a MeshSource.
type MeshSourceFunc func(ctx context.Context, relativePath string) ([]byte, error)

// Open calls f.
func (f MeshSourceFunc) Open(ctx context.Context, relativePath string) ([]byte, error) {
	return f(ctx, relativePath)
}

// DirSource reads assets from a directory, usually the one holding the URDF document.
// Paths that would escape Root are rejected.
type DirSource struct {
	Root string
}

// Open reads Root/relativePath.
func (s DirSource) Open(ctx context.Context, relativePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := utils.SafeJoinDir(s.Root, relativePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(ErrMeshNotFound, path)
	}
	return data, err
}

// MapSource serves assets from memory, keyed by relative path.
type MapSource map[string][]byte

// Open returns the stored bytes for relativePath.
func (s MapSource) Open(_ context.Context, relativePath string) ([]byte, error) {
	data, ok := s[relativePath]
	if !ok {
		return nil, errors.Wrap(ErrMeshNotFound, relativePath)
	}
	return data, nil
}
