// Package stl decodes binary and ASCII STL triangle soups into target-convention mesh buffers.
package stl

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/urdfimport/spatialmath"
)

var (
	// ErrTruncatedFile is returned for inputs shorter than a binary STL header and count.
	ErrTruncatedFile = errors.New("stl file shorter than 84 bytes")
	// ErrMalformedMesh is returned when triangle data cannot be decoded.
	ErrMalformedMesh = errors.New("malformed stl mesh")
)

// Format is the STL encoding that was decoded.
type Format int

// The STL encodings.
const (
	FormatBinary Format = iota
	FormatASCII
)

func (f Format) String() string {
	if f == FormatASCII {
		return "ascii"
	}
	return "binary"
}

// Mesh is a decoded triangle soup in the target convention. Every three consecutive indices
// form one triangle and no vertex is shared between triangles. Normals are per vertex and
// parallel to Vertices.
type Mesh struct {
	Vertices []r3.Vector
	Normals  []r3.Vector
	Indices  []int
	Bounds   spatialmath.BoundingBox
	Format   Format
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns triangle i with its vertices in emitted order.
func (m *Mesh) Triangle(i int) *spatialmath.Triangle {
	return spatialmath.NewTriangle(
		m.Vertices[m.Indices[3*i]],
		m.Vertices[m.Indices[3*i+1]],
		m.Vertices[m.Indices[3*i+2]],
	)
}

// SurfaceArea sums the area of every triangle.
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for i := 0; i < m.TriangleCount(); i++ {
		area += m.Triangle(i).Area()
	}
	return area
}

// Scaled returns a copy of the mesh scaled component-wise by s, a target-convention scale.
// Normals are transformed by the inverse transpose of the scale and renormalized. A scale that mirrors
// the mesh (negative determinant) reverses the winding of every triangle again so that faces
// keep pointing outward.
func (m *Mesh) Scaled(s r3.Vector) *Mesh {
	out := &Mesh{
		Vertices: make([]r3.Vector, len(m.Vertices)),
		Normals:  make([]r3.Vector, len(m.Normals)),
		Indices:  make([]int, len(m.Indices)),
		Format:   m.Format,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = r3.Vector{X: v.X * s.X, Y: v.Y * s.Y, Z: v.Z * s.Z}
	}
	det := s.X * s.Y * s.Z
	for i, n := range m.Normals {
		scaled := r3.Vector{X: n.X * s.Y * s.Z, Y: n.Y * s.X * s.Z, Z: n.Z * s.X * s.Y}
		if det < 0 {
			scaled = scaled.Mul(-1)
		}
		if scaled.Norm() > 0 {
			scaled = scaled.Normalize()
		}
		out.Normals[i] = scaled
	}
	copy(out.Indices, m.Indices)
	if det < 0 {
		for t := 0; t+2 < len(out.Indices); t += 3 {
			out.Indices[t], out.Indices[t+2] = out.Indices[t+2], out.Indices[t]
		}
	}
	out.Bounds = spatialmath.NewBoundingBox(out.Vertices)
	return out
}

// builder accumulates triangles given in the source convention.
type builder struct {
	mesh *Mesh
}

func newBuilder(format Format, triangles int) *builder {
	return &builder{mesh: &Mesh{
		Vertices: make([]r3.Vector, 0, 3*triangles),
		Normals:  make([]r3.Vector, 0, 3*triangles),
		Indices:  make([]int, 0, 3*triangles),
		Format:   format,
	}}
}

// addTriangle converts one source triangle and emits its vertices as 2, 1, 0. The handedness
// flip of ConvertPosition inverts orientation; reversing the order restores outward faces.
func (b *builder) addTriangle(normal r3.Vector, verts [3]r3.Vector) {
	n := spatialmath.ConvertPosition(normal)
	for i := 2; i >= 0; i-- {
		b.mesh.Vertices = append(b.mesh.Vertices, spatialmath.ConvertPosition(verts[i]))
		b.mesh.Normals = append(b.mesh.Normals, n)
		b.mesh.Indices = append(b.mesh.Indices, len(b.mesh.Vertices)-1)
	}
}

func (b *builder) finish() *Mesh {
	b.mesh.Bounds = spatialmath.NewBoundingBox(b.mesh.Vertices)
	return b.mesh
}
