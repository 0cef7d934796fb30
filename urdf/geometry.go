package urdf

import (
	"path"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"

	"go.viam.com/urdfimport/spatialmath"
)

// GeometryType discriminates the Geometry variants.
type GeometryType int

// The closed set of geometry variants.
const (
	BoxType GeometryType = iota
	CylinderType
	SphereType
	MeshType
)

func (gt GeometryType) String() string {
	switch gt {
	case BoxType:
		return "box"
	case CylinderType:
		return "cylinder"
	case SphereType:
		return "sphere"
	case MeshType:
		return "mesh"
	default:
		return "unknown"
	}
}

// Geometry is one of Box, Cylinder, Sphere or Mesh.
type Geometry interface {
	Type() GeometryType
	isGeometry()
}

// Box is a cuboid. Size is in document axis order; see TargetSize.
type Box struct {
	Size r3.Vector
}

// Cylinder is a cylinder along the document's Z axis.
type Cylinder struct {
	Radius float64
	Length float64
}

// Sphere is a sphere centered at the origin.
type Sphere struct {
	Radius float64
}

// Mesh refers to an external mesh asset. Scale is in document axis order; see TargetScale.
type Mesh struct {
	Filename string
	Scale    r3.Vector
}

// Type implements Geometry.
func (Box) Type() GeometryType { return BoxType }

// Type implements Geometry.
func (Cylinder) Type() GeometryType { return CylinderType }

// Type implements Geometry.
func (Sphere) Type() GeometryType { return SphereType }

// Type implements Geometry.
func (Mesh) Type() GeometryType { return MeshType }

func (Box) isGeometry()      {}
func (Cylinder) isGeometry() {}
func (Sphere) isGeometry()   {}
func (Mesh) isGeometry()     {}

// TargetSize returns the box extents in the target convention.
func (b Box) TargetSize() r3.Vector {
	return spatialmath.ConvertPosition(b.Size)
}

// TargetScale returns the mesh scale in the target convention.
func (m Mesh) TargetScale() r3.Vector {
	return spatialmath.ConvertPosition(m.Scale)
}

const packagePrefix = "package://"

// RelativePath strips a leading "package://<name>/" from the filename, leaving the path a host
// resolver should look up. Other filenames are returned unchanged.
func (m Mesh) RelativePath() string {
	if !strings.HasPrefix(m.Filename, packagePrefix) {
		return m.Filename
	}
	rest := strings.TrimPrefix(m.Filename, packagePrefix)
	if idx := strings.Index(rest, "/"); idx != -1 {
		return rest[idx+1:]
	}
	return rest
}

// Extension returns the lower-cased file extension of the mesh, including the dot.
func (m Mesh) Extension() string {
	return strings.ToLower(path.Ext(m.Filename))
}

// RGBA is a color with channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Colorful returns the RGB part of the color.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

// Hex returns the RGB part of the color as "#rrggbb".
func (c RGBA) Hex() string {
	return c.Colorful().Hex()
}
