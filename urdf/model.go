// Package urdf parses Unified Robot Description Format documents into an immutable robot tree
// expressed in the target coordinate convention.
package urdf

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/urdfimport/spatialmath"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// InertiaEpsilon is the largest off-diagonal inertia magnitude, in source units, that an
// axis-aligned inertia assignment can ignore.
const InertiaEpsilon = 0.001

// Robot is the root of a parsed document. Links and Joints keep document order. A Robot and
// everything under it is read-only once Parse returns it.
type Robot struct {
	Name   string
	Links  []Link
	Joints []Joint
}

// Link is a rigid body. A link with no visual, collision or inertial is a pure frame.
type Link struct {
	Name      string
	Visual    *Visual
	Collision *Collision
	Inertial  *Inertial
}

// Visual is the rendered geometry of a link. Geometry is nil when the document had no
// recognized geometry element.
type Visual struct {
	Origin   Origin
	Geometry Geometry
	Material *Material
}

// Collision is the collision geometry of a link.
type Collision struct {
	Origin   Origin
	Geometry Geometry
}

// Inertial holds the mass properties of a link. Origin is the center of mass frame.
type Inertial struct {
	Origin  Origin
	Mass    float64
	Inertia *Inertia
}

// Inertia is the symmetric inertia tensor, in the document's frame and units.
type Inertia struct {
	IXX, IXY, IXZ float64
	IYY, IYZ      float64
	IZZ           float64
}

// HasOffDiagonal reports whether any product of inertia exceeds InertiaEpsilon.
func (i Inertia) HasOffDiagonal() bool {
	return abs(i.IXY) > InertiaEpsilon || abs(i.IXZ) > InertiaEpsilon || abs(i.IYZ) > InertiaEpsilon
}

// Diagonal returns the principal diagonal in the target convention. The moments are swapped
// the same way as a position, giving (ixx, izz, iyy), so each moment stays with its axis.
// Hosts that copy (ixx, iyy, izz) across unchanged will see the Y and Z moments exchanged
// relative to this value.
func (i Inertia) Diagonal() r3.Vector {
	return spatialmath.ConvertPosition(r3.Vector{X: i.IXX, Y: i.IYY, Z: i.IZZ})
}

// Origin is a position and Euler rotation (radians) in the target convention.
type Origin struct {
	Position r3.Vector `json:"position" yaml:"position" msgpack:"position"`
	Rotation r3.Vector `json:"rotation" yaml:"rotation" msgpack:"rotation"`
}

// IsIdentity reports whether the origin neither translates nor rotates.
func (o Origin) IsIdentity() bool {
	return o.Position == (r3.Vector{}) && o.Rotation == (r3.Vector{})
}

// Quat returns the orientation of the origin.
func (o Origin) Quat() mgl64.Quat {
	return spatialmath.EulerToQuat(o.Rotation)
}

// Material is the appearance of a visual.
type Material struct {
	Name    string
	Color   *RGBA
	Texture string
}

// Joint connects a parent link to a child link. Origin places the child frame relative to the
// parent; Axis is a target-convention direction.
type Joint struct {
	Name     string
	Type     JointType
	Parent   string
	Child    string
	Origin   Origin
	Axis     r3.Vector
	Limit    *Limit
	Dynamics *Dynamics
	Mimic    *Mimic
}

// Limit bounds a joint. Angles are radians, distances meters, effort and velocity SI.
type Limit struct {
	Lower    float64
	Upper    float64
	Effort   float64
	Velocity float64
}

// Dynamics holds joint damping and friction.
type Dynamics struct {
	Damping  float64
	Friction float64
}

// Mimic makes a joint follow another: value = Multiplier*other + Offset.
type Mimic struct {
	Joint      string
	Multiplier float64
	Offset     float64
}

// JointType is the kind of relative motion a joint permits.
type JointType int

// The joint types a document may declare.
const (
	Fixed JointType = iota
	Revolute
	Continuous
	Prismatic
	Floating
	Planar
)

var jointTypeNames = map[JointType]string{
	Fixed:      "fixed",
	Revolute:   "revolute",
	Continuous: "continuous",
	Prismatic:  "prismatic",
	Floating:   "floating",
	Planar:     "planar",
}

func (jt JointType) String() string {
	if name, ok := jointTypeNames[jt]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the joint type by name.
func (jt JointType) MarshalText() ([]byte, error) {
	return []byte(jt.String()), nil
}

// ParseJointType matches s case-insensitively. Anything unrecognized, including the empty
// string, is Fixed.
func ParseJointType(s string) JointType {
	s = strings.ToLower(strings.TrimSpace(s))
	for jt, name := range jointTypeNames {
		if name == s {
			return jt
		}
	}
	return Fixed
}

// Movable reports whether the joint has a single degree of freedom driven along its axis.
func (jt JointType) Movable() bool {
	return jt == Revolute || jt == Continuous || jt == Prismatic
}

// Supported reports whether the joint type can be mapped to a physics joint.
func (jt JointType) Supported() bool {
	return jt != Floating && jt != Planar
}

// Link returns the first link named name.
func (r *Robot) Link(name string) (Link, bool) {
	for _, l := range r.Links {
		if l.Name == name {
			return l, true
		}
	}
	return Link{}, false
}

// Joint returns the first joint named name.
func (r *Robot) Joint(name string) (Joint, bool) {
	for _, j := range r.Joints {
		if j.Name == name {
			return j, true
		}
	}
	return Joint{}, false
}

// ChildJoints returns the joints whose parent is the named link, in document order.
func (r *Robot) ChildJoints(link string) []Joint {
	var out []Joint
	for _, j := range r.Joints {
		if j.Parent == link {
			out = append(out, j)
		}
	}
	return out
}

// RootLinks returns the names of links that are not the child of any joint, in document order.
func (r *Robot) RootLinks() []string {
	children := make(map[string]struct{}, len(r.Joints))
	for _, j := range r.Joints {
		children[j.Child] = struct{}{}
	}
	var roots []string
	for _, l := range r.Links {
		if _, ok := children[l.Name]; !ok {
			roots = append(roots, l.Name)
		}
	}
	return roots
}

// MeshReferences returns the mesh geometries used by link visuals and/or collisions, one per
// distinct filename, in document order.
func (r *Robot) MeshReferences(visual, collision bool) []Mesh {
	seen := map[string]struct{}{}
	var out []Mesh
	add := func(g Geometry) {
		m, ok := g.(Mesh)
		if !ok {
			return
		}
		if _, dup := seen[m.Filename]; dup {
			return
		}
		seen[m.Filename] = struct{}{}
		out = append(out, m)
	}
	for _, l := range r.Links {
		if visual && l.Visual != nil {
			add(l.Visual.Geometry)
		}
		if collision && l.Collision != nil {
			add(l.Collision.Geometry)
		}
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
