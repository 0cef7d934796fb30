package importer

import (
	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"go.viam.com/urdfimport/physics"
	"go.viam.com/urdfimport/stl"
	"go.viam.com/urdfimport/urdf"
)

// Result is the outcome of one import. Hosts consume it read-only.
type Result struct {
	ID    uuid.UUID   `json:"id" yaml:"id" msgpack:"id"`
	Robot *urdf.Robot `json:"-" yaml:"-" msgpack:"-"`
	// Meshes holds one decoded, unscaled mesh per distinct STL filename. Failed assets map to
	// the placeholder cube.
	Meshes map[string]*stl.Mesh `json:"-" yaml:"-" msgpack:"-"`
	Joints []physics.JointSpec  `json:"joints" yaml:"joints" msgpack:"joints"`
	// Bodies is keyed by link name and only holds links with an inertial.
	Bodies map[string]physics.BodySpec `json:"bodies" yaml:"bodies" msgpack:"bodies"`
	// Deferred lists mesh filenames in formats the host must import itself.
	Deferred []string      `json:"deferred,omitempty" yaml:"deferred,omitempty" msgpack:"deferred,omitempty"`
	Warnings urdf.Warnings `json:"warnings,omitempty" yaml:"warnings,omitempty" msgpack:"warnings,omitempty"`
}

// Instantiable reports whether the host should build the named joint: it must exist, both of
// its links must resolve, and its type must be supported.
func (r *Result) Instantiable(joint string) bool {
	if _, ok := r.Robot.Joint(joint); !ok {
		return false
	}
	return !r.Warnings.Has(urdf.UnresolvedJointEndpoint, joint) &&
		!r.Warnings.Has(urdf.UnsupportedJointType, joint)
}

// MeshFor returns the decoded mesh for a geometry reference with the reference's scale applied.
func (r *Result) MeshFor(ref urdf.Mesh) (*stl.Mesh, bool) {
	mesh, ok := r.Meshes[ref.Filename]
	if !ok {
		return nil, false
	}
	if scale := ref.TargetScale(); scale != (r3.Vector{X: 1, Y: 1, Z: 1}) {
		return mesh.Scaled(scale), true
	}
	return mesh, true
}

// Placeholders returns the filenames whose meshes were replaced by the placeholder cube.
func (r *Result) Placeholders() []string {
	var out []string
	for _, w := range r.Warnings {
		switch w.Kind {
		case urdf.TruncatedFile, urdf.MalformedMesh, urdf.MeshNotFound:
			out = append(out, w.Subject)
		}
	}
	return out
}
