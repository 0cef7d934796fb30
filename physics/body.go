package physics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/urdfimport/spatialmath"
	"go.viam.com/urdfimport/urdf"
)

// BodySpec is the rigid body setup derived from a link's inertial element.
type BodySpec struct {
	Link string  `json:"link" yaml:"link" msgpack:"link"`
	Mass float64 `json:"mass" yaml:"mass" msgpack:"mass"`
	// CenterOfMass is the inertial origin position in the target convention.
	CenterOfMass r3.Vector `json:"center_of_mass" yaml:"center_of_mass" msgpack:"center_of_mass"`
	// Inertia is the axis-aligned diagonal tensor in the target convention.
	Inertia r3.Vector `json:"inertia" yaml:"inertia" msgpack:"inertia"`
	// Approximate is set when off-diagonal terms were dropped from the tensor.
	Approximate bool `json:"approximate" yaml:"approximate" msgpack:"approximate"`
	// PrincipalMoments holds the eigenvalues of the full source tensor, ascending, when Approximate.
	PrincipalMoments *r3.Vector `json:"principal_moments,omitempty" yaml:"principal_moments,omitempty" msgpack:"principal_moments,omitempty"`
}

// MapBody derives a body descriptor for l. ok is false when the link declares no inertial.
func MapBody(l urdf.Link) (BodySpec, bool) {
	if l.Inertial == nil {
		return BodySpec{}, false
	}
	body := BodySpec{
		Link:         l.Name,
		Mass:         l.Inertial.Mass,
		CenterOfMass: l.Inertial.Origin.Position,
	}
	in := l.Inertial.Inertia
	if in == nil {
		return body, true
	}
	body.Inertia = in.Diagonal()
	if in.HasOffDiagonal() {
		body.Approximate = true
		moments, _, err := spatialmath.PrincipalInertia(in.IXX, in.IXY, in.IXZ, in.IYY, in.IYZ, in.IZZ)
		if err == nil {
			body.PrincipalMoments = &moments
		}
	}
	return body, true
}
