// Package physics derives host-neutral joint and rigid body descriptors from a parsed robot.
package physics

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/urdfimport/spatialmath"
	"go.viam.com/urdfimport/urdf"
	"go.viam.com/urdfimport/utils"
)

// Motion is the kind of relative motion a joint permits.
type Motion int

// The supported motions.
const (
	MotionNone Motion = iota
	MotionAngular
	MotionLinear
	MotionUnsupported
)

func (m Motion) String() string {
	switch m {
	case MotionNone:
		return "none"
	case MotionAngular:
		return "angular"
	case MotionLinear:
		return "linear"
	case MotionUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// MarshalText encodes the motion by name.
func (m Motion) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Range is a closed interval. Angular ranges are radians, linear ranges meters.
type Range struct {
	Min float64 `json:"min" yaml:"min" msgpack:"min"`
	Max float64 `json:"max" yaml:"max" msgpack:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// JointSpec describes how a host should constrain a child body to its parent.
type JointSpec struct {
	Name   string         `json:"name" yaml:"name" msgpack:"name"`
	Type   urdf.JointType `json:"type" yaml:"type" msgpack:"type"`
	Parent string         `json:"parent" yaml:"parent" msgpack:"parent"`
	Child  string         `json:"child" yaml:"child" msgpack:"child"`
	Motion Motion         `json:"motion" yaml:"motion" msgpack:"motion"`
	// Anchor is the joint origin relative to the parent link, in the target convention.
	Anchor urdf.Origin `json:"anchor" yaml:"anchor" msgpack:"anchor"`
	// Axis is the joint axis for angular motion. For linear motion it is the snapped basis axis.
	Axis       r3.Vector               `json:"axis" yaml:"axis" msgpack:"axis"`
	FreeAxis   spatialmath.BasisAxis   `json:"free_axis" yaml:"free_axis" msgpack:"free_axis"`
	LockedAxes []spatialmath.BasisAxis `json:"locked_axes,omitempty" yaml:"locked_axes,omitempty" msgpack:"locked_axes,omitempty"`
	// Limit is nil when the joint is unbounded.
	Limit   *Range  `json:"limit,omitempty" yaml:"limit,omitempty" msgpack:"limit,omitempty"`
	Damping float64 `json:"damping" yaml:"damping" msgpack:"damping"`
	// Damped is true when the document declared dynamics for the joint.
	Damped bool `json:"damped" yaml:"damped" msgpack:"damped"`
}

// MapJoint derives the joint descriptor for j. Fixed joints carry no motion; floating and planar
// joints yield a descriptor with MotionUnsupported that hosts may ignore.
func MapJoint(j urdf.Joint) JointSpec {
	spec := JointSpec{
		Name:   j.Name,
		Type:   j.Type,
		Parent: j.Parent,
		Child:  j.Child,
		Anchor: j.Origin,
	}

	switch j.Type {
	case urdf.Fixed:
		spec.Motion = MotionNone
		return spec
	case urdf.Floating, urdf.Planar:
		spec.Motion = MotionUnsupported
		return spec
	case urdf.Revolute, urdf.Continuous:
		spec.Motion = MotionAngular
		spec.Axis = j.Axis
		// continuous joints stay unbounded even when a limit is declared
		if j.Type == urdf.Revolute && j.Limit != nil {
			spec.Limit = &Range{Min: j.Limit.Lower, Max: j.Limit.Upper}
		}
	case urdf.Prismatic:
		spec.Motion = MotionLinear
		spec.FreeAxis = spatialmath.NearestBasisAxis(j.Axis)
		spec.Axis = spec.FreeAxis.Vector()
		spec.LockedAxes = lockedAxes(spec.FreeAxis)
		if j.Limit != nil {
			upper := math.Abs(j.Limit.Upper)
			spec.Limit = &Range{Min: -upper, Max: upper}
		}
	}

	if j.Dynamics != nil {
		spec.Damped = true
		spec.Damping = j.Dynamics.Damping
	}
	return spec
}

// lockedAxes returns the basis axes other than free. A joint without a free axis locks all three.
func lockedAxes(free spatialmath.BasisAxis) []spatialmath.BasisAxis {
	var locked []spatialmath.BasisAxis
	for _, a := range []spatialmath.BasisAxis{spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisZ} {
		if a != free {
			locked = append(locked, a)
		}
	}
	return locked
}

// LimitDegrees returns an angular limit in degrees. ok is false for unbounded or linear joints.
func (s JointSpec) LimitDegrees() (Range, bool) {
	if s.Motion != MotionAngular || s.Limit == nil {
		return Range{}, false
	}
	return Range{Min: utils.RadToDeg(s.Limit.Min), Max: utils.RadToDeg(s.Limit.Max)}, true
}

// Unbounded reports whether a moving joint has no limit.
func (s JointSpec) Unbounded() bool {
	return (s.Motion == MotionAngular || s.Motion == MotionLinear) && s.Limit == nil
}
