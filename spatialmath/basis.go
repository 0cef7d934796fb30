package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// BasisAxis names one of the three basis axes of the target convention.
type BasisAxis int

// The basis axes. AxisNone is returned for a zero-length input.
const (
	AxisNone BasisAxis = iota
	AxisX
	AxisY
	AxisZ
)

func (a BasisAxis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText encodes the axis by name.
func (a BasisAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Vector returns the unit vector for the axis.
func (a BasisAxis) Vector() r3.Vector {
	switch a {
	case AxisX:
		return r3.Vector{X: 1}
	case AxisY:
		return r3.Vector{Y: 1}
	case AxisZ:
		return r3.Vector{Z: 1}
	case AxisNone:
		return r3.Vector{}
	default:
		return r3.Vector{}
	}
}

// NearestBasisAxis returns the basis axis closest to v: the component with the largest magnitude
// once v is normalized. Ties resolve X, then Y, then Z.
func NearestBasisAxis(v r3.Vector) BasisAxis {
	if v.Norm() == 0 {
		return AxisNone
	}
	n := v.Normalize()
	x, y, z := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case x >= y && x >= z:
		return AxisX
	case y >= z:
		return AxisY
	default:
		return AxisZ
	}
}
