// Package spatialmath defines spatial mathematical operations
//
// Documents arrive in a right-handed, Z-up convention (X forward, Y left). Everything this module
// hands to a host is in a left-handed, Y-up convention (X right, Z forward). The three Convert
// functions below are the only place that mapping is written down; callers apply them exactly once
// per value.
package spatialmath

import "github.com/golang/geo/r3"

var (
	// Up is the up direction of the target convention.
	Up = r3.Vector{X: 0, Y: 1, Z: 0}
	// Forward is the forward direction of the target convention.
	Forward = r3.Vector{X: 0, Y: 0, Z: 1}
	// Right is the right direction of the target convention.
	Right = r3.Vector{X: 1, Y: 0, Z: 0}
)

// ConvertPosition maps a source position into the target convention: (x, y, z) -> (x, z, y).
// Also used for STL vertices and normals.
func ConvertPosition(v r3.Vector) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Z, Z: v.Y}
}

// ConvertRotation maps source roll/pitch/yaw (radians, about X/Y/Z) into target Euler angles
// (radians, about X/Y/Z): (roll, pitch, yaw) -> (-pitch, yaw, roll).
//
// This relabels axes rather than conjugating a rotation matrix, so it is only exact for rotations
// about a single axis. Composed rotations come out approximated; hosts that already compensate for
// this depend on the approximation staying as it is.
func ConvertRotation(rpy r3.Vector) r3.Vector {
	return r3.Vector{X: -rpy.Y, Y: rpy.Z, Z: rpy.X}
}

// ConvertAxis maps a source joint axis into the target convention: (x, y, z) -> (-y, z, x).
func ConvertAxis(v r3.Vector) r3.Vector {
	return r3.Vector{X: -v.Y, Y: v.Z, Z: v.X}
}
