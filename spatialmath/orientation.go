package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// EulerToQuat builds the orientation for target-convention Euler angles in radians. Rotations
// are applied about Z first, then X, then Y, which is the order target hosts use for Euler
// angles.
func EulerToQuat(euler r3.Vector) mgl64.Quat {
	qx := mgl64.QuatRotate(euler.X, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(euler.Y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(euler.Z, mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// RotateVector rotates v by the target-convention Euler angles.
func RotateVector(euler, v r3.Vector) r3.Vector {
	out := EulerToQuat(euler).Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}
