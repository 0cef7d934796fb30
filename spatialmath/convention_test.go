package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestConvertPosition(t *testing.T) {
	test.That(t, ConvertPosition(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldResemble, r3.Vector{X: 1, Y: 3, Z: 2})
	test.That(t, ConvertPosition(r3.Vector{}), test.ShouldResemble, r3.Vector{})
	// source up becomes target up
	test.That(t, ConvertPosition(r3.Vector{Z: 1}), test.ShouldResemble, Up)
}

func TestConvertRotation(t *testing.T) {
	rpy := r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}
	test.That(t, ConvertRotation(rpy), test.ShouldResemble, r3.Vector{X: -0.2, Y: 0.3, Z: 0.1})

	t.Run("single axis yaw", func(t *testing.T) {
		out := ConvertRotation(r3.Vector{Z: math.Pi / 2})
		test.That(t, out, test.ShouldResemble, r3.Vector{Y: math.Pi / 2})
	})
}

func TestConvertAxis(t *testing.T) {
	test.That(t, ConvertAxis(r3.Vector{X: 0, Y: 1, Z: 0}), test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 0})
	test.That(t, ConvertAxis(r3.Vector{X: 1}), test.ShouldResemble, Forward)
	test.That(t, ConvertAxis(r3.Vector{Z: 1}), test.ShouldResemble, Up)
	test.That(t, ConvertAxis(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldResemble, r3.Vector{X: -2, Y: 3, Z: 1})
}

func TestConvertDeterministic(t *testing.T) {
	v := r3.Vector{X: -4.5, Y: 0.25, Z: 9}
	for i := 0; i < 5; i++ {
		test.That(t, ConvertPosition(v), test.ShouldResemble, ConvertPosition(v))
		test.That(t, ConvertRotation(v), test.ShouldResemble, ConvertRotation(v))
		test.That(t, ConvertAxis(v), test.ShouldResemble, ConvertAxis(v))
	}
}

func TestEulerToQuat(t *testing.T) {
	q := EulerToQuat(r3.Vector{})
	test.That(t, q.W, test.ShouldAlmostEqual, 1)
	test.That(t, q.V.Len(), test.ShouldAlmostEqual, 0)

	t.Run("yaw about up", func(t *testing.T) {
		out := RotateVector(r3.Vector{Y: math.Pi / 2}, r3.Vector{X: 1})
		test.That(t, out.X, test.ShouldAlmostEqual, 0)
		test.That(t, out.Y, test.ShouldAlmostEqual, 0)
		test.That(t, out.Z, test.ShouldAlmostEqual, -1)
	})

	t.Run("z applied before x", func(t *testing.T) {
		euler := r3.Vector{X: math.Pi / 2, Z: math.Pi / 2}
		// z takes +x to +y, then x takes +y to +z
		out := RotateVector(euler, r3.Vector{X: 1})
		test.That(t, out.X, test.ShouldAlmostEqual, 0)
		test.That(t, out.Y, test.ShouldAlmostEqual, 0)
		test.That(t, out.Z, test.ShouldAlmostEqual, 1)
	})
}

func TestNearestBasisAxis(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       r3.Vector
		expected BasisAxis
	}{
		{"mostly x", r3.Vector{X: 0.98, Y: 0.1, Z: 0.05}, AxisX},
		{"negative y", r3.Vector{X: 0.1, Y: -0.9, Z: 0.2}, AxisY},
		{"z", r3.Vector{Z: 3}, AxisZ},
		{"tie favors x", r3.Vector{X: 1, Y: 1}, AxisX},
		{"tie favors y over z", r3.Vector{Y: -1, Z: 1}, AxisY},
		{"zero", r3.Vector{}, AxisNone},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, NearestBasisAxis(tc.in), test.ShouldEqual, tc.expected)
		})
	}
	test.That(t, AxisZ.Vector(), test.ShouldResemble, Forward)
	test.That(t, AxisY.String(), test.ShouldEqual, "y")
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox([]r3.Vector{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 5}})
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{X: -1, Y: -2, Z: 0})
	test.That(t, bb.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 4, Z: 5})
	test.That(t, bb.Size(), test.ShouldResemble, r3.Vector{X: 2, Y: 6, Z: 5})
	test.That(t, bb.Center(), test.ShouldResemble, r3.Vector{X: 0, Y: 1, Z: 2.5})

	test.That(t, NewBoundingBox(nil), test.ShouldResemble, BoundingBox{})
}

func TestPrincipalInertia(t *testing.T) {
	t.Run("diagonal", func(t *testing.T) {
		moments, _, err := PrincipalInertia(3, 0, 0, 1, 0, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, moments.X, test.ShouldAlmostEqual, 1)
		test.That(t, moments.Y, test.ShouldAlmostEqual, 2)
		test.That(t, moments.Z, test.ShouldAlmostEqual, 3)
	})
	t.Run("off diagonal", func(t *testing.T) {
		moments, axes, err := PrincipalInertia(2, 1, 0, 2, 0, 5)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, moments.X, test.ShouldAlmostEqual, 1)
		test.That(t, moments.Y, test.ShouldAlmostEqual, 3)
		test.That(t, moments.Z, test.ShouldAlmostEqual, 5)
		for _, a := range axes {
			test.That(t, a.Norm(), test.ShouldAlmostEqual, 1)
		}
		test.That(t, math.Abs(axes[2].Z), test.ShouldAlmostEqual, 1)
	})
}
