package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PrincipalInertia diagonalizes a symmetric inertia tensor. Moments are returned in ascending
// order; axes[i] is the unit principal axis for moment i, expressed in the same frame as the
// tensor.
func PrincipalInertia(ixx, ixy, ixz, iyy, iyz, izz float64) (r3.Vector, [3]r3.Vector, error) {
	var axes [3]r3.Vector
	tensor := mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})

	var eig mat.EigenSym
	if ok := eig.Factorize(tensor, true); !ok {
		return r3.Vector{}, axes, errors.New("inertia tensor eigen decomposition failed")
	}
	values := eig.Values(nil)

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	for i := range axes {
		axes[i] = r3.Vector{X: vecs.At(0, i), Y: vecs.At(1, i), Z: vecs.At(2, i)}
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, axes, nil
}
