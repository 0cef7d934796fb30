package stl

import "github.com/golang/geo/r3"

// Placeholder returns a unit cube centered on the origin, used in place of a mesh that could
// not be loaded. It is built in the source convention and goes through the same conversion as
// decoded meshes, so its winding matches theirs.
func Placeholder() *Mesh {
	faces := []struct{ n, u, v r3.Vector }{
		{r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}},
		{r3.Vector{X: -1}, r3.Vector{Z: 1}, r3.Vector{Y: 1}},
		{r3.Vector{Y: 1}, r3.Vector{Z: 1}, r3.Vector{X: 1}},
		{r3.Vector{Y: -1}, r3.Vector{X: 1}, r3.Vector{Z: 1}},
		{r3.Vector{Z: 1}, r3.Vector{X: 1}, r3.Vector{Y: 1}},
		{r3.Vector{Z: -1}, r3.Vector{Y: 1}, r3.Vector{X: 1}},
	}
	b := newBuilder(FormatBinary, 2*len(faces))
	for _, f := range faces {
		// u x v == n, so corners listed counter-clockwise around n
		c := f.n.Mul(0.5)
		corners := [4]r3.Vector{
			c.Sub(f.u.Mul(0.5)).Sub(f.v.Mul(0.5)),
			c.Add(f.u.Mul(0.5)).Sub(f.v.Mul(0.5)),
			c.Add(f.u.Mul(0.5)).Add(f.v.Mul(0.5)),
			c.Sub(f.u.Mul(0.5)).Add(f.v.Mul(0.5)),
		}
		b.addTriangle(f.n, [3]r3.Vector{corners[0], corners[1], corners[2]})
		b.addTriangle(f.n, [3]r3.Vector{corners[0], corners[2], corners[3]})
	}
	return b.finish()
}
