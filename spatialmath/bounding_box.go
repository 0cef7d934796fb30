package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// BoundingBox is an axis-aligned box described by its minimum and maximum corners.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// NewBoundingBox returns the tightest box around pts. With no points the box is zero sized at
// the origin.
func NewBoundingBox(pts []r3.Vector) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, pt := range pts {
		bb = bb.Extend(pt)
	}
	return bb
}

// Extend returns a copy of the box grown to contain pt.
func (bb BoundingBox) Extend(pt r3.Vector) BoundingBox {
	return BoundingBox{
		Min: r3.Vector{X: math.Min(bb.Min.X, pt.X), Y: math.Min(bb.Min.Y, pt.Y), Z: math.Min(bb.Min.Z, pt.Z)},
		Max: r3.Vector{X: math.Max(bb.Max.X, pt.X), Y: math.Max(bb.Max.Y, pt.Y), Z: math.Max(bb.Max.Z, pt.Z)},
	}
}

// Size returns the extent of the box along each axis.
func (bb BoundingBox) Size() r3.Vector {
	return bb.Max.Sub(bb.Min)
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() r3.Vector {
	return bb.Min.Add(bb.Max).Mul(0.5)
}
