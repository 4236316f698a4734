package bvhgeom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max r3.Vec
}

// EmptyBounds returns a degenerate bounding box (Min at +inf, Max at -inf)
// ready to be grown with ExtendPoint/ExtendBounds.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// ExtendPoint grows b in place to contain p.
func (b *Bounds) ExtendPoint(p r3.Vec) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// ExtendBounds grows b in place to contain other.
func (b *Bounds) ExtendBounds(other Bounds) {
	b.ExtendPoint(other.Min)
	b.ExtendPoint(other.Max)
}

// Union returns the smallest bounds containing both a and b.
func Union(a, b Bounds) Bounds {
	out := a
	out.ExtendBounds(b)
	return out
}

// Contains reports whether other is entirely within b, to within eps on
// each axis (used for the BVH-leaf-containment test in package tests).
func (b Bounds) Contains(other Bounds, eps float64) bool {
	return other.Min.X >= b.Min.X-eps && other.Min.Y >= b.Min.Y-eps && other.Min.Z >= b.Min.Z-eps &&
		other.Max.X <= b.Max.X+eps && other.Max.Y <= b.Max.Y+eps && other.Max.Z <= b.Max.Z+eps
}

// SurfaceArea returns the bounding box's surface area, used by the SAH cost
// estimate.
func (b Bounds) SurfaceArea() float64 {
	d := r3.Sub(b.Max, b.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Extent returns Max - Min per axis.
func (b Bounds) Extent() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// LongestAxis returns 0, 1, or 2 for the axis (x, y, z) of greatest extent.
func (b Bounds) LongestAxis() int {
	e := b.Extent()
	axis := 0
	max := e.X
	if e.Y > max {
		axis, max = 1, e.Y
	}
	if e.Z > max {
		axis = 2
	}
	return axis
}

// AxisValue returns the component of v along the given axis (0=x, 1=y, 2=z).
func AxisValue(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
