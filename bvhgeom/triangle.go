// Package bvhgeom implements the triangle-only scene representation and
// bounding-volume hierarchy used by the radiation core for ray-traced
// daylight-coefficient and view-factor sampling. Only triangles are
// accelerated; spheres and single triangles are meshed to triangles at
// scene-assembly time (see Mesh* in mesh.go).
package bvhgeom

import "gonum.org/v1/gonum/spatial/r3"

// Triangle is a single scene primitive. Edge1 and Edge2 are cached at
// construction (B-A and C-A) since every ray test and every SAH cost
// estimate needs them.
type Triangle struct {
	A, B, C     r3.Vec
	Edge1, Edge2 r3.Vec
}

// NewTriangle builds a Triangle from three vertices, caching its edges.
func NewTriangle(a, b, c r3.Vec) Triangle {
	return Triangle{
		A: a, B: b, C: c,
		Edge1: r3.Sub(b, a),
		Edge2: r3.Sub(c, a),
	}
}

// Centroid returns the triangle's centroid, used by the BVH builder to
// bucket primitives along the split axis.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(r3.Add(t.A, t.B), t.C))
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle) Bounds() Bounds {
	b := EmptyBounds()
	b.ExtendPoint(t.A)
	b.ExtendPoint(t.B)
	b.ExtendPoint(t.C)
	return b
}

// Normal returns the triangle's (non-unit-normalized input independent)
// outward unit normal via the right-hand rule over (Edge1, Edge2).
func (t Triangle) Normal() r3.Vec {
	return r3.Unit(r3.Cross(t.Edge1, t.Edge2))
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return 0.5 * r3.Norm(r3.Cross(t.Edge1, t.Edge2))
}

// PointAt evaluates the triangle at barycentric coordinates (u, v), with
// the implicit weight on A being 1-u-v.
func (t Triangle) PointAt(u, v float64) r3.Vec {
	return r3.Add(t.A, r3.Add(r3.Scale(u, t.Edge1), r3.Scale(v, t.Edge2)))
}
