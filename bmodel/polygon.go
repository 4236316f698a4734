package bmodel

import "gonum.org/v1/gonum/spatial/r3"

// Polygon is a planar, simple polygon in 3-space, given as an ordered,
// non-repeating vertex loop. Loop closure and triangulation of arbitrary
// polygons are assumed available elsewhere (§1); Polygon only derives the
// handful of scalar/vector quantities the thermal and radiation cores need.
type Polygon struct {
	Vertices []r3.Vec
}

// NewPolygon returns a Polygon over the given vertex loop. The loop is
// assumed already closed (first vertex implicitly connects to last) and
// planar.
func NewPolygon(vertices []r3.Vec) Polygon {
	return Polygon{Vertices: vertices}
}

// Normal returns the polygon's outward unit normal via Newell's method,
// which is robust to non-triangular and slightly non-planar input.
func (p Polygon) Normal() r3.Vec {
	var n r3.Vec
	v := p.Vertices
	for i := range v {
		cur := v[i]
		next := v[(i+1)%len(v)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return r3.Unit(n)
}

// Area returns the polygon's area, computed from the same Newell normal
// accumulation (its magnitude before unit-normalizing is twice the area).
func (p Polygon) Area() float64 {
	var n r3.Vec
	v := p.Vertices
	for i := range v {
		cur := v[i]
		next := v[(i+1)%len(v)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return 0.5 * r3.Norm(n)
}

// Perimeter returns the sum of edge lengths around the loop.
func (p Polygon) Perimeter() float64 {
	total := 0.0
	v := p.Vertices
	for i := range v {
		next := v[(i+1)%len(v)]
		total += r3.Norm(r3.Sub(next, v[i]))
	}
	return total
}

// Centroid returns the vertex-averaged centroid. This is exact for regular
// polygons and a good approximation otherwise. No package in this
// repository calls it.
func (p Polygon) Centroid() r3.Vec {
	var sum r3.Vec
	for _, v := range p.Vertices {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1.0/float64(len(p.Vertices)), sum)
}
