package bvhgeom

import "gonum.org/v1/gonum/spatial/r3"

const (
	// epsParallel is the |det| threshold below which a ray is considered
	// parallel to the triangle's plane in the Möller-Trumbore test.
	epsParallel = 1e-5
	// epsSelfShadow rejects intersections with t² this close to zero, to
	// avoid a ray re-hitting the surface it was cast from.
	epsSelfShadow = 1e-7
	// epsBeyondTarget is the slack added when checking whether a hit lies
	// beyond a target distance.
	epsBeyondTarget = 1e-4
	// stackCapacity is the fixed traversal stack size; the tree depth of any
	// SAH-built BVH over a realistic scene stays well under this.
	stackCapacity = 32
)

// Ray is a ray origin/direction pair plus the cached component-wise inverse
// direction used to avoid repeated division during traversal.
type Ray struct {
	Origin, Dir, InvDir r3.Vec
}

// NewRay returns a Ray with InvDir precomputed.
func NewRay(origin, dir r3.Vec) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: r3.Vec{X: 1 / dir.X, Y: 1 / dir.Y, Z: 1 / dir.Z},
	}
}

// intersectTriangle implements the Möller-Trumbore ray-triangle
// intersection test. It returns (t, u, v, ok) where t is the ray parameter
// of the hit and u, v are barycentric coordinates.
func intersectTriangle(r Ray, t Triangle) (tHit, u, v float64, ok bool) {
	pvec := r3.Cross(r.Dir, t.Edge2)
	det := r3.Dot(t.Edge1, pvec)
	if det > -epsParallel && det < epsParallel {
		return 0, 0, 0, false
	}
	invDet := 1 / det
	tvec := r3.Sub(r.Origin, t.A)
	u = r3.Dot(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	qvec := r3.Cross(tvec, t.Edge1)
	v = r3.Dot(r.Dir, qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	tHit = r3.Dot(t.Edge2, qvec) * invDet
	return tHit, u, v, true
}

// Hit is the result of a closest-hit query.
type Hit struct {
	TriangleIndex int
	Point         r3.Vec
	T             float64
}

// boxIntersects reports whether ray r intersects bounds b before tMax
// (slab test).
func boxIntersects(r Ray, b Bounds, tMax float64) bool {
	tmin, tmax := 0.0, tMax
	for axis := 0; axis < 3; axis++ {
		origin := AxisValue(r.Origin, axis)
		invd := AxisValue(r.InvDir, axis)
		lo := (AxisValue(b.Min, axis) - origin) * invd
		hi := (AxisValue(b.Max, axis) - origin) * invd
		if invd < 0 {
			lo, hi = hi, lo
		}
		if lo > tmin {
			tmin = lo
		}
		if hi < tmax {
			tmax = hi
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

// Intersect finds the closest hit of ray r against the scene, or ok=false
// if no triangle is hit. It traverses the tree with a fixed-size stack,
// descending into the near child first based on the split axis and the
// ray's direction sign, as described in the design notes for BVH traversal.
func (b *BVH) Intersect(r Ray) (hit Hit, ok bool) {
	if len(b.Nodes) == 0 {
		return Hit{}, false
	}
	var stack [stackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	bestT := -1.0
	bestIdx := -1
	var bestPoint r3.Vec

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := b.Nodes[nodeIdx]
		maxT := bestT
		if bestIdx < 0 {
			maxT = 1e30
		}
		if !boxIntersects(r, node.Bounds, maxT) {
			continue
		}
		if node.IsLeaf() {
			for i := int32(0); i < node.NPrims; i++ {
				triIdx := node.Next + i
				t := b.Triangles[triIdx]
				tHit, _, _, hitOK := intersectTriangle(r, t)
				if !hitOK {
					continue
				}
				t2 := tHit * tHit
				if tHit <= 0 || t2 <= epsSelfShadow {
					continue
				}
				if bestIdx < 0 || t2 < bestT*bestT {
					bestT = tHit
					bestIdx = int(triIdx)
					bestPoint = r3.Add(r.Origin, r3.Scale(tHit, r.Dir))
				}
			}
			continue
		}
		near := nodeIdx + 1
		far := node.Next
		if AxisValue(r.InvDir, int(node.Axis)) < 0 {
			near, far = far, near
		}
		stack[sp] = far
		sp++
		stack[sp] = near
		sp++
	}

	if bestIdx < 0 {
		return Hit{}, false
	}
	return Hit{TriangleIndex: bestIdx, Point: bestPoint, T: bestT}, true
}

// UnobstructedDistance reports whether ray r reaches a target at squared
// distance targetDist2 without being blocked by any triangle strictly
// between the ray origin and the target (within the tolerances documented
// on the epsilon constants above).
func (b *BVH) UnobstructedDistance(r Ray, targetDist2 float64) bool {
	if len(b.Nodes) == 0 {
		return true
	}
	var stack [stackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := b.Nodes[nodeIdx]
		if !boxIntersects(r, node.Bounds, 1e30) {
			continue
		}
		if node.IsLeaf() {
			for i := int32(0); i < node.NPrims; i++ {
				t := b.Triangles[node.Next+i]
				tHit, _, _, hitOK := intersectTriangle(r, t)
				if !hitOK {
					continue
				}
				t2 := tHit * tHit
				if t2 > epsSelfShadow && t2 < targetDist2-epsBeyondTarget {
					return false
				}
			}
			continue
		}
		stack[sp] = nodeIdx + 1
		sp++
		stack[sp] = node.Next
		sp++
	}
	return true
}
