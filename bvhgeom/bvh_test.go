package bvhgeom

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func randomTriangles(n int, rng *rand.Rand) []Triangle {
	tris := make([]Triangle, n)
	for i := range tris {
		center := r3.Vec{X: rng.Float64() * 100, Y: rng.Float64() * 100, Z: rng.Float64() * 100}
		a := r3.Add(center, r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		b := r3.Add(center, r3.Vec{X: rng.Float64() + 1, Y: rng.Float64(), Z: rng.Float64()})
		c := r3.Add(center, r3.Vec{X: rng.Float64(), Y: rng.Float64() + 1, Z: rng.Float64()})
		tris[i] = NewTriangle(a, b, c)
	}
	return tris
}

func TestBuildLeafContainmentAndBoundsUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tris := randomTriangles(200, rng)
	bvh, perm := Build(tris)

	if len(perm) != len(tris) {
		t.Fatalf("permutation length %d != %d", len(perm), len(tris))
	}

	var totalLeafPrims int
	var walk func(idx int) Bounds
	walk = func(idx int) Bounds {
		n := bvh.Nodes[idx]
		if n.IsLeaf() {
			totalLeafPrims += int(n.NPrims)
			for i := int32(0); i < n.NPrims; i++ {
				triBounds := bvh.Triangles[n.Next+i].Bounds()
				if !n.Bounds.Contains(triBounds, 1e-9) {
					t.Errorf("leaf %d does not contain triangle %d bounds", idx, n.Next+i)
				}
			}
			return n.Bounds
		}
		left := walk(idx + 1)
		right := walk(int(n.Next))
		union := Union(left, right)
		if !n.Bounds.Contains(union, 1e-9) || !union.Contains(n.Bounds, 1e-9) {
			t.Errorf("interior node %d bounds do not equal union of children", idx)
		}
		return n.Bounds
	}
	walk(0)

	if totalLeafPrims != len(tris) {
		t.Fatalf("leaves hold %d primitives, want %d", totalLeafPrims, len(tris))
	}
}

func bruteForceClosestHit(tris []Triangle, r Ray) (Hit, bool) {
	bestT := -1.0
	bestIdx := -1
	var bestPoint r3.Vec
	for i, tri := range tris {
		tHit, _, _, ok := intersectTriangle(r, tri)
		if !ok || tHit <= epsSelfShadow {
			continue
		}
		if bestIdx < 0 || tHit < bestT {
			bestT = tHit
			bestIdx = i
			bestPoint = r3.Add(r.Origin, r3.Scale(tHit, r.Dir))
		}
	}
	if bestIdx < 0 {
		return Hit{}, false
	}
	return Hit{TriangleIndex: bestIdx, Point: bestPoint, T: bestT}, true
}

func TestIntersectMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tris := randomTriangles(300, rng)
	bvh, _ := Build(tris)

	hits := 0
	for i := 0; i < 500; i++ {
		origin := r3.Vec{X: rng.Float64() * 100, Y: rng.Float64() * 100, Z: -50}
		dir := r3.Unit(r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*1.5 + 0.2})
		r := NewRay(origin, dir)

		got, gotOK := bvh.Intersect(r)
		want, wantOK := bruteForceClosestHit(bvh.Triangles, r)

		if gotOK != wantOK {
			t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, gotOK, wantOK)
		}
		if !gotOK {
			continue
		}
		hits++
		dist := math.Hypot(math.Hypot(got.Point.X-want.Point.X, got.Point.Y-want.Point.Y), got.Point.Z-want.Point.Z)
		if dist > 1e-5 {
			t.Errorf("ray %d: hit points differ by %v", i, dist)
		}
	}
	if hits == 0 {
		t.Fatal("no rays hit anything; test is not exercising intersection")
	}
}

func TestUnobstructedDistance(t *testing.T) {
	blocker := NewTriangle(
		r3.Vec{X: -10, Y: -10, Z: 5},
		r3.Vec{X: 10, Y: -10, Z: 5},
		r3.Vec{X: 0, Y: 10, Z: 5},
	)
	bvh, _ := Build([]Triangle{blocker})

	r := NewRay(r3.Vec{X: 0, Y: -1, Z: 0}, r3.Vec{X: 0, Y: 0, Z: 1})

	// Target well beyond the blocker: obstructed.
	if bvh.UnobstructedDistance(r, 100*100) {
		t.Error("expected obstruction before target at distance 100")
	}
	// Target in front of the blocker: unobstructed.
	if !bvh.UnobstructedDistance(r, 1*1) {
		t.Error("expected no obstruction before the blocker")
	}
}

func TestMeshSphereTriangleCount(t *testing.T) {
	tris := MeshSphere(r3.Vec{}, 1.0, 2)
	// 20 faces * 4^subdivisions.
	want := 20 * 4 * 4
	if len(tris) != want {
		t.Fatalf("want %d triangles, got %d", want, len(tris))
	}
	for _, tri := range tris {
		for _, v := range []r3.Vec{tri.A, tri.B, tri.C} {
			if math.Abs(r3.Norm(v)-1.0) > 1e-9 {
				t.Errorf("vertex %v not on unit sphere", v)
			}
		}
	}
}
