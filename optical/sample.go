// Package optical implements the precomputed daylight-coefficient pipeline:
// per-surface area-weighted point sampling, Monte-Carlo daylight-coefficient
// matrices against a BVH scene, sky/ground/air view-factor sets, on-disk
// persistence of the resulting OpticalInfo, and the per-time-step dispatch
// of solar/longwave irradiance into State.
package optical

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/spatialmodel/buildingsim/bmodel"
)

// offsetEpsilon is the distance a sample ray's origin is pushed off the
// surface along its normal, so the ray's own surface does not self-shadow
// it at t≈0.
const offsetEpsilon = 0.001

// SamplePoint is one area-weighted point on a surface's polygon, carrying
// the outward normal of the side it was drawn for.
type SamplePoint struct {
	Position r3.Vec
	Normal   r3.Vec
}

// triangleFan triangulates a (possibly non-triangular) planar polygon as a
// fan from its first vertex, sufficient for area-weighted sampling since
// the polygon is assumed convex-or-fan-safe per the geometry Non-goals.
func triangleFan(poly bmodel.Polygon) [][3]r3.Vec {
	v := poly.Vertices
	if len(v) < 3 {
		return nil
	}
	tris := make([][3]r3.Vec, 0, len(v)-2)
	for i := 1; i < len(v)-1; i++ {
		tris = append(tris, [3]r3.Vec{v[0], v[i], v[i+1]})
	}
	return tris
}

func triangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

// SamplePolygon draws nRays area-weighted points from poly's surface, each
// paired with the given outward normal (front or back, selected by the
// caller) and offset by offsetEpsilon along that normal so the emitted ray
// does not self-intersect its own origin surface.
func SamplePolygon(poly bmodel.Polygon, normal r3.Vec, nRays int, rng *rand.Rand) []SamplePoint {
	tris := triangleFan(poly)
	if len(tris) == 0 || nRays <= 0 {
		return nil
	}
	areas := make([]float64, len(tris))
	var total float64
	for i, t := range tris {
		areas[i] = triangleArea(t[0], t[1], t[2])
		total += areas[i]
	}

	u01 := distuv.Uniform{Min: 0, Max: 1, Src: rng}

	points := make([]SamplePoint, nRays)
	offset := r3.Scale(offsetEpsilon, normal)
	for i := 0; i < nRays; i++ {
		target := u01.Rand() * total
		ti := 0
		for acc := 0.0; ti < len(tris)-1; ti++ {
			acc += areas[ti]
			if target <= acc {
				break
			}
		}
		tri := tris[ti]
		r1, r2 := u01.Rand(), u01.Rand()
		sqrtR1 := math.Sqrt(r1)
		// Standard triangle barycentric sampling (Shirley & Chiu).
		bary0 := 1 - sqrtR1
		bary1 := sqrtR1 * (1 - r2)
		bary2 := sqrtR1 * r2
		pos := r3.Add(r3.Add(r3.Scale(bary0, tri[0]), r3.Scale(bary1, tri[1])), r3.Scale(bary2, tri[2]))
		points[i] = SamplePoint{Position: r3.Add(pos, offset), Normal: normal}
	}
	return points
}
