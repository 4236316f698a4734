package optical

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/bvhgeom"
	"github.com/spatialmodel/buildingsim/matrix"
	"github.com/spatialmodel/buildingsim/sky"
)

// Occluder is the subset of bvhgeom.Scene the daylight-coefficient builder
// needs: a closest-hit query against the assembled geometry.
type Occluder interface {
	Intersect(r bvhgeom.Ray) (bvhgeom.Hit, bool)
}

// RowFace identifies one face (front or back) of a surface or
// fenestration, for which a single daylight-coefficient row is built.
type RowFace struct {
	Polygon  bmodel.Polygon
	Normal   r3.Vec
	Receives bool
}

// DCRowBuilder assembles daylight-coefficient rows by path-tracing
// cosine-weighted ambient rays from area-weighted surface sample points.
type DCRowBuilder struct {
	Scene        Occluder
	Subdivision  sky.Subdivision
	NRays        int // sample points per face
	NAmbient     int // ambient rays per sample point
	Rng          *rand.Rand
}

// BuildRow returns a 1×n_bins daylight-coefficient row for one face: the
// polygon, its outward normal for that side, and whether it receives sun at
// all (§4.4.4's boundary/sun rule — callers pass receives=false for
// Ground/Adiabatic/AmbientTemperature faces and get an all-zero row back,
// preserving positional correspondence in the concatenated DC matrix).
func (b *DCRowBuilder) BuildRow(poly bmodel.Polygon, normal r3.Vec, receives bool) []float64 {
	nBins := len(b.Subdivision.Patches)
	row := make([]float64, nBins)
	if !receives {
		return row
	}

	points := SamplePolygon(poly, normal, b.NRays, b.Rng)
	if len(points) == 0 {
		return row
	}

	totalRays := 0
	for _, p := range points {
		for k := 0; k < b.NAmbient; k++ {
			dir := CosineWeightedDirection(p.Normal, b.Rng)
			ray := bvhgeom.NewRay(p.Position, dir)
			totalRays++
			if _, hit := b.Scene.Intersect(ray); hit {
				continue // obstructed: contributes zero
			}
			nearest := b.Subdivision.NearestPatches(dir, 1)
			if len(nearest) == 0 {
				continue
			}
			row[nearest[0]]++
		}
	}
	if totalRays == 0 {
		return row
	}
	for i := range row {
		row[i] /= float64(totalRays)
	}
	return row
}

// BuildMatrix concatenates BuildRow's output for each face into a module-
// level daylight-coefficient matrix, one row per face, in the given order.
func (b *DCRowBuilder) BuildMatrix(faces []RowFace) *matrix.Matrix[matrix.Scalar] {
	nBins := len(b.Subdivision.Patches)
	m := matrix.New[matrix.Scalar](len(faces), nBins, matrix.Scalar(0))
	for i, f := range faces {
		row := b.BuildRow(f.Polygon, f.Normal, f.Receives)
		for c, v := range row {
			m.Set(i, c, matrix.Scalar(v))
		}
	}
	return m
}
