package optical

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/bvhgeom"
)

// ViewFactorSet is the (sky, ground, air) longwave view-factor triple for
// one face. A set from BuildViewFactors sums to 1 when at least one sampled
// direction is unoccluded; when the face yields no sample points or every
// sampled direction is occluded, BuildViewFactors returns the zero set,
// which sums to 0.
type ViewFactorSet struct {
	Sky    float64
	Ground float64
	Air    float64
}

// ViewFactorBuilder Monte-Carlo-integrates the unoccluded hemisphere
// directions from a face's sample points, partitioning them into sky
// (upward) and ground (downward), then applies the sky/air split.
type ViewFactorBuilder struct {
	Scene    Occluder
	NRays    int
	NAmbient int
	Rng      *rand.Rand
}

// BuildViewFactors returns the view-factor set for one face. A face that
// does not receive sun still needs a view-factor set for longwave exchange
// (the boundary/sun rule in §4.4.4 governs the DC matrix rows, not the
// view-factor computation), so this takes no receives flag.
func (b *ViewFactorBuilder) BuildViewFactors(poly bmodel.Polygon, normal r3.Vec) ViewFactorSet {
	points := SamplePolygon(poly, normal, b.NRays, b.Rng)
	if len(points) == 0 {
		return ViewFactorSet{}
	}

	var skyCount, groundCount int
	for _, p := range points {
		for k := 0; k < b.NAmbient; k++ {
			dir := CosineWeightedDirection(p.Normal, b.Rng)
			ray := bvhgeom.NewRay(p.Position, dir)
			if _, hit := b.Scene.Intersect(ray); hit {
				continue // obstructed: excluded from the unoccluded partition
			}
			if dir.Z > 0 {
				skyCount++
			} else {
				groundCount++
			}
		}
	}
	unoccluded := skyCount + groundCount
	if unoccluded == 0 {
		return ViewFactorSet{}
	}

	sky := float64(skyCount) / float64(unoccluded)
	ground := float64(groundCount) / float64(unoccluded)

	beta := sqrtClamped(sky)
	air := sky * (1 - beta)
	sky = sky * beta

	return ViewFactorSet{Sky: sky, Ground: ground, Air: air}
}

func sqrtClamped(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return math.Sqrt(x)
}
