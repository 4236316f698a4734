package sky

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// rowDivisionsMF1 is the Tregenza/Reinhart base subdivision (MF=1): the
// number of patches per altitude band, from the horizon band (band 0) to
// the band nearest zenith, excluding the single zenith cap patch. Summing
// these and adding 1 for the zenith cap gives 145, the canonical
// n_bins(1).
var rowDivisionsMF1 = []int{30, 30, 24, 24, 18, 12, 6}

// Patch is one sky-dome discretization bin: a direction (unit vector, Z up)
// and the solid angle it represents, steradians.
type Patch struct {
	Direction  r3.Vec
	SolidAngle float64
}

// Subdivision is a Reinhart sky discretization at a given subdivision
// factor MF: every patch above the horizon, ordered by increasing altitude
// band and then azimuth within the band, followed by the single zenith
// patch. The ground patch the scheme's n_bins(MF) count reserves is not
// included here; callers that need the "+1 for the ground" slot append it
// themselves, since its direction (straight down) and whether it
// participates at all is a caller policy (sky/ground/air view factors are
// computed independently, see the optical package).
type Subdivision struct {
	MF     int
	Patches []Patch
}

// NBins returns n_bins(MF): the sky-patch count the Reinhart scheme
// produces at this subdivision factor, excluding the ground patch.
func NBins(mf int) int {
	return len(NewSubdivision(mf).Patches)
}

// NewSubdivision builds the Reinhart patch set for subdivision factor mf
// (mf=1 reproduces the 145-patch Tregenza sky).
func NewSubdivision(mf int) Subdivision {
	if mf < 1 {
		mf = 1
	}
	rowDivisions := make([]int, len(rowDivisionsMF1))
	for i, n := range rowDivisionsMF1 {
		rowDivisions[i] = n * mf
	}

	nBands := len(rowDivisions)
	bandHeight := (math.Pi / 2) / (float64(nBands) + 1) // +1 reserves a full band height for the zenith cap

	var patches []Patch
	for band, nAz := range rowDivisions {
		altMid := (float64(band)+0.5)*bandHeight
		azStep := 2 * math.Pi / float64(nAz)
		solidAngle := solidAngleOfBand(float64(band)*bandHeight, float64(band+1)*bandHeight) / float64(nAz)
		for az := 0; az < nAz; az++ {
			azMid := (float64(az) + 0.5) * azStep
			patches = append(patches, Patch{
				Direction:  directionFromAltAz(altMid, azMid),
				SolidAngle: solidAngle,
			})
		}
	}

	// Zenith cap: the remaining solid angle above the topmost band.
	topAlt := float64(nBands) * bandHeight
	zenithSolidAngle := solidAngleOfBand(topAlt, math.Pi/2)
	patches = append(patches, Patch{
		Direction:  r3.Vec{X: 0, Y: 0, Z: 1},
		SolidAngle: zenithSolidAngle,
	})

	return Subdivision{MF: mf, Patches: patches}
}

// solidAngleOfBand returns the solid angle, steradians, of the hemisphere
// annulus between altitude altLo and altHi (radians above horizon),
// integrated over the full azimuth range.
func solidAngleOfBand(altLo, altHi float64) float64 {
	return 2 * math.Pi * (math.Sin(altHi) - math.Sin(altLo))
}

// directionFromAltAz converts altitude (radians above horizon) and azimuth
// (radians, 0 = north, increasing toward east) to a unit direction vector
// with Z up, Y north, X east, matching SolarPosition.Sun's convention.
func directionFromAltAz(alt, az float64) r3.Vec {
	cosAlt := math.Cos(alt)
	return r3.Vec{
		X: cosAlt * math.Sin(az),
		Y: cosAlt * math.Cos(az),
		Z: math.Sin(alt),
	}
}

// NearestPatches returns the indices of the n patches in the subdivision
// whose direction is closest (by dot product, i.e. angular proximity) to
// dir, ordered nearest-first.
func (s Subdivision) NearestPatches(dir r3.Vec, n int) []int {
	type scored struct {
		idx int
		dot float64
	}
	scores := make([]scored, len(s.Patches))
	for i, p := range s.Patches {
		scores[i] = scored{idx: i, dot: r3.Dot(dir, p.Direction)}
	}
	// Simple selection sort for the top n; sky subdivisions are at most a
	// few thousand patches and this is called once per time step.
	for i := 0; i < n && i < len(scores); i++ {
		best := i
		for j := i + 1; j < len(scores); j++ {
			if scores[j].dot > scores[best].dot {
				best = j
			}
		}
		scores[i], scores[best] = scores[best], scores[i]
	}
	if n > len(scores) {
		n = len(scores)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = scores[i].idx
	}
	return out
}
