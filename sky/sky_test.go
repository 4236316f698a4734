package sky

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDeclinationMatchesDuffieBeckmanTable(t *testing.T) {
	// Table 1.6.1 in Duffie & Beckman, tolerance per the original test's own
	// margin (the table does not specify a time of day).
	cases := []struct {
		month, day int
		wantDeg    float64
	}{
		{1, 17, -20.9},
		{3, 16, -2.4},
		{6, 11, 23.1},
		{9, 15, 2.2},
		{12, 10, -23.0},
	}
	pos := SolarPosition{}
	for _, c := range cases {
		date := time.Date(2026, time.Month(c.month), c.day, 0, 0, 0, 0, time.UTC)
		n := float64(date.YearDay())
		gotDeg := pos.Declination(n) * 180 / math.Pi
		if math.Abs(gotDeg-c.wantDeg) > 1.8 {
			t.Errorf("month %d day %d: declination = %.2f deg, want ~%.2f", c.month, c.day, gotDeg, c.wantDeg)
		}
	}
}

func TestSunBelowHorizonAtMidnight(t *testing.T) {
	pos := SolarPosition{Latitude: degToRad(45)}
	midnight := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	if _, ok := pos.Sun(midnight); ok {
		t.Error("expected sun below horizon at midnight")
	}
}

func TestSunAboveHorizonAtNoonEquator(t *testing.T) {
	pos := SolarPosition{Latitude: 0}
	noon := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	dir, ok := pos.Sun(noon)
	if !ok {
		t.Fatal("expected sun above horizon at solar noon near equinox on the equator")
	}
	if dir.Z < 0.9 {
		t.Errorf("expected near-zenith sun at equinox noon on the equator, got Z=%v", dir.Z)
	}
	norm := r3.Norm(dir)
	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("sun direction not unit length: %v", norm)
	}
}

func TestNBinsMF1Is145(t *testing.T) {
	if got := NBins(1); got != 145 {
		t.Errorf("NBins(1) = %d, want 145", got)
	}
}

func TestSubdivisionSolidAngleSumsToHemisphere(t *testing.T) {
	sub := NewSubdivision(1)
	var total float64
	for _, p := range sub.Patches {
		total += p.SolidAngle
		if math.Abs(r3.Norm(p.Direction)-1.0) > 1e-9 {
			t.Errorf("patch direction not unit length: %v", p.Direction)
		}
		if p.Direction.Z < -1e-9 {
			t.Errorf("patch direction below horizon: %v", p.Direction)
		}
	}
	want := 2 * math.Pi
	if math.Abs(total-want) > 1e-6 {
		t.Errorf("total solid angle = %v, want %v (2*pi steradians)", total, want)
	}
}

func TestNearestPatchesOrderedByProximity(t *testing.T) {
	sub := NewSubdivision(1)
	target := r3.Vec{X: 0, Y: 0, Z: 1} // zenith
	nearest := sub.NearestPatches(target, 3)
	if len(nearest) != 3 {
		t.Fatalf("expected 3 nearest patches, got %d", len(nearest))
	}
	prevDot := math.Inf(1)
	for _, idx := range nearest {
		dot := r3.Dot(target, sub.Patches[idx].Direction)
		if dot > prevDot {
			t.Errorf("nearest patches not sorted by decreasing proximity")
		}
		prevDot = dot
	}
}

func TestGenSkyVecConservesEnergyRoughly(t *testing.T) {
	sub := NewSubdivision(1)
	pos := SolarPosition{Latitude: degToRad(40)}
	date := time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC)
	w := WeatherInputs{DirectNormal: 800, DiffuseHorizontal: 120}

	vec := GenSkyVec(sub, pos, date, w, 0.2, Solar, true, true)
	if len(vec) != len(sub.Patches) {
		t.Fatalf("GenSkyVec length = %d, want %d", len(vec), len(sub.Patches))
	}
	var total float64
	for i, v := range vec {
		if v < 0 {
			t.Errorf("patch %d has negative radiance %v", i, v)
		}
		total += v * sub.Patches[i].SolidAngle
	}
	if total <= 0 {
		t.Error("expected nonzero total sky+sun contribution at noon on the summer solstice")
	}
}

func TestGenSkyVecZeroWhenSunDown(t *testing.T) {
	sub := NewSubdivision(1)
	pos := SolarPosition{Latitude: degToRad(60)}
	midnight := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := WeatherInputs{DirectNormal: 800, DiffuseHorizontal: 120}

	vec := GenSkyVec(sub, pos, midnight, w, 0.2, Solar, true, true)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("patch %d = %v, want 0 when sun is below the horizon", i, v)
		}
	}
}

func TestClearnessBinBoundaries(t *testing.T) {
	if got := ClearnessBin(1.0); got != 1 {
		t.Errorf("ClearnessBin(1.0) = %d, want 1", got)
	}
	if got := ClearnessBin(10.0); got != 8 {
		t.Errorf("ClearnessBin(10.0) = %d, want 8", got)
	}
}
