package sky

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Units selects whether GenSkyVec returns radiance (Solar) or illuminance
// (Visible) units.
type Units int

const (
	// Solar requests a sky vector in radiance units (W/m²/sr).
	Solar Units = iota
	// Visible requests a sky vector in illuminance units (lux equivalent).
	Visible
)

// sunPatchSpread is the number of nearest patches the sun's direct
// contribution is spread across, weighted by angular proximity, rather
// than dumped entirely into the single nearest patch.
const sunPatchSpread = 3

// perezCoefficients holds one clearness bin's tabulated a,b,c,d,e
// coefficients for the Perez all-weather luminous/radiance efficacy model.
type perezCoefficients struct {
	a, b, c, d, e float64
}

// perezDiffuseCoeffs are the standard Perez (1990) diffuse-irradiance model
// coefficients, tabulated by clearness bin 1..8 (index 0..7).
var perezDiffuseCoeffs = [8]perezCoefficients{
	{1.3525, -0.2576, -0.2690, -1.4366, 0.0},
	{-1.2219, -0.7730, 1.4148, 1.1016, -0.2021},
	{-1.1000, -0.2515, 0.8952, 0.0156, 0.1500},
	{-0.5484, -0.6654, -0.2672, 0.7117, 0.2226},
	{-0.6000, -0.3566, -2.5000, 2.3250, 0.2967},
	{-1.0156, -0.3670, 1.0078, 1.4051, 0.3000},
	{-1.0000, 0.0211, 0.5025, -0.5119, 0.3000},
	{-1.0500, 0.0289, 0.4260, 0.3590, 0.3000},
}

// clearnessBinBounds are the upper bounds of ε (sky clearness) defining
// bins 1..7; values ≥ the last bound fall in bin 8.
var clearnessBinBounds = [7]float64{1.065, 1.230, 1.500, 1.950, 2.800, 4.500, 6.200}

// Clearness returns the Perez sky clearness index ε for the given diffuse
// horizontal irradiance, direct normal irradiance, and solar zenith angle
// (radians).
func Clearness(diffuseHoriz, directNormal, zenith float64) float64 {
	if diffuseHoriz <= 0 {
		return 8 // no diffuse component: ε grows without bound as diffuse→0, so return a value in the clearest bin (8)
	}
	const kappa = 1.041 // zenith angle correction cube, radians^-3
	z3 := zenith * zenith * zenith
	return ((diffuseHoriz + directNormal) / diffuseHoriz + kappa*z3) / (1 + kappa*z3)
}

// ClearnessBin maps a clearness index to a bin 1..8.
func ClearnessBin(epsilon float64) int {
	for i, bound := range clearnessBinBounds {
		if epsilon < bound {
			return i + 1
		}
	}
	return 8
}

// Brightness returns the Perez sky brightness index Δ.
func Brightness(diffuseHoriz, airMass, extraterrestrialNormal float64) float64 {
	return diffuseHoriz * airMass / extraterrestrialNormal
}

// relativeLuminance evaluates the Perez gradation function for one sky
// patch given the coefficients, the patch's zenith angle (from vertical)
// and its angle from the sun, both radians.
func relativeLuminance(c perezCoefficients, patchZenith, gamma float64) float64 {
	return (1 + c.a*math.Exp(c.b/math.Cos(patchZenith))) *
		(1 + c.c*math.Exp(c.d*gamma) + c.e*math.Cos(gamma)*math.Cos(gamma))
}

// GenSkyVec produces one sky vector for the given Reinhart subdivision and
// weather sample: one radiance (or illuminance) value per patch, in the
// same order as sub.Patches, plus the sun's contribution spread across the
// sunPatchSpread nearest patches when addSun is true and the sun is above
// the horizon. addSky controls whether the diffuse-sky term is included at
// all (a caller wanting only the direct-sun contribution passes
// addSky=false).
func GenSkyVec(sub Subdivision, pos SolarPosition, date time.Time, w WeatherInputs, groundAlbedo float64, units Units, addSky, addSun bool) []float64 {
	vec := make([]float64, len(sub.Patches))

	sunDir, sunUp := pos.Sun(date)
	if !sunUp {
		return vec
	}
	zenith, _ := pos.Zenith(date)
	n := float64(date.YearDay())
	airMass := AirMass(zenith)
	gon := pos.NormalExtraterrestrialRadiation(n)

	epsilon := Clearness(w.DiffuseHorizontal, w.DirectNormal, zenith)
	bin := ClearnessBin(epsilon) - 1 // zero-index into the coefficient table
	delta := Brightness(w.DiffuseHorizontal, airMass, gon)
	_ = delta // bin selection alone drives the gradation function here; Δ is computed but not used

	coeffs := perezDiffuseCoeffs[bin]

	if addSky && w.DiffuseHorizontal > 0 {
		var normalizer float64
		relLum := make([]float64, len(sub.Patches))
		for i, p := range sub.Patches {
			patchZenith := math.Acos(math.Min(math.Max(p.Direction.Z, -1), 1))
			gamma := math.Acos(math.Min(math.Max(r3.Dot(p.Direction, sunDir), -1), 1))
			l := relativeLuminance(coeffs, patchZenith, gamma)
			if l < 0 {
				l = 0
			}
			relLum[i] = l
			normalizer += l * p.SolidAngle
		}
		if normalizer > 0 {
			scale := w.DiffuseHorizontal / normalizer
			for i, p := range sub.Patches {
				vec[i] += relLum[i] * scale * skyUnitScale(units)
				_ = p
			}
		}
	}

	if addSun && w.DirectNormal > 0 {
		nearest := sub.NearestPatches(sunDir, sunPatchSpread)
		weights := make([]float64, len(nearest))
		var totalWeight float64
		for i, idx := range nearest {
			d := r3.Dot(sunDir, sub.Patches[idx].Direction)
			if d < 0 {
				d = 0
			}
			weights[i] = d
			totalWeight += d
		}
		directContribution := w.DirectNormal * math.Cos(zenith) * skyUnitScale(units)
		if totalWeight > 0 {
			for i, idx := range nearest {
				share := weights[i] / totalWeight
				vec[idx] += directContribution * share / sub.Patches[idx].SolidAngle
			}
		}
	}

	_ = groundAlbedo // not used: the sky vector carries no ground-reflected term
	return vec
}

// skyUnitScale converts a radiance-units contribution to the requested
// Units. The Visible conversion uses the standard 179 lm/W luminous
// efficacy constant for daylight, per common daylighting-simulation
// practice (e.g. Radiance's gendaylit).
func skyUnitScale(units Units) float64 {
	if units == Visible {
		return 179.0
	}
	return 1.0
}

// WeatherInputs is the subset of weather data GenSkyVec needs. Defined here
// rather than importing the weather package directly so sky has no
// dependency on it; callers adapt weather.CurrentWeather into this shape.
type WeatherInputs struct {
	DirectNormal      float64
	DiffuseHorizontal float64
}
