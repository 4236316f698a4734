// Package thermal implements the per-surface marching core of §4.6: border
// condition calculation (convection coefficients), n-diagonal system
// assembly and solution for node temperatures, and the post-solve writeback
// of convective heat flows into state.
package thermal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Exterior convection uses a DOE-2/ASHRAE-style wind-speed correlation,
// h = a + b*V^c, with separate coefficients for a windward face (wind
// blowing into the surface) and a leeward face (wind blowing away from
// it). §4.6 defers the specific correlation to the implementer; these are
// the constants this repository commits to.
const (
	windwardA, windwardB, windwardC = 11.58, 5.894, 1.0
	leewardA, leewardB, leewardC    = 11.58, 4.067, 1.0
)

// Interior natural-convection coefficients, still-air, ASHRAE-style: a
// vertical wall, a horizontal surface with heat flow upward (e.g. a warm
// floor below the room air), and a horizontal surface with heat flow
// downward (e.g. a warm ceiling above the room air). Orientation alone
// selects among these; the model does not track the instantaneous sign of
// the flow.
const (
	interiorVertical       = 3.076
	interiorHorizontalUp   = 4.040
	interiorHorizontalDown = 2.132
)

// horizontalThreshold is the |normal.Z| above which a surface is treated as
// horizontal rather than vertical, for the purpose of interior-coefficient
// selection.
const horizontalThreshold = 0.9

// Azimuth returns normal's compass azimuth, clockwise from north (+Y),
// matching the convention used by weather.CurrentWeather.WindDirection.
func Azimuth(normal r3.Vec) float64 {
	a := math.Atan2(normal.X, normal.Y)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ExteriorConvection returns the wind-driven film coefficient for a face
// with outward normal azimuth surfaceAzimuth, given the outdoor wind
// direction and speed (both in the same units as weather.CurrentWeather).
func ExteriorConvection(surfaceAzimuth, windDirection, windSpeed float64) float64 {
	diff := math.Mod(windDirection-surfaceAzimuth, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if math.Cos(diff) >= 0 {
		return windwardA + windwardB*math.Pow(windSpeed, windwardC)
	}
	return leewardA + leewardB*math.Pow(windSpeed, leewardC)
}

// InteriorConvection returns the still-air natural-convection film
// coefficient for a face whose outward normal is normal.
func InteriorConvection(normal r3.Vec) float64 {
	switch {
	case normal.Z > horizontalThreshold:
		return interiorHorizontalUp
	case normal.Z < -horizontalThreshold:
		return interiorHorizontalDown
	default:
		return interiorVertical
	}
}
