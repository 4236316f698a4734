// Package sky implements the solar-position geometry, Reinhart sky-patch
// subdivision, and Perez all-weather sky-vector generator that the optical
// daylight-coefficient pipeline is built on.
package sky

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const solarConstant = 1367.0 // W/m², extraterrestrial normal irradiance

// SolarPosition computes sun geometry for one site, following Duffie and
// Beckman's solar-engineering formulation (declination eq. 1.6.1B, equation
// of time, hour angle, sunrise/sunset bracketing).
type SolarPosition struct {
	Latitude          float64 // rad, south negative
	Longitude         float64 // rad, east negative (Radiance convention)
	StandardMeridian  float64 // rad, east negative; -15°·zone
}

// dayAngle is Duffie & Beckman's "B", in radians, for day-of-year n
// (1-indexed, fractional hours allowed).
func dayAngle(n float64) float64 {
	return (n - 1.0) * 2.0 * math.Pi / 365.0
}

// EquationOfTime returns the solar/mean-time offset, in minutes, for
// day-of-year n.
func (s SolarPosition) EquationOfTime(n float64) float64 {
	b := dayAngle(n)
	return 229.2 * (0.000075 +
		0.001868*math.Cos(b) -
		0.032077*math.Sin(b) -
		0.014615*math.Cos(2*b) -
		0.04089*math.Sin(2*b))
}

// Declination returns the solar declination, in radians, for day-of-year n.
func (s SolarPosition) Declination(n float64) float64 {
	b := dayAngle(n)
	return 0.006918 -
		0.399912*math.Cos(b) + 0.070257*math.Sin(b) -
		0.006758*math.Cos(2*b) + 0.000907*math.Sin(2*b) -
		0.002697*math.Cos(3*b) + 0.00148*math.Sin(3*b)
}

// NormalExtraterrestrialRadiation returns Gon, the normal extraterrestrial
// irradiance for day-of-year n (Duffie & Beckman eq. 1.4.1b).
func (s SolarPosition) NormalExtraterrestrialRadiation(n float64) float64 {
	b := dayAngle(n)
	return solarConstant * (1.000110 +
		0.034221*math.Cos(b) + 0.001280*math.Sin(b) +
		0.000719*math.Cos(2*b) + 0.000077*math.Sin(2*b))
}

// solarTimeFraction converts a calendar date/time to solar day-of-year
// (fractional), applying the longitude/standard-meridian and
// equation-of-time corrections.
func (s SolarPosition) solarTimeFraction(date time.Time) float64 {
	n := float64(date.YearDay()) + (float64(date.Hour())+float64(date.Minute())/60.0+float64(date.Second())/3600.0)/24.0
	deltaMinutes := 4.0*radToDeg(s.StandardMeridian-s.Longitude) + s.EquationOfTime(n)
	return n + deltaMinutes/24.0/60.0
}

func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }
func degToRad(d float64) float64 { return d * math.Pi / 180.0 }

// HourAngle returns the hour angle, in radians, for solar day-of-year n
// (eq. 1.4.2): zero at solar noon, negative in the morning.
func (s SolarPosition) HourAngle(n float64) float64 {
	solarHour := 24.0 * math.Mod(n, 1.0)
	return degToRad((solarHour - 12.0) * 15.0)
}

// SunriseSunset returns the solar-time day-of-year of sunrise and sunset for
// the day containing n (eq. 1.6.10).
func (s SolarPosition) SunriseSunset(n float64) (sunrise, sunset float64) {
	delta := s.Declination(n)
	cosW := -math.Tan(s.Latitude) * math.Tan(delta)
	cosW = math.Min(math.Max(cosW, -1), 1)
	w := radToDeg(math.Acos(cosW))
	halfN := w / 15.0

	midday := math.Floor(n) + 0.5
	return midday - halfN/24.0, midday + halfN/24.0
}

// sunVectorLimitCosZenith is the cosine-zenith threshold (≈0.8° from
// vertical) above which the sun is treated as directly overhead, avoiding a
// singular azimuth computation.
const sunVectorLimitCosZenith = 0.9999

// Sun returns the unit vector pointing toward the sun (Z up, Y north, X
// east) for the given calendar date/time, and ok=false if the sun is below
// the horizon.
func (s SolarPosition) Sun(date time.Time) (dir r3.Vec, ok bool) {
	n := s.solarTimeFraction(date)

	sunrise, sunset := s.SunriseSunset(n)
	if n < sunrise || n > sunset {
		return r3.Vec{}, false
	}

	cosPhi := math.Cos(s.Latitude)
	sinPhi := math.Sin(s.Latitude)

	delta := s.Declination(n)
	cosDelta := math.Cos(delta)
	sinDelta := math.Sin(delta)

	omega := s.HourAngle(n)
	cosOmega := math.Cos(omega)

	cosZenith := cosPhi*cosDelta*cosOmega + sinPhi*sinDelta
	if cosZenith < 0 {
		return r3.Vec{}, false
	}
	sinZenith := math.Sin(math.Acos(cosZenith))

	if cosZenith > sunVectorLimitCosZenith {
		return r3.Vec{X: 0, Y: 0, Z: 1}, true
	}

	z := cosZenith
	cosAzimuth := (cosZenith*sinPhi - sinDelta) / (sinZenith * cosPhi)
	cosAzimuth = math.Min(math.Max(cosAzimuth, -1), 1)
	sinAzimuth := math.Sin(math.Acos(cosAzimuth))

	x := sinAzimuth * sinZenith
	y := -cosAzimuth * sinZenith
	if omega > 0 {
		x *= -1
	}

	return r3.Vec{X: x, Y: y, Z: z}, true
}

// Zenith returns the solar zenith angle in radians for the given date/time,
// and ok=false if the sun is below the horizon.
func (s SolarPosition) Zenith(date time.Time) (zenith float64, ok bool) {
	dir, ok := s.Sun(date)
	if !ok {
		return 0, false
	}
	return math.Acos(math.Min(math.Max(dir.Z, -1), 1)), true
}

// AirMass returns the relative optical air mass for a given solar zenith
// angle (radians), using the Radiance-source approximation rather than the
// simpler 1/cos(zenith) form, which diverges near the horizon.
func AirMass(zenith float64) float64 {
	return 1.0 / (math.Cos(zenith) + 0.15*math.Pow(93.885-radToDeg(zenith), -1.253))
}
