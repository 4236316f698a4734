package weather

import "math"

// stefanBoltzmann is σ, W/(m²K⁴).
const stefanBoltzmann = 5.670374419e-8

// DeriveHorizontalIR estimates the sky's horizontal infrared irradiance from
// dew point and dry-bulb temperature (both °C) using the Clark–Allen
// clear-sky emissivity correlation, for weather sources that do not
// measure it directly.
//
//	ε_sky = 0.787 + 0.0028·T_dew
//	IR    = ε_sky · σ · (T_dry + 273.15)⁴
func DeriveHorizontalIR(dewPoint, dryBulb float64) float64 {
	emissivity := 0.787 + 0.0028*dewPoint
	emissivity = math.Min(math.Max(emissivity, 0), 1)
	tAbs := dryBulb + 273.15
	return emissivity * stefanBoltzmann * tAbs * tAbs * tAbs * tAbs
}
