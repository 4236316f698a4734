// Package sim assembles the per-package pieces (bmodel, sky, optical,
// construct, thermal, zone, weather) into the top-level driver of §4.8:
// SolarModel updates each face's incident solar and longwave irradiance
// once per main (hourly) time step, and ThermalModel marches surfaces,
// fenestrations, and zones forward over dt_subdivisions sub-steps within
// that same main step.
package sim

import (
	"fmt"
	"time"

	"github.com/spatialmodel/buildingsim/matrix"
	"github.com/spatialmodel/buildingsim/optical"
	"github.com/spatialmodel/buildingsim/simerr"
	"github.com/spatialmodel/buildingsim/sky"
	"github.com/spatialmodel/buildingsim/state"
	"github.com/spatialmodel/buildingsim/weather"
)

// FaceOptical bundles one face's state slots, its row in the relevant
// daylight-coefficient matrix, and its precomputed view-factor set -
// everything SolarModel.Update needs to drive optical.UpdateIncidentSolar
// and optical.UpdateLongwave for that face.
type FaceOptical struct {
	Slots       optical.FaceSlots
	DCRow       int
	ViewFactors optical.ViewFactorSet
}

// SolarModel holds the rendered OpticalInfo and sky geometry needed to
// turn one weather sample into updated per-face irradiance state once per
// main time step.
type SolarModel struct {
	Info         *optical.OpticalInfo
	Subdivision  sky.Subdivision
	Position     sky.SolarPosition
	GroundAlbedo float64
	Units        sky.Units
	AddSky       bool
	AddSun       bool

	SurfaceFront []FaceOptical
	SurfaceBack  []FaceOptical
	FenFront     []FaceOptical
	FenBack      []FaceOptical
}

// nightIrradianceThreshold is the combined direct-normal + diffuse-horizontal
// radiation, W/m², below which the sky is treated as dark: every registered
// face's solar slot is overwritten with 0 and no sky vector is assembled
// (spec §8 scenario 5), rather than averaged toward 0 over several sub-steps.
const nightIrradianceThreshold = 1e-4

// Update computes the sky vector for date/w and applies it to every
// registered face's solar and longwave irradiance slots. If w carries no
// direct or diffuse radiation, every face's solar slot is set to 0 and
// Update returns before assembling a sky vector.
func (m *SolarModel) Update(s *state.State, date time.Time, w weather.CurrentWeather) error {
	if w.DirectNormalRadiation+w.DiffuseHorizontalRadiation < nightIrradianceThreshold {
		m.zeroSolar(s)
		return nil
	}

	horizontalIR, ok := w.ResolvedHorizontalIR()
	if !ok {
		return fmt.Errorf("sim: updating solar model at %v: %w: no horizontal IR and no dew point to derive one", date, simerr.ErrBoundaryValueMissing)
	}

	wi := sky.WeatherInputs{DirectNormal: w.DirectNormalRadiation, DiffuseHorizontal: w.DiffuseHorizontalRadiation}
	skyVec := sky.GenSkyVec(m.Subdivision, m.Position, date, wi, m.GroundAlbedo, m.Units, m.AddSky, m.AddSun)

	apply := func(faces []FaceOptical, dc *matrix.Matrix[matrix.Scalar]) error {
		for _, f := range faces {
			optical.UpdateIncidentSolar(s, f.Slots, dc, f.DCRow, skyVec)
			if err := optical.UpdateLongwave(s, f.Slots, w.DryBulbTemperature, f.ViewFactors, horizontalIR); err != nil {
				return fmt.Errorf("sim: updating longwave irradiance at %v: %w", date, err)
			}
		}
		return nil
	}

	if err := apply(m.SurfaceFront, m.Info.SurfaceFrontDC); err != nil {
		return err
	}
	if err := apply(m.SurfaceBack, m.Info.SurfaceBackDC); err != nil {
		return err
	}
	if err := apply(m.FenFront, m.Info.FenFrontDC); err != nil {
		return err
	}
	if err := apply(m.FenBack, m.Info.FenBackDC); err != nil {
		return err
	}
	return nil
}

// zeroSolar overwrites every registered face's solar-irradiance slot with 0.
// Longwave slots are left untouched: the night guard only concerns §4.4.6's
// solar path, not the IR irradiance UpdateLongwave maintains independently.
func (m *SolarModel) zeroSolar(s *state.State) {
	zero := func(faces []FaceOptical) {
		for _, f := range faces {
			optical.ZeroIncidentSolar(s, f.Slots)
		}
	}
	zero(m.SurfaceFront)
	zero(m.SurfaceBack)
	zero(m.FenFront)
	zero(m.FenBack)
}
