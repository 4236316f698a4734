package sim

import (
	"fmt"
	"time"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/construct"
	"github.com/spatialmodel/buildingsim/simerr"
	"github.com/spatialmodel/buildingsim/state"
	"github.com/spatialmodel/buildingsim/thermal"
	"github.com/spatialmodel/buildingsim/weather"
	"github.com/spatialmodel/buildingsim/zone"
)

// minDtSubdivisions is §4.8's stated lower bound on dt_subdivisions.
const minDtSubdivisions = 2

// stabilityBuffer is the reference implementation's factor applied to the
// maximum per-surface tstep_subdivision, "mostly for no-mass walls and
// windows" (§9's open question; this repository preserves the factor).
const stabilityBuffer = 2

// ComputeDtSubdivisions takes every thermal surface and fenestration's
// construction discretization and returns the global sub-step count and
// inner dt (seconds) per §4.8: the maximum tstep_subdivision across all of
// them, doubled, with dt = 3600/(mainStepsPerHour*dtSubdivisions).
func ComputeDtSubdivisions(discretizations []construct.Discretization, mainStepsPerHour int) (dtSubdivisions int, dt float64) {
	max := 1
	for _, d := range discretizations {
		if d.TstepSubdivision > max {
			max = d.TstepSubdivision
		}
	}
	max *= stabilityBuffer
	if max < minDtSubdivisions {
		max = minDtSubdivisions
	}
	dt = 3600.0 / (float64(mainStepsPerHour) * float64(max))
	return max, dt
}

// ThermalModel is the top-level driver of §4.8: the sub-step count and
// inner dt, and the full list of zones, surfaces, fenestrations, HVACs,
// and luminaires a call to March advances together.
type ThermalModel struct {
	DtSubdivisions int
	Dt             float64 // seconds

	Model bmodel.Model
	Zones []zone.ThermalZone

	Surfaces      []*thermal.ThermalSurface
	Fenestrations []*thermal.ThermalFenestration

	HVACs      []bmodel.HVAC
	Luminaires []bmodel.Luminaire

	// SurfaceZoneLinks and FenZoneLinks enumerate the Space-boundary faces
	// of Surfaces/Fenestrations, for the zone (A,B) surface term.
	SurfaceZoneLinks []zone.SurfaceZoneLink
	FenZoneLinks     []zone.SurfaceZoneLink
}

// ThermalModelMemory is tm's reusable per-sub-step scratch: one
// thermal.Scratch per surface/fenestration, and the zone accumulator
// slices, all sized once and zeroed (not reallocated) every sub-step.
type ThermalModelMemory struct {
	Surfaces      []*thermal.Scratch
	Fenestrations []*thermal.Scratch

	zoneA, zoneB, zoneC []float64
}

// NewThermalModelMemory allocates scratch sized for tm.
func NewThermalModelMemory(tm *ThermalModel) *ThermalModelMemory {
	mem := &ThermalModelMemory{
		Surfaces:      make([]*thermal.Scratch, len(tm.Surfaces)),
		Fenestrations: make([]*thermal.Scratch, len(tm.Fenestrations)),
		zoneA:         make([]float64, len(tm.Zones)),
		zoneB:         make([]float64, len(tm.Zones)),
		zoneC:         make([]float64, len(tm.Zones)),
	}
	for i, s := range tm.Surfaces {
		mem.Surfaces[i] = thermal.NewScratch(len(s.Nodes))
	}
	for i, s := range tm.Fenestrations {
		mem.Fenestrations[i] = thermal.NewScratch(len(s.Nodes))
	}
	return mem
}

func (mem *ThermalModelMemory) resetZoneAccumulators() {
	for i := range mem.zoneA {
		mem.zoneA[i] = 0
		mem.zoneB[i] = 0
		mem.zoneC[i] = 0
	}
}

// boundaryTemperature resolves a non-Adiabatic Boundary to a temperature
// for the current sub-step's weather sample: Outdoor against outdoor
// dry-bulb, AmbientTemperature against its fixed value, Space against the
// owning zone's current dry-bulb state slot. Ground has no implemented
// coupling (§9): it always returns ErrBoundaryUnsupported, matching the
// policy recorded on bmodel.BoundaryGround. Adiabatic is never passed
// here; thermal.ResolveBorderTemps handles it before this function is
// consulted.
func (tm *ThermalModel) boundaryTemperature(s *state.State, cur weather.CurrentWeather) func(bmodel.Boundary) (float64, error) {
	return func(b bmodel.Boundary) (float64, error) {
		switch b.Kind {
		case bmodel.BoundaryOutdoor:
			return cur.DryBulbTemperature, nil
		case bmodel.BoundaryAmbientTemperature:
			return b.Temp, nil
		case bmodel.BoundarySpace:
			idx, ok := tm.Model.SpaceIndex(b.Space)
			if !ok {
				return 0, fmt.Errorf("sim: resolving space boundary: %w: unknown space %q", simerr.ErrBoundaryValueMissing, b.Space)
			}
			return s.Get(tm.Zones[idx].Space.DryBulbHandle()), nil
		case bmodel.BoundaryGround:
			return 0, fmt.Errorf("sim: resolving ground boundary: %w", simerr.ErrBoundaryUnsupported)
		default:
			return 0, fmt.Errorf("sim: resolving boundary: %w: kind %s", simerr.ErrBoundaryUnsupported, b.Kind)
		}
	}
}

// March advances the model by tm.DtSubdivisions sub-steps starting just
// after date, per §4.8's pseudocode: update solar/longwave irradiance once
// for the main step (if solar is non-nil), then for each sub-step advance
// the clock, fetch weather, march every surface and fenestration, assemble
// each zone's (A,B,C), and analytically advance the zone temperatures.
// Returns the date reached after the last sub-step.
func (tm *ThermalModel) March(date time.Time, w weather.Weather, solar *SolarModel, s *state.State, mem *ThermalModelMemory) (time.Time, error) {
	step := time.Duration(tm.Dt * float64(time.Second))

	if solar != nil {
		mainStepWeather, err := w.GetWeatherData(date)
		if err != nil {
			return date, fmt.Errorf("sim: marching: fetching weather at %v: %w", date, err)
		}
		if err := solar.Update(s, date, mainStepWeather); err != nil {
			return date, err
		}
	}

	for k := 0; k < tm.DtSubdivisions; k++ {
		date = date.Add(step)

		cur, err := w.GetWeatherData(date)
		if err != nil {
			return date, fmt.Errorf("sim: marching: fetching weather at %v: %w", date, err)
		}

		boundaryTemp := tm.boundaryTemperature(s, cur)

		for i, surf := range tm.Surfaces {
			if err := thermal.MarchWithScratch(surf, s, cur.WindDirection, cur.WindSpeed, tm.Dt, boundaryTemp, mem.Surfaces[i]); err != nil {
				return date, fmt.Errorf("sim: marching surface %d: %w", i, err)
			}
		}
		for i, fen := range tm.Fenestrations {
			if err := thermal.MarchWithScratch(fen, s, cur.WindDirection, cur.WindSpeed, tm.Dt, boundaryTemp, mem.Fenestrations[i]); err != nil {
				return date, fmt.Errorf("sim: marching fenestration %d: %w", i, err)
			}
		}

		mem.resetZoneAccumulators()
		zone.AccumulateHVAC(s, tm.HVACs, mem.zoneA)
		zone.AccumulateLuminaires(s, tm.Luminaires, mem.zoneA)
		zone.AccumulateSurfaces(s, tm.SurfaceZoneLinks, mem.zoneA, mem.zoneB)
		zone.AccumulateSurfaces(s, tm.FenZoneLinks, mem.zoneA, mem.zoneB)
		zone.AccumulateInfiltrationVentilation(s, tm.Zones, mem.zoneA, mem.zoneB, mem.zoneC)
		zone.AdvanceAll(s, tm.Zones, mem.zoneA, mem.zoneB, mem.zoneC, tm.Dt)
	}

	return date, nil
}
