// Package zone implements the per-sub-step zone energy balance of §4.7:
// accumulating (A, B, C) coefficients for each zone's air temperature ODE
// from HVAC, luminaire, adjoining-surface, infiltration, and ventilation
// contributions, then advancing the zone analytically over the sub-step.
package zone

import (
	"fmt"
	"math"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/state"
)

// ThermalZone is one zone's marching state: the Space it represents and
// its position in the model's space list, which is also this zone's index
// into the (A, B, C) accumulator slices.
type ThermalZone struct {
	Space bmodel.Space
	Index int
}

// CurrentTemperature returns the zone's dry-bulb temperature as currently
// recorded in state.
func (z ThermalZone) CurrentTemperature(s *state.State) float64 {
	return s.Get(z.Space.DryBulbHandle())
}

// SurfaceZoneLink is one face of a thermal surface or fenestration that
// borders a zone (a Boundary of kind Space): the zone it borders, the
// face's area, and the state handles for its convection coefficient and
// its innermost node's temperature.
type SurfaceZoneLink struct {
	ZoneIndex  int
	Area       float64
	ConvHandle state.Handle
	NodeHandle state.Handle
}

// AccumulateSurfaces adds each link's h*Area*T to a[link.ZoneIndex] and
// h*Area to b[link.ZoneIndex], per §4.7's surface term.
func AccumulateSurfaces(s *state.State, links []SurfaceZoneLink, a, b []float64) {
	for _, link := range links {
		h := s.Get(link.ConvHandle)
		t := s.Get(link.NodeHandle)
		ai := h * link.Area
		a[link.ZoneIndex] += ai * t
		b[link.ZoneIndex] += ai
	}
}

// AccumulateHVAC adds each HVAC element's per-zone heating/cooling power to
// a, per §4.7's HVAC term.
func AccumulateHVAC(s *state.State, hvacs []bmodel.HVAC, a []float64) {
	for _, h := range hvacs {
		for _, p := range h.CalcCoolingHeatingPower(s) {
			a[p.SpaceIndex] += p.Watts
		}
	}
}

// AccumulateLuminaires adds each luminaire's power consumption to its
// target zone's a, per §4.7's luminaire term.
func AccumulateLuminaires(s *state.State, luminaires []bmodel.Luminaire, a []float64) {
	for _, l := range luminaires {
		a[l.TargetSpaceIndex()] += l.PowerConsumption(s)
	}
}

// AccumulateInfiltrationVentilation adds each zone's infiltration and
// ventilation contributions to a and b, and computes its instantaneous
// capacitance into c, per §4.7.
func AccumulateInfiltrationVentilation(s *state.State, zones []ThermalZone, a, b, c []float64) {
	for _, z := range zones {
		i := z.Index
		t := z.CurrentTemperature(s)

		if tInward, v, ok := z.Space.Infiltration(); ok {
			rho := airDensity(tInward)
			cp := airSpecificHeatCapacity(tInward)
			a[i] += rho * v * cp * tInward
			b[i] += rho * v * cp
		}
		if tSupply, v, ok := z.Space.Ventilation(); ok {
			rho := airDensity(tSupply)
			cp := airSpecificHeatCapacity(tSupply)
			a[i] += rho * v * cp * tSupply
			b[i] += rho * v * cp
		}

		c[i] = airDensity(t) * z.Space.Volume() * airSpecificHeatCapacity(t)
	}
}

// stableAdvanceThreshold is the |B| floor below which a zone is treated as
// thermally isolated (its ODE has no restoring term) rather than advanced
// via the exponential solution, to avoid dividing by a near-zero B.
const stableAdvanceThreshold = 1e-9

// Advance applies the closed-form solution of §4.7,
// T(dt) = A/B + (T(0) - A/B)*exp(-B*dt/C), to one zone's (a, b, c, t0), or
// returns t0 unchanged when the zone is isolated (|b| below threshold).
// Panics if the result is NaN: that indicates a bug in (A, B, C) assembly,
// not a runtime condition a caller can recover from.
func Advance(a, b, c, t0, dt float64) float64 {
	var result float64
	if math.Abs(b) <= stableAdvanceThreshold {
		result = t0
	} else {
		aOverB := a / b
		result = aOverB + (t0-aOverB)*math.Exp(-b*dt/c)
	}
	if math.IsNaN(result) {
		panic(fmt.Sprintf("zone: Advance produced NaN: a=%v b=%v c=%v t0=%v dt=%v", a, b, c, t0, dt))
	}
	return result
}

// AdvanceAll advances every zone in place, writing each result to its
// dry-bulb-temperature state slot.
func AdvanceAll(s *state.State, zones []ThermalZone, a, b, c []float64, dt float64) {
	for _, z := range zones {
		t0 := z.CurrentTemperature(s)
		t1 := Advance(a[z.Index], b[z.Index], c[z.Index], t0, dt)
		s.Set(z.Space.DryBulbHandle(), t1)
	}
}
