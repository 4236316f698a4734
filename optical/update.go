package optical

import (
	"fmt"
	"math"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/matrix"
	"github.com/spatialmodel/buildingsim/simerr"
	"github.com/spatialmodel/buildingsim/state"
)

const stefanBoltzmann = 5.670374419e-8 // W/(m²K⁴)

// FaceSlots bundles the state handles and boundary one face (front or back)
// of a surface or fenestration needs for the per-step solar/longwave
// update.
type FaceSlots struct {
	SolarHandle    state.Handle
	IRHandle       state.Handle
	NodeTempHandle state.Handle // nearest discretization node on this side
	Boundary       bmodel.Boundary
}

// UpdateIncidentSolar sets s's solar-irradiance slot to max(0, row·skyVec)
// averaged with the slot's previous value, or zero if the face's boundary
// does not receive sun. rowIndex selects the face's row in dc.
func UpdateIncidentSolar(s *state.State, face FaceSlots, dc *matrix.Matrix[matrix.Scalar], rowIndex int, skyVec []float64) {
	if !face.Boundary.Kind.ReceivesSun() {
		s.Set(face.SolarHandle, 0)
		return
	}
	newValue := FrontIncidentSolar(dc, rowIndex, skyVec)
	prev := s.Get(face.SolarHandle)
	s.Set(face.SolarHandle, 0.5*(prev+newValue))
}

// ZeroIncidentSolar overwrites s's solar-irradiance slot with 0, unconditionally.
// Used for the night case (§8 scenario 5): the slot is reset outright, not
// averaged toward 0 with the previous value the way UpdateIncidentSolar
// blends a live sample.
func ZeroIncidentSolar(s *state.State, face FaceSlots) {
	s.Set(face.SolarHandle, 0)
}

// UpdateLongwave sets s's IR-irradiance slot per the boundary-kind dispatch
// in §4.4.6: Adiabatic and Ground skip the write entirely (their irradiance
// slot is left untouched); Space uses the nearest node's own temperature as
// a unit-emissivity blackbody; AmbientTemperature uses its fixed
// temperature; Outdoor combines the ground/air view factors against
// outdoor dry-bulb with the sky view factor against horizontalIR.
func UpdateLongwave(s *state.State, face FaceSlots, outdoorDryBulb float64, vf ViewFactorSet, horizontalIR float64) error {
	switch face.Boundary.Kind {
	case bmodel.BoundaryAdiabatic, bmodel.BoundaryGround:
		return nil
	case bmodel.BoundarySpace:
		t := s.Get(face.NodeTempHandle)
		s.Set(face.IRHandle, blackbody(t))
		return nil
	case bmodel.BoundaryAmbientTemperature:
		s.Set(face.IRHandle, blackbody(face.Boundary.Temp))
		return nil
	case bmodel.BoundaryOutdoor:
		ir := (vf.Ground+vf.Air)*blackbody(outdoorDryBulb) + vf.Sky*horizontalIR
		s.Set(face.IRHandle, ir)
		return nil
	default:
		return fmt.Errorf("optical: updating longwave irradiance: %w: boundary kind %s", simerr.ErrBoundaryUnsupported, face.Boundary.Kind)
	}
}

func blackbody(tempC float64) float64 {
	t := tempC + 273.15
	return stefanBoltzmann * t * t * t * t
}
