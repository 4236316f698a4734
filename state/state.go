// Package state implements the flat, handle-indexed state vector that every
// other subsystem reads and writes through. A StateHeader accumulates slot
// descriptors during model construction; calling TakeValues freezes it and
// produces the mutable State vector that the marching core advances.
package state

import "fmt"

// Kind categorizes a state slot. The enumeration is closed: new kinds
// require an explicit addition here, matching the teacher's convention of a
// fixed pollutant index table (see run.go's igOrg/ipOrg/... constants in the
// retrieval pack) rather than an open string tag.
type Kind int

const (
	// KindSurfaceFrontIRIrradiance is a surface's incident longwave
	// irradiance on its front face, W/m².
	KindSurfaceFrontIRIrradiance Kind = iota
	// KindSurfaceBackIRIrradiance is the same, back face.
	KindSurfaceBackIRIrradiance
	// KindSurfaceFrontSolarIrradiance is a surface's incident shortwave
	// irradiance on its front face, W/m².
	KindSurfaceFrontSolarIrradiance
	// KindSurfaceBackSolarIrradiance is the same, back face.
	KindSurfaceBackSolarIrradiance
	// KindSurfaceFrontConvectionCoefficient holds h_front, W/m²K.
	KindSurfaceFrontConvectionCoefficient
	// KindSurfaceBackConvectionCoefficient holds h_back, W/m²K.
	KindSurfaceBackConvectionCoefficient
	// KindSurfaceFrontConvectiveHeatFlow holds the front-face convective
	// heat flow, W.
	KindSurfaceFrontConvectiveHeatFlow
	// KindSurfaceBackConvectiveHeatFlow is the same, back face.
	KindSurfaceBackConvectiveHeatFlow
	// KindSurfaceNodeTemperature is one discretization node's temperature,
	// °C. A surface owns a contiguous run of these.
	KindSurfaceNodeTemperature
	// KindSpaceDryBulbTemperature is a zone's air temperature, °C.
	KindSpaceDryBulbTemperature
	// KindLuminairePower is a luminaire's instantaneous power draw, W.
	KindLuminairePower
	// KindInfiltrationVolume is a space's infiltration volumetric flow,
	// m³/s.
	KindInfiltrationVolume
	// KindInfiltrationTemperature is the infiltration air's inward
	// temperature, °C.
	KindInfiltrationTemperature
	// KindVentilationVolume is a space's ventilation volumetric flow, m³/s.
	KindVentilationVolume
	// KindVentilationTemperature is the ventilation supply temperature, °C.
	KindVentilationTemperature
)

func (k Kind) String() string {
	switch k {
	case KindSurfaceFrontIRIrradiance:
		return "surface_front_ir_irradiance"
	case KindSurfaceBackIRIrradiance:
		return "surface_back_ir_irradiance"
	case KindSurfaceFrontSolarIrradiance:
		return "surface_front_solar_irradiance"
	case KindSurfaceBackSolarIrradiance:
		return "surface_back_solar_irradiance"
	case KindSurfaceFrontConvectionCoefficient:
		return "surface_front_convection_coefficient"
	case KindSurfaceBackConvectionCoefficient:
		return "surface_back_convection_coefficient"
	case KindSurfaceFrontConvectiveHeatFlow:
		return "surface_front_convective_heat_flow"
	case KindSurfaceBackConvectiveHeatFlow:
		return "surface_back_convective_heat_flow"
	case KindSurfaceNodeTemperature:
		return "surface_node_temperature"
	case KindSpaceDryBulbTemperature:
		return "space_dry_bulb_temperature"
	case KindLuminairePower:
		return "luminaire_power"
	case KindInfiltrationVolume:
		return "infiltration_volume"
	case KindInfiltrationTemperature:
		return "infiltration_temperature"
	case KindVentilationVolume:
		return "ventilation_volume"
	case KindVentilationTemperature:
		return "ventilation_temperature"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Handle is an integer index into a State. It is assigned once, at
// construction, and is immutable thereafter.
type Handle int

type slot struct {
	kind    Kind
	initial float64
}

// Header is an ordered list of state-slot descriptors. Entities push their
// slots onto a Header during model construction; once TakeValues is called
// the Header is frozen and no further Push is permitted.
type Header struct {
	slots  []slot
	frozen bool
}

// NewHeader returns an empty, unfrozen header.
func NewHeader() *Header {
	return &Header{}
}

// Push appends a new slot of the given kind and initial value, returning the
// handle that addresses it. Panics if the header has already been frozen by
// TakeValues.
func (h *Header) Push(kind Kind, initial float64) Handle {
	if h.frozen {
		panic("state: Push called after TakeValues; header is frozen")
	}
	h.slots = append(h.slots, slot{kind: kind, initial: initial})
	return Handle(len(h.slots) - 1)
}

// Len returns the number of slots pushed so far.
func (h *Header) Len() int {
	return len(h.slots)
}

// Kind returns the kind tag of the slot at handle.
func (h *Header) Kind(handle Handle) Kind {
	return h.slots[handle].kind
}

// TakeValues consumes the header's initial values into a new State and
// freezes the header against further Push calls. It may be called exactly
// once.
func (h *Header) TakeValues() *State {
	h.frozen = true
	values := make([]float64, len(h.slots))
	for i, s := range h.slots {
		values[i] = s.initial
	}
	return &State{values: values}
}

// State is the flat, mutable vector of simulation values, indexed by
// Handle. It is created by Header.TakeValues and mutated by every marching
// step thereafter.
type State struct {
	values []float64
}

// Len returns the number of slots in the state vector.
func (s *State) Len() int {
	return len(s.values)
}

// Get returns the value at handle. In a release build an out-of-range
// handle is a programmer error and the behavior is implementation-defined;
// this implementation always bounds-checks and panics, matching the
// teacher's preference for fail-fast behavior over silent corruption.
func (s *State) Get(handle Handle) float64 {
	return s.values[handle]
}

// Set writes value at handle.
func (s *State) Set(handle Handle, value float64) {
	s.values[handle] = value
}

// Index returns a pointer to the slot at handle, for callers that want to
// mutate in place (e.g. accumulating A/B coefficients) without a
// Get-modify-Set round trip.
func (s *State) Index(handle Handle) *float64 {
	return &s.values[handle]
}
