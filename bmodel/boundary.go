// Package bmodel defines the external Model capability surface the
// marching core consumes (§6): spaces, surfaces, fenestrations,
// constructions, materials, substances, HVAC, and luminaires. The textual
// model parser, the CLI, and code-generation macros that would populate a
// concrete Model are explicitly out of this repository's scope; bmodel
// only states the interfaces and the small set of value types the core
// needs, plus an in-memory reference implementation good enough for tests.
package bmodel

import "fmt"

// Boundary is the thermal/radiative environment on one side of a surface.
// It is a closed sum type; every consumer switches over Kind rather than
// using type assertions. Go does not check such switches for
// exhaustiveness, so a new boundary kind has to be added to each switch by
// hand.
type Boundary struct {
	Kind  BoundaryKind
	Space string  // valid when Kind == BoundarySpace: the adjoining space's name
	Temp  float64 // valid when Kind == BoundaryAmbientTemperature: the fixed temperature, °C
}

// BoundaryKind enumerates the variants of Boundary.
type BoundaryKind int

const (
	// BoundaryOutdoor couples to outdoor air, wind, sky, and ground/air
	// view factors.
	BoundaryOutdoor BoundaryKind = iota
	// BoundaryAdiabatic means no heat or radiation crosses this face; the
	// reference policy (§4.6) is to treat the face's own opposite-side
	// temperature as its boundary temperature for the purpose of gathering
	// a scalar "boundary temperature", but it must never be silently
	// treated like Outdoor or Space elsewhere (§9).
	BoundaryAdiabatic
	// BoundaryGround couples to the ground; ground coupling itself is out
	// of scope (§9) and surfaces with this boundary make coupling callers
	// return simerr.ErrBoundaryUnsupported.
	BoundaryGround
	// BoundarySpace couples to another zone's air, identified by name at
	// parse time and resolved to an index at model-build time.
	BoundarySpace
	// BoundaryAmbientTemperature couples to a fixed, caller-specified
	// temperature (e.g. a ground-coupled slab approximated as constant).
	BoundaryAmbientTemperature
)

func (k BoundaryKind) String() string {
	switch k {
	case BoundaryOutdoor:
		return "outdoor"
	case BoundaryAdiabatic:
		return "adiabatic"
	case BoundaryGround:
		return "ground"
	case BoundarySpace:
		return "space"
	case BoundaryAmbientTemperature:
		return "ambient_temperature"
	default:
		return fmt.Sprintf("boundary(%d)", int(k))
	}
}

// ReceivesSun reports whether a face with this boundary receives solar
// irradiance at all (§4.4.4's boundary/sun rule): Outdoor and Space faces
// do; Ground, Adiabatic, and AmbientTemperature do not.
func (k BoundaryKind) ReceivesSun() bool {
	return k == BoundaryOutdoor || k == BoundarySpace
}
