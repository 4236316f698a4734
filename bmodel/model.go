package bmodel

import "github.com/spatialmodel/buildingsim/state"

// FenestrationCategory distinguishes a window (thermally and radiatively
// active) from a bare opening (excluded from both, §4.4.4/§6).
type FenestrationCategory int

const (
	// Window is a glazed fenestration: thermally and radiatively processed.
	Window FenestrationCategory = iota
	// Opening is a bare hole in a surface (a door left modeled as an
	// opening, a vent): skipped entirely by the thermal and radiation
	// cores.
	Opening
)

// Space is a conditioned volume, represented as a zone in the thermal
// model.
type Space interface {
	Name() string
	Volume() float64
	// DryBulbHandle is the state slot holding this space's air temperature.
	DryBulbHandle() state.Handle
	// Infiltration returns the infiltration inward temperature (°C) and
	// volumetric flow (m³/s), and ok=false if the space has none.
	Infiltration() (tInward, volume float64, ok bool)
	// Ventilation returns the ventilation supply temperature (°C) and
	// volumetric flow (m³/s), and ok=false if the space has none.
	Ventilation() (tSupply, volume float64, ok bool)
}

// Surface is an opaque polygonal element of the envelope or an internal
// partition.
type Surface interface {
	Construction() string
	Polygon() Polygon
	Front() Boundary
	Back() Boundary
}

// Fenestration is a polygon cut from a parent surface: a window, door, or
// opening.
type Fenestration interface {
	Category() FenestrationCategory
	Construction() string
	Polygon() Polygon
	Front() Boundary
	Back() Boundary
}

// Construction is an ordered stack of material layers.
type Construction interface {
	Name() string
	MaterialNames() []string
}

// Material is one layer of a Construction: a substance at a thickness.
type Material interface {
	SubstanceName() string
	Thickness() float64
}

// SubstanceKind distinguishes a solid/mass substance from a gas cavity.
type SubstanceKind int

const (
	// Normal is an opaque solid substance with full thermal and optical
	// properties.
	Normal SubstanceKind = iota
	// Gas is a gas-filled cavity, identified by species name; its
	// resistance is looked up by species rather than computed from
	// density/conductivity.
	Gas
)

// Substance carries the physical properties of one material layer.
type Substance interface {
	Name() string
	Kind() SubstanceKind
	// The following are valid only when Kind() == Normal.
	Density() float64         // kg/m³
	SpecificHeat() float64    // J/(kg·K)
	Conductivity() float64    // W/(m·K)
	SolarAbsorptance() float64
	SolarReflectance() float64
	SolarTransmittance() float64
	IRAbsorptance() float64
	// GasSpecies is valid only when Kind() == Gas.
	GasSpecies() string
}

// HVAC is a heating/cooling element that reports, for the current state,
// the power (W, signed: positive heating, negative cooling) it delivers to
// each space it serves.
type HVAC interface {
	CalcCoolingHeatingPower(s *state.State) []SpacePower
}

// SpacePower pairs a space index with a power contribution, as returned by
// HVAC.CalcCoolingHeatingPower.
type SpacePower struct {
	SpaceIndex int
	Watts      float64
}

// Luminaire is a lighting element that draws power and emits it as heat to
// one target space.
type Luminaire interface {
	TargetSpaceIndex() int
	PowerConsumption(s *state.State) float64
}

// Model is the full capability surface the core consumes. Construction of
// a concrete Model from a textual description is out of scope (§1); Model
// is satisfied by any type exposing these accessors, including the
// in-memory reference implementation in memmodel.go used by this
// repository's own tests.
type Model interface {
	Spaces() []Space
	Surfaces() []Surface
	Fenestrations() []Fenestration
	Constructions() []Construction
	Materials() []Material
	Substances() []Substance
	HVACs() []HVAC
	Luminaires() []Luminaire

	// Construction/Substance/Material lookups by name, used when resolving
	// a Surface's Construction() name to its layer stack.
	ConstructionByName(name string) (Construction, bool)
	MaterialByName(name string) (Material, bool)
	SubstanceByName(name string) (Substance, bool)
	// SpaceIndex resolves a Boundary{Kind: BoundarySpace}'s Space name to
	// an index into Spaces(), so surfaces never hold back-pointers into
	// spaces (§9: "spaces never reference surfaces back").
	SpaceIndex(name string) (int, bool)
}
