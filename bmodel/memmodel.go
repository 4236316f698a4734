package bmodel

import "github.com/spatialmodel/buildingsim/state"

// MemModel is a plain in-memory Model, assembled by a caller (a parser, a
// test, a code generator) that already has every entity in hand. It does no
// validation beyond the name-lookup maps its Add methods fill as entities
// are added.
type MemModel struct {
	spaceList        []*MemSpace
	surfaceList      []*MemSurface
	fenestrationList []*MemFenestration
	constructionList []*MemConstruction
	materialList     []*MemMaterial
	substanceList    []*MemSubstance
	hvacList         []HVAC
	luminaireList    []Luminaire

	spaceIndex       map[string]int
	constructionByID map[string]*MemConstruction
	materialByID     map[string]*MemMaterial
	substanceByID    map[string]*MemSubstance
}

// NewMemModel returns an empty MemModel ready for entities to be added.
func NewMemModel() *MemModel {
	return &MemModel{
		spaceIndex:       make(map[string]int),
		constructionByID: make(map[string]*MemConstruction),
		materialByID:     make(map[string]*MemMaterial),
		substanceByID:    make(map[string]*MemSubstance),
	}
}

func (m *MemModel) AddSpace(s *MemSpace) {
	m.spaceIndex[s.name] = len(m.spaceList)
	m.spaceList = append(m.spaceList, s)
}

func (m *MemModel) AddSurface(s *MemSurface)             { m.surfaceList = append(m.surfaceList, s) }
func (m *MemModel) AddFenestration(f *MemFenestration)   { m.fenestrationList = append(m.fenestrationList, f) }
func (m *MemModel) AddHVAC(h HVAC)                       { m.hvacList = append(m.hvacList, h) }
func (m *MemModel) AddLuminaire(l Luminaire)             { m.luminaireList = append(m.luminaireList, l) }

func (m *MemModel) AddConstruction(c *MemConstruction) {
	m.constructionByID[c.name] = c
	m.constructionList = append(m.constructionList, c)
}

func (m *MemModel) AddMaterial(mat *MemMaterial) {
	m.materialByID[mat.name()] = mat
	m.materialList = append(m.materialList, mat)
}

func (m *MemModel) AddSubstance(s *MemSubstance) {
	m.substanceByID[s.name] = s
	m.substanceList = append(m.substanceList, s)
}

func (m *MemModel) Spaces() []Space {
	out := make([]Space, len(m.spaceList))
	for i, s := range m.spaceList {
		out[i] = s
	}
	return out
}

func (m *MemModel) Surfaces() []Surface {
	out := make([]Surface, len(m.surfaceList))
	for i, s := range m.surfaceList {
		out[i] = s
	}
	return out
}

func (m *MemModel) Fenestrations() []Fenestration {
	out := make([]Fenestration, len(m.fenestrationList))
	for i, f := range m.fenestrationList {
		out[i] = f
	}
	return out
}

func (m *MemModel) Constructions() []Construction {
	out := make([]Construction, len(m.constructionList))
	for i, c := range m.constructionList {
		out[i] = c
	}
	return out
}

func (m *MemModel) Materials() []Material {
	out := make([]Material, len(m.materialList))
	for i, mm := range m.materialList {
		out[i] = mm
	}
	return out
}

func (m *MemModel) Substances() []Substance {
	out := make([]Substance, len(m.substanceList))
	for i, s := range m.substanceList {
		out[i] = s
	}
	return out
}

func (m *MemModel) HVACs() []HVAC           { return m.hvacList }
func (m *MemModel) Luminaires() []Luminaire { return m.luminaireList }

func (m *MemModel) ConstructionByName(name string) (Construction, bool) {
	c, ok := m.constructionByID[name]
	return c, ok
}

func (m *MemModel) MaterialByName(name string) (Material, bool) {
	mat, ok := m.materialByID[name]
	return mat, ok
}

func (m *MemModel) SubstanceByName(name string) (Substance, bool) {
	s, ok := m.substanceByID[name]
	return s, ok
}

func (m *MemModel) SpaceIndex(name string) (int, bool) {
	idx, ok := m.spaceIndex[name]
	return idx, ok
}

// MemSpace is the in-memory Space implementation.
type MemSpace struct {
	name               string
	volume             float64
	dryBulb            state.Handle
	hasInfiltration    bool
	infilTemp, infilV  float64
	hasVentilation     bool
	ventTemp, ventV    float64
}

func NewMemSpace(name string, volume float64, dryBulb state.Handle) *MemSpace {
	return &MemSpace{name: name, volume: volume, dryBulb: dryBulb}
}

func (s *MemSpace) SetInfiltration(tInward, volume float64) {
	s.hasInfiltration = true
	s.infilTemp, s.infilV = tInward, volume
}

func (s *MemSpace) SetVentilation(tSupply, volume float64) {
	s.hasVentilation = true
	s.ventTemp, s.ventV = tSupply, volume
}

func (s *MemSpace) Name() string                 { return s.name }
func (s *MemSpace) Volume() float64              { return s.volume }
func (s *MemSpace) DryBulbHandle() state.Handle  { return s.dryBulb }

func (s *MemSpace) Infiltration() (float64, float64, bool) {
	return s.infilTemp, s.infilV, s.hasInfiltration
}

func (s *MemSpace) Ventilation() (float64, float64, bool) {
	return s.ventTemp, s.ventV, s.hasVentilation
}

// MemSurface is the in-memory Surface implementation.
type MemSurface struct {
	construction string
	polygon      Polygon
	front, back  Boundary
}

func NewMemSurface(construction string, polygon Polygon, front, back Boundary) *MemSurface {
	return &MemSurface{construction: construction, polygon: polygon, front: front, back: back}
}

func (s *MemSurface) Construction() string { return s.construction }
func (s *MemSurface) Polygon() Polygon     { return s.polygon }
func (s *MemSurface) Front() Boundary      { return s.front }
func (s *MemSurface) Back() Boundary       { return s.back }

// MemFenestration is the in-memory Fenestration implementation.
type MemFenestration struct {
	category     FenestrationCategory
	construction string
	polygon      Polygon
	front, back  Boundary
}

func NewMemFenestration(category FenestrationCategory, construction string, polygon Polygon, front, back Boundary) *MemFenestration {
	return &MemFenestration{category: category, construction: construction, polygon: polygon, front: front, back: back}
}

func (f *MemFenestration) Category() FenestrationCategory { return f.category }
func (f *MemFenestration) Construction() string           { return f.construction }
func (f *MemFenestration) Polygon() Polygon                { return f.polygon }
func (f *MemFenestration) Front() Boundary                  { return f.front }
func (f *MemFenestration) Back() Boundary                   { return f.back }

// MemConstruction is the in-memory Construction implementation: an ordered
// list of material names, outside-to-inside.
type MemConstruction struct {
	name      string
	materials []string
}

func NewMemConstruction(name string, materials []string) *MemConstruction {
	return &MemConstruction{name: name, materials: materials}
}

func (c *MemConstruction) Name() string            { return c.name }
func (c *MemConstruction) MaterialNames() []string { return c.materials }

// MemMaterial is the in-memory Material implementation.
type MemMaterial struct {
	id        string
	substance string
	thickness float64
}

func NewMemMaterial(id, substance string, thickness float64) *MemMaterial {
	return &MemMaterial{id: id, substance: substance, thickness: thickness}
}

func (m *MemMaterial) name() string          { return m.id }
func (m *MemMaterial) SubstanceName() string { return m.substance }
func (m *MemMaterial) Thickness() float64    { return m.thickness }

// MemSubstance is the in-memory Substance implementation.
type MemSubstance struct {
	name    string
	kind    SubstanceKind
	rho, cp, k float64
	solarAbs, solarRefl, solarTrans float64
	irAbs   float64
	species string
}

// NewMemNormalSubstance returns an opaque, mass substance.
func NewMemNormalSubstance(name string, rho, cp, k, solarAbs, solarRefl, solarTrans, irAbs float64) *MemSubstance {
	return &MemSubstance{
		name: name, kind: Normal,
		rho: rho, cp: cp, k: k,
		solarAbs: solarAbs, solarRefl: solarRefl, solarTrans: solarTrans,
		irAbs: irAbs,
	}
}

// NewMemGasSubstance returns a gas-cavity substance identified by species.
func NewMemGasSubstance(name, species string) *MemSubstance {
	return &MemSubstance{name: name, kind: Gas, species: species}
}

func (s *MemSubstance) Name() string                 { return s.name }
func (s *MemSubstance) Kind() SubstanceKind           { return s.kind }
func (s *MemSubstance) Density() float64              { return s.rho }
func (s *MemSubstance) SpecificHeat() float64         { return s.cp }
func (s *MemSubstance) Conductivity() float64         { return s.k }
func (s *MemSubstance) SolarAbsorptance() float64     { return s.solarAbs }
func (s *MemSubstance) SolarReflectance() float64     { return s.solarRefl }
func (s *MemSubstance) SolarTransmittance() float64   { return s.solarTrans }
func (s *MemSubstance) IRAbsorptance() float64        { return s.irAbs }
func (s *MemSubstance) GasSpecies() string            { return s.species }
