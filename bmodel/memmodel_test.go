package bmodel

import (
	"testing"

	"github.com/spatialmodel/buildingsim/state"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMemModelLookupsAndIndex(t *testing.T) {
	m := NewMemModel()

	h := state.NewHeader()
	zoneHandle := h.Push(state.KindSpaceDryBulbTemperature, 20.0)

	space := NewMemSpace("living_room", 50.0, zoneHandle)
	space.SetInfiltration(5.0, 0.01)
	m.AddSpace(space)

	glass := NewMemNormalSubstance("glass", 2500, 840, 1.0, 0.1, 0.1, 0.8, 0.9)
	m.AddSubstance(glass)

	pane := NewMemMaterial("pane", "glass", 0.006)
	m.AddMaterial(pane)

	win := NewMemConstruction("single_pane", []string{"pane"})
	m.AddConstruction(win)

	poly := NewPolygon([]r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
	})
	surf := NewMemSurface("single_pane", poly, Boundary{Kind: BoundaryOutdoor}, Boundary{Kind: BoundarySpace, Space: "living_room"})
	m.AddSurface(surf)

	idx, ok := m.SpaceIndex("living_room")
	if !ok || idx != 0 {
		t.Fatalf("SpaceIndex: got (%d, %v), want (0, true)", idx, ok)
	}

	c, ok := m.ConstructionByName("single_pane")
	if !ok || c.Name() != "single_pane" {
		t.Fatalf("ConstructionByName failed: %v %v", c, ok)
	}
	if got := c.MaterialNames(); len(got) != 1 || got[0] != "pane" {
		t.Fatalf("MaterialNames = %v, want [pane]", got)
	}

	mat, ok := m.MaterialByName("pane")
	if !ok || mat.SubstanceName() != "glass" || mat.Thickness() != 0.006 {
		t.Fatalf("MaterialByName failed: %v %v", mat, ok)
	}

	sub, ok := m.SubstanceByName("glass")
	if !ok || sub.Kind() != Normal || sub.Conductivity() != 1.0 {
		t.Fatalf("SubstanceByName failed: %v %v", sub, ok)
	}

	if len(m.Spaces()) != 1 || len(m.Surfaces()) != 1 {
		t.Fatalf("expected 1 space and 1 surface, got %d %d", len(m.Spaces()), len(m.Surfaces()))
	}

	tIn, vol, ok := m.Spaces()[0].Infiltration()
	if !ok || tIn != 5.0 || vol != 0.01 {
		t.Fatalf("Infiltration() = (%v, %v, %v), want (5.0, 0.01, true)", tIn, vol, ok)
	}
	if _, _, ok := m.Spaces()[0].Ventilation(); ok {
		t.Fatal("Ventilation() should report ok=false when unset")
	}

	if !surf.Back().Kind.ReceivesSun() {
		t.Error("space-facing boundary should receive sun")
	}
	if surf.Back().Space != "living_room" {
		t.Errorf("Back().Space = %q, want living_room", surf.Back().Space)
	}
}

type constHVAC struct {
	spaceIdx int
	watts    float64
}

func (c constHVAC) CalcCoolingHeatingPower(s *state.State) []SpacePower {
	return []SpacePower{{SpaceIndex: c.spaceIdx, Watts: c.watts}}
}

func TestHVACInterfaceSatisfied(t *testing.T) {
	var h HVAC = constHVAC{spaceIdx: 0, watts: 1500}
	got := h.CalcCoolingHeatingPower(nil)
	if len(got) != 1 || got[0].Watts != 1500 {
		t.Fatalf("CalcCoolingHeatingPower = %v", got)
	}
}
