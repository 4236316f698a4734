package thermal

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/construct"
	"github.com/spatialmodel/buildingsim/state"
)

func newTestSurface(h *state.Header, nodes []NodeProperties, front, back bmodel.Boundary) *ThermalSurface {
	ts := &ThermalSurface{
		FrontNormal:   r3.Vec{X: 0, Y: 0, Z: 1},
		Nodes:         nodes,
		FrontBoundary: front,
		BackBoundary:  back,
	}
	ts.NodeHandleStart = h.Push(state.KindSurfaceNodeTemperature, 20)
	for i := 1; i < len(nodes); i++ {
		h.Push(state.KindSurfaceNodeTemperature, 20)
	}
	ts.FrontConvHandle = h.Push(state.KindSurfaceFrontConvectionCoefficient, 0)
	ts.BackConvHandle = h.Push(state.KindSurfaceBackConvectionCoefficient, 0)
	ts.FrontFlowHandle = h.Push(state.KindSurfaceFrontConvectiveHeatFlow, 0)
	ts.BackFlowHandle = h.Push(state.KindSurfaceBackConvectiveHeatFlow, 0)
	return ts
}

func fixedBoundaryTemp(b bmodel.Boundary) (float64, error) {
	return b.Temp, nil
}

func TestNodesFromDiscretizationFlattensLayers(t *testing.T) {
	layers := []construct.Layer{
		{Thickness: 0.2, Conductivity: 0.8, Density: 1800, SpecificHeat: 1000},
		{Thickness: 0.05, Conductivity: 0.03, Density: 1.2, SpecificHeat: 1000},
	}
	d := construct.Discretize(layers, 3600)
	nodes := NodesFromDiscretization(layers, d)

	want := 0
	for _, ld := range d.Layers {
		want += ld.NNodes
	}
	if len(nodes) != want {
		t.Fatalf("len(nodes) = %d, want %d", len(nodes), want)
	}
	if nodes[len(nodes)-1].HasMass {
		t.Error("last node should come from the no-mass air-gap layer")
	}
}

func TestResolveBorderTempsAdiabaticUsesOppositeFace(t *testing.T) {
	h := state.NewHeader()
	ts := newTestSurface(h, []NodeProperties{
		{Conductivity: 1, Density: 2000, SpecificHeat: 900, Dx: 0.05, HasMass: true},
		{Conductivity: 1, Density: 2000, SpecificHeat: 900, Dx: 0.05, HasMass: true},
	}, bmodel.Boundary{Kind: bmodel.BoundaryAdiabatic}, bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 15})
	s := h.TakeValues()
	s.Set(ts.NodeHandle(1), 22) // back node's current temperature

	front, back, err := ResolveBorderTemps(ts, s, fixedBoundaryTemp)
	if err != nil {
		t.Fatalf("ResolveBorderTemps: %v", err)
	}
	if front != 22 {
		t.Errorf("front = %v, want 22 (back node's temperature)", front)
	}
	if back != 15 {
		t.Errorf("back = %v, want 15", back)
	}
}

func TestResolveBorderTempsBackAdiabaticUsesFront(t *testing.T) {
	h := state.NewHeader()
	ts := newTestSurface(h, []NodeProperties{
		{Conductivity: 1, Density: 2000, SpecificHeat: 900, Dx: 0.05, HasMass: true},
	}, bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 18}, bmodel.Boundary{Kind: bmodel.BoundaryAdiabatic})
	s := h.TakeValues()

	front, back, err := ResolveBorderTemps(ts, s, fixedBoundaryTemp)
	if err != nil {
		t.Fatalf("ResolveBorderTemps: %v", err)
	}
	if front != 18 || back != front {
		t.Errorf("front=%v back=%v, want both 18", front, back)
	}
}

func TestMarchConvergesBetweenBoundaryTemperatures(t *testing.T) {
	h := state.NewHeader()
	nodes := []NodeProperties{
		{Conductivity: 1.0, Density: 2000, SpecificHeat: 900, Dx: 0.05, HasMass: true},
		{Conductivity: 1.0, Density: 2000, SpecificHeat: 900, Dx: 0.05, HasMass: true},
	}
	front := bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 30}
	back := bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 10}
	ts := newTestSurface(h, nodes, front, back)
	s := h.TakeValues()

	for i := 0; i < 5000; i++ {
		if err := March(ts, s, 0, 3, 60, fixedBoundaryTemp); err != nil {
			t.Fatalf("March: %v", err)
		}
	}

	frontT := s.Get(ts.NodeHandle(0))
	backT := s.Get(ts.NodeHandle(1))
	if frontT <= backT {
		t.Errorf("front node temp %v should exceed back node temp %v at steady state", frontT, backT)
	}
	if frontT < 10 || frontT > 30 || backT < 10 || backT > 30 {
		t.Errorf("node temps (%v, %v) should stay within boundary bracket [10, 30]", frontT, backT)
	}

	frontFlow := s.Get(ts.FrontFlowHandle)
	if frontFlow >= 0 {
		t.Errorf("front convective flow = %v, want < 0 ((node - boundary)*h with the surface cooler than the hot boundary)", frontFlow)
	}
}

func TestMarchSingleNodeWall(t *testing.T) {
	h := state.NewHeader()
	nodes := []NodeProperties{
		{Conductivity: 0.03, Density: 1.2, SpecificHeat: 1000, Dx: 0.02, HasMass: false},
	}
	front := bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 25}
	back := bmodel.Boundary{Kind: bmodel.BoundaryAmbientTemperature, Temp: 25}
	ts := newTestSurface(h, nodes, front, back)
	s := h.TakeValues()

	if err := March(ts, s, 0, 2, 60, fixedBoundaryTemp); err != nil {
		t.Fatalf("March: %v", err)
	}
	got := s.Get(ts.NodeHandle(0))
	if got < 24.9 || got > 25.1 {
		t.Errorf("single no-mass node with equal boundary temps = %v, want ~25", got)
	}
}
