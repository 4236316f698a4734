package zone

import (
	"math"
	"testing"
	"time"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/state"
)

func TestAdvanceIsolatedZoneHoldsTemperature(t *testing.T) {
	got := Advance(0, 0, 1000, 21.5, 60)
	if got != 21.5 {
		t.Errorf("Advance with b=0 = %v, want 21.5 unchanged", got)
	}
}

func TestAdvanceRelaxesTowardAOverB(t *testing.T) {
	a, b, c := 2000.0, 100.0, 50000.0
	target := a / b
	got := Advance(a, b, c, 10, 1e9)
	if math.Abs(got-target) > 1e-6 {
		t.Errorf("Advance over a long dt = %v, want ~%v (A/B)", got, target)
	}
}

func TestAdvancePanicsOnNaN(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Advance with NaN inputs should panic")
		}
	}()
	Advance(math.NaN(), 1, 1000, 20, 60)
}

func TestAccumulateSurfacesSumsPerZone(t *testing.T) {
	h := state.NewHeader()
	conv1 := h.Push(state.KindSurfaceFrontConvectionCoefficient, 8)
	node1 := h.Push(state.KindSurfaceNodeTemperature, 25)
	conv2 := h.Push(state.KindSurfaceBackConvectionCoefficient, 4)
	node2 := h.Push(state.KindSurfaceNodeTemperature, 19)
	s := h.TakeValues()

	links := []SurfaceZoneLink{
		{ZoneIndex: 0, Area: 10, ConvHandle: conv1, NodeHandle: node1},
		{ZoneIndex: 0, Area: 5, ConvHandle: conv2, NodeHandle: node2},
	}
	a := make([]float64, 1)
	b := make([]float64, 1)
	AccumulateSurfaces(s, links, a, b)

	wantB := 8*10.0 + 4*5.0
	wantA := 8*10*25.0 + 4*5*19.0
	if b[0] != wantB {
		t.Errorf("b[0] = %v, want %v", b[0], wantB)
	}
	if a[0] != wantA {
		t.Errorf("a[0] = %v, want %v", a[0], wantA)
	}
}

type constHVAC struct {
	index int
	watts float64
}

func (c constHVAC) CalcCoolingHeatingPower(s *state.State) []bmodel.SpacePower {
	return []bmodel.SpacePower{{SpaceIndex: c.index, Watts: c.watts}}
}

func TestAccumulateHVACAddsPower(t *testing.T) {
	s := state.NewHeader().TakeValues()
	a := make([]float64, 2)
	AccumulateHVAC(s, []bmodel.HVAC{constHVAC{index: 1, watts: 1500}}, a)
	if a[1] != 1500 {
		t.Errorf("a[1] = %v, want 1500", a[1])
	}
	if a[0] != 0 {
		t.Errorf("a[0] = %v, want 0", a[0])
	}
}

func TestGroundTemperatureTrackerMonthlyAverage(t *testing.T) {
	g := NewGroundTemperatureTracker()
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 31; day++ {
		g.Record(jan.AddDate(0, 0, day), 5.0)
	}
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	g.Record(feb, 15.0)

	got := g.Estimate()
	if math.Abs(got-5.0) > 1e-9 {
		t.Errorf("Estimate() after rolling into February = %v, want January's average 5.0", got)
	}
}

func TestGroundTemperatureTrackerPartialFirstMonth(t *testing.T) {
	g := NewGroundTemperatureTracker()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	g.Record(now, 10)
	g.Record(now.AddDate(0, 0, 1), 20)
	got := g.Estimate()
	if math.Abs(got-15.0) > 1e-9 {
		t.Errorf("Estimate() mid-first-month = %v, want 15.0", got)
	}
}
