package sim

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/construct"
	"github.com/spatialmodel/buildingsim/optical"
	"github.com/spatialmodel/buildingsim/state"
	"github.com/spatialmodel/buildingsim/thermal"
	"github.com/spatialmodel/buildingsim/weather"
	"github.com/spatialmodel/buildingsim/zone"
)

type constantWeather struct {
	w weather.CurrentWeather
}

func (c constantWeather) GetWeatherData(date time.Time) (weather.CurrentWeather, error) {
	return c.w, nil
}

func buildSingleZoneModel(h *state.Header) (*ThermalModel, *bmodel.MemModel) {
	model := bmodel.NewMemModel()

	dryBulb := h.Push(state.KindSpaceDryBulbTemperature, 20)
	space := bmodel.NewMemSpace("living_room", 50, dryBulb)
	model.AddSpace(space)

	nodes := []thermal.NodeProperties{
		{Conductivity: 0.8, Density: 1800, SpecificHeat: 1000, Dx: 0.05, HasMass: true},
		{Conductivity: 0.8, Density: 1800, SpecificHeat: 1000, Dx: 0.05, HasMass: true},
	}
	ts := &thermal.ThermalSurface{
		Area:          12,
		FrontNormal:   r3.Vec{X: 0, Y: 1, Z: 0},
		Nodes:         nodes,
		FrontBoundary: bmodel.Boundary{Kind: bmodel.BoundaryOutdoor},
		BackBoundary:  bmodel.Boundary{Kind: bmodel.BoundarySpace, Space: "living_room"},
	}
	ts.NodeHandleStart = h.Push(state.KindSurfaceNodeTemperature, 20)
	h.Push(state.KindSurfaceNodeTemperature, 20)
	ts.FrontConvHandle = h.Push(state.KindSurfaceFrontConvectionCoefficient, 0)
	ts.BackConvHandle = h.Push(state.KindSurfaceBackConvectionCoefficient, 0)
	ts.FrontFlowHandle = h.Push(state.KindSurfaceFrontConvectiveHeatFlow, 0)
	ts.BackFlowHandle = h.Push(state.KindSurfaceBackConvectiveHeatFlow, 0)

	tm := &ThermalModel{
		DtSubdivisions: 4,
		Dt:             900, // 15 min
		Model:          model,
		Zones:          []zone.ThermalZone{{Space: space, Index: 0}},
		Surfaces:       []*thermal.ThermalSurface{ts},
		SurfaceZoneLinks: []zone.SurfaceZoneLink{
			{ZoneIndex: 0, Area: ts.Area, ConvHandle: ts.BackConvHandle, NodeHandle: ts.NodeHandle(len(ts.Nodes) - 1)},
		},
	}
	return tm, model
}

func TestThermalModelMarchProducesFiniteZoneTemperature(t *testing.T) {
	h := state.NewHeader()
	tm, _ := buildSingleZoneModel(h)
	s := h.TakeValues()
	mem := NewThermalModelMemory(tm)

	w := constantWeather{w: weather.CurrentWeather{
		DryBulbTemperature:         5,
		WindSpeed:                  3,
		WindDirection:              0,
		DirectNormalRadiation:      0,
		DiffuseHorizontalRadiation: 0,
	}}

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	newDate, err := tm.March(date, w, nil, s, mem)
	if err != nil {
		t.Fatalf("March: %v", err)
	}
	wantDate := date.Add(4 * 15 * time.Minute)
	if !newDate.Equal(wantDate) {
		t.Errorf("date after March = %v, want %v", newDate, wantDate)
	}

	zoneTemp := s.Get(tm.Zones[0].Space.DryBulbHandle())
	if math.IsNaN(zoneTemp) {
		t.Fatal("zone temperature is NaN")
	}
	if zoneTemp >= 20 {
		t.Errorf("zone temperature = %v, want < 20 (cold outdoor boundary should cool it)", zoneTemp)
	}
}

func TestThermalModelMarchRepeatedStepsStayFinite(t *testing.T) {
	h := state.NewHeader()
	tm, _ := buildSingleZoneModel(h)
	s := h.TakeValues()
	mem := NewThermalModelMemory(tm)

	w := constantWeather{w: weather.CurrentWeather{DryBulbTemperature: 2, WindSpeed: 4, WindDirection: 1.0}}
	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	var err error
	for i := 0; i < 20; i++ {
		date, err = tm.March(date, w, nil, s, mem)
		if err != nil {
			t.Fatalf("March iteration %d: %v", i, err)
		}
	}

	zoneTemp := s.Get(tm.Zones[0].Space.DryBulbHandle())
	if math.IsNaN(zoneTemp) || math.IsInf(zoneTemp, 0) {
		t.Fatalf("zone temperature diverged: %v", zoneTemp)
	}
}

func TestComputeDtSubdivisionsDoublesMax(t *testing.T) {
	discs := []construct.Discretization{
		{TstepSubdivision: 1},
		{TstepSubdivision: 3},
		{TstepSubdivision: 2},
	}
	dtSubdivisions, dt := ComputeDtSubdivisions(discs, 1)
	if dtSubdivisions != 6 {
		t.Errorf("dtSubdivisions = %d, want 6 (max 3, doubled)", dtSubdivisions)
	}
	wantDt := 3600.0 / (1.0 * 6.0)
	if dt != wantDt {
		t.Errorf("dt = %v, want %v", dt, wantDt)
	}
}

func TestSolarModelUpdateZeroesSolarSlotsAtNight(t *testing.T) {
	h := state.NewHeader()
	frontSolar := h.Push(state.KindSurfaceFrontSolarIrradiance, 500) // leftover daytime value
	frontIR := h.Push(state.KindSurfaceFrontIRIrradiance, 0)
	backSolar := h.Push(state.KindSurfaceBackSolarIrradiance, 300)
	backIR := h.Push(state.KindSurfaceBackIRIrradiance, 0)
	s := h.TakeValues()

	solar := &SolarModel{
		SurfaceFront: []FaceOptical{{Slots: optical.FaceSlots{
			SolarHandle: frontSolar,
			IRHandle:    frontIR,
			Boundary:    bmodel.Boundary{Kind: bmodel.BoundaryOutdoor},
		}}},
		SurfaceBack: []FaceOptical{{Slots: optical.FaceSlots{
			SolarHandle: backSolar,
			IRHandle:    backIR,
			Boundary:    bmodel.Boundary{Kind: bmodel.BoundaryOutdoor},
		}}},
	}

	w := weather.CurrentWeather{DryBulbTemperature: 5, DirectNormalRadiation: 0, DiffuseHorizontalRadiation: 0}
	date := time.Date(2026, time.January, 15, 22, 0, 0, 0, time.UTC)

	if err := solar.Update(s, date, w); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := s.Get(frontSolar); got != 0 {
		t.Errorf("front solar slot = %v, want exactly 0", got)
	}
	if got := s.Get(backSolar); got != 0 {
		t.Errorf("back solar slot = %v, want exactly 0", got)
	}
}

func TestComputeDtSubdivisionsEnforcesMinimum(t *testing.T) {
	discs := []construct.Discretization{{TstepSubdivision: 1}}
	dtSubdivisions, _ := ComputeDtSubdivisions(discs, 4)
	if dtSubdivisions != minDtSubdivisions {
		t.Errorf("dtSubdivisions = %d, want minimum %d", dtSubdivisions, minDtSubdivisions)
	}
}
