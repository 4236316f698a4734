package thermal

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/spatialmodel/buildingsim/bmodel"
	"github.com/spatialmodel/buildingsim/construct"
	"github.com/spatialmodel/buildingsim/matrix"
	"github.com/spatialmodel/buildingsim/state"
)

// NodeProperties is one discretization node's material properties and
// spacing, flattened from a construction's ordered layers.
type NodeProperties struct {
	Conductivity float64
	Density      float64
	SpecificHeat float64
	Dx           float64
	HasMass      bool
}

// NodesFromDiscretization flattens a construction's layers and their
// §4.5 discretization into a front-to-back slice of per-node properties.
func NodesFromDiscretization(layers []construct.Layer, d construct.Discretization) []NodeProperties {
	var nodes []NodeProperties
	for i, l := range layers {
		ld := d.Layers[i]
		for n := 0; n < ld.NNodes; n++ {
			nodes = append(nodes, NodeProperties{
				Conductivity: l.Conductivity,
				Density:      l.Density,
				SpecificHeat: l.SpecificHeat,
				Dx:           ld.NodeDx,
				HasMass:      ld.HasMass,
			})
		}
	}
	return nodes
}

// ThermalSurface is one opaque surface's (or, via ThermalFenestration,
// transparent element's) marching state: its flattened node properties,
// the contiguous state-handle range backing their temperatures, and the
// handles for the four face quantities §4.6 writes back each sub-step.
type ThermalSurface struct {
	Area        float64
	FrontNormal r3.Vec
	Nodes       []NodeProperties

	NodeHandleStart state.Handle
	FrontConvHandle state.Handle
	BackConvHandle  state.Handle
	FrontFlowHandle state.Handle
	BackFlowHandle  state.Handle

	FrontBoundary bmodel.Boundary
	BackBoundary  bmodel.Boundary
}

// ThermalFenestration carries the same marching state as ThermalSurface;
// §6 distinguishes the two only by the Model-level category (Opening
// fenestrations are excluded upstream, before a ThermalFenestration is
// ever constructed for them).
type ThermalFenestration = ThermalSurface

// NodeHandle returns the state handle for node i (0 = front-most).
func (ts *ThermalSurface) NodeHandle(i int) state.Handle {
	return ts.NodeHandleStart + state.Handle(i)
}

// nodeHalfResistance returns the node's own conductive resistance, per
// unit area, on one side of its center: half its thickness over
// conductivity for a mass node (it sits between two neighbors, so only
// half its resistance belongs to each interface), or its full thickness
// over conductivity for a no-mass node (a pure resistance with no
// meaningful "center").
func nodeHalfResistance(n NodeProperties) float64 {
	if n.HasMass {
		return (n.Dx / 2) / n.Conductivity
	}
	return n.Dx / n.Conductivity
}

func nodeCapacitance(n NodeProperties) float64 {
	if !n.HasMass {
		return 0
	}
	return n.Density * n.SpecificHeat * n.Dx
}

// ResolveBorderTemps applies the boundary-temperature lookup to both
// faces, with the adiabatic policy of §4.6: an Adiabatic front boundary
// uses the back face's current node temperature, and an Adiabatic back
// boundary uses the (just-resolved) front boundary temperature.
// boundaryTemp is not consulted for Adiabatic boundaries.
func ResolveBorderTemps(ts *ThermalSurface, s *state.State, boundaryTemp func(bmodel.Boundary) (float64, error)) (front, back float64, err error) {
	if ts.FrontBoundary.Kind == bmodel.BoundaryAdiabatic {
		front = s.Get(ts.NodeHandle(len(ts.Nodes) - 1))
	} else {
		front, err = boundaryTemp(ts.FrontBoundary)
		if err != nil {
			return 0, 0, fmt.Errorf("thermal: resolving front boundary temperature: %w", err)
		}
	}

	if ts.BackBoundary.Kind == bmodel.BoundaryAdiabatic {
		back = front
	} else {
		back, err = boundaryTemp(ts.BackBoundary)
		if err != nil {
			return 0, 0, fmt.Errorf("thermal: resolving back boundary temperature: %w", err)
		}
	}
	return front, back, nil
}

// faceConvection picks the exterior wind-driven correlation for an
// Outdoor-facing face and the interior natural-convection correlation
// otherwise.
func faceConvection(b bmodel.Boundary, normal r3.Vec, windDirection, windSpeed float64) float64 {
	if b.Kind == bmodel.BoundaryOutdoor {
		return ExteriorConvection(Azimuth(normal), windDirection, windSpeed)
	}
	return InteriorConvection(normal)
}

// Scratch is one surface's reusable system-assembly buffers: the n-diagonal
// matrix and right-hand-side column, sized once for ts.Nodes and mutated in
// place every sub-step thereafter, per §4.8's "alloc holds per-surface
// scratch so no heap work happens inside the step."
type Scratch struct {
	A *matrix.Matrix[matrix.Scalar]
	B *matrix.Matrix[matrix.Scalar]
}

// NewScratch allocates a Scratch sized for a surface with nNodes nodes.
func NewScratch(nNodes int) *Scratch {
	return &Scratch{
		A: matrix.New[matrix.Scalar](nNodes, nNodes, 0),
		B: matrix.New[matrix.Scalar](nNodes, 1, 0),
	}
}

// AssembleSystemInto fills a and b with the implicit (backward-Euler)
// tridiagonal system for ts's node temperatures over one sub-step of
// length dt, given the resolved front/back film coefficients and boundary
// temperatures. Row i of a is node i's energy balance; row i of b is its
// right-hand side, the explicit (start-of-substep) accumulation term.
// a and b must already be sized len(ts.Nodes) x len(ts.Nodes) and
// len(ts.Nodes) x 1; every entry a tridiagonal assembly can touch is
// overwritten on every call, so the same buffers may be reused without
// re-zeroing.
func AssembleSystemInto(ts *ThermalSurface, s *state.State, frontH, backH, frontT, backT, dt float64, a, b *matrix.Matrix[matrix.Scalar]) {
	n := len(ts.Nodes)

	for i, nd := range ts.Nodes {
		c := nodeCapacitance(nd)
		diag := c / dt
		rhs := c / dt * s.Get(ts.NodeHandle(i))
		halfR := nodeHalfResistance(nd)

		if i > 0 {
			g := 1 / (nodeHalfResistance(ts.Nodes[i-1]) + halfR)
			diag += g
			a.Set(i, i-1, matrix.Scalar(-g))
		}
		if i < n-1 {
			g := 1 / (halfR + nodeHalfResistance(ts.Nodes[i+1]))
			diag += g
			a.Set(i, i+1, matrix.Scalar(-g))
		}
		if i == 0 {
			diag += frontH
			rhs += frontH * frontT
		}
		if i == n-1 {
			diag += backH
			rhs += backH * backT
		}

		a.Set(i, i, matrix.Scalar(diag))
		b.Set(i, 0, matrix.Scalar(rhs))
	}
}

// AssembleSystem is AssembleSystemInto for a caller with no scratch to
// reuse (tests, one-off use); it allocates fresh matrices each call.
func AssembleSystem(ts *ThermalSurface, s *state.State, frontH, backH, frontT, backT, dt float64) (*matrix.Matrix[matrix.Scalar], *matrix.Matrix[matrix.Scalar]) {
	n := len(ts.Nodes)
	a := matrix.New[matrix.Scalar](n, n, 0)
	b := matrix.New[matrix.Scalar](n, 1, 0)
	AssembleSystemInto(ts, s, frontH, backH, frontT, backT, dt, a, b)
	return a, b
}

// bandwidth returns the n-diagonal bandwidth for an n-node surface: 1 (a
// plain diagonal solve) for a single node, 3 (tridiagonal) otherwise.
func bandwidth(n int) int {
	if n <= 1 {
		return 1
	}
	return 3
}

// MarchWithScratch is March using pre-sized scratch buffers instead of
// allocating a system matrix every call; scratch must have been built with
// NewScratch(len(ts.Nodes)).
func MarchWithScratch(ts *ThermalSurface, s *state.State, windDirection, windSpeed, dt float64, boundaryTemp func(bmodel.Boundary) (float64, error), scratch *Scratch) error {
	front, back, err := ResolveBorderTemps(ts, s, boundaryTemp)
	if err != nil {
		return err
	}

	backNormal := r3.Vec{X: -ts.FrontNormal.X, Y: -ts.FrontNormal.Y, Z: -ts.FrontNormal.Z}
	hFront := faceConvection(ts.FrontBoundary, ts.FrontNormal, windDirection, windSpeed)
	hBack := faceConvection(ts.BackBoundary, backNormal, windDirection, windSpeed)

	AssembleSystemInto(ts, s, hFront, hBack, front, back, dt, scratch.A, scratch.B)
	n := len(ts.Nodes)
	if err := matrix.SolveNDiag(scratch.A, scratch.B, bandwidth(n)); err != nil {
		return fmt.Errorf("thermal: marching surface: %w", err)
	}

	for i := 0; i < n; i++ {
		s.Set(ts.NodeHandle(i), float64(scratch.B.At(i, 0)))
	}

	frontNodeT := float64(scratch.B.At(0, 0))
	backNodeT := float64(scratch.B.At(n-1, 0))

	s.Set(ts.FrontConvHandle, hFront)
	s.Set(ts.BackConvHandle, hBack)
	s.Set(ts.FrontFlowHandle, (frontNodeT-front)*hFront)
	s.Set(ts.BackFlowHandle, (backNodeT-back)*hBack)

	return nil
}

// March advances ts's node temperatures by one sub-step of length dt and
// writes back both faces' convection coefficients and convective heat
// flows, per §4.6 steps 1-4. windDirection and windSpeed are the current
// sub-step's outdoor wind; boundaryTemp resolves a non-Adiabatic Boundary
// to a temperature (Outdoor against weather dry-bulb, Space against the
// owning zone's dry-bulb slot, AmbientTemperature against its fixed
// value; for Ground, the sim driver's resolver returns
// simerr.ErrBoundaryUnsupported, which March passes on). It allocates a
// fresh Scratch each call; callers marching many surfaces repeatedly
// should use MarchWithScratch with a Scratch built once per surface.
func March(ts *ThermalSurface, s *state.State, windDirection, windSpeed, dt float64, boundaryTemp func(bmodel.Boundary) (float64, error)) error {
	return MarchWithScratch(ts, s, windDirection, windSpeed, dt, boundaryTemp, NewScratch(len(ts.Nodes)))
}
