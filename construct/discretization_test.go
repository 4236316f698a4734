package construct

import (
	"math"
	"testing"
)

func TestDiscretizeNodeSpacingRespectsMax(t *testing.T) {
	layers := []Layer{
		{Thickness: 0.2, Conductivity: 0.8, Density: 1800, SpecificHeat: 1000}, // concrete, thick
	}
	d := Discretize(layers, 3600)
	ld := d.Layers[0]
	if ld.NodeDx > dxMax+1e-12 {
		t.Errorf("node spacing %v exceeds dxMax %v", ld.NodeDx, dxMax)
	}
	if ld.NNodes*1 < int(math.Ceil(0.2/dxMax)) {
		t.Errorf("NNodes = %d, too few for thickness 0.2 at dxMax %v", ld.NNodes, dxMax)
	}
	if !ld.HasMass {
		t.Error("concrete layer should be a mass layer")
	}
}

func TestDiscretizeNoMassLayerIsSingleNode(t *testing.T) {
	layers := []Layer{
		{Thickness: 0.05, Conductivity: 0.03, Density: 1.2, SpecificHeat: 1000}, // air gap, below mass threshold
	}
	d := Discretize(layers, 3600)
	if d.Layers[0].HasMass {
		t.Error("low-density layer should be classified as no-mass")
	}
	if d.Layers[0].NNodes != 1 {
		t.Errorf("no-mass layer NNodes = %d, want 1", d.Layers[0].NNodes)
	}
}

func TestDiscretizeTstepSubdivisionIsMaxAcrossLayers(t *testing.T) {
	layers := []Layer{
		{Thickness: 0.02, Conductivity: 0.8, Density: 1800, SpecificHeat: 1000}, // thin, fast
		{Thickness: 0.3, Conductivity: 1.4, Density: 2200, SpecificHeat: 900},   // thick, slow
	}
	d := Discretize(layers, 3600)
	if d.TstepSubdivision < 1 {
		t.Fatalf("TstepSubdivision = %d, want >= 1", d.TstepSubdivision)
	}
	// Verify each mass layer's own stability criterion holds under the
	// chosen global subdivision.
	innerDt := 3600.0 / float64(d.TstepSubdivision)
	for i, l := range layers {
		ld := d.Layers[i]
		if !ld.HasMass {
			continue
		}
		alpha := l.Conductivity / (l.Density * l.SpecificHeat)
		maxDt := ld.NodeDx * ld.NodeDx / (2 * alpha)
		if innerDt > maxDt+1e-9 {
			t.Errorf("layer %d: inner dt %v exceeds stability bound %v", i, innerDt, maxDt)
		}
	}
}

func TestDiscretizeSingleNodeForThinLayer(t *testing.T) {
	layers := []Layer{
		{Thickness: 0.01, Conductivity: 0.8, Density: 1800, SpecificHeat: 1000},
	}
	d := Discretize(layers, 3600)
	if d.Layers[0].NNodes != 1 {
		t.Errorf("NNodes = %d, want 1 for a layer thinner than dxMax", d.Layers[0].NNodes)
	}
}
