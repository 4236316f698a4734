package optical

import (
	"fmt"

	"github.com/spatialmodel/buildingsim/matrix"
	"github.com/spatialmodel/buildingsim/simerr"
)

// FaceViewFactors pairs a front/back ViewFactorSet for one surface or
// fenestration.
type FaceViewFactors struct {
	Front ViewFactorSet
	Back  ViewFactorSet
}

// OpticalInfo is the full set of precomputed optical data the solar model
// needs: daylight-coefficient matrices for surfaces and fenestrations (one
// row per entity, one column per sky patch) and per-entity view-factor
// sets, computed once by Monte-Carlo ray tracing and cached thereafter.
type OpticalInfo struct {
	MF int `json:"mf"`

	SurfaceFrontDC *matrix.Matrix[matrix.Scalar] `json:"-"`
	SurfaceBackDC  *matrix.Matrix[matrix.Scalar] `json:"-"`
	FenFrontDC     *matrix.Matrix[matrix.Scalar] `json:"-"`
	FenBackDC      *matrix.Matrix[matrix.Scalar] `json:"-"`

	SurfaceViewFactors []FaceViewFactors `json:"surface_view_factors"`
	FenViewFactors     []FaceViewFactors `json:"fen_view_factors"`
}

// Validate checks the shape invariants OpticalDataCorrupt guards against: no
// zero-column DC matrices and a view-factor slice length matching its DC
// matrix's row count.
func (o *OpticalInfo) Validate() error {
	matrices := []*matrix.Matrix[matrix.Scalar]{o.SurfaceFrontDC, o.SurfaceBackDC, o.FenFrontDC, o.FenBackDC}
	for _, m := range matrices {
		if m == nil {
			continue
		}
		if m.Cols() == 0 {
			return fmt.Errorf("optical: validating OpticalInfo: %w: zero columns", simerr.ErrOpticalDataCorrupt)
		}
	}
	if o.SurfaceFrontDC != nil && o.SurfaceFrontDC.Rows() != len(o.SurfaceViewFactors) {
		return fmt.Errorf("optical: validating OpticalInfo: %w: %d surface DC rows vs %d view-factor entries",
			simerr.ErrOpticalDataCorrupt, o.SurfaceFrontDC.Rows(), len(o.SurfaceViewFactors))
	}
	if o.FenFrontDC != nil && o.FenFrontDC.Rows() != len(o.FenViewFactors) {
		return fmt.Errorf("optical: validating OpticalInfo: %w: %d fenestration DC rows vs %d view-factor entries",
			simerr.ErrOpticalDataCorrupt, o.FenFrontDC.Rows(), len(o.FenViewFactors))
	}
	return nil
}

// FrontIncidentSolar returns max(0, row·skyVec) for the face at index idx
// in dc, or 0 if the face's row is all zero (a face that does not receive
// sun, per the boundary/sun rule).
func FrontIncidentSolar(dc *matrix.Matrix[matrix.Scalar], idx int, skyVec []float64) float64 {
	if dc == nil || idx >= dc.Rows() {
		return 0
	}
	var acc float64
	for c := 0; c < dc.Cols() && c < len(skyVec); c++ {
		acc += float64(dc.At(idx, c)) * skyVec[c]
	}
	if acc < 0 {
		return 0
	}
	return acc
}
