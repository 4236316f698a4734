package optical

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spatialmodel/buildingsim/matrix"
)

// wireMatrix is the on-disk shape of a daylight-coefficient matrix: plain
// dimensions plus a flat row-major data slice, so the schema can evolve
// additively (new OpticalInfo fields are simply omitted by old readers)
// without tying the wire format to matrix.Matrix's internal layout.
type wireMatrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

func toWire(m *matrix.Matrix[matrix.Scalar]) *wireMatrix {
	if m == nil {
		return nil
	}
	data := make([]float64, len(m.Data()))
	for i, v := range m.Data() {
		data[i] = float64(v)
	}
	return &wireMatrix{Rows: m.Rows(), Cols: m.Cols(), Data: data}
}

func fromWire(w *wireMatrix) *matrix.Matrix[matrix.Scalar] {
	if w == nil {
		return nil
	}
	data := make([]matrix.Scalar, len(w.Data))
	for i, v := range w.Data {
		data[i] = matrix.Scalar(v)
	}
	return matrix.NewFromData(w.Rows, w.Cols, data, matrix.Scalar(0))
}

// document is the top-level JSON shape persisted to SolarOptions's
// optical_data_path. SchemaVersion allows a future reader to detect and
// migrate an older document; unrecognized additive fields are ignored by
// encoding/json automatically.
type document struct {
	SchemaVersion int                `json:"schema_version"`
	MF            int                `json:"mf"`
	SurfaceFrontDC *wireMatrix       `json:"surface_front_dc"`
	SurfaceBackDC  *wireMatrix       `json:"surface_back_dc"`
	FenFrontDC     *wireMatrix       `json:"fen_front_dc"`
	FenBackDC      *wireMatrix       `json:"fen_back_dc"`
	SurfaceViewFactors []FaceViewFactors `json:"surface_view_factors"`
	FenViewFactors     []FaceViewFactors `json:"fen_view_factors"`
}

const currentSchemaVersion = 1

// Load deserializes an OpticalInfo from path. The returned error wraps
// os.ErrNotExist when path does not exist, so callers can distinguish "no
// cache yet" (render fresh) from a genuine read failure.
func Load(path string) (*OpticalInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("optical: loading %s: %w", path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("optical: parsing %s: %w", path, err)
	}
	info := &OpticalInfo{
		MF:                 doc.MF,
		SurfaceFrontDC:      fromWire(doc.SurfaceFrontDC),
		SurfaceBackDC:       fromWire(doc.SurfaceBackDC),
		FenFrontDC:          fromWire(doc.FenFrontDC),
		FenBackDC:           fromWire(doc.FenBackDC),
		SurfaceViewFactors:  doc.SurfaceViewFactors,
		FenViewFactors:      doc.FenViewFactors,
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// Save serializes info to path as JSON, creating or truncating the file.
func Save(path string, info *OpticalInfo) error {
	doc := document{
		SchemaVersion:      currentSchemaVersion,
		MF:                 info.MF,
		SurfaceFrontDC:      toWire(info.SurfaceFrontDC),
		SurfaceBackDC:       toWire(info.SurfaceBackDC),
		FenFrontDC:          toWire(info.FenFrontDC),
		FenBackDC:           toWire(info.FenBackDC),
		SurfaceViewFactors:  info.SurfaceViewFactors,
		FenViewFactors:      info.FenViewFactors,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("optical: encoding optical info: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("optical: writing %s: %w", path, err)
	}
	return nil
}

// LoadOrRender returns the OpticalInfo cached at path, or calls render and
// persists its result to path if the file does not exist yet, matching
// §6's "if the file exists, deserialize exactly; otherwise compute fresh
// and write it" contract.
func LoadOrRender(path string, render func() (*OpticalInfo, error)) (*OpticalInfo, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("optical: checking %s: %w", path, err)
	}

	info, err := render()
	if err != nil {
		return nil, err
	}
	if err := Save(path, info); err != nil {
		return nil, err
	}
	return info, nil
}
