package matrix

import "math"

// Scalar is the float64 element type used for thermal systems: node
// temperatures, convection coefficients, and the n-diagonal system matrices
// built in package thermal.
type Scalar float64

// Add implements Number.
func (s Scalar) Add(o Scalar) Scalar { return s + o }

// Sub implements Number.
func (s Scalar) Sub(o Scalar) Scalar { return s - o }

// Mul implements Number.
func (s Scalar) Mul(o Scalar) Scalar { return s * o }

// Div implements Number.
func (s Scalar) Div(o Scalar) Scalar { return s / o }

// Scale implements Number.
func (s Scalar) Scale(f float64) Scalar { return Scalar(float64(s) * f) }

// SmallerThan implements Number.
func (s Scalar) SmallerThan(tol float64) bool { return math.Abs(float64(s)) < tol }

// Spectrum is an RGB-triple element type satisfying Number, distinct at the
// type level from Scalar. No package in this repository instantiates
// Matrix[Spectrum]; the daylight-coefficient matrices in package optical
// are Matrix[Scalar].
type Spectrum struct {
	R, G, B float64
}

// Add implements Number.
func (s Spectrum) Add(o Spectrum) Spectrum {
	return Spectrum{s.R + o.R, s.G + o.G, s.B + o.B}
}

// Sub implements Number.
func (s Spectrum) Sub(o Spectrum) Spectrum {
	return Spectrum{s.R - o.R, s.G - o.G, s.B - o.B}
}

// Mul implements Number as a channel-wise product.
func (s Spectrum) Mul(o Spectrum) Spectrum {
	return Spectrum{s.R * o.R, s.G * o.G, s.B * o.B}
}

// Div implements Number as a channel-wise division.
func (s Spectrum) Div(o Spectrum) Spectrum {
	return Spectrum{s.R / o.R, s.G / o.G, s.B / o.B}
}

// Scale implements Number.
func (s Spectrum) Scale(f float64) Spectrum {
	return Spectrum{s.R * f, s.G * f, s.B * f}
}

// SmallerThan implements Number; true only if every channel is below tol.
func (s Spectrum) SmallerThan(tol float64) bool {
	return math.Abs(s.R) < tol && math.Abs(s.G) < tol && math.Abs(s.B) < tol
}

// Luminance returns the CIE-weighted scalar luminance of the spectrum. No
// package in this repository calls it.
func (s Spectrum) Luminance() float64 {
	return 0.265*s.R + 0.670*s.G + 0.065*s.B
}
