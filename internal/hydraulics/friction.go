package hydraulics

import "math"

// laminarLimit is the Reynolds number up to which flow is treated as
// laminar (f = 64/Re).
const laminarLimit = 2300.0

// FrictionFactor resolves the Darcy friction factor for a segment of
// diameter d (m) at Reynolds number re. The roughness comes from the
// material table unless roughnessMM overrides it. At or below the laminar
// limit f = 64/Re; above it the configured turbulent model applies.
func (c Config) FrictionFactor(re, d float64, material string, roughnessMM float64) float64 {
	if re <= laminarLimit || d <= 0 {
		return 64.0 / math.Max(re, 1e-12)
	}
	eps := c.RoughnessM(material, roughnessMM)
	if c.Friction == FrictionExplicit {
		return swameeJain(re, d, eps)
	}
	return c.colebrook(re, d, eps)
}

// swameeJain is the explicit approximation of the Colebrook-White
// equation: f = (-2 log10(eps/(3.7 d) + 5.74/Re^0.9))^-2.
func swameeJain(re, d, eps float64) float64 {
	arg := eps/(3.7*d) + 5.74/math.Pow(re, 0.9)
	return math.Pow(-2.0*math.Log10(arg), -2.0)
}

// colebrook solves 1/sqrt(f) = -2 log10(eps/(3.7 d) + 2.51/(Re sqrt(f)))
// by fixed-point iteration from f = 0.02. Any numerically degenerate step
// or a failure to converge within the iteration cap falls back to
// Swamee-Jain.
func (c Config) colebrook(re, d, eps float64) float64 {
	f := 0.02
	for i := 0; i < c.MaxIterations; i++ {
		arg := eps/(3.7*d) + 2.51/(re*math.Sqrt(f))
		if arg <= 0 || math.IsNaN(arg) || math.IsInf(arg, 0) {
			return swameeJain(re, d, eps)
		}
		next := math.Pow(-2.0*math.Log10(arg), -2.0)
		if next <= 0 || math.IsNaN(next) || math.IsInf(next, 0) {
			return swameeJain(re, d, eps)
		}
		if math.Abs(next-f) < c.Tolerance {
			return next
		}
		f = next
	}
	return swameeJain(re, d, eps)
}
