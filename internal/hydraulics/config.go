// Package hydraulics implements the pipe-flow primitives behind the pump
// sizing engine: water vapor pressure, flow velocity, Reynolds number,
// Darcy friction factors and Darcy-Weisbach head losses.
//
// All quantities are SI unless the name says otherwise: lengths and heads
// in m, flow in m3/s, pressure in Pa, density in kg/m3, dynamic viscosity
// in Pa.s. Functions never panic on degenerate geometry; a non-positive
// diameter or viscosity degrades to zero velocity and zero Reynolds.
package hydraulics

import "strings"

// FrictionModel selects how the turbulent friction factor is resolved.
type FrictionModel string

const (
	// FrictionIterative solves the implicit Colebrook-White equation by
	// fixed-point iteration, falling back to Swamee-Jain when the
	// iteration does not settle.
	FrictionIterative FrictionModel = "iterative"
	// FrictionExplicit uses the explicit Swamee-Jain approximation.
	FrictionExplicit FrictionModel = "explicit"
)

// Config carries the engineering constants shared by every calculation.
// A Config is immutable once built; concurrent use is safe.
type Config struct {
	GravityMS2         float64            // standard gravity, m/s2
	KPerConnection     float64            // default minor-loss K of one fitting
	DefaultRoughnessMM float64            // roughness for unknown materials, mm
	RoughnessMM        map[string]float64 // material -> absolute roughness, mm
	Friction           FrictionModel
	MaxIterations      int     // Colebrook-White iteration cap
	Tolerance          float64 // Colebrook-White convergence on successive f
}

// DefaultConfig returns the constants used in production. Material names
// are matched case-insensitively; the Portuguese aliases are kept so
// spreadsheets from the legacy front-end keep working.
func DefaultConfig() Config {
	return Config{
		GravityMS2:         9.81,
		KPerConnection:     0.5,
		DefaultRoughnessMM: 0.045,
		RoughnessMM: map[string]float64{
			"pvc":              0.0015,
			"steel_new":        0.045,
			"steel_commercial": 0.046,
			"cast_iron":        0.26,
			"aco_novo":         0.045,
			"aco_comercial":    0.046,
			"ferro_fundido":    0.26,
		},
		Friction:      FrictionIterative,
		MaxIterations: 200,
		Tolerance:     1e-8,
	}
}

// RoughnessM resolves the absolute roughness of a segment in meters.
// An explicit override beats the material table; unknown materials get
// the commercial steel default.
func (c Config) RoughnessM(material string, overrideMM float64) float64 {
	if overrideMM > 0 {
		return overrideMM / 1000.0
	}
	key := strings.ToLower(strings.TrimSpace(material))
	if mm, ok := c.RoughnessMM[key]; ok {
		return mm / 1000.0
	}
	return c.DefaultRoughnessMM / 1000.0
}
