// Package sizing implements the centrifugal pump sizing engine: total
// manometric head across reservoir level scenarios, NPSH verification,
// hydraulic power and the engineering validation rules layered on top.
package sizing

import (
	"errors"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
)

// Reservoir kinds accepted on a leg.
const (
	ReservoirOpen        = "open"
	ReservoirPressurized = "pressurized"
)

// Severity labels carried by findings, mildest first.
const (
	LevelAttention  = "ATTENTION"
	LevelAlert      = "ALERT"
	LevelCritical   = "CRITICAL"
	LevelMandatory  = "MANDATORY"
	LevelImpeditive = "IMPEDITIVE"
)

// Finding categories.
const (
	CategoryViscosity  = "viscosity"
	CategoryVelocity   = "velocity"
	CategoryPressure   = "pressure"
	CategoryCavitation = "cavitation"
	CategorySystem     = "system"
)

// Boundary statuses reported on a result.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

var (
	// ErrInvalidFlow rejects non-positive design flows.
	ErrInvalidFlow = errors.New("flow rate must be greater than zero")
	// ErrNoDestinations rejects systems without a discharge leg.
	ErrNoDestinations = errors.New("at least one destination is required")
)

// Fluid describes the pumped liquid. Zero-valued optional fields default
// to clean water at sea level.
type Fluid struct {
	DensityKgM3   float64 `json:"density_kgm3"`    // defaults to 1000
	ViscosityPaS  float64 `json:"viscosity_pas"`   // dynamic, defaults to 0.001
	TemperatureC  float64 `json:"temperature_c"`
	AtmPressurePa float64 `json:"atm_pressure_pa"` // defaults to 101325
}

// Leg is a run of pipe between a reservoir and the pump (suction) or
// between the pump and a delivery point (discharge). Levels are measured
// from the pump axis, positive upward.
type Leg struct {
	Reservoir       string               `json:"reservoir,omitempty"`         // open or pressurized
	GaugePressurePa float64              `json:"gauge_pressure_pa,omitempty"` // pressurized reservoirs only
	LevelM          float64              `json:"level_m"`
	LevelMinM       *float64             `json:"level_min_m,omitempty"` // defaults to the nominal level
	LevelMaxM       *float64             `json:"level_max_m,omitempty"`
	Segments        []hydraulics.Segment `json:"segments"`
}

// levels resolves the (minimum, nominal, maximum) reservoir levels.
func (l Leg) levels() (lo, nom, hi float64) {
	nom = l.LevelM
	lo, hi = nom, nom
	if l.LevelMinM != nil {
		lo = *l.LevelMinM
	}
	if l.LevelMaxM != nil {
		hi = *l.LevelMaxM
	}
	return lo, nom, hi
}

// absolutePressure returns the absolute pressure at the leg's reservoir
// surface in Pa.
func (l Leg) absolutePressure(f Fluid) float64 {
	if l.Reservoir == ReservoirPressurized {
		return f.AtmPressurePa + l.GaugePressurePa
	}
	return f.AtmPressurePa
}

// Destination is one discharge leg with an identifying tag.
type Destination struct {
	ID string `json:"id,omitempty"`
	Leg
}

// Input is one sizing request.
type Input struct {
	Project       string        `json:"project,omitempty"`
	Fluid         Fluid         `json:"fluid"`
	FlowM3H       float64       `json:"flow_m3h"`
	Suction       Leg           `json:"suction"`
	Destinations  []Destination `json:"destinations"`
	NPSHRequiredM float64       `json:"npsh_required_m,omitempty"` // defaults to 3.0
	NPSHMarginM   float64       `json:"npsh_margin_m,omitempty"`   // defaults to 0.5
	FrictionModel string        `json:"friction_model,omitempty"`  // iterative or explicit
}

// withDefaults returns a copy of the input with zero-valued optional
// fields resolved. The receiver is never mutated.
func (in Input) withDefaults() Input {
	if in.Fluid.DensityKgM3 <= 0 {
		in.Fluid.DensityKgM3 = 1000
	}
	if in.Fluid.ViscosityPaS <= 0 {
		in.Fluid.ViscosityPaS = 0.001
	}
	if in.Fluid.AtmPressurePa <= 0 {
		in.Fluid.AtmPressurePa = 101325
	}
	if in.NPSHRequiredM <= 0 {
		in.NPSHRequiredM = 3.0
	}
	if in.NPSHMarginM <= 0 {
		in.NPSHMarginM = 0.5
	}
	return in
}

// Finding is one validation outcome attached to a result.
type Finding struct {
	Level    string   `json:"level"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Impact   string   `json:"impact,omitempty"`
	Actions  []string `json:"actions,omitempty"`
}

// DestinationResult is the outcome for one discharge leg across the
// worst, nominal and best level scenarios.
type DestinationResult struct {
	ID             string  `json:"id"`
	HmtWorstM      float64 `json:"hmt_worst_m"`
	HmtNominalM    float64 `json:"hmt_nominal_m"`
	HmtBestM       float64 `json:"hmt_best_m"`
	FrictionLossM  float64 `json:"friction_loss_m"`
	LocalLossM     float64 `json:"local_loss_m"`
	MaxVelocityMS  float64 `json:"max_velocity_ms"`
	NPSHAvailableM float64 `json:"npsh_available_m"`
	CavitationOK   bool    `json:"cavitation_ok"`
}

// Result is the complete sizing outcome for one request. HmtM is the
// governing head: the worst case over every destination, which the pump
// must meet at the design flow.
type Result struct {
	CaseID            string              `json:"case_id,omitempty"`
	Status            string              `json:"status"`
	Project           string              `json:"project,omitempty"`
	FlowM3H           float64             `json:"flow_m3h"`
	HmtM              float64             `json:"hmt_m"`
	PressureBar       float64             `json:"pressure_bar"`
	PowerKW           float64             `json:"power_kw"`
	TemperatureC      float64             `json:"temperature_c"`
	ViscosityCP       float64             `json:"viscosity_cp"`
	VaporPressurePa   float64             `json:"vapor_pressure_pa"`
	SuctionVelocityMS float64             `json:"suction_velocity_ms"`
	SuctionFrictionM  float64             `json:"suction_friction_loss_m"`
	SuctionLocalM     float64             `json:"suction_local_loss_m"`
	NPSHRequiredM     float64             `json:"npsh_required_m"`
	NPSHMarginM       float64             `json:"npsh_margin_m"`
	Destinations      []DestinationResult `json:"destinations"`
	Warnings          []Finding           `json:"warnings"`
	Errors            []Finding           `json:"errors"`
	Recommendations   []string            `json:"recommendations"`
}

// CurvePoint is one sample of the system curve.
type CurvePoint struct {
	FlowM3H  float64 `json:"flow_m3h"`
	WorstM   float64 `json:"worst_m"`
	NominalM float64 `json:"nominal_m"`
	BestM    float64 `json:"best_m"`
}
