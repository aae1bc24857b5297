package sizing

import (
	"fmt"
	"math"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
)

// Engine evaluates sizing requests against a fixed configuration. It
// holds no request state; one engine serves concurrent requests.
type Engine struct {
	cfg hydraulics.Config
}

// NewEngine returns an engine applying cfg to every request.
func NewEngine(cfg hydraulics.Config) *Engine {
	return &Engine{cfg: cfg}
}

// configFor applies the request-level friction model override, if any.
func (e *Engine) configFor(in Input) hydraulics.Config {
	cfg := e.cfg
	switch m := hydraulics.FrictionModel(in.FrictionModel); m {
	case hydraulics.FrictionIterative, hydraulics.FrictionExplicit:
		cfg.Friction = m
	}
	return cfg
}

// scenarioHead computes the total manometric head in m for one
// destination at one combination of reservoir levels:
//
//	Hmt = (Pdest - Psuc)/(rho g) + (Zdest - Zsuc) + sum of leg losses
//
// A non-positive flow yields zero so the system curve anchors at the
// origin.
func scenarioHead(cfg hydraulics.Config, q float64, f Fluid, suction Leg, dest Destination, sucLevel, destLevel float64) float64 {
	if q <= 0 {
		return 0
	}
	suc := cfg.AggregateLeg(q, suction.Segments, f.DensityKgM3, f.ViscosityPaS)
	dis := cfg.AggregateLeg(q, dest.Segments, f.DensityKgM3, f.ViscosityPaS)

	dp := (dest.absolutePressure(f) - suction.absolutePressure(f)) / (f.DensityKgM3 * cfg.GravityMS2)
	dz := destLevel - sucLevel
	return dp + dz + suc.TotalM() + dis.TotalM()
}

// npshAvailable computes the available NPSH in m, read conservatively:
// the reservoir sits at its minimum level and the full suction loss plus
// the velocity head of the fastest suction segment are charged against
// the pressure head.
//
//	NPSHa = Psuc/(rho g) - Pvap/(rho g) + Zsuc - hf - v^2/(2g)
func npshAvailable(cfg hydraulics.Config, f Fluid, suction Leg, sucLevel float64, losses hydraulics.LegLosses) float64 {
	rhoG := f.DensityKgM3 * cfg.GravityMS2
	head := suction.absolutePressure(f)/rhoG - hydraulics.VaporPressure(f.TemperatureC)/rhoG
	return head + sucLevel - losses.TotalM() - cfg.VelocityHead(losses.MaxVelocityMS)
}

// Calculate runs the full sizing for one request: every destination is
// evaluated across the worst (minimum suction, maximum destination
// level), nominal and best scenarios, the governing head is the worst
// case over all destinations, and the validation rules are layered on
// the assembled result. The input is never mutated.
func (e *Engine) Calculate(in Input) (*Result, error) {
	in = in.withDefaults()
	if in.FlowM3H <= 0 {
		return nil, ErrInvalidFlow
	}
	if len(in.Destinations) == 0 {
		return nil, ErrNoDestinations
	}

	cfg := e.configFor(in)
	q := in.FlowM3H / 3600.0
	fl := in.Fluid

	sucLo, sucNom, sucHi := in.Suction.levels()
	suc := cfg.AggregateLeg(q, in.Suction.Segments, fl.DensityKgM3, fl.ViscosityPaS)
	npsha := npshAvailable(cfg, fl, in.Suction, sucLo, suc)

	res := &Result{
		Project:           in.Project,
		FlowM3H:           in.FlowM3H,
		TemperatureC:      fl.TemperatureC,
		ViscosityCP:       fl.ViscosityPaS * 1000.0,
		VaporPressurePa:   hydraulics.VaporPressure(fl.TemperatureC),
		SuctionVelocityMS: suc.MaxVelocityMS,
		SuctionFrictionM:  suc.FrictionM,
		SuctionLocalM:     suc.LocalM,
		NPSHRequiredM:     in.NPSHRequiredM,
		NPSHMarginM:       in.NPSHMarginM,
	}

	governing := math.Inf(-1)
	for i, d := range in.Destinations {
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("destination-%d", i+1)
		}
		dLo, dNom, dHi := d.levels()
		dis := cfg.AggregateLeg(q, d.Segments, fl.DensityKgM3, fl.ViscosityPaS)

		dr := DestinationResult{
			ID:             id,
			HmtWorstM:      scenarioHead(cfg, q, fl, in.Suction, d, sucLo, dHi),
			HmtNominalM:    scenarioHead(cfg, q, fl, in.Suction, d, sucNom, dNom),
			HmtBestM:       scenarioHead(cfg, q, fl, in.Suction, d, sucHi, dLo),
			FrictionLossM:  dis.FrictionM,
			LocalLossM:     dis.LocalM,
			MaxVelocityMS:  dis.MaxVelocityMS,
			NPSHAvailableM: npsha,
			CavitationOK:   npsha > in.NPSHRequiredM+in.NPSHMarginM,
		}
		if dr.HmtWorstM > governing {
			governing = dr.HmtWorstM
		}
		res.Destinations = append(res.Destinations, dr)
	}

	res.HmtM = governing
	res.PressureBar = governing * 0.0981
	res.PowerKW = fl.DensityKgM3 * cfg.GravityMS2 * q * governing / 1000.0

	validate(res)
	return res, nil
}

// Curve samples the system head curve from zero to 1.5x the design flow
// for the first declared destination, one point per scenario. Fewer than
// two samples falls back to 100.
func (e *Engine) Curve(in Input, samples int) []CurvePoint {
	in = in.withDefaults()
	if in.FlowM3H <= 0 || len(in.Destinations) == 0 {
		return nil
	}
	if samples < 2 {
		samples = 100
	}

	cfg := e.configFor(in)
	fl := in.Fluid
	sucLo, sucNom, sucHi := in.Suction.levels()
	dest := in.Destinations[0]
	dLo, dNom, dHi := dest.levels()

	maxFlow := 1.5 * in.FlowM3H
	points := make([]CurvePoint, samples)
	for i := range points {
		flow := maxFlow * float64(i) / float64(samples-1)
		q := flow / 3600.0
		points[i] = CurvePoint{
			FlowM3H:  flow,
			WorstM:   scenarioHead(cfg, q, fl, in.Suction, dest, sucLo, dHi),
			NominalM: scenarioHead(cfg, q, fl, in.Suction, dest, sucNom, dNom),
			BestM:    scenarioHead(cfg, q, fl, in.Suction, dest, sucHi, dLo),
		}
	}
	return points
}
