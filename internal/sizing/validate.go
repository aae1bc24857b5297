package sizing

import "fmt"

// Validation thresholds.
const (
	viscosityAlertCP       = 10.0  // centrifugal efficiency starts degrading
	viscosityImpeditiveCP  = 100.0 // centrifugal pumps ruled out
	suctionVelocityMinMS   = 0.5
	suctionVelocityMaxMS   = 3.0
	dischargeVelocityMaxMS = 5.0
	headCriticalM          = 200.0
	headImpeditiveM        = 300.0
)

// validate layers the engineering rules over an already-computed result,
// appends the selection recommendations and settles the boundary status.
// Every rule is independent and findings keep rule order. Impeditive
// findings land in Errors but never suppress the numbers: the caller
// still gets the full result to act on.
func validate(res *Result) {
	if res.ViscosityCP > viscosityAlertCP {
		res.Warnings = append(res.Warnings, Finding{
			Level:    LevelAlert,
			Category: CategoryViscosity,
			Message:  fmt.Sprintf("fluid viscosity of %.1f cP is high for a centrifugal pump", res.ViscosityCP),
			Impact:   "pump efficiency drops sharply above 10 cP",
			Actions: []string{
				"correct the pump curve for viscosity",
				"consider a positive displacement pump",
			},
		})
	}
	if res.ViscosityCP > viscosityImpeditiveCP {
		res.Errors = append(res.Errors, Finding{
			Level:    LevelImpeditive,
			Category: CategoryViscosity,
			Message:  fmt.Sprintf("fluid viscosity of %.1f cP rules out a centrifugal pump", res.ViscosityCP),
			Impact:   "a centrifugal pump cannot move this fluid efficiently",
			Actions:  []string{"use a positive displacement pump"},
		})
	}

	if res.SuctionVelocityMS < suctionVelocityMinMS {
		res.Warnings = append(res.Warnings, Finding{
			Level:    LevelAttention,
			Category: CategoryVelocity,
			Message:  fmt.Sprintf("suction velocity of %.2f m/s is below %.1f m/s", res.SuctionVelocityMS, suctionVelocityMinMS),
			Impact:   "solids may settle in the suction line",
			Actions:  []string{"reduce the suction diameter"},
		})
	}
	if res.SuctionVelocityMS > suctionVelocityMaxMS {
		res.Warnings = append(res.Warnings, Finding{
			Level:    LevelCritical,
			Category: CategoryVelocity,
			Message:  fmt.Sprintf("suction velocity of %.2f m/s exceeds %.1f m/s", res.SuctionVelocityMS, suctionVelocityMaxMS),
			Impact:   "high suction velocity favors cavitation at the impeller eye",
			Actions:  []string{"increase the suction diameter"},
		})
	}
	for _, d := range res.Destinations {
		if d.MaxVelocityMS > dischargeVelocityMaxMS {
			res.Warnings = append(res.Warnings, Finding{
				Level:    LevelAlert,
				Category: CategoryVelocity,
				Message:  fmt.Sprintf("discharge velocity of %.2f m/s at %s exceeds %.1f m/s", d.MaxVelocityMS, d.ID, dischargeVelocityMaxMS),
				Impact:   "erosion and noise in the discharge line",
				Actions:  []string{"increase the discharge diameter"},
			})
		}
	}

	if res.HmtM > headCriticalM {
		res.Warnings = append(res.Warnings, Finding{
			Level:    LevelCritical,
			Category: CategoryPressure,
			Message:  fmt.Sprintf("head of %.1f m (%.1f bar) demands high pressure components", res.HmtM, res.PressureBar),
			Impact:   "standard piping classes are not rated for this pressure",
			Actions: []string{
				"specify schedule 80 piping",
				"specify class 300 valves",
			},
		})
	}
	if res.HmtM > headImpeditiveM {
		res.Errors = append(res.Errors, Finding{
			Level:    LevelImpeditive,
			Category: CategoryPressure,
			Message:  fmt.Sprintf("head of %.1f m exceeds the single stage limit of %.0f m", res.HmtM, headImpeditiveM),
			Impact:   "one centrifugal stage cannot deliver this head reliably",
			Actions:  []string{"select a multistage pump"},
		})
	}

	for _, d := range res.Destinations {
		if !d.CavitationOK {
			res.Warnings = append(res.Warnings, Finding{
				Level:    LevelCritical,
				Category: CategoryCavitation,
				Message: fmt.Sprintf("NPSH available of %.2f m does not clear NPSH required of %.2f m plus %.2f m margin",
					d.NPSHAvailableM, res.NPSHRequiredM, res.NPSHMarginM),
				Impact: "the impeller will cavitate at the design flow",
				Actions: []string{
					"raise the suction reservoir level",
					"shorten or widen the suction line",
				},
			})
			break // one finding covers the shared suction side
		}
	}

	if n := len(res.Destinations); n > 1 {
		res.Warnings = append(res.Warnings, Finding{
			Level:    LevelMandatory,
			Category: CategorySystem,
			Message:  fmt.Sprintf("system feeds %d destinations simultaneously", n),
			Impact:   "flow follows the path of least resistance, not the design split",
			Actions: []string{
				"install balancing valves on each branch",
				"verify the flow split at commissioning",
			},
		})
	}

	res.Recommendations = append(res.Recommendations,
		fmt.Sprintf("select a pump delivering %.2f m3/h at %.2f m of head", res.FlowM3H, res.HmtM),
		"confirm the duty point on the manufacturer curve",
	)
	if len(res.Destinations) > 0 {
		npsha := res.Destinations[0].NPSHAvailableM
		res.Recommendations = append(res.Recommendations,
			fmt.Sprintf("require NPSH of at most %.2f m from the selected pump", npsha-res.NPSHMarginM))
	}

	switch {
	case len(res.Errors) > 0:
		res.Status = StatusError
	case len(res.Warnings) > 0:
		res.Status = StatusWarning
	default:
		res.Status = StatusOK
	}
}
