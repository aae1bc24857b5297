package hydraulics

import "math"

// Segment is one pipe run inside a suction or discharge leg.
type Segment struct {
	LengthM        float64 `json:"length_m"`
	DiameterM      float64 `json:"diameter_m"`
	Material       string  `json:"material"`                   // pvc, steel_new, steel_commercial, cast_iron
	RoughnessMM    float64 `json:"roughness_mm,omitempty"`     // overrides Material when > 0
	Connections    int     `json:"connections"`                // number of fittings on the run
	KPerConnection float64 `json:"k_per_connection,omitempty"` // defaults to Config.KPerConnection
}

// SegmentDetail is the resolved hydraulic state of one segment at a
// given flow.
type SegmentDetail struct {
	VelocityMS   float64 `json:"velocity_ms"`
	Reynolds     float64 `json:"reynolds"`
	Friction     float64 `json:"friction_factor"`
	DistributedM float64 `json:"distributed_loss_m"`
	LocalM       float64 `json:"local_loss_m"`
}

// LegLosses aggregates one leg at a given flow.
type LegLosses struct {
	FrictionM     float64         `json:"friction_m"` // sum of distributed losses
	LocalM        float64         `json:"local_m"`    // sum of minor losses
	MaxVelocityMS float64         `json:"max_velocity_ms"`
	Segments      []SegmentDetail `json:"segments,omitempty"`
}

// TotalM returns the leg's total head loss in m.
func (l LegLosses) TotalM() float64 {
	return l.FrictionM + l.LocalM
}

// AggregateLeg walks a leg's segments at flow q (m3/s) for a fluid of
// density rho and dynamic viscosity mu, summing distributed and local
// losses and tracking the highest segment velocity. Negative lengths and
// connection counts are treated as zero.
func (c Config) AggregateLeg(q float64, segments []Segment, rho, mu float64) LegLosses {
	var leg LegLosses
	for _, s := range segments {
		v := Velocity(q, s.DiameterM)
		re := Reynolds(rho, v, s.DiameterM, mu)
		f := c.FrictionFactor(re, s.DiameterM, s.Material, s.RoughnessMM)

		k := s.KPerConnection
		if k <= 0 {
			k = c.KPerConnection
		}
		n := float64(s.Connections)
		if n < 0 {
			n = 0
		}

		d := SegmentDetail{
			VelocityMS:   v,
			Reynolds:     re,
			Friction:     f,
			DistributedM: c.DistributedLoss(f, math.Max(s.LengthM, 0), s.DiameterM, v),
			LocalM:       c.LocalLoss(k*n, v),
		}
		leg.FrictionM += d.DistributedM
		leg.LocalM += d.LocalM
		if v > leg.MaxVelocityMS {
			leg.MaxVelocityMS = v
		}
		leg.Segments = append(leg.Segments, d)
	}
	return leg
}
