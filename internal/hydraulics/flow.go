package hydraulics

import "math"

// Velocity returns the mean flow velocity in m/s for a flow q (m3/s)
// through a circular section of diameter d (m). A non-positive diameter
// yields zero.
func Velocity(q, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return q / (math.Pi * d * d / 4.0)
}

// Reynolds returns the Reynolds number rho*v*d/mu. A non-positive
// viscosity yields zero.
func Reynolds(rho, v, d, mu float64) float64 {
	if mu <= 0 {
		return 0
	}
	return rho * v * d / mu
}

// DistributedLoss returns the Darcy-Weisbach head loss f*(L/d)*v^2/(2g)
// in m over a pipe run of length l (m).
func (c Config) DistributedLoss(f, l, d, v float64) float64 {
	if d <= 0 || l <= 0 {
		return 0
	}
	return f * (l / d) * v * v / (2.0 * c.GravityMS2)
}

// LocalLoss returns the minor head loss k*v^2/(2g) in m for an aggregate
// fitting coefficient k.
func (c Config) LocalLoss(k, v float64) float64 {
	if k <= 0 {
		return 0
	}
	return k * v * v / (2.0 * c.GravityMS2)
}

// VelocityHead returns v^2/(2g) in m.
func (c Config) VelocityHead(v float64) float64 {
	return v * v / (2.0 * c.GravityMS2)
}
