package hydraulics

import (
	"math"
	"testing"
)

func almost(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g (tol %g)", name, got, want, tol)
	}
}

func TestVelocity(t *testing.T) {
	// 72 m3/h through DN100: v = Q/(pi d^2/4)
	v := Velocity(0.02, 0.1)
	almost(t, "Velocity(0.02, 0.1)", v, 2.546479, 1e-5)

	// Doubling the flow doubles the velocity.
	almost(t, "Velocity(0.04, 0.1)", Velocity(0.04, 0.1), 2*v, 1e-9)

	// Doubling the diameter quarters the velocity.
	almost(t, "Velocity(0.02, 0.2)", Velocity(0.02, 0.2), v/4, 1e-9)
}

func TestVelocityDegenerateDiameter(t *testing.T) {
	if got := Velocity(0.02, 0); got != 0 {
		t.Errorf("Velocity(q, 0) = %g, want 0", got)
	}
	if got := Velocity(0.02, -0.1); got != 0 {
		t.Errorf("Velocity(q, -0.1) = %g, want 0", got)
	}
}

func TestReynolds(t *testing.T) {
	almost(t, "Reynolds", Reynolds(1000, 2.546479, 0.1, 0.001), 254647.9, 0.1)

	if got := Reynolds(1000, 2.5, 0.1, 0); got != 0 {
		t.Errorf("Reynolds with mu=0 = %g, want 0", got)
	}
	if got := Reynolds(1000, 2.5, 0.1, -1); got != 0 {
		t.Errorf("Reynolds with mu<0 = %g, want 0", got)
	}
}

func TestDistributedLoss(t *testing.T) {
	cfg := DefaultConfig()

	// f (L/d) v^2/(2g) = 0.02 * (50/0.1) * 4/(2*9.81)
	want := 0.02 * 500.0 * 4.0 / (2.0 * 9.81)
	almost(t, "DistributedLoss", cfg.DistributedLoss(0.02, 50, 0.1, 2), want, 1e-9)

	if got := cfg.DistributedLoss(0.02, 50, 0, 2); got != 0 {
		t.Errorf("DistributedLoss with d=0 = %g, want 0", got)
	}
	if got := cfg.DistributedLoss(0.02, 0, 0.1, 2); got != 0 {
		t.Errorf("DistributedLoss with l=0 = %g, want 0", got)
	}
}

func TestLocalLoss(t *testing.T) {
	cfg := DefaultConfig()

	want := 2.5 * 4.0 / (2.0 * 9.81)
	almost(t, "LocalLoss", cfg.LocalLoss(2.5, 2), want, 1e-9)

	if got := cfg.LocalLoss(0, 2); got != 0 {
		t.Errorf("LocalLoss with k=0 = %g, want 0", got)
	}
}

func TestVelocityHead(t *testing.T) {
	cfg := DefaultConfig()
	almost(t, "VelocityHead(2)", cfg.VelocityHead(2), 4.0/19.62, 1e-9)
}
