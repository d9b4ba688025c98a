package econ

import (
	"chancellor/internal/state"
)

// povertyTrapThreshold: when basic rate + employee NI + benefit withdrawal
// exceed this combined marginal rate, work stops paying at the margin and
// the natural rate shifts up.
const povertyTrapThreshold = 75.0

// UpdateEmployment moves unemployment by Okun's law against trend growth,
// then drifts it toward a natural rate adjusted for tax-policy side
// effects and failing public services.
func UpdateEmployment(s state.State, b state.Baseline) state.Economy {
	e := s.Economy
	f := s.Fiscal

	trendAnnual := e.ProductivityGrowth + b.LabourForceGrowth

	// Okun: unemployment moves opposite to the growth gap.
	du := -0.3 * (e.AnnualGrowth - trendAnnual) / 12

	// Adjusted natural rate.
	nairu := b.NAIRU
	if d := f.EmployerNI - b.EmployerNI; d > 0 {
		nairu += 0.05 * d
	}
	if d := f.CorporationTax - b.CorporationTax; d > 0 {
		nairu += 0.03 * d
	}
	combined := f.BasicRate + f.EmployeeNI + f.BenefitTaperate
	if combined > povertyTrapThreshold {
		nairu += 0.03 * (combined - povertyTrapThreshold)
	}

	// Sectoral pressure from collapsing services.
	if s.Services.Health < 40 {
		nairu += 0.10
	}
	if s.Services.Education < 40 {
		nairu += 0.15
	}

	e.Unemployment += du + 0.05*(nairu-e.Unemployment)
	e.Unemployment = state.Clamp(e.Unemployment, 2.5, 15.0)
	return e
}
