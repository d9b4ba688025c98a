// Package politics is the political feedback engine: approval, backbench
// satisfaction, leader trust, strike risk, manifesto pledges, intervention
// triggers and the terminal-condition checks.
package politics

import (
	"math"
	"sort"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// ChannelApproval is the entropy shock channel for approval noise.
const ChannelApproval = 3

// monthlySensitivity scales the weighted-sum approval delta down to a
// realistic monthly movement.
const monthlySensitivity = 0.25

// sentimentCap bounds the externally-supplied sentiment contribution.
const sentimentCap = 0.8

// UpdateApproval computes government approval from economic gaps, service
// quality, tax pressure, the deficit, manifesto violations, the honeymoon
// and sentiment, with asymmetric floor/ceiling softening.
func UpdateApproval(s state.State, b state.Baseline, sentiment float64, rng entropy.Source) state.Politics {
	p := s.Politics
	e := s.Economy
	f := s.Fiscal

	realWageGap := (e.WageGrowth - e.Inflation) - (b.WageGrowth - b.Inflation)

	delta := 0.8*(e.AnnualGrowth-b.PotentialGrowth) -
		1.2*(e.Unemployment-b.Unemployment) -
		0.7*maxf(0, e.Inflation-b.InflationTarget) +
		0.6*realWageGap

	// Services: headline and granular gaps versus game start.
	headlineGap := (s.Services.Health - b.Health) + (s.Services.Education - b.Education) +
		(s.Services.Infrastructure - b.Infrastructure)
	delta += 0.05 * headlineGap
	delta += 0.02 * granularGap(s.Services.Programmes, b.ServiceIndices)

	// Household-facing tax pressure.
	household := (f.BasicRate - b.BasicRate) + (f.EmployeeNI - b.EmployeeNI) + 0.8*(f.VAT-b.VAT)
	delta -= 0.25 * maxf(0, household)
	// Business-facing pressure lands more softly with voters.
	business := (f.CorporationTax - b.CorporationTax) + (f.EmployerNI - b.EmployerNI)
	delta -= 0.10 * maxf(0, business)

	// Deficit-level penalty.
	delta -= 0.4 * maxf(0, f.DeficitPctGDP-5)

	delta -= ManifestoPenalty(p.Manifesto.Count())

	// Decaying early-term honeymoon.
	delta += 2.0 * math.Exp(-float64(s.Turn)/8)

	delta += state.Clamp(sentiment, -sentimentCap, sentimentCap)
	delta += rng.Shock(ChannelApproval, s.Turn) * 0.3

	delta *= monthlySensitivity

	// Asymmetric softening: a government on the floor gets outsized credit
	// for good news and muted punishment for bad, so the spiral is
	// recoverable; near the ceiling gains flatten.
	switch {
	case p.Approval < 25 && delta > 0:
		delta *= 1.5
	case p.Approval < 25 && delta < 0:
		delta *= 0.5
	case p.Approval > 60 && delta > 0:
		delta *= 0.6
	}

	p.Approval = state.Clamp(p.Approval+delta, 5, 80)
	// Leader approval shadows government approval with its own inertia.
	p.LeaderApproval = state.Clamp(p.LeaderApproval+0.3*(p.Approval-p.LeaderApproval)*0.25+delta*0.5, 5, 80)
	return p
}

// ManifestoPenalty escalates non-linearly from the second violation: one
// broken pledge is a story, two is a pattern.
func ManifestoPenalty(violations int) float64 {
	switch {
	case violations == 0:
		return 0
	case violations == 1:
		return 0.5
	default:
		return 0.5 + 0.8*math.Pow(float64(violations-1), 1.3)
	}
}

// granularGap averages the programme-index gaps versus game start. The sum
// runs over sorted names so the result is identical run to run.
func granularGap(cur, base map[string]float64) float64 {
	names := make([]string, 0, len(cur))
	for name := range cur {
		if _, ok := base[name]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return 0
	}
	sort.Strings(names)

	var gap float64
	for _, name := range names {
		gap += cur[name] - base[name]
	}
	return gap / float64(len(names)) * 3 // average gap, modestly weighted
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
