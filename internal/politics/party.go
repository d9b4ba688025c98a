package politics

import (
	"chancellor/internal/state"
)

// UpdateBackbench drifts backbench satisfaction toward a target set by the
// chosen fiscal rule (stricter rules start from a grumpier parliamentary
// party), buffeted by approval, the deficit, broken pledges, leader trust,
// strike risk and constituency service stress.
func UpdateBackbench(s state.State, b state.Baseline, sentiment float64) state.Politics {
	p := s.Politics
	rule := state.RuleByID(p.FiscalRule)

	stress := -granularGap(s.Services.Programmes, b.ServiceIndices) / 3 // positive when services decay

	delta := 0.10*(p.Approval-b.Approval) -
		0.30*maxf(0, s.Fiscal.DeficitPctGDP-4) -
		0.60*float64(p.Manifesto.Count()) +
		0.05*(p.PMTrust-b.PMTrust) -
		0.03*p.StrikeRisk -
		0.04*stress +
		state.Clamp(sentiment, -0.5, 0.5)

	p.Backbench += 0.08*(rule.BackbenchTarget-p.Backbench) + 0.3*delta
	p.Backbench = state.Clamp(p.Backbench, 0, 100)
	return p
}

// marketCrisisYield is the long yield above which the party starts to see
// the chancellor as the problem.
const marketCrisisYield = 6.0

// UpdateTrust moves PM trust. Reversion to the neutral baseline is very
// weak on purpose: trust is earned or spent, not auto-recovered.
func UpdateTrust(s state.State, b state.Baseline) state.Politics {
	p := s.Politics

	delta := 0.06*(p.Approval-b.Approval) -
		0.15*float64(p.Manifesto.Count()) -
		0.04*(b.Credibility-p.Credibility) +
		0.04*(p.Backbench-b.Backbench)

	if s.Market.Yield10 > marketCrisisYield {
		delta -= 0.5 * (s.Market.Yield10 - marketCrisisYield)
	}

	p.PMTrust += delta + 0.02*(55-p.PMTrust)
	p.PMTrust = state.Clamp(p.PMTrust, 0, 100)
	return p
}

// UpdateStrikeRisk tracks public-sector pay against the cost of living:
// when the pay bill lags the price level, risk builds; catching up bleeds
// it off slowly.
func UpdateStrikeRisk(s state.State, b state.Baseline) state.Politics {
	p := s.Politics
	f := s.Fiscal

	payBill := f.Departments[state.DeptHealth].Current + f.Departments[state.DeptEducation].Current
	basePay := b.Departments[state.DeptHealth].Current + b.Departments[state.DeptEducation].Current
	realPayRatio := (payBill / basePay) / (s.Economy.PriceLevel / 100)

	if realPayRatio < 1 {
		p.StrikeRisk += 40 * (1 - realPayRatio)
	} else {
		p.StrikeRisk -= 1.0
	}
	if over := s.Economy.Inflation - b.InflationTarget; over > 0 {
		p.StrikeRisk += 0.2 * over
	}
	p.StrikeRisk = state.Clamp(p.StrikeRisk, 0, 100)
	return p
}
