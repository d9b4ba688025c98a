package fiscal

import (
	"chancellor/internal/state"
)

// rolloverMonths approximates the average months for the debt stock to
// reprice: each month 1/rolloverMonths of the gap between the effective
// coupon and the current long yield closes.
const rolloverMonths = 60

// stabiliserPerPoint is the automatic welfare top-up, £bn/yr, per point of
// unemployment above its game-start level.
const stabiliserPerPoint = 9.0

// UpdateSpending computes debt service from the slowly-repricing blended
// rate and the automatic stabiliser from above-baseline unemployment.
func UpdateSpending(s state.State, b state.Baseline) state.Fiscal {
	f := s.Fiscal

	f.BlendedRate += (s.Market.Yield10 - f.BlendedRate) / rolloverMonths
	f.DebtInterest = f.DebtNominal * f.BlendedRate / 100 * (1 - s.Advisers.DebtInterestDiscount)

	f.Stabiliser = 0
	if over := s.Economy.Unemployment - b.Unemployment; over > 0 {
		f.Stabiliser = stabiliserPerPoint * over
	}
	return f
}

// EmergencyCost totals active emergency programmes, £bn/yr.
func EmergencyCost(progs []state.EmergencyProgramme) float64 {
	var t float64
	for _, p := range progs {
		if p.RemainingMonths > 0 {
			t += p.AnnualCost
		}
	}
	return t
}

// UpdateBalance closes the month's accounts: total managed expenditure,
// the annual deficit, and debt accumulating at a twelfth per month.
func UpdateBalance(s state.State, b state.Baseline) state.Fiscal {
	f := s.Fiscal

	f.TotalSpending = f.DepartmentalTotal() + f.Stabiliser + f.DebtInterest + EmergencyCost(s.Emergency)
	f.Deficit = f.TotalSpending - f.TotalRevenue
	f.DebtNominal += f.Deficit / 12
	f.DeficitPctGDP = f.Deficit / s.Economy.GDPNominal * 100
	f.DebtPctGDP = f.DebtNominal / s.Economy.GDPNominal * 100

	rule := state.RuleByID(s.Politics.FiscalRule)
	f.Headroom = headroomFor(rule, f, s.Economy.GDPNominal, s.Emergency)
	return f
}

// CurrentBudgetBalance is revenue minus non-capital spending minus debt
// service: the "current budget" of the glossary. Emergency programmes are
// day-to-day spending for this purpose.
func CurrentBudgetBalance(f state.Fiscal, progs []state.EmergencyProgramme) float64 {
	return f.TotalRevenue - f.CurrentTotal() - f.Stabiliser - f.DebtInterest - EmergencyCost(progs)
}

// headroomFor translates the fiscal position into the active rule's own
// threshold semantics, £bn/yr of margin.
func headroomFor(rule state.Rule, f state.Fiscal, gdp float64, progs []state.EmergencyProgramme) float64 {
	switch {
	case rule.RequireOverallBalance:
		return -f.Deficit
	case rule.DeficitCeilingPct > 0:
		return (rule.DeficitCeilingPct - f.DeficitPctGDP) * gdp / 100
	case rule.DebtTargetPct > 0 && !rule.RequireCurrentBalance:
		return (rule.DebtTargetPct - f.DebtPctGDP) * gdp / 100
	default:
		return CurrentBudgetBalance(f, progs)
	}
}
