package fiscal

import (
	"chancellor/internal/state"
)

// currentBalanceTolerance is the slack, £bn/yr, within which a current
// budget counts as balanced.
const currentBalanceTolerance = 1.0

// investmentTolerance is the slack, £bn/yr, allowed between deficit growth
// and capital-spending growth before the investment exemption is breached.
const investmentTolerance = 5.0

// ComplianceResult is the compliance record plus the credibility movement
// it earns.
type ComplianceResult struct {
	Record           state.Compliance
	CredibilityDelta float64
}

// EvaluateCompliance runs the active rule's budget tests, advances the
// consecutive-breach counter and prices the credibility consequences.
func EvaluateCompliance(s state.State, b state.Baseline) ComplianceResult {
	f := s.Fiscal
	rule := state.RuleByID(s.Politics.FiscalRule)
	prev := s.Politics.Compliance

	cur := CurrentBudgetBalance(f, s.Emergency)
	rec := state.Compliance{
		CurrentBudgetGap:  cur,
		CapitalInvestment: f.CapitalTotal(),
	}

	rec.CurrentBudgetMet = cur >= -currentBalanceTolerance
	rec.OverallBalanceMet = f.Deficit <= currentBalanceTolerance
	rec.DeficitCeilingMet = rule.DeficitCeilingPct == 0 || f.DeficitPctGDP <= rule.DeficitCeilingPct
	rec.DebtTargetMet = rule.DebtTargetPct == 0 || f.DebtPctGDP <= rule.DebtTargetPct
	rec.DebtFallingMet = debtFallingMet(rule, rec, s.History)
	rec.InvestmentRuleMet = investmentRuleMet(rule, f, b)

	rec.Compliant = true
	if rule.RequireCurrentBalance && !rec.CurrentBudgetMet {
		rec.Compliant = false
	}
	if rule.RequireOverallBalance && !rec.OverallBalanceMet {
		rec.Compliant = false
	}
	if rule.DeficitCeilingPct > 0 && !rec.DeficitCeilingMet {
		rec.Compliant = false
	}
	if rule.DebtTargetPct > 0 && !rec.DebtTargetMet {
		rec.Compliant = false
	}
	if rule.RequireDebtFalling && !rec.DebtFallingMet {
		rec.Compliant = false
	}

	var cred float64
	if !rec.Compliant {
		rec.ConsecutiveBreach = prev.ConsecutiveBreach + 1
		switch {
		case rec.ConsecutiveBreach >= 6:
			cred = -4.0
		case rec.ConsecutiveBreach >= 3:
			cred = -2.5
		default:
			cred = -1.5
		}
	} else {
		rec.ConsecutiveBreach = 0
		if prev.ConsecutiveBreach > 0 {
			cred = 2.0 // returning to compliance restores some standing
		}
	}

	if !rec.InvestmentRuleMet {
		cred -= 1.0
	}

	return ComplianceResult{Record: rec, CredibilityDelta: cred}
}

// debtFallingMet evaluates the debt-falling test. Long-horizon rules treat
// a balanced current budget as sufficient proof debt will fall; short
// horizons demand an observed year-over-year decline in debt/GDP, falling
// back to a 6-month window with thin history. The long-horizon shortcut is
// a deliberate policy choice inherited from the original rulebook, not an
// economic derivation.
func debtFallingMet(rule state.Rule, rec state.Compliance, hist state.History) bool {
	if !rule.RequireDebtFalling {
		return true
	}
	if rule.LongHorizon() {
		return rec.CurrentBudgetGap >= -currentBalanceTolerance
	}
	delta, ok := hist.DebtDeltaOver(12)
	if !ok {
		delta, ok = hist.DebtDeltaOver(6)
	}
	if !ok {
		return true // too little history to fail the test
	}
	return delta < 0
}

// investmentRuleMet checks the "borrow only for investment" exemption:
// flagged when the deficit has grown faster than capital spending has,
// both measured against game-start baselines, beyond a small tolerance.
func investmentRuleMet(rule state.Rule, f state.Fiscal, b state.Baseline) bool {
	if !rule.InvestmentExemption {
		return true
	}
	deficitGrowth := f.Deficit - b.Deficit
	capitalGrowth := f.CapitalTotal() - b.CapitalSpending
	return deficitGrowth <= capitalGrowth+investmentTolerance
}
