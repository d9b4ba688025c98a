// Package market models the sovereign yield curve, the currency index and
// the credit rating. The long yield is the pressure gauge of the whole
// game: everything fiscal eventually shows up here.
package market

import (
	"chancellor/internal/state"
)

// Term-premium shape: positive when policy is loose, inverted as policy
// pushes past neutral. QT adds a small fixed supply premium.
const (
	basePremium = 0.30
	qtPremium   = 0.15
)

// Debt/GDP premium kinks.
const (
	debtKink1 = 90.0
	debtKink2 = 120.0
)

// deficitTolerance is the deficit, % of GDP, markets ignore.
const deficitTolerance = 3.0

// Margin-call loop: an implied monthly rise beyond panicTrigger arms the
// panic state; it only clears once yields fall back by panicRelease.
const (
	panicTrigger = 0.40
	panicRelease = 0.25
)

// yieldSmoothing is the normal partial-adjustment factor. Ignored while
// the panic flag is set: panicked markets reprice instantly.
const yieldSmoothing = 0.35

var ratingPremium = map[string]float64{
	"AAA": 0,
	"AA":  0.15,
	"A":   0.45,
	"BBB": 0.90,
	"BB":  1.60,
	"B":   2.50,
}

// UpdateMarket reprices the yield curve and the currency for the month.
func UpdateMarket(s state.State, b state.Baseline) state.Market {
	m := s.Market
	f := s.Fiscal
	diff := s.Difficulty.Params()
	rule := state.RuleByID(s.Politics.FiscalRule)

	// Base yield: policy rate plus term premium plus QT supply premium.
	restrictiveness := m.PolicyRate - b.NeutralRate
	var termPremium float64
	if restrictiveness >= 0 {
		termPremium = basePremium - 0.15*restrictiveness
	} else {
		termPremium = basePremium + 0.25*(-restrictiveness)
	}
	target := m.PolicyRate + termPremium + qtPremium

	// Non-linear debt/GDP premium: flat, then rising, then rising faster.
	switch {
	case f.DebtPctGDP > debtKink2:
		target += 0.03*(debtKink2-debtKink1) + 0.08*(f.DebtPctGDP-debtKink2)
	case f.DebtPctGDP > debtKink1:
		target += 0.03 * (f.DebtPctGDP - debtKink1)
	}

	// Deficit above tolerance.
	if f.DeficitPctGDP > deficitTolerance {
		target += 0.15 * (f.DeficitPctGDP - deficitTolerance)
	}

	// Direction of travel since the last snapshot.
	vigilante := 0.0
	if last, ok := s.History.Last(); ok {
		debtDelta := f.DebtPctGDP - last.DebtPctGDP
		defDelta := f.DeficitPctGDP - last.DeficitPctGDP
		target += state.Clamp(0.5*debtDelta+0.3*defDelta, -0.5, 0.8)

		// Bond vigilantes react to abrupt single-month deterioration, not
		// to the level.
		if defDelta > 0.8 {
			vigilante = 0.5 * (defDelta - 0.8) * diff.MarketReaction
			target += vigilante
		}
	}

	// Credibility, rating and rule offsets.
	target -= 0.02 * (s.Politics.Credibility - b.Credibility)
	target += ratingPremium[s.Politics.Rating]
	target += rule.YieldOffset

	// Market psychology: stress amplifies itself once yields are elevated
	// and the fiscal position is visibly bad at the same time.
	if target > 5.5 && (f.DeficitPctGDP > 5 || f.DebtPctGDP > 110) {
		target += 0.15 * (target - 5.5)
	}
	if last, ok := s.History.Last(); ok {
		if prev2, ok2 := s.History.Back(1); ok2 {
			target += 0.3 * (last.Yield10 - prev2.Yield10)
		}
	}
	target = state.Clamp(target, 0.5, 20)

	// Margin-call feedback loop.
	impliedRise := target - m.Yield10
	if !m.Panic && diff.MarketReaction >= 1.0 && len(s.History) >= 6 && impliedRise > panicTrigger {
		target += 1.5 * (impliedRise - panicTrigger) * diff.MarketReaction
		target = state.Clamp(target, 0.5, 20)
		m.Panic = true
	}
	if m.Panic {
		if target < m.Yield10-panicRelease {
			m.Panic = false
			m.Yield10 += yieldSmoothing * (target - m.Yield10)
		} else {
			m.Yield10 = target // no smoothing while panicked
		}
	} else {
		m.Yield10 += yieldSmoothing * (target - m.Yield10)
	}
	m.Yield10 = state.Clamp(m.Yield10, 0.5, 20)

	// Rest of the curve: slope-dependent spreads off the long yield.
	slope := m.Yield10 - m.PolicyRate
	m.Yield2 = state.Clamp(m.PolicyRate+0.20*slope+0.05, 0.25, 20)
	m.Yield5 = state.Clamp(m.PolicyRate+0.55*slope+0.05, 0.25, 20)
	m.MortgageRate = state.Clamp(0.6*m.Yield2+0.4*m.Yield5+1.0, 0.5, 22)

	m.CurrencyIndex = updateCurrency(s, b, m, rule, vigilante)
	return m
}

// updateCurrency moves the currency index toward a target set by the rate
// differential, fiscal risk, political standing and the rule offset.
func updateCurrency(s state.State, b state.Baseline, m state.Market, rule state.Rule, vigilante float64) float64 {
	f := s.Fiscal

	fiscalRisk := 0.3*(f.DebtPctGDP-b.DebtPctGDP) + 0.8*maxf(0, f.DeficitPctGDP-deficitTolerance)

	target := b.CurrencyIndex +
		3.5*(m.PolicyRate-b.ReferenceRate) -
		fiscalRisk +
		0.08*(s.Politics.Approval-b.Approval) +
		0.10*(s.Politics.Credibility-b.Credibility) +
		rule.CurrencyOffset
	if vigilante > 0 {
		target -= 2.0 * vigilante
	}
	target = state.Clamp(target, 60, 140)

	cur := m.CurrencyIndex + 0.15*(target-m.CurrencyIndex)
	return state.Clamp(cur, 60, 140)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
