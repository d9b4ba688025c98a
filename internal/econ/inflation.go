package econ

import (
	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// wageSpiralThreshold is the real wage growth, pp above zero, beyond which
// a wage-price spiral term kicks in.
const wageSpiralThreshold = 1.0

// UpdateInflation runs the hybrid expectations model: a persistence term,
// an anchored-versus-adaptive expectations blend weighted by anchoring
// health, a Phillips-curve term, import prices from currency moves, the
// one-off consumption-tax pass-through and a wage-spiral term. It also
// evolves anchoring health and the price level.
func UpdateInflation(s state.State, b state.Baseline, rng entropy.Source) state.Economy {
	e := s.Economy
	prev := e.Inflation

	// Expectations: anchored agents look at the target, adaptive agents at
	// recent realised inflation. Anchoring health sets the mix.
	w := e.AnchoringHealth / 100
	recent := s.History.AvgInflation(6, prev)
	expected := w*b.InflationTarget + (1-w)*recent

	infl := 0.55*prev + 0.45*expected

	// Phillips curve.
	infl -= 0.15 * (e.Unemployment - b.NAIRU)

	// Import prices: a weaker currency imports inflation.
	infl += 0.04 * (b.CurrencyIndex - s.Market.CurrencyIndex)
	infl += rng.Shock(ChannelInflation, s.Turn) * 0.15

	// One-off consumption-tax pass-through: roughly a third of a VAT rise
	// shows up in the price level within the month.
	if d := s.Fiscal.VAT - s.Fiscal.VATPrev; d != 0 {
		infl += 0.33 * d
	}

	// Wage-price spiral above the real-wage threshold.
	if realWage := e.WageGrowth - prev; realWage > wageSpiralThreshold {
		infl += 0.2 * (realWage - wageSpiralThreshold)
	}

	e.Inflation = state.Clamp(infl, -2.0, 25.0)
	e.PriceLevel *= 1 + e.Inflation/1200

	// Anchoring health: decays faster the hotter inflation runs, recovers
	// only when inflation is near target and the real policy rate is
	// positive. Credibility is slow to rebuild.
	switch {
	case e.Inflation > b.InflationTarget+1:
		e.AnchoringHealth -= 0.3 * (e.Inflation - b.InflationTarget - 1)
	case e.Inflation < b.InflationTarget+0.5 && s.Market.PolicyRate > e.Inflation:
		e.AnchoringHealth += 0.4
	}
	e.AnchoringHealth = state.Clamp(e.AnchoringHealth, 0, 100)

	return e
}

// UpdateWages blends inflation expectations, trend productivity and
// labour-market tightness, with partial adjustment toward the target.
func UpdateWages(s state.State, b state.Baseline) state.Economy {
	e := s.Economy

	w := e.AnchoringHealth / 100
	recent := s.History.AvgInflation(6, e.Inflation)
	expected := w*b.InflationTarget + (1-w)*recent

	tightness := b.NAIRU - e.Unemployment
	target := expected + e.ProductivityGrowth + 0.5*tightness

	e.WageGrowth += 0.25 * (target - e.WageGrowth)
	e.WageGrowth = state.Clamp(e.WageGrowth, -5.0, 20.0)
	return e
}
