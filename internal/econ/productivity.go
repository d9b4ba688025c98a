// Package econ is the macroeconomic engine: productivity, GDP growth,
// employment, inflation, wage growth and policy-rate setting. Each update
// is a pure function of the incoming state and the game-start baseline;
// the turn orchestrator threads the result forward.
package econ

import (
	"chancellor/internal/state"
)

// Shock channels for the entropy source.
const (
	ChannelGrowth    = 1
	ChannelInflation = 2
)

// UpdateProductivity drifts annualised productivity growth toward a target
// shaped by capital investment and the supply-side service indices, then
// compounds the productivity index. Slow by construction: productivity is
// the one lever that never moves quickly.
func UpdateProductivity(s state.State, b state.Baseline) state.Economy {
	e := s.Economy

	capRatio := 1.0
	if b.CapitalSpending > 0 {
		capRatio = s.Fiscal.CapitalTotal() / b.CapitalSpending
	}

	target := b.ProductivityGrowth +
		0.30*(capRatio-1.0) +
		0.005*(s.Services.Infrastructure-b.Infrastructure) +
		0.004*(s.Services.Education-b.Education)
	target = state.Clamp(target, -1.0, 3.0)

	e.ProductivityGrowth += 0.02 * (target - e.ProductivityGrowth)
	e.ProductivityIndex *= 1 + e.ProductivityGrowth/1200
	return e
}
