package econ

import (
	"math"

	"chancellor/internal/state"
)

// rateInertia is the fraction of the gap to the Taylor target closed each
// month. Central banks do not jump.
const rateInertia = 0.2

// UpdatePolicyRate applies a Taylor-rule reaction with interest-rate
// inertia, rounded to a 25bp tick.
func UpdatePolicyRate(s state.State, b state.Baseline) state.Market {
	m := s.Market
	e := s.Economy

	outputGap := -(e.Unemployment - b.NAIRU) // Okun proxy
	target := b.NeutralRate +
		1.25*(e.Inflation-b.InflationTarget) +
		0.5*outputGap

	rate := m.PolicyRate + rateInertia*(target-m.PolicyRate)
	rate = math.Round(rate*4) / 4
	m.PolicyRate = state.Clamp(rate, 0, 15)
	return m
}
