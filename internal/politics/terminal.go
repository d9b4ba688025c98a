package politics

import (
	"fmt"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// CheckTerminal evaluates the terminal conditions in order; the first
// match ends the session. The backbench check is probabilistic, with the
// probability rising the further satisfaction sits below the floor.
func CheckTerminal(s state.State, rng entropy.Source) (bool, string) {
	d := s.Difficulty.Params()
	p := s.Politics

	if p.PMTrust < d.TrustFloor {
		return true, "The Prime Minister has lost confidence in you. You have been removed from office."
	}

	if p.Backbench < d.SatisfactionFloor {
		prob := state.Clamp(0.10+0.05*(d.SatisfactionFloor-p.Backbench), 0, 0.9)
		if rng.Float64() < prob {
			return true, "The parliamentary party has withdrawn its support. A leadership challenge removes you from office."
		}
	}

	if s.Market.Yield10 > d.YieldCeiling {
		return true, fmt.Sprintf(
			"Gilt yields at %.1f%% have shut the government out of the bond market. The debt crisis ends your chancellorship.",
			s.Market.Yield10)
	}

	if s.Fiscal.DebtPctGDP > d.DebtCeiling {
		return true, fmt.Sprintf(
			"Debt at %.0f%% of GDP has triggered a sovereign crisis. External intervention ends the session.",
			s.Fiscal.DebtPctGDP)
	}

	return false, ""
}
