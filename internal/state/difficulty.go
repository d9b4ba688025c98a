package state

// Difficulty selects the multiplier set applied to avoidance behaviour,
// market reaction and terminal thresholds.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyStandard Difficulty = "standard"
	DifficultyHard     Difficulty = "hard"
)

// DifficultyParams are the tuning knobs that vary by difficulty.
type DifficultyParams struct {
	AvoidanceMult  float64 // scales all tax avoidance/erosion losses
	MarketReaction float64 // scales vigilante shocks and panic sensitivity

	InterventionTrust float64 // PM trust below this can trigger interventions

	// Terminal thresholds.
	TrustFloor        float64 // PM trust below this ends the session
	SatisfactionFloor float64 // backbench satisfaction floor (probabilistic below)
	YieldCeiling      float64 // 10y yield above this is a debt crisis
	DebtCeiling       float64 // debt/GDP above this is a sovereign crisis
}

var difficultyParams = map[Difficulty]DifficultyParams{
	DifficultyEasy: {
		AvoidanceMult:     0.7,
		MarketReaction:    0.7,
		InterventionTrust: 25,
		TrustFloor:        10,
		SatisfactionFloor: 15,
		YieldCeiling:      9.0,
		DebtCeiling:       160,
	},
	DifficultyStandard: {
		AvoidanceMult:     1.0,
		MarketReaction:    1.0,
		InterventionTrust: 35,
		TrustFloor:        15,
		SatisfactionFloor: 20,
		YieldCeiling:      7.5,
		DebtCeiling:       140,
	},
	DifficultyHard: {
		AvoidanceMult:     1.3,
		MarketReaction:    1.4,
		InterventionTrust: 45,
		TrustFloor:        20,
		SatisfactionFloor: 25,
		YieldCeiling:      6.5,
		DebtCeiling:       125,
	},
}

// Params returns the tuning set for the difficulty, defaulting to standard
// for unknown values.
func (d Difficulty) Params() DifficultyParams {
	if p, ok := difficultyParams[d]; ok {
		return p
	}
	return difficultyParams[DifficultyStandard]
}
