package market

import (
	"chancellor/internal/state"
)

// RatingCadence is how often, in turns, the agencies reassess.
const RatingCadence = 6

var ratingLadder = []string{"B", "BB", "BBB", "A", "AA", "AAA"}

// RatingResult is the reassessment outcome.
type RatingResult struct {
	Rating           string
	Outlook          string
	Moved            int // +1 upgrade, -1 downgrade, 0 hold
	CredibilityDelta float64
}

// ReassessRating scores four fiscal/market/credibility criteria into an
// upgrade/downgrade/hold decision on the fixed ladder. Called by the
// orchestrator every RatingCadence turns only.
func ReassessRating(s state.State, b state.Baseline) RatingResult {
	f := s.Fiscal
	score := 0

	// Debt level and trend.
	switch {
	case f.DebtPctGDP < 90:
		score++
	case f.DebtPctGDP > 110:
		score--
	}
	// Deficit discipline.
	switch {
	case f.DeficitPctGDP < 2:
		score++
	case f.DeficitPctGDP > 5:
		score--
	}
	// Fiscal credibility.
	switch {
	case s.Politics.Credibility > 75:
		score++
	case s.Politics.Credibility < 50:
		score--
	}
	// Market stress.
	switch {
	case s.Market.Yield10 < 4:
		score++
	case s.Market.Yield10 > 6:
		score--
	}

	idx := ratingIndex(s.Politics.Rating)
	res := RatingResult{Rating: s.Politics.Rating, Outlook: "stable"}
	switch {
	case score >= 2 && idx < len(ratingLadder)-1:
		res.Rating = ratingLadder[idx+1]
		res.Moved = 1
		res.Outlook = "positive"
		res.CredibilityDelta = 3
	case score <= -2 && idx > 0:
		res.Rating = ratingLadder[idx-1]
		res.Moved = -1
		res.Outlook = "negative"
		res.CredibilityDelta = -4
	default:
		if score > 0 {
			res.Outlook = "positive"
		} else if score < 0 {
			res.Outlook = "negative"
		}
	}
	return res
}

func ratingIndex(r string) int {
	for i, v := range ratingLadder {
		if v == r {
			return i
		}
	}
	return 4 // AA
}
