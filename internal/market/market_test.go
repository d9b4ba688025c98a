package market

import (
	"testing"

	"chancellor/internal/state"
)

func startState() (state.State, state.Baseline) {
	return state.New(state.DifficultyStandard, "golden-rule"), state.NewBaseline()
}

// seedHistory appends n flat snapshots so the direction-of-travel and panic
// logic have something to look back on.
func seedHistory(s *state.State, n int, snap state.Snapshot) {
	for i := 1; i <= n; i++ {
		snap.Turn = i
		s.History = append(s.History, snap)
	}
}

func calm() state.Snapshot {
	return state.Snapshot{DeficitPctGDP: 3.5, DebtPctGDP: 95, Yield10: 4.4}
}

func TestYieldSmoothingLimitsMonthlyMove(t *testing.T) {
	s, b := startState()
	s.Difficulty = state.DifficultyEasy // no panic amplification
	s.Fiscal.DeficitPctGDP = 12
	s.Fiscal.DebtPctGDP = 115

	m := UpdateMarket(s, b)
	if m.Yield10 <= 4.4 {
		t.Fatalf("yield %v did not rise against a 12%% deficit", m.Yield10)
	}
	// With 0.35 smoothing a single month moves at most 35% of the gap to a
	// target that is itself capped at 20.
	if move := m.Yield10 - 4.4; move > 0.35*(20-4.4)+1e-9 {
		t.Errorf("smoothed yield moved %v in one month", move)
	}
}

func TestDebtPremiumKinks(t *testing.T) {
	s, b := startState()
	yieldAt := func(debtPct float64) float64 {
		s.Fiscal.DebtPctGDP = debtPct
		return UpdateMarket(s, b).Yield10
	}

	low := yieldAt(95) - yieldAt(85)    // crosses the first kink
	high := yieldAt(125) - yieldAt(115) // crosses the second
	if low <= 0 {
		t.Errorf("yield did not rise across the 90%% kink: delta %v", low)
	}
	if high <= low {
		t.Errorf("yield slope above 120%% (%v) should exceed slope above 90%% (%v)", high, low)
	}
}

func TestVigilanteReactsToAbruptDeterioration(t *testing.T) {
	s, b := startState()
	seedHistory(&s, 3, calm())

	// Gradual: deficit a touch above last month.
	s.Fiscal.DeficitPctGDP = 4.0
	gradual := UpdateMarket(s, b).Yield10

	// Abrupt: same history, deficit jumps 4pp in a month.
	s.Fiscal.DeficitPctGDP = 7.5
	abrupt := UpdateMarket(s, b).Yield10

	if abrupt <= gradual {
		t.Errorf("abrupt deterioration yield %v not above gradual %v", abrupt, gradual)
	}
}

func TestPanicArmsOnAbruptRepricing(t *testing.T) {
	s, b := startState()
	seedHistory(&s, 6, calm())

	// A fiscal blowout big enough to imply a monthly rise beyond the
	// trigger arms the panic flag and reprices without smoothing.
	s.Fiscal.DeficitPctGDP = 11
	s.Fiscal.DebtPctGDP = 125
	s.Politics.Credibility = 40

	m := UpdateMarket(s, b)
	if !m.Panic {
		t.Fatalf("panic did not arm: yield %v", m.Yield10)
	}
	if m.Yield10 <= 6 {
		t.Errorf("panicked market yield %v did not reprice", m.Yield10)
	}
}

func TestPanicStickyWhileStressed(t *testing.T) {
	s, b := startState()
	s.Market.Panic = true
	s.Market.Yield10 = 7.8
	s.Fiscal.DeficitPctGDP = 11
	s.Fiscal.DebtPctGDP = 125
	s.Politics.Credibility = 40

	m := UpdateMarket(s, b)
	if !m.Panic {
		t.Error("panic released while fundamentals stayed broken")
	}
}

func TestPanicReleasesAfterConsolidation(t *testing.T) {
	s, b := startState()
	s.Market.Panic = true
	s.Market.Yield10 = 7.8
	s.Fiscal.DeficitPctGDP = 1
	s.Fiscal.DebtPctGDP = 85
	s.Politics.Credibility = 90

	m := UpdateMarket(s, b)
	if m.Panic {
		t.Error("panic did not release after consolidation")
	}
	if m.Yield10 >= 7.8 {
		t.Errorf("yield %v did not fall on release", m.Yield10)
	}
}

func TestPanicNeedsHistoryAndReactiveMarkets(t *testing.T) {
	s, b := startState()
	s.Fiscal.DeficitPctGDP = 11
	s.Fiscal.DebtPctGDP = 125
	s.Politics.Credibility = 40

	// Thin history: no panic regardless of the implied rise.
	seedHistory(&s, 3, calm())
	if m := UpdateMarket(s, b); m.Panic {
		t.Error("panic armed with under six months of history")
	}

	// Easy difficulty damps market reaction below the panic gate.
	s.History = nil
	seedHistory(&s, 8, calm())
	s.Difficulty = state.DifficultyEasy
	if m := UpdateMarket(s, b); m.Panic {
		t.Error("panic armed on easy difficulty")
	}
}

func TestCredibilityLowersYields(t *testing.T) {
	s, b := startState()
	s.Politics.Credibility = 90
	high := UpdateMarket(s, b).Yield10

	s.Politics.Credibility = 40
	low := UpdateMarket(s, b).Yield10

	if high >= low {
		t.Errorf("credible government yield %v not below %v", high, low)
	}
}

func TestCurveSpreadsFollowSlope(t *testing.T) {
	s, b := startState()
	m := UpdateMarket(s, b)

	slope := m.Yield10 - m.PolicyRate
	if want := m.PolicyRate + 0.20*slope + 0.05; m.Yield2 != state.Clamp(want, 0.25, 20) {
		t.Errorf("2y yield = %v, want %v", m.Yield2, want)
	}
	if want := m.PolicyRate + 0.55*slope + 0.05; m.Yield5 != state.Clamp(want, 0.25, 20) {
		t.Errorf("5y yield = %v, want %v", m.Yield5, want)
	}
	if want := 0.6*m.Yield2 + 0.4*m.Yield5 + 1.0; m.MortgageRate != state.Clamp(want, 0.5, 22) {
		t.Errorf("mortgage rate = %v, want %v", m.MortgageRate, want)
	}
}

func TestCurrencyPricesRateDifferentialAndFiscalRisk(t *testing.T) {
	s, b := startState()

	s.Market.PolicyRate = 6
	hawkish := UpdateMarket(s, b).CurrencyIndex

	s.Market.PolicyRate = 1
	dovish := UpdateMarket(s, b).CurrencyIndex

	if hawkish <= dovish {
		t.Errorf("currency %v under 6%% rates not above %v under 1%%", hawkish, dovish)
	}

	s.Market.PolicyRate = 4
	s.Fiscal.DeficitPctGDP = 10
	s.Fiscal.DebtPctGDP = 120
	risky := UpdateMarket(s, b).CurrencyIndex
	if risky >= hawkish {
		t.Errorf("currency %v ignored fiscal risk", risky)
	}
}

func TestRatingReassessment(t *testing.T) {
	s, b := startState()

	tests := []struct {
		name     string
		mutate   func(*state.State)
		rating   string
		moved    int
		credible float64
	}{
		{
			"strong position upgrades",
			func(s *state.State) {
				s.Fiscal.DebtPctGDP = 80
				s.Fiscal.DeficitPctGDP = 1
				s.Politics.Credibility = 80
				s.Market.Yield10 = 3.5
			},
			"AAA", 1, 3,
		},
		{
			"stressed position downgrades",
			func(s *state.State) {
				s.Fiscal.DebtPctGDP = 130
				s.Fiscal.DeficitPctGDP = 8
				s.Politics.Credibility = 30
				s.Market.Yield10 = 7
			},
			"A", -1, -4,
		},
		{
			"mixed position holds",
			func(s *state.State) {
				s.Fiscal.DebtPctGDP = 95
				s.Fiscal.DeficitPctGDP = 4
				s.Politics.Credibility = 70
				s.Market.Yield10 = 4.4
			},
			"AA", 0, 0,
		},
	}
	for _, tc := range tests {
		cur := s.Clone()
		tc.mutate(&cur)
		res := ReassessRating(cur, b)
		if res.Rating != tc.rating || res.Moved != tc.moved || res.CredibilityDelta != tc.credible {
			t.Errorf("%s: got %+v", tc.name, res)
		}
	}
}

func TestRatingLadderEnds(t *testing.T) {
	s, b := startState()
	s.Politics.Rating = "AAA"
	s.Fiscal.DebtPctGDP = 80
	s.Fiscal.DeficitPctGDP = 1
	s.Politics.Credibility = 80
	s.Market.Yield10 = 3.5
	if res := ReassessRating(s, b); res.Rating != "AAA" || res.Moved != 0 {
		t.Errorf("AAA should hold at the top of the ladder: %+v", res)
	}

	s.Politics.Rating = "B"
	s.Fiscal.DebtPctGDP = 150
	s.Fiscal.DeficitPctGDP = 12
	s.Politics.Credibility = 10
	s.Market.Yield10 = 9
	if res := ReassessRating(s, b); res.Rating != "B" || res.Moved != 0 {
		t.Errorf("B should hold at the bottom of the ladder: %+v", res)
	}
}
