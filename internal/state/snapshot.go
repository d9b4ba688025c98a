package state

// Snapshot is the immutable monthly record appended to the history every
// turn. Several models use look-back windows over it for trend and
// momentum terms.
type Snapshot struct {
	Turn          int     `json:"turn"`
	MonthlyGrowth float64 `json:"monthly_growth"`
	AnnualGrowth  float64 `json:"annual_growth"`
	Inflation     float64 `json:"inflation"`
	Unemployment  float64 `json:"unemployment"`
	DeficitPctGDP float64 `json:"deficit_pct_gdp"`
	DebtPctGDP    float64 `json:"debt_pct_gdp"`
	Approval      float64 `json:"approval"`
	Yield10       float64 `json:"yield_10y"`
	Productivity  float64 `json:"productivity_growth"`
	PolicyRate    float64 `json:"policy_rate"`
	CurrencyIndex float64 `json:"currency_index"`
}

// History is the append-only list of monthly snapshots, oldest first.
type History []Snapshot

// Last returns the most recent snapshot and true, or a zero snapshot and
// false when no turns have been processed yet.
func (h History) Last() (Snapshot, bool) {
	if len(h) == 0 {
		return Snapshot{}, false
	}
	return h[len(h)-1], true
}

// Back returns the snapshot n turns ago (Back(0) == Last) and whether the
// history reaches that far.
func (h History) Back(n int) (Snapshot, bool) {
	idx := len(h) - 1 - n
	if idx < 0 {
		return Snapshot{}, false
	}
	return h[idx], true
}

// Window returns up to the last n snapshots, oldest first.
func (h History) Window(n int) []Snapshot {
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}

// AvgInflation averages inflation over the last n snapshots; falls back to
// fallback when the history is empty.
func (h History) AvgInflation(n int, fallback float64) float64 {
	w := h.Window(n)
	if len(w) == 0 {
		return fallback
	}
	var sum float64
	for _, s := range w {
		sum += s.Inflation
	}
	return sum / float64(len(w))
}

// DebtDeltaOver returns the change in debt/GDP over the last n turns and
// whether enough history exists to measure it.
func (h History) DebtDeltaOver(n int) (float64, bool) {
	last, ok := h.Last()
	if !ok {
		return 0, false
	}
	prev, ok := h.Back(n)
	if !ok {
		return 0, false
	}
	return last.DebtPctGDP - prev.DebtPctGDP, true
}

// SnapshotOf records the turn's headline figures.
func SnapshotOf(s State) Snapshot {
	return Snapshot{
		Turn:          s.Turn,
		MonthlyGrowth: s.Economy.MonthlyGrowth,
		AnnualGrowth:  s.Economy.AnnualGrowth,
		Inflation:     s.Economy.Inflation,
		Unemployment:  s.Economy.Unemployment,
		DeficitPctGDP: s.Fiscal.DeficitPctGDP,
		DebtPctGDP:    s.Fiscal.DebtPctGDP,
		Approval:      s.Politics.Approval,
		Yield10:       s.Market.Yield10,
		Productivity:  s.Economy.ProductivityGrowth,
		PolicyRate:    s.Market.PolicyRate,
		CurrencyIndex: s.Market.CurrencyIndex,
	}
}
