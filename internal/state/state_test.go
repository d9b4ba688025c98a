package state

import (
	"math"
	"sort"
	"testing"
)

func TestNewStateAccountingIdentities(t *testing.T) {
	s := New(DifficultyStandard, "golden-rule")

	dept := s.Fiscal.DepartmentalTotal()
	if got := s.Fiscal.CurrentTotal() + s.Fiscal.CapitalTotal(); math.Abs(got-dept) > 1e-9 {
		t.Errorf("departmental aggregate %v != current %v + capital %v", dept, s.Fiscal.CurrentTotal(), s.Fiscal.CapitalTotal())
	}
	wantTME := dept + s.Fiscal.DebtInterest
	if math.Abs(s.Fiscal.TotalSpending-wantTME) > 1e-9 {
		t.Errorf("TotalSpending = %v, want %v", s.Fiscal.TotalSpending, wantTME)
	}
	wantDeficit := s.Fiscal.TotalSpending - s.Fiscal.TotalRevenue
	if math.Abs(s.Fiscal.Deficit-wantDeficit) > 1e-9 {
		t.Errorf("Deficit = %v, want %v", s.Fiscal.Deficit, wantDeficit)
	}
}

func TestBaselineMatchesStartState(t *testing.T) {
	s := New(DifficultyStandard, "golden-rule")
	b := NewBaseline()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"gdp", b.GDPNominal, s.Economy.GDPNominal},
		{"unemployment", b.Unemployment, s.Economy.Unemployment},
		{"inflation", b.Inflation, s.Economy.Inflation},
		{"wage growth", b.WageGrowth, s.Economy.WageGrowth},
		{"basic rate", b.BasicRate, s.Fiscal.BasicRate},
		{"vat", b.VAT, s.Fiscal.VAT},
		{"corporation tax", b.CorporationTax, s.Fiscal.CorporationTax},
		{"policy rate", b.PolicyRate, s.Market.PolicyRate},
		{"yield 10y", b.Yield10, s.Market.Yield10},
		{"currency", b.CurrencyIndex, s.Market.CurrencyIndex},
		{"health index", b.Health, s.Services.Health},
		{"debt", b.DebtNominal, s.Fiscal.DebtNominal},
		{"revenue", b.TotalRevenue, s.Fiscal.TotalRevenue},
		{"approval", b.Approval, s.Politics.Approval},
		{"coupon", b.AvgCouponRate, s.Fiscal.BlendedRate},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("baseline %s = %v, start state has %v", c.name, c.got, c.want)
		}
	}

	for name, d := range b.Departments {
		if s.Fiscal.Departments[name] != d {
			t.Errorf("baseline department %s = %+v, start has %+v", name, d, s.Fiscal.Departments[name])
		}
	}
	for name, base := range b.Programmes {
		lever, ok := s.Fiscal.Programmes[name]
		if !ok {
			t.Errorf("programme %s in baseline but not in start state", name)
			continue
		}
		if lever.Baseline != base || lever.Value != base {
			t.Errorf("programme %s lever = %+v, baseline %v", name, lever, base)
		}
	}
	for name, idx := range b.ServiceIndices {
		if s.Services.Programmes[name] != idx {
			t.Errorf("service index %s baseline %v != start %v", name, idx, s.Services.Programmes[name])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New(DifficultyStandard, "golden-rule")
	s.Emergency = []EmergencyProgramme{{ID: "x", AnnualCost: 3, RemainingMonths: 2}}
	s.Politics.Pending = []Intervention{{ID: "iv"}}

	c := s.Clone()
	c.Fiscal.Departments[DeptHealth] = DeptBudget{Current: 999}
	c.Fiscal.Programmes["mental-health"] = Lever{Value: 1, Baseline: 1}
	c.Services.Programmes["policing"] = 1
	c.Emergency[0].RemainingMonths = 99
	c.Politics.Pending[0].ID = "other"
	c.History = append(c.History, Snapshot{Turn: 1})

	if s.Fiscal.Departments[DeptHealth].Current == 999 {
		t.Error("clone shares Departments map")
	}
	if s.Fiscal.Programmes["mental-health"].Value == 1 {
		t.Error("clone shares Programmes map")
	}
	if s.Services.Programmes["policing"] == 1 {
		t.Error("clone shares service programme map")
	}
	if s.Emergency[0].RemainingMonths == 99 {
		t.Error("clone shares emergency slice")
	}
	if s.Politics.Pending[0].ID == "other" {
		t.Error("clone shares pending interventions")
	}
	if len(s.History) != 0 {
		t.Error("clone shares history")
	}
}

func TestHistoryWindows(t *testing.T) {
	var h History
	if _, ok := h.Last(); ok {
		t.Error("empty history should have no last snapshot")
	}
	if _, ok := h.DebtDeltaOver(6); ok {
		t.Error("empty history should not report a debt delta")
	}

	for i := 1; i <= 15; i++ {
		h = append(h, Snapshot{Turn: i, DebtPctGDP: 90 + float64(i), Inflation: 2})
	}
	last, _ := h.Last()
	if last.Turn != 15 {
		t.Errorf("Last().Turn = %d, want 15", last.Turn)
	}
	delta, ok := h.DebtDeltaOver(12)
	if !ok || math.Abs(delta-12) > 1e-9 {
		t.Errorf("DebtDeltaOver(12) = %v, %v; want 12, true", delta, ok)
	}
	if got := len(h.Window(6)); got != 6 {
		t.Errorf("Window(6) length = %d", got)
	}
	if avg := h.AvgInflation(6, 0); math.Abs(avg-2) > 1e-9 {
		t.Errorf("AvgInflation = %v, want 2", avg)
	}
}

func TestRuleLookup(t *testing.T) {
	for _, id := range RuleIDs() {
		r := RuleByID(id)
		if r.ID != id {
			t.Errorf("RuleByID(%q).ID = %q", id, r.ID)
		}
	}
	if RuleByID("no-such-rule").ID != "golden-rule" {
		t.Error("unknown rule should default to golden-rule")
	}
	if !RuleByID("golden-rule").LongHorizon() {
		t.Error("golden rule should be long horizon")
	}
	if RuleByID("debt-falling").LongHorizon() {
		t.Error("debt-falling rule should be short horizon")
	}
}

func TestNormaliseAdvisers(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want AdviserSet
	}{
		{"nil means no advisers", nil, NoAdvisers()},
		{"garbage means no advisers", 42, NoAdvisers()},
		{"bare effect map", map[string]any{"growth_bonus": 0.02, "revenue_mult": 1.01},
			AdviserSet{GrowthBonus: 0.02, RevenueMult: 1.01}},
		{"object keyed by id", map[string]any{
			"growth-guru": map[string]any{"growth_bonus": 0.01},
			"tax-fixer":   map[string]any{"revenue_mult": 1.02},
		}, AdviserSet{GrowthBonus: 0.01, RevenueMult: 1.02}},
		{"pair list", []any{
			[]any{"growth-guru", map[string]any{"growth_bonus": 0.01}},
			[]any{"debt-whisperer", map[string]any{"debt_interest_discount": 0.05}},
		}, AdviserSet{GrowthBonus: 0.01, RevenueMult: 1.0, DebtInterestDiscount: 0.05}},
	}
	for _, tc := range tests {
		got := NormaliseAdvisers(tc.raw)
		if math.Abs(got.GrowthBonus-tc.want.GrowthBonus) > 1e-9 ||
			math.Abs(got.RevenueMult-tc.want.RevenueMult) > 1e-9 ||
			math.Abs(got.DebtInterestDiscount-tc.want.DebtInterestDiscount) > 1e-9 {
			t.Errorf("%s: NormaliseAdvisers = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestNormaliseAdvisersClampsCheats(t *testing.T) {
	got := NormaliseAdvisers(map[string]any{"growth_bonus": 5.0, "revenue_mult": 3.0})
	if got.GrowthBonus > 0.05 {
		t.Errorf("growth bonus not clamped: %v", got.GrowthBonus)
	}
	if got.RevenueMult > 1.05 {
		t.Errorf("revenue mult not clamped: %v", got.RevenueMult)
	}
}

func TestDepartmentTotalsAreOrderStable(t *testing.T) {
	s := New(DifficultyStandard, "golden-rule")
	// Awkward values so any reordering of the float sum shows up in the
	// low bits.
	for name, d := range s.Fiscal.Departments {
		d.Current *= 1.0171
		d.Capital *= 0.9833
		s.Fiscal.Departments[name] = d
	}

	if !sort.StringsAreSorted(s.Fiscal.DeptNames()) {
		t.Fatal("DeptNames is not sorted")
	}

	dept := s.Fiscal.DepartmentalTotal()
	current := s.Fiscal.CurrentTotal()
	capital := s.Fiscal.CapitalTotal()
	for i := 0; i < 200; i++ {
		if got := s.Fiscal.DepartmentalTotal(); got != dept {
			t.Fatalf("DepartmentalTotal drifted on call %d: %v != %v", i, got, dept)
		}
		if got := s.Fiscal.CurrentTotal(); got != current {
			t.Fatalf("CurrentTotal drifted on call %d: %v != %v", i, got, current)
		}
		if got := s.Fiscal.CapitalTotal(); got != capital {
			t.Fatalf("CapitalTotal drifted on call %d: %v != %v", i, got, capital)
		}
	}
}
