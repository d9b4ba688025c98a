// Package state defines the full simulation state for one play session:
// economy, fiscal accounts, markets, public services, political standing,
// emergency programmes and the rolling snapshot history. The state is a
// value: every turn the orchestrator derives a new State from the previous
// one, and no step mutates its input in place.
package state

import "sort"

// Units used throughout: money in £bn at annual rates, percentages in
// percent points (2.0 means 2%), quality and credibility indices on 0–100.

// Economy holds the macroeconomic block.
type Economy struct {
	GDPNominal         float64 `json:"gdp_nominal"`         // £bn, annual
	MonthlyGrowth      float64 `json:"monthly_growth"`      // real, % per month
	AnnualGrowth       float64 `json:"annual_growth"`       // real, compounded % per year
	NominalGrowth      float64 `json:"nominal_growth"`      // real + monthly inflation
	ProductivityGrowth float64 `json:"productivity_growth"` // annualised %
	ProductivityIndex  float64 `json:"productivity_index"`
	Inflation          float64 `json:"inflation"`        // annual %
	PriceLevel         float64 `json:"price_level"`      // CPI index, 100 at session start
	AnchoringHealth    float64 `json:"anchoring_health"` // 0–100
	Unemployment       float64 `json:"unemployment"`     // %
	WageGrowth         float64 `json:"wage_growth"`      // annual %
}

// DeptBudget splits a department's spending into day-to-day and investment.
type DeptBudget struct {
	Current float64 `json:"current"` // £bn/yr
	Capital float64 `json:"capital"` // £bn/yr
}

// Total returns current plus capital spending.
func (d DeptBudget) Total() float64 { return d.Current + d.Capital }

// Lever is a named policy parameter: a spending programme budget or a tax
// parameter, carrying its live value and its game-start baseline. Demand
// and avoidance models compare Value against Baseline; the Baseline field
// is set once at session start and never changes.
type Lever struct {
	Value    float64 `json:"value"`
	Baseline float64 `json:"baseline"`
}

// Delta returns the change from game start.
func (l Lever) Delta() float64 { return l.Value - l.Baseline }

// Fiscal holds tax policy, spending plans and the debt position.
type Fiscal struct {
	// Tax rates, %.
	BasicRate       float64 `json:"basic_rate"`
	HigherRate      float64 `json:"higher_rate"`
	AdditionalRate  float64 `json:"additional_rate"`
	EmployeeNI      float64 `json:"employee_ni"`
	EmployerNI      float64 `json:"employer_ni"`
	VAT             float64 `json:"vat"`
	CorporationTax  float64 `json:"corporation_tax"`
	BenefitTaperate float64 `json:"benefit_taper_rate"` // withdrawal rate for the poverty-trap check

	// VATPrev is last month's VAT rate, kept so the inflation model can
	// apply the one-off pass-through exactly once per change.
	VATPrev float64 `json:"vat_prev"`

	// Departmental spending, keyed by department name.
	Departments map[string]DeptBudget `json:"departments"`

	// Granular named levers: spending programmes and tax parameters.
	Programmes map[string]Lever `json:"programmes"`

	// Aggregates, £bn/yr.
	TotalRevenue  float64 `json:"total_revenue"`
	TotalSpending float64 `json:"total_spending"` // total managed expenditure
	DebtInterest  float64 `json:"debt_interest"`
	BlendedRate   float64 `json:"blended_rate"`    // effective interest rate on the debt stock, %
	Stabiliser    float64 `json:"auto_stabiliser"` // welfare top-up from above-baseline unemployment, £bn/yr
	Deficit       float64 `json:"deficit"`
	DeficitPctGDP float64 `json:"deficit_pct_gdp"`
	DebtNominal   float64 `json:"debt_nominal"`
	DebtPctGDP    float64 `json:"debt_pct_gdp"`
	Headroom      float64 `json:"headroom"` // margin against the active rule, £bn/yr

	// Fiscal-year bookkeeping.
	FYStartTurn       int                   `json:"fy_start_turn"`
	YearStartSpending map[string]DeptBudget `json:"year_start_spending"`
	YearCounter       int                   `json:"year_counter"`
}

// DeptNames returns the department keys in sorted order. Float addition is
// not associative, so every sum over the map must run in a fixed order or
// same-seed sessions drift apart in the low bits.
func (f Fiscal) DeptNames() []string {
	names := make([]string, 0, len(f.Departments))
	for name := range f.Departments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DepartmentalTotal sums current+capital across all departments.
func (f Fiscal) DepartmentalTotal() float64 {
	var t float64
	for _, name := range f.DeptNames() {
		t += f.Departments[name].Total()
	}
	return t
}

// CapitalTotal sums capital spending across all departments.
func (f Fiscal) CapitalTotal() float64 {
	var t float64
	for _, name := range f.DeptNames() {
		t += f.Departments[name].Capital
	}
	return t
}

// CurrentTotal sums day-to-day spending across all departments.
func (f Fiscal) CurrentTotal() float64 {
	var t float64
	for _, name := range f.DeptNames() {
		t += f.Departments[name].Current
	}
	return t
}

// Market holds rates, yields, the currency index and the panic flag.
type Market struct {
	PolicyRate    float64 `json:"policy_rate"`
	Yield2        float64 `json:"yield_2y"`
	Yield5        float64 `json:"yield_5y"`
	Yield10       float64 `json:"yield_10y"`
	MortgageRate  float64 `json:"mortgage_rate"`
	CurrencyIndex float64 `json:"currency_index"`
	Panic         bool    `json:"panic"` // margin-call feedback loop armed
}

// Services holds the headline and granular public-service quality indices,
// all on 0–100.
type Services struct {
	Health         float64 `json:"health"`
	Education      float64 `json:"education"`
	Infrastructure float64 `json:"infrastructure"`

	// Granular per-programme indices, keyed by programme name. Each evolves
	// from its own programme budget in Fiscal.Programmes.
	Programmes map[string]float64 `json:"programmes"`
}

// Compliance is the per-turn fiscal-rule compliance record.
type Compliance struct {
	CurrentBudgetMet  bool    `json:"current_budget_met"`
	OverallBalanceMet bool    `json:"overall_balance_met"`
	DeficitCeilingMet bool    `json:"deficit_ceiling_met"`
	DebtTargetMet     bool    `json:"debt_target_met"`
	DebtFallingMet    bool    `json:"debt_falling_met"`
	InvestmentRuleMet bool    `json:"investment_rule_met"`
	Compliant         bool    `json:"compliant"`
	ConsecutiveBreach int     `json:"consecutive_breaches"`
	CurrentBudgetGap  float64 `json:"current_budget_gap"` // £bn/yr, positive = surplus
	CapitalInvestment float64 `json:"capital_investment"` // £bn/yr
}

// EffectPayload is the consequence bundle attached to an intervention
// response path.
type EffectPayload struct {
	Approval    float64 `json:"approval"`
	Backbench   float64 `json:"backbench"`
	Trust       float64 `json:"trust"`
	Credibility float64 `json:"credibility"`
}

// Intervention is a pending political event demanding a player response.
type Intervention struct {
	ID            string        `json:"id"`
	Trigger       string        `json:"trigger"` // "revolt", "manifesto", "approval", "market"
	Description   string        `json:"description"`
	Comply        EffectPayload `json:"comply"`
	Defy          EffectPayload `json:"defy"`
	ReshuffleRisk float64       `json:"reshuffle_risk"` // probability 0–1
}

// Manifesto tracks pledge violations, checked annually at fiscal-year end.
type Manifesto struct {
	Violations []string `json:"violations"` // pledge identifiers, order of first breach
}

// Count returns the number of recorded violations.
func (m Manifesto) Count() int { return len(m.Violations) }

// Politics holds approval, party management and crisis state.
type Politics struct {
	Approval       float64 `json:"approval"`        // government, 0–100
	LeaderApproval float64 `json:"leader_approval"` // chancellor personally
	Backbench      float64 `json:"backbench"`       // parliamentary party satisfaction
	PMTrust        float64 `json:"pm_trust"`
	Credibility    float64 `json:"credibility"` // fiscal credibility index
	StrikeRisk     float64 `json:"strike_risk"` // 0–100

	FiscalRule string     `json:"fiscal_rule"` // active rule identifier
	Compliance Compliance `json:"compliance"`

	Pending   []Intervention `json:"pending_interventions"`
	Manifesto Manifesto      `json:"manifesto"`

	Rating        string `json:"credit_rating"`
	RatingOutlook string `json:"rating_outlook"` // "positive", "stable", "negative"
}

// EmergencyProgramme is a time-limited cost commitment. It contributes
// MonthlyCost (expressed at an annual rate) to total managed expenditure
// until RemainingMonths reaches zero, at which point it is removed.
type EmergencyProgramme struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AnnualCost      float64 `json:"annual_cost"` // £bn/yr while active
	RemainingMonths int     `json:"remaining_months"`
}

// State is the complete session state for one month.
type State struct {
	Turn       int                  `json:"turn"` // months since session start, 0 = pre-game
	Difficulty Difficulty           `json:"difficulty"`
	Economy    Economy              `json:"economy"`
	Fiscal     Fiscal               `json:"fiscal"`
	Market     Market               `json:"market"`
	Services   Services             `json:"services"`
	Politics   Politics             `json:"politics"`
	Emergency  []EmergencyProgramme `json:"emergency_programmes"`
	Advisers   AdviserSet           `json:"advisers"`
	History    History              `json:"history"`

	Over       bool   `json:"over"`
	OverReason string `json:"over_reason"`
}

// Clone returns a deep copy. Steps receive the previous state by value but
// share map and slice backing arrays until cloned; the orchestrator clones
// once per turn and threads the copy through the pipeline.
func (s State) Clone() State {
	c := s

	c.Fiscal.Departments = make(map[string]DeptBudget, len(s.Fiscal.Departments))
	for k, v := range s.Fiscal.Departments {
		c.Fiscal.Departments[k] = v
	}
	c.Fiscal.Programmes = make(map[string]Lever, len(s.Fiscal.Programmes))
	for k, v := range s.Fiscal.Programmes {
		c.Fiscal.Programmes[k] = v
	}
	c.Fiscal.YearStartSpending = make(map[string]DeptBudget, len(s.Fiscal.YearStartSpending))
	for k, v := range s.Fiscal.YearStartSpending {
		c.Fiscal.YearStartSpending[k] = v
	}
	c.Services.Programmes = make(map[string]float64, len(s.Services.Programmes))
	for k, v := range s.Services.Programmes {
		c.Services.Programmes[k] = v
	}
	c.Politics.Pending = append([]Intervention(nil), s.Politics.Pending...)
	c.Politics.Manifesto.Violations = append([]string(nil), s.Politics.Manifesto.Violations...)
	c.Emergency = append([]EmergencyProgramme(nil), s.Emergency...)
	c.History = append(History(nil), s.History...)
	return c
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
