package state

// Rule is a fiscal rule: a statically-configured set of budget tests the
// monthly compliance check evaluates, plus the one-off market and political
// coefficients priced in when the rule is selected. Rules are configuration
// and are never mutated at runtime.
type Rule struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Budget tests. Zero-valued ceilings/targets mean the test is not part
	// of this rule.
	RequireCurrentBalance bool    `json:"require_current_balance"`
	RequireOverallBalance bool    `json:"require_overall_balance"`
	DeficitCeilingPct     float64 `json:"deficit_ceiling_pct"` // % of GDP
	DebtTargetPct         float64 `json:"debt_target_pct"`     // % of GDP
	RequireDebtFalling    bool    `json:"require_debt_falling"`
	InvestmentExemption   bool    `json:"investment_exemption"` // "borrow only to invest"
	HorizonYears          int     `json:"horizon_years"`        // compliance horizon

	// Selection-time coefficients.
	YieldOffset     float64 `json:"yield_offset"`     // pp added to the 10y yield
	CurrencyOffset  float64 `json:"currency_offset"`  // index points
	BackbenchTarget float64 `json:"backbench_target"` // satisfaction drift target
}

// LongHorizon reports whether the rule's compliance horizon is long enough
// that a balanced current budget counts as proof debt will fall, bypassing
// any observed debt trend. Preserved from the original design as a policy
// choice, not an economic derivation.
func (r Rule) LongHorizon() bool { return r.HorizonYears >= 5 }

var rules = map[string]Rule{
	"golden-rule": {
		ID:                    "golden-rule",
		Name:                  "Golden Rule",
		RequireCurrentBalance: true,
		RequireDebtFalling:    true,
		InvestmentExemption:   true,
		HorizonYears:          5,
		YieldOffset:           -0.10,
		CurrencyOffset:        1.0,
		BackbenchTarget:       60,
	},
	"deficit-ceiling": {
		ID:                "deficit-ceiling",
		Name:              "3% Deficit Ceiling",
		DeficitCeilingPct: 3.0,
		HorizonYears:      3,
		YieldOffset:       -0.05,
		CurrencyOffset:    0.5,
		BackbenchTarget:   62,
	},
	"debt-falling": {
		ID:                 "debt-falling",
		Name:               "Debt Falling",
		RequireDebtFalling: true,
		DebtTargetPct:      100,
		HorizonYears:       1,
		YieldOffset:        -0.15,
		CurrencyOffset:     1.5,
		BackbenchTarget:    58,
	},
	"balanced-budget": {
		ID:                    "balanced-budget",
		Name:                  "Balanced Budget",
		RequireOverallBalance: true,
		RequireDebtFalling:    true,
		HorizonYears:          2,
		YieldOffset:           -0.20,
		CurrencyOffset:        2.0,
		BackbenchTarget:       55,
	},
}

// RuleByID looks up a fiscal rule, defaulting to the golden rule for
// unknown identifiers.
func RuleByID(id string) Rule {
	if r, ok := rules[id]; ok {
		return r
	}
	return rules["golden-rule"]
}

// RuleIDs returns the selectable rule identifiers.
func RuleIDs() []string {
	return []string{"golden-rule", "deficit-ceiling", "debt-falling", "balanced-budget"}
}
