package politics

import (
	"chancellor/internal/state"
)

// Pledge is an annually-checked manifesto commitment. Violated receives
// the cumulative price ratio since game start so real-terms pledges can
// deflate nominal budgets.
type Pledge struct {
	ID       string
	Text     string
	Violated func(f state.Fiscal, prices float64, b state.Baseline) bool
}

// Pledges are the commitments the government campaigned on. Checked once
// per fiscal year at rollover.
var Pledges = []Pledge{
	{
		ID:   "no-income-tax-rise",
		Text: "No rise in the basic or higher rate of income tax",
		Violated: func(f state.Fiscal, _ float64, b state.Baseline) bool {
			return f.BasicRate > b.BasicRate || f.HigherRate > b.HigherRate
		},
	},
	{
		ID:   "no-vat-rise",
		Text: "No rise in VAT",
		Violated: func(f state.Fiscal, _ float64, b state.Baseline) bool {
			return f.VAT > b.VAT
		},
	},
	{
		ID:   "no-ni-rise",
		Text: "No rise in National Insurance",
		Violated: func(f state.Fiscal, _ float64, b state.Baseline) bool {
			return f.EmployeeNI > b.EmployeeNI || f.EmployerNI > b.EmployerNI
		},
	},
	{
		ID:   "protect-health-spending",
		Text: "Health spending protected in real terms",
		Violated: func(f state.Fiscal, prices float64, b state.Baseline) bool {
			// Same 3% tolerance as the pensions pledge.
			return f.Departments[state.DeptHealth].Total() < b.Departments[state.DeptHealth].Total()*prices*0.97
		},
	},
	{
		ID:   "protect-pensions",
		Text: "The welfare budget for pensioners is protected",
		Violated: func(f state.Fiscal, _ float64, b state.Baseline) bool {
			return f.Departments[state.DeptWelfare].Current < b.Departments[state.DeptWelfare].Current*0.97
		},
	},
}

// CheckPledges returns the newly-violated pledge IDs: pledges broken this
// year that are not already on the record.
func CheckPledges(s state.State, b state.Baseline) []string {
	recorded := make(map[string]bool, len(s.Politics.Manifesto.Violations))
	for _, id := range s.Politics.Manifesto.Violations {
		recorded[id] = true
	}

	prices := s.Economy.PriceLevel / 100

	var fresh []string
	for _, pl := range Pledges {
		if recorded[pl.ID] {
			continue
		}
		if pl.Violated(s.Fiscal, prices, b) {
			fresh = append(fresh, pl.ID)
		}
	}
	return fresh
}

// ApplyViolations records fresh violations on the manifesto tracker.
func ApplyViolations(m state.Manifesto, fresh []string) state.Manifesto {
	m.Violations = append(m.Violations, fresh...)
	return m
}
