package econ

import (
	"math"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// Demand multipliers per spending category, pp of annual growth per % of
// GDP of extra spending. Transfers lean hardest on high-MPC households.
const (
	multCurrent  = 0.6
	multCapital  = 0.8
	multTransfer = 0.9
)

// Tax demand coefficients, pp of monthly growth per rate point, before the
// slack multiplier. Derived from the marginal propensity to consume of
// each tax's payer base.
const (
	taxCoefBasic      = 0.015
	taxCoefHigher     = 0.005
	taxCoefAdditional = 0.002
	taxCoefEmployeeNI = 0.010
	taxCoefEmployerNI = 0.008
	taxCoefVAT        = 0.012
)

// corpErosionThreshold is the corporation-tax rate above which the
// investment penalty accelerates.
const corpErosionThreshold = 30.0

// UpdateGDP computes monthly real growth, nominal growth and the compounded
// annualised rate, and advances nominal GDP.
func UpdateGDP(s state.State, b state.Baseline, rng entropy.Source) state.Economy {
	e := s.Economy
	f := s.Fiscal

	// Trend: productivity plus labour-force growth, pulled a quarter of the
	// way toward medium-term potential each month.
	trendAnnual := e.ProductivityGrowth + b.LabourForceGrowth
	trendAnnual += 0.25 * (b.PotentialGrowth - trendAnnual)
	trendMonthly := trendAnnual / 12

	// Economic slack scales every demand effect: stimulus bites harder with
	// idle capacity, and is dampened when inflation is already running hot.
	slack := e.Unemployment - b.NAIRU
	slackMult := state.Clamp(1+0.25*slack, 0.5, 1.6)
	switch {
	case e.Inflation > b.InflationTarget+2:
		slackMult *= 0.6
	case e.Inflation > b.InflationTarget+1:
		slackMult *= 0.8
	}

	// Fiscal demand from spending deltas versus game start, % of GDP.
	welfare := f.Departments[state.DeptWelfare]
	baseWelfare := b.Departments[state.DeptWelfare]
	transferDelta := (welfare.Current - baseWelfare.Current) / e.GDPNominal * 100
	currentDelta := (f.CurrentTotal() - welfare.Current - (b.CurrentSpending - baseWelfare.Current)) / e.GDPNominal * 100
	capitalDelta := (f.CapitalTotal() - b.CapitalSpending) / e.GDPNominal * 100

	spendDemand := (multCurrent*currentDelta + multCapital*capitalDelta + multTransfer*transferDelta) * slackMult / 12

	// Tax demand channels.
	taxDemand := -(taxCoefBasic*(f.BasicRate-b.BasicRate) +
		taxCoefHigher*(f.HigherRate-b.HigherRate) +
		taxCoefAdditional*(f.AdditionalRate-b.AdditionalRate) +
		taxCoefEmployeeNI*(f.EmployeeNI-b.EmployeeNI) +
		taxCoefEmployerNI*(f.EmployerNI-b.EmployerNI) +
		taxCoefVAT*(f.VAT-b.VAT)) * slackMult

	// Corporation tax: short-run investment effect, accelerating base
	// erosion above the threshold rate.
	corpDelta := f.CorporationTax - b.CorporationTax
	corpEffect := -0.006 * corpDelta
	if f.CorporationTax > corpErosionThreshold {
		excess := f.CorporationTax - corpErosionThreshold
		corpEffect -= 0.002 * math.Pow(excess, 1.5)
	}

	// Supply side: service quality relative to the game-start indices. The
	// comparison is against where services started, not an abstract ideal —
	// a below-ideal starting NHS is not a growth penalty.
	supply := 0.0008*(s.Services.Health-b.Health) +
		0.0008*(s.Services.Education-b.Education) +
		0.0012*(s.Services.Infrastructure-b.Infrastructure)

	// Monetary conditions: long yields and the exchange rate.
	monetary := -0.010*(s.Market.Yield10-b.Yield10) -
		0.004*(s.Market.PolicyRate-b.PolicyRate) +
		0.0003*(b.CurrencyIndex-s.Market.CurrencyIndex)

	shock := rng.Shock(ChannelGrowth, s.Turn) * 0.05

	monthly := trendMonthly + spendDemand + taxDemand + corpEffect + supply + monetary +
		s.Advisers.GrowthBonus + shock

	// With every lever still at baseline, hold growth to a tight band
	// around trend so float noise and shocks cannot fake a boom or bust.
	if AtBaseline(f, b) {
		monthly = state.Clamp(monthly, trendMonthly-0.02, trendMonthly+0.02)
	}

	monthly = state.Clamp(monthly, -1.5, 1.5)

	e.MonthlyGrowth = monthly
	e.NominalGrowth = monthly + e.Inflation/12
	e.AnnualGrowth = (math.Pow(1+monthly/100, 12) - 1) * 100
	e.GDPNominal *= 1 + e.NominalGrowth/100
	return e
}

// AtBaseline reports whether every tax and spending lever still sits at
// its game-start value.
func AtBaseline(f state.Fiscal, b state.Baseline) bool {
	if f.BasicRate != b.BasicRate || f.HigherRate != b.HigherRate ||
		f.AdditionalRate != b.AdditionalRate || f.EmployeeNI != b.EmployeeNI ||
		f.EmployerNI != b.EmployerNI || f.VAT != b.VAT ||
		f.CorporationTax != b.CorporationTax {
		return false
	}
	for name, d := range f.Departments {
		if d != b.Departments[name] {
			return false
		}
	}
	for _, l := range f.Programmes {
		if l.Value != l.Baseline {
			return false
		}
	}
	return true
}
