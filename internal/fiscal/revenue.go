// Package fiscal is the fiscal engine: tax revenue with behavioural
// avoidance, spending effects including debt service, the deficit/debt
// accounts and fiscal-rule compliance.
package fiscal

import (
	"math"

	"chancellor/internal/state"
)

// Revenue elasticities: how each tax base scales with cumulative nominal
// output. Corporate profits are the most cyclical base.
var elasticities = map[state.TaxBase]float64{
	state.BaseIncome:      1.1,
	state.BasePayroll:     1.0,
	state.BaseConsumption: 0.95,
	state.BaseCorporate:   1.3,
	state.BaseOther:       1.0,
}

// Avoidance thresholds: the rate above which behavioural losses grow
// exponentially for each base.
const (
	topRateAvoidanceThreshold = 50.0 // additional income-tax rate
	employeeNIThreshold       = 12.0
	employerNIThreshold       = 15.0
	vatDemandThreshold        = 20.0
	corpBaseErosionThreshold  = 30.0
)

// baseOrder fixes the summation order over the breakdown map. Float
// addition is not associative; summing in map order would break seed
// reproducibility.
var baseOrder = []state.TaxBase{
	state.BaseIncome, state.BasePayroll, state.BaseConsumption,
	state.BaseCorporate, state.BaseOther,
}

// Revenue per rate point at baseline GDP, £bn/yr. Scaled up with the
// output ratio alongside the bases they belong to.
const (
	perPointBasic      = 7.0
	perPointHigher     = 1.6
	perPointAdditional = 0.2
	perPointEmployeeNI = 6.5
	perPointEmployerNI = 8.0
	perPointVAT        = 8.0
	perPointCorp       = 4.0
	perPointCGT        = 0.15
	perPointFuelDuty   = 0.05
	perPointBankLevy   = 2.0
	perThousandPA      = 7.0 // cost of each £1000 added to the personal allowance
)

// RevenueBreakdown computes annual revenue per tax base: the baseline
// stream scaled by the cumulative nominal-output ratio raised to the
// base's elasticity, plus rate-change effects, minus avoidance losses.
func RevenueBreakdown(s state.State, b state.Baseline) map[state.TaxBase]float64 {
	f := s.Fiscal
	ratio := s.Economy.GDPNominal / b.GDPNominal
	avoid := s.Difficulty.Params().AvoidanceMult

	out := make(map[state.TaxBase]float64, len(elasticities))
	for base, baseline := range b.Revenue {
		out[base] = baseline * math.Pow(ratio, elasticities[base])
	}

	// Rate-change effects, scaled with the output ratio so a point of
	// basic rate is worth more in a bigger economy.
	paDelta := (f.Programmes["personal-allowance"].Delta()) / 1000
	out[state.BaseIncome] += ratio * (perPointBasic*(f.BasicRate-b.BasicRate) +
		perPointHigher*(f.HigherRate-b.HigherRate) +
		perPointAdditional*(f.AdditionalRate-b.AdditionalRate) +
		perPointCGT*f.Programmes["capital-gains-rate"].Delta() -
		perThousandPA*paDelta)
	out[state.BasePayroll] += ratio * (perPointEmployeeNI*(f.EmployeeNI-b.EmployeeNI) +
		perPointEmployerNI*(f.EmployerNI-b.EmployerNI))
	out[state.BaseConsumption] += ratio * (perPointVAT*(f.VAT-b.VAT) +
		perPointFuelDuty*f.Programmes["fuel-duty"].Delta())
	out[state.BaseCorporate] += ratio * (perPointCorp*(f.CorporationTax-b.CorporationTax) +
		perPointBankLevy*f.Programmes["bank-levy"].Delta())

	// Behavioural losses: zero at or below each threshold, exponential
	// above it, scaled by the difficulty avoidance multiplier.
	out[state.BaseIncome] -= avoid * AvoidanceLoss(f.AdditionalRate, topRateAvoidanceThreshold, 0.8, 0.25)
	out[state.BasePayroll] -= avoid * (AvoidanceLoss(f.EmployeeNI, employeeNIThreshold, 0.5, 0.20) +
		AvoidanceLoss(f.EmployerNI, employerNIThreshold, 0.6, 0.20))
	out[state.BaseConsumption] -= avoid * AvoidanceLoss(f.VAT, vatDemandThreshold, 0.9, 0.18)
	out[state.BaseCorporate] -= avoid * AvoidanceLoss(f.CorporationTax, corpBaseErosionThreshold, 1.2, 0.22)

	for base, v := range out {
		if v < 0 {
			out[base] = 0
		}
	}
	return out
}

// AvoidanceLoss is the behavioural revenue loss, £bn/yr, for a rate above
// its threshold: scale*(e^(k*(rate-threshold)) - 1), zero at or below the
// threshold and strictly increasing above it.
func AvoidanceLoss(rate, threshold, scale, k float64) float64 {
	if rate <= threshold {
		return 0
	}
	return scale * (math.Exp(k*(rate-threshold)) - 1)
}

// UpdateRevenue totals the breakdown and applies the adviser revenue
// multiplier.
func UpdateRevenue(s state.State, b state.Baseline) state.Fiscal {
	f := s.Fiscal
	breakdown := RevenueBreakdown(s, b)
	var total float64
	for _, base := range baseOrder {
		total += breakdown[base]
	}
	f.TotalRevenue = total * s.Advisers.RevenueMult
	return f
}
