// Package services evolves the public-service quality indices from
// spending flows. Real spending is compared against a baseline that grows
// with demand; improvements arrive slowly, cuts bite fast.
package services

import (
	"math"

	"chancellor/internal/state"
)

// Annual demand growth for the headline services: ageing for health,
// cohort sizes for education, depreciation for infrastructure.
const (
	healthDemandGrowth = 0.018
	eduDemandGrowth    = 0.008
	infraDemandGrowth  = 0.012
)

// Asymmetric lag: fraction of the quality gap that lands each month.
// Hiring nurses takes years; closing wards takes a memo.
const (
	improveLag = 0.30
	cutLag     = 0.50
)

// diminishingRatio is the spending ratio above which extra money earns
// only logarithmic returns.
const diminishingRatio = 1.20

// programmeDemandGrowth is the annual demand growth per granular
// programme.
var programmeDemandGrowth = map[string]float64{
	"mental-health":      0.025,
	"gp-access":          0.020,
	"social-care":        0.030,
	"send-support":       0.035,
	"school-maintenance": 0.010,
	"prison-safety":      0.015,
	"courts-backlog":     0.012,
	"rail-reliability":   0.015,
	"road-maintenance":   0.010,
	"social-housing":     0.020,
	"policing":           0.012,
	"skills-training":    0.010,
}

// UpdateServices evolves the three headline indices and every granular
// programme index for one month.
func UpdateServices(s state.State, b state.Baseline) state.Services {
	sv := s.Services
	f := s.Fiscal
	months := s.Turn
	price := s.Economy.PriceLevel / 100

	healthSpend := f.Departments[state.DeptHealth].Total()
	eduSpend := f.Departments[state.DeptEducation].Total()
	infraSpend := f.Departments[state.DeptTransport].Total() + f.Departments[state.DeptHousing].Capital

	healthBase := b.Departments[state.DeptHealth].Total()
	eduBase := b.Departments[state.DeptEducation].Total()
	infraBase := b.Departments[state.DeptTransport].Total() + b.Departments[state.DeptHousing].Capital

	sv.Health = evolveHeadline(sv.Health, fundingRatio(healthSpend, healthBase, healthDemandGrowth, months, price))
	sv.Education = evolveHeadline(sv.Education, fundingRatio(eduSpend, eduBase, eduDemandGrowth, months, price))
	sv.Infrastructure = evolveHeadline(sv.Infrastructure, fundingRatio(infraSpend, infraBase, infraDemandGrowth, months, price))

	progs := make(map[string]float64, len(sv.Programmes))
	for name, idx := range sv.Programmes {
		lever, ok := f.Programmes[name]
		if !ok {
			progs[name] = idx
			continue
		}
		g := programmeDemandGrowth[name]
		ratio := fundingRatio(lever.Value, lever.Baseline, g, months, price)
		progs[name] = evolveProgramme(idx, ratio)
	}
	sv.Programmes = progs
	return sv
}

// fundingRatio is inflation-adjusted real spending over a demand-adjusted
// baseline compounded over elapsed months.
func fundingRatio(spend, baseline, annualDemandGrowth float64, months int, priceLevel float64) float64 {
	if baseline <= 0 {
		return 1
	}
	demand := baseline * math.Pow(1+annualDemandGrowth, float64(months)/12)
	real := spend / priceLevel
	return real / demand
}

// tierDelta maps a funding ratio onto a full-adjustment quality movement,
// points per month before lag.
func tierDelta(ratio float64) float64 {
	switch {
	case ratio >= 1.05:
		return 1.2
	case ratio >= 1.0:
		return 0.3
	case ratio >= 0.95:
		return -0.4
	default:
		return -1.5 - 4.0*(0.95-ratio)
	}
}

// evolveHeadline applies the tiered delta with logarithmic diminishing
// returns above the high-spending threshold, extra damping near the index
// ceiling, the asymmetric lag, and the [0,100] clamp.
func evolveHeadline(idx, ratio float64) float64 {
	if ratio > diminishingRatio {
		ratio = diminishingRatio + math.Log(1+(ratio-diminishingRatio))
	}
	delta := tierDelta(ratio)
	if delta > 0 {
		// The closer to the ceiling, the harder each point is to win.
		delta *= state.Clamp((100-idx)/40, 0.1, 1.0)
		delta *= improveLag
	} else {
		delta *= cutLag
	}
	return state.Clamp(idx+delta, 0, 100)
}

// evolveProgramme is the single-function variant used by the granular
// indices: same ratio logic, proportional delta, same asymmetric lag.
func evolveProgramme(idx, ratio float64) float64 {
	delta := state.Clamp((ratio-1)*8, -2.0, 1.5)
	if delta > 0 {
		delta *= improveLag
	} else {
		delta *= cutLag
	}
	return state.Clamp(idx+delta, 0, 100)
}
