package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"chancellor/internal/econ"
	"chancellor/internal/fiscal"
	"chancellor/internal/market"
	"chancellor/internal/parliament"
	"chancellor/internal/politics"
	"chancellor/internal/press"
	"chancellor/internal/services"
	"chancellor/internal/state"
)

const monthsPerFiscalYear = 12

// AdvanceTurn runs the full monthly pipeline in its fixed order and
// returns the new state and whether the session has ended. No step is
// skipped or reordered; the optional collaborators are wrapped so their
// failure degrades to "no contribution" rather than aborting the turn.
func (ss *Session) AdvanceTurn() (state.State, bool) {
	if ss.State.Over {
		return ss.State, true
	}

	s := ss.State.Clone()
	s.Turn++
	ss.TurnEvents = ss.TurnEvents[:0]
	ss.News = nil

	// Fiscal-year rollover runs before the main pipeline: re-snapshot the
	// year's starting spending and settle the annual pledge account.
	if s.Turn-s.Fiscal.FYStartTurn > monthsPerFiscalYear {
		s = ss.rolloverFiscalYear(s)
	}

	// Time-limited programmes tick down and expire.
	s.Emergency = decrementProgrammes(s.Emergency)

	// Macro block.
	s.Economy = econ.UpdateProductivity(s, ss.Base)
	s.Economy = econ.UpdateGDP(s, ss.Base, ss.Rng)
	s.Economy = econ.UpdateEmployment(s, ss.Base)
	s.Economy = econ.UpdateInflation(s, ss.Base, ss.Rng)
	s.Economy = econ.UpdateWages(s, ss.Base)
	s.Market = econ.UpdatePolicyRate(s, ss.Base)

	// Fiscal block.
	s.Fiscal = fiscal.UpdateRevenue(s, ss.Base)
	s.Fiscal = fiscal.UpdateSpending(s, ss.Base)
	s.Fiscal = fiscal.UpdateBalance(s, ss.Base)
	comp := fiscal.EvaluateCompliance(s, ss.Base)
	s.Politics.Compliance = comp.Record
	s.Politics.Credibility = state.Clamp(s.Politics.Credibility+comp.CredibilityDelta, 0, 100)

	// Markets and services.
	s.Market = market.UpdateMarket(s, ss.Base)
	s.Services = services.UpdateServices(s, ss.Base)

	// Political block.
	s.Politics = politics.UpdateStrikeRisk(s, ss.Base)
	sentiment := ss.safeSentiment(s)
	s.Politics = politics.UpdateApproval(s, ss.Base, sentiment, ss.Rng)
	s.Politics = politics.UpdateBackbench(s, ss.Base, sentiment*0.5)
	ss.Stances = parliament.Stances(ss.Benches, s, ss.Base)
	s.Politics = politics.UpdateTrust(s, ss.Base)

	if iv, ok := politics.CheckIntervention(s, ss.Rng); ok {
		s.Politics.Pending = append(s.Politics.Pending, iv)
		ss.record(s.Turn, "political", iv.Description)
	}

	// Leader communications: a removal signal is an immediate terminal.
	if res, ok := ss.safeLeader(s); ok {
		s.Politics.PMTrust = state.Clamp(s.Politics.PMTrust+res.TrustDelta, 0, 100)
		if res.Message != "" {
			ss.record(s.Turn, "leader", res.Message)
		}
		if res.Removed {
			s.Over = true
			s.OverReason = res.Message
		}
	}

	// Random events and news.
	s = ss.safeEvents(s)

	// Credit rating reassessment on its fixed cadence only.
	if s.Turn%market.RatingCadence == 0 {
		res := market.ReassessRating(s, ss.Base)
		if res.Moved != 0 {
			ss.record(s.Turn, "market", fmt.Sprintf("Credit rating moved %s → %s (%s outlook)",
				s.Politics.Rating, res.Rating, res.Outlook))
		}
		s.Politics.Rating = res.Rating
		s.Politics.RatingOutlook = res.Outlook
		s.Politics.Credibility = state.Clamp(s.Politics.Credibility+res.CredibilityDelta, 0, 100)
	}

	s.Fiscal.VATPrev = s.Fiscal.VAT
	s.History = append(s.History, state.SnapshotOf(s))

	if !s.Over {
		if over, reason := politics.CheckTerminal(s, ss.Rng); over {
			s.Over = true
			s.OverReason = reason
		}
	}
	if s.Over {
		ss.record(s.Turn, "terminal", s.OverReason)
	}

	ss.State = s
	ss.logTurn(s)
	return s, s.Over
}

func (ss *Session) rolloverFiscalYear(s state.State) state.State {
	s.Fiscal.FYStartTurn += monthsPerFiscalYear
	s.Fiscal.YearCounter++
	s.Fiscal.YearStartSpending = make(map[string]state.DeptBudget, len(s.Fiscal.Departments))
	for k, v := range s.Fiscal.Departments {
		s.Fiscal.YearStartSpending[k] = v
	}

	fresh := politics.CheckPledges(s, ss.Base)
	if len(fresh) > 0 {
		s.Politics.Manifesto = politics.ApplyViolations(s.Politics.Manifesto, fresh)
		for _, id := range fresh {
			ss.record(s.Turn, "manifesto", fmt.Sprintf("Manifesto pledge broken: %s", id))
		}
	}
	ss.record(s.Turn, "fiscal", fmt.Sprintf("Fiscal year %d begins", s.Fiscal.YearCounter))
	return s
}

func decrementProgrammes(progs []state.EmergencyProgramme) []state.EmergencyProgramme {
	out := progs[:0]
	for _, p := range progs {
		p.RemainingMonths--
		if p.RemainingMonths > 0 {
			out = append(out, p)
		}
	}
	return out
}

// safeSentiment returns the capped sentiment contribution, zero when the
// module is absent or fails.
func (ss *Session) safeSentiment(s state.State) (net float64) {
	if ss.Sentiment == nil {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("sentiment module panicked", "recover", r)
			net = 0
		}
	}()
	sum, err := ss.Sentiment.Summarise(press.ProjectionOf(s))
	if err != nil {
		slog.Debug("sentiment module failed", "error", err)
		return 0
	}
	return sum.Net()
}

// safeLeader wraps the leader-communication module.
func (ss *Session) safeLeader(s state.State) (res press.LeaderResult, ok bool) {
	if ss.Leader == nil {
		return press.LeaderResult{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("leader module panicked", "recover", r)
			ok = false
		}
	}()
	res, err := ss.Leader.Process(s)
	if err != nil {
		slog.Debug("leader module failed", "error", err)
		return press.LeaderResult{}, false
	}
	return res, true
}

// safeEvents generates the month's events and applies only the immediate
// impact patches synchronously; a failing event model means no news.
func (ss *Session) safeEvents(s state.State) (out state.State) {
	out = s
	if ss.Events == nil {
		return out
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("event module panicked", "recover", r)
			out = s
		}
	}()
	events, news, err := ss.Events.Generate(s)
	if err != nil {
		slog.Debug("event module failed", "error", err)
		return s
	}
	ss.News = news
	for _, e := range events {
		ss.record(s.Turn, e.Category, e.Headline)
		s.Politics.Approval = state.Clamp(s.Politics.Approval+e.Impact.Approval, 5, 80)
		s.Economy.Inflation = state.Clamp(s.Economy.Inflation+e.Impact.Inflation, -2, 25)
		s.Politics.Credibility = state.Clamp(s.Politics.Credibility+e.Impact.Credibility, 0, 100)
		if e.Impact.EmergencyCost > 0 && e.Impact.EmergencyMonths > 0 {
			s.Emergency = append(s.Emergency, state.EmergencyProgramme{
				ID:              uuid.NewString(),
				Name:            e.Impact.EmergencyName,
				AnnualCost:      e.Impact.EmergencyCost,
				RemainingMonths: e.Impact.EmergencyMonths,
			})
		}
	}
	return s
}

func (ss *Session) record(turn int, category, description string) {
	ss.TurnEvents = append(ss.TurnEvents, Event{Turn: turn, Category: category, Description: description})
}

func (ss *Session) logTurn(s state.State) {
	slog.Info("monthly report",
		"turn", s.Turn,
		"fy", s.Fiscal.YearCounter,
		"growth", fmt.Sprintf("%.2f", s.Economy.AnnualGrowth),
		"inflation", fmt.Sprintf("%.1f", s.Economy.Inflation),
		"unemployment", fmt.Sprintf("%.1f", s.Economy.Unemployment),
		"deficit", fmt.Sprintf("£%sbn", humanize.CommafWithDigits(s.Fiscal.Deficit, 1)),
		"debt_pct", fmt.Sprintf("%.1f", s.Fiscal.DebtPctGDP),
		"yield10", fmt.Sprintf("%.2f", s.Market.Yield10),
		"approval", fmt.Sprintf("%.1f", s.Politics.Approval),
		"trust", fmt.Sprintf("%.1f", s.Politics.PMTrust),
		"compliant", s.Politics.Compliance.Compliant,
		"events", len(ss.TurnEvents),
	)
}
