package press

import (
	"fmt"

	"github.com/google/uuid"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// DefaultSentiment is the bundled opinion model: a deterministic read of
// the projection, loud when things are bad.
type DefaultSentiment struct{}

func (DefaultSentiment) Summarise(p Projection) (SentimentSummary, error) {
	neg := 0.3
	pos := 0.3
	if p.Inflation > 4 {
		neg += 0.05 * (p.Inflation - 4)
	}
	if p.Unemployment > 5.5 {
		neg += 0.04 * (p.Unemployment - 5.5)
	}
	if p.AnnualGrowth > 2 {
		pos += 0.04 * (p.AnnualGrowth - 2)
	}
	if p.Approval > 45 {
		pos += 0.002 * (p.Approval - 45)
	}
	if p.StrikeRisk > 50 {
		neg += 0.002 * (p.StrikeRisk - 50)
	}
	neg = state.Clamp(neg, 0, 0.8)
	pos = state.Clamp(pos, 0, 0.8)
	neu := state.Clamp(1-pos-neg, 0, 1)
	volume := 1000 + int(40*(neg*100))
	return SentimentSummary{Positive: pos, Negative: neg, Neutral: neu, Volume: volume}, nil
}

// DefaultEvents rolls a small table of conditioned events. Draws come from
// the injected entropy source, so a fixed seed fixes the news cycle too.
type DefaultEvents struct {
	Rng entropy.Source
}

func (g DefaultEvents) Generate(s state.State) ([]Event, *News, error) {
	var events []Event

	roll := g.Rng.Float64()
	switch {
	case s.Politics.StrikeRisk > 60 && roll < 0.20:
		events = append(events, Event{
			ID:       uuid.NewString(),
			Category: "industrial",
			Headline: "Nurses vote for strike action over pay",
			Impact:   Impact{Approval: -1.5},
		})
	case s.Economy.Inflation > 6 && roll < 0.15:
		events = append(events, Event{
			ID:       uuid.NewString(),
			Category: "economy",
			Headline: "Energy price spike feeds through to household bills",
			Impact:   Impact{Inflation: 0.3, Approval: -1.0},
		})
	case s.Services.Health < 45 && roll < 0.18:
		events = append(events, Event{
			ID:               uuid.NewString(),
			Category:         "services",
			Headline:         "Winter crisis overwhelms A&E departments",
			Impact:           Impact{Approval: -2.0, EmergencyName: "winter NHS support", EmergencyCost: 3, EmergencyMonths: 4},
			ResponseRequired: true,
		})
	case roll < 0.05:
		events = append(events, Event{
			ID:       uuid.NewString(),
			Category: "world",
			Headline: "Global slowdown weighs on export orders",
			Impact:   Impact{Approval: -0.5},
		})
	}

	news := &News{
		Masthead: "The Morning Ledger",
		Lead: fmt.Sprintf("Inflation %.1f%%, unemployment %.1f%%, gilts at %.2f%%.",
			s.Economy.Inflation, s.Economy.Unemployment, s.Market.Yield10),
	}
	for _, e := range events {
		news.Stories = append(news.Stories, e.Headline)
	}
	if s.Politics.Approval < 25 {
		news.Stories = append(news.Stories, "Cabinet allies privately question the chancellor's future")
	}
	return events, news, nil
}

// DefaultLeader is the bundled Number 10 relationship model.
type DefaultLeader struct {
	Rng entropy.Source
}

func (l DefaultLeader) Process(s state.State) (LeaderResult, error) {
	var res LeaderResult
	p := s.Politics

	switch {
	case p.PMTrust < 25:
		res.Message = "The PM's office has stopped returning your calls."
		res.TrustDelta = -0.5
	case p.Approval > 50 && p.Credibility > 70:
		res.Message = "The PM praises your stewardship at cabinet."
		res.TrustDelta = 0.5
	}

	// A chancellor the PM no longer trusts can be sacked outright, ahead
	// of the formal trust-floor terminal check.
	d := s.Difficulty.Params()
	if p.PMTrust < d.TrustFloor+2 && l.Rng.Float64() < 0.15 {
		res.Removed = true
		res.Message = "A letter from Number 10: the PM has asked for your resignation."
	}
	return res, nil
}
