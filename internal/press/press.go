// Package press holds the narrow contracts to the presentation-side
// collaborators: public sentiment, random events and news, and leader
// communications. The orchestrator treats all three as optional — an error
// (or panic) from any of them degrades to "no contribution this turn".
package press

import (
	"chancellor/internal/state"
)

// SentimentSummary is the opinion module's output. The core folds a small,
// capped contribution of Net() into approval and backbench satisfaction.
type SentimentSummary struct {
	Positive float64 `json:"positive"` // 0–1
	Negative float64 `json:"negative"` // 0–1
	Neutral  float64 `json:"neutral"`  // 0–1
	Volume   int     `json:"volume"`
}

// Net returns the signed sentiment balance in [-1, 1].
func (s SentimentSummary) Net() float64 { return s.Positive - s.Negative }

// Projection is the minimal read-only slice of state the sentiment module
// sees.
type Projection struct {
	Approval     float64
	Inflation    float64
	Unemployment float64
	AnnualGrowth float64
	Yield10      float64
	StrikeRisk   float64
}

// ProjectionOf builds the sentiment projection from full state.
func ProjectionOf(s state.State) Projection {
	return Projection{
		Approval:     s.Politics.Approval,
		Inflation:    s.Economy.Inflation,
		Unemployment: s.Economy.Unemployment,
		AnnualGrowth: s.Economy.AnnualGrowth,
		Yield10:      s.Market.Yield10,
		StrikeRisk:   s.Politics.StrikeRisk,
	}
}

// SentimentModel summarises public opinion for the month.
type SentimentModel interface {
	Summarise(p Projection) (SentimentSummary, error)
}

// Impact is the immediate numeric patch an event applies synchronously.
type Impact struct {
	Approval        float64 `json:"approval"`
	Inflation       float64 `json:"inflation"`
	Credibility     float64 `json:"credibility"`
	EmergencyName   string  `json:"emergency_name,omitempty"`
	EmergencyCost   float64 `json:"emergency_cost,omitempty"` // £bn/yr
	EmergencyMonths int     `json:"emergency_months,omitempty"`
}

// Event is a random occurrence generated for the month.
type Event struct {
	ID               string `json:"id"`
	Category         string `json:"category"`
	Headline         string `json:"headline"`
	Impact           Impact `json:"impact"`
	ResponseRequired bool   `json:"response_required"`
}

// News is the month's optional news artifact.
type News struct {
	Masthead string   `json:"masthead"`
	Lead     string   `json:"lead"`
	Stories  []string `json:"stories"`
}

// EventModel generates the month's events and news from a read-only view
// of the full state.
type EventModel interface {
	Generate(s state.State) ([]Event, *News, error)
}

// LeaderResult is the leader-communication module's output for the month.
type LeaderResult struct {
	Message    string  `json:"message,omitempty"`
	TrustDelta float64 `json:"trust_delta"`
	Removed    bool    `json:"removed"` // immediate terminal condition
}

// LeaderModel processes the monthly relationship with Number 10.
type LeaderModel interface {
	Process(s state.State) (LeaderResult, error)
}
