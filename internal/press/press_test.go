package press

import (
	"math"
	"strings"
	"testing"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

func TestDefaultSentimentCalmBaseline(t *testing.T) {
	sum, err := DefaultSentiment{}.Summarise(Projection{
		Approval:     40,
		Inflation:    2,
		Unemployment: 4.3,
		AnnualGrowth: 1.4,
		Yield10:      4.4,
		StrikeRisk:   25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Positive != 0.3 || sum.Negative != 0.3 {
		t.Fatalf("calm baseline pos/neg = %v/%v, want 0.3/0.3", sum.Positive, sum.Negative)
	}
	if sum.Net() != 0 {
		t.Fatalf("Net = %v, want 0", sum.Net())
	}
	if math.Abs(sum.Neutral-0.4) > 1e-9 {
		t.Fatalf("Neutral = %v, want 0.4", sum.Neutral)
	}
	if sum.Volume != 2200 {
		t.Fatalf("Volume = %d, want 2200", sum.Volume)
	}
}

func TestDefaultSentimentTurnsOnBadNews(t *testing.T) {
	sum, _ := DefaultSentiment{}.Summarise(Projection{
		Approval:     30,
		Inflation:    8,
		Unemployment: 8,
		AnnualGrowth: 0.2,
		Yield10:      6.5,
		StrikeRisk:   70,
	})
	if sum.Negative <= sum.Positive {
		t.Fatalf("bad month: negative %v should exceed positive %v", sum.Negative, sum.Positive)
	}
	if sum.Net() >= 0 {
		t.Fatalf("Net = %v, want negative", sum.Net())
	}
	if total := sum.Positive + sum.Negative + sum.Neutral; math.Abs(total-1) > 1e-9 {
		t.Fatalf("shares sum to %v, want 1", total)
	}
}

func TestDefaultSentimentCapsShares(t *testing.T) {
	sum, _ := DefaultSentiment{}.Summarise(Projection{
		Approval:     10,
		Inflation:    30,
		Unemployment: 14,
		StrikeRisk:   100,
	})
	if sum.Negative != 0.8 {
		t.Fatalf("Negative = %v, want capped at 0.8", sum.Negative)
	}
	if sum.Neutral != 0 {
		t.Fatalf("Neutral = %v, want floored at 0", sum.Neutral)
	}
}

func TestDefaultEventsQuietMonth(t *testing.T) {
	s := state.New(state.DifficultyStandard, "golden-rule")
	events, news, err := DefaultEvents{Rng: entropy.Fixed{Value: 0.5}}.Generate(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("quiet month generated %d events", len(events))
	}
	if news == nil {
		t.Fatal("news should always be produced")
	}
	if !strings.Contains(news.Lead, "Inflation") {
		t.Fatalf("lead = %q, want the monthly figures", news.Lead)
	}
	if len(news.Stories) != 0 {
		t.Fatalf("healthy politics should not seed stories, got %v", news.Stories)
	}
}

func TestDefaultEventsConditionedTable(t *testing.T) {
	base := state.New(state.DifficultyStandard, "golden-rule")
	gen := DefaultEvents{Rng: entropy.Fixed{Value: 0.1}}

	// No condition holds at the start state and 0.1 misses the 5% world
	// event, so a 0.1 roll stays quiet.
	if events, _, _ := gen.Generate(base); len(events) != 0 {
		t.Fatalf("start state at roll 0.1 generated %v", events)
	}

	hot := base.Clone()
	hot.Economy.Inflation = 8
	events, _, _ := gen.Generate(hot)
	if len(events) != 1 || events[0].Category != "economy" {
		t.Fatalf("hot inflation should fire the economy event, got %v", events)
	}
	if events[0].Impact.Inflation != 0.3 {
		t.Fatalf("economy event inflation impact = %v", events[0].Impact.Inflation)
	}
	if events[0].ID == "" {
		t.Fatal("event should carry an ID")
	}

	// Industrial unrest outranks the inflation story.
	unrest := hot.Clone()
	unrest.Politics.StrikeRisk = 70
	events, _, _ = gen.Generate(unrest)
	if len(events) != 1 || events[0].Category != "industrial" {
		t.Fatalf("strike conditions should fire the industrial event first, got %v", events)
	}

	collapse := base.Clone()
	collapse.Services.Health = 40
	events, _, _ = gen.Generate(collapse)
	if len(events) != 1 || events[0].Category != "services" {
		t.Fatalf("collapsing health should fire the services event, got %v", events)
	}
	if !events[0].ResponseRequired {
		t.Fatal("the services event demands a response")
	}
	if events[0].Impact.EmergencyMonths != 4 || events[0].Impact.EmergencyCost != 3 {
		t.Fatalf("services event emergency terms = %+v", events[0].Impact)
	}

	world := DefaultEvents{Rng: entropy.Fixed{Value: 0.01}}
	events, _, _ = world.Generate(base)
	if len(events) != 1 || events[0].Category != "world" {
		t.Fatalf("a 1%% roll should fire the world event, got %v", events)
	}
}

func TestDefaultEventsLowApprovalStory(t *testing.T) {
	s := state.New(state.DifficultyStandard, "golden-rule")
	s.Politics.Approval = 20
	_, news, _ := DefaultEvents{Rng: entropy.Fixed{Value: 0.5}}.Generate(s)
	if len(news.Stories) != 1 || !strings.Contains(news.Stories[0], "chancellor") {
		t.Fatalf("low approval should seed a leadership story, got %v", news.Stories)
	}
}

func TestDefaultLeaderBranches(t *testing.T) {
	base := state.New(state.DifficultyStandard, "golden-rule")

	neutral, _ := DefaultLeader{Rng: entropy.Fixed{Value: 0.5}}.Process(base)
	if neutral.Message != "" || neutral.TrustDelta != 0 || neutral.Removed {
		t.Fatalf("start state should be quiet, got %+v", neutral)
	}

	praised := base.Clone()
	praised.Politics.Approval = 55
	praised.Politics.Credibility = 75
	res, _ := DefaultLeader{Rng: entropy.Fixed{Value: 0.5}}.Process(praised)
	if res.TrustDelta != 0.5 || res.Message == "" {
		t.Fatalf("strong showing should earn praise, got %+v", res)
	}

	frosty := base.Clone()
	frosty.Politics.PMTrust = 20
	res, _ = DefaultLeader{Rng: entropy.Fixed{Value: 0.5}}.Process(frosty)
	if res.TrustDelta != -0.5 || res.Removed {
		t.Fatalf("low trust should chill relations without a sacking, got %+v", res)
	}
}

func TestDefaultLeaderCanSackNearTheFloor(t *testing.T) {
	s := state.New(state.DifficultyStandard, "golden-rule")
	s.Politics.PMTrust = 16 // inside floor+2 on standard

	res, _ := DefaultLeader{Rng: entropy.Fixed{Value: 0.1}}.Process(s)
	if !res.Removed {
		t.Fatalf("a 0.1 roll near the floor should remove the chancellor, got %+v", res)
	}
	if !strings.Contains(res.Message, "resignation") {
		t.Fatalf("message = %q", res.Message)
	}

	res, _ = DefaultLeader{Rng: entropy.Fixed{Value: 0.5}}.Process(s)
	if res.Removed {
		t.Fatal("a 0.5 roll should survive the month")
	}
}

func TestProjectionOf(t *testing.T) {
	s := state.New(state.DifficultyStandard, "golden-rule")
	p := ProjectionOf(s)
	if p.Approval != s.Politics.Approval || p.Inflation != s.Economy.Inflation ||
		p.Unemployment != s.Economy.Unemployment || p.Yield10 != s.Market.Yield10 ||
		p.StrikeRisk != s.Politics.StrikeRisk {
		t.Fatalf("projection does not mirror state: %+v", p)
	}
}
