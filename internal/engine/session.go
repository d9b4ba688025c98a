// Package engine ties the sub-models together and runs the monthly turn
// pipeline. One call to AdvanceTurn runs every step in its fixed order and
// returns the fully updated state plus a terminal flag.
package engine

import (
	"github.com/google/uuid"

	"chancellor/internal/entropy"
	"chancellor/internal/parliament"
	"chancellor/internal/politics"
	"chancellor/internal/press"
	"chancellor/internal/state"
)

// benchSize is the number of government backbenchers modelled.
const benchSize = 120

// Event is a notable occurrence recorded during a turn.
type Event struct {
	Turn        int    `json:"turn" db:"turn"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
}

// Session holds one play session: the current state, the baseline it was
// created from, the entropy source and the collaborator set.
type Session struct {
	ID    string
	Seed  int64
	State state.State
	Base  state.Baseline
	Rng   entropy.Source

	Benches []parliament.Legislator
	Stances map[int]parliament.Stance

	// Optional collaborators. Any of these may be nil; a nil or failing
	// collaborator contributes nothing this turn.
	Sentiment press.SentimentModel
	Events    press.EventModel
	Leader    press.LeaderModel

	// TurnEvents holds the events generated by the most recent turn.
	TurnEvents []Event
	// News is the most recent news artifact, if the event model made one.
	News *press.News
}

// NewSession creates a session at the canonical game start.
func NewSession(seed int64, diff state.Difficulty, ruleID string) *Session {
	rng := entropy.NewSeeded(seed)
	ss := &Session{
		ID:        uuid.NewString(),
		Seed:      seed,
		State:     state.New(diff, ruleID),
		Base:      state.NewBaseline(),
		Rng:       rng,
		Benches:   parliament.NewBenches(benchSize, seed+1),
		Sentiment: press.DefaultSentiment{},
		Events:    press.DefaultEvents{Rng: rng},
		Leader:    press.DefaultLeader{Rng: rng},
	}
	ss.Stances = parliament.Stances(ss.Benches, ss.State, ss.Base)
	return ss
}

// SetAdvisers installs a normalised adviser registry on the session state.
// Accepts the loose legacy payload shapes; anything unrecognised means no
// advisers.
func (ss *Session) SetAdvisers(raw any) {
	ss.State.Advisers = state.NormaliseAdvisers(raw)
}

// OppositionBlocs clusters currently-opposing backbenchers for the UI.
func (ss *Session) OppositionBlocs() []parliament.Bloc {
	return parliament.ClusterOpposition(ss.Benches, ss.Stances)
}

// RespondIntervention applies the player's comply/defy answer to a pending
// intervention and, on defiance, rolls the reshuffle risk.
func (ss *Session) RespondIntervention(id string, comply bool) {
	var risk float64
	for _, iv := range ss.State.Politics.Pending {
		if iv.ID == id {
			risk = iv.ReshuffleRisk
		}
	}
	s := ss.State.Clone()
	s.Politics = politics.Respond(s.Politics, id, comply)
	if !comply && risk > 0 && ss.Rng.Float64() < risk {
		s.Over = true
		s.OverReason = "Defying the intervention triggered a reshuffle. You have been moved out of the Treasury."
	}
	ss.State = s
}
