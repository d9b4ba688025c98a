package politics

import (
	"fmt"

	"github.com/google/uuid"

	"chancellor/internal/entropy"
	"chancellor/internal/state"
)

// trigger is one of the four prioritised intervention conditions.
type trigger struct {
	name  string
	prob  float64
	fires func(s state.State, d state.DifficultyParams) bool
	build func(s state.State) state.Intervention
}

// Triggers are checked in priority order; the first one whose condition
// holds gets the roll.
var triggers = []trigger{
	{
		name: "revolt",
		prob: 0.35,
		fires: func(s state.State, d state.DifficultyParams) bool {
			return s.Politics.Backbench < d.SatisfactionFloor+10
		},
		build: func(s state.State) state.Intervention {
			return state.Intervention{
				Trigger:       "revolt",
				Description:   "Backbenchers are organising. A delegation demands a change of fiscal course.",
				Comply:        state.EffectPayload{Backbench: 8, Trust: -3, Credibility: -4},
				Defy:          state.EffectPayload{Backbench: -6, Trust: -5, Credibility: 2},
				ReshuffleRisk: 0.25,
			}
		},
	},
	{
		name: "manifesto",
		prob: 0.30,
		fires: func(s state.State, d state.DifficultyParams) bool {
			return s.Politics.Manifesto.Count() >= 2
		},
		build: func(s state.State) state.Intervention {
			return state.Intervention{
				Trigger: "manifesto",
				Description: fmt.Sprintf("The PM wants a public recommitment to the manifesto after %d broken pledges.",
					s.Politics.Manifesto.Count()),
				Comply:        state.EffectPayload{Approval: 2, Trust: 4, Credibility: -3},
				Defy:          state.EffectPayload{Approval: -3, Trust: -6, Backbench: -4},
				ReshuffleRisk: 0.15 + 0.05*float64(s.Politics.Manifesto.Count()),
			}
		},
	},
	{
		name: "approval",
		prob: 0.25,
		fires: func(s state.State, d state.DifficultyParams) bool {
			return s.Politics.Approval < 20
		},
		build: func(s state.State) state.Intervention {
			return state.Intervention{
				Trigger:       "approval",
				Description:   "Polling has collapsed. Number 10 demands a giveaway budget before conference.",
				Comply:        state.EffectPayload{Approval: 4, Credibility: -5, Trust: 2},
				Defy:          state.EffectPayload{Approval: -2, Trust: -4, Credibility: 3},
				ReshuffleRisk: 0.30,
			}
		},
	},
	{
		name: "market",
		prob: 0.40,
		fires: func(s state.State, d state.DifficultyParams) bool {
			return s.Market.Yield10 > d.YieldCeiling-1 || s.Fiscal.DebtPctGDP > d.DebtCeiling-10
		},
		build: func(s state.State) state.Intervention {
			return state.Intervention{
				Trigger:       "market",
				Description:   "Gilt markets are on the edge. The PM demands an emergency consolidation package.",
				Comply:        state.EffectPayload{Credibility: 6, Approval: -4, Backbench: -3},
				Defy:          state.EffectPayload{Credibility: -6, Trust: -7},
				ReshuffleRisk: 0.35,
			}
		},
	},
}

// CheckIntervention rolls for a new intervention when PM trust has fallen
// below the difficulty threshold and nothing is already pending.
func CheckIntervention(s state.State, rng entropy.Source) (state.Intervention, bool) {
	d := s.Difficulty.Params()
	if s.Politics.PMTrust >= d.InterventionTrust || len(s.Politics.Pending) > 0 {
		return state.Intervention{}, false
	}

	for _, t := range triggers {
		if !t.fires(s, d) {
			continue
		}
		if rng.Float64() >= t.prob {
			return state.Intervention{}, false
		}
		iv := t.build(s)
		iv.ID = uuid.NewString()
		return iv, true
	}
	return state.Intervention{}, false
}

// Respond applies the comply or defy payload of a pending intervention and
// removes it from the queue. The reshuffle roll on defiance is the
// caller's to make with its own entropy source.
func Respond(p state.Politics, id string, comply bool) state.Politics {
	for i, iv := range p.Pending {
		if iv.ID != id {
			continue
		}
		payload := iv.Defy
		if comply {
			payload = iv.Comply
		}
		p.Approval = state.Clamp(p.Approval+payload.Approval, 5, 80)
		p.Backbench = state.Clamp(p.Backbench+payload.Backbench, 0, 100)
		p.PMTrust = state.Clamp(p.PMTrust+payload.Trust, 0, 100)
		p.Credibility = state.Clamp(p.Credibility+payload.Credibility, 0, 100)
		p.Pending = append(p.Pending[:i], p.Pending[i+1:]...)
		return p
	}
	return p
}
