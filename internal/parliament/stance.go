// Package parliament models individual backbench legislators: their
// per-turn support/oppose/undecided stances on the government's fiscal
// course, and the clustering of opponents into negotiating blocs. Only the
// stance map feeds turn processing; clustering exists for the UI layer.
package parliament

import (
	"fmt"
	"math/rand"

	"chancellor/internal/state"
)

// Stance is a legislator's current position.
type Stance string

const (
	Support   Stance = "support"
	Oppose    Stance = "oppose"
	Undecided Stance = "undecided"
)

// Concern identifiers legislators care about.
const (
	ConcernHealth    = "health"
	ConcernEducation = "education"
	ConcernWelfare   = "welfare"
	ConcernTax       = "tax"
	ConcernDebt      = "debt"
	ConcernTransport = "transport"
	ConcernHousing   = "housing"
	ConcernJobs      = "jobs"
)

var allConcerns = []string{
	ConcernHealth, ConcernEducation, ConcernWelfare, ConcernTax,
	ConcernDebt, ConcernTransport, ConcernHousing, ConcernJobs,
}

// Legislator is one backbench MP.
type Legislator struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Constituency string   `json:"constituency"`
	Concerns     []string `json:"concerns"`    // top concerns, strongest first
	Marginality  float64  `json:"marginality"` // 0 safe seat, 1 knife-edge
}

// NewBenches deterministically generates n legislators from a seed.
func NewBenches(n int, seed int64) []Legislator {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Legislator, n)
	for i := range out {
		c1 := allConcerns[rng.Intn(len(allConcerns))]
		c2 := allConcerns[rng.Intn(len(allConcerns))]
		for c2 == c1 {
			c2 = allConcerns[rng.Intn(len(allConcerns))]
		}
		out[i] = Legislator{
			ID:           i + 1,
			Name:         fmt.Sprintf("Member #%d", i+1),
			Constituency: fmt.Sprintf("Constituency %03d", i+1),
			Concerns:     []string{c1, c2},
			Marginality:  rng.Float64(),
		}
	}
	return out
}

// concernScore measures how aggrieved a given concern is by the current
// policy position relative to game start. Positive = unhappy.
func concernScore(concern string, s state.State, b state.Baseline) float64 {
	f := s.Fiscal
	switch concern {
	case ConcernHealth:
		return (b.Departments[state.DeptHealth].Total()-f.Departments[state.DeptHealth].Total())/10 +
			(b.Health-s.Services.Health)/10
	case ConcernEducation:
		return (b.Departments[state.DeptEducation].Total()-f.Departments[state.DeptEducation].Total())/8 +
			(b.Education-s.Services.Education)/10
	case ConcernWelfare:
		return (b.Departments[state.DeptWelfare].Current - f.Departments[state.DeptWelfare].Current) / 15
	case ConcernTax:
		return (f.BasicRate - b.BasicRate) + 0.8*(f.VAT-b.VAT) + 0.6*(f.EmployeeNI-b.EmployeeNI)
	case ConcernDebt:
		return (f.DebtPctGDP - b.DebtPctGDP) / 5
	case ConcernTransport:
		return (b.Departments[state.DeptTransport].Total() - f.Departments[state.DeptTransport].Total()) / 6
	case ConcernHousing:
		return (b.Departments[state.DeptHousing].Total() - f.Departments[state.DeptHousing].Total()) / 6
	case ConcernJobs:
		return (s.Economy.Unemployment - b.Unemployment) * 2
	default:
		return 0
	}
}

// Stances computes the per-legislator stance map from the state's policy
// deltas versus game start and the recorded manifesto violations. A
// marginal-seat member flips to oppose sooner.
func Stances(benches []Legislator, s state.State, b state.Baseline) map[int]Stance {
	violationHeat := float64(s.Politics.Manifesto.Count()) * 0.5
	out := make(map[int]Stance, len(benches))
	for _, m := range benches {
		score := violationHeat
		for rank, c := range m.Concerns {
			weight := 1.0 / float64(rank+1)
			score += weight * concernScore(c, s, b)
		}
		score *= 1 + 0.5*m.Marginality

		switch {
		case score > 1.5:
			out[m.ID] = Oppose
		case score > 0.5:
			out[m.ID] = Undecided
		default:
			out[m.ID] = Support
		}
	}
	return out
}

// Tally counts the stance map.
func Tally(stances map[int]Stance) (support, oppose, undecided int) {
	for _, st := range stances {
		switch st {
		case Support:
			support++
		case Oppose:
			oppose++
		default:
			undecided++
		}
	}
	return
}
