package parliament

import (
	"sort"
)

// Bloc is a cluster of opposing legislators who share a top concern,
// surfaced for the negotiation UI. Pure function of the stance map; turn
// processing never reads it.
type Bloc struct {
	Concern      string  `json:"concern"`
	Members      []int   `json:"members"` // legislator IDs, sorted
	Cohesion     float64 `json:"cohesion"`
	Spokesperson int     `json:"spokesperson"` // legislator ID
}

// ClusterOpposition groups opposing legislators by their strongest shared
// concern. Cohesion is the fraction of the bloc whose second concern also
// matches another member's; the spokesperson is the most marginal member,
// on the theory that the one with the most to lose shouts loudest.
func ClusterOpposition(benches []Legislator, stances map[int]Stance) []Bloc {
	byID := make(map[int]Legislator, len(benches))
	for _, m := range benches {
		byID[m.ID] = m
	}

	groups := make(map[string][]Legislator)
	for id, st := range stances {
		if st != Oppose {
			continue
		}
		m, ok := byID[id]
		if !ok || len(m.Concerns) == 0 {
			continue
		}
		groups[m.Concerns[0]] = append(groups[m.Concerns[0]], m)
	}

	blocs := make([]Bloc, 0, len(groups))
	for concern, members := range groups {
		// Secondary-concern overlap drives cohesion.
		second := make(map[string]int)
		for _, m := range members {
			if len(m.Concerns) > 1 {
				second[m.Concerns[1]]++
			}
		}
		shared := 0
		for _, n := range second {
			if n > 1 {
				shared += n
			}
		}
		cohesion := 0.5
		if len(members) > 0 {
			cohesion = 0.5 + 0.5*float64(shared)/float64(len(members))
		}

		spokesperson := members[0]
		for _, m := range members[1:] {
			if m.Marginality > spokesperson.Marginality {
				spokesperson = m
			}
		}

		ids := make([]int, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		sort.Ints(ids)

		blocs = append(blocs, Bloc{
			Concern:      concern,
			Members:      ids,
			Cohesion:     cohesion,
			Spokesperson: spokesperson.ID,
		})
	}

	sort.Slice(blocs, func(i, j int) bool {
		if len(blocs[i].Members) != len(blocs[j].Members) {
			return len(blocs[i].Members) > len(blocs[j].Members)
		}
		return blocs[i].Concern < blocs[j].Concern
	})
	return blocs
}
