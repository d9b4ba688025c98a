package state

// AdviserSet is the typed registry of adviser effects, decided once at the
// session boundary. Older save payloads stored advisers as an object keyed
// by adviser id, a list of [id, effect] pairs, or a bare effect map;
// NormaliseAdvisers accepts all three and anything unrecognised collapses
// to the zero set ("no advisers").
type AdviserSet struct {
	// GrowthBonus is added to monthly real growth, pp/month.
	GrowthBonus float64 `json:"growth_bonus"`
	// RevenueMult scales total tax revenue. 1.0 = no effect.
	RevenueMult float64 `json:"revenue_mult"`
	// DebtInterestDiscount reduces debt service, fraction in [0, 0.2].
	DebtInterestDiscount float64 `json:"debt_interest_discount"`
}

// NoAdvisers is the zero-effect set.
func NoAdvisers() AdviserSet {
	return AdviserSet{RevenueMult: 1.0}
}

// normalised bounds keep a corrupt payload from becoming a structural
// growth or revenue cheat.
func (a AdviserSet) clamped() AdviserSet {
	a.GrowthBonus = Clamp(a.GrowthBonus, 0, 0.05)
	if a.RevenueMult == 0 {
		a.RevenueMult = 1.0
	}
	a.RevenueMult = Clamp(a.RevenueMult, 0.95, 1.05)
	a.DebtInterestDiscount = Clamp(a.DebtInterestDiscount, 0, 0.2)
	return a
}

// NormaliseAdvisers converts a loosely-shaped adviser payload into a typed
// AdviserSet. Shapes handled:
//
//	map[string]any{"fiscal-hawk": map{"revenue_mult": 1.02}, ...}   object
//	[]any{[]any{"fiscal-hawk", map{...}}, ...}                      pair list
//	map[string]any{"revenue_mult": 1.02, ...}                       bare effect map
//
// Unrecognised shapes return NoAdvisers().
func NormaliseAdvisers(raw any) AdviserSet {
	switch v := raw.(type) {
	case nil:
		return NoAdvisers()
	case AdviserSet:
		return v.clamped()
	case map[string]any:
		if looksLikeEffect(v) {
			return effectFromMap(v).clamped()
		}
		// Object keyed by adviser id: sum the effects.
		set := NoAdvisers()
		for _, ev := range v {
			em, ok := ev.(map[string]any)
			if !ok {
				continue
			}
			set = combine(set, effectFromMap(em))
		}
		return set.clamped()
	case []any:
		set := NoAdvisers()
		for _, item := range v {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			em, ok := pair[1].(map[string]any)
			if !ok {
				continue
			}
			set = combine(set, effectFromMap(em))
		}
		return set.clamped()
	default:
		return NoAdvisers()
	}
}

func looksLikeEffect(m map[string]any) bool {
	for _, key := range []string{"growth_bonus", "revenue_mult", "debt_interest_discount"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

func effectFromMap(m map[string]any) AdviserSet {
	num := func(key string) float64 {
		switch n := m[key].(type) {
		case float64:
			return n
		case int:
			return float64(n)
		default:
			return 0
		}
	}
	set := AdviserSet{
		GrowthBonus:          num("growth_bonus"),
		RevenueMult:          num("revenue_mult"),
		DebtInterestDiscount: num("debt_interest_discount"),
	}
	if set.RevenueMult == 0 {
		set.RevenueMult = 1.0
	}
	return set
}

func combine(a, b AdviserSet) AdviserSet {
	return AdviserSet{
		GrowthBonus:          a.GrowthBonus + b.GrowthBonus,
		RevenueMult:          a.RevenueMult * b.RevenueMult,
		DebtInterestDiscount: a.DebtInterestDiscount + b.DebtInterestDiscount,
	}
}
