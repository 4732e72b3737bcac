package domain

import "math/rand/v2"

// Targets maps each faction to the faction it is secretly paired against.
type Targets map[Faction]Faction

// AssignTargets shuffles the factions and pairs each one with its successor
// in the shuffled cyclic order. The result is a single cycle through every
// faction, so nobody targets themselves and every faction is targeted once.
func AssignTargets(r *rand.Rand) Targets {
	order := Factions()
	r.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	out := make(Targets, len(order))
	for i, f := range order {
		out[f] = order[(i+1)%len(order)]
	}
	return out
}

// Valid reports whether t covers every faction exactly once as attacker and
// as target with no faction targeting itself.
func (t Targets) Valid() bool {
	if len(t) != len(factions) {
		return false
	}
	seen := make(map[Faction]bool, len(t))
	for from, to := range t {
		if !from.Valid() || !to.Valid() || from == to || seen[to] {
			return false
		}
		seen[to] = true
	}
	return true
}

// Clone returns an independent copy, preserving nil.
func (t Targets) Clone() Targets {
	if t == nil {
		return nil
	}
	out := make(Targets, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
