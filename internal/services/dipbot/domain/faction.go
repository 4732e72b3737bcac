package domain

import "strings"

// Faction is one of the seven playable sides.
type Faction string

const (
	Austria Faction = "austria"
	England Faction = "england"
	France  Faction = "france"
	Germany Faction = "germany"
	Italy   Faction = "italy"
	Russia  Faction = "russia"
	Turkey  Faction = "turkey"
)

var factions = [...]Faction{Austria, England, France, Germany, Italy, Russia, Turkey}

// Factions returns every faction in display order.
func Factions() []Faction {
	out := make([]Faction, len(factions))
	copy(out, factions[:])
	return out
}

// ParseFaction resolves a faction name, ignoring case and surrounding space.
func ParseFaction(value string) (Faction, bool) {
	f := Faction(strings.ToLower(strings.TrimSpace(value)))
	return f, f.Valid()
}

// Valid reports whether f is one of the fixed factions.
func (f Faction) Valid() bool {
	for _, known := range factions {
		if f == known {
			return true
		}
	}
	return false
}

// Title returns the capitalized faction name.
func (f Faction) Title() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Caller identifies who invoked a command. Faction is empty when the caller
// holds no faction role.
type Caller struct {
	UserID  string
	Faction Faction
}

// OrderKey returns the key the caller's order is stored under: the faction
// when the caller plays one, otherwise the raw user id.
func (c Caller) OrderKey() string {
	if c.Faction != "" {
		return string(c.Faction)
	}
	return c.UserID
}
