package domain

import (
	"strconv"
	"strings"
)

// TargetsAnnouncement is posted to the output channel after targets change.
const TargetsAnnouncement = "# Targets Assigned!"

// Namer renders identities in posted messages.
type Namer interface {
	// Faction renders a faction, e.g. as a role mention.
	Faction(f Faction) string
	// User renders a raw user id.
	User(userID string) string
}

// PlainNamer renders faction names and user ids verbatim.
type PlainNamer struct{}

func (PlainNamer) Faction(f Faction) string  { return string(f) }
func (PlainNamer) User(userID string) string { return userID }

// OrderKeyName renders an order key, which is a faction or a raw user id.
func OrderKeyName(n Namer, key string) string {
	if f := Faction(key); f.Valid() {
		return n.Faction(f)
	}
	return n.User(key)
}

// FormatReveal renders the reveal post, one "name: order" line per order in
// submission order.
func FormatReveal(n Namer, orders Orders) string {
	var b strings.Builder
	b.WriteString("# Orders:")
	for _, order := range orders {
		b.WriteByte('\n')
		b.WriteString(OrderKeyName(n, order.Key))
		b.WriteString(": ")
		b.WriteString(order.Text)
	}
	return b.String()
}

// FormatScoreboard renders every score with its delta marker.
func FormatScoreboard(n Namer, sb *Scoreboard) string {
	var b strings.Builder
	b.WriteString("## Scoreboard")
	for _, line := range sb.Lines() {
		b.WriteByte('\n')
		b.WriteString(n.Faction(line.Faction))
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(line.Score))
		if line.Delta != "" {
			b.WriteByte(' ')
			b.WriteString(line.Delta)
		}
	}
	return b.String()
}

// FormatTurnStart renders the announcement opening turn t.
func FormatTurnStart(t Turn) string {
	return "## Start of " + t.String()
}
