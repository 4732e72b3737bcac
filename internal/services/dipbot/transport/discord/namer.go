package discord

import "github.com/louisbranch/dipbot/internal/services/dipbot/domain"

// Namer renders factions as role mentions and users as user mentions.
type Namer struct {
	Roles map[domain.Faction]string
}

func (n Namer) Faction(f domain.Faction) string {
	if roleID := n.Roles[f]; roleID != "" {
		return "<@&" + roleID + ">"
	}
	return f.Title()
}

func (n Namer) User(userID string) string {
	return "<@" + userID + ">"
}
