package app

import (
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

const slideLinkDescription = "The URL or ID of the Google Slides document holding the current game"

func (s *Service) definitions() []command.Definition {
	return []command.Definition{
		{
			Name:        "order",
			Description: "Set your order for this turn",
			Options: []command.Option{
				{Name: "order", Description: "Your order", Type: command.OptionString, Required: true},
			},
			Handle: s.handleOrder,
		},
		{
			Name:        "showorder",
			Description: "View your current order",
			Handle:      s.handleShowOrder,
		},
		{
			Name:        "orderstatus",
			Description: "See which players have submitted orders",
			Handle:      s.handleOrderStatus,
		},
		{
			Name:        "reveal",
			Description: "Reveal all orders",
			Moderator:   true,
			Handle:      s.handleReveal,
		},
		{
			Name:        "unreveal",
			Description: "Undo the last reveal",
			Moderator:   true,
			Handle:      s.handleUnreveal,
		},
		{
			Name:        "endturn",
			Description: "End the turn",
			Moderator:   true,
			Handle:      s.handleEndTurn,
		},
		{
			Name:        "revertendturn",
			Description: "Revert the last end turn",
			Moderator:   true,
			Handle:      s.handleRevertEndTurn,
		},
		{
			Name:        "newgame",
			Description: "Start a new game",
			Options: []command.Option{
				{Name: "slide_link", Description: slideLinkDescription, Type: command.OptionString},
				{Name: "scoreboard", Description: "Whether the game should use a scoreboard", Type: command.OptionBoolean},
			},
			Moderator: true,
			Handle:    s.handleNewGame,
		},
		{
			Name:        "setturn",
			Description: "Manually set the turn",
			Options: []command.Option{
				{Name: "year", Description: "The year to set the turn to", Type: command.OptionInteger, Required: true, MinValue: command.Min(domain.FirstYear)},
				{Name: "season", Description: "The season to set the turn to", Type: command.OptionString, Required: true, Choices: []command.Choice{
					{Name: string(domain.Fall), Value: string(domain.Fall)},
					{Name: string(domain.Spring), Value: string(domain.Spring)},
				}},
			},
			Moderator: true,
			Handle:    s.handleSetTurn,
		},
		{
			Name:        "setslides",
			Description: "Set the Google Slide holding the game",
			Options: []command.Option{
				{Name: "slide_link", Description: slideLinkDescription, Type: command.OptionString, Required: true},
			},
			Moderator: true,
			Handle:    s.handleSetSlides,
		},
		{
			Name:        "assigntargets",
			Description: "Assign each country a unique target",
			Moderator:   true,
			Handle:      s.handleAssignTargets,
		},
		{
			Name:        "gettarget",
			Description: "Reveal what your target is",
			Handle:      s.handleGetTarget,
		},
		{
			Name:        "setscore",
			Description: "Set a player's score",
			Options: []command.Option{
				{Name: "country", Description: "The country to set the score of", Type: command.OptionRole, Required: true},
				{Name: "value", Description: "The score to set for the country", Type: command.OptionInteger, Required: true},
			},
			Moderator: true,
			Handle:    s.handleSetScore,
		},
		{
			Name:        "addscore",
			Description: "Add to a player's score",
			Options: []command.Option{
				{Name: "country", Description: "The country to add to the score of", Type: command.OptionRole, Required: true},
				{Name: "value", Description: "The value to add for that country", Type: command.OptionInteger, Required: true},
			},
			Moderator: true,
			Handle:    s.handleAddScore,
		},
		{
			Name:        "showscoreboard",
			Description: "Display the scoreboard",
			Options: []command.Option{
				{Name: "public", Description: "Whether the scoreboard should display publicly. Defaults to false.", Type: command.OptionBoolean},
			},
			Public: command.WhenTrue("public"),
			Handle: s.handleShowScoreboard,
		},
		{
			Name:        "move_central",
			Description: "Move every player in voice to the central room",
			Moderator:   true,
			Handle:      s.handleMoveCentral,
		},
		{
			Name:        "move_distribute",
			Description: "Move every player in voice to their country's room",
			Moderator:   true,
			Handle:      s.handleMoveDistribute,
		},
		{
			Name:        "jail",
			Description: "Send someone in your voice room to jail",
			Options: []command.Option{
				{Name: "user", Description: "Who to send to jail", Type: command.OptionUser, Required: true},
			},
			Handle: s.handleJail,
		},
	}
}
