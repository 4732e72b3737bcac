package domain

import (
	"strings"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
)

var (
	// ErrNoOrders rejects a reveal with nothing to post.
	ErrNoOrders = apperrors.New(apperrors.CodeNoOrders, "no orders to reveal")
	// ErrOrdersAlreadyRevealed rejects a second reveal before new orders arrive.
	ErrOrdersAlreadyRevealed = apperrors.New(apperrors.CodeOrdersAlreadyRevealed, "orders already revealed")
	// ErrOrderEmpty rejects blank order text.
	ErrOrderEmpty = apperrors.New(apperrors.CodeOrderEmpty, "order text is empty")
	// ErrOrderNotFound is returned when the caller has no current order.
	ErrOrderNotFound = apperrors.New(apperrors.CodeOrderNotFound, "no order submitted")
	// ErrNoFaction is returned when the caller holds no faction role.
	ErrNoFaction = apperrors.New(apperrors.CodeNoFaction, "caller has no faction")
	// ErrTargetsNotAssigned is returned before the first target assignment.
	ErrTargetsNotAssigned = apperrors.New(apperrors.CodeTargetsNotAssigned, "targets not assigned")
)

// MessageID is a handle to a message posted in the output channel.
type MessageID string

// State is the full persisted state of the active game.
type State struct {
	Orders     Orders
	LastOrders Orders
	Turn       Turn

	// LastReveal is the reveal post that unreveal deletes.
	LastReveal MessageID
	// LastEndTurn is the turn announcement that revertendturn deletes.
	LastEndTurn MessageID

	// Targets is nil until assigned.
	Targets Targets
	// Board is empty when no slide deck is configured.
	Board BoardRef
	// Scoreboard is nil when the game runs without one.
	Scoreboard *Scoreboard
}

// NewState returns the state of a fresh game.
func NewState() *State {
	return &State{Turn: StartTurn()}
}

// Reset replaces every field with its default in place.
func (s *State) Reset() {
	*s = *NewState()
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{
		Orders:      s.Orders.Clone(),
		LastOrders:  s.LastOrders.Clone(),
		Turn:        s.Turn,
		LastReveal:  s.LastReveal,
		LastEndTurn: s.LastEndTurn,
		Targets:     s.Targets.Clone(),
		Board:       s.Board,
		Scoreboard:  s.Scoreboard.Clone(),
	}
}

// SubmitOrder upserts the caller's order.
func (s *State) SubmitOrder(c Caller, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrOrderEmpty
	}
	s.Orders.Set(c.OrderKey(), text)
	return nil
}

// OrderOf returns the caller's current order.
func (s *State) OrderOf(c Caller) (string, error) {
	text, ok := s.Orders.Get(c.OrderKey())
	if !ok {
		return "", ErrOrderNotFound
	}
	return text, nil
}

// PendingFactions lists factions with no order stored under their name.
func (s *State) PendingFactions() []Faction {
	var pending []Faction
	for _, f := range factions {
		if _, ok := s.Orders.Get(string(f)); !ok {
			pending = append(pending, f)
		}
	}
	return pending
}

// CheckReveal reports whether there are orders to reveal.
func (s *State) CheckReveal() error {
	if len(s.Orders) > 0 {
		return nil
	}
	if s.LastReveal != "" {
		return ErrOrdersAlreadyRevealed
	}
	return ErrNoOrders
}

// ApplyReveal moves the current orders into LastOrders once the reveal post
// identified by id exists.
func (s *State) ApplyReveal(id MessageID) {
	s.LastOrders = s.Orders
	s.Orders = nil
	s.LastReveal = id
}

// CheckUnreveal reports whether a reveal can be undone.
func (s *State) CheckUnreveal() error {
	if s.LastReveal == "" {
		return nothingToUndo("reveals")
	}
	return nil
}

// ApplyUnreveal restores the revealed orders after the reveal post is gone.
// Orders submitted since the reveal take precedence.
func (s *State) ApplyUnreveal() {
	s.Orders = s.LastOrders.Overlay(s.Orders)
	s.LastOrders = nil
	s.LastReveal = ""
}

// ApplyEndTurn advances the turn once its announcement id exists. The
// scoreboard baseline moves to the scores just posted.
func (s *State) ApplyEndTurn(id MessageID) {
	if s.Scoreboard != nil {
		s.Scoreboard.Snapshot()
	}
	s.Turn = s.Turn.Next()
	s.LastEndTurn = id
}

// CheckRevertEndTurn reports whether the last turn advance can be undone.
func (s *State) CheckRevertEndTurn() error {
	if s.LastEndTurn == "" {
		return nothingToUndo("endturns")
	}
	if s.Turn.IsStart() {
		return apperrors.WithMetadata(apperrors.CodeTurnAtStart, "turn already at game start", map[string]string{"Turn": s.Turn.String()})
	}
	return nil
}

// ApplyRevertEndTurn steps back one season after the announcement is gone.
// The scoreboard baseline is left alone.
func (s *State) ApplyRevertEndTurn() {
	s.Turn = s.Turn.Prev()
	s.LastEndTurn = ""
}

// StartGame resets the state for a new game.
func (s *State) StartGame(board BoardRef, scoreboard bool) {
	s.Reset()
	s.Board = board
	if scoreboard {
		s.Scoreboard = NewScoreboard()
	}
}

// ApplyOpening records the opening announcement of a new game.
func (s *State) ApplyOpening(id MessageID) {
	if s.Scoreboard != nil {
		s.Scoreboard.Snapshot()
	}
	s.LastEndTurn = id
}

// TargetOf returns the faction the caller must target.
func (s *State) TargetOf(c Caller) (Faction, error) {
	if c.Faction == "" {
		return "", ErrNoFaction
	}
	if s.Targets == nil {
		return "", ErrTargetsNotAssigned
	}
	target, ok := s.Targets[c.Faction]
	if !ok {
		return "", ErrTargetsNotAssigned
	}
	return target, nil
}

// EnabledScoreboard returns the scoreboard or ErrScoreboardDisabled.
func (s *State) EnabledScoreboard() (*Scoreboard, error) {
	if s.Scoreboard == nil {
		return nil, ErrScoreboardDisabled
	}
	return s.Scoreboard, nil
}

func nothingToUndo(action string) error {
	return apperrors.WithMetadata(apperrors.CodeNothingToUndo, "no "+action+" to undo", map[string]string{"Action": action})
}
