package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// snapshot is the persisted JSON object.
type snapshot struct {
	Orders       Orders              `json:"orders"`
	LastOrders   Orders              `json:"lastOrders"`
	Turn         Turn                `json:"turn"`
	LastReveal   string              `json:"lastReveal,omitempty"`
	LastEndTurn  string              `json:"lastEndTurn,omitempty"`
	Targets      map[Faction]Faction `json:"targets,omitzero"`
	BoardImageID string              `json:"boardImageId,omitempty"`
	Scores       map[Faction]int     `json:"scores,omitzero"`
	LastScores   map[Faction]int     `json:"lastScores,omitzero"`
}

// legacyBoardField is the board reference key written by earlier releases.
const legacyBoardField = "gSlideId"

// Encode serializes the whole state.
func Encode(s *State) ([]byte, error) {
	snap := snapshot{
		Orders:       s.Orders,
		LastOrders:   s.LastOrders,
		Turn:         s.Turn,
		LastReveal:   string(s.LastReveal),
		LastEndTurn:  string(s.LastEndTurn),
		Targets:      s.Targets,
		BoardImageID: string(s.Board),
	}
	if s.Scoreboard != nil {
		snap.Scores = s.Scoreboard.Scores
		if snap.Scores == nil {
			snap.Scores = Scores{}
		}
		snap.LastScores = s.Scoreboard.Last
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Decode parses a persisted state. Fields that are missing or fail to decode
// keep their default value; the returned state is never nil. The error joins
// one entry per rejected field so callers can log what was recovered.
func Decode(data []byte) (*State, error) {
	state := NewState()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return state, fmt.Errorf("decode state: %w", err)
	}

	var errs []error
	field := func(name string, target any) bool {
		raw, ok := fields[name]
		if !ok || isNull(raw) {
			return false
		}
		if err := json.Unmarshal(raw, target); err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", name, err))
			return false
		}
		return true
	}

	var orders, lastOrders Orders
	if field("orders", &orders) {
		state.Orders = orders
	}
	if field("lastOrders", &lastOrders) {
		state.LastOrders = lastOrders
	}

	var turn Turn
	if field("turn", &turn) {
		state.Turn = turn
	}

	var lastReveal, lastEndTurn string
	if field("lastReveal", &lastReveal) {
		state.LastReveal = MessageID(lastReveal)
	}
	if field("lastEndTurn", &lastEndTurn) {
		state.LastEndTurn = MessageID(lastEndTurn)
	}

	var targets Targets
	if field("targets", &targets) {
		if targets.Valid() {
			state.Targets = targets
		} else {
			errs = append(errs, fmt.Errorf("field targets: not a complete assignment"))
		}
	}

	var board string
	if _, ok := fields["boardImageId"]; ok {
		field("boardImageId", &board)
	} else {
		field(legacyBoardField, &board)
	}
	if board != "" {
		if ref, ok := ParseBoardRef(board); ok {
			state.Board = ref
		} else {
			errs = append(errs, fmt.Errorf("field boardImageId: invalid slide id %q", board))
		}
	}

	var scores, lastScores map[string]int
	if field("scores", &scores) {
		state.Scoreboard = &Scoreboard{Scores: factionScores(scores)}
		if field("lastScores", &lastScores) {
			state.Scoreboard.Last = factionScores(lastScores)
		}
	}

	return state, errors.Join(errs...)
}

// factionScores keeps the entries keyed by a known faction.
func factionScores(in map[string]int) Scores {
	out := make(Scores, len(in))
	for key, value := range in {
		if f, ok := ParseFaction(key); ok {
			out[f] = value
		}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
