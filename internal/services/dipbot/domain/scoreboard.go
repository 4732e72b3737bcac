package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
)

var (
	// ErrScoreboardDisabled is returned by score commands when the game was
	// started without a scoreboard.
	ErrScoreboardDisabled = apperrors.New(apperrors.CodeScoreboardDisabled, "scoreboard not enabled for this game")
	// ErrInvalidFaction is returned when a score target is not a faction.
	ErrInvalidFaction = apperrors.New(apperrors.CodeInvalidFaction, "must be a faction")
)

// Scores maps each faction to its score.
type Scores map[Faction]int

// Clone returns an independent copy, preserving nil.
func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, len(s))
	for f, v := range s {
		out[f] = v
	}
	return out
}

// Scoreboard tracks per-faction scores and the snapshot taken at the start of
// the current turn. Last is nil until the first snapshot.
type Scoreboard struct {
	Scores Scores
	Last   Scores
}

// NewScoreboard starts every faction at zero.
func NewScoreboard() *Scoreboard {
	scores := make(Scores, len(factions))
	for _, f := range factions {
		scores[f] = 0
	}
	return &Scoreboard{Scores: scores}
}

// Set overwrites the score of f.
func (s *Scoreboard) Set(f Faction, value int) error {
	if !f.Valid() {
		return ErrInvalidFaction
	}
	if s.Scores == nil {
		s.Scores = Scores{}
	}
	s.Scores[f] = value
	return nil
}

// Add adds delta to the score of f and returns the new total.
func (s *Scoreboard) Add(f Faction, delta int) (int, error) {
	if !f.Valid() {
		return 0, ErrInvalidFaction
	}
	if s.Scores == nil {
		s.Scores = Scores{}
	}
	s.Scores[f] += delta
	return s.Scores[f], nil
}

// Snapshot records the current scores as the baseline for deltas.
func (s *Scoreboard) Snapshot() {
	s.Last = s.Scores.Clone()
}

// Clone returns an independent copy.
func (s *Scoreboard) Clone() *Scoreboard {
	if s == nil {
		return nil
	}
	return &Scoreboard{Scores: s.Scores.Clone(), Last: s.Last.Clone()}
}

// ScoreLine is one rendered scoreboard row.
type ScoreLine struct {
	Faction Faction
	Score   int
	Delta   string
}

// Lines returns the scored factions in display order with their delta marker.
func (s *Scoreboard) Lines() []ScoreLine {
	var lines []ScoreLine
	for _, f := range factions {
		score, ok := s.Scores[f]
		if !ok {
			continue
		}
		prev, hasPrev := s.Last[f]
		lines = append(lines, ScoreLine{Faction: f, Score: score, Delta: FormatDelta(prev, hasPrev, score)})
	}
	return lines
}

// FormatDelta renders "(+n)" or "(-n)" against the baseline, or nothing when
// the baseline is missing or unchanged.
func FormatDelta(prev int, hasPrev bool, current int) string {
	switch {
	case !hasPrev || prev == current:
		return ""
	case prev > current:
		return fmt.Sprintf("(-%d)", prev-current)
	default:
		return fmt.Sprintf("(+%d)", current-prev)
	}
}
