package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
)

// FirstYear is the year every game starts in.
const FirstYear = 1901

// Season is half a game year.
type Season string

const (
	Spring Season = "Spring"
	Fall   Season = "Fall"
)

// ParseSeason accepts the exact season names used on the wire.
func ParseSeason(value string) (Season, error) {
	switch Season(value) {
	case Spring, Fall:
		return Season(value), nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeInvalidSeason, "season must be Spring or Fall", map[string]string{"Season": value})
	}
}

// Turn is a (year, season) game step.
type Turn struct {
	Year   int
	Season Season
}

// StartTurn is Spring of the first year.
func StartTurn() Turn {
	return Turn{Year: FirstYear, Season: Spring}
}

// NewTurn validates a manually supplied turn.
func NewTurn(year int, season string) (Turn, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return Turn{}, err
	}
	if year < FirstYear {
		return Turn{}, apperrors.WithMetadata(apperrors.CodeInvalidYear, "year before first game year", map[string]string{"Min": strconv.Itoa(FirstYear)})
	}
	return Turn{Year: year, Season: s}, nil
}

// Next advances one season. Fall rolls over into Spring of the next year.
func (t Turn) Next() Turn {
	if t.Season == Fall {
		return Turn{Year: t.Year + 1, Season: Spring}
	}
	return Turn{Year: t.Year, Season: Fall}
}

// Prev is the inverse of Next. It does not clamp at FirstYear; callers that
// must not go below the start check IsStart first.
func (t Turn) Prev() Turn {
	if t.Season == Fall {
		return Turn{Year: t.Year, Season: Spring}
	}
	return Turn{Year: t.Year - 1, Season: Fall}
}

// IsStart reports whether t is Spring of the first year.
func (t Turn) IsStart() bool {
	return t == StartTurn()
}

func (t Turn) String() string {
	return fmt.Sprintf("%s %d", t.Season, t.Year)
}

// MarshalJSON writes the turn as a [year, season] tuple.
func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Year, t.Season})
}

// UnmarshalJSON reads a [year, season] tuple.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("turn: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("turn: want 2 elements, got %d", len(raw))
	}
	var year int
	if err := json.Unmarshal(raw[0], &year); err != nil {
		return fmt.Errorf("turn year: %w", err)
	}
	var season string
	if err := json.Unmarshal(raw[1], &season); err != nil {
		return fmt.Errorf("turn season: %w", err)
	}
	parsed, err := NewTurn(year, season)
	if err != nil {
		return fmt.Errorf("turn: %w", err)
	}
	*t = parsed
	return nil
}
