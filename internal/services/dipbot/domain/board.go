package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slideURLPattern = regexp.MustCompile(`docs\.google\.com/presentation/d/([A-Za-z0-9-]+)/?`)
	slideIDPattern  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// BoardRef is the id of the slide deck holding the game board. Empty means
// no board is configured.
type BoardRef string

// ParseBoardRef extracts a slide id from a full presentation URL or a bare id.
func ParseBoardRef(link string) (BoardRef, bool) {
	link = strings.TrimSpace(link)
	if m := slideURLPattern.FindStringSubmatch(link); m != nil {
		return BoardRef(m[1]), true
	}
	if slideIDPattern.MatchString(link) {
		return BoardRef(link), true
	}
	return "", false
}

// SlideURL is the canonical link to the deck.
func (b BoardRef) SlideURL() string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/", string(b))
}

// ImageURL exports the first slide as a PNG.
func (b BoardRef) ImageURL() string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/export?format=png", string(b))
}

// ImageName is the attachment file name used for the board at turn t.
func (b BoardRef) ImageName(t Turn) string {
	return fmt.Sprintf("diplomacy_board_%d_%s_%s.png", t.Year, strings.ToLower(string(t.Season)), string(b))
}
