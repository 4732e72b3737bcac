package app

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

func TestScoresRequireScoreboard(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"setscore", "addscore"} {
		msg := mustFail(t, h.gm(name, map[string]any{"country": "role-nobody", "value": 1}), apperrors.CodeScoreboardDisabled)
		if msg != "Scoreboard not enabled for this game" {
			t.Fatalf("%s message = %q", name, msg)
		}
	}
	mustFail(t, h.gm("showscoreboard", nil), apperrors.CodeScoreboardDisabled)
	if h.state().Scoreboard != nil {
		t.Fatal("scoreboard must stay disabled")
	}
}

func TestScoresRejectNonCountryRole(t *testing.T) {
	h := newHarness(t)
	mustSucceed(t, h.gm("newgame", map[string]any{"scoreboard": true}))
	msg := mustFail(t, h.gm("setscore", map[string]any{"country": "role-everyone", "value": 3}), apperrors.CodeInvalidFaction)
	if msg != "Must be a country role" {
		t.Fatalf("message = %q", msg)
	}
}

func TestSetAndAddScore(t *testing.T) {
	h := newHarness(t)
	mustSucceed(t, h.gm("newgame", map[string]any{"scoreboard": true}))

	if got := mustSucceed(t, h.gm("setscore", map[string]any{"country": "role-italy", "value": 5})); got != "Set score for italy to 5" {
		t.Fatalf("setscore reply = %q", got)
	}
	got := mustSucceed(t, h.gm("addscore", map[string]any{"country": "role-italy", "value": -2}))
	if got != "Added -2 to the score of italy for a total of 3" {
		t.Fatalf("addscore reply = %q", got)
	}
	if h.state().Scoreboard.Scores[domain.Italy] != 3 {
		t.Fatalf("scores = %v", h.state().Scoreboard.Scores)
	}

	board := mustSucceed(t, h.gm("showscoreboard", nil))
	if !strings.HasPrefix(board, "## Scoreboard\naustria: 0\n") || !strings.Contains(board, "italy: 3 (+3)") {
		t.Fatalf("scoreboard = %q", board)
	}
}

func TestShowScoreboardVisibility(t *testing.T) {
	h := newHarness(t)
	def, ok := h.svc.Registry().Definition("showscoreboard")
	if !ok {
		t.Fatal("showscoreboard not registered")
	}
	if def.IsPublic(command.Invocation{}) {
		t.Fatal("scoreboard should default to caller only")
	}
	if !def.IsPublic(command.Invocation{Options: map[string]any{"public": true}}) {
		t.Fatal("public option should broadcast")
	}
}

func TestAssignAndGetTarget(t *testing.T) {
	h := newHarness(t)
	mustFail(t, h.run("gettarget", "u1", domain.Austria, nil), apperrors.CodeTargetsNotAssigned)

	if got := mustSucceed(t, h.gm("assigntargets", nil)); got != "Targets assigned!" {
		t.Fatalf("reply = %q", got)
	}
	if post, _ := h.channel.Last(); post.Content != domain.TargetsAnnouncement {
		t.Fatalf("announcement = %q", post.Content)
	}
	targets := h.state().Targets
	if !targets.Valid() {
		t.Fatalf("targets = %v", targets)
	}

	got := mustSucceed(t, h.run("gettarget", "u1", domain.Austria, nil))
	if got != "Your target is "+string(targets[domain.Austria]) {
		t.Fatalf("reply = %q", got)
	}
	mustFail(t, h.gm("gettarget", nil), apperrors.CodeNoFaction)
}

func TestAssignTargetsPostFailureKeepsPrevious(t *testing.T) {
	h := newHarness(t)
	mustSucceed(t, h.gm("assigntargets", nil))
	before := h.state().Targets.Clone()

	h.channel.PostErr = errors.New("503")
	mustFail(t, h.gm("assigntargets", nil), apperrors.CodePlatformUnavailable)
	for f, target := range before {
		if h.state().Targets[f] != target {
			t.Fatalf("targets changed: %v -> %v", before, h.state().Targets)
		}
	}
}
