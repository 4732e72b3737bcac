package domain

import (
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
)

func TestRevealThenUnrevealRestoresOrders(t *testing.T) {
	s := NewState()
	austria := Caller{UserID: "u1", Faction: Austria}
	if err := s.SubmitOrder(austria, "A Vie Hold"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.CheckReveal(); err != nil {
		t.Fatalf("CheckReveal: %v", err)
	}

	before := s.Orders.Clone()
	out := FormatReveal(PlainNamer{}, s.Orders)
	s.ApplyReveal("m1")

	if out != "# Orders:\naustria: A Vie Hold" {
		t.Fatalf("reveal post = %q", out)
	}
	if len(s.Orders) != 0 {
		t.Fatalf("orders after reveal = %v", s.Orders)
	}
	if !reflect.DeepEqual(s.LastOrders, before) {
		t.Fatalf("lastOrders = %v, want %v", s.LastOrders, before)
	}

	if err := s.CheckUnreveal(); err != nil {
		t.Fatalf("CheckUnreveal: %v", err)
	}
	s.ApplyUnreveal()
	if !reflect.DeepEqual(s.Orders, before) {
		t.Fatalf("orders after unreveal = %v, want %v", s.Orders, before)
	}
	if len(s.LastOrders) != 0 || s.LastReveal != "" {
		t.Fatalf("lastOrders = %v, lastReveal = %q", s.LastOrders, s.LastReveal)
	}
}

func TestRevealGuards(t *testing.T) {
	s := NewState()
	if err := s.CheckReveal(); apperrors.CodeOf(err) != apperrors.CodeNoOrders {
		t.Fatalf("empty: code = %s", apperrors.CodeOf(err))
	}
	_ = s.SubmitOrder(Caller{UserID: "u1"}, "A Vie H")
	s.ApplyReveal("m1")
	if err := s.CheckReveal(); apperrors.CodeOf(err) != apperrors.CodeOrdersAlreadyRevealed {
		t.Fatalf("revealed: code = %s", apperrors.CodeOf(err))
	}
}

func TestUnrevealWithoutRevealIsNothingToUndo(t *testing.T) {
	s := NewState()
	err := s.CheckUnreveal()
	if apperrors.CodeOf(err) != apperrors.CodeNothingToUndo {
		t.Fatalf("code = %s", apperrors.CodeOf(err))
	}
	if got := apperrors.UserMessage(err, "en-US"); got != "No reveals to undo" {
		t.Fatalf("message = %q", got)
	}
}

func TestSubmitOrderKeysAndValidation(t *testing.T) {
	s := NewState()
	if err := s.SubmitOrder(Caller{UserID: "u1", Faction: France}, "  "); apperrors.CodeOf(err) != apperrors.CodeOrderEmpty {
		t.Fatalf("blank: code = %s", apperrors.CodeOf(err))
	}
	_ = s.SubmitOrder(Caller{UserID: "u1", Faction: France}, "A Par H")
	_ = s.SubmitOrder(Caller{UserID: "u2", Faction: France}, "A Par - Bur")
	_ = s.SubmitOrder(Caller{UserID: "spectator"}, "cheer")

	if got := s.Orders.Keys(); !reflect.DeepEqual(got, []string{"france", "spectator"}) {
		t.Fatalf("keys = %v", got)
	}
	text, err := s.OrderOf(Caller{UserID: "u1", Faction: France})
	if err != nil || text != "A Par - Bur" {
		t.Fatalf("OrderOf = %q, %v", text, err)
	}
	if _, err := s.OrderOf(Caller{UserID: "u3", Faction: Italy}); apperrors.CodeOf(err) != apperrors.CodeOrderNotFound {
		t.Fatalf("missing: code = %s", apperrors.CodeOf(err))
	}
	pending := s.PendingFactions()
	if len(pending) != 6 || pending[0] != Austria {
		t.Fatalf("pending = %v", pending)
	}
}

func TestEndTurnScenario(t *testing.T) {
	s := NewState()
	s.ApplyEndTurn("a1")
	if s.Turn != (Turn{1901, Fall}) {
		t.Fatalf("after 1 endturn: %s", s.Turn)
	}
	s.ApplyEndTurn("a2")
	if s.Turn != (Turn{1902, Spring}) {
		t.Fatalf("after 2 endturns: %s", s.Turn)
	}
	if err := s.CheckRevertEndTurn(); err != nil {
		t.Fatalf("CheckRevertEndTurn: %v", err)
	}
	s.ApplyRevertEndTurn()
	if s.Turn != (Turn{1901, Fall}) {
		t.Fatalf("after revert: %s", s.Turn)
	}
	if err := s.CheckRevertEndTurn(); apperrors.CodeOf(err) != apperrors.CodeNothingToUndo {
		t.Fatalf("second revert: code = %s", apperrors.CodeOf(err))
	}
}

func TestRevertEndTurnRefusesAtStart(t *testing.T) {
	s := NewState()
	s.ApplyOpening("open")
	if err := s.CheckRevertEndTurn(); apperrors.CodeOf(err) != apperrors.CodeTurnAtStart {
		t.Fatalf("code = %s", apperrors.CodeOf(err))
	}
}

func TestEndTurnSnapshotsScores(t *testing.T) {
	s := NewState()
	s.StartGame("", true)
	_, _ = s.Scoreboard.Add(England, 3)
	s.ApplyEndTurn("a1")
	if s.Scoreboard.Last[England] != 3 {
		t.Fatalf("last = %v", s.Scoreboard.Last)
	}
}

func TestStartGameResetsInPlace(t *testing.T) {
	s := NewState()
	ref := s
	_ = s.SubmitOrder(Caller{UserID: "u1"}, "x")
	s.Targets = Targets{Austria: England}
	s.ApplyEndTurn("a1")

	s.StartGame("ABC", true)
	if ref != s || len(ref.Orders) != 0 || ref.Targets != nil || ref.Turn != StartTurn() || ref.LastEndTurn != "" {
		t.Fatalf("state not reset: %+v", ref)
	}
	if ref.Board != "ABC" || ref.Scoreboard == nil || len(ref.Scoreboard.Scores) != 7 {
		t.Fatalf("game options not applied: %+v", ref)
	}
}

func TestTargetOfGuards(t *testing.T) {
	s := NewState()
	if _, err := s.TargetOf(Caller{UserID: "u1"}); apperrors.CodeOf(err) != apperrors.CodeNoFaction {
		t.Fatalf("no faction: code = %s", apperrors.CodeOf(err))
	}
	if _, err := s.TargetOf(Caller{UserID: "u1", Faction: Russia}); apperrors.CodeOf(err) != apperrors.CodeTargetsNotAssigned {
		t.Fatalf("unassigned: code = %s", apperrors.CodeOf(err))
	}
}

func TestScoreboardDisabled(t *testing.T) {
	s := NewState()
	if _, err := s.EnabledScoreboard(); apperrors.CodeOf(err) != apperrors.CodeScoreboardDisabled {
		t.Fatalf("code = %s", apperrors.CodeOf(err))
	}
	if s.Scoreboard != nil {
		t.Fatal("scoreboard must stay disabled")
	}
}
