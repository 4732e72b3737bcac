package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestEncodeDefaultState(t *testing.T) {
	data, err := Encode(NewState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(data), `{"orders":{},"lastOrders":{},"turn":[1901,"Spring"]}`; got != want {
		t.Fatalf("encode = %s, want %s", got, want)
	}
}

func TestEncodeDecodeFullState(t *testing.T) {
	s := NewState()
	s.StartGame("ABC123", true)
	_ = s.SubmitOrder(Caller{UserID: "u1", Faction: Italy}, "A Rom H")
	_ = s.SubmitOrder(Caller{UserID: "u2", Faction: Austria}, "A Vie H")
	s.ApplyOpening("open")
	_ = s.Scoreboard.Set(Italy, 4)
	s.Targets = Targets{Austria: England, England: France, France: Germany, Germany: Italy, Italy: Russia, Russia: Turkey, Turkey: Austria}
	s.ApplyEndTurn("end1")

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("decoded = %+v\nwant %+v", got, s)
	}
	if !strings.Contains(string(data), `"orders":{"italy":"A Rom H","austria":"A Vie H"}`) {
		t.Fatalf("orders not in submission order: %s", data)
	}
}

func TestDecodeFallsBackPerField(t *testing.T) {
	data := `{
		"orders": {"austria": "A Vie H"},
		"turn": [1899, "Winter"],
		"lastReveal": 42,
		"targets": {"austria": "austria"},
		"scores": {"england": 2, "123": 9},
		"somethingNew": true
	}`
	s, err := Decode([]byte(data))
	if err == nil {
		t.Fatal("expected field errors")
	}
	if s.Turn != StartTurn() {
		t.Fatalf("turn = %s, want default", s.Turn)
	}
	if text, _ := s.Orders.Get("austria"); text != "A Vie H" {
		t.Fatalf("orders = %v", s.Orders)
	}
	if s.LastReveal != "" || s.Targets != nil {
		t.Fatalf("bad fields kept: %+v", s)
	}
	if s.Scoreboard == nil || !reflect.DeepEqual(s.Scoreboard.Scores, Scores{England: 2}) {
		t.Fatalf("scoreboard = %+v", s.Scoreboard)
	}
}

func TestDecodeCorruptFileIsDefault(t *testing.T) {
	s, err := Decode([]byte("{not json"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(s, NewState()) {
		t.Fatalf("state = %+v, want default", s)
	}
}

func TestDecodeLegacyBoardField(t *testing.T) {
	s, err := Decode([]byte(`{"gSlideId":"XYZ","scores":null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Board != "XYZ" {
		t.Fatalf("board = %q", s.Board)
	}
	if s.Scoreboard != nil {
		t.Fatal("null scores must leave scoreboard disabled")
	}
}
