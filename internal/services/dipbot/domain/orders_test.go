package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOrdersSetKeepsPosition(t *testing.T) {
	var orders Orders
	orders.Set("france", "A Par H")
	orders.Set("austria", "A Vie H")
	orders.Set("france", "A Par - Bur")

	if got := orders.Keys(); !reflect.DeepEqual(got, []string{"france", "austria"}) {
		t.Fatalf("Keys() = %v", got)
	}
	if text, _ := orders.Get("france"); text != "A Par - Bur" {
		t.Fatalf("france = %q", text)
	}
	if _, ok := orders.Get("italy"); ok {
		t.Fatal("expected italy missing")
	}
}

func TestOrdersOverlayPrefersNewer(t *testing.T) {
	older := Orders{{"austria", "A Vie H"}, {"england", "F Lon H"}}
	newer := Orders{{"england", "F Lon - NTH"}, {"turkey", "F Ank - BLA"}}

	got := older.Overlay(newer)
	want := Orders{{"austria", "A Vie H"}, {"england", "F Lon - NTH"}, {"turkey", "F Ank - BLA"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Overlay = %v, want %v", got, want)
	}
	if older[1].Text != "F Lon H" {
		t.Fatal("Overlay mutated receiver")
	}
}

func TestOrdersJSONKeepsDocumentOrder(t *testing.T) {
	var orders Orders
	if err := json.Unmarshal([]byte(`{"turkey":"F Ank H","123456":"A Vie H","england":"F \"Lon\" H"}`), &orders); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := orders.Keys(); !reflect.DeepEqual(got, []string{"turkey", "123456", "england"}) {
		t.Fatalf("Keys() = %v", got)
	}
	data, err := json.Marshal(orders)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"turkey":"F Ank H","123456":"A Vie H","england":"F \"Lon\" H"}` {
		t.Fatalf("marshal = %s", data)
	}

	var empty Orders
	data, _ = json.Marshal(empty)
	if string(data) != `{}` {
		t.Fatalf("nil orders marshal = %s", data)
	}
	if err := json.Unmarshal([]byte(`{"a":1}`), &orders); err == nil {
		t.Fatal("expected error for non-string order")
	}
	if err := json.Unmarshal([]byte(`["a"]`), &orders); err == nil {
		t.Fatal("expected error for array")
	}
}
