package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Order is one submitted order. Text is opaque.
type Order struct {
	Key  string
	Text string
}

// Orders keeps at most one order per key in submission order. Resubmitting
// under an existing key replaces the text and keeps the original position.
type Orders []Order

// Get returns the order text stored for key.
func (o Orders) Get(key string) (string, bool) {
	for _, order := range o {
		if order.Key == key {
			return order.Text, true
		}
	}
	return "", false
}

// Set upserts the order for key.
func (o *Orders) Set(key, text string) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Text = text
			return
		}
	}
	*o = append(*o, Order{Key: key, Text: text})
}

// Keys returns the submitted keys in submission order.
func (o Orders) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, order := range o {
		keys = append(keys, order.Key)
	}
	return keys
}

// Clone returns an independent copy.
func (o Orders) Clone() Orders {
	if o == nil {
		return nil
	}
	out := make(Orders, len(o))
	copy(out, o)
	return out
}

// Overlay returns o with every order from newer applied on top. Keys present
// in both keep their position in o and take newer's text.
func (o Orders) Overlay(newer Orders) Orders {
	out := o.Clone()
	for _, order := range newer {
		out.Set(order.Key, order.Text)
	}
	return out
}

// MarshalJSON writes a JSON object whose member order is the submission order.
func (o Orders) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, order := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(order.Key)
		if err != nil {
			return nil, err
		}
		text, err := json.Marshal(order.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string values, keeping document order.
func (o *Orders) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("orders: want object, got %v", tok)
	}
	var out Orders
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("orders key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("orders: key %v is not a string", keyTok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("orders %q: %w", key, err)
		}
		out.Set(key, text)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("orders: %w", err)
	}
	*o = out
	return nil
}
