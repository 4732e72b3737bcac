package command

// Invocation is one inbound command from a chat user.
type Invocation struct {
	// ID is unique per invocation and ties log lines, spans and events together.
	ID      string
	Name    string
	UserID  string
	RoleIDs []string
	// Locale is the caller's client locale, e.g. "en-US".
	Locale  string
	Options map[string]any
}

// Has reports whether the option was supplied.
func (inv Invocation) Has(name string) bool {
	_, ok := inv.Options[name]
	return ok
}

// String returns a string, role or user option.
func (inv Invocation) String(name string) (string, bool) {
	v, ok := inv.Options[name].(string)
	return v, ok
}

// Int returns an integer option.
func (inv Invocation) Int(name string) (int, bool) {
	switch v := inv.Options[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Bool returns a boolean option.
func (inv Invocation) Bool(name string) (bool, bool) {
	v, ok := inv.Options[name].(bool)
	return v, ok
}
