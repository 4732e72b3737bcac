package command

import "fmt"

// OptionType is the value type of a command option.
type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionInteger
	OptionBoolean
	// OptionRole carries a role id.
	OptionRole
	// OptionUser carries a user id.
	OptionUser
)

func (t OptionType) String() string {
	switch t {
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionRole:
		return "role"
	case OptionUser:
		return "user"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Choice is one allowed value of a string option.
type Choice struct {
	Name  string
	Value string
}

// Option declares one command parameter.
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	// MinValue bounds integer options when set.
	MinValue *int
	Choices  []Choice
}

func (o Option) validate() error {
	if !namePattern.MatchString(o.Name) {
		return fmt.Errorf("option %q: %w", o.Name, ErrNameInvalid)
	}
	switch o.Type {
	case OptionString, OptionInteger, OptionBoolean, OptionRole, OptionUser:
	default:
		return fmt.Errorf("option %q: unknown type %d", o.Name, int(o.Type))
	}
	if o.MinValue != nil && o.Type != OptionInteger {
		return fmt.Errorf("option %q: min value needs an integer option", o.Name)
	}
	if len(o.Choices) > 0 && o.Type != OptionString {
		return fmt.Errorf("option %q: choices need a string option", o.Name)
	}
	return nil
}

// Min returns a pointer for Option.MinValue.
func Min(v int) *int {
	return &v
}
