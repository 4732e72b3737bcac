// Package command defines the slash command table: each command's options,
// visibility and handler, and the registry that dispatches invocations.
package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrNameRequired indicates a definition without a name.
	ErrNameRequired = errors.New("command name is required")
	// ErrNameInvalid indicates a name the chat platform would reject.
	ErrNameInvalid = errors.New("command name must be 1-32 lowercase letters, digits, dash or underscore")
	// ErrHandlerRequired indicates a definition without a handler.
	ErrHandlerRequired = errors.New("command handler is required")
	// ErrUnknown indicates an invocation of an unregistered command.
	ErrUnknown = errors.New("command is not registered")
	// ErrOptionMissing indicates a required option was not supplied.
	ErrOptionMissing = errors.New("required option is missing")

	namePattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)
)

// Reply is the response to the invoking user.
type Reply struct {
	Content string
}

// Result is the outcome of one invocation as shown to the caller.
type Result struct {
	Content string
	// Err is set when the command failed; Content then holds the rendered
	// error text.
	Err error
}

// Handler executes one invocation.
type Handler func(ctx context.Context, inv Invocation) (Reply, error)

// Definition registers one command.
type Definition struct {
	Name        string
	Description string
	Options     []Option
	// Moderator restricts the command to members who can manage the server.
	Moderator bool
	// Public reports whether the reply is visible to the channel. Nil means
	// only the caller sees it.
	Public func(inv Invocation) bool
	Handle Handler
}

// IsPublic evaluates the definition's visibility for inv.
func (d Definition) IsPublic(inv Invocation) bool {
	return d.Public != nil && d.Public(inv)
}

// Always is a Public func for replies everyone sees.
func Always(Invocation) bool { return true }

// WhenTrue makes the reply public when the boolean option is set.
func WhenTrue(option string) func(Invocation) bool {
	return func(inv Invocation) bool {
		v, _ := inv.Bool(option)
		return v
	}
}

// Registry stores command definitions.
type Registry struct {
	definitions map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]Definition)}
}

// Register adds a new command definition to the registry.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("registry is required")
	}
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return ErrNameRequired
	}
	if !namePattern.MatchString(def.Name) {
		return fmt.Errorf("%w: %q", ErrNameInvalid, def.Name)
	}
	if def.Handle == nil {
		return fmt.Errorf("%s: %w", def.Name, ErrHandlerRequired)
	}
	for _, opt := range def.Options {
		if err := opt.validate(); err != nil {
			return fmt.Errorf("%s: %w", def.Name, err)
		}
	}
	if r.definitions == nil {
		r.definitions = make(map[string]Definition)
	}
	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("command already registered: %s", def.Name)
	}
	r.definitions[def.Name] = def
	return nil
}

// Definition returns the definition registered under name.
func (r *Registry) Definition(name string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[strings.TrimSpace(name)]
	return def, ok
}

// ListDefinitions returns a stable, sorted snapshot of registered definitions.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil || len(r.definitions) == 0 {
		return nil
	}
	definitions := make([]Definition, 0, len(r.definitions))
	for _, definition := range r.definitions {
		definitions = append(definitions, definition)
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Name < definitions[j].Name
	})
	return definitions
}

// Dispatch validates required options and runs the handler for inv.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) (Reply, error) {
	def, ok := r.Definition(inv.Name)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %s", ErrUnknown, inv.Name)
	}
	for _, opt := range def.Options {
		if opt.Required && !inv.Has(opt.Name) {
			return Reply{}, fmt.Errorf("%s: %w: %s", def.Name, ErrOptionMissing, opt.Name)
		}
	}
	return def.Handle(ctx, inv)
}
