// Package app implements the dipbot command handlers and process wiring.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
	"github.com/louisbranch/dipbot/internal/platform/events"
	i18ncatalog "github.com/louisbranch/dipbot/internal/platform/i18n/catalog"
	"github.com/louisbranch/dipbot/internal/platform/id"
	"github.com/louisbranch/dipbot/internal/platform/random"
	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/gamestate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

const tracerName = "github.com/louisbranch/dipbot/internal/services/dipbot/app"

// Roles maps each faction to the chat role id that marks its players.
type Roles map[domain.Faction]string

// FactionOf returns the first faction, in display order, whose role is held.
func (r Roles) FactionOf(roleIDs []string) (domain.Faction, bool) {
	for _, f := range domain.Factions() {
		roleID := r[f]
		if roleID == "" {
			continue
		}
		for _, held := range roleIDs {
			if held == roleID {
				return f, true
			}
		}
	}
	return "", false
}

// FactionForRole resolves a role id to its faction.
func (r Roles) FactionForRole(roleID string) (domain.Faction, bool) {
	for f, id := range r {
		if id != "" && id == roleID {
			return f, true
		}
	}
	return "", false
}

// Rooms holds the voice room ids used by the relocation commands. Empty ids
// mean the room is not configured.
type Rooms struct {
	Central  string
	Jail     string
	Factions map[domain.Faction]string
}

// Deps are the collaborators of a Service.
type Deps struct {
	Store   *gamestate.Store
	Channel chat.Channel
	Roster  chat.Roster
	Mover   chat.Mover
	// Events defaults to events.Noop.
	Events events.Publisher
	// Namer defaults to domain.PlainNamer.
	Namer domain.Namer
	Roles Roles
	Rooms Rooms
}

// Service runs the commands against the game state. State commands are
// serialized by mu, which is held across the chat platform calls so the
// post-then-mutate sequence of one command never interleaves with another.
type Service struct {
	mu       sync.Mutex
	store    *gamestate.Store
	channel  chat.Channel
	roster   chat.Roster
	mover    chat.Mover
	events   events.Publisher
	namer    domain.Namer
	roles    Roles
	rooms    Rooms
	registry *command.Registry
	tracer   trace.Tracer
	newSeed  func() (uint64, error)
	newID    func() (string, error)
	logf     func(format string, args ...any)
}

// NewService validates deps and registers every command.
func NewService(deps Deps) (*Service, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("game state store is required")
	}
	if deps.Channel == nil {
		return nil, fmt.Errorf("output channel is required")
	}
	if deps.Events == nil {
		deps.Events = events.Noop{}
	}
	if deps.Namer == nil {
		deps.Namer = domain.PlainNamer{}
	}
	s := &Service{
		store:    deps.Store,
		channel:  deps.Channel,
		roster:   deps.Roster,
		mover:    deps.Mover,
		events:   deps.Events,
		namer:    deps.Namer,
		roles:    deps.Roles,
		rooms:    deps.Rooms,
		registry: command.NewRegistry(),
		tracer:   otel.Tracer(tracerName),
		newSeed:  random.NewSeed,
		newID:    id.NewID,
		logf:     log.Printf,
	}
	for _, def := range s.definitions() {
		if err := s.registry.Register(def); err != nil {
			return nil, fmt.Errorf("register commands: %w", err)
		}
	}
	return s, nil
}

// Registry exposes the command table for platform registration.
func (s *Service) Registry() *command.Registry {
	return s.registry
}

// Execute runs inv and renders the reply or the failure for the caller.
func (s *Service) Execute(ctx context.Context, inv command.Invocation) command.Result {
	if inv.ID == "" {
		if invocationID, err := s.newID(); err == nil {
			inv.ID = invocationID
		}
	}
	ctx, span := s.tracer.Start(ctx, "dipbot."+inv.Name, trace.WithAttributes(
		attribute.String("dipbot.command", inv.Name),
		attribute.String("dipbot.invocation_id", inv.ID),
		attribute.String("dipbot.user_id", inv.UserID),
	))
	defer span.End()

	reply, err := s.registry.Dispatch(ctx, inv)
	if err != nil {
		code := apperrors.CodeOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		switch code.Kind() {
		case apperrors.KindPrecondition, apperrors.KindInvalidInput:
			s.logf("%s [%s] rejected: %v", inv.Name, inv.ID, err)
		default:
			s.logf("%s [%s] failed: %v", inv.Name, inv.ID, err)
		}
		return command.Result{Content: apperrors.UserMessage(err, inv.Locale), Err: err}
	}
	s.logf("%s [%s] by %s", inv.Name, inv.ID, inv.UserID)
	return command.Result{Content: reply.Content}
}

// caller resolves the invoking user's faction from their roles.
func (s *Service) caller(inv command.Invocation) domain.Caller {
	f, _ := s.roles.FactionOf(inv.RoleIDs)
	return domain.Caller{UserID: inv.UserID, Faction: f}
}

func (s *Service) printer(inv command.Invocation) *message.Printer {
	return i18ncatalog.Default().Printer(inv.Locale)
}

func (s *Service) reply(inv command.Invocation, key string, args ...any) command.Reply {
	return command.Reply{Content: s.printer(inv).Sprintf(key, args...)}
}

// post sends one message to the output channel under the platform timeout.
func (s *Service) post(ctx context.Context, post chat.Post) (domain.MessageID, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.PlatformRequest)
	defer cancel()
	messageID, err := s.channel.Post(ctx, post)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodePlatformUnavailable, "post to output channel", err)
	}
	return messageID, nil
}

// remove deletes a message posted earlier. action names the undone command in
// the error shown to the caller.
func (s *Service) remove(ctx context.Context, messageID domain.MessageID, action string) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.PlatformRequest)
	defer cancel()
	if err := s.channel.Delete(ctx, messageID); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeMessageNotFound, "delete "+action+" message "+string(messageID), map[string]string{"Action": action}, err)
	}
	return nil
}

// publish emits a game event. Failures are logged and never fail the command.
func (s *Service) publish(ctx context.Context, inv command.Invocation, eventType string, payload any) {
	err := s.events.Publish(ctx, events.Event{Type: eventType, InvocationID: inv.ID, Payload: payload})
	if err != nil {
		s.logf("publish %s [%s]: %v", eventType, inv.ID, err)
	}
}

func turnPayload(t domain.Turn) map[string]any {
	return map[string]any{"year": t.Year, "season": string(t.Season)}
}
