package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
)

// Executor runs one invocation and renders its reply.
type Executor interface {
	Execute(ctx context.Context, inv command.Invocation) command.Result
}

// responder is the subset of *discordgo.Session used to answer interactions.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// gatewayIntents covers guild metadata and voice states. Member roles come
// from voice state payloads and REST lookups, so the privileged members
// intent is not requested.
const gatewayIntents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

// customStatus is shown under the bot's name once connected.
const customStatus = "Let the games begin"

// presence is the subset of *discordgo.Session used to set the bot status.
type presence interface {
	UpdateCustomStatus(state string) error
}

// Config identifies the bot application.
type Config struct {
	Token         string
	ApplicationID string
	// GuildID scopes command registration to one server when set.
	GuildID string
}

// Bot owns the gateway session and routes interactions to an Executor.
type Bot struct {
	session  *discordgo.Session
	cfg      Config
	registry *command.Registry
	exec     Executor
	// ctx is the process context handed to interaction handlers.
	ctx  context.Context
	logf func(format string, args ...any)
}

// NewSession creates a gateway session with the intents the bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("bot token is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = gatewayIntents
	session.StateEnabled = true
	return session, nil
}

// NewBot wires a session to the executor.
func NewBot(session *discordgo.Session, cfg Config, registry *command.Registry, exec Executor) (*Bot, error) {
	if session == nil {
		return nil, errors.New("discord session is required")
	}
	if registry == nil || exec == nil {
		return nil, errors.New("command registry and executor are required")
	}
	if strings.TrimSpace(cfg.ApplicationID) == "" {
		return nil, errors.New("application id is required")
	}
	return &Bot{
		session:  session,
		cfg:      cfg,
		registry: registry,
		exec:     exec,
		ctx:      context.Background(),
		logf:     log.Printf,
	}, nil
}

// Open connects to the gateway and registers the application commands.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.ready(s, r)
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(b.ctx, s, i)
	})
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	cmds := ApplicationCommands(b.registry.ListDefinitions())
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.ApplicationID, b.cfg.GuildID, cmds, discordgo.WithContext(ctx)); err != nil {
		_ = b.session.Close()
		return fmt.Errorf("register commands: %w", err)
	}
	b.logf("registered %d commands", len(cmds))
	return nil
}

func (b *Bot) ready(p presence, r *discordgo.Ready) {
	if r.User != nil {
		b.logf("connected as %s#%s", r.User.Username, r.User.Discriminator)
	}
	if err := p.UpdateCustomStatus(customStatus); err != nil {
		b.logf("set status: %v", err)
	}
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

// handle defers the response, runs the command and edits the deferred
// response with the reply. Public commands that fail swap their public
// response for a private followup.
func (b *Bot) handle(ctx context.Context, r responder, i *discordgo.InteractionCreate) {
	inv, ok := NewInvocation(i)
	if !ok {
		return
	}
	def, ok := b.registry.Definition(inv.Name)
	if !ok {
		b.logf("interaction for unknown command %q", inv.Name)
		return
	}
	public := def.IsPublic(inv)

	deferred := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if !public {
		deferred.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := r.InteractionRespond(i.Interaction, deferred); err != nil {
		b.logf("defer %s: %v", inv.Name, err)
		return
	}

	result := b.exec.Execute(ctx, inv)

	respondCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.PlatformRequest)
	defer cancel()
	if result.Err != nil && public {
		if err := r.InteractionResponseDelete(i.Interaction, discordgo.WithContext(respondCtx)); err != nil {
			b.logf("delete public response %s: %v", inv.Name, err)
		}
		followup := &discordgo.WebhookParams{Content: result.Content, Flags: discordgo.MessageFlagsEphemeral}
		if _, err := r.FollowupMessageCreate(i.Interaction, true, followup, discordgo.WithContext(respondCtx)); err != nil {
			b.logf("followup %s: %v", inv.Name, err)
		}
		return
	}
	content := result.Content
	if _, err := r.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}, discordgo.WithContext(respondCtx)); err != nil {
		b.logf("edit response %s: %v", inv.Name, err)
	}
}
