package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
)

type fakeResponder struct {
	responses  []*discordgo.InteractionResponse
	edits      []string
	deletes    int
	followups  []*discordgo.WebhookParams
	respondErr error
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, *edit.Content)
	return &discordgo.Message{}, nil
}

func (f *fakeResponder) InteractionResponseDelete(*discordgo.Interaction, ...discordgo.RequestOption) error {
	f.deletes++
	return nil
}

func (f *fakeResponder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

type fakeExecutor struct {
	result command.Result
	calls  []command.Invocation
}

func (f *fakeExecutor) Execute(_ context.Context, inv command.Invocation) command.Result {
	f.calls = append(f.calls, inv)
	return f.result
}

func testBot(t *testing.T, exec Executor) *Bot {
	t.Helper()
	registry := command.NewRegistry()
	noop := func(context.Context, command.Invocation) (command.Reply, error) { return command.Reply{}, nil }
	for _, def := range []command.Definition{
		{Name: "showorder", Description: "View your order", Handle: noop},
		{Name: "announce", Description: "Public reply", Public: command.Always, Handle: noop},
	} {
		if err := registry.Register(def); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	bot, err := NewBot(&discordgo.Session{}, Config{ApplicationID: "app"}, registry, exec)
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	bot.logf = func(string, ...any) {}
	return bot
}

func interaction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "u1"},
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestNewBotValidates(t *testing.T) {
	if _, err := NewBot(nil, Config{ApplicationID: "app"}, command.NewRegistry(), &fakeExecutor{}); err == nil {
		t.Fatal("expected error for nil session")
	}
	if _, err := NewBot(&discordgo.Session{}, Config{}, command.NewRegistry(), &fakeExecutor{}); err == nil {
		t.Fatal("expected error for missing application id")
	}
}

func TestNewSessionRequiresToken(t *testing.T) {
	if _, err := NewSession("  "); err == nil {
		t.Fatal("expected error for blank token")
	}
}

func TestNewSessionSkipsPrivilegedMembersIntent(t *testing.T) {
	session, err := NewSession("token")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	intents := session.Identify.Intents
	if intents&discordgo.IntentsGuildMembers != 0 {
		t.Fatalf("intents = %d, members intent must not be requested", intents)
	}
	want := discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates
	if intents != want {
		t.Fatalf("intents = %d, want %d", intents, want)
	}
	if !session.StateEnabled {
		t.Fatal("expected state tracking enabled")
	}
}

type fakePresence struct {
	states []string
	err    error
}

func (f *fakePresence) UpdateCustomStatus(state string) error {
	f.states = append(f.states, state)
	return f.err
}

func TestReadySetsCustomStatus(t *testing.T) {
	bot := testBot(t, &fakeExecutor{})
	var logs []string
	bot.logf = func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}
	p := &fakePresence{}

	bot.ready(p, &discordgo.Ready{User: &discordgo.User{Username: "dipbot", Discriminator: "0001"}})

	if len(p.states) != 1 || p.states[0] != "Let the games begin" {
		t.Fatalf("states = %v", p.states)
	}
	if len(logs) != 1 || logs[0] != "connected as dipbot#0001" {
		t.Fatalf("logs = %v", logs)
	}
}

func TestReadyLogsStatusFailure(t *testing.T) {
	bot := testBot(t, &fakeExecutor{})
	var logs []string
	bot.logf = func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	bot.ready(&fakePresence{err: errors.New("gateway closed")}, &discordgo.Ready{})

	if len(logs) != 1 || logs[0] != "set status: gateway closed" {
		t.Fatalf("logs = %v", logs)
	}
}

func TestHandlePrivateReply(t *testing.T) {
	exec := &fakeExecutor{result: command.Result{Content: "Your order is:\n> A Vie H"}}
	bot := testBot(t, exec)
	r := &fakeResponder{}

	bot.handle(context.Background(), r, interaction("showorder"))

	if len(r.responses) != 1 || r.responses[0].Data == nil || r.responses[0].Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Fatalf("expected ephemeral deferral, got %+v", r.responses)
	}
	if len(r.edits) != 1 || r.edits[0] != exec.result.Content {
		t.Fatalf("edits = %q", r.edits)
	}
	if len(exec.calls) != 1 || exec.calls[0].UserID != "u1" {
		t.Fatalf("calls = %+v", exec.calls)
	}
}

func TestHandlePublicFailureGoesPrivate(t *testing.T) {
	exec := &fakeExecutor{result: command.Result{Content: "Scoreboard not enabled for this game", Err: errors.New("disabled")}}
	bot := testBot(t, exec)
	r := &fakeResponder{}

	bot.handle(context.Background(), r, interaction("announce"))

	if len(r.responses) != 1 || r.responses[0].Data != nil {
		t.Fatalf("expected public deferral, got %+v", r.responses)
	}
	if r.deletes != 1 || len(r.edits) != 0 {
		t.Fatalf("deletes = %d, edits = %q", r.deletes, r.edits)
	}
	if len(r.followups) != 1 || r.followups[0].Flags != discordgo.MessageFlagsEphemeral || r.followups[0].Content != exec.result.Content {
		t.Fatalf("followups = %+v", r.followups)
	}
}

func TestHandleSkipsUnknownAndFailedDeferral(t *testing.T) {
	exec := &fakeExecutor{}
	bot := testBot(t, exec)

	bot.handle(context.Background(), &fakeResponder{}, interaction("missing"))
	bot.handle(context.Background(), &fakeResponder{respondErr: errors.New("expired")}, interaction("showorder"))

	if len(exec.calls) != 0 {
		t.Fatalf("executor should not run, got %+v", exec.calls)
	}
}
