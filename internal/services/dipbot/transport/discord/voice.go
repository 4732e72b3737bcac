package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
)

// guildClient is the subset of *discordgo.Session used by Voice.
type guildClient interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberMove(guildID string, userID string, channelID *string, options ...discordgo.RequestOption) error
}

// Voice reads voice presence from the gateway state cache and moves members
// through the REST API.
type Voice struct {
	state   *discordgo.State
	client  guildClient
	guildID string
}

// NewVoice creates a Voice for guildID. The state must track voice states.
func NewVoice(state *discordgo.State, client guildClient, guildID string) *Voice {
	return &Voice{state: state, client: client, guildID: guildID}
}

// Members implements chat.Roster. Only members connected to voice are listed.
func (v *Voice) Members(ctx context.Context) ([]chat.Member, error) {
	if v.state == nil {
		return nil, errors.New("voice state cache is not available")
	}
	connected, err := v.voiceStates()
	if err != nil {
		return nil, err
	}
	members := make([]chat.Member, 0, len(connected))
	for _, vs := range connected {
		roles, err := v.roles(ctx, vs)
		if err != nil {
			return nil, err
		}
		members = append(members, chat.Member{UserID: vs.UserID, RoleIDs: roles, VoiceRoom: vs.ChannelID})
	}
	return members, nil
}

func (v *Voice) voiceStates() ([]discordgo.VoiceState, error) {
	v.state.RLock()
	defer v.state.RUnlock()
	guild, err := v.guild()
	if err != nil {
		return nil, err
	}
	out := make([]discordgo.VoiceState, 0, len(guild.VoiceStates))
	for _, vs := range guild.VoiceStates {
		if vs == nil || vs.ChannelID == "" {
			continue
		}
		out = append(out, *vs)
	}
	return out, nil
}

// guild must be called with the state read lock held.
func (v *Voice) guild() (*discordgo.Guild, error) {
	for _, g := range v.state.Guilds {
		if g.ID == v.guildID {
			return g, nil
		}
	}
	return nil, fmt.Errorf("guild %s not in state cache", v.guildID)
}

func (v *Voice) roles(ctx context.Context, vs discordgo.VoiceState) ([]string, error) {
	if vs.Member != nil {
		return vs.Member.Roles, nil
	}
	if m, err := v.state.Member(v.guildID, vs.UserID); err == nil {
		return m.Roles, nil
	}
	if v.client == nil {
		return nil, fmt.Errorf("member %s not in state cache", vs.UserID)
	}
	m, err := v.client.GuildMember(v.guildID, vs.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch member %s: %w", vs.UserID, err)
	}
	return m.Roles, nil
}

// Move implements chat.Mover.
func (v *Voice) Move(ctx context.Context, userID, roomID string) error {
	if v.client == nil {
		return errors.New("voice client is not available")
	}
	if err := v.client.GuildMemberMove(v.guildID, userID, &roomID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("move %s to %s: %w", userID, roomID, err)
	}
	return nil
}
