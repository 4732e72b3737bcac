// Package discord adapts the dipbot service to Discord application commands,
// messages and voice channels.
package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
)

// permissionManageServer is the Discord "Manage Server" permission bit.
const permissionManageServer int64 = 1 << 5

var optionTypes = map[command.OptionType]discordgo.ApplicationCommandOptionType{
	command.OptionString:  discordgo.ApplicationCommandOptionString,
	command.OptionInteger: discordgo.ApplicationCommandOptionInteger,
	command.OptionBoolean: discordgo.ApplicationCommandOptionBoolean,
	command.OptionRole:    discordgo.ApplicationCommandOptionRole,
	command.OptionUser:    discordgo.ApplicationCommandOptionUser,
}

// ApplicationCommands converts command definitions to their Discord form.
// Moderator commands default to members who can manage the server.
func ApplicationCommands(defs []command.Definition) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, def := range defs {
		cmd := &discordgo.ApplicationCommand{
			Name:        def.Name,
			Description: def.Description,
		}
		if def.Moderator {
			perms := permissionManageServer
			cmd.DefaultMemberPermissions = &perms
		}
		for _, opt := range def.Options {
			cmd.Options = append(cmd.Options, applicationOption(opt))
		}
		out = append(out, cmd)
	}
	return out
}

func applicationOption(opt command.Option) *discordgo.ApplicationCommandOption {
	out := &discordgo.ApplicationCommandOption{
		Type:        optionTypes[opt.Type],
		Name:        opt.Name,
		Description: opt.Description,
		Required:    opt.Required,
	}
	if opt.MinValue != nil {
		minValue := float64(*opt.MinValue)
		out.MinValue = &minValue
	}
	for _, choice := range opt.Choices {
		out.Choices = append(out.Choices, &discordgo.ApplicationCommandOptionChoice{Name: choice.Name, Value: choice.Value})
	}
	return out
}

// invocationOptions flattens interaction options into the values the
// handlers read: strings for string, role and user options, int64 for
// integers and bool for booleans.
func invocationOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]any {
	out := make(map[string]any, len(opts))
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch v := opt.Value.(type) {
		case float64:
			out[opt.Name] = int64(v)
		case string, bool:
			out[opt.Name] = v
		}
	}
	return out
}

// NewInvocation builds the invocation for an application command
// interaction. It reports false for other interaction types.
func NewInvocation(i *discordgo.InteractionCreate) (command.Invocation, bool) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return command.Invocation{}, false
	}
	data := i.ApplicationCommandData()
	inv := command.Invocation{
		Name:    data.Name,
		Locale:  string(i.Locale),
		Options: invocationOptions(data.Options),
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		inv.UserID = i.Member.User.ID
		inv.RoleIDs = append([]string(nil), i.Member.Roles...)
	case i.User != nil:
		inv.UserID = i.User.ID
	}
	return inv, true
}
