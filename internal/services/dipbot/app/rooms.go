package app

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

// Relocation commands read the live voice roster and never touch game state,
// so they do not take the state lock. Moves already made are not rolled back
// when a later one fails.

func roomNotConfigured(room string) error {
	return apperrors.WithMetadata(apperrors.CodeRoomNotConfigured, "no voice room for "+room, map[string]string{"Room": room})
}

func roomMoveFailed(room string, err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeRoomMoveFailed, "move members of "+room, map[string]string{"Room": room}, err)
}

func (s *Service) voiceMembers(ctx context.Context) ([]chat.Member, error) {
	if s.roster == nil || s.mover == nil {
		return nil, roomNotConfigured("voice")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.PlatformRequest)
	defer cancel()
	members, err := s.roster.Members(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePlatformUnavailable, "list voice members", err)
	}
	return members, nil
}

func (s *Service) move(ctx context.Context, userID, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.PlatformRequest)
	defer cancel()
	return s.mover.Move(ctx, userID, roomID)
}

func (s *Service) handleMoveCentral(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	if s.rooms.Central == "" {
		return command.Reply{}, roomNotConfigured("central")
	}
	members, err := s.voiceMembers(ctx)
	if err != nil {
		return command.Reply{}, err
	}
	moved := 0
	for _, m := range members {
		if m.VoiceRoom == "" || m.VoiceRoom == s.rooms.Central {
			continue
		}
		f, ok := s.roles.FactionOf(m.RoleIDs)
		if !ok {
			continue
		}
		if err := s.move(ctx, m.UserID, s.rooms.Central); err != nil {
			return command.Reply{}, roomMoveFailed(f.Title(), err)
		}
		moved++
	}
	s.publish(ctx, inv, "rooms.central", map[string]any{"moved": moved})
	return s.reply(inv, "reply.move.central", moved), nil
}

func (s *Service) handleMoveDistribute(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	for _, f := range domain.Factions() {
		if s.rooms.Factions[f] == "" {
			return command.Reply{}, roomNotConfigured(f.Title())
		}
	}
	members, err := s.voiceMembers(ctx)
	if err != nil {
		return command.Reply{}, err
	}
	moved := 0
	for _, f := range domain.Factions() {
		room := s.rooms.Factions[f]
		for _, m := range members {
			if m.VoiceRoom == "" || m.VoiceRoom == room {
				continue
			}
			if held, ok := s.roles.FactionOf(m.RoleIDs); !ok || held != f {
				continue
			}
			if err := s.move(ctx, m.UserID, room); err != nil {
				return command.Reply{}, roomMoveFailed(f.Title(), err)
			}
			moved++
		}
	}
	s.publish(ctx, inv, "rooms.distributed", map[string]any{"moved": moved})
	return s.reply(inv, "reply.move.distribute", moved), nil
}

func (s *Service) handleJail(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	if s.rooms.Jail == "" {
		return command.Reply{}, roomNotConfigured("jail")
	}
	targetID, _ := inv.String("user")
	members, err := s.voiceMembers(ctx)
	if err != nil {
		return command.Reply{}, err
	}

	var callerRoom, targetRoom string
	for _, m := range members {
		switch m.UserID {
		case inv.UserID:
			callerRoom = m.VoiceRoom
		case targetID:
			targetRoom = m.VoiceRoom
		}
	}
	if callerRoom == "" {
		return command.Reply{}, apperrors.New(apperrors.CodeNotInVoice, "caller not in voice")
	}
	if targetID == inv.UserID {
		targetRoom = callerRoom
	}
	if targetRoom != callerRoom {
		return command.Reply{}, apperrors.WithMetadata(apperrors.CodeNotSameRoom, fmt.Sprintf("%s not in room %s", targetID, callerRoom), map[string]string{"User": s.namer.User(targetID)})
	}
	if err := s.move(ctx, targetID, s.rooms.Jail); err != nil {
		return command.Reply{}, roomMoveFailed("jail", err)
	}
	s.publish(ctx, inv, "rooms.jailed", map[string]any{"user": targetID})
	return s.reply(inv, "reply.jail.done", s.namer.User(targetID)), nil
}
