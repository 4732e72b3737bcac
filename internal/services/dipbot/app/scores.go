package app

import (
	"context"

	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

// scoreTarget resolves the "country" role option. The scoreboard check comes
// first so a disabled scoreboard is reported even for a bad role.
func (s *Service) scoreTarget(inv command.Invocation) (*domain.Scoreboard, domain.Faction, error) {
	sb, err := s.store.State().EnabledScoreboard()
	if err != nil {
		return nil, "", err
	}
	roleID, _ := inv.String("country")
	f, ok := s.roles.FactionForRole(roleID)
	if !ok {
		return nil, "", domain.ErrInvalidFaction
	}
	return sb, f, nil
}

func (s *Service) handleSetScore(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	value, _ := inv.Int("value")

	s.mu.Lock()
	defer s.mu.Unlock()
	sb, f, err := s.scoreTarget(inv)
	if err != nil {
		return command.Reply{}, err
	}
	if err := sb.Set(f, value); err != nil {
		return command.Reply{}, err
	}
	s.store.Save(ctx)
	s.publish(ctx, inv, "score.changed", map[string]any{"faction": string(f), "score": value})
	return s.reply(inv, "reply.score.set", s.namer.Faction(f), value), nil
}

func (s *Service) handleAddScore(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	delta, _ := inv.Int("value")

	s.mu.Lock()
	defer s.mu.Unlock()
	sb, f, err := s.scoreTarget(inv)
	if err != nil {
		return command.Reply{}, err
	}
	total, err := sb.Add(f, delta)
	if err != nil {
		return command.Reply{}, err
	}
	s.store.Save(ctx)
	s.publish(ctx, inv, "score.changed", map[string]any{"faction": string(f), "score": total})
	return s.reply(inv, "reply.score.added", delta, s.namer.Faction(f), total), nil
}

func (s *Service) handleShowScoreboard(_ context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sb, err := s.store.State().EnabledScoreboard()
	if err != nil {
		return command.Reply{}, err
	}
	return command.Reply{Content: domain.FormatScoreboard(s.namer, sb)}, nil
}
