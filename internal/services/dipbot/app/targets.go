package app

import (
	"context"
	"fmt"

	"github.com/louisbranch/dipbot/internal/platform/random"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

func (s *Service) handleAssignTargets(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	seed, err := s.newSeed()
	if err != nil {
		return command.Reply{}, fmt.Errorf("seed target shuffle: %w", err)
	}
	targets := domain.AssignTargets(random.NewRand(seed))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.post(ctx, chat.Post{Content: domain.TargetsAnnouncement}); err != nil {
		return command.Reply{}, err
	}
	s.store.State().Targets = targets
	s.store.Save(ctx)
	s.publish(ctx, inv, "targets.assigned", nil)
	return s.reply(inv, "reply.targets.assigned"), nil
}

func (s *Service) handleGetTarget(_ context.Context, inv command.Invocation) (command.Reply, error) {
	c := s.caller(inv)

	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.store.State().TargetOf(c)
	if err != nil {
		return command.Reply{}, err
	}
	return s.reply(inv, "reply.target.yours", s.namer.Faction(target)), nil
}
