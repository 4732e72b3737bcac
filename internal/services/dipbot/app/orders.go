package app

import (
	"context"
	"strings"

	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

func (s *Service) handleOrder(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	text, _ := inv.String("order")
	c := s.caller(inv)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.State().SubmitOrder(c, text); err != nil {
		return command.Reply{}, err
	}
	s.store.Save(ctx)
	s.publish(ctx, inv, "order.submitted", map[string]any{"key": c.OrderKey()})
	return s.reply(inv, "reply.order.saved", text), nil
}

func (s *Service) handleShowOrder(_ context.Context, inv command.Invocation) (command.Reply, error) {
	c := s.caller(inv)

	s.mu.Lock()
	defer s.mu.Unlock()
	text, err := s.store.State().OrderOf(c)
	if err != nil {
		return command.Reply{}, err
	}
	return s.reply(inv, "reply.order.current", text), nil
}

func (s *Service) handleOrderStatus(_ context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	keys := s.store.State().Orders.Keys()
	pending := s.store.State().PendingFactions()
	s.mu.Unlock()

	p := s.printer(inv)
	var b strings.Builder
	b.WriteString(p.Sprintf("reply.order.status.header"))
	if len(keys) == 0 {
		b.WriteByte('\n')
		b.WriteString(p.Sprintf("reply.order.status.nobody"))
	}
	for _, key := range keys {
		b.WriteByte('\n')
		b.WriteString(domain.OrderKeyName(s.namer, key))
	}
	if len(pending) > 0 {
		b.WriteString("\n")
		b.WriteString(p.Sprintf("reply.order.status.pending"))
		for _, f := range pending {
			b.WriteByte('\n')
			b.WriteString(s.namer.Faction(f))
		}
	}
	return command.Reply{Content: b.String()}, nil
}

func (s *Service) handleReveal(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.State()
	if err := st.CheckReveal(); err != nil {
		return command.Reply{}, err
	}
	messageID, err := s.post(ctx, chat.Post{Content: domain.FormatReveal(s.namer, st.Orders)})
	if err != nil {
		return command.Reply{}, err
	}
	count := len(st.Orders)
	st.ApplyReveal(messageID)
	s.store.Save(ctx)
	s.publish(ctx, inv, "orders.revealed", map[string]any{"count": count, "turn": turnPayload(st.Turn)})
	return s.reply(inv, "reply.reveal.done"), nil
}

func (s *Service) handleUnreveal(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.State()
	if err := st.CheckUnreveal(); err != nil {
		return command.Reply{}, err
	}
	if err := s.remove(ctx, st.LastReveal, "reveal"); err != nil {
		return command.Reply{}, err
	}
	st.ApplyUnreveal()
	s.store.Save(ctx)
	s.publish(ctx, inv, "orders.unrevealed", map[string]any{"turn": turnPayload(st.Turn)})
	return s.reply(inv, "reply.unreveal.done"), nil
}
