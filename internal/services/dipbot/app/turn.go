package app

import (
	"context"

	apperrors "github.com/louisbranch/dipbot/internal/platform/errors"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/command"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

// announceTurn posts the scoreboard, when the game has one, followed by the
// announcement opening turn t. It returns the announcement id. If the
// announcement fails the scoreboard post is withdrawn.
func (s *Service) announceTurn(ctx context.Context, st *domain.State, t domain.Turn) (domain.MessageID, error) {
	var scoreboardID domain.MessageID
	if st.Scoreboard != nil {
		messageID, err := s.post(ctx, chat.Post{Content: domain.FormatScoreboard(s.namer, st.Scoreboard)})
		if err != nil {
			return "", err
		}
		scoreboardID = messageID
	}

	post := chat.Post{Content: domain.FormatTurnStart(t)}
	if st.Board != "" {
		post.Attachment = &chat.Attachment{Name: st.Board.ImageName(t), URL: st.Board.ImageURL()}
	}
	messageID, err := s.post(ctx, post)
	if err != nil {
		if scoreboardID != "" {
			if derr := s.channel.Delete(ctx, scoreboardID); derr != nil {
				s.logf("withdraw scoreboard %s: %v", scoreboardID, derr)
			}
		}
		return "", err
	}
	return messageID, nil
}

func (s *Service) handleEndTurn(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.State()
	next := st.Turn.Next()
	messageID, err := s.announceTurn(ctx, st, next)
	if err != nil {
		return command.Reply{}, err
	}
	st.ApplyEndTurn(messageID)
	s.store.Save(ctx)
	s.publish(ctx, inv, "turn.ended", turnPayload(st.Turn))
	return s.reply(inv, "reply.endturn.done", st.Turn.String()), nil
}

func (s *Service) handleRevertEndTurn(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.State()
	if err := st.CheckRevertEndTurn(); err != nil {
		return command.Reply{}, err
	}
	if err := s.remove(ctx, st.LastEndTurn, "endturn"); err != nil {
		return command.Reply{}, err
	}
	st.ApplyRevertEndTurn()
	s.store.Save(ctx)
	s.publish(ctx, inv, "turn.reverted", turnPayload(st.Turn))
	return s.reply(inv, "reply.revertendturn.done", st.Turn.String()), nil
}

func (s *Service) handleSetTurn(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	year, _ := inv.Int("year")
	season, _ := inv.String("season")
	t, err := domain.NewTurn(year, season)
	if err != nil {
		return command.Reply{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.State().Turn = t
	s.store.Save(ctx)
	s.publish(ctx, inv, "turn.set", turnPayload(t))
	return s.reply(inv, "reply.setturn.done", t.String()), nil
}

func (s *Service) handleNewGame(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	var board domain.BoardRef
	if link, ok := inv.String("slide_link"); ok && link != "" {
		ref, valid := domain.ParseBoardRef(link)
		if !valid {
			return command.Reply{}, invalidLink(link)
		}
		board = ref
	}
	withScoreboard, _ := inv.Bool("scoreboard")

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.State()

	// Announce from a fresh game so a failed post leaves the running one
	// untouched.
	fresh := domain.NewState()
	fresh.StartGame(board, withScoreboard)
	messageID, err := s.announceTurn(ctx, fresh, fresh.Turn)
	if err != nil {
		return command.Reply{}, err
	}
	st.StartGame(board, withScoreboard)
	st.ApplyOpening(messageID)
	s.store.Save(ctx)
	s.publish(ctx, inv, "game.started", map[string]any{"board": string(board), "scoreboard": withScoreboard})
	return s.reply(inv, "reply.newgame.done"), nil
}

func (s *Service) handleSetSlides(ctx context.Context, inv command.Invocation) (command.Reply, error) {
	link, _ := inv.String("slide_link")
	ref, ok := domain.ParseBoardRef(link)
	if !ok {
		return command.Reply{}, invalidLink(link)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.State().Board = ref
	s.store.Save(ctx)
	return s.reply(inv, "reply.setslides.done", ref.SlideURL()), nil
}

func invalidLink(link string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidBoardLink, "invalid slide link", map[string]string{"Link": link})
}
