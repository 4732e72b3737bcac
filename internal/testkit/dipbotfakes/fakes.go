// Package dipbotfakes provides in-memory fakes of the dipbot ports for tests.
package dipbotfakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/dipbot/internal/platform/events"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
)

// SnapshotStore is an in-memory SnapshotStore fake.
type SnapshotStore struct {
	Data    []byte
	LoadErr error
	SaveErr error
	Saves   int
}

func (s *SnapshotStore) Load(context.Context) ([]byte, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Data == nil {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), s.Data...), nil
}

func (s *SnapshotStore) Save(_ context.Context, data []byte) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Data = append([]byte(nil), data...)
	s.Saves++
	return nil
}

func (s *SnapshotStore) Close() error { return nil }

// Channel records posts and deletions. Posted messages get sequential ids.
type Channel struct {
	mu        sync.Mutex
	Posts     map[domain.MessageID]chat.Post
	Order     []domain.MessageID
	Deleted   []domain.MessageID
	PostErr   error
	DeleteErr error
	// FailPostAfter makes every post after the first n fail with PostErr.
	FailPostAfter int
	next          int
}

// NewChannel constructs an empty Channel fake.
func NewChannel() *Channel {
	return &Channel{Posts: make(map[domain.MessageID]chat.Post), FailPostAfter: -1}
}

func (c *Channel) Post(_ context.Context, post chat.Post) (domain.MessageID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PostErr != nil && (c.FailPostAfter < 0 || c.next >= c.FailPostAfter) {
		return "", c.PostErr
	}
	c.next++
	id := domain.MessageID(fmt.Sprintf("msg-%d", c.next))
	c.Posts[id] = post
	c.Order = append(c.Order, id)
	return id, nil
}

func (c *Channel) Delete(_ context.Context, id domain.MessageID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	if _, ok := c.Posts[id]; !ok {
		return fmt.Errorf("unknown message %s", id)
	}
	delete(c.Posts, id)
	c.Deleted = append(c.Deleted, id)
	return nil
}

// Live returns the contents of posts not yet deleted, in posting order.
func (c *Channel) Live() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, id := range c.Order {
		if post, ok := c.Posts[id]; ok {
			out = append(out, post.Content)
		}
	}
	return out
}

// Last returns the most recent live post.
func (c *Channel) Last() (chat.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.Order) - 1; i >= 0; i-- {
		if post, ok := c.Posts[c.Order[i]]; ok {
			return post, true
		}
	}
	return chat.Post{}, false
}

// Voice is a Roster and Mover over an in-memory member list.
type Voice struct {
	mu     sync.Mutex
	People []chat.Member
	// MoveErr fails moves of the listed users.
	MoveErr map[string]error
	Moves   []Move
	ListErr error
}

// Move is one recorded relocation.
type Move struct {
	UserID string
	RoomID string
}

func (v *Voice) Members(context.Context) ([]chat.Member, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ListErr != nil {
		return nil, v.ListErr
	}
	out := make([]chat.Member, len(v.People))
	copy(out, v.People)
	return out, nil
}

func (v *Voice) Move(_ context.Context, userID, roomID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.MoveErr[userID]; err != nil {
		return err
	}
	for i := range v.People {
		if v.People[i].UserID == userID {
			v.People[i].VoiceRoom = roomID
		}
	}
	v.Moves = append(v.Moves, Move{UserID: userID, RoomID: roomID})
	return nil
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []events.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

func (p *Publisher) Close() error { return nil }

// Types returns the recorded event types in order.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type)
	}
	return out
}
