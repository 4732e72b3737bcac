// Package chat declares the ports the game handlers need from the chat
// platform: posting to the output channel, reading the voice roster and
// moving members between voice rooms.
package chat

import (
	"context"

	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

// Attachment is a file fetched from URL and attached under Name.
type Attachment struct {
	Name string
	URL  string
}

// Post is one message for the output channel.
type Post struct {
	Content    string
	Attachment *Attachment
}

// Channel is the shared output channel.
type Channel interface {
	Post(ctx context.Context, post Post) (domain.MessageID, error)
	Delete(ctx context.Context, id domain.MessageID) error
}

// Member is a server member as seen by the relocation commands.
type Member struct {
	UserID  string
	RoleIDs []string
	// VoiceRoom is empty when the member is not connected to voice.
	VoiceRoom string
}

// Roster lists the members of the server.
type Roster interface {
	Members(ctx context.Context) ([]Member, error)
}

// Mover moves a member connected to voice into another voice room.
type Mover interface {
	Move(ctx context.Context, userID, roomID string) error
}
