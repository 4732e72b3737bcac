package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	"github.com/louisbranch/dipbot/internal/services/dipbot/chat"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
)

// maxAttachmentBytes caps a downloaded board image at the Discord upload
// limit for bots.
const maxAttachmentBytes = 25 << 20

// messenger is the subset of *discordgo.Session used by Channel.
type messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Channel posts to one Discord text channel. Attachments are downloaded
// before posting; when the download fails the message goes out without it.
type Channel struct {
	session   messenger
	channelID string
	client    *http.Client
	logf      func(format string, args ...any)
}

// NewChannel creates a Channel posting to channelID.
func NewChannel(session messenger, channelID string) *Channel {
	return &Channel{
		session:   session,
		channelID: channelID,
		client:    http.DefaultClient,
		logf:      log.Printf,
	}
}

// Post implements chat.Channel.
func (c *Channel) Post(ctx context.Context, post chat.Post) (domain.MessageID, error) {
	send := &discordgo.MessageSend{Content: post.Content}
	if post.Attachment != nil {
		data, err := c.download(ctx, post.Attachment.URL)
		if err != nil {
			c.logf("download %s: %v", post.Attachment.URL, err)
		} else {
			send.Files = []*discordgo.File{{
				Name:        post.Attachment.Name,
				ContentType: "image/png",
				Reader:      bytes.NewReader(data),
			}}
		}
	}
	msg, err := c.session.ChannelMessageSendComplex(c.channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send message to %s: %w", c.channelID, err)
	}
	return domain.MessageID(msg.ID), nil
}

// Delete implements chat.Channel.
func (c *Channel) Delete(ctx context.Context, id domain.MessageID) error {
	if err := c.session.ChannelMessageDelete(c.channelID, string(id), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}

func (c *Channel) download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.BoardImageFetch)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxAttachmentBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxAttachmentBytes)
	}
	return data, nil
}
