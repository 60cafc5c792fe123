// Package deliver posts converted blocks to Slack.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/slack-go/slack"
)

// MaxBlocksPerMessage is Slack's limit on blocks in a single message.
const MaxBlocksPerMessage = 50

const fallbackTextLen = 150

// Message is one Slack post: notification text plus its blocks.
type Message struct {
	Text   string
	Blocks []blocks.Block
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WebhookSender posts to an incoming webhook URL.
type WebhookSender struct {
	URL string
}

func (w WebhookSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(w.URL) == "" {
		return errors.New("webhook URL is not configured")
	}
	set := blocks.List(msg.Blocks).Slack()
	return slack.PostWebhookContext(ctx, w.URL, &slack.WebhookMessage{
		Text:   msg.Text,
		Blocks: &set,
	})
}

// messagePoster is the subset of slack.Client used by ChannelSender,
// allowing tests to supply a fake without a live workspace.
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// ChannelSender posts with a bot token to a fixed channel.
type ChannelSender struct {
	client  messagePoster
	channel string
}

// NewChannelSender creates a ChannelSender using a bot token.
func NewChannelSender(token, channel string) (*ChannelSender, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("slack token is not configured")
	}
	if strings.TrimSpace(channel) == "" {
		return nil, errors.New("slack channel is not configured")
	}
	return &ChannelSender{client: slack.New(token), channel: channel}, nil
}

func (c *ChannelSender) Send(ctx context.Context, msg Message) error {
	set := blocks.List(msg.Blocks).Slack()
	_, ts, err := c.client.PostMessageContext(ctx, c.channel,
		slack.MsgOptionText(msg.Text, false),
		slack.MsgOptionBlocks(set.BlockSet...),
	)
	if err != nil {
		return err
	}
	log.Printf("[slack] posted to %s at %s", c.channel, ts)
	return nil
}

// Batch splits bs into consecutive groups of at most limit blocks. Blocks are
// never split. A limit outside 1..50 uses MaxBlocksPerMessage.
func Batch(bs []blocks.Block, limit int) [][]blocks.Block {
	if limit <= 0 || limit > MaxBlocksPerMessage {
		limit = MaxBlocksPerMessage
	}
	var out [][]blocks.Block
	for len(bs) > 0 {
		n := min(limit, len(bs))
		out = append(out, bs[:n:n])
		bs = bs[n:]
	}
	return out
}

// FallbackText returns the notification text for a message: the text of the
// first header or non-empty section, flattened to one line and shortened.
func FallbackText(bs []blocks.Block) string {
	for _, b := range bs {
		if b.Kind != blocks.KindHeader && b.Kind != blocks.KindSection {
			continue
		}
		text := strings.Join(strings.Fields(b.Text), " ")
		if text == "" {
			continue
		}
		if r := []rune(text); len(r) > fallbackTextLen {
			text = string(r[:fallbackTextLen-1]) + "…"
		}
		return text
	}
	return "New message"
}

// Deliver posts bs through s in batches of at most limit blocks, in order.
// It stops at the first failure and returns the number of messages sent.
func Deliver(ctx context.Context, s Sender, bs []blocks.Block, limit int) (int, error) {
	batches := Batch(bs, limit)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		msg := Message{Text: FallbackText(batch), Blocks: batch}
		if err := s.Send(ctx, msg); err != nil {
			return i, fmt.Errorf("post message %d/%d: %w", i+1, len(batches), err)
		}
	}
	return len(batches), nil
}
