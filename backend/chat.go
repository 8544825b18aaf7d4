package backend

import (
	"context"
	"fmt"

	"github.com/learnx/learnx/core/chat"
)

var _ chat.Api = (*Client)(nil)

func (c *Client) SendChat(ctx context.Context, req chat.Request) (chat.Reply, error) {
	var reply chat.Reply
	err := c.post(ctx, "/ai-chat", req, &reply)
	return reply, err
}

func (c *Client) ChatMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	var msgs []chat.Message
	err := c.get(ctx, fmt.Sprintf("/student/chats/%s/messages", chatID), &msgs)
	return msgs, err
}
