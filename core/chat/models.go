package chat

import "github.com/google/uuid"

// DeliveryState tracks a sent message through its round trip.
type DeliveryState int

const (
	Pending DeliveryState = iota
	Sent
	Failed
)

func (s DeliveryState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return "unknown"
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry. LocalID identifies the entry before the
// backend has assigned (or while it never assigns) an ID; ID is the backend's
// identifier for persisted messages.
type Message struct {
	LocalID string        `json:"-"`
	ID      string        `json:"id,omitempty"`
	Role    string        `json:"role"`
	Content string        `json:"content"`
	State   DeliveryState `json:"-"`
}

func newUserMessage(content string) Message {
	return Message{
		LocalID: uuid.NewString(),
		Role:    RoleUser,
		Content: content,
		State:   Pending,
	}
}

// HistoryEntry is the prior-message shape sent along with each turn.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the POST /ai-chat body. ID is empty on the conversation's first
// turn; FileID is sent only on that first turn to seed the conversation with
// a document.
type Request struct {
	ID          string         `json:"id"`
	UserMessage string         `json:"userMessage"`
	Messages    []HistoryEntry `json:"messages"`
	FileID      string         `json:"fileId,omitempty"`
}

// Reply is the POST /ai-chat response.
type Reply struct {
	Assistant string `json:"assistant"`
	ChatID    string `json:"chatId"`
}
