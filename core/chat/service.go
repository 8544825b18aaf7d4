package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/learnx/learnx/core"
)

var ErrUnknownMessage = errors.New("no such message")

const chatIDStateKey = "chatId"

type (
	// Api is the slice of the backend the chat panel consumes.
	Api interface {
		SendChat(ctx context.Context, req Request) (Reply, error)
		ChatMessages(ctx context.Context, chatID string) ([]Message, error)
	}

	// Service is the AI chat view-model. The user's message is appended
	// optimistically as Pending before the round trip; replies are applied
	// in send order and a reply that arrives after a newer one has been
	// accepted is discarded, leaving only the sender's delivery state.
	Service struct {
		api      Api
		store    core.KVStore
		notifier core.Notifier
		logger   core.Logger

		mu           sync.Mutex
		uid          string // state namespace: one remembered chat per user
		fileID       string // seeds the first turn only
		chatID       string
		messages     []Message
		seq          uint64
		lastAccepted uint64
	}
)

func NewService(api Api, store core.KVStore, notifier core.Notifier, logger core.Logger) *Service {
	return &Service{api: api, store: store, notifier: notifier, logger: logger}
}

// Mount prepares the panel for a user, optionally bound to a document. If a
// conversation ID was remembered for the user its transcript is fetched; a
// transcript that can no longer be fetched drops the remembered ID and the
// panel starts a fresh conversation.
func (svc *Service) Mount(ctx context.Context, uid, fileID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.uid = uid
	svc.fileID = fileID
	svc.chatID = ""
	svc.messages = nil
	svc.seq = 0
	svc.lastAccepted = 0

	chatID, ok, err := svc.store.Get(uid, chatIDStateKey)
	if err != nil {
		svc.logger.Error("reading saved chat id", err)
		return nil
	}
	if !ok || chatID == "" {
		return nil
	}

	msgs, err := svc.api.ChatMessages(ctx, chatID)
	if err != nil {
		svc.logger.Warn("dropping stale chat", "id", chatID, "error", err)
		if err := svc.store.Delete(uid, chatIDStateKey); err != nil {
			svc.logger.Error("clearing saved chat id", err)
		}
		return nil
	}
	for i := range msgs {
		msgs[i].State = Sent
	}
	svc.chatID = chatID
	svc.messages = msgs
	return nil
}

// Messages returns a snapshot of the transcript in append order.
func (svc *Service) Messages() []Message {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Message, len(svc.messages))
	copy(out, svc.messages)
	return out
}

// Send appends the user's message as Pending and performs the round trip.
// On success the message becomes Sent and the assistant's reply is appended,
// unless a newer send was accepted in the meantime, in which case the reply
// is discarded. On failure the message becomes Failed and stays visible for
// Retry or Discard.
func (svc *Service) Send(ctx context.Context, content string) (Message, error) {
	if content = core.CleanString(content); content == "" {
		return Message{}, nil
	}

	svc.mu.Lock()
	msg := newUserMessage(content)
	svc.messages = append(svc.messages, msg)
	svc.mu.Unlock()

	return svc.deliver(ctx, msg.LocalID)
}

// Retry re-sends a failed message without appending a duplicate.
func (svc *Service) Retry(ctx context.Context, localID string) (Message, error) {
	svc.mu.Lock()
	i := svc.indexOf(localID)
	if i < 0 || svc.messages[i].State != Failed {
		svc.mu.Unlock()
		return Message{}, ErrUnknownMessage
	}
	svc.messages[i].State = Pending
	svc.mu.Unlock()

	return svc.deliver(ctx, localID)
}

// Discard drops a failed message from the transcript.
func (svc *Service) Discard(localID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	i := svc.indexOf(localID)
	if i < 0 || svc.messages[i].State != Failed {
		return ErrUnknownMessage
	}
	svc.messages = append(svc.messages[:i], svc.messages[i+1:]...)
	return nil
}

func (svc *Service) deliver(ctx context.Context, localID string) (Message, error) {
	svc.mu.Lock()
	i := svc.indexOf(localID)
	if i < 0 {
		svc.mu.Unlock()
		return Message{}, ErrUnknownMessage
	}
	svc.seq++
	seq := svc.seq
	req := Request{
		ID:          svc.chatID,
		UserMessage: svc.messages[i].Content,
		Messages:    svc.history(localID),
	}
	if svc.chatID == "" {
		req.FileID = svc.fileID
	}
	svc.mu.Unlock()

	reply, err := svc.api.SendChat(ctx, req)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	i = svc.indexOf(localID)
	if i < 0 {
		return Message{}, ErrUnknownMessage
	}
	if err != nil {
		svc.messages[i].State = Failed
		svc.logger.Error("chat send", err)
		svc.notifier.Error("Message failed to send")
		return svc.messages[i], err
	}
	svc.messages[i].State = Sent
	if seq <= svc.lastAccepted {
		// A newer send was accepted while this reply was in flight; its
		// assistant text is stale and must not enter the transcript.
		return svc.messages[i], nil
	}
	svc.lastAccepted = seq
	svc.messages = append(svc.messages, Message{
		LocalID: uuid.NewString(),
		Role:    RoleAssistant,
		Content: reply.Assistant,
		State:   Sent,
	})
	if svc.chatID == "" && reply.ChatID != "" {
		svc.chatID = reply.ChatID
		if err := svc.store.Set(svc.uid, chatIDStateKey, reply.ChatID); err != nil {
			svc.logger.Error("saving chat id", err)
		}
	}
	return svc.messages[i], nil
}

// history collects the turns preceding localID, skipping failed sends.
// Callers hold svc.mu.
func (svc *Service) history(localID string) []HistoryEntry {
	var entries []HistoryEntry
	for _, m := range svc.messages {
		if m.LocalID == localID {
			break
		}
		if m.State == Failed {
			continue
		}
		entries = append(entries, HistoryEntry{Role: m.Role, Content: m.Content})
	}
	return entries
}

// indexOf locates a message by local ID. Callers hold svc.mu.
func (svc *Service) indexOf(localID string) int {
	for i, m := range svc.messages {
		if m.LocalID == localID {
			return i
		}
	}
	return -1
}
