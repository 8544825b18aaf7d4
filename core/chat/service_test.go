package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logsvc "github.com/learnx/learnx/services/logger"
	notifsvc "github.com/learnx/learnx/services/notifier"
	statestore "github.com/learnx/learnx/storage/state"
)

type fakeChatApi struct {
	mu    sync.Mutex
	reqs  []Request
	calls int
	gates map[int]chan struct{} // call number (1-based) -> gate to wait on
	errs  map[int]error

	transcript    map[string][]Message
	transcriptErr error
}

func newFakeChatApi() *fakeChatApi {
	return &fakeChatApi{
		gates:      make(map[int]chan struct{}),
		errs:       make(map[int]error),
		transcript: make(map[string][]Message),
	}
}

func (f *fakeChatApi) SendChat(_ context.Context, req Request) (Reply, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.reqs = append(f.reqs, req)
	gate := f.gates[n]
	err := f.errs[n]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return Reply{}, err
	}
	return Reply{Assistant: fmt.Sprintf("reply-%d", n), ChatID: "chat-1"}, nil
}

func (f *fakeChatApi) ChatMessages(_ context.Context, chatID string) ([]Message, error) {
	if f.transcriptErr != nil {
		return nil, f.transcriptErr
	}
	msgs, ok := f.transcript[chatID]
	if !ok {
		return nil, errors.New("not found")
	}
	return msgs, nil
}

func setup(t *testing.T, api Api) (*Service, *statestore.InMemStore) {
	t.Helper()
	store := statestore.NewInMemStore()
	svc := NewService(api, store, notifsvc.NewSilentService(), logsvc.NewNopLogger())
	require.NoError(t, svc.Mount(context.Background(), "uid-1", "file-1"))
	return svc, store
}

func roles(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}

func TestService_SendRoundTrip(t *testing.T) {
	api := newFakeChatApi()
	svc, store := setup(t, api)

	msg, err := svc.Send(context.Background(), "What is a balance sheet?")
	require.NoError(t, err)
	assert.Equal(t, Sent, msg.State)

	msgs := svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{RoleUser, RoleAssistant}, roles(msgs))
	assert.Equal(t, "reply-1", msgs[1].Content)

	// the conversation id is remembered per user
	id, ok, err := store.Get("uid-1", "chatId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "chat-1", id)

	// the seeding file travels only on the conversation's first turn
	require.Len(t, api.reqs, 1)
	assert.Equal(t, "file-1", api.reqs[0].FileID)
	assert.Equal(t, "", api.reqs[0].ID)

	_, err = svc.Send(context.Background(), "And a cash flow statement?")
	require.NoError(t, err)
	require.Len(t, api.reqs, 2)
	assert.Equal(t, "", api.reqs[1].FileID)
	assert.Equal(t, "chat-1", api.reqs[1].ID)

	// history carries the prior turns in order
	require.Len(t, api.reqs[1].Messages, 2)
	assert.Equal(t, RoleUser, api.reqs[1].Messages[0].Role)
	assert.Equal(t, RoleAssistant, api.reqs[1].Messages[1].Role)
}

func TestService_SendFailureMarksFailed(t *testing.T) {
	api := newFakeChatApi()
	api.errs[1] = errors.New("boom")
	svc, _ := setup(t, api)

	msg, err := svc.Send(context.Background(), "hello?")
	assert.Error(t, err)
	assert.Equal(t, Failed, msg.State)

	msgs := svc.Messages()
	require.Len(t, msgs, 1, "no assistant reply after a failed send")
	assert.Equal(t, Failed, msgs[0].State)
}

func TestService_RetryFailedSend(t *testing.T) {
	api := newFakeChatApi()
	api.errs[1] = errors.New("boom")
	svc, _ := setup(t, api)

	msg, err := svc.Send(context.Background(), "hello?")
	require.Error(t, err)

	retried, err := svc.Retry(context.Background(), msg.LocalID)
	require.NoError(t, err)
	assert.Equal(t, Sent, retried.State)

	msgs := svc.Messages()
	require.Len(t, msgs, 2, "retry must not duplicate the user message")
	assert.Equal(t, []string{RoleUser, RoleAssistant}, roles(msgs))

	// a failed turn is not part of the history it sends
	require.Len(t, api.reqs, 2)
	assert.Empty(t, api.reqs[1].Messages)
}

func TestService_DiscardFailedSend(t *testing.T) {
	api := newFakeChatApi()
	api.errs[1] = errors.New("boom")
	svc, _ := setup(t, api)

	msg, err := svc.Send(context.Background(), "hello?")
	require.Error(t, err)

	require.NoError(t, svc.Discard(msg.LocalID))
	assert.Empty(t, svc.Messages())

	assert.Equal(t, ErrUnknownMessage, svc.Discard(msg.LocalID))
}

func TestService_DiscardOnlyFailed(t *testing.T) {
	api := newFakeChatApi()
	svc, _ := setup(t, api)

	msg, err := svc.Send(context.Background(), "hello?")
	require.NoError(t, err)
	assert.Equal(t, ErrUnknownMessage, svc.Discard(msg.LocalID), "sent messages cannot be discarded")
}

func TestService_StaleReplyDiscarded(t *testing.T) {
	api := newFakeChatApi()
	gate := make(chan struct{})
	api.gates[1] = gate
	svc, _ := setup(t, api)

	done := make(chan Message, 1)
	go func() {
		m, _ := svc.Send(context.Background(), "first")
		done <- m
	}()

	// wait for the first send to be in flight
	for {
		api.mu.Lock()
		calls := api.calls
		api.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := svc.Send(context.Background(), "second")
	require.NoError(t, err)

	// first reply arrives after the second was accepted: it is stale
	close(gate)
	first := <-done
	assert.Equal(t, Sent, first.State, "the sender still sees its message delivered")

	msgs := svc.Messages()
	var assistant []string
	for _, m := range msgs {
		if m.Role == RoleAssistant {
			assistant = append(assistant, m.Content)
		}
	}
	assert.Equal(t, []string{"reply-2"}, assistant, "only the newest accepted reply renders")
}

func TestService_MountRestoresTranscript(t *testing.T) {
	api := newFakeChatApi()
	api.transcript["chat-9"] = []Message{
		{ID: "m1", Role: RoleUser, Content: "hi"},
		{ID: "m2", Role: RoleAssistant, Content: "hello"},
	}
	store := statestore.NewInMemStore()
	require.NoError(t, store.Set("uid-1", "chatId", "chat-9"))

	svc := NewService(api, store, notifsvc.NewSilentService(), logsvc.NewNopLogger())
	require.NoError(t, svc.Mount(context.Background(), "uid-1", ""))

	msgs := svc.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Sent, msgs[0].State)
	assert.Equal(t, Sent, msgs[1].State)
}

func TestService_MountDropsStaleChatID(t *testing.T) {
	api := newFakeChatApi()
	api.transcriptErr = errors.New("gone")
	store := statestore.NewInMemStore()
	require.NoError(t, store.Set("uid-1", "chatId", "chat-gone"))

	svc := NewService(api, store, notifsvc.NewSilentService(), logsvc.NewNopLogger())
	require.NoError(t, svc.Mount(context.Background(), "uid-1", ""))
	assert.Empty(t, svc.Messages())

	_, ok, err := store.Get("uid-1", "chatId")
	require.NoError(t, err)
	assert.False(t, ok, "unfetchable conversation id must be forgotten")
}

func TestService_SendBlankIsNoop(t *testing.T) {
	api := newFakeChatApi()
	svc, _ := setup(t, api)

	_, err := svc.Send(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, svc.Messages())
	assert.Zero(t, api.calls)
}
