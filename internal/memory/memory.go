package memory

import (
	"context"
	"sync"
)

// Message is one chat turn kept in conversation memory.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// History stores per-conversation chat turns so the assistant can check
// earlier messages for the booking number and customer name.
type History interface {
	Load(ctx context.Context, conversationID string) ([]Message, error)
	Append(ctx context.Context, conversationID string, msgs ...Message) error
}

// InProcessHistory keeps conversations in a map. Used when redis is not
// configured and in tests.
type InProcessHistory struct {
	mu       sync.Mutex
	window   int
	messages map[string][]Message
}

func NewInProcessHistory(window int) *InProcessHistory {
	return &InProcessHistory{window: window, messages: make(map[string][]Message)}
}

func (h *InProcessHistory) Load(ctx context.Context, conversationID string) ([]Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.messages[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (h *InProcessHistory) Append(ctx context.Context, conversationID string, msgs ...Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[conversationID] = trim(append(h.messages[conversationID], msgs...), h.window)
	return nil
}

func trim(msgs []Message, window int) []Message {
	if window > 0 && len(msgs) > window {
		return msgs[len(msgs)-window:]
	}
	return msgs
}

var _ History = (*InProcessHistory)(nil)
