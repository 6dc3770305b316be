// File: services/chat/interface.go
package chat

import (
	"context"
	"time"
)

// Message is one exchange in a chat session.
type Message struct {
	Sender string    `json:"sender"` // "user" or "bot"
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Context is the recent conversation for one widget session.
type Context struct {
	Messages []Message `json:"messages"`
}

// ContextStore keeps per-session conversation context with a TTL.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) (*Context, error)
	Set(ctx context.Context, sessionID string, chatCtx *Context) error
	Clear(ctx context.Context, sessionID string) error
}

// Service answers chatbot widget messages.
type Service interface {
	Respond(ctx context.Context, sessionID, message string) (string, error)
}
