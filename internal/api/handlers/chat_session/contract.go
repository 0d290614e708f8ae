package chat_session

import (
	"context"

	"github.com/lerthy/Appointlify-Amazon-sub002/internal/chatsession"
)

type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*chatsession.State, error)
	Put(ctx context.Context, state *chatsession.State) error
	Delete(ctx context.Context, sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
