package api

import (
	"context"
	"time"

	"github.com/linesmerrill/fiscal-cidadao/session"
)

// QueryTimeout is the default timeout for catalog and evidence lookups
const QueryTimeout = 5 * time.Second

type contextKey int

const (
	sessionKey contextKey = iota
	requestIDKey
)

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

// WithSession stores the session of the request in ctx
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored by SessionMiddleware
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok && s != nil
}

// RequestIDFromContext returns the id assigned by MetricsMiddleware
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
