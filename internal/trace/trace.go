// Package trace carries a per-message trace ID in the context so every log
// line for one inbound chat message can be grepped together.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

type ctxKey struct{}

// New returns a short random trace ID.
func New() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "0"
	}
	return hex.EncodeToString(b)
}

// With attaches a trace ID to the context.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the trace ID attached to ctx, or "" if none.
func ID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Logf logs one line prefixed with trace=<id>.
func Logf(ctx context.Context, format string, args ...interface{}) {
	id := ID(ctx)
	if id == "" {
		id = "-"
	}
	log.Printf("trace=%s | %s", id, fmt.Sprintf(format, args...))
}
