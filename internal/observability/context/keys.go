// Package context carries request-scoped identifiers that the logger and the
// ledger services attach to their output.
package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "railpos_request_id"
	actorTypeKey contextKey = "railpos_actor_type"
	actorIDKey   contextKey = "railpos_actor_id"
	terminalKey  contextKey = "railpos_terminal"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithActor records who is operating the till (cashier, admin, system).
func WithActor(ctx context.Context, actorType, actorID string) context.Context {
	if ctx == nil {
		return ctx
	}
	if actorType != "" {
		ctx = context.WithValue(ctx, actorTypeKey, actorType)
	}
	if actorID != "" {
		ctx = context.WithValue(ctx, actorIDKey, actorID)
	}
	return ctx
}

func ActorFromContext(ctx context.Context) (string, string) {
	if ctx == nil {
		return "", ""
	}
	actorType, _ := ctx.Value(actorTypeKey).(string)
	actorID, _ := ctx.Value(actorIDKey).(string)
	return actorType, actorID
}

// WithTerminal records the point-of-sale terminal a request came from.
func WithTerminal(ctx context.Context, terminal string) context.Context {
	if ctx == nil || terminal == "" {
		return ctx
	}
	return context.WithValue(ctx, terminalKey, terminal)
}

func TerminalFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(terminalKey).(string)
	return value
}
