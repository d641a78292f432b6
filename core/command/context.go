package command

import (
	"context"
	"time"
)

type invocationIDCtx struct{}

// WithInvocationID attaches an invocation ID to the context for tracing and correlation.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDCtx{}, id)
}

// InvocationID extracts the invocation ID from the context.
// Returns empty string if not present.
func InvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(invocationIDCtx{}).(string); ok {
		return id
	}
	return ""
}

type commandNameCtx struct{}

// WithCommandName attaches a command name to the context for logging and metrics.
func WithCommandName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameCtx{}, name)
}

// CommandName extracts the command name from the context.
// Returns empty string if not present.
func CommandName(ctx context.Context) string {
	if name, ok := ctx.Value(commandNameCtx{}).(string); ok {
		return name
	}
	return ""
}

type invocationTimeCtx struct{}

// WithInvocationTime attaches the invocation start time to the context for latency tracking.
func WithInvocationTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, invocationTimeCtx{}, t)
}

// InvocationTime extracts the invocation start time from the context.
// Returns zero time if not present.
func InvocationTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(invocationTimeCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}
