package storefront

import (
	"context"
	"log/slog"
)

// Notifier shows short-lived messages to the user after a mutation.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n SlogNotifier) Success(ctx context.Context, msg string) {
	n.logger().InfoContext(ctx, msg, "notification", "success")
}

func (n SlogNotifier) Error(ctx context.Context, msg string) {
	n.logger().WarnContext(ctx, msg, "notification", "error")
}

type Nop struct{}

func (Nop) Success(context.Context, string) {}
func (Nop) Error(context.Context, string)   {}
