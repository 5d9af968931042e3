package osutil

import (
	"context"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until the process receives
// SIGINT or SIGTERM. An interrupted harvest leaves already-appended rows
// on disk; there is no rollback to undo.
func SignalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}
