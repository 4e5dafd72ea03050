package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown returns a context that is cancelled on SIGINT or
// SIGTERM. The cancel function releases the signal registration and should be
// deferred by the caller. All watch and listen loops in the tools are bounded
// by this context.
func SetupGracefulShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
