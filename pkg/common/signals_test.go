package common

import (
	"testing"
	"time"
)

func TestSetupGracefulShutdown(t *testing.T) {
	ctx, cancel := SetupGracefulShutdown()
	if ctx == nil {
		t.Fatal("SetupGracefulShutdown() returned nil context")
	}

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before any signal")
	default:
	}

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after cancel()")
	}
}
