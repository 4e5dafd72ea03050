package common

import (
	"context"
	"fmt"
	"time"
)

// ParseInterval parses a duration string and rejects non-positive values.
func ParseInterval(interval string) (time.Duration, error) {
	dur, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("invalid interval: %w", err)
	}
	if dur <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return dur, nil
}

// RunOnce executes the task once and returns its error.
func RunOnce(task func() error) error {
	return task()
}

// StartWatchLoop runs the task immediately and then once per interval until
// the context is cancelled. Tasks run synchronously on the calling goroutine
// so there is never more than one outstanding operation; the first task error
// stops the loop and is returned.
func StartWatchLoop(ctx context.Context, interval string, task func() error) error {
	dur, err := ParseInterval(interval)
	if err != nil {
		return err
	}

	if err := task(); err != nil {
		return err
	}

	ticker := time.NewTicker(dur)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := task(); err != nil {
				return err
			}
		}
	}
}

// RunOnceOrWatch executes the task once, or repeatedly at the given interval
// when watch is set.
func RunOnceOrWatch(ctx context.Context, watch bool, interval string, task func() error) error {
	if !watch {
		return RunOnce(task)
	}
	return StartWatchLoop(ctx, interval, task)
}
