// Package timer prints an in-place progress line while waiting out a delay.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// ErrInvalidDuration is returned when the total or the interval is not
// positive.
var ErrInvalidDuration = errors.New("total and interval must be positive")

// Progress announces the delay, rewrites a "waiting ... N%" line on every
// tick of interval until total has elapsed, then prints "done".
// It returns ctx.Err() if ctx is cancelled first.
func Progress(ctx context.Context, w io.Writer, total, interval time.Duration) error {
	if total <= 0 || interval <= 0 {
		return ErrInvalidDuration
	}

	fmt.Fprintf(w, "setting a %s delay\n", describe(total))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var elapsed time.Duration
	for elapsed < total {
		select {
		case <-ctx.Done():
			fmt.Fprint(w, "\r"+ansi.EraseEntireLine)
			return ctx.Err()
		case <-ticker.C:
			elapsed += interval
			if elapsed > total {
				elapsed = total
			}
			fmt.Fprintf(w, "\r%swaiting ... %d%% ", ansi.EraseEntireLine, Percent(elapsed, total))
		}
	}

	fmt.Fprint(w, "\r"+ansi.EraseEntireLine+"done\n")
	return nil
}

// Percent is floor(elapsed/total*100), clamped to [0, 100].
func Percent(elapsed, total time.Duration) int {
	if total <= 0 || elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}
	return int(elapsed * 100 / total)
}

func describe(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d second", int(d/time.Second))
	}
	return d.String()
}
