package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a cycle.
type Next struct {
	err      error
	quit     bool
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}
	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Continue schedules the next cycle after interval has passed.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. err may be nil for a normal stop.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is one cycle of the loop.
//
// It receives the value the previous cycle returned, and returns
// the value for the next cycle together with Continue or Break.
type Task[T any] func(context.Context, T) (T, Next)

type config struct {
	timeout time.Duration
}

type Option func(*config)

// WithTimeout limits each cycle to d.
//
// The context passed to the task is cancelled after d.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// Start runs task repeatedly until the task breaks or ctx is done.
//
// The first cycle is called as task(ctx, init). Each later cycle receives
// the value the previous one returned. When ctx is cancelled, Start returns
// the last value and ctx.Err().
func Start[T any](ctx context.Context, init T, task Task[T], options ...Option) (T, error) {
	conf := config{}
	for _, opt := range options {
		opt(&conf)
	}

	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		v, n := runCycle(ctx, conf, value, task)

		if n.err != nil {
			return v, n.err
		}
		if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			// shutdown takes priority over the pending timer.
			if !timer.Stop() {
				<-timer.C
			}
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

func runCycle[T any](ctx context.Context, conf config, value T, task Task[T]) (T, Next) {
	if conf.timeout <= 0 {
		return task(ctx, value)
	}
	cctx, cancel := context.WithTimeout(ctx, conf.timeout)
	defer cancel()
	return task(cctx, value)
}
