package services

import (
	"context"
	"sync"
	"time"
)

// DefaultSuggestDelay is how long typing must pause before suggestions are
// looked up.
const DefaultSuggestDelay = 800 * time.Millisecond

// Debouncer runs only the latest submitted job, after a quiet period. A new
// submission cancels the context of the previous job, whether it is still
// waiting or already running.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Submit schedules job. The job must check ctx before publishing anything.
func (d *Debouncer) Submit(parent context.Context, job func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(parent)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.mu.Unlock()

	go func() {
		t := time.NewTimer(d.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		job(ctx)
	}()
}

// Stop cancels whatever is pending.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
