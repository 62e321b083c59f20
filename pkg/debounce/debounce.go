package debounce

import (
	"sync"
	"time"
)

// Debouncer defers a function until its trigger has been quiet for the
// configured window. A new trigger cancels any still-pending run, so the
// function fires once per burst, after quiescence.
type Debouncer struct {
	quiescence time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New builds a Debouncer with the given quiescence window.
func New(quiescence time.Duration) *Debouncer {
	if quiescence <= 0 {
		quiescence = 500 * time.Millisecond
	}
	return &Debouncer{quiescence: quiescence}
}

// Trigger schedules fn to run after the quiescence window, cancelling any
// previously scheduled run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiescence, fn)
}

// Stop cancels a pending run, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
