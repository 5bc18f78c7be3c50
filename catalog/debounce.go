package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/catalogo"
)

// DefaultDebounce is the quiescence window used when Debouncer.Wait is zero.
const DefaultDebounce = 300 * time.Millisecond

// DeliverFunc receives the outcome of a debounced resolution.
type DeliverFunc func(c catalogo.Criteria, page *catalogo.Page, err error)

// Debouncer coalesces rapid criteria changes into a single resolution.
//
// Every Submit restarts the quiescence timer, so only the last criteria of
// a burst is resolved. Each resolution carries a generation number and its
// result is dropped if a newer Submit happened after it was scheduled.
// Deliver is never called concurrently with itself and must not call Stop.
// Submissions after Stop are ignored.
type Debouncer struct {
	Engine  catalogo.QueryEngine
	Deliver DeliverFunc
	Wait    time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	stopped bool

	deliverMu sync.Mutex
	inflight  sync.WaitGroup
}

// Submit schedules c to be resolved once no other Submit arrives within
// the quiescence window.
func (d *Debouncer) Submit(ctx context.Context, c catalogo.Criteria) {
	wait := d.Wait
	if wait <= 0 {
		wait = DefaultDebounce
	}
	d.schedule(ctx, c, wait)
}

// SubmitNow resolves c without waiting, superseding any pending or
// in-flight resolution.
func (d *Debouncer) SubmitNow(ctx context.Context, c catalogo.Criteria) {
	d.schedule(ctx, c, 0)
}

// Stop cancels a pending resolution, discards the result of an in-flight
// one and waits for it to finish. The Debouncer cannot be reused.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.gen++
	d.cancelLocked()
	d.mu.Unlock()

	d.inflight.Wait()
}

func (d *Debouncer) schedule(ctx context.Context, c catalogo.Criteria, wait time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// inflight must not grow once Stop may be waiting on it.
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	d.cancelLocked()

	d.inflight.Add(1)
	d.timer = time.AfterFunc(wait, func() {
		defer d.inflight.Done()
		d.fire(ctx, gen, c)
	})
}

// cancelLocked stops the pending timer. A timer that has not fired will
// never run its function, so its in-flight slot is released here.
func (d *Debouncer) cancelLocked() {
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.timer = nil
}

func (d *Debouncer) fire(ctx context.Context, gen uint64, c catalogo.Criteria) {
	if !d.current(gen) {
		return
	}

	page, err := d.Engine.Resolve(ctx, c)

	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	if !d.current(gen) {
		return
	}
	d.Deliver(c, page, err)
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}
