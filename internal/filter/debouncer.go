package filter

import (
	"sync"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules on the runtime timers.
func RealClock() Clock {
	return realClock{}
}

// Debouncer drives a Controller with timers from a Clock. Calls and timer
// callbacks are serialized, so the controller only ever sees one caller. The
// publisher runs with the debouncer locked and must not call back into it.
type Debouncer struct {
	mu    sync.Mutex
	ctrl  *Controller
	clock Clock
	timer Timer
}

// NewDebouncer wraps ctrl. A nil clock means RealClock.
func NewDebouncer(ctrl *Controller, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{ctrl: ctrl, clock: clock}
}

// SetFilterText stops the outstanding timer, records text and arms a new timer.
func (d *Debouncer) SetFilterText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	ticket := d.ctrl.SetFilterText(text)
	d.timer = d.clock.AfterFunc(ticket.Delay, func() {
		d.settle(ticket)
	})
}

func (d *Debouncer) settle(ticket Ticket) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctrl.Settle(ticket) {
		d.timer = nil
	}
}

// SetProducts forwards a list update to the controller.
func (d *Debouncer) SetProducts(products []catalog.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctrl.SetProducts(products)
}

// Snapshot returns the controller's current view.
func (d *Debouncer) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl.Snapshot()
}

// Close tears the debouncer down when its input ends. The outstanding timer is
// stopped and its settle dropped, so the controller reports Idle. The raw text
// stays recorded.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.ctrl.discard()
}
