package filter

import (
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
)

// DefaultDelay is the settle delay used when none is configured.
const DefaultDelay = 500 * time.Millisecond

// State tells whether a settle is outstanding.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Ticket identifies one armed settle. Only the most recent ticket of the
// Controller that issued it can be settled.
type Ticket struct {
	owner *Controller
	gen   uint64
	Delay time.Duration
}

// Snapshot is what the rendering surface needs to draw the list.
type Snapshot struct {
	RawText       string
	CommittedText string
	Displayed     []catalog.Product
	Total         int
	Loaded        bool
	State         State
}

// NoProductsAtAll reports a delivered list that is empty.
func (s Snapshot) NoProductsAtAll() bool {
	return s.Loaded && s.Total == 0
}

// NoMatchForFilter reports a non-empty list that the committed text filters down
// to nothing.
func (s Snapshot) NoMatchForFilter() bool {
	return s.Total > 0 && strings.TrimSpace(s.CommittedText) != "" && len(s.Displayed) == 0
}

// Controller holds the filter state of one product listing. It is not safe for
// concurrent use; drive it from a single goroutine or through a Debouncer.
type Controller struct {
	delay   time.Duration
	publish func(Snapshot)

	products []catalog.Product
	loaded   bool

	raw       string
	committed string
	displayed []catalog.Product

	seq     uint64
	pending uint64 // 0 when idle
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the settle delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithPublisher registers the callback that receives every recomputed snapshot.
func WithPublisher(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.publish = fn
	}
}

// New creates a controller with no list delivered yet and empty filter text.
func New(opts ...Option) *Controller {
	c := &Controller{delay: DefaultDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Delay returns the settle delay.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// SetFilterText records the latest input and arms a new settle, superseding any
// settle armed before.
func (c *Controller) SetFilterText(text string) Ticket {
	c.raw = text
	c.seq++
	c.pending = c.seq
	return Ticket{owner: c, gen: c.seq, Delay: c.delay}
}

// Settle applies the current raw text if t is the outstanding ticket. Tickets
// issued by another controller are ignored. It reports whether the displayed
// subset was recomputed and published.
func (c *Controller) Settle(t Ticket) bool {
	if t.owner != c || c.pending == 0 || t.gen != c.pending {
		return false
	}
	c.pending = 0
	c.committed = c.raw
	c.recompute()
	return true
}

// discard drops the outstanding settle without applying it. The raw text stays
// recorded.
func (c *Controller) discard() {
	c.pending = 0
}

// SetProducts replaces the full list and recomputes the displayed subset with the
// committed text right away. A pending settle is left untouched.
func (c *Controller) SetProducts(products []catalog.Product) {
	c.products = append([]catalog.Product(nil), products...)
	c.loaded = true
	c.recompute()
}

// State returns Pending while a settle is outstanding.
func (c *Controller) State() State {
	if c.pending != 0 {
		return Pending
	}
	return Idle
}

// Snapshot returns the current view of the controller.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		RawText:       c.raw,
		CommittedText: c.committed,
		Displayed:     append([]catalog.Product(nil), c.displayed...),
		Total:         len(c.products),
		Loaded:        c.loaded,
		State:         c.State(),
	}
}

func (c *Controller) recompute() {
	c.displayed = Match(c.products, c.committed)
	if c.publish != nil {
		c.publish(c.Snapshot())
	}
}
