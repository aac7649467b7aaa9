// Package plain is the line-oriented front end used when stdout is not a
// terminal. Each input line is filter text; each settled filter prints the
// resulting listing.
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/filter"
	"github.com/mattn/go-isatty"
)

// Messages shared with the TUI list page.
const (
	MsgLoading   = "Carregando produtos..."
	MsgNoProduct = "Nenhum produto encontrado."
)

// NoMatchMessage is shown when the committed text filters everything out.
func NoMatchMessage(text string) string {
	return fmt.Sprintf("Nenhum produto encontrado com o código %q", strings.TrimSpace(text))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Render writes one snapshot.
func Render(w io.Writer, snap filter.Snapshot) error {
	var b strings.Builder

	switch {
	case !snap.Loaded:
		b.WriteString(MsgLoading + "\n")
	case snap.NoProductsAtAll():
		b.WriteString(MsgNoProduct + "\n")
	case snap.NoMatchForFilter():
		b.WriteString(NoMatchMessage(snap.CommittedText) + "\n")
	default:
		if text := strings.TrimSpace(snap.CommittedText); text != "" {
			fmt.Fprintf(&b, "Código %s: %d de %d produto(s)\n", text, len(snap.Displayed), snap.Total)
		} else {
			fmt.Fprintf(&b, "%d produto(s)\n", snap.Total)
		}
		for _, p := range snap.Displayed {
			b.WriteString(Line(p) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Line formats one product as "(id) name · category · price".
func Line(p catalog.Product) string {
	return fmt.Sprintf("(%d) %s · %s · %s", p.ID, p.Name, p.Category, p.FormattedPrice())
}

// Runner feeds lines from in into a Debouncer and prints every publication.
type Runner struct {
	in     io.Reader
	out    io.Writer
	delay  time.Duration
	clock  filter.Clock
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces the real clock, for tests.
func WithClock(c filter.Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner reading filter text from in and writing to out.
func NewRunner(in io.Reader, out io.Writer, delay time.Duration, opts ...Option) *Runner {
	r := &Runner{
		in:     in,
		out:    out,
		delay:  delay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run prints the initial listing, then applies every input line as filter
// text. At end of input it waits for the last settle so the final state is
// printed, then returns. Cancelling ctx returns at once.
func (r *Runner) Run(ctx context.Context, products []catalog.Product) error {
	settled := make(chan struct{}, 1)
	var writeErr error

	ctrl := filter.New(filter.WithDelay(r.delay), filter.WithPublisher(func(s filter.Snapshot) {
		if err := Render(r.out, s); err != nil && writeErr == nil {
			writeErr = err
		}
		if s.State == filter.Idle {
			select {
			case settled <- struct{}{}:
			default:
			}
		}
	}))
	deb := filter.NewDebouncer(ctrl, r.clock)
	defer deb.Close()

	deb.SetProducts(products)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := r.drain(ctx, deb, settled); err != nil {
					return err
				}
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				// Snapshot takes the debouncer lock, ordering this read after the last publish.
				deb.Snapshot()
				if writeErr != nil {
					return fmt.Errorf("failed to write output: %w", writeErr)
				}
				return nil
			}
			r.logger.Debug("filter text", "text", line)
			deb.SetFilterText(line)
		}
	}
}

func (r *Runner) drain(ctx context.Context, deb *filter.Debouncer, settled <-chan struct{}) error {
	for deb.Snapshot().State == filter.Pending {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-settled:
		}
	}
	return nil
}
