// Package filter turns bursty filter-box input into a single settled filter
// application over a product list.
//
// A Controller owns the raw text typed by the user, the committed text that is
// actually applied, and the displayed subset derived from the full list. Every
// keystroke goes through SetFilterText, which records the text at once and arms a
// settle that fires after a fixed delay. Arming a settle supersedes the previous
// one: only the ticket returned by the latest SetFilterText call is honored by
// Settle. List updates arrive through SetProducts and are applied immediately
// against the committed text.
//
// Controller does not own a timer. Callers schedule the settle themselves, which
// lets a Bubble Tea model use tea.Tick:
//
//	ticket := ctrl.SetFilterText(value)
//	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg { return settleMsg{ticket} })
//
// Debouncer does the scheduling on a Clock for callers without an event loop of
// their own, stopping the superseded timer before arming the next one.
//
// Matching is exact: a product is shown when the decimal form of its ID equals the
// trimmed filter text. Empty (or whitespace-only) text shows the full list.
package filter
