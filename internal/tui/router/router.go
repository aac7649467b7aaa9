// Package router resolves in-app paths such as "/editar-produto/7" to named
// routes and keeps the navigation history of the TUI.
package router

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Fallback is the catch-all pattern.
const Fallback = "*"

// Params holds the values of ":name" and "{name}" segments.
type Params map[string]string

// Route is one entry of the routing table.
type Route struct {
	Name    string
	Pattern string
}

// Match is a resolved path.
type Match struct {
	Route  Route
	Path   string
	Params Params
}

// Router matches paths against routes in registration order. A Fallback route
// matches any path and should be registered last.
type Router struct {
	routes []Route
}

// New creates a router for the given routes.
func New(routes ...Route) *Router {
	return &Router{routes: routes}
}

// Resolve finds the first route matching path.
func (r *Router) Resolve(path string) (Match, bool) {
	path = Clean(path)
	for _, route := range r.routes {
		if params, ok := match(route.Pattern, path); ok {
			return Match{Route: route, Path: path, Params: params}, true
		}
	}
	return Match{Path: path}, false
}

// Clean normalizes a path: leading slash, no trailing slash, no empty segments.
func Clean(path string) string {
	parts := segments(path)
	return "/" + strings.Join(parts, "/")
}

func segments(path string) []string {
	raw := strings.Split(path, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func match(pattern, path string) (Params, bool) {
	if pattern == Fallback {
		return Params{}, true
	}

	want := segments(pattern)
	got := segments(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := Params{}
	for i, seg := range want {
		if name, ok := paramName(seg); ok {
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func paramName(seg string) (string, bool) {
	switch {
	case strings.HasPrefix(seg, ":") && len(seg) > 1:
		return seg[1:], true
	case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2:
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// History is a stack of visited paths.
type History struct {
	entries []string
}

// Push records a visit.
func (h *History) Push(path string) {
	h.entries = append(h.entries, path)
}

// Replace overwrites the current entry, or pushes when empty.
func (h *History) Replace(path string) {
	if len(h.entries) == 0 {
		h.Push(path)
		return
	}
	h.entries[len(h.entries)-1] = path
}

// Current returns the path on top of the stack.
func (h *History) Current() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Back pops the current entry and returns the previous one. It reports false,
// leaving the history untouched, when there is nowhere to go back to.
func (h *History) Back() (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// NavigateMsg asks the root model to open a path.
type NavigateMsg struct {
	Path    string
	Replace bool
}

// BackMsg asks the root model to return to the previous path.
type BackMsg struct{}

// ReloadMsg asks the root model to load the current path again.
type ReloadMsg struct{}

// Navigate returns a command that opens path on top of the history.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Redirect returns a command that opens path in place of the current entry.
func Redirect(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Replace: true} }
}

// Back returns a command that goes back one entry.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Reload returns a command that reloads the current path.
func Reload() tea.Cmd {
	return func() tea.Msg { return ReloadMsg{} }
}
