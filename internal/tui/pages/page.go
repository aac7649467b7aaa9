// Package pages holds the screens the router switches between.
package pages

import (
	"log/slog"
	"time"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Page is a routed screen. Pages are sub-components of the root model: they
// return commands instead of models and render to a plain string.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// KeyBindings lists the page keys for the help line.
	KeyBindings() []key.Binding
}

// Drafts keeps product form values across runs.
type Drafts interface {
	Load() map[string]string
	Save(values map[string]string) error
	Discard() error
}

// Env is what pages need from the outside world.
type Env struct {
	API         api.Products
	Drafts      Drafts // optional
	FilterDelay time.Duration
	Logger      *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// StatusMsg asks the root model to flash a message in the status bar.
type StatusMsg struct {
	Text  string
	Error bool
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, Error: isErr} }
}
