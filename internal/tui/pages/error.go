package pages

import (
	"errors"
	"strings"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/billie-coop/vitrine/internal/tui/router"
	"github.com/billie-coop/vitrine/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Messages of the error page.
const (
	ErrTitle       = "Ops! Algo deu errado"
	ErrNotFound    = "Página não encontrada"
	ErrUnexpected  = "Ocorreu um erro inesperado"
	ErrNoSuchRoute = "A página que você procura não existe."
)

// ErrorPage replaces a page whose loader failed, or an unknown path.
type ErrorPage struct {
	err      error
	path     string
	notFound bool
	keys     struct {
		Home  key.Binding
		Retry key.Binding
	}
}

// NewErrorPage builds the page for a loader error on path.
func NewErrorPage(path string, err error) *ErrorPage {
	p := &ErrorPage{
		err:      err,
		path:     path,
		notFound: errors.Is(err, api.ErrNotFound),
	}
	p.keys.Home = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "voltar ao início"),
	)
	p.keys.Retry = key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recarregar página"),
	)
	return p
}

// NewNotFoundPage builds the page for a path no route matches.
func NewNotFoundPage(path string) *ErrorPage {
	p := NewErrorPage(path, nil)
	p.notFound = true
	return p
}

// NotFound reports whether this is a 404 page.
func (p *ErrorPage) NotFound() bool {
	return p.notFound
}

func (p *ErrorPage) Init() tea.Cmd { return nil }

func (p *ErrorPage) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Home):
			return router.Navigate("/")
		case key.Matches(msg, p.keys.Retry):
			return router.Reload()
		}
	}
	return nil
}

func (p *ErrorPage) SetSize(width, height int) {}

func (p *ErrorPage) KeyBindings() []key.Binding {
	return []key.Binding{p.keys.Home, p.keys.Retry}
}

// Message is the headline below the title.
func (p *ErrorPage) Message() string {
	if p.notFound {
		return ErrNotFound
	}
	return ErrUnexpected
}

func (p *ErrorPage) View() string {
	s := styles.CurrentTheme().S()

	var b strings.Builder
	b.WriteString(s.Warning.Render(styles.WarningIcon) + " " + s.Title.Render(ErrTitle))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render(p.Message()))
	b.WriteString("\n")

	switch {
	case p.err != nil:
		b.WriteString(s.Muted.Render("Mensagem: " + p.err.Error()))
		b.WriteString("\n")
	case p.notFound:
		b.WriteString(s.Muted.Render(ErrNoSuchRoute))
		b.WriteString("\n")
	}
	b.WriteString(s.Subtle.Render("Caminho: " + p.path))
	b.WriteString("\n\n")
	b.WriteString(s.ButtonFocused.Render(styles.HomeIcon + " Voltar ao início"))
	b.WriteString("  ")
	b.WriteString(s.Button.Render(styles.RetryIcon + " Recarregar página (r)"))
	return b.String()
}
