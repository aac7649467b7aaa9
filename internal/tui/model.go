// Package tui is the interactive front end: a header with navigation, the routed
// page, a help line and a status bar.
package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/billie-coop/vitrine/internal/tui/components/dialog"
	"github.com/billie-coop/vitrine/internal/tui/components/status"
	"github.com/billie-coop/vitrine/internal/tui/pages"
	"github.com/billie-coop/vitrine/internal/tui/router"
	"github.com/billie-coop/vitrine/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Rows taken by the header and its spacer, the help line and the status bar.
const chromeHeight = 4

// Options configures the TUI.
type Options struct {
	API         api.Products
	Drafts      pages.Drafts
	BaseURL     string
	FilterDelay time.Duration
	Logger      *slog.Logger
	StartPath   string
	Theme       string

	// SaveTheme persists a theme picked in the theme dialog. Optional.
	SaveTheme func(name string) error
}

type globalKeys struct {
	Back  key.Binding
	Theme key.Binding
	Quit  key.Binding
}

// Model is the root Bubble Tea model.
type Model struct {
	env     pages.Env
	router  *router.Router
	history router.History
	match   router.Match
	page    pages.Page

	loading bool
	loadSeq uint64

	spinner   spinner.Model
	statusBar *status.Component
	dialogs   *dialog.Manager
	help      help.Model
	keys      globalKeys

	baseURL   string
	startPath string
	saveTheme func(string) error
	width     int
	height    int
}

// New creates the root model.
func New(opts Options) *Model {
	styles.SetDefaultManager(styles.NewManager(opts.Theme))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.StartPath
	if start == "" {
		start = PathHome
	}

	return &Model{
		env: pages.Env{
			API:         opts.API,
			Drafts:      opts.Drafts,
			FilterDelay: opts.FilterDelay,
			Logger:      logger,
		},
		router:    newRouter(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		statusBar: status.New(),
		dialogs:   dialog.NewManager(),
		help:      help.New(),
		keys: globalKeys{
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "voltar"),
			),
			Theme: key.NewBinding(
				key.WithKeys("ctrl+t"),
				key.WithHelp("ctrl+t", "tema"),
			),
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "sair"),
			),
		},
		baseURL:   opts.BaseURL,
		startPath: start,
		saveTheme: opts.SaveTheme,
	}
}

// Init opens the start path.
func (m *Model) Init() tea.Cmd {
	return m.navigate(m.startPath, false)
}

// Page returns the active page, nil while a loader runs.
func (m *Model) Page() pages.Page {
	return m.page
}

// Path returns the current path.
func (m *Model) Path() string {
	return m.match.Path
}

// Loading reports whether a route loader is running.
func (m *Model) Loading() bool {
	return m.loading
}

// Update routes messages to the router, the status bar and the active page.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.dialogs.SetSize(msg.Width, max(1, msg.Height-chromeHeight))
		m.resizePage()
		return m, nil

	case tea.KeyPressMsg:
		if m.dialogs.IsOpen() {
			return m, m.dialogs.Update(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.dialogs.Open(dialog.KindQuit)
		case key.Matches(msg, m.keys.Theme):
			return m, m.dialogs.Open(dialog.KindTheme)
		case key.Matches(msg, m.keys.Back):
			return m, m.back()
		}

	case dialog.ClosedMsg:
		m.dialogs.Update(msg)
		if name, ok := msg.Result.(string); ok && msg.Kind == dialog.KindTheme {
			return m, m.themeChosen(name)
		}
		return m, nil

	case router.NavigateMsg:
		return m, m.navigate(msg.Path, msg.Replace)

	case router.BackMsg:
		return m, m.back()

	case router.ReloadMsg:
		return m, m.open(m.match)

	case loadedMsg:
		return m, m.loaded(msg)

	case pages.StatusMsg:
		if msg.Error {
			return m, m.statusBar.ShowError(msg.Text)
		}
		return m, m.statusBar.ShowSuccess(msg.Text)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	cmds := []tea.Cmd{m.statusBar.Update(msg)}
	if m.page != nil {
		cmds = append(cmds, m.page.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) themeChosen(name string) tea.Cmd {
	// Cached page renders carry the old colors.
	if m.page != nil && m.width > 0 {
		m.page.SetSize(m.width, max(1, m.height-chromeHeight))
	}
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			m.env.Logger.Error("save theme failed", "theme", name, "error", err)
			return m.statusBar.ShowError("Erro ao salvar o tema: " + err.Error())
		}
	}
	return m.statusBar.ShowSuccess("Tema: " + name)
}

func (m *Model) navigate(path string, replace bool) tea.Cmd {
	match, ok := m.router.Resolve(path)
	if !ok {
		match.Route = router.Route{Name: RouteNotFound, Pattern: router.Fallback}
	}
	if replace {
		m.history.Replace(match.Path)
	} else {
		m.history.Push(match.Path)
	}
	m.env.Logger.Debug("navigate", "path", match.Path, "route", match.Route.Name, "replace", replace)
	return m.open(match)
}

func (m *Model) back() tea.Cmd {
	path, ok := m.history.Back()
	if !ok {
		return nil
	}
	match, found := m.router.Resolve(path)
	if !found {
		match.Route = router.Route{Name: RouteNotFound, Pattern: router.Fallback}
	}
	return m.open(match)
}

// open shows the page for match, running its loader first when it has one.
// Loader results of earlier navigations are dropped.
func (m *Model) open(match router.Match) tea.Cmd {
	m.match = match
	m.loadSeq++
	m.statusBar.SetLeftContent(m.statusLeft())

	if load := m.loader(match, m.loadSeq); load != nil {
		m.loading = true
		m.page = nil
		return tea.Batch(load, m.spinner.Tick)
	}

	m.loading = false
	return m.show(m.build(match, nil))
}

func (m *Model) loaded(msg loadedMsg) tea.Cmd {
	if msg.seq != m.loadSeq {
		return nil
	}
	m.loading = false

	if msg.err != nil {
		m.env.Logger.Error("route loader failed", "path", m.match.Path, "error", msg.err)
		page := pages.NewErrorPage(m.match.Path, msg.err)
		if errors.Is(msg.err, api.ErrNotFound) {
			return m.show(page)
		}
		return tea.Batch(m.show(page), m.statusBar.ShowError(msg.err.Error()))
	}
	return m.show(m.build(m.match, msg.data))
}

func (m *Model) show(page pages.Page) tea.Cmd {
	m.page = page
	m.resizePage()
	return page.Init()
}

func (m *Model) resizePage() {
	if m.page == nil || m.width == 0 {
		return
	}
	m.page.SetSize(m.width, max(1, m.height-chromeHeight))
}

func (m *Model) statusLeft() string {
	if m.baseURL == "" {
		return m.match.Path
	}
	return m.match.Path + " · " + m.baseURL
}

// View renders the whole screen.
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	s := styles.CurrentTheme().S()

	var body string
	switch {
	case m.dialogs.IsOpen():
		body = m.dialogs.View()
	case m.loading:
		body = s.Notice.Render(m.spinner.View() + " " + loadingText(m.match))
	case m.page != nil:
		body = m.page.View()
	}

	bindings := []key.Binding{}
	if m.page != nil {
		bindings = append(bindings, m.page.KeyBindings()...)
	}
	bindings = append(bindings, m.keys.Back, m.keys.Theme, m.keys.Quit)

	if m.height > 0 {
		body = lipgloss.NewStyle().Height(max(1, m.height-chromeHeight)).Render(body)
	}

	parts := []string{
		m.header(),
		"",
		body,
		m.help.ShortHelpView(bindings),
		m.statusBar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) header() string {
	s := styles.CurrentTheme().S()

	nav := func(label, path string) string {
		if m.match.Path == path {
			return s.NavActive.Render(label)
		}
		return s.Nav.Render(label)
	}

	title := styles.RenderThemeGradient("Portal de Produtos")
	links := nav("Início", PathHome) + " " + nav("Novo Produto", PathNewProduct)
	return title + "  " + links
}
