package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/filter"
	"github.com/billie-coop/vitrine/internal/plain"
	"github.com/billie-coop/vitrine/internal/tui/router"
	"github.com/billie-coop/vitrine/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

const listHeaderLines = 5

type listKeys struct {
	NewProduct key.Binding
	Reload     key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

func defaultListKeys() listKeys {
	return listKeys{
		NewProduct: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "novo produto"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recarregar"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "rolar"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
	}
}

// settleMsg carries the ticket of one armed settle back into the update loop.
type settleMsg struct {
	ticket filter.Ticket
}

// productsReloadedMsg is the result of a manual list refresh.
type productsReloadedMsg struct {
	products []catalog.Product
	err      error
}

// ListPage shows the product cards behind the debounced code filter.
type ListPage struct {
	env      Env
	keys     listKeys
	ctrl     *filter.Controller
	snap     filter.Snapshot
	input    textinput.Model
	viewport viewport.Model

	width  int
	height int

	reloading bool
}

// NewListPage creates the listing for products, as delivered by the route
// loader.
func NewListPage(env Env, products []catalog.Product) *ListPage {
	ti := textinput.New()
	ti.Placeholder = "Digite o código do produto..."
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Focus()

	p := &ListPage{
		env:      env,
		keys:     defaultListKeys(),
		input:    ti,
		viewport: viewport.New(),
	}
	p.ctrl = filter.New(
		filter.WithDelay(env.FilterDelay),
		filter.WithPublisher(p.publish),
	)
	p.ctrl.SetProducts(products)
	return p
}

// Init starts the cursor blink.
func (p *ListPage) Init() tea.Cmd {
	return textinput.Blink
}

// Snapshot returns the last published filter state.
func (p *ListPage) Snapshot() filter.Snapshot {
	return p.snap
}

// FilterText returns what is currently typed in the filter box.
func (p *ListPage) FilterText() string {
	return p.input.Value()
}

// Update handles keys, settle ticks and list refreshes.
func (p *ListPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case settleMsg:
		if p.ctrl.Settle(msg.ticket) {
			p.env.logger().Debug("filter settled", "text", p.snap.CommittedText, "shown", len(p.snap.Displayed))
		}
		return nil

	case productsReloadedMsg:
		p.reloading = false
		if msg.err != nil {
			p.env.logger().Error("reload products failed", "error", msg.err)
			return status("Erro ao carregar produtos: "+msg.err.Error(), true)
		}
		p.ctrl.SetProducts(msg.products)
		return status(fmt.Sprintf("%d produto(s) carregado(s)", len(msg.products)), false)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keys.NewProduct):
			return router.Navigate("/novo-produto")
		case key.Matches(msg, p.keys.Reload):
			return p.reload()
		case key.Matches(msg, p.keys.Up, p.keys.Down, p.keys.PageUp, p.keys.PageDown):
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return cmd
		}
		return p.updateInput(msg)
	}

	return p.updateInput(msg)
}

func (p *ListPage) updateInput(msg tea.Msg) tea.Cmd {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, p.setFilterText(p.input.Value()))
}

func (p *ListPage) setFilterText(text string) tea.Cmd {
	ticket := p.ctrl.SetFilterText(text)
	// Only the pending state changes; the displayed cards wait for the settle.
	p.snap = p.ctrl.Snapshot()
	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg {
		return settleMsg{ticket: ticket}
	})
}

func (p *ListPage) reload() tea.Cmd {
	if p.reloading || p.env.API == nil {
		return nil
	}
	p.reloading = true
	products := p.env.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		list, err := products.ListProducts(ctx)
		return productsReloadedMsg{products: list, err: err}
	}
}

func (p *ListPage) publish(s filter.Snapshot) {
	p.snap = s
	p.viewport.SetContent(p.renderCards())
	p.viewport.GotoTop()
}

// SetSize resizes the card area.
func (p *ListPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(max(1, height-listHeaderLines)),
	)
	p.viewport.SetContent(p.renderCards())
}

// KeyBindings implements Page.
func (p *ListPage) KeyBindings() []key.Binding {
	return []key.Binding{p.keys.NewProduct, p.keys.Reload, p.keys.Up}
}

// View renders the filter box and the cards.
func (p *ListPage) View() string {
	s := styles.CurrentTheme().S()

	if !p.snap.Loaded {
		return s.Notice.Render(plain.MsgLoading)
	}
	if p.snap.NoProductsAtAll() {
		return s.Notice.Render(plain.MsgNoProduct)
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Lista de Produtos"))
	b.WriteString("\n")

	box := s.InputFocused.Render(p.input.View())
	label := s.Label.Render("Código:")
	line := lipgloss.JoinHorizontal(lipgloss.Center, label, " ", box)
	if p.snap.State == filter.Pending {
		line = lipgloss.JoinHorizontal(lipgloss.Center, line, " ", s.Subtle.Render(styles.SearchIcon+" filtrando..."))
	}
	b.WriteString(line)
	b.WriteString("\n")

	if p.snap.NoMatchForFilter() {
		b.WriteString(s.Notice.Render(plain.NoMatchMessage(p.snap.CommittedText)))
		return b.String()
	}

	b.WriteString(s.Muted.Render(fmt.Sprintf("Exibindo %d de %d produto(s)", len(p.snap.Displayed), p.snap.Total)))
	b.WriteString("\n")
	if p.width == 0 {
		b.WriteString(p.renderCards())
	} else {
		b.WriteString(p.viewport.View())
	}
	return b.String()
}

func (p *ListPage) renderCards() string {
	if len(p.snap.Displayed) == 0 {
		return ""
	}
	width := 60
	if p.width > 0 && p.width-2 < width {
		width = max(24, p.width-2)
	}

	cards := make([]string, 0, len(p.snap.Displayed))
	for _, product := range p.snap.Displayed {
		cards = append(cards, renderCard(product, width))
	}
	return strings.Join(cards, "\n")
}

func renderCard(product catalog.Product, width int) string {
	s := styles.CurrentTheme().S()

	title := s.CardCode.Render(fmt.Sprintf("(%d)", product.ID)) + " " + s.Bold.Render(product.Name)
	category := s.Badge.Render(product.Category)
	price := s.Price.Render(product.FormattedPrice())
	// Card actions are labels only; editing and deleting are not wired from here.
	actions := s.Button.Render("Editar") + " " + s.ButtonDanger.Render("Excluir")

	inner := width - 4
	gap := max(1, inner-lipgloss.Width(price)-lipgloss.Width(actions))
	bottom := price + strings.Repeat(" ", gap) + actions

	return s.Card.Width(width).Render(strings.Join([]string{title, category, bottom}, "\n"))
}
