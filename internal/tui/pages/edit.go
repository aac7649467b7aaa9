package pages

import (
	"fmt"
	"strings"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/tui/router"
	"github.com/billie-coop/vitrine/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// EditPlaceholder is the body of the edit route until editing exists.
const EditPlaceholder = "Página de edição (em desenvolvimento)"

// EditPage shows the product fetched by the edit route loader. Editing itself is
// not available yet.
type EditPage struct {
	product catalog.Product
	home    key.Binding
	width   int
	details string
}

// NewEditPage creates the page for product.
func NewEditPage(product catalog.Product) *EditPage {
	return &EditPage{
		product: product,
		home: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "voltar ao início"),
		),
	}
}

func (e *EditPage) Init() tea.Cmd { return nil }

func (e *EditPage) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, e.home) {
		return router.Navigate("/")
	}
	return nil
}

func (e *EditPage) SetSize(width, height int) {
	if width != e.width {
		e.width = width
		e.details = ""
	}
}

func (e *EditPage) KeyBindings() []key.Binding {
	return []key.Binding{e.home}
}

// Product returns the loaded product.
func (e *EditPage) Product() catalog.Product {
	return e.product
}

func (e *EditPage) View() string {
	s := styles.CurrentTheme().S()
	if e.details == "" {
		e.details = styles.RenderMarkdown(ProductMarkdown(e.product), e.width)
	}
	return s.Subtitle.Render(EditPlaceholder) + "\n" + e.details
}

// ProductMarkdown describes a product as markdown.
func ProductMarkdown(p catalog.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# (%d) %s\n\n", p.ID, p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "- **Categoria:** %s\n", p.Category)
	fmt.Fprintf(&b, "- **Preço:** %s\n", p.FormattedPrice())
	if p.PictureURL != "" {
		fmt.Fprintf(&b, "- **Imagem:** %s\n", p.PictureURL)
	}
	return b.String()
}
