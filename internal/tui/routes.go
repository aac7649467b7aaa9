package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/plain"
	"github.com/billie-coop/vitrine/internal/tui/pages"
	"github.com/billie-coop/vitrine/internal/tui/router"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Route names.
const (
	RouteList     = "list"
	RouteNew      = "new"
	RouteEdit     = "edit"
	RouteNotFound = "not-found"
)

// Paths used by navigation.
const (
	PathHome       = "/"
	PathNewProduct = "/novo-produto"
)

const loadTimeout = 15 * time.Second

// EditPath returns the edit route for a product.
func EditPath(id int) string {
	return "/editar-produto/" + strconv.Itoa(id)
}

func newRouter() *router.Router {
	return router.New(
		router.Route{Name: RouteList, Pattern: PathHome},
		router.Route{Name: RouteNew, Pattern: PathNewProduct},
		router.Route{Name: RouteEdit, Pattern: "/editar-produto/{id}"},
		router.Route{Name: RouteNotFound, Pattern: router.Fallback},
	)
}

// loadedMsg is the outcome of a route loader. seq ties it to one navigation.
type loadedMsg struct {
	seq  uint64
	data any
	err  error
}

// loader returns the data fetch for a route, or nil when the route has none.
func (m *Model) loader(match router.Match, seq uint64) tea.Cmd {
	products := m.env.API
	var load func(ctx context.Context) (any, error)

	switch match.Route.Name {
	case RouteList:
		load = func(ctx context.Context) (any, error) {
			return products.ListProducts(ctx)
		}
	case RouteEdit:
		raw := match.Params["id"]
		load = func(ctx context.Context) (any, error) {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("product id %q: %w", raw, api.ErrNotFound)
			}
			return products.GetProduct(ctx, id)
		}
	default:
		return nil
	}

	return func() tea.Msg {
		if products == nil {
			return loadedMsg{seq: seq, err: fmt.Errorf("no backend configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		data, err := load(ctx)
		return loadedMsg{seq: seq, data: data, err: err}
	}
}

// build creates the page for a resolved route and its loader data.
func (m *Model) build(match router.Match, data any) pages.Page {
	switch match.Route.Name {
	case RouteList:
		list, _ := data.([]catalog.Product)
		return pages.NewListPage(m.env, list)
	case RouteNew:
		return pages.NewFormPage(m.env)
	case RouteEdit:
		product, _ := data.(catalog.Product)
		return pages.NewEditPage(product)
	default:
		return pages.NewNotFoundPage(match.Path)
	}
}

func loadingText(match router.Match) string {
	if match.Route.Name == RouteList {
		return plain.MsgLoading
	}
	return "Carregando..."
}
