package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/billie-coop/vitrine/internal/api"
	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/filter"
	"github.com/billie-coop/vitrine/internal/tui/router"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	products  []catalog.Product
	listErr   error
	createErr error
	created   []catalog.Draft
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]catalog.Product(nil), f.products...), nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id int) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, api.ErrNotFound
}

func (f *fakeAPI) CreateProduct(ctx context.Context, d catalog.Draft) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return catalog.Product{}, f.createErr
	}
	f.created = append(f.created, d)
	p := d.Product(catalog.MaxID(f.products) + 1)
	f.products = append(f.products, p)
	return p, nil
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Caneca", Category: "Cozinha", Price: 19.9, PictureURL: "a.png"},
		{ID: 2, Name: "Garrafa", Category: "Cozinha", Price: 59.9, PictureURL: "b.png"},
		{ID: 10, Name: "Mochila", Category: "Acessórios", Price: 129, PictureURL: "c.png"},
	}
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Commands that do not answer quickly (blinks, long ticks) are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func typeText(p Page, text string) []tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range text {
		cmds = append(cmds, p.Update(tea.KeyPressMsg{Code: r, Text: string(r)}))
	}
	return cmds
}

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func testEnv(api *fakeAPI) Env {
	return Env{API: api, FilterDelay: time.Millisecond}
}

func TestListPage_InitialListing(t *testing.T) {
	p := NewListPage(testEnv(&fakeAPI{}), sampleProducts())

	snap := p.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, filter.Idle, snap.State)
	assert.Len(t, snap.Displayed, 3)

	view := p.View()
	assert.Contains(t, view, "Lista de Produtos")
	assert.Contains(t, view, "Mochila")
	assert.Contains(t, view, "R$ 129,00")
	assert.Contains(t, view, "Editar")
	assert.Contains(t, view, "Excluir")
}

func TestListPage_EmptyList(t *testing.T) {
	p := NewListPage(testEnv(&fakeAPI{}), []catalog.Product{})

	assert.True(t, p.Snapshot().NoProductsAtAll())
	assert.Contains(t, p.View(), "Nenhum produto encontrado.")
	assert.NotContains(t, p.View(), "Código:")
}

func TestListPage_OnlyLatestSettlePublishes(t *testing.T) {
	p := NewListPage(testEnv(&fakeAPI{}), sampleProducts())

	cmds := typeText(p, "10")
	require.Len(t, cmds, 2)
	assert.Equal(t, "10", p.FilterText())
	assert.Equal(t, filter.Pending, p.Snapshot().State)
	assert.Len(t, p.Snapshot().Displayed, 3, "nothing is applied before the settle")

	first, ok := find[settleMsg](collect(cmds[0]))
	require.True(t, ok)
	second, ok := find[settleMsg](collect(cmds[1]))
	require.True(t, ok)

	p.Update(first)
	assert.Equal(t, "", p.Snapshot().CommittedText, "a superseded settle publishes nothing")

	p.Update(second)
	snap := p.Snapshot()
	assert.Equal(t, filter.Idle, snap.State)
	assert.Equal(t, "10", snap.CommittedText)
	require.Len(t, snap.Displayed, 1)
	assert.Equal(t, 10, snap.Displayed[0].ID)
	assert.NotContains(t, p.View(), "Caneca")
}

func TestListPage_SettleFromPreviousPageIgnored(t *testing.T) {
	env := testEnv(&fakeAPI{})
	old := NewListPage(env, sampleProducts())
	stale, ok := find[settleMsg](collect(typeText(old, "1")[0]))
	require.True(t, ok)

	// The user left the list and came back before the old tick fired.
	fresh := NewListPage(env, sampleProducts())
	cmds := typeText(fresh, "2")

	fresh.Update(stale)
	snap := fresh.Snapshot()
	assert.Empty(t, snap.CommittedText)
	assert.Equal(t, filter.Pending, snap.State)
	assert.Len(t, snap.Displayed, 3)

	own, ok := find[settleMsg](collect(cmds[0]))
	require.True(t, ok)
	fresh.Update(own)
	snap = fresh.Snapshot()
	assert.Equal(t, "2", snap.CommittedText)
	require.Len(t, snap.Displayed, 1)
	assert.Equal(t, 2, snap.Displayed[0].ID)
}

func TestListPage_NoMatch(t *testing.T) {
	p := NewListPage(testEnv(&fakeAPI{}), sampleProducts())

	cmds := typeText(p, "7")
	settle, ok := find[settleMsg](collect(cmds[len(cmds)-1]))
	require.True(t, ok)
	p.Update(settle)

	assert.True(t, p.Snapshot().NoMatchForFilter())
	assert.Contains(t, p.View(), `Nenhum produto encontrado com o código "7"`)
}

func TestListPage_ReloadKeepsFilter(t *testing.T) {
	fake := &fakeAPI{products: sampleProducts()}
	p := NewListPage(testEnv(fake), sampleProducts()[:1])

	cmds := typeText(p, "10")
	settle, ok := find[settleMsg](collect(cmds[len(cmds)-1]))
	require.True(t, ok)
	p.Update(settle)
	assert.True(t, p.Snapshot().NoMatchForFilter())

	reloaded, ok := find[productsReloadedMsg](collect(p.Update(press('r', tea.ModCtrl))))
	require.True(t, ok)
	status, ok := find[StatusMsg](collect(p.Update(reloaded)))
	require.True(t, ok)
	assert.False(t, status.Error)

	snap := p.Snapshot()
	assert.Equal(t, 3, snap.Total)
	require.Len(t, snap.Displayed, 1, "the committed filter applies to the new list at once")
	assert.Equal(t, 10, snap.Displayed[0].ID)
}

func TestListPage_ReloadError(t *testing.T) {
	fake := &fakeAPI{listErr: errors.New("connection refused")}
	p := NewListPage(testEnv(fake), sampleProducts())

	reloaded, ok := find[productsReloadedMsg](collect(p.Update(press('r', tea.ModCtrl))))
	require.True(t, ok)
	status, ok := find[StatusMsg](collect(p.Update(reloaded)))
	require.True(t, ok)
	assert.True(t, status.Error)
	assert.Len(t, p.Snapshot().Displayed, 3, "the old list stays")
}

func TestListPage_NewProductKey(t *testing.T) {
	p := NewListPage(testEnv(&fakeAPI{}), sampleProducts())

	nav, ok := find[router.NavigateMsg](collect(p.Update(press('n', tea.ModCtrl))))
	require.True(t, ok)
	assert.Equal(t, "/novo-produto", nav.Path)
	assert.Equal(t, "", p.FilterText())
}

func fillForm(f *FormPage, values map[string]string) {
	for name, value := range values {
		f.SetValue(name, value)
	}
}

func validValues() map[string]string {
	return map[string]string{
		catalog.FieldName:        "Luminária",
		catalog.FieldDescription: "LED",
		catalog.FieldPrice:       "89,50",
		catalog.FieldCategory:    "Casa",
		catalog.FieldPictureURL:  "lamp.png",
	}
}

func TestFormPage_SubmitCreatesAndRedirects(t *testing.T) {
	fake := &fakeAPI{products: sampleProducts()}
	f := NewFormPage(testEnv(fake))
	fillForm(f, validValues())

	created, ok := find[productCreatedMsg](collect(f.Update(press('s', tea.ModCtrl))))
	require.True(t, ok)
	require.NoError(t, created.err)
	assert.Equal(t, 11, created.product.ID)
	assert.Equal(t, 89.5, created.product.Price)

	msgs := collect(f.Update(created))
	nav, ok := find[router.NavigateMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, router.NavigateMsg{Path: "/", Replace: true}, nav)
	_, ok = find[StatusMsg](msgs)
	assert.True(t, ok)
}

func TestFormPage_ValidationKeepsValues(t *testing.T) {
	fake := &fakeAPI{}
	f := NewFormPage(testEnv(fake))
	values := validValues()
	values[catalog.FieldName] = "  "
	values[catalog.FieldPrice] = "abc"
	fillForm(f, values)

	status, ok := find[StatusMsg](collect(f.Update(press('s', tea.ModCtrl))))
	require.True(t, ok)
	assert.True(t, status.Error)

	assert.Contains(t, f.FieldErrors(), catalog.FieldName)
	assert.Contains(t, f.FieldErrors(), catalog.FieldPrice)
	assert.Equal(t, "abc", f.Values()[catalog.FieldPrice])
	assert.Equal(t, "LED", f.Values()[catalog.FieldDescription])
	assert.Empty(t, fake.created, "nothing is sent")
	assert.Contains(t, f.View(), "campo obrigatório")
}

func TestFormPage_BackendFailureKeepsValues(t *testing.T) {
	fake := &fakeAPI{createErr: fmt.Errorf("create product: %w", &api.StatusError{Code: 500, Body: "boom"})}
	f := NewFormPage(testEnv(fake))
	fillForm(f, validValues())

	created, ok := find[productCreatedMsg](collect(f.Update(press('s', tea.ModCtrl))))
	require.True(t, ok)
	status, ok := find[StatusMsg](collect(f.Update(created)))
	require.True(t, ok)
	assert.True(t, status.Error)

	assert.True(t, strings.HasPrefix(f.Error(), "Erro ao adicionar produto"))
	assert.Equal(t, validValues(), f.Values())
}

func TestFormPage_TypingAndFocus(t *testing.T) {
	f := NewFormPage(testEnv(&fakeAPI{}))

	typeText(f, "Vaso")
	f.Update(press(tea.KeyTab, 0))
	typeText(f, "Cerâmica")
	f.Update(press(tea.KeyTab, 0))
	typeText(f, "25")

	values := f.Values()
	assert.Equal(t, "Vaso", values[catalog.FieldName])
	assert.Equal(t, "Cerâmica", values[catalog.FieldDescription])
	assert.Equal(t, "25", values[catalog.FieldPrice])

	f.Update(press(tea.KeyTab, tea.ModShift))
	assert.Equal(t, slotDescription, f.focus)
}

func TestFormPage_Cancel(t *testing.T) {
	f := NewFormPage(testEnv(&fakeAPI{}))
	f.setFocus(slotCancel)

	nav, ok := find[router.NavigateMsg](collect(f.Update(press(tea.KeyEnter, 0))))
	require.True(t, ok)
	assert.Equal(t, "/", nav.Path)
}

func TestEditPage(t *testing.T) {
	p := NewEditPage(sampleProducts()[2])
	p.SetSize(80, 20)

	view := p.View()
	assert.Contains(t, view, EditPlaceholder)
	assert.Contains(t, view, "Mochila")

	md := ProductMarkdown(sampleProducts()[2])
	assert.Contains(t, md, "# (10) Mochila")
	assert.Contains(t, md, "R$ 129,00")

	nav, ok := find[router.NavigateMsg](collect(p.Update(press(tea.KeyEnter, 0))))
	require.True(t, ok)
	assert.Equal(t, "/", nav.Path)
}

func TestErrorPage(t *testing.T) {
	notFound := NewErrorPage("/editar-produto/99", fmt.Errorf("get product 99: %w", api.ErrNotFound))
	assert.True(t, notFound.NotFound())
	assert.Contains(t, notFound.View(), ErrNotFound)

	broken := NewErrorPage("/", errors.New("connection refused"))
	assert.False(t, broken.NotFound())
	assert.Contains(t, broken.View(), ErrUnexpected)
	assert.Contains(t, broken.View(), "connection refused")

	unknown := NewNotFoundPage("/nada")
	assert.True(t, unknown.NotFound())
	assert.Contains(t, unknown.View(), ErrNoSuchRoute)

	_, ok := find[router.ReloadMsg](collect(broken.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})))
	assert.True(t, ok)
	nav, ok := find[router.NavigateMsg](collect(broken.Update(press(tea.KeyEnter, 0))))
	require.True(t, ok)
	assert.Equal(t, "/", nav.Path)
}

type memDrafts struct {
	values    map[string]string
	discarded int
}

func (d *memDrafts) Load() map[string]string { return d.values }

func (d *memDrafts) Save(values map[string]string) error {
	d.values = values
	return nil
}

func (d *memDrafts) Discard() error {
	d.values = nil
	d.discarded++
	return nil
}

func TestFormPage_Drafts(t *testing.T) {
	drafts := &memDrafts{}
	env := testEnv(&fakeAPI{createErr: errors.New("connection refused")})
	env.Drafts = drafts

	f := NewFormPage(env)
	assert.False(t, f.Restored())
	fillForm(f, validValues())

	created, ok := find[productCreatedMsg](collect(f.Update(press('s', tea.ModCtrl))))
	require.True(t, ok)
	f.Update(created)
	assert.Equal(t, validValues(), drafts.values, "a rejected form is kept")

	env.API = &fakeAPI{}
	restored := NewFormPage(env)
	assert.True(t, restored.Restored())
	assert.Equal(t, validValues(), restored.Values())
	assert.Contains(t, restored.View(), "Rascunho restaurado")

	created, ok = find[productCreatedMsg](collect(restored.Update(press('s', tea.ModCtrl))))
	require.True(t, ok)
	restored.Update(created)
	assert.Nil(t, drafts.values, "the draft is dropped once the product exists")
	assert.False(t, restored.Restored())
}

func TestFormPage_ValidationFailureKeepsNoDraft(t *testing.T) {
	drafts := &memDrafts{}
	api := &fakeAPI{}
	env := testEnv(api)
	env.Drafts = drafts

	f := NewFormPage(env)
	values := validValues()
	values[catalog.FieldPrice] = "abc"
	fillForm(f, values)

	f.Update(press('s', tea.ModCtrl))
	assert.NotEmpty(t, f.FieldErrors())
	assert.Nil(t, drafts.values, "only a backend rejection saves the draft")
	assert.Empty(t, api.created)
}
