package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/tui/router"
	"github.com/billie-coop/vitrine/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Focus slots of the form, in tab order.
const (
	slotName = iota
	slotDescription
	slotPrice
	slotCategory
	slotPictureURL
	slotCreate
	slotCancel
	slotCount
)

type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Press  key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "próximo campo"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "campo anterior"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "criar"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
		),
	}
}

// productCreatedMsg is the result of the create request.
type productCreatedMsg struct {
	product catalog.Product
	err     error
}

type formField struct {
	name  string
	label string
	input textinput.Model
}

// FormPage is the "Cadastrar Novo Produto" form.
type FormPage struct {
	env  Env
	keys formKeys

	fields      []formField // name, price, category, pictureUrl
	description textarea.Model

	focus      int
	submitting bool

	fieldErrors map[string]string
	err         string
	restored    bool

	width int
}

// NewFormPage creates an empty form focused on the name field.
func NewFormPage(env Env) *FormPage {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "Descreva o produto"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 1000
	ta.SetHeight(4)

	f := &FormPage{
		env:  env,
		keys: defaultFormKeys(),
		fields: []formField{
			{name: catalog.FieldName, label: "Nome:", input: newInput("", 120)},
			{name: catalog.FieldPrice, label: "Preço:", input: newInput("0,00", 16)},
			{name: catalog.FieldCategory, label: "Categoria:", input: newInput("", 60)},
			{name: catalog.FieldPictureURL, label: "URL da Imagem:", input: newInput("https://", 500)},
		},
		description: ta,
		fieldErrors: map[string]string{},
	}
	f.setFocus(slotName)

	if env.Drafts != nil {
		if values := env.Drafts.Load(); values != nil {
			for name, value := range values {
				f.SetValue(name, value)
			}
			f.restored = true
		}
	}
	return f
}

// Restored reports whether the form was filled from a saved draft.
func (f *FormPage) Restored() bool {
	return f.restored
}

// Init starts the cursor blink.
func (f *FormPage) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the raw form values keyed by field name.
func (f *FormPage) Values() map[string]string {
	values := map[string]string{
		catalog.FieldDescription: f.description.Value(),
	}
	for _, field := range f.fields {
		values[field.name] = field.input.Value()
	}
	return values
}

// SetValue fills one field, used to restore a draft.
func (f *FormPage) SetValue(name, value string) {
	if name == catalog.FieldDescription {
		f.description.SetValue(value)
		return
	}
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields[i].input.SetValue(value)
		}
	}
}

// Error returns the form-level error message, if any.
func (f *FormPage) Error() string {
	return f.err
}

// FieldErrors returns the per-field validation messages.
func (f *FormPage) FieldErrors() map[string]string {
	return f.fieldErrors
}

// Update handles focus cycling, typing and submission.
func (f *FormPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case productCreatedMsg:
		f.submitting = false
		if msg.err != nil {
			f.saveDraft()
			return f.fail(msg.err)
		}
		f.env.logger().Info("product created", "id", msg.product.ID, "name", msg.product.Name)
		f.discardDraft()
		return tea.Batch(
			status(styles.CheckIcon+" Produto \""+msg.product.Name+"\" criado", false),
			router.Redirect("/"),
		)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, f.keys.Next):
			return f.setFocus((f.focus + 1) % slotCount)
		case key.Matches(msg, f.keys.Prev):
			return f.setFocus((f.focus + slotCount - 1) % slotCount)
		case key.Matches(msg, f.keys.Submit):
			return f.submit()
		case key.Matches(msg, f.keys.Press) && f.focus == slotCreate:
			return f.submit()
		case key.Matches(msg, f.keys.Press) && f.focus == slotCancel:
			f.discardDraft()
			return router.Navigate("/")
		case key.Matches(msg, f.keys.Press) && f.focus != slotDescription:
			// Enter in a single-line field moves on, like tab.
			return f.setFocus((f.focus + 1) % slotCount)
		}
	}

	return f.updateFocused(msg)
}

func (f *FormPage) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case f.focus == slotDescription:
		f.description, cmd = f.description.Update(msg)
	case f.focus < slotCreate:
		i := f.fieldIndex(f.focus)
		f.fields[i].input, cmd = f.fields[i].input.Update(msg)
	}
	return cmd
}

// fieldIndex maps a focus slot to the fields slice.
func (f *FormPage) fieldIndex(slot int) int {
	if slot > slotDescription {
		return slot - 1
	}
	return slot
}

func (f *FormPage) setFocus(slot int) tea.Cmd {
	f.focus = slot
	f.description.Blur()
	for i := range f.fields {
		f.fields[i].input.Blur()
	}

	switch {
	case slot == slotDescription:
		return f.description.Focus()
	case slot < slotCreate:
		return f.fields[f.fieldIndex(slot)].input.Focus()
	}
	return nil
}

func (f *FormPage) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	f.err = ""
	f.fieldErrors = map[string]string{}

	draft, err := catalog.ParseDraft(f.Values())
	if err != nil {
		return f.fail(err)
	}
	if f.env.API == nil {
		return f.fail(errors.New("nenhum backend configurado"))
	}

	f.submitting = true
	products := f.env.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		p, err := products.CreateProduct(ctx, draft)
		return productCreatedMsg{product: p, err: err}
	}
}

// fail keeps every typed value and reports err on the form.
func (f *FormPage) fail(err error) tea.Cmd {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		f.fieldErrors = verr.Fields
		f.err = "Corrija os campos destacados"
	} else {
		f.err = "Erro ao adicionar produto: " + err.Error()
	}
	f.env.logger().Warn("create product failed", "error", err)
	return status(f.err, true)
}

// saveDraft keeps the values of a form the backend rejected for the next run.
func (f *FormPage) saveDraft() {
	if f.env.Drafts == nil {
		return
	}
	if err := f.env.Drafts.Save(f.Values()); err != nil {
		f.env.logger().Error("save draft failed", "error", err)
	}
}

func (f *FormPage) discardDraft() {
	f.restored = false
	if f.env.Drafts == nil {
		return
	}
	if err := f.env.Drafts.Discard(); err != nil {
		f.env.logger().Error("discard draft failed", "error", err)
	}
}

// SetSize implements Page.
func (f *FormPage) SetSize(width, height int) {
	f.width = width
	w := min(max(20, width-6), 70)
	f.description.SetWidth(w)
}

// KeyBindings implements Page.
func (f *FormPage) KeyBindings() []key.Binding {
	return []key.Binding{f.keys.Next, f.keys.Prev, f.keys.Submit}
}

// View renders the form.
func (f *FormPage) View() string {
	s := styles.CurrentTheme().S()

	var b strings.Builder
	b.WriteString(s.Title.Render("Cadastrar Novo Produto"))
	b.WriteString("\n")
	if f.restored {
		b.WriteString(s.Muted.Render(styles.InfoIcon + " Rascunho restaurado"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row := func(slot int, label, name, view string) {
		box := s.Input
		if f.focus == slot {
			box = s.InputFocused
		}
		b.WriteString(s.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(box.Render(view))
		b.WriteString("\n")
		if msg, ok := f.fieldErrors[name]; ok {
			b.WriteString(s.Error.Render(styles.ErrorIcon + " " + msg))
			b.WriteString("\n")
		}
	}

	row(slotName, f.fields[0].label, f.fields[0].name, f.fields[0].input.View())
	row(slotDescription, "Descrição:", catalog.FieldDescription, f.description.View())
	for slot := slotPrice; slot < slotCreate; slot++ {
		field := f.fields[f.fieldIndex(slot)]
		row(slot, field.label, field.name, field.input.View())
	}

	create, cancel := s.Button, s.Button
	switch f.focus {
	case slotCreate:
		create = s.ButtonFocused
	case slotCancel:
		cancel = s.ButtonFocused
	}
	label := "Criar"
	if f.submitting {
		label = styles.LoadingIcon + " Criando..."
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, create.Render(label), "  ", cancel.Render("Cancelar")))

	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(f.err))
	}
	return b.String()
}
