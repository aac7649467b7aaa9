// Package dialog holds the modal dialogs drawn over the routed page.
package dialog

import (
	"github.com/billie-coop/vitrine/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Dialog is a modal component. While open it receives every key press.
type Dialog interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Open() tea.Cmd
	IsOpen() bool
}

// ClosedMsg is sent when a dialog closes. Result is nil when it was cancelled.
type ClosedMsg struct {
	Kind   Kind
	Result any
}

// BaseDialog provides common dialog functionality
type BaseDialog struct {
	kind   Kind
	title  string
	isOpen bool

	width  int
	height int
}

func newBaseDialog(kind Kind, title string) *BaseDialog {
	return &BaseDialog{kind: kind, title: title}
}

// IsOpen returns whether the dialog is open
func (d *BaseDialog) IsOpen() bool {
	return d.isOpen
}

// SetSize sets the area the dialog is centered in.
func (d *BaseDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *BaseDialog) open() {
	d.isOpen = true
}

// close hides the dialog and reports result.
func (d *BaseDialog) close(result any) tea.Cmd {
	d.isOpen = false
	kind := d.kind
	return func() tea.Msg {
		return ClosedMsg{Kind: kind, Result: result}
	}
}

// RenderDialog draws content in a bordered box, centered when a size is known.
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	if d.title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, s.Title.MarginBottom(1).Render(d.title), content)
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocus).
		Padding(1, 2).
		Render(content)

	if d.width == 0 || d.height == 0 {
		return box
	}
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
}
