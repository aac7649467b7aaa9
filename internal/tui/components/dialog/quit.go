package dialog

import (
	"github.com/billie-coop/vitrine/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// QuitDialog asks for confirmation before quitting
type QuitDialog struct {
	*BaseDialog

	selectedNo bool // "Não" is preselected
}

// NewQuitDialog creates a new quit confirmation dialog
func NewQuitDialog() *QuitDialog {
	return &QuitDialog{
		BaseDialog: newBaseDialog(KindQuit, "Sair do Portal?"),
		selectedNo: true,
	}
}

// Open shows the dialog with "Não" selected.
func (d *QuitDialog) Open() tea.Cmd {
	d.selectedNo = true
	d.open()
	return nil
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}

	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "ctrl+c", "s", "S", "y", "Y":
		// A second ctrl+c confirms.
		return tea.Quit
	case "esc", "n", "N":
		return d.close(nil)
	case "left", "right", "tab", "shift+tab", "h", "l":
		d.selectedNo = !d.selectedNo
	case "enter", "space":
		if d.selectedNo {
			return d.close(nil)
		}
		return tea.Quit
	}
	return nil
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	question := s.Bold.Render("Tem certeza que deseja sair?")

	yesStyle, noStyle := s.Button, s.ButtonFocused
	if !d.selectedNo {
		yesStyle, noStyle = s.ButtonFocused, s.Button
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Sim"), "  ", noStyle.Render("Não"))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		question,
		"",
		buttons,
		"",
		s.Subtle.Italic(true).Render("ctrl+c de novo para sair • esc para cancelar"),
	)
	return d.RenderDialog(content)
}
