package dialog

import (
	"fmt"
	"strings"

	"github.com/billie-coop/vitrine/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// ThemeSwitcherDialog previews and selects a color theme. Its result is the
// chosen theme name.
type ThemeSwitcherDialog struct {
	*BaseDialog
	themes        []string
	selectedIndex int
	original      string
}

// NewThemeSwitcher creates a new theme switcher dialog
func NewThemeSwitcher() *ThemeSwitcherDialog {
	return &ThemeSwitcherDialog{
		BaseDialog: newBaseDialog(KindTheme, "🎨 Tema"),
	}
}

// Open lists the registered themes with the current one selected.
func (d *ThemeSwitcherDialog) Open() tea.Cmd {
	manager := styles.DefaultManager()
	d.themes = manager.List()
	d.original = manager.Current().Name

	d.selectedIndex = 0
	for i, theme := range d.themes {
		if theme == d.original {
			d.selectedIndex = i
			break
		}
	}
	d.open()
	return nil
}

// Selected returns the highlighted theme.
func (d *ThemeSwitcherDialog) Selected() string {
	if len(d.themes) == 0 {
		return ""
	}
	return d.themes[d.selectedIndex]
}

// Update handles input. Moving the selection previews the theme at once;
// cancelling restores the one active when the dialog opened.
func (d *ThemeSwitcherDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.isOpen {
		return nil
	}
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if d.selectedIndex > 0 {
			d.selectedIndex--
			d.preview()
		}
	case "down", "j":
		if d.selectedIndex < len(d.themes)-1 {
			d.selectedIndex++
			d.preview()
		}
	case "enter":
		return d.close(d.Selected())
	case "esc", "ctrl+c":
		_ = styles.DefaultManager().SetTheme(d.original)
		return d.close(nil)
	}
	return nil
}

func (d *ThemeSwitcherDialog) preview() {
	_ = styles.DefaultManager().SetTheme(d.Selected())
}

// View renders the dialog
func (d *ThemeSwitcherDialog) View() string {
	if !d.isOpen {
		return ""
	}
	s := styles.CurrentTheme().S()

	lines := []string{
		s.Subtle.Render("↑/↓ para escolher, enter para aplicar"),
		"",
	}
	for i, name := range d.themes {
		if i == d.selectedIndex {
			lines = append(lines, styles.RenderThemeGradient("→ "+name))
			continue
		}
		line := "  " + name
		if name == d.original {
			line = fmt.Sprintf("  %s (atual)", name)
		}
		lines = append(lines, s.Muted.Render(line))
	}

	lines = append(lines, "", strings.Join([]string{
		s.Success.Render("Sucesso"),
		s.Warning.Render("Aviso"),
		s.Error.Render("Erro"),
		s.Price.Render("R$ 9,90"),
	}, " "))

	return d.RenderDialog(strings.Join(lines, "\n"))
}
