package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Kind identifies a dialog.
type Kind string

const (
	KindQuit  Kind = "quit"
	KindTheme Kind = "theme"
)

// Manager owns the dialogs and tracks which one is open. At most one is.
type Manager struct {
	dialogs map[Kind]Dialog
	active  Kind
	width   int
	height  int
}

// NewManager creates a new dialog manager
func NewManager() *Manager {
	return &Manager{
		dialogs: map[Kind]Dialog{
			KindQuit:  NewQuitDialog(),
			KindTheme: NewThemeSwitcher(),
		},
	}
}

// Update forwards msg to the open dialog.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	if closed, ok := msg.(ClosedMsg); ok && closed.Kind == m.active {
		m.active = ""
		return nil
	}

	d, ok := m.dialogs[m.active]
	if !ok {
		return nil
	}
	cmd := d.Update(msg)
	if !d.IsOpen() {
		m.active = ""
	}
	return cmd
}

// View renders the open dialog, or "".
func (m *Manager) View() string {
	if d, ok := m.dialogs[m.active]; ok {
		return d.View()
	}
	return ""
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, d := range m.dialogs {
		d.SetSize(width, height)
	}
}

// Open shows the dialog of kind, replacing any open one.
func (m *Manager) Open(kind Kind) tea.Cmd {
	d, ok := m.dialogs[kind]
	if !ok {
		return nil
	}
	m.active = kind
	return d.Open()
}

// IsOpen reports whether any dialog is open.
func (m *Manager) IsOpen() bool {
	return m.active != ""
}

// Active returns the open dialog kind, "" when none is.
func (m *Manager) Active() Kind {
	return m.active
}
