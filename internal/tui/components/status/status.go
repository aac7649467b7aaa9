package status

import (
	"strings"
	"time"

	"github.com/billie-coop/vitrine/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Error
	Success
)

// Message is a transient status bar message.
type Message struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Component is a one-line status bar: fixed content on the left, a transient
// message on the right.
type Component struct {
	message     *Message
	width       int
	leftContent string

	clearAfter time.Duration
	now        func() time.Time
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: 5 * time.Second,
		now:        time.Now,
	}
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// SetMessage shows content and returns the command that clears it later.
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	stamp := c.now()
	c.message = &Message{
		Content:   content,
		Type:      msgType,
		Timestamp: stamp,
	}

	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: stamp}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// Current returns the visible message, if any.
func (c *Component) Current() (Message, bool) {
	if c.message == nil {
		return Message{}, false
	}
	return *c.message, true
}

// SetLeftContent sets the left side content
func (c *Component) SetLeftContent(content string) {
	c.leftContent = content
}

// SetWidth sets the bar width.
func (c *Component) SetWidth(width int) {
	c.width = width
}

// Update clears the message once its timer fires. Timers of replaced messages
// are ignored.
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(clearMessageMsg); ok {
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}
	return nil
}

// View renders the bar.
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	left := c.leftContent
	right := ""
	if c.message != nil {
		right = c.messageText()
	}

	available := c.width - 2
	if lipgloss.Width(left)+lipgloss.Width(right) > available {
		right = truncate(right, 40)
		left = truncate(left, available-lipgloss.Width(right)-1)
	}

	content := left
	if right != "" {
		gap := available - lipgloss.Width(left) - lipgloss.Width(right)
		content += strings.Repeat(" ", max(1, gap)) + c.styleMessage(right)
	}

	return statusStyle.Render(content)
}

func truncate(s string, width int) string {
	if width <= 3 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func (c *Component) messageText() string {
	if c.message.Type == Error {
		return styles.ErrorIcon + " " + c.message.Content
	}
	return c.message.Content
}

func (c *Component) styleMessage(text string) string {
	s := styles.CurrentTheme().S()
	switch c.message.Type {
	case Success:
		return s.Success.Render(text)
	case Error:
		return s.Error.Render(text)
	default:
		return text
	}
}
