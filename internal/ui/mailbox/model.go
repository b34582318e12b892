// Package mailbox renders the open session: a spinner while the pipeline
// runs, the record list once it is ready, and a scrollable detail pane for
// a single message.
package mailbox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/maildeck/internal/keys"
	"github.com/nvu/maildeck/internal/session"
	"github.com/nvu/maildeck/internal/theme"
)

// BackMsg signals the parent to close the session and return to the list.
type BackMsg struct{}

// SwitchFolderMsg asks the parent to reopen the session on the other folder.
type SwitchFolderMsg struct{}

// Model is the mailbox view component. It renders whatever session state
// snapshot the parent last handed it; it never talks to the controller
// itself.
type Model struct {
	state    session.State
	keys     *keys.KeyMap
	spinner  spinner.Model
	viewport viewport.Model
	cursor   int
	detail   bool
	width    int
	height   int
}

// New creates a new mailbox view model.
func New(k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	vp := viewport.New(width, height-4)

	return Model{
		keys:     k,
		spinner:  sp,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetState installs a fresh session snapshot. A new loading snapshot resets
// the cursor and leaves any open detail pane.
func (m *Model) SetState(s session.State) {
	m.state = s
	if s.Loading {
		m.cursor = 0
		m.detail = false
	}
	if m.cursor >= len(s.Records) {
		m.cursor = len(s.Records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the mailbox view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.detail {
			return m.handleDetailKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	return m, nil
}

// handleListKeys processes key input in the record list.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.SwitchFolder):
		return m, func() tea.Msg { return SwitchFolderMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Records)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.state.Records) {
			m.detail = true
			m.viewport.SetContent(m.renderDetail())
			m.viewport.GotoTop()
		}
		return m, nil
	}

	return m, nil
}

// handleDetailKeys processes key input in the detail pane.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.detail = false
		return m, nil
	}

	// Viewport handles scrolling (j/k, up/down, pgup/pgdn).
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the mailbox view.
func (m Model) View() string {
	header := fmt.Sprintf("%s %s",
		m.state.Address,
		theme.FolderStyle(string(m.state.Folder)).Render(string(m.state.Folder)),
	)

	if m.state.Loading {
		body := fmt.Sprintf("%s %s...", m.spinner.View(), m.state.Phase)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	}

	if m.detail {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			theme.DetailPanelStyle.Width(m.width-4).Render(m.viewport.View()),
		)
	}

	if len(m.state.Records) == 0 {
		empty := lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Padding(2, 0).
			Foreground(theme.ColorGray).
			Render("No messages in this folder.")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.renderRecords())
}

// renderRecords renders the record list, newest first as loaded.
func (m Model) renderRecords() string {
	var b strings.Builder
	for i, r := range m.state.Records {
		marker := " "
		if r.HasAttachments == 1 {
			marker = "@"
		}

		row := fmt.Sprintf("%s %-19s %-30s %s",
			marker, r.ReceivedTime, truncate(r.Sender, 30), truncate(r.Subject, 50),
		)
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(theme.ListItemStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail renders the message under the cursor for the viewport.
func (m Model) renderDetail() string {
	if m.cursor >= len(m.state.Records) {
		return ""
	}
	r := m.state.Records[m.cursor]

	label := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorGray)

	var b strings.Builder
	b.WriteString(label.Render("Subject:") + " " + r.Subject + "\n")
	b.WriteString(label.Render("From:") + " " + r.Sender + "\n")
	b.WriteString(label.Render("Received:") + " " + r.ReceivedTime + "\n")
	if r.HasAttachments == 1 {
		b.WriteString(label.Render("Attachments:") + " yes\n")
	}
	b.WriteString("\n")
	b.WriteString(r.Content)
	return b.String()
}

// truncate shortens s to max runes with a trailing ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 8
	m.viewport.Height = height - 6
}
