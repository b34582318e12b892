// Package accountlist renders the paged account table: search, selection
// checkboxes, and the compact pagination strip.
package accountlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/maildeck/internal/directory"
	"github.com/nvu/maildeck/internal/folder"
	"github.com/nvu/maildeck/internal/keys"
	"github.com/nvu/maildeck/internal/model"
	"github.com/nvu/maildeck/internal/theme"
)

// AccountsLoadedMsg is sent when accounts have been loaded from the store.
type AccountsLoadedMsg struct {
	Accounts []model.AccountRecord
}

// OpenMailboxMsg asks the parent to open a mailbox session.
type OpenMailboxMsg struct {
	Account model.AccountRecord
	Tag     folder.Tag
}

// ImportRequestMsg asks the parent to show the import form.
type ImportRequestMsg struct{}

// DeleteRequestMsg asks the parent to delete the given accounts.
type DeleteRequestMsg struct {
	IDs []int64
}

// CheckRequestMsg asks the parent to run a mailbox check for the given
// accounts.
type CheckRequestMsg struct {
	IDs []int64
}

// CopyRequestMsg asks the parent to copy an address to the clipboard.
type CopyRequestMsg struct {
	Address string
}

// AccountReader is the slice of the store the account list needs.
type AccountReader interface {
	ListAccounts(ctx context.Context) ([]model.AccountRecord, error)
}

// Model is the account list view component. Paging, filtering, and the
// selection set live in the directory; the model adds a cursor and the
// search input on top.
type Model struct {
	store       AccountReader
	dir         *directory.Directory
	keys        *keys.KeyMap
	cursor      int
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new account list model.
func New(s AccountReader, dir *directory.Directory, k *keys.KeyMap, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search addresses..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		store:       s,
		dir:         dir,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of accounts.
func (m Model) Init() tea.Cmd {
	return m.LoadAccounts()
}

// Update handles messages for the account list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AccountsLoadedMsg:
		m.dir.SetAccounts(msg.Accounts)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.dir.SetQuery(m.searchInput.Value())
		m.cursor = 0
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.dir.SetQuery("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		items, _ := m.dir.Page()
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.dir.NextPage()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.dir.PrevPage()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if a, ok := m.cursorAccount(); ok {
			m.dir.Toggle(a.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectPage):
		m.dir.SelectPage()
		return m, nil

	case key.Matches(msg, m.keys.DeselectPage):
		m.dir.DeselectPage()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Open):
		if a, ok := m.cursorAccount(); ok {
			return m, openMailbox(a, folder.Inbox)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenJunk):
		if a, ok := m.cursorAccount(); ok {
			return m, openMailbox(a, folder.Junk)
		}
		return m, nil

	case key.Matches(msg, m.keys.Import):
		return m, func() tea.Msg { return ImportRequestMsg{} }

	case key.Matches(msg, m.keys.Delete):
		ids := m.dir.Selected()
		if len(ids) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return DeleteRequestMsg{IDs: ids} }

	case key.Matches(msg, m.keys.Check):
		ids := m.targetIDs()
		if len(ids) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return CheckRequestMsg{IDs: ids} }

	case key.Matches(msg, m.keys.Copy):
		if a, ok := m.cursorAccount(); ok {
			address := a.Address
			return m, func() tea.Msg { return CopyRequestMsg{Address: address} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadAccounts()
	}

	return m, nil
}

// Searching reports whether the search input has focus, so the parent can
// keep global single-key shortcuts out of the way.
func (m Model) Searching() bool {
	return m.searchMode
}

// targetIDs returns the selected ids, falling back to the cursor row when
// nothing is selected.
func (m Model) targetIDs() []int64 {
	if ids := m.dir.Selected(); len(ids) > 0 {
		return ids
	}
	if a, ok := m.cursorAccount(); ok {
		return []int64{a.ID}
	}
	return nil
}

// cursorAccount returns the account under the cursor on the current page.
func (m Model) cursorAccount() (model.AccountRecord, bool) {
	items, _ := m.dir.Page()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.AccountRecord{}, false
	}
	return items[m.cursor], true
}

// clampCursor keeps the cursor inside the current page after the page
// contents change.
func (m *Model) clampCursor() {
	items, _ := m.dir.Page()
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func openMailbox(a model.AccountRecord, tag folder.Tag) tea.Cmd {
	return func() tea.Msg {
		return OpenMailboxMsg{Account: a, Tag: tag}
	}
}

// View renders the account table with its pagination strip.
func (m Model) View() string {
	var sections []string

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	} else if q := m.dir.Query(); q != "" {
		sections = append(sections, theme.HelpStyle.Render(
			fmt.Sprintf("filter: %q (%d matches)", q, len(m.dir.Filtered())),
		))
	}

	items, totalPages := m.dir.Page()
	if len(items) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.renderRows(items))
	}

	sections = append(sections, m.renderPageStrip(totalPages))

	if n := m.dir.SelectedCount(); n > 0 {
		sections = append(sections, theme.HelpStyle.Render(
			fmt.Sprintf("%d selected", n),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRows renders the current page of accounts.
func (m Model) renderRows(items []model.AccountRecord) string {
	var b strings.Builder
	for i, a := range items {
		checkbox := "[ ]"
		if m.dir.IsSelected(a.ID) {
			checkbox = theme.CheckedStyle.Render("[x]")
		}

		lastCheck := a.LastCheckTime
		if lastCheck == "" {
			lastCheck = "never checked"
		}

		row := fmt.Sprintf("%s %-40s %s", checkbox, a.Address, lastCheck)
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(theme.ListItemStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPageStrip renders the compact pagination strip, ellipses included.
func (m Model) renderPageStrip(totalPages int) string {
	entries := directory.PageWindow(totalPages, m.dir.CurrentPage())

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Ellipsis {
			parts = append(parts, theme.PageStripStyle.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", e.Page)
		if e.Page == m.dir.CurrentPage() {
			parts = append(parts, theme.CurrentPageStyle.Render(label))
		} else {
			parts = append(parts, theme.PageStripStyle.Render(label))
		}
	}

	return strings.Join(parts, " ")
}

// renderEmptyState shows guidance text when no accounts match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Padding(2, 0).
		Foreground(theme.ColorGray)

	if m.dir.Query() != "" {
		return style.Render("No matching accounts.\nPress / to change the search, esc to clear it.")
	}

	return style.Render("No accounts yet.\n\nPress i to import accounts from delimited text.")
}

// LoadAccounts returns a tea.Cmd that reloads the snapshot from the store.
func (m Model) LoadAccounts() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		accounts, err := s.ListAccounts(context.Background())
		if err != nil {
			return AccountsLoadedMsg{Accounts: nil}
		}
		return AccountsLoadedMsg{Accounts: accounts}
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
