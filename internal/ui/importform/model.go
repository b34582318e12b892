// Package importform is the credential import dialog: paste a delimited
// block or point at a file, pick the separator, submit.
package importform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/maildeck/internal/model"
	"github.com/nvu/maildeck/internal/theme"
)

// Source selects where the import text comes from.
const (
	sourcePaste = "paste"
	sourceFile  = "file"
)

// SubmittedMsg carries the filled-in form to the parent. Exactly one of
// Raw and FilePath is set.
type SubmittedMsg struct {
	Raw       string
	FilePath  string
	Separator string
}

// CancelMsg is dispatched when the user leaves the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	source    string
	raw       string
	filePath  string
	separator string
}

// Model is the Bubble Tea model for the import form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	outcome *model.ImportOutcome
	width   int
	height  int
}

// New creates a new import form model.
func New(defaultSeparator string, width, height int) Model {
	return Model{
		fb: &formBindings{
			source:    sourcePaste,
			separator: defaultSeparator,
		},
		width:  width,
		height: height,
	}
}

// Start resets the form for a new import, keeping the separator from the
// previous run.
func (m *Model) Start() tea.Cmd {
	m.fb.source = sourcePaste
	m.fb.raw = ""
	m.fb.filePath = ""
	m.outcome = nil
	m.form = m.buildForm()
	return m.form.Init()
}

// ShowResult switches the form into its result pane, listing the failed
// lines of the finished import.
func (m *Model) ShowResult(outcome model.ImportOutcome) {
	m.outcome = &outcome
	m.form = nil
}

// Update handles messages for the import form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.outcome != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc", "enter", "q":
				return m, func() tea.Msg { return CancelMsg{} }
			}
		}
		return m, nil
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form or, after a finished import, the result pane.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	if m.outcome != nil {
		return m.renderResult(titleStyle)
	}

	if m.form == nil {
		return ""
	}

	content := titleStyle.Render("Import Accounts") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// renderResult lists the import counts and every failed line.
func (m Model) renderResult(titleStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import Result"))
	b.WriteString("\n")
	b.WriteString(theme.ResultStyle(true).Render(
		fmt.Sprintf("imported %d", m.outcome.SuccessCount)),
	)
	b.WriteString("  ")
	b.WriteString(theme.ResultStyle(m.outcome.FailedCount == 0).Render(
		fmt.Sprintf("failed %d", m.outcome.FailedCount)),
	)
	b.WriteString("\n\n")

	for _, line := range m.outcome.FailedLines {
		b.WriteString(theme.ListItemStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("esc back"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source").
				Options(
					huh.NewOption("Paste text", sourcePaste),
					huh.NewOption("Read from file", sourceFile),
				).
				Value(&m.fb.source),
			huh.NewText().
				Title("Accounts").
				Placeholder("address----password----client_id----refresh_token").
				Value(&m.fb.raw),
			huh.NewInput().
				Title("File path").
				Placeholder("used when source is a file").
				Value(&m.fb.filePath),
			huh.NewInput().
				Title("Separator").
				Value(&m.fb.separator).
				Validate(validateSeparator),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmittedMsg{Separator: m.fb.separator}
	if m.fb.source == sourceFile {
		msg.FilePath = strings.TrimSpace(m.fb.filePath)
	} else {
		msg.Raw = m.fb.raw
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateSeparator(s string) error {
	if s == "" {
		return fmt.Errorf("separator is required")
	}
	return nil
}
