// Package app is the root Bubble Tea model: view routing, the toast line,
// and the glue between the views and the directory, session controller,
// importer, checker, and store.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nvu/maildeck/internal/checker"
	"github.com/nvu/maildeck/internal/clip"
	"github.com/nvu/maildeck/internal/directory"
	"github.com/nvu/maildeck/internal/folder"
	"github.com/nvu/maildeck/internal/importer"
	"github.com/nvu/maildeck/internal/keys"
	"github.com/nvu/maildeck/internal/model"
	"github.com/nvu/maildeck/internal/session"
	"github.com/nvu/maildeck/internal/store"
	"github.com/nvu/maildeck/internal/toast"
	"github.com/nvu/maildeck/internal/ui"
	"github.com/nvu/maildeck/internal/ui/accountlist"
	helpview "github.com/nvu/maildeck/internal/ui/help"
	"github.com/nvu/maildeck/internal/ui/importform"
	"github.com/nvu/maildeck/internal/ui/mailbox"
)

// toastDuration is the default lifetime of auto-dismissing toasts.
const toastDuration = 5 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAccounts ViewState = iota
	ViewMailbox
	ViewImport
	ViewHelp
)

// toastExpiredMsg fires when the visible toast's lifetime elapses.
type toastExpiredMsg struct {
	seq uint64
}

// sessionReadyMsg reports that the session pipeline for gen has finished.
type sessionReadyMsg struct {
	gen uint64
}

// syncFailureMsg surfaces a non-fatal mailbox sync failure.
type syncFailureMsg struct {
	err error
}

// importDoneMsg carries the outcome of a finished import run.
type importDoneMsg struct {
	outcome model.ImportOutcome
	err     error
}

// deleteDoneMsg carries the tally of a bulk account deletion.
type deleteDoneMsg struct {
	deleted int
	missing int
}

// batchCheckedMsg carries the aggregate result of a bulk mailbox check.
type batchCheckedMsg struct {
	result model.BatchCheckResult
}

// copyDoneMsg reports the outcome of a clipboard write.
type copyDoneMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the persistence layer.
type Model struct {
	cfg          *model.AppConfig
	layout       ui.Layout
	store        *store.SQLiteStore
	checker      *checker.Service
	controller   *session.Controller
	toasts       *toast.Scheduler
	keys         *keys.KeyMap
	dir          *directory.Directory
	currentView  ViewState
	previousView ViewState
	accountList  accountlist.Model
	mailboxView  mailbox.Model
	importView   importform.Model
	helpView     helpview.Model
	openAccount  model.AccountRecord
	openTag      folder.Tag
	syncFailures chan error
	ready        bool
}

// New creates the root application model over the given store.
func New(cfg *model.AppConfig, s *store.SQLiteStore) Model {
	k := keys.DefaultKeyMap()
	dir := directory.New(cfg.Display.PageSize)
	svc := checker.NewService(s, cfg.Checker)

	// Buffered so a failure observed mid-pipeline never blocks the
	// session goroutine; overflow drops the notice, the log keeps it.
	syncFailures := make(chan error, 8)
	notify := cfg.Display.NotifySyncFailure

	controller := session.NewController(svc,
		session.WithClassifier(folder.Classifier{JunkTerms: cfg.Display.JunkTerms}),
		session.WithSyncFailureObserver(func(accountID int64, tag folder.Tag, err error) {
			if !notify {
				return
			}
			select {
			case syncFailures <- err:
			default:
			}
		}),
	)

	return Model{
		cfg:          cfg,
		store:        s,
		checker:      svc,
		controller:   controller,
		toasts:       toast.NewScheduler(),
		keys:         k,
		dir:          dir,
		currentView:  ViewAccounts,
		accountList:  accountlist.New(s, dir, k, 80, 24),
		mailboxView:  mailbox.New(k, 80, 24),
		importView:   importform.New(cfg.Import.Separator, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		syncFailures: syncFailures,
	}
}

// Init loads the account snapshot and arms the sync failure listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.accountList.Init(),
		m.waitForSyncFailure(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.accountList.SetSize(contentWidth, contentHeight)
		m.mailboxView.SetSize(contentWidth, contentHeight)
		m.importView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can calculate layout.
		return m.updateActiveView(msg)

	case toastExpiredMsg:
		m.toasts.Expire(msg.seq)
		return m, nil

	case syncFailureMsg:
		cmd := m.showToast(fmt.Sprintf("sync failed: %v", msg.err), toastDuration)
		return m, tea.Batch(cmd, m.waitForSyncFailure())

	case accountlist.OpenMailboxMsg:
		return m.openMailbox(msg.Account, msg.Tag)

	case sessionReadyMsg:
		m.mailboxView.SetState(m.controller.Snapshot())
		return m, nil

	case mailbox.BackMsg:
		m.controller.Close()
		m.currentView = ViewAccounts
		return m, m.accountList.LoadAccounts()

	case mailbox.SwitchFolderMsg:
		next := folder.Inbox
		if m.openTag == folder.Inbox {
			next = folder.Junk
		}
		return m.openMailbox(m.openAccount, next)

	case accountlist.ImportRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewImport
		return m, m.importView.Start()

	case importform.SubmittedMsg:
		return m, m.runImport(msg)

	case importform.CancelMsg:
		m.currentView = ViewAccounts
		return m, nil

	case importDoneMsg:
		if msg.err != nil {
			return m, m.showToast(fmt.Sprintf("import failed: %v", msg.err), toastDuration)
		}
		toastCmd := m.showToast(
			fmt.Sprintf("imported %d, failed %d", msg.outcome.SuccessCount, msg.outcome.FailedCount),
			toastDuration,
		)
		if msg.outcome.FailedCount > 0 {
			m.importView.ShowResult(msg.outcome)
		} else {
			m.currentView = ViewAccounts
		}
		return m, tea.Batch(toastCmd, m.accountList.LoadAccounts())

	case accountlist.DeleteRequestMsg:
		return m, m.deleteAccounts(msg.IDs)

	case deleteDoneMsg:
		m.dir.ClearSelection()
		text := fmt.Sprintf("deleted %d accounts", msg.deleted)
		if msg.missing > 0 {
			text = fmt.Sprintf("deleted %d accounts (%d already gone)", msg.deleted, msg.missing)
		}
		return m, tea.Batch(m.showToast(text, toastDuration), m.accountList.LoadAccounts())

	case accountlist.CheckRequestMsg:
		m.toasts.Show(fmt.Sprintf("checking %d accounts...", len(msg.IDs)), 0)
		return m, m.checkAccounts(msg.IDs)

	case batchCheckedMsg:
		toastCmd := m.showToast(
			fmt.Sprintf("checked: %d ok, %d failed", msg.result.SuccessCount, msg.result.FailedCount),
			toastDuration,
		)
		return m, tea.Batch(toastCmd, m.accountList.LoadAccounts())

	case accountlist.CopyRequestMsg:
		return m, m.copyAddress(msg.Address)

	case copyDoneMsg:
		if msg.err != nil {
			return m, m.showToast("clipboard unavailable", toastDuration)
		}
		return m, m.showToast("address copied", toastDuration)

	case tea.KeyMsg:
		// Global keys that work regardless of current view.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == ViewAccounts && !m.accountList.Searching() {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewAccounts && m.accountList.Searching() {
				break
			}
			if m.currentView == ViewImport {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view.
	return m.updateActiveView(msg)
}

// openMailbox starts a session for the account and folder and switches to
// the mailbox view. Any previous session is superseded by the new
// generation, so its in-flight results will be dropped.
func (m Model) openMailbox(account model.AccountRecord, tag folder.Tag) (tea.Model, tea.Cmd) {
	m.openAccount = account
	m.openTag = tag
	gen := m.controller.Open(account, tag)

	m.currentView = ViewMailbox
	m.mailboxView.SetState(m.controller.Snapshot())

	return m, tea.Batch(m.runSession(gen), m.mailboxView.Init())
}

// runSession executes the sync→load pipeline off the UI goroutine and
// reports back when it finishes.
func (m Model) runSession(gen uint64) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.Run(context.Background(), gen)
		return sessionReadyMsg{gen: gen}
	}
}

// waitForSyncFailure blocks on the observer channel and resolves into a
// syncFailureMsg; the handler re-arms it.
func (m Model) waitForSyncFailure() tea.Cmd {
	ch := m.syncFailures
	return func() tea.Msg {
		return syncFailureMsg{err: <-ch}
	}
}

// runImport reads the import text (inline or from a file) and pushes it
// through the importer.
func (m Model) runImport(msg importform.SubmittedMsg) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		raw := msg.Raw
		if msg.FilePath != "" {
			var err error
			raw, err = importer.ReadFile(msg.FilePath)
			if err != nil {
				return importDoneMsg{err: err}
			}
		}
		outcome := importer.Import(context.Background(), s, raw, msg.Separator)
		return importDoneMsg{outcome: outcome}
	}
}

// deleteAccounts removes the given accounts one at a time. An id that is
// already gone is tallied, not treated as a failure.
func (m Model) deleteAccounts(ids []int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		deleted, missing := 0, 0
		for _, id := range ids {
			err := s.DeleteAccount(context.Background(), id)
			switch {
			case err == nil:
				deleted++
			case errors.Is(err, store.ErrNotFound):
				missing++
			default:
				logrus.WithField("account_id", id).
					WithError(err).Error("deleting account failed")
				missing++
			}
		}
		return deleteDoneMsg{deleted: deleted, missing: missing}
	}
}

// checkAccounts runs a bulk mailbox check against the inbox.
func (m Model) checkAccounts(ids []int64) tea.Cmd {
	svc := m.checker
	return func() tea.Msg {
		result := svc.CheckAll(context.Background(), ids, folder.Inbox)
		return batchCheckedMsg{result: result}
	}
}

// copyAddress writes the address to the system clipboard.
func (m Model) copyAddress(address string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{err: clip.CopyText(address)}
	}
}

// showToast installs a toast and, unless it is sticky, schedules its
// expiry keyed on the toast's sequence number. A timer left over from a
// replaced toast expires nothing.
func (m Model) showToast(message string, d time.Duration) tea.Cmd {
	t := m.toasts.Show(message, d)
	if t.Sticky() {
		return nil
	}
	seq := t.Seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAccounts:
		m.accountList, cmd = m.accountList.Update(msg)
	case ViewMailbox:
		m.mailboxView, cmd = m.mailboxView.Update(msg)
	case ViewImport:
		m.importView, cmd = m.importView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Maildeck", m.headerStatus())
	content := m.renderContent()

	var toastText string
	if t, ok := m.toasts.Current(); ok {
		toastText = t.Message
		if t.Payload != "" {
			toastText += " " + t.Payload
		}
	}
	statusBar := m.layout.RenderStatusBar(m.keyHints(), toastText)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAccounts:
		return m.accountList.View()
	case ViewMailbox:
		return m.mailboxView.View()
	case ViewImport:
		return m.importView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerStatus returns the right-hand header segment for the active view.
func (m Model) headerStatus() string {
	if m.currentView == ViewMailbox {
		return m.controller.Snapshot().Phase.String()
	}
	return fmt.Sprintf("%d accounts", len(m.dir.Accounts()))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewMailbox:
		return "enter open | tab switch folder | j/k move | esc back"
	case ViewImport:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return "q quit | ? help | / search | space select | i import | enter open"
	}
}
