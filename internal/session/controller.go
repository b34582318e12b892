// Package session drives the lifetime of one open mailbox view: trigger a
// best-effort remote sync, load the cached records, classify them by
// folder, and present them. At most one session exists at a time.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nvu/maildeck/internal/folder"
	"github.com/nvu/maildeck/internal/model"
)

// Phase is the session state machine position.
type Phase int

const (
	// Closed means no mailbox view is open.
	Closed Phase = iota

	// Opening means a view was just opened; no I/O has completed yet.
	Opening

	// Syncing means the remote sync has been issued.
	Syncing

	// Ready means the cached records are loaded and filtered.
	Ready
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Syncing:
		return "syncing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Backend is the pair of external collaborators a session consumes: the
// remote mailbox sync (a black box invoked by account and folder) and the
// cached record store.
type Backend interface {
	// TriggerMailboxSync asks the remote backend to refresh the cache
	// for one account and folder. Failures are non-fatal to the session.
	TriggerMailboxSync(ctx context.Context, accountID int64, tag folder.Tag) error

	// ListMailRecords returns every cached record for the account,
	// across all folders.
	ListMailRecords(ctx context.Context, accountID int64) ([]model.MailRecord, error)
}

// State is a snapshot of the open session.
type State struct {
	Phase     Phase
	AccountID int64
	Address   string
	Folder    folder.Tag
	Loading   bool
	Records   []model.MailRecord
}

// SyncFailureFunc observes non-fatal sync failures. Whether anything is
// shown to the user is the observer's decision; the controller itself only
// logs and proceeds with cached data.
type SyncFailureFunc func(accountID int64, tag folder.Tag, err error)

// Controller is the mailbox session state machine. It is safe for
// concurrent use: Open/Close mutate state under a lock, and every
// asynchronous completion inside Run re-checks the session generation
// before committing, so results of a superseded open are dropped rather
// than cancelled.
type Controller struct {
	mu            sync.Mutex
	backend       Backend
	classifier    folder.Classifier
	onSyncFailure SyncFailureFunc
	log           logrus.FieldLogger

	gen   uint64
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithClassifier overrides the default folder classifier.
func WithClassifier(c folder.Classifier) Option {
	return func(ctl *Controller) { ctl.classifier = c }
}

// WithSyncFailureObserver installs a hook invoked on non-fatal sync errors.
func WithSyncFailureObserver(fn SyncFailureFunc) Option {
	return func(ctl *Controller) { ctl.onSyncFailure = fn }
}

// WithLogger overrides the default logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(ctl *Controller) { ctl.log = log }
}

// NewController creates a closed session controller over the given backend.
func NewController(backend Backend, opts ...Option) *Controller {
	ctl := &Controller{
		backend: backend,
		state:   State{Phase: Closed},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Open starts a session for the given account and folder, implicitly
// discarding any previous one; the most recent open always wins. Previous
// records are cleared and loading turns on before any I/O is issued. The
// returned generation token must be passed to Run.
func (c *Controller) Open(account model.AccountRecord, tag folder.Tag) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = State{
		Phase:     Opening,
		AccountID: account.ID,
		Address:   account.Address,
		Folder:    tag,
		Loading:   true,
	}
	return c.gen
}

// Run executes the sync→load pipeline for the session generation returned
// by Open. The remote sync is best-effort: on failure it is logged (and
// reported to the observer) and the load proceeds, because previously
// cached records may still be worth displaying. A failed load commits an
// empty record list. Either way the session reaches Ready, unless a newer
// Open or a Close superseded this generation, in which case every
// completion is dropped at the commit point.
func (c *Controller) Run(ctx context.Context, gen uint64) {
	accountID, tag, ok := c.advance(gen)
	if !ok {
		return
	}

	if err := c.backend.TriggerMailboxSync(ctx, accountID, tag); err != nil {
		c.log.WithFields(logrus.Fields{
			"account_id": accountID,
			"folder":     tag,
		}).WithError(err).Warn("mailbox sync failed; serving cached records")
		if c.onSyncFailure != nil {
			c.onSyncFailure(accountID, tag, err)
		}
	}

	records, err := c.backend.ListMailRecords(ctx, accountID)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"account_id": accountID,
			"folder":     tag,
		}).WithError(err).Error("loading cached records failed")
		records = nil
	}

	filtered := make([]model.MailRecord, 0, len(records))
	for _, r := range records {
		if c.classifier.Classify(r.Folder) == tag {
			filtered = append(filtered, r)
		}
	}

	c.commit(gen, filtered)
}

// advance moves the session to Syncing and returns the pipeline's identity
// pair. It reports false when gen has been superseded.
func (c *Controller) advance(gen uint64) (int64, folder.Tag, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.state.Phase != Opening {
		return 0, "", false
	}
	c.state.Phase = Syncing
	return c.state.AccountID, c.state.Folder, true
}

// commit installs the filtered records if and only if gen still identifies
// the live session.
func (c *Controller) commit(gen uint64, records []model.MailRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.state.Phase = Ready
	c.state.Loading = false
	c.state.Records = records
}

// Close shuts the session from any phase, discarding its records and any
// in-flight pipeline results.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = State{Phase: Closed}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.state
	snapshot.Records = append([]model.MailRecord(nil), c.state.Records...)
	return snapshot
}
