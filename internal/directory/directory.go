// Package directory holds the in-memory projection of all known accounts
// and derives the filtered, paged view the account list renders.
package directory

import (
	"strings"

	"github.com/nvu/maildeck/internal/model"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// Directory owns the account snapshot, the search query, the current page,
// and the selection set. All mutations go through its methods; the Bubble
// Tea runtime delivers messages on a single goroutine, so no lock is held.
type Directory struct {
	accounts []model.AccountRecord
	query    string
	page     int
	pageSize int
	selected map[int64]struct{}
}

// New creates an empty directory with the given page size.
func New(pageSize int) *Directory {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Directory{
		page:     1,
		pageSize: pageSize,
		selected: make(map[int64]struct{}),
	}
}

// SetAccounts replaces the snapshot with a fresh load from the store.
// Selections for ids that no longer exist are dropped; everything else
// persists. The current page is reclamped against the new result set.
func (d *Directory) SetAccounts(accounts []model.AccountRecord) {
	d.accounts = accounts

	known := make(map[int64]struct{}, len(accounts))
	for _, a := range accounts {
		known[a.ID] = struct{}{}
	}
	for id := range d.selected {
		if _, ok := known[id]; !ok {
			delete(d.selected, id)
		}
	}

	d.clampPage()
}

// Accounts returns the full unfiltered snapshot.
func (d *Directory) Accounts() []model.AccountRecord {
	return d.accounts
}

// SetQuery installs a new search query and resets to the first page.
func (d *Directory) SetQuery(query string) {
	d.query = query
	d.page = 1
}

// Query returns the current search query.
func (d *Directory) Query() string {
	return d.query
}

// SetPageSize changes the page size and resets to the first page.
func (d *Directory) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	d.pageSize = size
	d.page = 1
}

// Filtered returns the accounts whose address contains the query,
// case-insensitively. An empty query matches all accounts.
func (d *Directory) Filtered() []model.AccountRecord {
	if d.query == "" {
		return d.accounts
	}

	needle := strings.ToLower(d.query)
	var out []model.AccountRecord
	for _, a := range d.accounts {
		if strings.Contains(strings.ToLower(a.Address), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Page returns the current page's accounts and the total page count.
// The page is reclamped first, so a shrunken result set can never leave
// the directory pointing past the end.
func (d *Directory) Page() ([]model.AccountRecord, int) {
	d.clampPage()

	filtered := d.Filtered()
	total := totalPages(len(filtered), d.pageSize)

	start := (d.page - 1) * d.pageSize
	if start >= len(filtered) {
		return nil, total
	}
	end := start + d.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total
}

// CurrentPage returns the current 1-based page number after reclamping.
func (d *Directory) CurrentPage() int {
	d.clampPage()
	return d.page
}

// GoToPage navigates to the given page, clamped into the valid range.
func (d *Directory) GoToPage(page int) {
	d.page = page
	d.clampPage()
}

// NextPage advances one page, clamped at the last page.
func (d *Directory) NextPage() {
	d.GoToPage(d.page + 1)
}

// PrevPage goes back one page, clamped at the first page.
func (d *Directory) PrevPage() {
	d.GoToPage(d.page - 1)
}

// clampPage forces the current page into [1, totalPages].
func (d *Directory) clampPage() {
	total := totalPages(len(d.Filtered()), d.pageSize)
	if d.page > total {
		d.page = total
	}
	if d.page < 1 {
		d.page = 1
	}
}

// totalPages is max(1, ceil(n/pageSize)); an empty result set still has
// one (empty) page.
func totalPages(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
