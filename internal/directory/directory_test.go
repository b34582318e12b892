package directory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvu/maildeck/internal/model"
)

// makeAccounts builds n accounts with ids 1..n and addresses userN@test.com.
func makeAccounts(n int) []model.AccountRecord {
	accounts := make([]model.AccountRecord, n)
	for i := range accounts {
		accounts[i] = model.AccountRecord{
			ID:      int64(i + 1),
			Address: fmt.Sprintf("user%d@test.com", i+1),
		}
	}
	return accounts
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	d := New(10)
	d.SetAccounts([]model.AccountRecord{
		{ID: 1, Address: "Alice@Example.com"},
		{ID: 2, Address: "bob@test.com"},
		{ID: 3, Address: "carol@example.org"},
	})

	d.SetQuery("EXAMPLE")
	filtered := d.Filtered()

	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)
}

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(5))

	assert.Len(t, d.Filtered(), 5)
}

func TestPageBounds(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(25))

	items, total := d.Page()
	assert.Equal(t, 3, total)
	assert.Len(t, items, 10)

	d.GoToPage(3)
	items, _ = d.Page()
	require.Len(t, items, 5)
	assert.Equal(t, int64(21), items[0].ID)
}

func TestEmptyDirectoryHasOnePage(t *testing.T) {
	d := New(10)

	items, total := d.Page()
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, d.CurrentPage())
}

func TestPageReclampsWhenFilterNarrows(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(50))
	d.GoToPage(5)
	require.Equal(t, 5, d.CurrentPage())

	// SetQuery resets to page 1 by contract.
	d.SetQuery("user1@")
	assert.Equal(t, 1, d.CurrentPage())

	// Reclamping must also fire without user navigation: shrink the
	// snapshot while sitting on a late page.
	d.SetQuery("")
	d.GoToPage(5)
	d.SetAccounts(makeAccounts(11))
	items, total := d.Page()
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, d.CurrentPage())
	assert.Len(t, items, 1)
}

func TestDeleteDoesNotResetPageWhenStillInRange(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(25))
	d.GoToPage(2)

	// Removing one account keeps 3 pages; the page must stay put.
	d.SetAccounts(makeAccounts(24))
	assert.Equal(t, 2, d.CurrentPage())
}

func TestSetPageSizeResetsPage(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(40))
	d.GoToPage(4)

	d.SetPageSize(20)
	assert.Equal(t, 1, d.CurrentPage())
	_, total := d.Page()
	assert.Equal(t, 2, total)
}

func TestNextPrevPageClamp(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(15))

	d.PrevPage()
	assert.Equal(t, 1, d.CurrentPage())

	d.NextPage()
	d.NextPage()
	d.NextPage()
	assert.Equal(t, 2, d.CurrentPage())
}

func TestSelectionPersistsAcrossNavigationAndFilter(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(25))

	d.Toggle(3)
	d.Toggle(7)

	d.GoToPage(2)
	d.GoToPage(1)
	assert.True(t, d.IsSelected(3))
	assert.True(t, d.IsSelected(7))

	d.SetQuery("user2")
	d.SetQuery("")
	assert.True(t, d.IsSelected(3))
	assert.True(t, d.IsSelected(7))

	// Deleting an account drops its selection.
	remaining := makeAccounts(25)
	remaining = append(remaining[:2], remaining[3:]...) // remove id 3
	d.SetAccounts(remaining)
	assert.False(t, d.IsSelected(3))
	assert.True(t, d.IsSelected(7))
}

func TestSelectPageAndDeselectPage(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(25))

	d.GoToPage(2)
	d.SelectPage()
	assert.Equal(t, 10, d.SelectedCount())

	// Selections on other pages survive a page-level deselect.
	d.GoToPage(1)
	d.Toggle(1)
	d.GoToPage(2)
	d.DeselectPage()
	assert.Equal(t, 1, d.SelectedCount())
	assert.True(t, d.IsSelected(1))
}

func TestToggleFlipsMembership(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(3))

	d.Toggle(2)
	assert.True(t, d.IsSelected(2))
	d.Toggle(2)
	assert.False(t, d.IsSelected(2))
}

func TestSelectedReturnsSnapshotOrder(t *testing.T) {
	d := New(10)
	d.SetAccounts(makeAccounts(9))

	d.Toggle(7)
	d.Toggle(2)
	d.Toggle(5)

	assert.Equal(t, []int64{2, 5, 7}, d.Selected())
}
