package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// pages is a shorthand for building expected strips: 0 means ellipsis.
func pages(ns ...int) []PageEntry {
	entries := make([]PageEntry, len(ns))
	for i, n := range ns {
		if n == 0 {
			entries[i] = PageEntry{Ellipsis: true}
		} else {
			entries[i] = PageEntry{Page: n}
		}
	}
	return entries
}

func TestPageWindowSmallCounts(t *testing.T) {
	for total := 1; total <= 7; total++ {
		for current := 1; current <= total; current++ {
			got := PageWindow(total, current)
			assert.Len(t, got, total, "total=%d current=%d", total, current)
			for i, e := range got {
				assert.False(t, e.Ellipsis, "total=%d current=%d", total, current)
				assert.Equal(t, i+1, e.Page)
			}
		}
	}
}

func TestPageWindowNearStart(t *testing.T) {
	for current := 1; current <= 3; current++ {
		assert.Equal(t, pages(1, 2, 3, 4, 0, 10), PageWindow(10, current),
			"current=%d", current)
	}
}

func TestPageWindowNearEnd(t *testing.T) {
	for current := 8; current <= 10; current++ {
		assert.Equal(t, pages(1, 0, 7, 8, 9, 10), PageWindow(10, current),
			"current=%d", current)
	}
}

func TestPageWindowMiddle(t *testing.T) {
	assert.Equal(t, pages(1, 0, 4, 5, 6, 0, 10), PageWindow(10, 5))
	assert.Equal(t, pages(1, 0, 3, 4, 5, 0, 10), PageWindow(10, 4))
	assert.Equal(t, pages(1, 0, 6, 7, 8, 0, 10), PageWindow(10, 7))
}

func TestPageWindowBoundaryBetweenBranches(t *testing.T) {
	// Eight pages: the tie-break rules put 4 in the middle branch.
	assert.Equal(t, pages(1, 2, 3, 4, 0, 8), PageWindow(8, 3))
	assert.Equal(t, pages(1, 0, 3, 4, 5, 0, 8), PageWindow(8, 4))
	assert.Equal(t, pages(1, 0, 4, 5, 6, 0, 8), PageWindow(8, 5))
	assert.Equal(t, pages(1, 0, 5, 6, 7, 8), PageWindow(8, 6))
}
