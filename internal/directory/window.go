package directory

// PageEntry is one slot in the compact pagination strip: either a page
// number or an ellipsis marker.
type PageEntry struct {
	Page     int
	Ellipsis bool
}

// ellipsis is the marker entry between non-adjacent page numbers.
var ellipsis = PageEntry{Ellipsis: true}

// pageEntry wraps a page number.
func pageEntry(n int) PageEntry {
	return PageEntry{Page: n}
}

// PageWindow produces the compact pagination strip for totalPages pages
// with currentPage active (both 1-indexed). Up to seven pages the strip is
// the full page list; beyond that the ends collapse behind an ellipsis,
// keeping a window of pages around the current one.
func PageWindow(totalPages, currentPage int) []PageEntry {
	if totalPages <= 7 {
		entries := make([]PageEntry, 0, totalPages)
		for n := 1; n <= totalPages; n++ {
			entries = append(entries, pageEntry(n))
		}
		return entries
	}

	if currentPage <= 3 {
		return []PageEntry{
			pageEntry(1), pageEntry(2), pageEntry(3), pageEntry(4),
			ellipsis,
			pageEntry(totalPages),
		}
	}

	if currentPage >= totalPages-2 {
		return []PageEntry{
			pageEntry(1),
			ellipsis,
			pageEntry(totalPages - 3), pageEntry(totalPages - 2),
			pageEntry(totalPages - 1), pageEntry(totalPages),
		}
	}

	return []PageEntry{
		pageEntry(1),
		ellipsis,
		pageEntry(currentPage - 1), pageEntry(currentPage), pageEntry(currentPage + 1),
		ellipsis,
		pageEntry(totalPages),
	}
}
