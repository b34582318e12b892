package directory

// Toggle flips the selection state of a single account id.
func (d *Directory) Toggle(id int64) {
	if _, ok := d.selected[id]; ok {
		delete(d.selected, id)
		return
	}
	d.selected[id] = struct{}{}
}

// IsSelected reports whether the given id is selected.
func (d *Directory) IsSelected(id int64) bool {
	_, ok := d.selected[id]
	return ok
}

// SelectPage adds every id on the current page to the selection set.
// Selections on other pages are untouched.
func (d *Directory) SelectPage() {
	items, _ := d.Page()
	for _, a := range items {
		d.selected[a.ID] = struct{}{}
	}
}

// DeselectPage removes exactly the current page's ids from the selection
// set, leaving selections on other pages intact.
func (d *Directory) DeselectPage() {
	items, _ := d.Page()
	for _, a := range items {
		delete(d.selected, a.ID)
	}
}

// ClearSelection empties the selection set.
func (d *Directory) ClearSelection() {
	d.selected = make(map[int64]struct{})
}

// Selected returns the selected ids in snapshot order.
func (d *Directory) Selected() []int64 {
	var ids []int64
	for _, a := range d.accounts {
		if _, ok := d.selected[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// SelectedCount returns the number of selected ids.
func (d *Directory) SelectedCount() int {
	return len(d.selected)
}
