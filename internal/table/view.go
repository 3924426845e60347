// Package table keeps the glossary table's local view-state (sort order,
// pagination window, row selection) consistent while the underlying dataset
// is replaced wholesale after every server round trip.
package table

import (
	"sort"
	"strings"

	"github.com/glosso-dev/glosso/internal/glossary"
)

// Column identifies a sortable column.
type Column string

const (
	ColumnEnglish Column = "enWords"
	ColumnGerman  Column = "deWords"

	// ColumnNone is the unsorted initial state: rows render in
	// server-provided order.
	ColumnNone Column = ""
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// RowsPerPageOptions are the selectable page sizes.
var RowsPerPageOptions = []int{5, 10, 25}

// DefaultRowsPerPage is used when no explicit page size is configured.
const DefaultRowsPerPage = 10

// Row is one rendered table row: the backing entry plus the two joined
// display strings.
type Row struct {
	ID      string
	EnWords string
	DeWords string
	Entry   glossary.Entry
}

// View is the table's ephemeral view-state over the controller's current
// entry list.
type View struct {
	rows        []Row
	sortColumn  Column
	direction   Direction
	page        int
	rowsPerPage int
	selected    map[string]struct{}
}

// NewView creates an unsorted view on page 0. rowsPerPage values outside
// the preset list fall back to the default.
func NewView(rowsPerPage int) *View {
	if !isRowsPerPageOption(rowsPerPage) {
		rowsPerPage = DefaultRowsPerPage
	}
	return &View{
		direction:   Ascending,
		rowsPerPage: rowsPerPage,
		selected:    map[string]struct{}{},
	}
}

func isRowsPerPageOption(n int) bool {
	for _, option := range RowsPerPageOptions {
		if n == option {
			return true
		}
	}
	return false
}

// Reload replaces the dataset. Selected ids referring to rows no longer in
// the dataset are pruned in the same update, and the page clamps to the new
// row count.
func (v *View) Reload(entries []glossary.Entry) {
	v.rows = make([]Row, len(entries))
	ids := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		v.rows[i] = Row{
			ID:      entry.ID,
			EnWords: entry.JoinedWords(glossary.LanguageEnglish),
			DeWords: entry.JoinedWords(glossary.LanguageGerman),
			Entry:   entry.Clone(),
		}
		ids[entry.ID] = struct{}{}
	}
	for id := range v.selected {
		if _, ok := ids[id]; !ok {
			delete(v.selected, id)
		}
	}
	v.clampPage()
}

// RequestSort toggles the direction when the active column is clicked again
// and resets to ascending when a new column is chosen.
func (v *View) RequestSort(column Column) {
	if v.sortColumn == column && v.direction == Ascending {
		v.direction = Descending
		return
	}
	v.sortColumn = column
	v.direction = Ascending
}

func (v *View) SortColumn() Column {
	return v.sortColumn
}

func (v *View) SortDirection() Direction {
	return v.direction
}

func (v *View) Page() int {
	return v.page
}

func (v *View) RowsPerPage() int {
	return v.rowsPerPage
}

// SetPage moves to the requested page, clamped to the available range.
func (v *View) SetPage(page int) {
	v.page = page
	v.clampPage()
}

// SetRowsPerPage switches the page size and resets to page 0. Values
// outside the preset list are ignored.
func (v *View) SetRowsPerPage(n int) {
	if !isRowsPerPageOption(n) {
		return
	}
	v.rowsPerPage = n
	v.page = 0
}

// PageCount returns the number of pages for the current dataset, at least 1.
func (v *View) PageCount() int {
	if len(v.rows) == 0 {
		return 1
	}
	return (len(v.rows) + v.rowsPerPage - 1) / v.rowsPerPage
}

func (v *View) clampPage() {
	if v.page < 0 {
		v.page = 0
	}
	if max := v.PageCount() - 1; v.page > max {
		v.page = max
	}
}

// TotalRows returns the size of the loaded dataset.
func (v *View) TotalRows() int {
	return len(v.rows)
}

// ToggleSelect flips the selection state of the row with the given id.
// Unknown ids are ignored so the selection invariant always holds.
func (v *View) ToggleSelect(id string) {
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return
	}
	for _, row := range v.rows {
		if row.ID == id {
			v.selected[id] = struct{}{}
			return
		}
	}
}

func (v *View) IsSelected(id string) bool {
	_, ok := v.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in current row order.
func (v *View) SelectedIDs() []string {
	ids := make([]string, 0, len(v.selected))
	for _, row := range v.rows {
		if _, ok := v.selected[row.ID]; ok {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

func (v *View) SelectedCount() int {
	return len(v.selected)
}

func (v *View) ClearSelection() {
	v.selected = map[string]struct{}{}
}

// SortedRows returns the full dataset in display order.
func (v *View) SortedRows() []Row {
	rows := make([]Row, len(v.rows))
	copy(rows, v.rows)
	if v.sortColumn == ColumnNone {
		return rows
	}

	// Stable so equal keys keep server order.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].sortKey(v.sortColumn), rows[j].sortKey(v.sortColumn)
		if v.direction == Descending {
			return strings.Compare(b, a) < 0
		}
		return strings.Compare(a, b) < 0
	})
	return rows
}

func (r Row) sortKey(column Column) string {
	if column == ColumnGerman {
		return r.DeWords
	}
	return r.EnWords
}

// VisibleRows returns the current page of the sorted dataset.
func (v *View) VisibleRows() []Row {
	rows := v.SortedRows()
	start := v.page * v.rowsPerPage
	if start >= len(rows) {
		return nil
	}
	end := start + v.rowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
