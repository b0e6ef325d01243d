package ledger

import (
	"time"
)

// ListFilter narrows a transaction query. All fields are optional and
// conjunctive. The zero value is the explicit "no filter supplied" variant,
// distinct from a filter that happens to match nothing.
type ListFilter struct {
	Type                 *Type
	Status               *Status
	SourceAccountID      *int64
	DestinationAccountID *int64
	StartDate            *time.Time // inclusive
	EndDate              *time.Time // inclusive
}

// Empty reports whether no filter was supplied.
func (f ListFilter) Empty() bool {
	return f == ListFilter{}
}

// SortKey is a sortable transaction column.
type SortKey string

const (
	SortAmount SortKey = "amount"
	SortDate   SortKey = "date"
	SortType   SortKey = "type"
	SortStatus SortKey = "status"
)

// SortDir is a sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Sort is a single-key sort order. The zero value selects the canonical
// default order: date ascending with id as tiebreak.
type Sort struct {
	Key SortKey
	Dir SortDir
}

// ParseSort validates caller-supplied sort parameters. An empty key selects
// the default date order and a direction supplied on its own applies to it;
// an empty direction means ascending.
func ParseSort(key, dir string) (Sort, error) {
	var s Sort

	switch SortKey(key) {
	case "", SortAmount, SortDate, SortType, SortStatus:
		s.Key = SortKey(key)
	default:
		return Sort{}, &InvalidFormatError{Field: "sort"}
	}

	switch SortDir(dir) {
	case "", SortAsc:
		s.Dir = SortAsc
	case SortDesc:
		s.Dir = SortDesc
	default:
		return Sort{}, &InvalidFormatError{Field: "direction"}
	}

	return s, nil
}

const (
	DefaultPage    = 1
	DefaultPerPage = 50
)

// Page is a 1-based pagination request. Zero values fall back to the
// defaults; pages beyond the result set yield an empty page, not an error.
type Page struct {
	Number int
	Size   int
}

// Limit returns the effective page size.
func (p Page) Limit() int {
	if p.Size <= 0 {
		return DefaultPerPage
	}

	return p.Size
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	number := p.Number
	if number < DefaultPage {
		number = DefaultPage
	}

	return (number - 1) * p.Limit()
}

// Query bundles filter, sort order and pagination for one list execution.
type Query struct {
	Filter ListFilter
	Sort   Sort
	Page   Page
}

// ListResult is one page of transactions plus the totals computed from the
// filtered, pre-pagination set.
type ListResult struct {
	Items   []*Transaction
	Page    int
	PerPage int
	Total   int64
	Pages   int
}
