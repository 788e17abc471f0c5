package view

import (
	"errors"
	"fmt"
	"slices"

	"github.com/five82/quayside/internal/containers"
)

// PageSizes lists the page sizes a view may use.
var PageSizes = []int{10, 20, 30, 40, 50}

// DefaultPageSize is the page size of a new Engine.
const DefaultPageSize = 10

// ErrInvalidPageSize is returned by SetPageSize for values outside PageSizes.
var ErrInvalidPageSize = errors.New("invalid page size")

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// Page is a read-only snapshot of the engine's visible state.
type Page struct {
	Rows     []containers.Record
	Index    int // zero-based
	Count    int // at least 1
	Size     int
	Filtered int
	Total    int
	Query    string
	Date     *Date // staged date filter, nil when unset
	Applied  *Date // date the filtered set was built with, nil when none
}

// DatePending reports whether the staged date differs from the one the
// filtered set was built with.
func (p Page) DatePending() bool {
	switch {
	case p.Date == nil:
		return false
	case p.Applied == nil:
		return true
	default:
		return !p.Date.Equal(*p.Applied)
	}
}

// HasPrevious reports whether a previous page exists.
func (p Page) HasPrevious() bool { return p.Index > 0 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Index < p.Count-1 }

// Engine holds the full record set and derives a filtered, paginated view of
// it. It is not safe for concurrent use: callers drive it from a single event
// loop.
type Engine struct {
	full      []containers.Record
	filtered  []containers.Record
	query     string
	date      *Date
	applied   *Date
	pageIndex int
	pageSize  int

	observers  []observer
	observerID int
}

type observer struct {
	id int
	fn func(Page)
}

// New returns an empty engine with the default page size.
func New() *Engine {
	return &Engine{
		filtered: []containers.Record{},
		pageSize: DefaultPageSize,
	}
}

// Load replaces the full set, re-applies the current query and staged date,
// and returns to the first page. Calling it again supersedes all prior data.
func (e *Engine) Load(records []containers.Record) {
	e.full = slices.Clone(records)
	e.refilter(e.query, e.date)
	e.pageIndex = 0
	e.notify()
}

// SetQuery updates the text query and live-filters the full set by the query
// intersected with the staged date. The page index is kept unless it falls
// out of range.
func (e *Engine) SetQuery(text string) {
	e.query = text
	e.refilter(text, e.date)
	e.clampPage()
	e.notify()
}

// SetDateFilter stages a date (nil clears it). The filtered set is not
// recomputed until CommitDateSearch or the next SetQuery.
func (e *Engine) SetDateFilter(d *Date) {
	if d == nil {
		e.date = nil
	} else {
		staged := *d
		e.date = &staged
	}
	e.notify()
}

// CommitDateSearch narrows the full set by the staged date alone, ignoring
// the text query. With no staged date it does nothing.
func (e *Engine) CommitDateSearch() {
	if e.date == nil {
		return
	}
	e.refilter("", e.date)
	e.clampPage()
	e.notify()
}

// ClearDateFilter drops the staged date. Like SetDateFilter it leaves the
// filtered set alone.
func (e *Engine) ClearDateFilter() {
	e.SetDateFilter(nil)
}

// NextPage advances one page. It is a no-op on the last page.
func (e *Engine) NextPage() {
	if e.pageIndex >= e.PageCount()-1 {
		return
	}
	e.pageIndex++
	e.notify()
}

// PreviousPage goes back one page. It is a no-op on the first page.
func (e *Engine) PreviousPage() {
	if e.pageIndex <= 0 {
		return
	}
	e.pageIndex--
	e.notify()
}

// SetPageIndex jumps to page i, clamped to the valid range.
func (e *Engine) SetPageIndex(i int) {
	prev := e.pageIndex
	e.pageIndex = i
	e.clampPage()
	if e.pageIndex != prev {
		e.notify()
	}
}

// SetPageSize changes the page size, keeping the first row of the current
// page visible. Sizes outside PageSizes are rejected and leave the engine
// unchanged.
func (e *Engine) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidPageSize, size, PageSizes)
	}
	first := e.pageIndex * e.pageSize
	e.pageSize = size
	e.pageIndex = first / size
	e.clampPage()
	e.notify()
	return nil
}

// CurrentPageRows returns a copy of the rows on the current page.
func (e *Engine) CurrentPageRows() []containers.Record {
	start := e.pageIndex * e.pageSize
	if start >= len(e.filtered) {
		return []containers.Record{}
	}
	end := min(start+e.pageSize, len(e.filtered))
	return slices.Clone(e.filtered[start:end])
}

// PageCount is ceil(filtered/pageSize), and 1 for an empty filtered set.
func (e *Engine) PageCount() int {
	n := len(e.filtered)
	if n == 0 {
		return 1
	}
	return (n + e.pageSize - 1) / e.pageSize
}

// PageIndex returns the zero-based current page.
func (e *Engine) PageIndex() int { return e.pageIndex }

// PageSize returns the current page size.
func (e *Engine) PageSize() int { return e.pageSize }

// Query returns the current text query.
func (e *Engine) Query() string { return e.query }

// DateFilter returns a copy of the staged date, or nil.
func (e *Engine) DateFilter() *Date {
	if e.date == nil {
		return nil
	}
	d := *e.date
	return &d
}

// AppliedDate returns a copy of the date the filtered set was last built
// with, or nil. It lags DateFilter until the staged date is applied.
func (e *Engine) AppliedDate() *Date {
	if e.applied == nil {
		return nil
	}
	d := *e.applied
	return &d
}

// FilteredLen returns the size of the filtered set.
func (e *Engine) FilteredLen() int { return len(e.filtered) }

// TotalLen returns the size of the full set.
func (e *Engine) TotalLen() int { return len(e.full) }

// Filtered returns a copy of the whole filtered set.
func (e *Engine) Filtered() []containers.Record { return slices.Clone(e.filtered) }

// CanPreviousPage reports whether PreviousPage would move.
func (e *Engine) CanPreviousPage() bool { return e.pageIndex > 0 }

// CanNextPage reports whether NextPage would move.
func (e *Engine) CanNextPage() bool { return e.pageIndex < e.PageCount()-1 }

// Page returns a snapshot of the visible state.
func (e *Engine) Page() Page {
	return Page{
		Rows:     e.CurrentPageRows(),
		Index:    e.pageIndex,
		Count:    e.PageCount(),
		Size:     e.pageSize,
		Filtered: len(e.filtered),
		Total:    len(e.full),
		Query:    e.query,
		Date:     e.DateFilter(),
		Applied:  e.AppliedDate(),
	}
}

// Subscribe registers fn to run after every state change. The returned func
// removes the subscription.
func (e *Engine) Subscribe(fn func(Page)) (cancel func()) {
	e.observerID++
	id := e.observerID
	e.observers = append(e.observers, observer{id: id, fn: fn})
	return func() {
		e.observers = slices.DeleteFunc(e.observers, func(o observer) bool { return o.id == id })
	}
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	page := e.Page()
	// Observers may cancel themselves or others while being notified.
	for _, o := range slices.Clone(e.observers) {
		o.fn(page)
	}
}

func (e *Engine) refilter(query string, date *Date) {
	e.filtered = e.filter(query, date)
	e.applied = nil
	if date != nil {
		d := *date
		e.applied = &d
	}
}

func (e *Engine) filter(query string, date *Date) []containers.Record {
	out := make([]containers.Record, 0, len(e.full))
	for _, r := range e.full {
		if Matches(r, query, date) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) clampPage() {
	last := e.PageCount() - 1
	if e.pageIndex > last {
		e.pageIndex = last
	}
	if e.pageIndex < 0 {
		e.pageIndex = 0
	}
}
