// Package view implements the filter-and-paginate engine behind the
// container list.
//
// # Overview
//
// An Engine owns one snapshot of records (the full set) and derives the
// filtered set from it. The filtered set is then sliced into pages. Nothing
// here performs I/O; every operation completes synchronously.
//
// # Filtering
//
// Two narrowing actions exist and they are deliberately not the same:
//
//   - SetQuery filters live: full set ∩ query ∩ staged date
//   - CommitDateSearch filters by the staged date alone, from the full set,
//     ignoring whatever query is typed
//
// SetDateFilter only stages the date. Nothing changes on screen until the
// date is committed or the query is edited.
//
// The predicate itself is Matches. The query is a case-insensitive
// substring over id, agency, load port, deliver port, discharge port and
// booking. The date compares calendar days of the departure in the record's
// own location (the containers client normalizes every record into the
// configured zone).
//
// # Pagination
//
//	state: (pageIndex, pageCount)
//	next:     pageIndex+1, no-op on the last page
//	previous: pageIndex-1, no-op on page 0
//	resize:   pageIndex = first-visible-row / newSize, then clamp
//
// pageCount is never below 1; an empty filtered set is one empty page.
// Page sizes are limited to PageSizes and anything else fails with
// ErrInvalidPageSize without touching state.
//
// # Observing changes
//
// Presentation code can either read the engine after each call (the TUI does
// this) or Subscribe to receive a Page after every transition.
package view
