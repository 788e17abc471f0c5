// Package ui provides the terminal user interface for quayside.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a view.Engine and feeds it the
// records held by state.Store; every filtering and paging decision is made by
// the engine, and the UI only renders engine.Page() and forwards input.
//
// # Package Structure
//
//   - app.go: Model, Update/View, key routing and the Run function
//   - filterbar.go: Query and departure-date inputs
//   - table.go: Responsive container table and content layout
//   - detail.go: Detail pane backed by FetchByID
//   - pager.go: Page position, row range and page size
//   - header.go: Load status, error classification and command bar
//   - logs.go: Overlay tailing quayside's own log file
//   - help.go, keys.go: Key bindings and the help overlay
//   - theme.go, style_helpers.go, layout.go: Colors and box drawing
//
// # Event Flow
//
//  1. Run starts the program; Init schedules a tick and a snapshot read
//  2. Each tick reads state.Store; a new Generation is loaded into the engine
//  3. Query edits call SetQuery immediately and filter live
//  4. Date edits only stage a date; enter runs CommitDateSearch
//  5. n/p, s/S and row keys move through engine.Page()
//  6. Context cancellation quits the program cleanly
//
// # Key Bindings
//
//   - /: Search by ID, agency, booking or port
//   - d: Edit departure date (dd/mm/yyyy), enter to search, ctrl+x to clear
//   - n/p: Next/previous page
//   - s/S: Cycle page size
//   - j/k, g/G: Move selection
//   - enter: Open detail; esc closes it
//   - r: Reload containers
//   - L: Log overlay (v cycles level, f toggles follow)
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Exit
package ui
