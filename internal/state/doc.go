// Package state hands fetch results from the loader goroutine to the UI.
//
// # Overview
//
// The record fetch is the only operation that leaves the UI event loop. The
// loader runs it on its own goroutine and publishes the outcome here; the UI
// reads copies on its tick and feeds new generations into the view engine.
//
//	Loader goroutine:              UI (Bubble Tea loop):
//	┌──────────────────┐           ┌──────────────────────┐
//	│ store.Begin()    │           │ tick                 │
//	│ FetchAll(ctx)    │           │ store.Snapshot()     │
//	│ store.Finish()   │──────────→│ new Generation?      │
//	└──────────────────┘  (mutex)  │   engine.Load(...)   │
//	                               └──────────────────────┘
//
// # Finish Semantics
//
//	store.Finish(records, nil)
//	→ Records = records, LastError = nil, Generation++
//
//	store.Finish(nil, err)
//	→ Records = nil, LastError = err, Generation++
//
// A failed load never leaves earlier records behind. The UI shows an empty
// list with the error instead.
//
// # Copying
//
// Finish and Snapshot copy the record slice and Snapshot re-wraps the error,
// so nothing the UI holds aliases the store.
//
// The zero Store is ready to use.
package state
