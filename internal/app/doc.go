// Package app is the composition root for quayside.
//
// Setup turns Options into a Runtime: it loads configuration, opens the
// rotating log file, connects the optional Redis payload cache and builds
// the container client. The TUI (Run) and the one-shot CLI commands share
// it.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> Setup()          config, logger, cache, client
//	       ├─────> prefs.Load()     theme
//	       ├─────> Loader.Start()   background FetchAll
//	       └─────> ui.Run()         TUI (blocks)
//
//	Loader goroutine:
//	  store.Begin() → source.FetchAll() → store.Finish(records, err)
//
// The record set is fetched once per session. Pressing r in the TUI calls
// Loader.Reload, which skips the payload cache so the refresh always reaches
// the API; a reload requested while a fetch is in flight is dropped.
//
// # Error Handling
//
// Configuration and logging failures are fatal and returned from Setup.
// An unreachable cache only disables caching. Fetch failures are logged and
// published to the store, where the UI shows them next to an empty list.
package app
