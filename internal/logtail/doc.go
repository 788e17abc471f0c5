// Package logtail reads the tail of quayside's own log file.
//
// # Reading
//
// Read extracts the last N lines with a ring buffer, so memory stays
// O(N) no matter how large the file has grown:
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//
// A missing file is not an error; a fresh install simply has no log yet.
//
// # Parsing
//
// The logging package writes zap's console encoding, one entry per line with
// tab-separated fields:
//
//	<time>\t<LEVEL>\t<caller>\t<message>\t<json fields>
//
// ParseLine splits such a line into an Entry. Stack traces and other
// continuation lines come back with Parsed set to false, and FilterLevel
// keeps them with the entry they belong to.
//
// The logs subcommand and the TUI log overlay both build on these helpers.
package logtail
