// Package database provides SQLite-based run history for leadfinder.
//
// This package implements the HistoryDB, which stores:
//   - One run record per industry search with its batch summary
//   - Every analysis result of a run as JSON
//
// The database is a single file (via the CGO-free modernc.org/sqlite driver)
// under the XDG data directory. It backs the history command and lets the
// find command skip websites that were analyzed recently.
package database
