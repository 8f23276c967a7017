// Package state holds the collections loaded from the studio API.
//
// Loads run inside Bubble Tea commands, off the UI goroutine, and write
// their results into a Store; the UI renders from Snapshot. The Store uses a
// readers-writer lock and Snapshot returns copies, so a rendered view never
// shares slices with a load in progress.
//
// A failed load still writes its (fallback) state and additionally records
// LastError and bumps ConsecutiveFailures. Any successful load clears both.
// IsOffline reports two or more failures in a row, which the header shows as
// an offline badge.
//
// The zero Store is ready to use.
package state
