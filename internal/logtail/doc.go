// Package logtail reads the end of the aperture log file.
//
// The TUI owns the terminal while it runs, so everything is logged to a
// file. When the UI exits with an error, the app prints the last lines of
// that file to stderr. Read seeks backwards in fixed blocks, so only the
// tail of a large file is loaded. Plain turns JSON records and tint output
// into uncoloured single-line text.
package logtail
