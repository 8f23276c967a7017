// Package app is the composition root for aperture.
//
// # Startup
//
// Run wires the program together in a fixed order:
//
//  1. Load the .env file, then ~/.config/aperture/config.toml, then apply
//     environment and flag overrides
//  2. Open the log file (and the fluent forwarder when enabled)
//  3. Read user preferences
//  4. Build the studio client with a file-backed bearer token
//  5. Create the toast queue, the shared state.Store, the loaders, a review
//     pipeline and a constructor the UI uses to give every enquiry form its
//     own pipeline
//  6. Start the UI and block until the user quits or the context ends
//
// # Loaders
//
// Loaders implements ui.Source. Each Load method marks its collections as
// loading in the store, runs the matching resource.Loader and writes the
// result back. The home carousels and the gallery's images and categories
// are fetched concurrently with errgroup; every result is applied on its
// own so one failure never discards the other. When only the category
// endpoint fails, categories are rebuilt from the active images and no
// toast is raised.
//
// Other load failures are logged and raised as error toasts keyed by
// collection.
//
// # Failure Output
//
// The TUI draws on the alternate screen and logs to a file. If the UI
// exits with an error, the tail of the log file is copied to Options.Stderr.
package app
