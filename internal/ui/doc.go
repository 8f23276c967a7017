// Package ui provides the Bubble Tea terminal interface for aperture.
//
// # Views
//
// Five views share one Model and are switched with 1-5 or tab:
//
//   - Home: hero slide carousel and testimonial carousel, both advancing
//     every CarouselInterval
//   - Services: active services with a scrollable detail pane; enter loads
//     the full service by slug
//   - Packages: packages with price and features
//   - Gallery: images filtered by category (f) and sorted (s); both choices
//     are saved to the preferences file
//   - Contact: entry point for the contact form
//
// # Data Flow
//
// The Model never talks to the network directly. Loads go through a Source,
// whose methods run inside tea.Cmd functions and write into the shared
// state.Store; the resulting loadedMsg makes the Model copy a fresh
// snapshot. A view's collections are loaded the first time it is shown and
// again whenever the user presses r.
//
// # Forms
//
// Enquiry, booking and review forms are modals built from bubbles textinput
// fields. Each enquiry form has its own submit.Pipeline, so a pending send
// on one form never blocks another. Sending runs Submit in a command; the
// submitResultMsg it returns becomes a toast, highlights the offending field
// on a validation error, and closes the form on success.
//
// # Toasts
//
// Toasts live in a notify.Queue shared with the loaders. The footer shows
// the newest one and falls back to the short key help when the queue is
// empty. Expiry is driven by the UI tick.
package ui
