// Package resource loads remote collections and substitutes fallback data
// when a load fails.
package resource

import (
	"context"
	"slices"
	"time"

	"github.com/five82/aperture/internal/studio"
)

// Kind names a remote collection.
type Kind string

const (
	KindServices     Kind = "services"
	KindPackages     Kind = "packages"
	KindGallery      Kind = "gallery"
	KindCategories   Kind = "categories"
	KindSlides       Kind = "slides"
	KindTestimonials Kind = "testimonials"
)

// FailureMessage returns the notification text for a failed load of k.
// Packages surface the server's message when it sent one.
func (k Kind) FailureMessage(err error) string {
	switch k {
	case KindServices:
		return "Failed to load services"
	case KindPackages:
		return studio.UserMessage(err, "Failed to load packages. Please try again.")
	case KindGallery:
		return "Failed to load gallery"
	case KindCategories:
		return "Failed to load gallery categories"
	case KindSlides:
		return "Failed to load slides"
	case KindTestimonials:
		return "Failed to load testimonials"
	default:
		return "Failed to load " + string(k)
	}
}

// State is the observable result of a load.
type State[T any] struct {
	Items   []T
	Loading bool
	// Err is the last load failure; Items then holds fallback data.
	Err       error
	Fallback  bool
	UpdatedAt time.Time
}

// Begin marks a reload in progress while keeping the previous items visible.
func Begin[T any](prev State[T]) State[T] {
	prev.Loading = true
	return prev
}

// Reporter receives load failures.
type Reporter interface {
	LoadFailed(kind Kind, message string, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(kind Kind, message string, err error)

func (f ReporterFunc) LoadFailed(kind Kind, message string, err error) { f(kind, message, err) }

// FetchFunc performs the network read for one collection.
type FetchFunc[T any] func(ctx context.Context, query studio.ListQuery) ([]T, error)

// Loader fetches one collection. It keeps no state between calls: every Load
// performs exactly one fetch and there is no caching or de-duplication.
type Loader[T any] struct {
	kind     Kind
	fetch    FetchFunc[T]
	query    studio.ListQuery
	fallback []T
	reporter Reporter
	now      func() time.Time
}

// NewLoader builds a Loader. A nil reporter discards failures.
func NewLoader[T any](kind Kind, fetch FetchFunc[T], query studio.ListQuery, fallback []T, reporter Reporter) *Loader[T] {
	if reporter == nil {
		reporter = ReporterFunc(func(Kind, string, error) {})
	}
	return &Loader[T]{
		kind:     kind,
		fetch:    fetch,
		query:    query,
		fallback: fallback,
		reporter: reporter,
		now:      time.Now,
	}
}

// Load fetches the collection. On failure the fallback list is returned with
// Err set and the failure is reported once.
func (l *Loader[T]) Load(ctx context.Context) State[T] {
	items, err := l.fetch(ctx, l.query)
	if err != nil {
		l.reporter.LoadFailed(l.kind, l.kind.FailureMessage(err), err)
		return State[T]{
			Items:     slices.Clone(l.fallback),
			Err:       err,
			Fallback:  true,
			UpdatedAt: l.now(),
		}
	}
	if items == nil {
		items = []T{}
	}
	return State[T]{Items: items, UpdatedAt: l.now()}
}
