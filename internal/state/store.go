package state

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/aperture/internal/resource"
	"github.com/five82/aperture/internal/studio"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Services     resource.State[studio.Service]
	Packages     resource.State[studio.Package]
	Gallery      resource.State[studio.GalleryImage]
	Categories   resource.State[studio.Category]
	Slides       resource.State[studio.Slide]
	Testimonials resource.State[studio.Testimonial]

	// Details caches services loaded by slug.
	Details map[string]studio.Service

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// IsOffline returns true when the API has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Loading reports whether any collection is being fetched.
func (s Snapshot) Loading() bool {
	return s.Services.Loading || s.Packages.Loading || s.Gallery.Loading ||
		s.Categories.Loading || s.Slides.Loading || s.Testimonials.Loading
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks the given collections as loading, keeping their items.
func (s *Store) Begin(kinds ...resource.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kind := range kinds {
		switch kind {
		case resource.KindServices:
			s.snapshot.Services = resource.Begin(s.snapshot.Services)
		case resource.KindPackages:
			s.snapshot.Packages = resource.Begin(s.snapshot.Packages)
		case resource.KindGallery:
			s.snapshot.Gallery = resource.Begin(s.snapshot.Gallery)
		case resource.KindCategories:
			s.snapshot.Categories = resource.Begin(s.snapshot.Categories)
		case resource.KindSlides:
			s.snapshot.Slides = resource.Begin(s.snapshot.Slides)
		case resource.KindTestimonials:
			s.snapshot.Testimonials = resource.Begin(s.snapshot.Testimonials)
		}
	}
}

func (s *Store) SetServices(st resource.State[studio.Service]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Services = st })
}

func (s *Store) SetPackages(st resource.State[studio.Package]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Packages = st })
}

func (s *Store) SetGallery(st resource.State[studio.GalleryImage]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Gallery = st })
}

func (s *Store) SetCategories(st resource.State[studio.Category]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Categories = st })
}

func (s *Store) SetSlides(st resource.State[studio.Slide]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Slides = st })
}

func (s *Store) SetTestimonials(st resource.State[studio.Testimonial]) {
	s.apply(st.Err, func(snap *Snapshot) { snap.Testimonials = st })
}

// SetDetail caches a service loaded by slug. A failed lookup records the
// error and keeps any cached entry.
func (s *Store) SetDetail(slug string, svc *studio.Service, err error) {
	s.apply(err, func(snap *Snapshot) {
		if err != nil || svc == nil {
			return
		}
		if snap.Details == nil {
			snap.Details = make(map[string]studio.Service)
		}
		snap.Details[slug] = *svc
	})
}

// apply runs fn under the write lock. A non-nil err is recorded for
// visibility and counts towards IsOffline; a nil err resets the count.
func (s *Store) apply(err error, fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.snapshot)
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Services.Items = slices.Clone(s.snapshot.Services.Items)
	snap.Packages.Items = clonePackages(s.snapshot.Packages.Items)
	snap.Gallery.Items = slices.Clone(s.snapshot.Gallery.Items)
	snap.Categories.Items = slices.Clone(s.snapshot.Categories.Items)
	snap.Slides.Items = slices.Clone(s.snapshot.Slides.Items)
	snap.Testimonials.Items = slices.Clone(s.snapshot.Testimonials.Items)
	snap.Details = maps.Clone(s.snapshot.Details)
	return snap
}

// clonePackages also copies the feature lists, the only nested slices in
// the snapshot.
func clonePackages(items []studio.Package) []studio.Package {
	if items == nil {
		return nil
	}
	dup := make([]studio.Package, len(items))
	for i, p := range items {
		p.Features = slices.Clone(p.Features)
		dup[i] = p
	}
	return dup
}
