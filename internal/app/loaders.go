package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/notify"
	"github.com/five82/aperture/internal/resource"
	"github.com/five82/aperture/internal/state"
	"github.com/five82/aperture/internal/studio"
	"github.com/five82/aperture/internal/ui"
)

// activeSorted is the query every list view uses.
var activeSorted = studio.ListQuery{ActiveOnly: true, SortBy: "sortOrder", SortOrder: "asc"}

// Loaders runs the resource loaders and writes their results into the store.
// It satisfies ui.Source.
type Loaders struct {
	store    *state.Store
	client   studio.Fetcher
	reporter resource.Reporter

	services     *resource.Loader[studio.Service]
	packages     *resource.Loader[studio.Package]
	gallery      *resource.Loader[studio.GalleryImage]
	categories   *resource.Loader[studio.Category]
	slides       *resource.Loader[studio.Slide]
	testimonials *resource.Loader[studio.Testimonial]
}

var _ ui.Source = (*Loaders)(nil)

// NewLoaders builds one loader per collection, all sharing the fallback
// table and reporter. Category failures are reported by LoadGallery, which
// knows whether the images can stand in for them.
func NewLoaders(client studio.Fetcher, store *state.Store, fallbacks resource.FallbackTable, reporter resource.Reporter) *Loaders {
	if reporter == nil {
		reporter = resource.ReporterFunc(func(resource.Kind, string, error) {})
	}
	categories := func(ctx context.Context, _ studio.ListQuery) ([]studio.Category, error) {
		return client.FetchGalleryCategories(ctx)
	}
	return &Loaders{
		store:        store,
		client:       client,
		reporter:     reporter,
		services:     resource.NewLoader(resource.KindServices, client.FetchServices, activeSorted, fallbacks.Services, reporter),
		packages:     resource.NewLoader(resource.KindPackages, client.FetchPackages, activeSorted, fallbacks.Packages, reporter),
		gallery:      resource.NewLoader(resource.KindGallery, client.FetchGalleryImages, activeSorted, fallbacks.Gallery, reporter),
		categories:   resource.NewLoader(resource.KindCategories, categories, studio.ListQuery{}, fallbacks.Categories, nil),
		slides:       resource.NewLoader(resource.KindSlides, client.FetchSlides, activeSorted, fallbacks.Slides, reporter),
		testimonials: resource.NewLoader(resource.KindTestimonials, client.FetchTestimonials, activeSorted, fallbacks.Testimonials, reporter),
	}
}

// LoadHome loads the slide and testimonial carousels in parallel.
func (l *Loaders) LoadHome(ctx context.Context) {
	l.store.Begin(resource.KindSlides, resource.KindTestimonials)
	var g errgroup.Group
	g.Go(func() error {
		l.store.SetSlides(l.slides.Load(ctx))
		return nil
	})
	g.Go(func() error {
		l.store.SetTestimonials(l.testimonials.Load(ctx))
		return nil
	})
	_ = g.Wait()
}

func (l *Loaders) LoadServices(ctx context.Context) {
	l.store.Begin(resource.KindServices)
	l.store.SetServices(l.services.Load(ctx))
}

func (l *Loaders) LoadPackages(ctx context.Context) {
	l.store.Begin(resource.KindPackages)
	l.store.SetPackages(l.packages.Load(ctx))
}

// LoadGallery loads images and categories in parallel. Each result is
// applied on its own. When only the category endpoint fails, the list is
// rebuilt from the loaded images and nothing is reported; when both fail,
// the gallery failure is the only one reported.
func (l *Loaders) LoadGallery(ctx context.Context) {
	l.store.Begin(resource.KindGallery, resource.KindCategories)

	var (
		images resource.State[studio.GalleryImage]
		cats   resource.State[studio.Category]
	)
	var g errgroup.Group
	g.Go(func() error {
		images = l.gallery.Load(ctx)
		return nil
	})
	g.Go(func() error {
		cats = l.categories.Load(ctx)
		return nil
	})
	_ = g.Wait()

	if cats.Err != nil && images.Err == nil {
		if derived := derivedCategories(images.Items); len(derived) > 0 {
			cats.Items = derived
		} else {
			kind := resource.KindCategories
			l.reporter.LoadFailed(kind, kind.FailureMessage(cats.Err), cats.Err)
		}
	}
	l.store.SetGallery(images)
	l.store.SetCategories(cats)
}

// LoadServiceDetail fetches one service by slug.
func (l *Loaders) LoadServiceDetail(ctx context.Context, slug string) error {
	svc, err := l.client.FetchServiceBySlug(ctx, slug)
	l.store.SetDetail(slug, svc, err)
	return err
}

func derivedCategories(images []studio.GalleryImage) []studio.Category {
	names := catalog.Categories(catalog.Active(images))
	out := make([]studio.Category, 0, len(names))
	for _, name := range names {
		out = append(out, studio.Category(name))
	}
	return out
}

// newReporter logs a load failure and raises an error toast. Toasts are keyed
// by collection so a repeated failure replaces the previous one.
func newReporter(logger *slog.Logger, queue *notify.Queue) resource.Reporter {
	return resource.ReporterFunc(func(kind resource.Kind, message string, err error) {
		if logger != nil {
			logger.Warn("load failed", "kind", string(kind), "error", err)
		}
		if queue != nil {
			queue.Show("load:"+string(kind), notify.Error, message)
		}
	})
}
