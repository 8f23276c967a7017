package resource

import "github.com/five82/aperture/internal/studio"

// FallbackTable holds the static lists shown when a collection fails to load.
type FallbackTable struct {
	Services     []studio.Service
	Packages     []studio.Package
	Gallery      []studio.GalleryImage
	Categories   []studio.Category
	Slides       []studio.Slide
	Testimonials []studio.Testimonial
}

// DefaultFallbacks returns the built-in table.
func DefaultFallbacks() FallbackTable {
	return FallbackTable{
		Services: []studio.Service{
			{ID: "1", Title: "Maternity Photography", Slug: "maternity", IsActive: true, SortOrder: 1},
			{ID: "2", Title: "Newborn Photography", Slug: "newborn", IsActive: true, SortOrder: 2},
			{ID: "3", Title: "Baby Photography", Slug: "baby", IsActive: true, SortOrder: 3},
			{ID: "4", Title: "Fashion Photography", Slug: "fashion", IsActive: true, SortOrder: 4},
			{ID: "5", Title: "Family Photography", Slug: "family", IsActive: true, SortOrder: 5},
			{ID: "6", Title: "Theme Photography", Slug: "theme", IsActive: true, SortOrder: 6},
			{ID: "7", Title: "Other", Slug: "other", IsActive: true, SortOrder: 7},
		},
		Packages: []studio.Package{
			{ID: "fallback-enquire", Title: "Custom Package", Price: "On request",
				Description: "Tell us about your shoot and we will put a package together.",
				IsActive:    true},
		},
		Gallery: []studio.GalleryImage{
			{ID: "fallback-gallery", Title: "Gallery unavailable", Category: "studio",
				Description: "Our portfolio could not be loaded right now.", IsActive: true},
		},
		Categories: []studio.Category{"maternity", "newborn", "baby", "fashion", "family", "theme"},
		Slides: []studio.Slide{
			{ID: "fallback-slide", Title: "Capturing Life's Precious Moments",
				Subtitle: "Maternity, newborn, baby and family photography",
				IsActive: true, Order: 1},
		},
		Testimonials: []studio.Testimonial{
			{ID: "fallback-review", Name: "Our clients", Rating: 5, Type: "text", IsActive: true,
				Text: "Reviews are taking a moment to load. Press r to try again."},
		},
	}
}
