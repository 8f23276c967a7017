package studio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const backendTimestampLayout = "2006-01-02 15:04:05"

// ID is a collection item identifier. The backend emits string IDs while the
// static fallback lists use small integers, so both decode into the same type.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := decodeScalar(data)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(s)
	return nil
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// Amount is a price as displayed by the studio ("25000", "₹25,000").
type Amount string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s, err := decodeScalar(data)
	if err != nil {
		return fmt.Errorf("decode amount: %w", err)
	}
	*a = Amount(s)
	return nil
}

// Category is a gallery category. /gallery/categories has been observed to
// return plain strings as well as objects carrying a name.
type Category string

// UnmarshalJSON accepts a string or an object with name, title or slug.
func (c *Category) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Name  string `json:"name"`
			Title string `json:"title"`
			Slug  string `json:"slug"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("decode category: %w", err)
		}
		*c = Category(firstNonEmpty(obj.Name, obj.Title, obj.Slug))
		return nil
	}
	s, err := decodeScalar(trimmed)
	if err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	*c = Category(s)
	return nil
}

// Service mirrors an entry of /services/get-services.
type Service struct {
	ID               ID     `json:"id"`
	Title            string `json:"title"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	CoverImage       string `json:"coverImage"`
	MainImage        string `json:"mainImage"`
	IsActive         bool   `json:"isActive"`
	SortOrder        int    `json:"sortOrder"`
	CreatedAt        string `json:"createdAt"`
}

// DisplayName prefers the title and falls back to the name, then the slug.
func (s Service) DisplayName() string {
	return firstNonEmpty(s.Title, s.Name, s.Slug)
}

// Enabled reports whether the service should be shown.
func (s Service) Enabled() bool { return s.IsActive }

// Rank returns the backend display order.
func (s Service) Rank() int { return s.SortOrder }

// Package mirrors an entry of /packages/get-packages.
type Package struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Price       Amount   `json:"price"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
	IsActive    bool     `json:"isActive"`
	SortOrder   int      `json:"sortOrder"`
}

// Enabled reports whether the package should be shown.
func (p Package) Enabled() bool { return p.IsActive }

// Rank returns the backend display order.
func (p Package) Rank() int { return p.SortOrder }

// GalleryImage mirrors an entry of /gallery/images.
type GalleryImage struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Src         string `json:"src"`
	Thumb       string `json:"thumb"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryName returns the image category used for filtering.
func (g GalleryImage) CategoryName() string { return g.Category }

// TitleText returns the image title used for sorting.
func (g GalleryImage) TitleText() string { return g.Title }

// Timestamp returns the capture date, falling back to the creation time.
func (g GalleryImage) Timestamp() time.Time {
	if t := parseTime(g.Date); !t.IsZero() {
		return t
	}
	return parseTime(g.CreatedAt)
}

// Enabled reports whether the image should be shown.
func (g GalleryImage) Enabled() bool { return g.IsActive }

// Rank returns the backend display order.
func (g GalleryImage) Rank() int { return g.SortOrder }

// Slide mirrors an entry of /slider/get-sliders.
type Slide struct {
	ID             ID     `json:"id"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Description    string `json:"description"`
	MediaURL       string `json:"mediaUrl"`
	MobileMediaURL string `json:"mobileMediaUrl"`
	MediaType      string `json:"mediaType"`
	ButtonText     string `json:"buttonText"`
	ButtonLink     string `json:"buttonLink"`
	IsActive       bool   `json:"isActive"`
	Order          int    `json:"order"`
}

// Enabled reports whether the slide should be shown.
func (s Slide) Enabled() bool { return s.IsActive }

// Rank returns the carousel position.
func (s Slide) Rank() int { return s.Order }

// Testimonial mirrors an entry of /testimonials/get-testimonials.
type Testimonial struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Service   string `json:"service"`
	Location  string `json:"location"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
}

// Enabled reports whether the testimonial should be shown. Only text
// testimonials are rendered in a terminal.
func (t Testimonial) Enabled() bool {
	return t.IsActive && (t.Type == "" || strings.EqualFold(t.Type, "text"))
}

// Rank returns the backend display order.
func (t Testimonial) Rank() int { return t.SortOrder }

// EnquiryRequest is the body of POST /enquiries/create-enquiry.
type EnquiryRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ServiceType  string `json:"serviceType"`
	Message      string `json:"message"`
	Source       string `json:"source"`
	SubmittedAt  string `json:"submittedAt"`
	City         string `json:"city,omitempty"`
	BookingType  string `json:"bookingType,omitempty"`
	PackageID    string `json:"packageId,omitempty"`
	PackageTitle string `json:"packageTitle,omitempty"`
	PackagePrice string `json:"packagePrice,omitempty"`
	ServiceID    string `json:"serviceId,omitempty"`
	ServiceTitle string `json:"serviceTitle,omitempty"`
	ServiceSlug  string `json:"serviceSlug,omitempty"`
}

// EnquiryResponse is the acknowledgement returned for a created enquiry.
type EnquiryResponse struct {
	Message string `json:"message"`
	ID      ID     `json:"id"`
}

// TestimonialRequest is the multipart body of POST /testimonials/create-testimonial.
type TestimonialRequest struct {
	Name     string
	Service  string
	Location string
	Rating   int
	Text     string
	Email    string
	Phone    string
}

// fields returns the non-empty form fields in a stable order.
func (r TestimonialRequest) fields() [][2]string {
	all := [][2]string{
		{"name", r.Name},
		{"service", r.Service},
		{"location", r.Location},
		{"text", r.Text},
		{"email", r.Email},
		{"phone", r.Phone},
	}
	out := make([][2]string, 0, len(all)+2)
	for _, kv := range all {
		if strings.TrimSpace(kv[1]) != "" {
			out = append(out, kv)
		}
	}
	if r.Rating > 0 {
		out = append(out, [2]string{"rating", strconv.Itoa(r.Rating)})
	}
	return append(out, [2]string{"type", "text"})
}

// TestimonialResponse is the acknowledgement returned for a created review.
type TestimonialResponse struct {
	Message string `json:"message"`
}

func decodeScalar(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(backendTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
