package submit

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/aperture/internal/contracts"
	"github.com/five82/aperture/internal/studio"
)

// Source tags the surface an enquiry was sent from.
type Source string

const (
	SourceContactForm    Source = "contact_form"
	SourceCTA            Source = "cta_section"
	SourceGallery        Source = "gallery"
	SourcePackageBooking Source = "package_booking"
	SourceServiceBooking Source = "service_booking"
)

// Busy text shown when an enquiry is already being sent.
const EnquiryBusyMessage = "Please wait, submitting your enquiry..."

const submittedAtLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	enquiryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("aperture:enquiry"))
)

// Enquiry is a lead sent to /enquiries/create-enquiry.
type Enquiry struct {
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Message     string
	City        string

	Source      Source
	BookingType string

	PackageID    string
	PackageTitle string
	PackagePrice string

	ServiceID    string
	ServiceTitle string
	ServiceSlug  string
}

// PackageBooking prepares an enquiry for pkg.
func PackageBooking(pkg studio.Package) Enquiry {
	return Enquiry{
		Source:       SourcePackageBooking,
		BookingType:  "package_booking",
		ServiceType:  pkg.Title,
		PackageID:    pkg.ID.String(),
		PackageTitle: pkg.Title,
		PackagePrice: string(pkg.Price),
		Message:      fmt.Sprintf("Hello! I'm interested in booking the %q package (%s). Please let me know about availability and next steps.",
			pkg.Title, pkg.Price),
	}
}

// ServiceBooking prepares an enquiry for svc.
func ServiceBooking(svc studio.Service) Enquiry {
	return Enquiry{
		Source:       SourceServiceBooking,
		BookingType:  "service_booking",
		ServiceType:  svc.DisplayName(),
		ServiceID:    svc.ID.String(),
		ServiceTitle: svc.DisplayName(),
		ServiceSlug:  svc.Slug,
		Message:      fmt.Sprintf("Hello! I'm interested in booking a %q session.", svc.DisplayName()),
	}
}

// GalleryEnquiry prepares an enquiry from the gallery.
func GalleryEnquiry() Enquiry {
	return Enquiry{Source: SourceGallery, BookingType: "gallery_inquiry"}
}

// normalized trims every field and fills the message of call-to-action
// enquiries, which carry no free text.
func (e Enquiry) normalized() Enquiry {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.ServiceType = strings.TrimSpace(e.ServiceType)
	e.Message = strings.TrimSpace(e.Message)
	e.City = strings.TrimSpace(e.City)
	if e.Source == "" {
		e.Source = SourceContactForm
	}
	if e.Source == SourceCTA && e.Message == "" {
		e.Message = fmt.Sprintf("Inquiry from CTA section. City: %s, Service: %s", e.City, e.ServiceType)
	}
	return e
}

// Validate checks the required fields in form order, then the email shape.
func (e Enquiry) Validate() error {
	n := e.normalized()
	switch {
	case n.Name == "":
		return required("name", "Please enter your name")
	case n.Email == "":
		return required("email", "Please enter your email address")
	case n.Phone == "":
		return required("phone", "Please enter your phone number")
	case n.Source == SourceCTA && n.City == "":
		return required("city", "Please enter your city")
	case n.ServiceType == "":
		return required("serviceType", "Please select a service type")
	case n.Message == "":
		return required("message", "Please enter your message")
	case !emailPattern.MatchString(n.Email):
		return required("email", "Please enter a valid email address")
	}
	return nil
}

// SuccessMessage returns the confirmation for this enquiry's surface.
func (e Enquiry) SuccessMessage(string) string {
	switch e.Source {
	case SourcePackageBooking:
		return fmt.Sprintf("Booking request for %q sent successfully! We'll contact you soon.", e.PackageTitle)
	case SourceServiceBooking:
		return fmt.Sprintf("Booking request for %q sent successfully!", e.ServiceTitle)
	case SourceGallery:
		return "Inquiry sent!"
	default:
		return "Thank you! We'll get back to you within 24 hours."
	}
}

// FailureMessage returns the text used when the server gives no reason.
func (e Enquiry) FailureMessage() string {
	switch e.Source {
	case SourcePackageBooking, SourceServiceBooking:
		return "Failed to submit booking. Please try again."
	default:
		return "Failed to send enquiry. Please try again."
	}
}

// Request builds the wire body stamped with now.
func (e Enquiry) Request(now time.Time) studio.EnquiryRequest {
	n := e.normalized()
	return studio.EnquiryRequest{
		Name:         n.Name,
		Email:        n.Email,
		Phone:        n.Phone,
		ServiceType:  n.ServiceType,
		Message:      n.Message,
		Source:       string(n.Source),
		SubmittedAt:  now.UTC().Format(submittedAtLayout),
		City:         n.City,
		BookingType:  n.BookingType,
		PackageID:    n.PackageID,
		PackageTitle: n.PackageTitle,
		PackagePrice: n.PackagePrice,
		ServiceID:    n.ServiceID,
		ServiceTitle: n.ServiceTitle,
		ServiceSlug:  n.ServiceSlug,
	}
}

// IdempotencyKey derives a stable key from the enquiry content. The surface
// and timestamp are excluded so the same enquiry sent twice, from any form,
// maps to the same key.
func (e Enquiry) IdempotencyKey() string {
	n := e.normalized()
	parts := []string{
		strings.ToLower(n.Name),
		strings.ToLower(n.Email),
		n.Phone,
		strings.ToLower(n.ServiceType),
		n.Message,
		n.City,
		n.PackageID,
		n.ServiceID,
	}
	return uuid.NewSHA1(enquiryNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

// EnquirySender sends enquiries through w after checking the wire body
// against the enquiry contract. now stamps submittedAt.
func EnquirySender(w studio.Writer, now func() time.Time) Sender[Enquiry] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, e Enquiry) (string, error) {
		req := e.Request(now())
		if err := contracts.ValidateValue(contracts.Enquiry, req); err != nil {
			return "", fromViolation(err)
		}
		ack, err := w.CreateEnquiry(ctx, req, e.IdempotencyKey())
		if err != nil {
			return "", fmt.Errorf("create enquiry: %w", err)
		}
		return ack.Message, nil
	}
}
