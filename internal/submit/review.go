package submit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/five82/aperture/internal/contracts"
	"github.com/five82/aperture/internal/studio"
)

// ReviewBusyMessage is shown when a review is already being sent.
const ReviewBusyMessage = "Please wait, submitting your review..."

var reviewEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Review is a testimonial sent to /testimonials/create-testimonial.
type Review struct {
	Name     string
	Service  string
	Location string
	Email    string
	Phone    string
	Rating   int
	Text     string
}

func (r Review) normalized() Review {
	r.Name = strings.TrimSpace(r.Name)
	r.Service = strings.TrimSpace(r.Service)
	r.Location = strings.TrimSpace(r.Location)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Text = strings.TrimSpace(r.Text)
	return r
}

// Validate checks the required fields in form order.
func (r Review) Validate() error {
	n := r.normalized()
	switch {
	case n.Name == "":
		return required("name", "Required")
	case n.Service == "":
		return required("service", "Required")
	case n.Location == "":
		return required("location", "Required")
	case n.Email == "":
		return required("email", "Required")
	case !reviewEmailPattern.MatchString(n.Email):
		return required("email", "Invalid email")
	case n.Rating < 1 || n.Rating > 5:
		return required("rating", "Rating required")
	case n.Text == "":
		return required("text", "Review text required")
	}
	return nil
}

// SuccessMessage prefers the server's acknowledgement.
func (r Review) SuccessMessage(ack string) string {
	if ack = strings.TrimSpace(ack); ack != "" {
		return ack
	}
	return "Thank you! Your review has been submitted."
}

// FailureMessage returns the text used when the server gives no reason.
func (r Review) FailureMessage() string {
	return "Failed to submit review. Try again."
}

// Request builds the multipart body.
func (r Review) Request() studio.TestimonialRequest {
	n := r.normalized()
	return studio.TestimonialRequest{
		Name:     n.Name,
		Service:  n.Service,
		Location: n.Location,
		Rating:   n.Rating,
		Text:     n.Text,
		Email:    n.Email,
		Phone:    n.Phone,
	}
}

func (r Review) contractDoc() map[string]any {
	n := r.normalized()
	doc := map[string]any{
		"name":     n.Name,
		"service":  n.Service,
		"location": n.Location,
		"email":    n.Email,
		"rating":   n.Rating,
		"text":     n.Text,
		"type":     "text",
	}
	if n.Phone != "" {
		doc["phone"] = n.Phone
	}
	return doc
}

// ReviewSender sends reviews through w.
func ReviewSender(w studio.Writer) Sender[Review] {
	return func(ctx context.Context, r Review) (string, error) {
		if err := contracts.ValidateValue(contracts.Review, r.contractDoc()); err != nil {
			return "", fromViolation(err)
		}
		ack, err := w.CreateTestimonial(ctx, r.Request())
		if err != nil {
			return "", fmt.Errorf("create testimonial: %w", err)
		}
		return ack.Message, nil
	}
}
