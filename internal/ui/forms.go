package ui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/studio"
	"github.com/five82/aperture/internal/submit"
)

const otherService = "Other"

// submitResultMsg carries the terminal outcome of one submission.
type submitResultMsg struct {
	form   formID
	result submit.Result
}

func submitCmd[P submit.Payload](ctx context.Context, form formID, pipeline *submit.Pipeline[P], payload P) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{form: form, result: pipeline.Submit(ctx, payload)}
	}
}

// serviceChoices lists the service names offered by the enquiry forms,
// always ending with "Other".
func (m Model) serviceChoices() []string {
	var names []string
	for _, svc := range catalog.Active(m.snapshot.Services.Items) {
		if name := svc.DisplayName(); name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if !slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, otherService) }) {
		names = append(names, otherService)
	}
	return names
}

func contactFields() []formField {
	return []formField{
		newTextField("name", "Name", "Your full name", formDefaultChar),
		newTextField("email", "Email", "you@example.com", formDefaultChar),
		newTextField("phone", "Phone", "+91 98765 43210", 20),
	}
}

func (m Model) enquiryForm(id formID, title, subtitle string, base submit.Enquiry, extra ...formField) formModal {
	fields := append(contactFields(), extra...)
	return newForm(id, title, subtitle, fields, func(values map[string]string) tea.Cmd {
		return submitCmd(m.ctx, id, m.enquiries[id], enquiryFrom(base, values))
	})
}

// enquiryFrom copies the form values over base. Fields the form did not
// show keep base's value.
func enquiryFrom(base submit.Enquiry, values map[string]string) submit.Enquiry {
	e := base
	set := func(dst *string, key string) {
		if v, ok := values[key]; ok {
			*dst = v
		}
	}
	set(&e.Name, "name")
	set(&e.Email, "email")
	set(&e.Phone, "phone")
	set(&e.City, "city")
	set(&e.ServiceType, "serviceType")
	set(&e.Message, "message")
	return e
}

func (m Model) contactForm() formModal {
	return m.enquiryForm(formContact, "Get in touch",
		"Tell us about the shoot you have in mind. We reply within 24 hours.",
		submit.Enquiry{Source: submit.SourceContactForm},
		newChoiceField("serviceType", "Service", m.serviceChoices(), ""),
		newTextField("message", "Message", "Dates, location, ideas...", 1000),
	)
}

func (m Model) ctaForm() formModal {
	return m.enquiryForm(formCTA, "Book a session",
		"Leave your details and we will call you back.",
		submit.Enquiry{Source: submit.SourceCTA},
		newTextField("city", "City", "Your city", 60),
		newChoiceField("serviceType", "Service", m.serviceChoices(), ""),
	)
}

func (m Model) packageForm(pkg studio.Package) formModal {
	base := submit.PackageBooking(pkg)
	message := newTextField("message", "Message", "", 1000)
	message.input.SetValue(base.Message)
	return m.enquiryForm(formPackage, "Book "+pkg.Title,
		strings.TrimSpace(string(pkg.Price)+" "+pkg.Duration),
		base, message)
}

func (m Model) serviceForm(svc studio.Service) formModal {
	base := submit.ServiceBooking(svc)
	message := newTextField("message", "Message", "", 1000)
	message.input.SetValue(base.Message)
	return m.enquiryForm(formService, "Book "+svc.DisplayName(), svc.ShortDescription, base, message)
}

func (m Model) galleryForm() formModal {
	return m.enquiryForm(formGallery, "Enquire about a shoot",
		"Liked what you saw? Tell us what you are looking for.",
		submit.GalleryEnquiry(),
		newChoiceField("serviceType", "Service", m.serviceChoices(), ""),
		newTextField("message", "Message", "What caught your eye?", 1000),
	)
}

func (m Model) reviewForm() formModal {
	fields := []formField{
		newTextField("name", "Name", "Your name", formDefaultChar),
		newChoiceField("service", "Service", m.serviceChoices(), ""),
		newTextField("location", "Location", "City", 60),
		newTextField("email", "Email", "Not published", formDefaultChar),
		newTextField("phone", "Phone", "Optional", 20),
		newTextField("rating", "Rating", "1-5", 1),
		newTextField("text", "Review", "How was your experience?", 1000),
	}
	return newForm(formReview, "Write a review", "Share your experience with the studio.", fields,
		func(values map[string]string) tea.Cmd {
			return submitCmd(m.ctx, formReview, m.reviews, reviewFrom(values))
		})
}

// reviewFrom builds a review; an unparsable rating is left at zero so
// validation reports it.
func reviewFrom(values map[string]string) submit.Review {
	rating, err := strconv.Atoi(strings.TrimSpace(values["rating"]))
	if err != nil {
		rating = 0
	}
	return submit.Review{
		Name:     values["name"],
		Service:  values["service"],
		Location: values["location"],
		Email:    values["email"],
		Phone:    values["phone"],
		Rating:   rating,
		Text:     values["text"],
	}
}
