package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/studio"
)

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevSlide):
		m.slideIdx--
		m.lastAdvance = time.Now()
	case key.Matches(msg, m.keys.NextSlide):
		m.slideIdx++
		m.lastAdvance = time.Now()
	case key.Matches(msg, m.keys.Enquire):
		return m.openModal(m.ctaForm())
	}
	return m, nil
}

// wrapIndex maps a free-running carousel counter onto n items.
func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (m Model) currentSlide() (studio.Slide, int, bool) {
	slides := catalog.Active(m.snapshot.Slides.Items)
	if len(slides) == 0 {
		return studio.Slide{}, 0, false
	}
	idx := wrapIndex(m.slideIdx, len(slides))
	return slides[idx], idx, true
}

func (m Model) currentTestimonial() (studio.Testimonial, int, bool) {
	items := catalog.Active(m.snapshot.Testimonials.Items)
	if len(items) == 0 {
		return studio.Testimonial{}, 0, false
	}
	idx := wrapIndex(m.testimonialIdx, len(items))
	return items[idx], idx, true
}

// renderHome renders the hero carousel above the testimonial carousel.
func (m Model) renderHome() string {
	height := m.contentHeight()
	heroHeight := height / 2
	quoteHeight := height - heroHeight
	inner := maxInt(m.width-6, 10)

	hero := m.renderPane("Featured", m.heroContent(inner), m.width, heroHeight, true)
	quotes := m.renderPane("What our clients say", m.testimonialContent(inner), m.width, quoteHeight, false)
	return hero + "\n" + quotes
}

func (m Model) heroContent(width int) string {
	styles := m.theme.Styles()
	slide, idx, ok := m.currentSlide()
	if !ok {
		return m.emptyMessage(m.snapshot.Slides.Loading, "No slides to show")
	}

	var b strings.Builder
	b.WriteString(" " + styles.AccentText.Bold(true).Render(truncate(slide.Title, width)))
	b.WriteString("\n")
	if slide.Subtitle != "" {
		b.WriteString(" " + styles.Text.Render(truncate(slide.Subtitle, width)))
		b.WriteString("\n")
	}
	if slide.Description != "" {
		b.WriteString("\n")
		b.WriteString(indent(styles.MutedText.Render(wrap(slide.Description, width)), 1))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	cta := ternary(slide.ButtonText != "", slide.ButtonText, "Book a session")
	b.WriteString(" " + styles.WarningText.Render("c") + styles.MutedText.Render(": "+cta))
	b.WriteString("\n\n")
	b.WriteString(" " + dots(idx, len(catalog.Active(m.snapshot.Slides.Items)), styles))
	return b.String()
}

func (m Model) testimonialContent(width int) string {
	styles := m.theme.Styles()
	t, idx, ok := m.currentTestimonial()
	if !ok {
		return m.emptyMessage(m.snapshot.Testimonials.Loading, "No reviews yet. Press w to write the first one.")
	}

	var b strings.Builder
	b.WriteString(" " + styles.WarningText.Render(stars(t.Rating)))
	b.WriteString("\n\n")
	b.WriteString(indent(styles.Text.Italic(true).Render(wrap("“"+strings.TrimSpace(t.Text)+"”", width)), 1))
	b.WriteString("\n\n")

	who := t.Name
	if meta := joinNonEmpty(" · ", t.Service, t.Location); meta != "" {
		who += ", " + meta
	}
	b.WriteString(" " + styles.MutedText.Render("- "+who))
	b.WriteString("\n\n")
	b.WriteString(" " + dots(idx, len(catalog.Active(m.snapshot.Testimonials.Items)), styles))
	return b.String()
}

// emptyMessage is shown in place of a collection that has no items.
func (m Model) emptyMessage(loading bool, text string) string {
	styles := m.theme.Styles()
	if loading {
		return " " + styles.WarningText.Render("Loading...")
	}
	return " " + styles.MutedText.Render(text)
}

func dots(current, total int, styles Styles) string {
	if total <= 1 {
		return ""
	}
	parts := make([]string, total)
	for i := range parts {
		if i == current {
			parts[i] = styles.AccentText.Render("●")
		} else {
			parts[i] = styles.FaintText.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
