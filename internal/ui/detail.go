package ui

import (
	"strings"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/studio"
)

// syncDetail sizes the detail viewport and fills it for the current
// selection.
func (m *Model) syncDetail() {
	if m.width == 0 || m.height == 0 {
		return
	}
	_, detailWidth := m.paneWidths()
	m.detail.Width = maxInt(detailWidth-2, 0)
	m.detail.Height = maxInt(m.contentHeight()-2, 0)
	m.detail.SetContent(m.detailContent(maxInt(detailWidth-4, 10)))
}

func (m Model) detailContent(width int) string {
	switch m.currentView {
	case ViewServices:
		if svc, ok := m.selectedService(); ok {
			_, loaded := m.snapshot.Details[svc.Slug]
			return m.serviceDetail(svc, loaded, width)
		}
	case ViewPackages:
		if pkg, ok := m.selectedPackage(); ok {
			return m.packageDetail(pkg, width)
		}
	case ViewGallery:
		if img, ok := m.selectedImage(); ok {
			return m.imageDetail(img, width)
		}
	}
	return ""
}

// detailBuilder writes indented detail lines.
type detailBuilder struct {
	b     strings.Builder
	width int
}

func (d *detailBuilder) line(s string) {
	d.b.WriteString(" ")
	d.b.WriteString(s)
	d.b.WriteString("\n")
}

func (d *detailBuilder) para(text string, render func(...string) string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.b.WriteString(indent(render(wrap(text, d.width)), 1))
	d.b.WriteString("\n\n")
}

func (d *detailBuilder) blank() { d.b.WriteString("\n") }

func (d *detailBuilder) String() string { return strings.TrimRight(d.b.String(), "\n") }

func (m Model) serviceDetail(svc studio.Service, loaded bool, width int) string {
	styles := m.theme.Styles()
	d := &detailBuilder{width: width}

	d.line(styles.AccentText.Bold(true).Render(svc.DisplayName()))
	d.blank()
	d.para(svc.ShortDescription, styles.Text.Render)
	d.para(svc.Description, styles.MutedText.Render)
	if !loaded && svc.Slug != "" {
		d.line(styles.FaintText.Render("enter: load full details"))
	}
	d.line(styles.WarningText.Render("b") + styles.MutedText.Render(": book this service"))
	return d.String()
}

func (m Model) packageDetail(pkg studio.Package, width int) string {
	styles := m.theme.Styles()
	d := &detailBuilder{width: width}

	title := styles.AccentText.Bold(true).Render(pkg.Title)
	if pkg.Popular {
		title += " " + styles.WarningText.Render("★ Most popular")
	}
	d.line(title)
	if price := joinNonEmpty(" · ", string(pkg.Price), pkg.Duration); price != "" {
		d.line(styles.SuccessText.Render(price))
	}
	d.blank()
	d.para(pkg.Description, styles.MutedText.Render)
	for _, feature := range pkg.Features {
		if feature = strings.TrimSpace(feature); feature != "" {
			d.line(styles.SuccessText.Render("✓ ") + styles.Text.Render(truncate(feature, width-3)))
		}
	}
	if len(pkg.Features) > 0 {
		d.blank()
	}
	d.line(styles.WarningText.Render("b") + styles.MutedText.Render(": book this package"))
	return d.String()
}

func (m Model) imageDetail(img studio.GalleryImage, width int) string {
	styles := m.theme.Styles()
	d := &detailBuilder{width: width}

	title := styles.AccentText.Bold(true).Render(ternary(img.Title != "", img.Title, "Untitled"))
	if img.Featured {
		title += " " + styles.WarningText.Render("★ Featured")
	}
	d.line(title)
	meta := catalog.CategoryLabel(img.Category)
	if ts := img.Timestamp(); !ts.IsZero() {
		meta += " · " + ts.Format("2 Jan 2006")
	}
	d.line(styles.MutedText.Render(meta))
	d.blank()
	d.para(img.Description, styles.Text.Render)
	if src := ternary(img.Src != "", img.Src, img.Thumb); src != "" {
		d.line(styles.FaintText.Render(truncate(src, width)))
		d.blank()
	}
	d.line(styles.WarningText.Render("b") + styles.MutedText.Render(": enquire about a shoot like this"))
	return d.String()
}
