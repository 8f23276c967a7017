package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/studio"
)

func (m Model) services() []studio.Service {
	return catalog.Active(m.snapshot.Services.Items)
}

func (m Model) packages() []studio.Package {
	return catalog.Active(m.snapshot.Packages.Items)
}

// galleryItems is the filtered and sorted gallery.
func (m Model) galleryItems() []studio.GalleryImage {
	return catalog.Derive(catalog.Active(m.snapshot.Gallery.Items), m.galleryCategory, m.gallerySort)
}

// galleryCategories lists the categories offered by the filter. When the
// category endpoint gave nothing the images' own categories are used.
func (m Model) galleryCategories() []string {
	var out []string
	for _, c := range m.snapshot.Categories.Items {
		name := strings.TrimSpace(string(c))
		if name == "" || name == catalog.AllCategories {
			continue
		}
		out = append(out, name)
	}
	if len(out) > 0 {
		return out
	}
	return catalog.Categories(catalog.Active(m.snapshot.Gallery.Items))
}

func (m Model) selectedService() (studio.Service, bool) {
	items := m.services()
	if len(items) == 0 {
		return studio.Service{}, false
	}
	svc := items[clampRow(m.serviceRow, len(items))]
	if full, ok := m.snapshot.Details[svc.Slug]; ok {
		return full, true
	}
	return svc, true
}

func (m Model) selectedPackage() (studio.Package, bool) {
	items := m.packages()
	if len(items) == 0 {
		return studio.Package{}, false
	}
	return items[clampRow(m.packageRow, len(items))], true
}

func (m Model) selectedImage() (studio.GalleryImage, bool) {
	items := m.galleryItems()
	if len(items) == 0 {
		return studio.GalleryImage{}, false
	}
	return items[clampRow(m.galleryRow, len(items))], true
}

// Key handling

func (m Model) handleServicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if row, ok := m.moveRow(msg, m.serviceRow, len(m.services())); ok {
		m.serviceRow = row
		m.detail.GotoTop()
		m.syncDetail()
		return m, nil
	}
	if m.scrollDetail(msg) {
		return m, nil
	}
	svc, ok := m.selectedService()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		if m.source == nil || svc.Slug == "" {
			return m, nil
		}
		return m, detailCmd(m.ctx, m.source, svc.Slug)
	case key.Matches(msg, m.keys.Book):
		return m.openModal(m.serviceForm(svc))
	}
	return m, nil
}

func (m Model) handlePackagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if row, ok := m.moveRow(msg, m.packageRow, len(m.packages())); ok {
		m.packageRow = row
		m.detail.GotoTop()
		m.syncDetail()
		return m, nil
	}
	if m.scrollDetail(msg) {
		return m, nil
	}
	if key.Matches(msg, m.keys.Book) {
		if pkg, ok := m.selectedPackage(); ok {
			return m.openModal(m.packageForm(pkg))
		}
	}
	return m, nil
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if row, ok := m.moveRow(msg, m.galleryRow, len(m.galleryItems())); ok {
		m.galleryRow = row
		m.detail.GotoTop()
		m.syncDetail()
		return m, nil
	}
	if m.scrollDetail(msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		m.galleryCategory = catalog.NextCategory(m.galleryCategories(), m.galleryCategory)
		m.galleryRow = 0
		m.savePrefs()
		m.syncDetail()
	case key.Matches(msg, m.keys.CycleSort):
		m.gallerySort = m.gallerySort.Next()
		m.galleryRow = 0
		m.savePrefs()
		m.syncDetail()
	case key.Matches(msg, m.keys.Book):
		return m.openModal(m.galleryForm())
	}
	return m, nil
}

// Rendering

// paneWidths splits the width between the list and the detail pane.
func (m Model) paneWidths() (int, int) {
	list := m.width * 40 / 100
	if m.width >= LayoutExtraWideWidth {
		list = m.width * 30 / 100
	}
	return list, m.width - list
}

func (m Model) renderListDetail(listTitle string, rows []string, selected int, detailTitle string, loading bool) string {
	height := m.contentHeight()
	if len(rows) == 0 {
		msg := m.emptyMessage(loading, "Nothing to show. Press r to retry.")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	listWidth, detailWidth := m.paneWidths()
	list := m.renderPane(listTitle, m.renderRows(rows, selected, listWidth-2, height-2), listWidth, height, true)
	detail := m.renderPane(detailTitle, m.detail.View(), detailWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderRows renders rows with the selected one highlighted, scrolled so the
// selection stays visible.
func (m Model) renderRows(rows []string, selected, width, height int) string {
	if height <= 0 {
		return ""
	}
	styles := m.theme.Styles()
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		text := padRight(" "+truncate(rows[i], width-2), width)
		if i == selected {
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		lines = append(lines, styles.Text.Render(text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderServices() string {
	items := m.services()
	rows := make([]string, len(items))
	for i, svc := range items {
		rows[i] = svc.DisplayName()
	}
	title := fmt.Sprintf("Services (%d)", len(items))
	return m.renderListDetail(title, rows, m.serviceRow, "Details", m.snapshot.Services.Loading)
}

func (m Model) renderPackages() string {
	items := m.packages()
	rows := make([]string, len(items))
	for i, pkg := range items {
		row := pkg.Title
		if pkg.Price != "" {
			row += "  " + string(pkg.Price)
		}
		if pkg.Popular {
			row += "  ★"
		}
		rows[i] = row
	}
	title := fmt.Sprintf("Packages (%d)", len(items))
	return m.renderListDetail(title, rows, m.packageRow, "Package", m.snapshot.Packages.Loading)
}

func (m Model) renderGallery() string {
	items := m.galleryItems()
	rows := make([]string, len(items))
	for i, img := range items {
		rows[i] = joinNonEmpty(" · ", img.Title, catalog.CategoryLabel(img.Category))
	}
	title := fmt.Sprintf("%s · %s (%d)", catalog.CategoryLabel(m.galleryCategory), m.gallerySort.Label(), len(items))
	return m.renderListDetail(title, rows, m.galleryRow, "Photo", m.snapshot.Gallery.Loading)
}
