package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/aperture/internal/catalog"
)

// renderHeader renders the logo, view tabs and connection status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("aperture", styles.Logo)}

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := v.String()
		if !compact {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		if v == m.currentView {
			tabs = append(tabs, styles.Selected.Padding(0, 1).Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(" "+label+" ", styles.MutedText))
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	left := strings.Join(parts, sep)
	right := m.renderStatus(styles, bg)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderStatus summarises the loads behind the current view.
func (m Model) renderStatus(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case snap.Loading():
		return bg.Render("● Loading...", styles.WarningText.Bold(true))
	case snap.IsOffline():
		return bg.Render("● OFFLINE", styles.DangerText) + bg.Space() +
			bg.Render("r to retry", styles.MutedText)
	case m.viewUsesFallback():
		return bg.Render("● Showing saved data", styles.WarningText)
	case snap.LastUpdated.IsZero():
		return bg.Render("● Connecting...", styles.MutedText)
	default:
		return bg.Render("● Online", styles.SuccessText) + bg.Space() +
			bg.Render(snap.LastUpdated.Format("15:04:05"), styles.FaintText)
	}
}

func (m Model) viewUsesFallback() bool {
	snap := m.snapshot
	switch m.currentView {
	case ViewHome:
		return snap.Slides.Fallback || snap.Testimonials.Fallback
	case ViewServices, ViewContact:
		return snap.Services.Fallback
	case ViewPackages:
		return snap.Packages.Fallback
	case ViewGallery:
		return snap.Gallery.Fallback
	}
	return false
}

// renderCommandBar renders the keys available in the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewServices:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"b", "Book"},
			{"ctrl+d/u", "Scroll"},
		}
	case ViewPackages:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"b", "Book"},
			{"ctrl+d/u", "Scroll"},
		}
	case ViewGallery:
		commands = []cmd{
			{"f", catalog.CategoryLabel(m.galleryCategory)},
			{"s", m.gallerySort.Label()},
			{"j/k", "Navigate"},
			{"b", "Enquire"},
		}
	case ViewContact:
		commands = []cmd{
			{"enter", "Write to us"},
		}
	default: // ViewHome
		commands = []cmd{
			{"[/]", "Slides"},
			{"c", "Quick enquiry"},
		}
	}
	commands = append(commands, cmd{"w", "Review"}, cmd{"r", "Retry"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderFooter shows the newest toast, or the short key help when there is
// none.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	toasts := m.notify.Active()
	if len(toasts) == 0 {
		h := m.help
		h.Styles.ShortKey = styles.AccentText
		h.Styles.ShortDesc = styles.MutedText
		h.Styles.ShortSeparator = styles.FaintText
		return styles.Footer.Width(m.width).Render(h.ShortHelpView(m.keys.ShortHelp()))
	}

	latest := toasts[len(toasts)-1]
	badge := styles.ToastStyle(latest.Level).Render(strings.ToUpper(latest.Level.String()))
	text := bg.Render(truncate(latest.Text, maxInt(m.width-20, 10)), styles.Text)
	line := badge + bg.Space() + text
	if more := len(toasts) - 1; more > 0 {
		line += bg.Spaces(2) + bg.Render(fmt.Sprintf("+%d more", more), styles.FaintText)
	}
	return styles.Footer.Width(m.width).Render(line)
}
