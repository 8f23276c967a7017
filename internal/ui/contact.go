package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/aperture/internal/submit"
)

func (m Model) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) || key.Matches(msg, m.keys.Book) {
		return m.openModal(m.contactForm())
	}
	return m, nil
}

func (m Model) renderContact() string {
	styles := m.theme.Styles()
	width := maxInt(m.width-6, 10)
	d := &detailBuilder{width: width}

	d.line(styles.AccentText.Bold(true).Render("Let's plan your shoot"))
	d.blank()
	d.para("Send us a message with the kind of session you have in mind and we will get back to you within 24 hours.", styles.Text.Render)

	d.line(styles.MutedText.Render("We photograph:"))
	for _, name := range m.serviceChoices() {
		d.line(styles.Text.Render("  • " + name))
	}
	d.blank()

	if p := m.enquiries[formContact]; p != nil {
		switch p.Phase() {
		case submit.Pending:
			d.line(styles.WarningText.Render("Sending your enquiry..."))
			d.blank()
		case submit.Failed:
			d.line(styles.DangerText.Render("Your last enquiry was not sent. Press enter to try again."))
			d.blank()
		}
	}

	d.line(styles.WarningText.Render("enter") + styles.MutedText.Render(": write to us") +
		strings.Repeat(" ", 3) + styles.WarningText.Render("w") + styles.MutedText.Render(": write a review"))

	return m.renderPane("Contact", d.String(), m.width, m.contentHeight(), true)
}
