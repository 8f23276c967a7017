package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/aperture/internal/submit"
)

// formID identifies the form a submission result belongs to.
type formID string

const (
	formContact formID = "contact"
	formCTA     formID = "cta"
	formPackage formID = "package"
	formService formID = "service"
	formGallery formID = "gallery"
	formReview  formID = "review"
)

// enquiryForms lists the forms that send enquiries.
var enquiryForms = []formID{formContact, formCTA, formPackage, formService, formGallery}

const (
	formWidth       = 64
	formLabelWidth  = 12
	formInputWidth  = 40
	formDefaultChar = 120
)

// formField is a text input or, when choices is set, a left/right selector.
type formField struct {
	key     string
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func newTextField(key, label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = formInputWidth
	return formField{key: key, label: label, input: ti}
}

func newChoiceField(key, label string, choices []string, selected string) formField {
	f := newTextField(key, label, "", 0)
	f.choices = choices
	f.choice = max(slices.Index(choices, selected), 0)
	return f
}

func (f formField) value() string {
	if len(f.choices) > 0 {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

// formModal collects the fields of one submission. It stays open while the
// request is pending and closes on success.
type formModal struct {
	id       formID
	title    string
	subtitle string
	fields   []formField
	focus    int

	errField string
	errText  string
	sending  bool

	submit func(values map[string]string) tea.Cmd
}

func newForm(id formID, title, subtitle string, fields []formField, submit func(map[string]string) tea.Cmd) formModal {
	f := formModal{
		id:       id,
		title:    title,
		subtitle: subtitle,
		fields:   fields,
		submit:   submit,
	}
	f.focusField(0)
	return f
}

// Update implements Modal.
func (f formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if msg.form != f.id {
			return f, nil, false
		}
		return f.handleResult(msg.result)
	case tea.KeyMsg:
		return f.handleKey(msg, keys)
	}

	if len(f.fields) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, false
}

func (f formModal) handleResult(res submit.Result) (Modal, tea.Cmd, bool) {
	switch res.Outcome {
	case submit.OutcomeBusy:
		// An earlier send from this form is still in flight; its result
		// arrives separately.
		f.sending = false
		f.errField = ""
		f.errText = res.Message
	case submit.OutcomeSucceeded:
		f.sending = false
		return f, nil, true
	case submit.OutcomeInvalid:
		f.sending = false
		f.showError(res.Field, res.Message)
	case submit.OutcomeFailed:
		f.sending = false
		f.errField = ""
		f.errText = res.Message
	}
	return f, nil, false
}

func (f formModal) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Escape):
		return f, nil, true

	case key.Matches(msg, keys.Submit):
		return f.send()

	case key.Matches(msg, keys.Confirm):
		if f.focus == len(f.fields)-1 {
			return f.send()
		}
		f.focusField(f.focus + 1)
		return f, nil, false

	case key.Matches(msg, keys.NextField):
		f.focusField((f.focus + 1) % len(f.fields))
		return f, nil, false

	case key.Matches(msg, keys.PrevField):
		f.focusField((f.focus - 1 + len(f.fields)) % len(f.fields))
		return f, nil, false
	}

	field := &f.fields[f.focus]
	if len(field.choices) > 0 {
		switch {
		case key.Matches(msg, keys.Left):
			field.choice = (field.choice - 1 + len(field.choices)) % len(field.choices)
		case key.Matches(msg, keys.Right):
			field.choice = (field.choice + 1) % len(field.choices)
		}
		return f, nil, false
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return f, cmd, false
}

// send dispatches the submission. Repeated sends while one is pending still
// reach the pipeline, which answers them as busy.
func (f formModal) send() (Modal, tea.Cmd, bool) {
	f.sending = true
	f.errField = ""
	f.errText = ""
	return f, f.submit(f.values()), false
}

func (f formModal) values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.key] = field.value()
	}
	return values
}

func (f *formModal) focusField(idx int) {
	if idx < 0 || idx >= len(f.fields) {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = idx
	f.fields[idx].input.Focus()
}

// showError highlights the named field and moves focus to it.
func (f *formModal) showError(field, message string) {
	f.errField = field
	f.errText = message
	for i, fl := range f.fields {
		if fl.key == field {
			f.focusField(i)
			return
		}
	}
}

// View implements Modal.
func (f formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", formWidth-6)))
	b.WriteString("\n")
	if f.subtitle != "" {
		b.WriteString(styles.MutedText.Render(wrap(f.subtitle, formWidth-6)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, field := range f.fields {
		label := padRight(field.label+":", formLabelWidth)
		switch {
		case field.key == f.errField:
			label = styles.DangerText.Render(label)
		case i == f.focus:
			label = styles.AccentText.Render(label)
		default:
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)

		if len(field.choices) > 0 {
			choice := "‹ " + ternary(field.value() == "", "Select", field.value()) + " ›"
			if i == f.focus {
				b.WriteString(styles.AccentText.Render(choice))
			} else {
				b.WriteString(styles.Text.Render(choice))
			}
		} else {
			b.WriteString(field.input.View())
		}
		b.WriteString("\n")

		if field.key == f.errField && f.errText != "" {
			b.WriteString(strings.Repeat(" ", formLabelWidth))
			b.WriteString(styles.DangerText.Render(f.errText))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	switch {
	case f.sending:
		b.WriteString(styles.WarningText.Render("Sending..."))
		b.WriteString("\n\n")
	case f.errField == "" && f.errText != "":
		b.WriteString(styles.DangerText.Render(wrap(f.errText, formWidth-6)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Next/Send  •  Ctrl+S: Send  •  Esc: Cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(formWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
