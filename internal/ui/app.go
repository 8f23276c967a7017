package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/aperture/internal/catalog"
	"github.com/five82/aperture/internal/notify"
	"github.com/five82/aperture/internal/prefs"
	"github.com/five82/aperture/internal/state"
	"github.com/five82/aperture/internal/submit"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewServices
	ViewPackages
	ViewGallery
	ViewContact
)

var viewOrder = []View{ViewHome, ViewServices, ViewPackages, ViewGallery, ViewContact}

func (v View) String() string {
	switch v {
	case ViewServices:
		return "Services"
	case ViewPackages:
		return "Packages"
	case ViewGallery:
		return "Gallery"
	case ViewContact:
		return "Contact"
	default:
		return "Home"
	}
}

// Source refreshes the collections behind the views. Every call stores its
// result, fallback data included, in the shared state.Store.
type Source interface {
	LoadHome(ctx context.Context)
	LoadServices(ctx context.Context)
	LoadPackages(ctx context.Context)
	LoadGallery(ctx context.Context)
	LoadServiceDetail(ctx context.Context, slug string) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    Source
	Store     *state.Store
	Notify    *notify.Queue
	// Enquiries builds a pipeline. Each enquiry form gets its own, so a
	// pending send on one form never blocks another.
	Enquiries func() *submit.Pipeline[submit.Enquiry]
	Reviews   *submit.Pipeline[submit.Review]
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    Source
	store     *state.Store
	notify    *notify.Queue
	enquiries map[formID]*submit.Pipeline[submit.Enquiry]
	reviews   *submit.Pipeline[submit.Review]
	prefsPath string
	logger    *slog.Logger
	tick      time.Duration

	// UI state
	keys        keyMap
	help        help.Model
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	// Data state
	snapshot state.Snapshot
	mounted  map[View]bool

	// Home carousels
	slideIdx       int
	testimonialIdx int
	lastAdvance    time.Time

	// Listing cursors
	serviceRow int
	packageRow int
	galleryRow int

	// Gallery filter and sort
	galleryCategory string
	gallerySort     catalog.SortKey

	detail viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	queue := opts.Notify
	if queue == nil {
		queue = notify.NewQueue(notify.DefaultTTL)
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	enquiries := make(map[formID]*submit.Pipeline[submit.Enquiry], len(enquiryForms))
	if opts.Enquiries != nil {
		for _, id := range enquiryForms {
			enquiries[id] = opts.Enquiries()
		}
	}

	category := strings.TrimSpace(opts.Prefs.GalleryCategory)
	if category == "" {
		category = catalog.AllCategories
	}

	return Model{
		ctx:             ctx,
		source:          opts.Source,
		store:           store,
		notify:          queue,
		enquiries:       enquiries,
		reviews:         opts.Reviews,
		prefsPath:       opts.PrefsPath,
		logger:          logger,
		tick:            tick,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		theme:           GetTheme(opts.Prefs.Theme),
		currentView:     ViewHome,
		snapshot:        store.Snapshot(),
		mounted:         map[View]bool{ViewHome: true},
		lastAdvance:     time.Now(),
		galleryCategory: category,
		gallerySort:     catalog.ParseSortKey(opts.Prefs.GallerySort),
		detail:          viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	cmds = append(cmds, m.loadCmds(ViewHome)...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.syncDetail()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case loadedMsg:
		m.refreshSnapshot()
		return m, nil

	case detailMsg:
		m.refreshSnapshot()
		if msg.err != nil {
			m.notify.Show("detail", notify.Error, "Failed to load service details")
		}
		return m, nil

	case submitResultMsg:
		m.handleSubmitResult(msg)
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m, tea.Batch(m.loadCmds(m.currentView)...)

	case key.Matches(msg, m.keys.Review):
		return m.openModal(m.reviewForm())

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.offsetView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.offsetView(-1))

	case key.Matches(msg, m.keys.ViewHome):
		return m.switchView(ViewHome)
	case key.Matches(msg, m.keys.ViewServices):
		return m.switchView(ViewServices)
	case key.Matches(msg, m.keys.ViewPackages):
		return m.switchView(ViewPackages)
	case key.Matches(msg, m.keys.ViewGallery):
		return m.switchView(ViewGallery)
	case key.Matches(msg, m.keys.ViewContact):
		return m.switchView(ViewContact)
	}

	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewServices:
		return m.handleServicesKey(msg)
	case ViewPackages:
		return m.handlePackagesKey(msg)
	case ViewGallery:
		return m.handleGalleryKey(msg)
	case ViewContact:
		return m.handleContactKey(msg)
	}

	return m, nil
}

func (m Model) offsetView(delta int) View {
	n := len(viewOrder)
	return viewOrder[((int(m.currentView)+delta)%n+n)%n]
}

// switchView changes view and loads its collections the first time it is
// shown.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.syncDetail()
	if m.mounted[v] {
		return m, nil
	}
	m.mounted[v] = true
	return m, tea.Batch(m.loadCmds(v)...)
}

func (m Model) openModal(modal formModal) (tea.Model, tea.Cmd) {
	m.modal = modal
	return m, textinput.Blink
}

// handleTick expires toasts, advances the carousels and picks up store
// changes.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.notify.Expire()
	if now.Sub(m.lastAdvance) >= CarouselInterval {
		m.slideIdx++
		m.testimonialIdx++
		m.lastAdvance = now
	}
	m.refreshSnapshot()
	return m, tickCmd(m.tick)
}

// handleSubmitResult turns a submission outcome into a toast. A successful
// submission also returns its pipeline to idle.
func (m *Model) handleSubmitResult(msg submitResultMsg) {
	id := "submit:" + string(msg.form)
	switch msg.result.Outcome {
	case submit.OutcomeSucceeded:
		m.notify.Show(id, notify.Success, msg.result.Message)
		m.resetPipeline(msg.form)
	case submit.OutcomeFailed:
		m.notify.Show(id, notify.Error, msg.result.Message)
	case submit.OutcomeBusy:
		m.notify.Show(id, notify.Warning, msg.result.Message)
	case submit.OutcomeInvalid:
		m.notify.Show(id, notify.Warning, msg.result.Message)
	}
}

func (m *Model) resetPipeline(form formID) {
	if form == formReview {
		if m.reviews != nil {
			m.reviews.Reset()
		}
		return
	}
	if p := m.enquiries[form]; p != nil {
		p.Reset()
	}
}

// refreshSnapshot copies the store and keeps cursors in range.
func (m *Model) refreshSnapshot() {
	m.snapshot = m.store.Snapshot()
	m.serviceRow = clampRow(m.serviceRow, len(m.services()))
	m.packageRow = clampRow(m.packageRow, len(m.packages()))
	m.galleryRow = clampRow(m.galleryRow, len(m.galleryItems()))
	m.syncDetail()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:           m.theme.Name,
		GallerySort:     string(m.gallerySort),
		GalleryCategory: m.galleryCategory,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewServices:
		return m.renderServices()
	case ViewPackages:
		return m.renderPackages()
	case ViewGallery:
		return m.renderGallery()
	case ViewContact:
		return m.renderContact()
	default:
		return m.renderHome()
	}
}

func (m Model) contentHeight() int {
	return maxInt(m.height-chromeHeight, 3)
}

func clampRow(row, count int) int {
	if count == 0 || row < 0 {
		return 0
	}
	if row >= count {
		return count - 1
	}
	return row
}

// moveRow applies a list navigation key to row.
func (m Model) moveRow(msg tea.KeyMsg, row, count int) (int, bool) {
	switch {
	case key.Matches(msg, m.keys.Down):
		return clampRow(row+1, count), true
	case key.Matches(msg, m.keys.Up):
		return clampRow(row-1, count), true
	case key.Matches(msg, m.keys.Top):
		return 0, true
	case key.Matches(msg, m.keys.Bottom):
		return clampRow(count-1, count), true
	}
	return row, false
}

// scrollDetail applies a detail pane scroll key.
func (m *Model) scrollDetail(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfPageDown()
		return true
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfPageUp()
		return true
	}
	return false
}

// Messages

type tickMsg time.Time

// loadedMsg reports that the loads behind a view finished.
type loadedMsg struct{ view View }

type detailMsg struct {
	slug string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmds returns one command per collection group behind v. Home also
// loads services, which the enquiry forms offer as choices.
func (m Model) loadCmds(v View) []tea.Cmd {
	if m.source == nil {
		return nil
	}
	src, ctx := m.source, m.ctx
	run := func(load func(context.Context)) tea.Cmd {
		return func() tea.Msg {
			loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
			defer cancel()
			load(loadCtx)
			return loadedMsg{view: v}
		}
	}
	switch v {
	case ViewHome:
		return []tea.Cmd{run(src.LoadHome), run(src.LoadServices)}
	case ViewServices, ViewContact:
		return []tea.Cmd{run(src.LoadServices)}
	case ViewPackages:
		return []tea.Cmd{run(src.LoadPackages)}
	case ViewGallery:
		return []tea.Cmd{run(src.LoadGallery)}
	}
	return nil
}

func detailCmd(ctx context.Context, src Source, slug string) tea.Cmd {
	return func() tea.Msg {
		loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
		defer cancel()
		return detailMsg{slug: slug, err: src.LoadServiceDetail(loadCtx, slug)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
