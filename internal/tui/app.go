package tui

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/oasis/internal/config"
	"github.com/f3rmion/oasis/internal/fortune"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/f3rmion/oasis/internal/tui/views"
	"go.uber.org/zap"
)

// generatedMsg fires when the generation delay for request seq has elapsed.
type generatedMsg struct {
	seq int
}

// SeedLoadedMsg is sent when the start screen image has been fetched.
type SeedLoadedMsg struct {
	Image image.Image
	Err   error
}

// Deps are the collaborators the app drives.
type Deps struct {
	Controller *fortune.Controller
	Loader     views.ImageLoader
	Saver      views.CardSaver
	Preview    views.PreviewFunc // nil uses views.ANSIPreview
	Banner     string            // Block art above the start title, may be empty
	Logger     *zap.Logger
}

// AppModel is the main TUI model.
type AppModel struct {
	controller *fortune.Controller
	loader     views.ImageLoader
	preview    views.PreviewFunc
	config     *config.Config
	logger     *zap.Logger

	// Layout state
	width  int
	height int
	ready  bool

	// Sub-models (views)
	startView  views.StartModel
	resultView views.ResultModel

	// genSeq identifies the generation whose delay is pending
	genSeq int

	// Help overlay
	showHelp bool
}

// NewApp creates a new TUI application.
func NewApp(cfg *config.Config, deps Deps) AppModel {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	preview := deps.Preview
	if preview == nil {
		preview = views.ANSIPreview
	}

	t := cfg.Timing
	startView := views.NewStartModel(cfg.Texts, specimen.LoadingTexts(), views.StartTiming{
		Fill:            t.FillDuration.Std(),
		TrailingPause:   t.TrailingPause.Std(),
		LoadingInterval: t.LoadingTextInterval.Std(),
	})
	startView.SetBanner(deps.Banner)
	resultView := views.NewResultModel(cfg.Texts, deps.Loader, deps.Saver, views.ResultTiming{
		RevealTimeout:  t.RevealTimeout.Std(),
		NoticeDuration: t.NoticeDuration.Std(),
	}, logger)
	resultView.SetPreview(preview)

	return AppModel{
		controller: deps.Controller,
		loader:     deps.Loader,
		preview:    preview,
		config:     cfg,
		logger:     logger.Named("tui"),
		startView:  startView,
		resultView: resultView,
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.loader == nil || m.config.Assets.SeedImage == "" {
		return nil
	}
	loader := m.loader
	ref := m.config.Assets.SeedImage
	return func() tea.Msg {
		img, err := loader.Fetch(context.Background(), ref)
		return SeedLoadedMsg{Image: img, Err: err}
	}
}

// State returns the controller's current view state.
func (m AppModel) State() fortune.ViewState {
	return m.controller.State()
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - 4
		contentHeight := m.height - 2
		m.startView.SetSize(contentWidth, contentHeight)
		m.resultView.SetSize(contentWidth, contentHeight)
		return m, nil

	case SeedLoadedMsg:
		if msg.Err != nil {
			m.logger.Debug("seed image unavailable", zap.Error(msg.Err))
			return m, nil
		}
		m.startView.SetSeedPreview(m.preview(msg.Image, 24, 8))
		return m, nil

	case views.GenerateRequestedMsg:
		if !m.controller.RequestGenerate() {
			m.logger.Debug("generate ignored", zap.Stringer("state", m.controller.State()))
			return m, nil
		}
		m.genSeq++
		sel, _ := m.controller.Selection()
		m.logger.Info("generating", zap.String("specimen", sel.Name))

		seq := m.genSeq
		delay := tea.Tick(m.config.Timing.GenerateDelay.Std(), func(_ time.Time) tea.Msg {
			return generatedMsg{seq: seq}
		})
		return m, tea.Batch(delay, m.startView.SetGenerating())

	case generatedMsg:
		if msg.seq != m.genSeq || !m.controller.CompleteGenerate() {
			return m, nil
		}
		sel, _ := m.controller.Selection()
		m.logger.Debug("generation complete", zap.String("specimen", sel.Name))
		m.startView.Reset()
		return m, m.resultView.SetSpecimen(sel)

	case views.ResetRequestedMsg:
		m.controller.RequestReset()
		m.genSeq++
		m.startView.Reset()
		m.resultView.Clear()
		m.logger.Debug("reset to start")
		return m, nil
	}

	// Delegate to the active view
	var cmd tea.Cmd
	switch m.controller.State() {
	case fortune.Start, fortune.Generating:
		m.startView, cmd = m.startView.Update(msg)
	case fortune.Result:
		m.resultView, cmd = m.resultView.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.controller.State() {
	case fortune.Start, fortune.Generating:
		content = m.startView.View()
	case fortune.Result:
		content = m.resultView.View()
	}

	return ContentStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := HelpTitleStyle.Render(m.config.Texts.AppName) + "\n\n"

	helpText += HelpSectionStyle.Render("Start") + "\n"
	helpText += HelpKeyStyle.Render("enter") + HelpDescStyle.Render("Water the seed") + "\n"

	helpText += HelpSectionStyle.Render("Result") + "\n"
	helpText += HelpKeyStyle.Render("s") + HelpDescStyle.Render("Save card as PNG") + "\n"
	helpText += HelpKeyStyle.Render("c") + HelpDescStyle.Render("Copy quote") + "\n"
	helpText += HelpKeyStyle.Render("esc") + HelpDescStyle.Render("Back to start") + "\n"

	helpText += HelpSectionStyle.Render("Global") + "\n"
	helpText += HelpKeyStyle.Render("?") + HelpDescStyle.Render("Show this help") + "\n"
	helpText += HelpKeyStyle.Render("q") + HelpDescStyle.Render("Quit") + "\n"

	helpText += "\n" + HelpFooterStyle.Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
