package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/oasis/internal/specimen"
)

// frameInterval is the watering animation tick.
const frameInterval = time.Second / 30

// Start view styles
var (
	startBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7fa66b"))

	startTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a8574")).
			Bold(true)

	startHeadlineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3d3a32")).
				Background(lipgloss.Color("#f5f2ea")).
				Bold(true).
				Padding(1, 3).
				Align(lipgloss.Center)

	startSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7fa66b")).
				Italic(true)

	startButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#a8b89a")).
				Padding(0, 2).
				Align(lipgloss.Center)

	startButtonActiveStyle = startButtonStyle.
				BorderForeground(lipgloss.Color("#7fa66b")).
				Foreground(lipgloss.Color("#7fa66b")).
				Bold(true)

	startButtonSubStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8a8574"))
)

// GenerateRequestedMsg asks the controller for a new card.
type GenerateRequestedMsg struct{}

type frameMsg struct {
	seq int
	at  time.Time
}

type loadingTickMsg struct {
	seq int
}

// StartTiming holds the start screen durations.
type StartTiming struct {
	Fill            time.Duration // 0 requests generation immediately
	TrailingPause   time.Duration
	LoadingInterval time.Duration
}

// StartModel is the watering call-to-action screen.
type StartModel struct {
	texts        specimen.Texts
	loadingTexts []string
	timing       StartTiming
	now          func() time.Time

	progress progress.Model
	spinner  spinner.Model
	help     help.Model

	// Watering state
	percent   float64
	watering  bool
	startedAt time.Time
	requested bool

	// Generating state
	generating bool
	loadingIdx int

	// seq invalidates ticks scheduled before the last Reset
	seq int

	banner      string
	seedPreview string
	width       int
	height      int
}

// NewStartModel creates the start screen.
func NewStartModel(texts specimen.Texts, loadingTexts []string, timing StartTiming) StartModel {
	if len(loadingTexts) == 0 {
		loadingTexts = []string{texts.StartSubtitle}
	}
	return StartModel{
		texts:        texts,
		loadingTexts: loadingTexts,
		timing:       timing,
		now:          time.Now,
		progress:     progress.New(progress.WithGradient("#a8e6cf", "#7fa66b"), progress.WithoutPercentage(), progress.WithWidth(30)),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
	}
}

// SetSize updates the view dimensions.
func (m *StartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	barWidth := width - 16
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
}

// SetBanner sets the block art drawn above the title.
func (m *StartModel) SetBanner(banner string) {
	m.banner = banner
}

// SetSeedPreview sets the rendered seed image shown above the headline.
func (m *StartModel) SetSeedPreview(preview string) {
	m.seedPreview = preview
}

// Busy reports whether activation is currently ignored.
func (m StartModel) Busy() bool {
	return m.watering || m.requested || m.generating
}

// Percent returns the watering progress in [0, 1].
func (m StartModel) Percent() float64 {
	return m.percent
}

// SetGenerating switches the screen into its loading state.
func (m *StartModel) SetGenerating() tea.Cmd {
	m.generating = true
	m.loadingIdx = 0
	return tea.Batch(m.spinner.Tick, m.loadingTick())
}

// Reset returns the screen to its idle state.
func (m *StartModel) Reset() {
	m.seq++
	m.percent = 0
	m.watering = false
	m.requested = false
	m.generating = false
	m.loadingIdx = 0
}

// Update handles messages.
func (m StartModel) Update(msg tea.Msg) (StartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, startKeys.Water) {
			return m.activate()
		}

	case frameMsg:
		if msg.seq != m.seq || !m.watering {
			return m, nil
		}
		return m.advance(msg.at)

	case loadingTickMsg:
		if msg.seq != m.seq || !m.generating {
			return m, nil
		}
		m.loadingIdx = (m.loadingIdx + 1) % len(m.loadingTexts)
		return m, m.loadingTick()

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m StartModel) activate() (StartModel, tea.Cmd) {
	if m.Busy() {
		return m, nil
	}

	if m.timing.Fill <= 0 {
		m.requested = true
		m.percent = 1
		return m, requestGenerate
	}

	m.seq++
	m.watering = true
	m.percent = 0
	m.startedAt = m.now()
	return m, m.frameTick()
}

func (m StartModel) advance(at time.Time) (StartModel, tea.Cmd) {
	elapsed := at.Sub(m.startedAt)
	m.percent = float64(elapsed) / float64(m.timing.Fill)
	if m.percent < 0 {
		m.percent = 0
	}
	if m.percent < 1 {
		return m, m.frameTick()
	}

	m.percent = 1
	m.watering = false
	m.requested = true
	if m.timing.TrailingPause <= 0 {
		return m, requestGenerate
	}
	return m, tea.Tick(m.timing.TrailingPause, func(time.Time) tea.Msg {
		return GenerateRequestedMsg{}
	})
}

func requestGenerate() tea.Msg {
	return GenerateRequestedMsg{}
}

func (m StartModel) frameTick() tea.Cmd {
	seq := m.seq
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{seq: seq, at: t}
	})
}

func (m StartModel) loadingTick() tea.Cmd {
	seq := m.seq
	interval := m.timing.LoadingInterval
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return loadingTickMsg{seq: seq}
	})
}

// LoadingText returns the status line currently shown while generating.
func (m StartModel) LoadingText() string {
	return m.loadingTexts[m.loadingIdx]
}

// View renders the view.
func (m StartModel) View() string {
	var sections []string

	if m.banner != "" {
		sections = append(sections, startBannerStyle.Render(m.banner))
	}
	sections = append(sections, startTitleStyle.Render(m.texts.StartTitle))
	if m.seedPreview != "" {
		sections = append(sections, m.seedPreview)
	}
	sections = append(sections, startHeadlineStyle.Render(m.texts.StartHeadline))

	switch {
	case m.generating:
		sections = append(sections, startSubtitleStyle.Render(m.spinner.View()+" "+m.LoadingText()))
	default:
		sections = append(sections, startSubtitleStyle.Render(m.texts.StartSubtitle))
	}

	sections = append(sections, m.renderButton())
	sections = append(sections, m.help.View(startKeys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m StartModel) renderButton() string {
	var label string
	style := startButtonStyle
	switch {
	case m.generating:
		label = "生长中..."
		style = startButtonActiveStyle
	case m.watering:
		label = fmt.Sprintf("浇水中 %d%%", int(m.percent*100))
		style = startButtonActiveStyle
	case m.requested:
		label = "已唤醒 ✓"
		style = startButtonActiveStyle
	default:
		label = "💧 " + m.texts.ButtonGenerate
	}

	lines := []string{
		label,
		startButtonSubStyle.Render(m.texts.ButtonSub),
		m.progress.ViewAs(m.percent),
	}
	return style.Render(strings.Join(lines, "\n"))
}
