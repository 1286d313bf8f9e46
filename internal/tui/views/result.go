package views

import (
	"context"
	"errors"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/oasis/internal/card"
	"github.com/f3rmion/oasis/internal/clipboard"
	"github.com/f3rmion/oasis/internal/export"
	"github.com/f3rmion/oasis/internal/pinyin"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Result view styles
var (
	resultCardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#d9d5c7")).
			Foreground(lipgloss.Color("#3d3a32")).
			Background(lipgloss.Color("#fdfbf7")).
			Padding(1, 3).
			Align(lipgloss.Center)

	resultHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8a8574"))

	resultNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d3a32")).
			Bold(true)

	resultPinyinStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8a8574")).
				Italic(true)

	resultSealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b5483c")).
			Bold(true)

	resultQuoteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3d3a32"))

	resultCTAStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0654a")).
			Bold(true)

	resultLoadingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7fa66b")).
				Italic(true)

	resultNoticeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7fa66b")).
				Bold(true)

	resultErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#b5483c")).
				Bold(true)
)

// ResetRequestedMsg asks the controller to return to the start screen.
type ResetRequestedMsg struct{}

// ImageLoader fetches plant images.
type ImageLoader interface {
	Fetch(ctx context.Context, ref string) (image.Image, error)
}

// CardSaver exports cards.
type CardSaver interface {
	Save(ctx context.Context, c card.Card) export.Result
	Saving() bool
}

type imageLoadedMsg struct {
	seq int
	img image.Image
	err error
}

type revealMsg struct {
	seq int
}

type savedMsg struct {
	seq    int
	result export.Result
}

type copiedMsg struct {
	err error
}

type clearNoticeMsg struct {
	seq int
}

// ResultTiming holds the result screen durations.
type ResultTiming struct {
	RevealTimeout  time.Duration // Show content even if the image has not arrived
	NoticeDuration time.Duration
}

// ResultModel shows the generated specimen and exports it.
type ResultModel struct {
	texts   specimen.Texts
	loader  ImageLoader
	saver   CardSaver
	parser  *pinyin.Parser
	timing  ResultTiming
	logger  *zap.Logger
	preview PreviewFunc
	copy    func(string) error
	keys    resultKeyMap
	now     func() time.Time

	// Current specimen
	preset    specimen.Preset
	hasPreset bool
	romanized string
	date      string
	image     image.Image
	loaded    bool
	seq       int

	// Save state
	saving    bool
	notice    string
	noticeErr bool
	noticeSeq int

	help   help.Model
	width  int
	height int
}

// NewResultModel creates the result screen.
func NewResultModel(texts specimen.Texts, loader ImageLoader, saver CardSaver, timing ResultTiming, logger *zap.Logger) ResultModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := resultKeys
	keys.Copy.SetEnabled(clipboard.Available())

	return ResultModel{
		texts:   texts,
		loader:  loader,
		saver:   saver,
		parser:  pinyin.NewParser(),
		timing:  timing,
		logger:  logger.Named("result"),
		preview: ANSIPreview,
		copy:    clipboard.Write,
		keys:    keys,
		now:     time.Now,
		help:    help.New(),
	}
}

// SetPreview replaces the image-to-text renderer. nil hides the image.
func (m *ResultModel) SetPreview(preview PreviewFunc) {
	m.preview = preview
}

// SetSize updates the view dimensions.
func (m *ResultModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetSpecimen shows p and starts loading its image. Messages belonging to a
// previous specimen are ignored from here on.
func (m *ResultModel) SetSpecimen(p specimen.Preset) tea.Cmd {
	m.seq++
	m.preset = p
	m.hasPreset = true
	m.romanized = m.parser.RomanizeUpper(p.Name)
	m.date = specimen.FormatDate(m.now())
	m.image = nil
	m.loaded = false
	m.saving = false
	m.notice = ""
	m.noticeErr = false

	return tea.Batch(m.loadImage(), m.revealAfter())
}

// Clear forgets the current specimen.
func (m *ResultModel) Clear() {
	m.seq++
	m.hasPreset = false
	m.image = nil
	m.loaded = false
	m.saving = false
	m.notice = ""
}

// Preset returns the specimen being shown.
func (m ResultModel) Preset() (specimen.Preset, bool) {
	return m.preset, m.hasPreset
}

// Loaded reports whether content is revealed.
func (m ResultModel) Loaded() bool { return m.loaded }

// Saving reports whether an export is running.
func (m ResultModel) Saving() bool { return m.saving }

// Notice returns the current notice and whether it reports a failure.
func (m ResultModel) Notice() (string, bool) { return m.notice, m.noticeErr }

// Card builds the exportable card for the current specimen.
func (m ResultModel) Card() card.Card {
	return card.Card{
		Preset:    m.preset,
		Texts:     m.texts,
		Romanized: m.romanized,
		Date:      m.date,
		Image:     m.image,
	}
}

// Update handles messages.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Save):
			return m.save()
		case key.Matches(msg, m.keys.Copy):
			if !m.hasPreset {
				return m, nil
			}
			return m, m.copyText()
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return ResetRequestedMsg{} }
		}

	case imageLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Debug("plant image unavailable", zap.String("ref", m.preset.Image), zap.Error(msg.err))
		} else {
			m.image = msg.img
		}
		m.loaded = true
		return m, nil

	case revealMsg:
		if msg.seq != m.seq || m.loaded {
			return m, nil
		}
		m.logger.Debug("reveal timeout elapsed before image load", zap.String("ref", m.preset.Image))
		m.loaded = true
		return m, nil

	case savedMsg:
		// Save of an earlier specimen; its flag was cleared by SetSpecimen or Clear
		if msg.seq != m.seq {
			return m, nil
		}
		m.saving = false
		if msg.result.OK() {
			m.notice = msg.result.Message(m.texts.SaveFailed)
			m.noticeErr = false
		} else if errors.Is(msg.result.Err, export.ErrSaveInProgress) {
			return m, nil
		} else {
			m.notice = msg.result.Message(m.texts.SaveFailed)
			m.noticeErr = true
		}
		return m, m.clearNoticeAfter()

	case copiedMsg:
		if msg.err != nil {
			m.notice = "复制失败: " + msg.err.Error()
			m.noticeErr = true
		} else {
			m.notice = "已复制到剪贴板"
			m.noticeErr = false
		}
		return m, m.clearNoticeAfter()

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m ResultModel) save() (ResultModel, tea.Cmd) {
	if !m.hasPreset || m.saving || m.saver.Saving() {
		return m, nil
	}
	m.saving = true
	m.notice = ""
	m.noticeErr = false

	saver := m.saver
	c := m.Card()
	seq := m.seq
	return m, func() tea.Msg {
		return savedMsg{seq: seq, result: saver.Save(context.Background(), c)}
	}
}

func (m ResultModel) loadImage() tea.Cmd {
	seq := m.seq
	ref := m.preset.Image
	loader := m.loader
	if loader == nil || ref == "" {
		return func() tea.Msg {
			return imageLoadedMsg{seq: seq, err: errors.New("no image")}
		}
	}
	return func() tea.Msg {
		img, err := loader.Fetch(context.Background(), ref)
		return imageLoadedMsg{seq: seq, img: img, err: err}
	}
}

func (m ResultModel) revealAfter() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.timing.RevealTimeout, func(time.Time) tea.Msg {
		return revealMsg{seq: seq}
	})
}

func (m *ResultModel) clearNoticeAfter() tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	d := m.timing.NoticeDuration
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (m ResultModel) copyText() tea.Cmd {
	text := m.preset.Name + "\n" + m.preset.Quote + "\n" + m.preset.CTA
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

// View renders the view.
func (m ResultModel) View() string {
	if !m.hasPreset {
		return ""
	}
	if !m.loaded {
		return m.place(resultLoadingStyle.Render("正在冲洗标本..."))
	}

	innerWidth := 36
	if m.width > 0 && m.width-12 < innerWidth {
		innerWidth = m.width - 12
	}
	if innerWidth < 16 {
		innerWidth = 16
	}

	var lines []string
	header := m.texts.ResultTitle + "  ·  " + m.date + "  ·  NO." + m.texts.SpecimenNo
	lines = append(lines, resultHeaderStyle.Render(header))
	lines = append(lines, "")

	if m.image != nil && m.preview != nil {
		if art := m.preview(m.image, innerWidth, innerWidth/2); art != "" {
			lines = append(lines, art, "")
		}
	}

	lines = append(lines, resultNameStyle.Render(m.preset.Name))
	lines = append(lines, resultPinyinStyle.Render(m.romanized))
	lines = append(lines, "")
	lines = append(lines, resultSealStyle.Render("【"+string(m.preset.TagType)+"】")+" "+m.preset.TagText)
	lines = append(lines, "")
	lines = append(lines, resultQuoteStyle.Render(wrapText(m.preset.Quote, innerWidth)))
	lines = append(lines, "")
	lines = append(lines, resultCTAStyle.Render(wrapText(m.preset.CTA, innerWidth)))
	lines = append(lines, "")
	lines = append(lines, resultHeaderStyle.Render(m.texts.Collection))

	body := resultCardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	var status string
	switch {
	case m.saving:
		status = resultLoadingStyle.Render("保存中...")
	case m.notice != "" && m.noticeErr:
		status = resultErrorStyle.Render(m.notice)
	case m.notice != "":
		status = resultNoticeStyle.Render(m.notice)
	}

	return m.place(lipgloss.JoinVertical(lipgloss.Center, body, status, m.help.View(m.keys)))
}

func (m ResultModel) place(content string) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// wrapText wraps s to width terminal cells; Han text breaks between runes.
func wrapText(s string, width int) string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, runewidth.Wrap(para, width))
	}
	return strings.Join(out, "\n")
}
