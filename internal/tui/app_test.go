package tui

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/oasis/internal/card"
	"github.com/f3rmion/oasis/internal/config"
	"github.com/f3rmion/oasis/internal/export"
	"github.com/f3rmion/oasis/internal/fortune"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/f3rmion/oasis/internal/tui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct{}

func (stubLoader) Fetch(ctx context.Context, ref string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type stubRasterizer struct {
	err error
}

func (r stubRasterizer) Rasterize(ctx context.Context, c card.Card) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png:" + c.Preset.Name), nil
}

type testApp struct {
	model AppModel
	dir   string
	saver *export.Saver
}

func newTestApp(t *testing.T, raster stubRasterizer) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.Timing = config.TimingConfig{
		FillDuration:        config.Duration(10 * time.Millisecond),
		TrailingPause:       config.Duration(time.Millisecond),
		GenerateDelay:       config.Duration(time.Millisecond),
		LoadingTextInterval: config.Duration(time.Millisecond),
		RevealTimeout:       config.Duration(time.Millisecond),
	}

	picker, err := specimen.NewPicker(specimen.DefaultPresets(), func(n int) int { return 2 })
	require.NoError(t, err)

	dir := t.TempDir()
	saver := export.NewSaver(raster, export.DirDownloader{Dir: dir}, 0, nil)

	m := NewApp(cfg, Deps{
		Controller: fortune.NewController(picker),
		Loader:     stubLoader{},
		Saver:      saver,
		Preview:    func(img image.Image, cols, rows int) string { return "[plant]" },
	})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return &testApp{model: model.(AppModel), dir: dir, saver: saver}
}

func (a *testApp) send(msg tea.Msg) tea.Cmd {
	model, cmd := a.model.Update(msg)
	a.model = model.(AppModel)
	return cmd
}

// collect runs cmd and returns the messages it produces, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed runs cmd and sends every resulting message, returning the follow-up commands.
func (a *testApp) feed(cmd tea.Cmd) []tea.Cmd {
	var next []tea.Cmd
	for _, msg := range collect(cmd) {
		if c := a.send(msg); c != nil {
			next = append(next, c)
		}
	}
	return next
}

func (a *testApp) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(a.dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (a *testApp) generateToResult(t *testing.T) {
	t.Helper()

	cmd := a.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, fortune.Start, a.model.State())

	// Watering frame past the fill duration, then the trailing pause
	next := a.feed(cmd)
	require.Len(t, next, 1)
	next = a.feed(next[0])
	require.Equal(t, fortune.Generating, a.model.State())
	require.Len(t, next, 1)

	// Generation delay, spinner and loading text ticks
	next = a.feed(next[0])
	require.Equal(t, fortune.Result, a.model.State())
	for _, c := range next {
		a.feed(c)
	}
}

func TestApp_StartToResultFlow(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})
	assert.Contains(t, app.model.View(), "浇水唤醒")

	app.generateToResult(t)

	sel, ok := app.model.controller.Selection()
	require.True(t, ok)
	assert.Equal(t, "社牛仙人掌", sel.Name)

	shown, ok := app.model.resultView.Preset()
	require.True(t, ok)
	assert.Equal(t, sel, shown)

	view := app.model.View()
	assert.Contains(t, view, sel.Name)
	assert.Contains(t, view, sel.TagText)
	assert.Contains(t, view, "[plant]")
}

func TestApp_GenerateWhileGeneratingIgnored(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})

	require.NotNil(t, app.send(views.GenerateRequestedMsg{}))
	before := app.model.controller.Snapshot()

	assert.Nil(t, app.send(views.GenerateRequestedMsg{}))
	assert.Equal(t, before, app.model.controller.Snapshot())
	assert.Equal(t, 1, app.model.genSeq)
}

func TestApp_ResetReturnsToStart(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})
	app.generateToResult(t)

	cmd := app.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.feed(cmd)

	assert.Equal(t, fortune.Start, app.model.State())
	assert.False(t, app.model.startView.Busy())
	_, ok := app.model.resultView.Preset()
	assert.False(t, ok)

	// A second round works from a clean start
	app.generateToResult(t)
	assert.Equal(t, fortune.Result, app.model.State())
}

func TestApp_StaleGenerationDiscardedAfterReset(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})

	require.NotNil(t, app.send(views.GenerateRequestedMsg{}))
	app.send(views.ResetRequestedMsg{})
	app.send(generatedMsg{seq: 1})

	assert.Equal(t, fortune.Start, app.model.State())
}

func TestApp_SaveWritesOneFile(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})
	app.generateToResult(t)

	first := app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, first)
	assert.Nil(t, app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}), "second save is rejected")

	app.feed(first)

	assert.Equal(t, []string{export.Filename(specimen.DefaultSpecimenNo)}, app.files(t))
	assert.False(t, app.model.resultView.Saving())
	assert.False(t, app.saver.Saving())

	data, err := os.ReadFile(filepath.Join(app.dir, "oasis-specimen-0824.png"))
	require.NoError(t, err)
	assert.Equal(t, "png:社牛仙人掌", string(data))

	notice, isErr := app.model.resultView.Notice()
	assert.False(t, isErr)
	assert.True(t, strings.HasSuffix(notice, "oasis-specimen-0824.png"))
}

func TestApp_SaveFailureShowsNotice(t *testing.T) {
	app := newTestApp(t, stubRasterizer{err: errors.New("canvas tainted")})
	app.generateToResult(t)

	app.feed(app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}))

	assert.Empty(t, app.files(t))
	assert.False(t, app.model.resultView.Saving())
	notice, isErr := app.model.resultView.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "保存图片失败，请重试")
	assert.Equal(t, fortune.Result, app.model.State())
}

func TestApp_HelpOverlayAndQuit(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})

	app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, app.model.View(), "Save card as PNG")

	app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.NotContains(t, app.model.View(), "Save card as PNG")

	cmd := app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_SeedPreview(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})

	app.feed(app.model.Init())
	assert.Contains(t, app.model.View(), "[plant]")
}

func TestApp_BackDuringSaveDoesNotBlockLaterSaves(t *testing.T) {
	app := newTestApp(t, stubRasterizer{})
	app.generateToResult(t)

	pending := app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, pending)
	require.True(t, app.model.resultView.Saving())

	app.send(views.ResetRequestedMsg{})
	assert.False(t, app.model.resultView.Saving())

	// The export finishes while the start screen is showing
	app.feed(pending)
	assert.False(t, app.saver.Saving())

	app.generateToResult(t)
	assert.NotContains(t, app.model.View(), "保存中")

	cmd := app.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.NotNil(t, cmd)
	app.feed(cmd)

	assert.False(t, app.model.resultView.Saving())
	notice, isErr := app.model.resultView.Notice()
	assert.False(t, isErr)
	assert.Contains(t, notice, "oasis-specimen-0824.png")
}
