package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func newStart(fill time.Duration) StartModel {
	m := NewStartModel(specimen.DefaultTexts(), specimen.LoadingTexts(), StartTiming{
		Fill:            fill,
		TrailingPause:   time.Millisecond,
		LoadingInterval: time.Millisecond,
	})
	m.now = func() time.Time { return t0 }
	return m
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestStart_WateringFillsLinearlyThenRequestsGenerate(t *testing.T) {
	m := newStart(2 * time.Second)

	m, cmd := m.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Equal(t, 0.0, m.Percent())

	m, cmd = m.Update(frameMsg{seq: m.seq, at: t0.Add(500 * time.Millisecond)})
	require.NotNil(t, cmd, "animation continues below 100%")
	assert.InDelta(t, 0.25, m.Percent(), 0.001)

	m, _ = m.Update(frameMsg{seq: m.seq, at: t0.Add(time.Second)})
	assert.InDelta(t, 0.5, m.Percent(), 0.001)

	m, cmd = m.Update(frameMsg{seq: m.seq, at: t0.Add(2100 * time.Millisecond)})
	require.NotNil(t, cmd)
	assert.Equal(t, 1.0, m.Percent(), "progress is clamped at 100%")

	_, ok := cmd().(GenerateRequestedMsg)
	assert.True(t, ok, "trailing pause ends with a generate request")
}

func TestStart_IgnoresActivationWhileBusy(t *testing.T) {
	m := newStart(2 * time.Second)

	m, _ = m.Update(enter())
	m, cmd := m.Update(enter())
	assert.Nil(t, cmd, "no re-entry while watering")

	m, _ = m.Update(frameMsg{seq: m.seq, at: t0.Add(3 * time.Second)})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Nil(t, cmd, "no re-entry once ready")

	m.Reset()
	_ = m.SetGenerating()
	_, cmd = m.Update(enter())
	assert.Nil(t, cmd, "no re-entry while generating")
}

func TestStart_ImmediateWithoutFill(t *testing.T) {
	m := newStart(0)

	m, cmd := m.Update(enter())
	require.NotNil(t, cmd)
	_, ok := cmd().(GenerateRequestedMsg)
	assert.True(t, ok)
	assert.True(t, m.Busy())
}

func TestStart_StaleFramesIgnoredAfterReset(t *testing.T) {
	m := newStart(time.Second)

	m, _ = m.Update(enter())
	stale := m.seq
	m.Reset()

	m, cmd := m.Update(frameMsg{seq: stale, at: t0.Add(2 * time.Second)})
	assert.Nil(t, cmd)
	assert.Equal(t, 0.0, m.Percent())
	assert.False(t, m.Busy())
}

func TestStart_LoadingTextsCycle(t *testing.T) {
	m := newStart(time.Second)
	texts := specimen.LoadingTexts()

	cmd := m.SetGenerating()
	require.NotNil(t, cmd)
	assert.Equal(t, texts[0], m.LoadingText())

	m, cmd = m.Update(loadingTickMsg{seq: m.seq})
	assert.NotNil(t, cmd)
	assert.Equal(t, texts[1], m.LoadingText())

	for i := 0; i < len(texts)-1; i++ {
		m, _ = m.Update(loadingTickMsg{seq: m.seq})
	}
	assert.Equal(t, texts[0], m.LoadingText(), "loading texts wrap around")

	assert.Contains(t, m.View(), texts[0])
}

func TestStart_View(t *testing.T) {
	m := newStart(2 * time.Second)
	m.SetSize(80, 30)

	m.SetBanner("▀█▀")
	view := m.View()
	assert.Contains(t, view, "▀█▀")
	assert.Contains(t, view, "浇水唤醒")
	assert.Contains(t, view, "GENERATE")

	m, _ = m.Update(enter())
	m, _ = m.Update(frameMsg{seq: m.seq, at: t0.Add(time.Second)})
	assert.True(t, strings.Contains(m.View(), "50%"))
}
