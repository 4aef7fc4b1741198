package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gaugechart/pkg/gauge"
)

func testWatchModel(t *testing.T, step float64) (watchModel, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC))
	values := gauge.NewValueGroup(0)
	chart := gauge.New(
		gauge.WithLogger(log.NewWithOptions(io.Discard, log.Options{})),
		gauge.WithClock(clock),
		gauge.WithGroup(values),
	)
	chart.SetMax(100)
	_, err := chart.Render()
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "preview.svg")
	return newWatchModel(context.Background(), chart, values, step, out), clock
}

func press(t *testing.T, m watchModel, key tea.KeyMsg) watchModel {
	t.Helper()
	next, _ := m.Update(key)
	wm, ok := next.(watchModel)
	require.True(t, ok)
	return wm
}

func TestWatchModelKeys(t *testing.T) {
	m, clock := testWatchModel(t, 0)
	assert.Equal(t, 0, needleColumn(m.scene, 101), "the needle starts at the dial start")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 10.0, m.values.Value(), "the default step is max/20")
	assert.False(t, m.scene.Settled(), "the needle is moving")

	clock.Advance(time.Second)
	next, cmd := m.Update(frameMsg(clock.Now()))
	m = next.(watchModel)
	assert.NotNil(t, cmd, "frames keep ticking")
	assert.True(t, m.scene.Settled())
	assert.Equal(t, 10, needleColumn(m.scene, 101))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 5.0, m.values.Value())
}

func TestWatchModelStep(t *testing.T) {
	m, _ := testWatchModel(t, 2.5)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2.5, m.values.Value())
}

func TestWatchModelWrite(t *testing.T) {
	m, _ := testWatchModel(t, 0)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	assert.Contains(t, m.status, "wrote "+m.output)

	svg, err := os.ReadFile(m.output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(svg), "<svg"))
	assert.Contains(t, string(svg), "<animateTransform", "a moving needle is written animated")
}

func TestWatchModelQuit(t *testing.T) {
	m, _ := testWatchModel(t, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWatchModelView(t *testing.T) {
	m, _ := testWatchModel(t, 0)
	view := m.View()
	assert.Contains(t, view, "Gauge Preview")
	assert.Contains(t, view, "▲")
	assert.Contains(t, view, "max 100")
}

func TestNeedleColumnClamps(t *testing.T) {
	s := &gauge.Scene{Angles: gauge.Angles{Start: -1, End: 1}}
	s.Needle.Angle = 5 * gauge.Deg
	assert.Equal(t, 9, needleColumn(s, 10))

	s.Needle.Angle = -5 * gauge.Deg
	assert.Equal(t, 0, needleColumn(s, 10))

	assert.Equal(t, 0, needleColumn(&gauge.Scene{}, 10), "a zero span maps to the first cell")
}

func TestTermColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0000"), termColor("#FF0000"))
	assert.Equal(t, colorRed, termColor(gauge.IndicatorOutOfRange))
	assert.Equal(t, colorGray, termColor(gauge.IndicatorInRange))
}
