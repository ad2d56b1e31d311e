package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"tagcheck/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("checking", []string{"a.xml", "b.xml", "c.xml"}, events).(*progressModel)

	model.Update(eventMsg(driver.Event{File: "a.xml", Stage: driver.StageReport, Status: driver.StatusDone}))
	model.Update(eventMsg(driver.Event{File: "b.xml", Stage: driver.StageReport, Status: driver.StatusDone, Findings: 2}))
	model.Update(eventMsg(driver.Event{File: "c.xml", Stage: driver.StageMatch, Status: driver.StatusWorking}))
	model.Update(eventMsg(driver.Event{File: "unknown.xml", Status: driver.StatusDone}))

	require.Equal(t, labelOK, model.items[0].status)
	require.Equal(t, labelMalformed, model.items[1].status)
	require.Equal(t, labelMatching, model.items[2].status)
	require.Equal(t, 2, model.finished())

	view := model.View()
	require.Contains(t, view, "checking (2/3)")
	require.Contains(t, view, "2 issues")
	require.Contains(t, view, "c.xml")

	_, cmd := model.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.True(t, model.done)
	require.True(t, strings.HasPrefix(stripANSI(model.View()), "done: "))
}

func TestProgressModelQuitsWhenChannelCloses(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	model := NewProgressModel("checking", []string{"a.xml"}, events).(*progressModel)
	msg := model.listenForEvent()()
	require.IsType(t, doneMsg{}, msg)
}

func TestStatusLabel(t *testing.T) {
	require.Equal(t, labelQueued, statusLabel(driver.Event{Status: driver.StatusQueued}))
	require.Equal(t, labelLoading, statusLabel(driver.Event{Stage: driver.StageLoad, Status: driver.StatusWorking}))
	require.Equal(t, labelError, statusLabel(driver.Event{Status: driver.StatusError, Err: errors.New("boom")}))
	require.Equal(t, labelCached, statusLabel(driver.Event{Status: driver.StatusDone, Cached: true}))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "very-l...", truncate("very-long-name.xml", 9))
	require.Equal(t, "ab", truncate("abcdef", 2))
	require.Equal(t, "漢...", truncate("漢字漢字漢字", 5))
}

func TestWindowResize(t *testing.T) {
	model := NewProgressModel("checking", []string{"a.xml"}, nil).(*progressModel)
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, model.width)
	require.Equal(t, 116, model.prog.Width)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
