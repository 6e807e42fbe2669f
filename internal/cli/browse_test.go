package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pkgio "github.com/matzehuels/schedgrid/pkg/io"
	"github.com/matzehuels/schedgrid/pkg/pipeline"
)

func newTestBrowseModel(t *testing.T, opts pipeline.Options) browseModel {
	t.Helper()
	ev, err := pkgio.ReadSchedule(strings.NewReader(scheduleTOML), pkgio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	return newBrowseModel(ev, opts)
}

func press(m browseModel, key string) (browseModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(browseModel), cmd
}

func TestBrowsePagesDays(t *testing.T) {
	m := newTestBrowseModel(t, pipeline.Options{})
	if len(m.days) != 2 || m.index != 0 {
		t.Fatalf("days = %v, index = %d", m.days, m.index)
	}
	if v := m.View(); !strings.Contains(v, "2025-06-10  [1/2]") || !strings.Contains(v, "Opening") {
		t.Errorf("first view:\n%s", v)
	}

	m, _ = press(m, "right")
	if v := m.View(); !strings.Contains(v, "2025-06-11  [2/2]") {
		t.Errorf("second view:\n%s", v)
	}
	if !strings.Contains(strings.Join(m.lines, "\n"), "Closing") {
		t.Error("second day grid should contain its session")
	}

	m, _ = press(m, "right")
	if m.index != 1 {
		t.Error("paging past the last day should stay put")
	}
	m, _ = press(m, "h")
	if m.index != 0 {
		t.Errorf("index = %d after h", m.index)
	}
}

func TestBrowseStartsOnRequestedDay(t *testing.T) {
	m := newTestBrowseModel(t, pipeline.Options{Day: "2025-06-11"})
	if m.index != 1 {
		t.Errorf("index = %d, want 1", m.index)
	}
}

func TestBrowseScrollAndResize(t *testing.T) {
	m := newTestBrowseModel(t, pipeline.Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(browseModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want 5", m.height)
	}

	m, _ = press(m, "j")
	if len(m.lines) > m.height && m.offset != 1 {
		t.Errorf("offset = %d after scrolling down", m.offset)
	}
	m, _ = press(m, "k")
	m, _ = press(m, "k")
	if m.offset != 0 {
		t.Errorf("offset = %d, should not scroll above the top", m.offset)
	}
}

func TestBrowseEmptyAndQuit(t *testing.T) {
	m := newTestBrowseModel(t, pipeline.Options{Search: "nothing here"})
	if !strings.Contains(m.View(), "No sessions to display") {
		t.Errorf("empty view:\n%s", m.View())
	}
	if _, cmd := press(m, "q"); cmd == nil {
		t.Error("q should quit")
	}
}
