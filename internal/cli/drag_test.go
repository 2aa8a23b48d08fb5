package cli

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/scene"
)

func newTestDrag(t *testing.T) dragModel {
	t.Helper()
	path := writeScene(t)
	sc, err := scene.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return newDragModel(sc, path, align.New(), 1)
}

func press(m dragModel, keys ...tea.KeyMsg) dragModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(dragModel)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestDragModelSelect(t *testing.T) {
	m := newTestDrag(t)

	if m.selected().ID != "title" {
		t.Fatalf("initial selection = %q, want title", m.selected().ID)
	}
	m = press(m, key(tea.KeyTab), key(tea.KeyTab))
	if m.selected().ID != "cta" {
		t.Errorf("after two tabs = %q, want cta", m.selected().ID)
	}
	m = press(m, key(tea.KeyTab))
	if m.selected().ID != "title" {
		t.Errorf("tab should wrap around, got %q", m.selected().ID)
	}
	m = press(m, key(tea.KeyShiftTab))
	if m.selected().ID != "cta" {
		t.Errorf("shift+tab should wrap backwards, got %q", m.selected().ID)
	}
}

func TestDragModelSnapsAndReleases(t *testing.T) {
	m := press(newTestDrag(t), key(tea.KeyTab), key(tea.KeyTab))

	// cta is centered; a one unit nudge snaps back.
	m = press(m, key(tea.KeyRight))
	if !m.result.Snapped || m.selected().X != 300 {
		t.Fatalf("after right = %+v, want snapped at 300", m.result)
	}
	if m.pointer.X != 301 {
		t.Errorf("pointer x = %v, want 301", m.pointer.X)
	}
	if !m.dirty {
		t.Error("moving should mark the scene dirty")
	}

	m = press(m, key(tea.KeyShiftRight), key(tea.KeyShiftRight))
	if m.result.Snapped || m.selected().X != 321 {
		t.Errorf("after dragging away = %+v, want released at 321", m.result)
	}

	m = press(m, runes("H"), runes("H"))
	if m.selected().X != 300 {
		t.Errorf("dragging back = %v, want snapped at 300", m.selected().X)
	}
}

func TestDragModelKeys(t *testing.T) {
	m := newTestDrag(t)

	m = press(m, runes("g"))
	if !m.engine.Settings().ShowGrid || m.status != "grid on" {
		t.Errorf("g: show grid = %v, status %q", m.engine.Settings().ShowGrid, m.status)
	}

	m = press(m, key(tea.KeyDown))
	if m.engine.Tracked() == 0 {
		t.Fatal("snap should be remembered")
	}
	m = press(m, runes("r"))
	if m.engine.Tracked() != 0 {
		t.Errorf("r should clear memory, tracked = %d", m.engine.Tracked())
	}

	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestDragModelSave(t *testing.T) {
	m := press(newTestDrag(t), key(tea.KeyTab), key(tea.KeyTab))
	m = press(m, key(tea.KeyDown), runes("s"))

	if !m.saved || m.dirty {
		t.Errorf("after save: saved=%v dirty=%v status=%q", m.saved, m.dirty, m.status)
	}
	sc, err := scene.ReadFile(m.path)
	if err != nil {
		t.Fatal(err)
	}
	want := m.selected()
	if got, _ := sc.Element("cta"); got != want {
		t.Errorf("saved cta = %+v, want %+v", got, want)
	}
}

func TestDragModelSaveFailure(t *testing.T) {
	m := newTestDrag(t)
	m.path = filepath.Join(t.TempDir(), "missing", "dir", "scene.json")

	m = press(m, runes("s"))
	if m.saved || !strings.HasPrefix(m.status, "save failed") {
		t.Errorf("status = %q, saved = %v", m.status, m.saved)
	}
}

func TestDragModelView(t *testing.T) {
	m := press(newTestDrag(t), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyRight))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(dragModel)

	view := m.View()
	for _, want := range []string{"canvasnap drag", "cta", "snapped", "canvas-center-x"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
