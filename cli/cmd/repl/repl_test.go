package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/vcfg/log"
)

func newTestModel(t *testing.T, src string) model {
	t.Helper()

	return newModel(context.Background(), newTestSession(t, src), NewHistory(""), log.Logger{})
}

func typeText(m model, text string) model {
	for _, r := range text {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func press(m model, key tea.KeyType) (model, tea.Cmd) {
	return m.handleKey(tea.KeyMsg{Type: key})
}

func TestModelEvalUpdatesSession(t *testing.T) {
	m := newTestModel(t, "var port 8080\n")

	m = typeText(m, "var alt ^[port]")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input = %q after Enter, want empty", m.input.Value())
	}

	if m.session.doc.Len() != 2 {
		t.Errorf("doc.Len() = %d, want 2", m.session.doc.Len())
	}

	if m.history.Len() != 1 || m.historyIdx != 1 {
		t.Errorf("history Len = %d idx = %d, want 1 and 1", m.history.Len(), m.historyIdx)
	}
}

func TestModelEmptyEnter(t *testing.T) {
	m := newTestModel(t, "")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("Enter on empty input returned a command")
	}

	if m.history.Len() != 0 {
		t.Errorf("history Len = %d, want 0", m.history.Len())
	}
}

func TestModelTabCompletion(t *testing.T) {
	m := newTestModel(t, "var listen_port 8080\n")

	m = typeText(m, "listen_p")

	if len(m.matches) == 0 {
		t.Fatal("no matches for listen_p")
	}

	m, _ = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "listen_port" {
		t.Errorf("input after Tab = %q, want %q", got, "listen_port")
	}
}

func TestModelTabCycleEscape(t *testing.T) {
	m := newTestModel(t, "var pa 1\nvar pb 2\n")

	m = typeText(m, "1 + p")
	if len(m.matches) < 2 {
		t.Fatalf("matches = %d, want at least 2", len(m.matches))
	}

	m, _ = press(m, tea.KeyTab)
	if !m.tabActive || m.suggIdx != 0 {
		t.Fatalf("tabActive = %v suggIdx = %d after Tab", m.tabActive, m.suggIdx)
	}

	first := m.input.Value()

	m, _ = press(m, tea.KeyTab)
	if m.suggIdx != 1 || m.input.Value() == first {
		t.Errorf("second Tab did not advance: suggIdx = %d input = %q", m.suggIdx, m.input.Value())
	}

	m, _ = press(m, tea.KeyShiftTab)
	if m.input.Value() != first {
		t.Errorf("Shift-Tab input = %q, want %q", m.input.Value(), first)
	}

	m, _ = press(m, tea.KeyEsc)
	if m.tabActive || m.input.Value() != "1 + p" {
		t.Errorf("Esc restored %q (tabActive %v), want %q", m.input.Value(), m.tabActive, "1 + p")
	}

	if m.mode != modeEval {
		t.Error("Esc while tabbing switched modes")
	}
}

func TestModelToggleMode(t *testing.T) {
	m := newTestModel(t, "")

	m = typeText(m, "1 + 2")

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("mode = %v input = %q after Esc", m.mode, m.input.Value())
	}

	m = typeText(m, "li")

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeEval || m.input.Value() != "1 + 2" {
		t.Errorf("eval input = %q after toggling back, want %q", m.input.Value(), "1 + 2")
	}

	m, _ = press(m, tea.KeyEsc)
	if m.input.Value() != "li" {
		t.Errorf("ctrl input = %q, want %q", m.input.Value(), "li")
	}
}

func TestModelHistoryNavigation(t *testing.T) {
	m := newTestModel(t, "")

	for _, e := range []HistoryEntry{
		{"1 + 1", modeEval},
		{"list", modeCtrl},
		{"2 + 2", modeEval},
	} {
		if err := m.history.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "2 + 2" || m.mode != modeEval {
		t.Errorf("Up = %q (mode %v)", m.input.Value(), m.mode)
	}

	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "list" || m.mode != modeCtrl {
		t.Errorf("Up = %q (mode %v), want list in command mode", m.input.Value(), m.mode)
	}

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("Down past newest = %q idx %d", m.input.Value(), m.historyIdx)
	}

	// Shift-Up stays within the current mode.
	m = m.switchToMode(modeEval)
	m, _ = press(m, tea.KeyShiftUp)
	m, _ = press(m, tea.KeyShiftUp)

	if m.input.Value() != "1 + 1" || m.mode != modeEval {
		t.Errorf("Shift-Up twice = %q (mode %v), want %q", m.input.Value(), m.mode, "1 + 1")
	}
}

func TestModelQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyType
	}{
		{"ctrl-c", []tea.KeyType{tea.KeyCtrlC}},
		{"ctrl-d", []tea.KeyType{tea.KeyCtrlD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "")

			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = press(m, k)
			}

			if !m.quitting || cmd == nil {
				t.Errorf("quitting = %v, cmd nil = %v", m.quitting, cmd == nil)
			}

			if m.View() != "" {
				t.Error("View() is not empty after quitting")
			}
		})
	}
}

func TestModelCtrlCClearsInput(t *testing.T) {
	m := newTestModel(t, "")
	m = typeText(m, "abc")

	m, _ = press(m, tea.KeyCtrlC)
	if m.quitting || m.input.Value() != "" {
		t.Errorf("quitting = %v input = %q", m.quitting, m.input.Value())
	}
}

func TestModelCommands(t *testing.T) {
	tests := []struct {
		input    string
		quitting bool
	}{
		{"help", false},
		{"list", false},
		{"clear", false},
		{"bogus", false},
		{"quit", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := newTestModel(t, "var a 1\n")
			m = m.switchToMode(modeCtrl)
			m = typeText(m, tt.input)

			m, cmd := press(m, tea.KeyEnter)
			if cmd == nil {
				t.Fatal("Enter returned no command")
			}

			if m.quitting != tt.quitting {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.quitting)
			}
		})
	}
}

func TestModelEditMessages(t *testing.T) {
	m := newTestModel(t, "var a 1\n")

	next := newTestSession(t, "var a 2\nvar b ^[a]\n").ast

	updated, _ := m.Update(editDoneMsg{ast: next})
	m = updated.(model)

	if m.session.doc.Len() != 2 {
		t.Errorf("doc.Len() = %d after edit, want 2", m.session.doc.Len())
	}

	updated, cmd := m.Update(editDeclinedMsg{})
	if !updated.(model).quitting || cmd == nil {
		t.Error("declined edit did not quit")
	}
}

func TestListConstants(t *testing.T) {
	m := newTestModel(t, "")
	if !strings.Contains(m.listConstants(), "no constants") {
		t.Errorf("listConstants() = %q", m.listConstants())
	}

	m = newTestModel(t, "var host \"localhost\"\nvar port 8080\n")

	got := m.listConstants()
	if !strings.Contains(got, "host") || !strings.Contains(got, "8080.0") {
		t.Errorf("listConstants() = %q", got)
	}

	if strings.Index(got, "host") > strings.Index(got, "port") {
		t.Errorf("listConstants() not in declaration order: %q", got)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, "")

	if !strings.Contains(m.View(), "var NAME VALUE") {
		t.Errorf("View() = %q, want the eval hint", m.View())
	}

	m = typeText(m, "join(")
	if !strings.Contains(m.View(), "separator") {
		t.Errorf("View() = %q, want the join signature", m.View())
	}
}
