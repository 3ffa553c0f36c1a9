package ui

import (
	"strings"
	"testing"

	"pycheck/internal/driver"
)

func TestProgressModelTracksUnits(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("pycheck", []string{"a.pyast", "b.pyast"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.pyast", Stage: driver.StageBind, Status: driver.StatusWorking})
	if got := m.rows[0].label(); got != "binding" {
		t.Fatalf("expected binding, got %q", got)
	}
	m.Update(eventMsg{File: "a.pyast", Stage: driver.StageCheck, Status: driver.StatusDone, Diagnostics: 2})
	m.Update(eventMsg{File: "b.pyast", Stage: driver.StageLoad, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown.pyast", Stage: driver.StageLoad, Status: driver.StatusDone})
	m.Update(eventMsg{Stage: driver.StageCheck, Status: driver.StatusWorking})

	if got := m.fraction(); got != 1.0 {
		t.Fatalf("expected full progress, got %v", got)
	}
	if m.phase != "checking" {
		t.Fatalf("expected run-level label, got %q", m.phase)
	}
	if !m.rows[0].bound || m.rows[1].bound {
		t.Fatalf("only a.pyast went through the binder")
	}
	view := m.View()
	for _, want := range []string{"a.pyast (2) [bound]", "error", "pycheck (checking)", "2/2 units, 2 diagnostics", "1 failed to load"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatalf("done must quit the program")
	}
	if !strings.Contains(m.View(), "done: pycheck") {
		t.Fatalf("done header missing:\n%s", m.View())
	}
}

func TestFractionByStage(t *testing.T) {
	m := NewProgressModel("t", []string{"a", "b"}, nil).(*progressModel)
	m.apply(driver.Event{File: "a", Stage: driver.StageLoad, Status: driver.StatusWorking})
	m.apply(driver.Event{File: "b", Stage: driver.StageCheck, Status: driver.StatusWorking})
	if got := m.fraction(); got < 0.449 || got > 0.451 {
		t.Fatalf("expected 0.45, got %v", got)
	}
}

func TestQueuedLabel(t *testing.T) {
	m := NewProgressModel("t", []string{"a"}, nil).(*progressModel)
	if got := m.rows[0].label(); got != "queued" {
		t.Fatalf("expected queued, got %q", got)
	}
	m.apply(driver.Event{File: "a", Stage: driver.StageLoad, Status: driver.StatusQueued})
	if got := m.rows[0].label(); got != "queued" {
		t.Fatalf("expected queued, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 2, "ab"},
		{"模块模块模块", 7, "模块..."},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
