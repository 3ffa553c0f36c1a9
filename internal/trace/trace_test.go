package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		emit  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.emit {
			t.Fatalf("%s/%s: expected %v, got %v", tc.level, tc.scope, tc.emit, got)
		}
	}
	if !LevelError.Records(ScopeModule) || LevelError.Records(ScopeNode) {
		t.Fatalf("error level must record up to units only")
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("Detail"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("chrome"); err != nil || f != FormatChrome {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if got := formatForPath("out.ndjson"); got != FormatNDJSON {
		t.Fatalf("expected ndjson for .ndjson, got %d", got)
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeDriver, "check", 0)
	unit := Begin(tr, ScopeModule, "unit:a.pyast", root.ID())
	Begin(tr, ScopeNode, "stmt:If", unit.ID()).End("")
	unit.WithExtra("diagnostics", "2").WithExtra("exprs", "10").End("")
	root.End("done")

	out := buf.String()
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("expected 4 lines (node spans filtered), got:\n%s", out)
	}
	if !strings.Contains(out, "← unit:a.pyast {diagnostics=2, exprs=10}") {
		t.Fatalf("extras missing or unsorted:\n%s", out)
	}
	if !strings.Contains(out, "← check (done)") {
		t.Fatalf("detail missing:\n%s", out)
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatChrome)
	span := Begin(tr, ScopePass, "sema_check", 0)
	Point(tr, ScopePass, "bag_full", span.ID(), "limit reached")
	span.End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 3 {
		t.Fatalf("expected 3 events, got %d", len(doc.TraceEvents))
	}
	if doc.TraceEvents[0]["ph"] != "B" || doc.TraceEvents[2]["ph"] != "E" {
		t.Fatalf("unexpected phases %v", doc.TraceEvents)
	}
}

func TestRingWrapsAndKeepsOrder(t *testing.T) {
	ring := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePass, name, 0, "")
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("event %d: expected %s, got %s", i, want, snap[i].Name)
		}
	}
}

func TestRingRecordsAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Begin(ring, ScopeModule, "unit", 0).End("")
	Begin(ring, ScopeNode, "stmt", 0).End("")
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("expected unit begin/end only, got %d", got)
	}
}

func TestMultiTracerCopiesEvents(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	var buf bytes.Buffer
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatNDJSON), ring)
	Begin(multi, ScopeDriver, "check", 0).End("")
	if got, ok := multi.Ring(); !ok || got != ring {
		t.Fatalf("Ring must return the ring tracer")
	}
	if len(ring.Snapshot()) != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("both tracers must receive both events")
	}
}

func TestNopAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must yield a disabled tracer")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("disabled span must be inert")
	}
	var nilSpan *Span
	nilSpan.WithExtra("k", "v").End("")

	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	ring := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated")
	}
	parent := Begin(ring, ScopeDriver, "root", 0)
	if got := ParentSpan(WithParentSpan(ctx, parent)); got != parent.ID() {
		t.Fatalf("parent span not propagated: %d", got)
	}
}
