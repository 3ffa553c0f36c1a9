package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	load := timer.Begin("load")
	time.Sleep(time.Millisecond)
	timer.End(load, "2 units")
	timer.Measure("check", func() string { return "" })
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[0].Note != "2 units" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %.3f shorter than a phase %.3f", report.TotalMS, report.Phases[0].DurationMS)
	}
	summary := timer.Summary()
	if !strings.HasPrefix(summary, "timings:\n") || !strings.Contains(summary, "// 2 units") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestTimerConcurrentAndNil(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Measure("unit", func() string { return "" })
		}()
	}
	wg.Wait()
	if got := len(timer.Report().Phases); got != 8 {
		t.Fatalf("expected 8 phases, got %d", got)
	}

	var none *Timer
	none.End(none.Begin("x"), "")
	if len(none.Report().Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}
