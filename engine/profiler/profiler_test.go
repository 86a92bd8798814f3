package profiler

import "testing"

func TestStartStopRecordsOneStage(t *testing.T) {
	p := NewProfiler()
	p.Start("normalize")
	p.Stop()

	timings := p.Timings()
	if len(timings) != 1 {
		t.Fatalf("got %d timings, want 1", len(timings))
	}
	if timings[0].Stage != "normalize" {
		t.Fatalf("got stage %q, want %q", timings[0].Stage, "normalize")
	}
}

func TestStartClosesPriorOpenStage(t *testing.T) {
	p := NewProfiler()
	p.Start("normalize")
	p.Start("resolve")
	p.Stop()

	timings := p.Timings()
	if len(timings) != 2 {
		t.Fatalf("got %d timings, want 2", len(timings))
	}
	if timings[0].Stage != "normalize" || timings[1].Stage != "resolve" {
		t.Fatalf("got stages %v, want [normalize resolve]", timings)
	}
}

func TestTimingsClosesDanglingStage(t *testing.T) {
	p := NewProfiler()
	p.Start("assemble")

	timings := p.Timings()
	if len(timings) != 1 || timings[0].Stage != "assemble" {
		t.Fatalf("got %v, want one closed assemble stage", timings)
	}
}
