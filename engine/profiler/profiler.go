// package profiler tracks how long each compile stage takes on one run.
// Unlike the teacher's frame profiler there is no render loop to sample on
// an interval: a single Profiler is created per Compile call, timed stage
// by stage, and reported once at the end.
package profiler

import (
	"fmt"
	"log"
	"time"
)

// StageTiming is one completed stage's name and elapsed duration, in the
// order stages were recorded.
type StageTiming struct {
	Stage string
	Elapsed time.Duration
}

// Profiler accumulates stage timings for one compile run.
type Profiler struct {
	timings []StageTiming
	started time.Time
	current string
	runStart time.Time
}

// NewProfiler creates a profiler for a fresh compile run.
func NewProfiler() *Profiler {
	return &Profiler{runStart: time.Now()}
}

// Start begins timing a named stage, e.g. "normalize", "resolve", "assemble".
// Calling Start while a previous stage is still open closes that stage
// first, so callers don't need a matching Stop before moving to the next
// one.
func (p *Profiler) Start(stage string) {
	if p.current != "" {
		p.stop()
	}
	p.current = stage
	p.started = time.Now()
}

// Stop closes the currently open stage, if any.
func (p *Profiler) Stop() {
	if p.current == "" {
		return
	}
	p.stop()
}

func (p *Profiler) stop() {
	p.timings = append(p.timings, StageTiming{Stage: p.current, Elapsed: time.Since(p.started)})
	p.current = ""
}

// Timings returns every completed stage's timing in recorded order,
// closing whatever stage is still open.
func (p *Profiler) Timings() []StageTiming {
	p.Stop()
	return p.timings
}

// Total returns the wall-clock time since the profiler was created.
func (p *Profiler) Total() time.Duration {
	return time.Since(p.runStart)
}

// Report logs one stage-by-stage breakdown plus the run total.
func (p *Profiler) Report() {
	p.Stop()
	line := "[Profiler]"
	for _, t := range p.timings {
		line += fmt.Sprintf(" %s: %s |", t.Stage, t.Elapsed)
	}
	line += fmt.Sprintf(" total: %s", p.Total())
	log.Print(line)
}
