package compiler

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shade/compileerr"
	"github.com/Carmen-Shannon/oxy-shade/engine/shaderspace"
	"github.com/Carmen-Shannon/oxy-shade/scene"
)

// Result is one completed Compile call's outcome, delivered on Pool's
// results channel.
type Result struct {
	Space shaderspace.ShaderSpace
	Warnings []compileerr.Warning
	Err error
}

// request is one pending compile request.
type request struct {
	doc scene.Document
	catalog scene.Catalog
}

// Pool runs Compile on a single background worker and enforces the
// host scheduling policy the compiler itself stays ignorant of: at most
// one compile in flight, and a newer Submit arriving mid-compile replaces
// whatever request was still pending rather than queueing behind it.
// Compile itself is single-threaded and stateless between calls; Pool
// exists only to arbitrate between successive calls.
type Pool struct {
	mu *sync.Mutex
	pool worker.DynamicWorkerPool
	results chan Result

	running bool
	pending *request
	nextTaskID int
}

// NewPool creates a Pool backed by one worker. It takes no arguments: the
// underlying worker pool's sizing and idle timeout are fixed here; a small
// queue is enough since Pool itself never has more than one task in
// flight plus one pending.
func NewPool() *Pool {
	return &Pool{
		mu: &sync.Mutex{},
		pool: worker.NewDynamicWorkerPool(1, 2, 5*time.Second),
		results: make(chan Result, 1),
	}
}

// Submit requests a compile of doc against catalog. If no compile is
// currently running, it starts immediately; if one is running, this
// request becomes the pending one, replacing (dropping) whatever request
// was pending before it.
func (p *Pool) Submit(doc scene.Document, catalog scene.Catalog) {
	p.mu.Lock()
	defer p.mu.Unlock()

	req := &request{doc: doc, catalog: catalog}
	if p.running {
		p.pending = req
		return
	}
	p.running = true
	p.dispatch(req)
}

// dispatch submits req to the underlying worker pool. Callers must hold
// p.mu.
func (p *Pool) dispatch(req *request) {
	id := p.nextTaskID
	p.nextTaskID++

	p.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			space, warnings, err := Compile(req.doc, req.catalog)
			p.results <- Result{Space: space, Warnings: warnings, Err: err}
			p.advance()
			return nil, nil
		},
	})
}

// advance runs after a compile finishes: if a newer request arrived while
// it was running, it starts that one next; otherwise the pool goes idle.
func (p *Pool) advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil {
		p.running = false
		return
	}
	next := p.pending
	p.pending = nil
	p.dispatch(next)
}

// Results returns the channel completed compiles are delivered on. One
// Result is sent per Submit call that actually ran to completion; a
// request dropped by a newer Submit produces no Result at all.
func (p *Pool) Results() <-chan Result {
	return p.results
}
