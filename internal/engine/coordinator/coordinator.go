// Package coordinator implements the Coordinator: a singleton, named
// actor that serializes every mutation of the in-flight job set and the
// loaded-libraries set behind a single request channel, while each
// accepted job's recipe runs concurrently in its own goroutine bounded by a
// semaphore sized to the configured job count.
package coordinator

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/exmake/internal/engine/runner"
)

// Done is the completion message the Coordinator delivers to a job's owner
// channel exactly once per enqueued vertex.
type Done struct {
	VertexID domain.InternedString
	Err      error
}

// jobEntry is one accepted-or-queued unit of work.
type jobEntry struct {
	vertex *domain.Vertex
	owner  chan<- Done
}

// message is the sum type carried over the Coordinator's request channel;
// each variant's apply method runs inside the single actor goroutine.
type message interface {
	apply(c *Coordinator)
}

// Coordinator is the singleton build actor. Construct with New; call Run in
// its own goroutine, then stop it with Close once the build is finished.
type Coordinator struct {
	requests chan message
	quit     chan struct{}
	wg       sync.WaitGroup

	cfg       domain.Config
	maxJobs   int64
	sem       *semaphore.Weighted
	jobs      map[domain.InternedString]jobEntry
	libraries map[string]struct{}
	tracer    ports.Tracer

	// acquireTurn is closed once the most recently launched job has returned
	// from its semaphore Acquire; the next launched job waits on it first.
	acquireTurn chan struct{}

	runner *runner.Runner
}

// New creates a Coordinator for one build, bounding concurrent Runner
// goroutines at cfg.JobsOrDefault().
func New(cfg domain.Config, r *runner.Runner, tracer ports.Tracer) *Coordinator {
	maxJobs := int64(cfg.JobsOrDefault())
	c := &Coordinator{
		requests:  make(chan message),
		quit:      make(chan struct{}),
		cfg:       cfg,
		maxJobs:   maxJobs,
		sem:       semaphore.NewWeighted(maxJobs),
		jobs:      make(map[domain.InternedString]jobEntry),
		libraries: make(map[string]struct{}),
		tracer:    tracer,
		runner:    r,
	}
	go c.loop()
	return c
}

// Wait blocks until every launched Runner goroutine has returned. The
// Worker driver calls this while draining in-flight jobs on a failure path.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close stops the actor loop. Callers must ensure every enqueued job has
// already reported Done (or call Wait first) before calling Close.
func (c *Coordinator) Close() {
	close(c.quit)
}

func (c *Coordinator) loop() {
	for {
		select {
		case msg := <-c.requests:
			msg.apply(c)
		case <-c.quit:
			return
		}
	}
}

func (c *Coordinator) send(msg message) {
	select {
	case c.requests <- msg:
	case <-c.quit:
	}
}

// SetConfig replaces the active configuration and the concurrency bound it
// implies.
func (c *Coordinator) SetConfig(cfg domain.Config) {
	reply := make(chan struct{})
	c.send(&setConfigMsg{cfg: cfg, reply: reply})
	<-reply
}

type setConfigMsg struct {
	cfg   domain.Config
	reply chan struct{}
}

func (m *setConfigMsg) apply(c *Coordinator) {
	c.cfg = m.cfg
	c.maxJobs = int64(m.cfg.JobsOrDefault())
	c.sem = semaphore.NewWeighted(c.maxJobs)
	close(m.reply)
}

// GetConfig returns the active configuration.
func (c *Coordinator) GetConfig() domain.Config {
	reply := make(chan domain.Config, 1)
	c.send(&getConfigMsg{reply: reply})
	return <-reply
}

type getConfigMsg struct {
	reply chan domain.Config
}

func (m *getConfigMsg) apply(c *Coordinator) {
	m.reply <- c.cfg
}

// Enqueue accepts vertex for execution, launching a Runner goroutine
// immediately if a concurrency slot is free and otherwise queueing it. It
// always replies immediately — callers should not read owner until later.
// Exactly one Done is ever sent to owner for a given vertex.
func (c *Coordinator) Enqueue(ctx context.Context, vertex *domain.Vertex, owner chan<- Done) {
	reply := make(chan struct{})
	c.send(&enqueueMsg{ctx: ctx, vertex: vertex, owner: owner, reply: reply})
	<-reply
}

type enqueueMsg struct {
	ctx    context.Context
	vertex *domain.Vertex
	owner  chan<- Done
	reply  chan struct{}
}

func (m *enqueueMsg) apply(c *Coordinator) {
	entry := jobEntry{vertex: m.vertex, owner: m.owner}
	c.jobs[m.vertex.ID] = entry
	c.launch(m.ctx, entry)
	close(m.reply)
}

// launch starts the job's Runner goroutine. Acquiring the semaphore inside
// the goroutine (rather than in the actor loop) keeps the actor itself
// non-blocking; jobs past the concurrency bound simply wait on the
// semaphore in the order they were launched.
func (c *Coordinator) launch(ctx context.Context, entry jobEntry) {
	prevTurn := c.acquireTurn
	turn := make(chan struct{})
	c.acquireTurn = turn
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		spanCtx, span := c.tracer.Start(ctx, entry.vertex.String())
		defer span.End()

		if prevTurn != nil {
			<-prevTurn
		}
		err := c.sem.Acquire(spanCtx, 1)
		close(turn)
		if err != nil {
			c.send(&doneMsg{vertexID: entry.vertex.ID, err: err})
			return
		}
		res := c.runner.Run(spanCtx, entry.vertex)
		c.sem.Release(1)

		if res.Err != nil {
			span.RecordError(res.Err)
		}
		c.send(&doneMsg{vertexID: entry.vertex.ID, err: res.Err})
	}()
}

type doneMsg struct {
	vertexID domain.InternedString
	err      error
}

func (m *doneMsg) apply(c *Coordinator) {
	entry, ok := c.jobs[m.vertexID]
	if !ok {
		return
	}
	delete(c.jobs, m.vertexID)
	entry.owner <- Done{VertexID: m.vertexID, Err: m.err}
}

// AddLib records libID as loaded for this build, reporting whether it was
// newly added (false means it was already loaded and on_load should not
// run again).
func (c *Coordinator) AddLib(libID string) bool {
	reply := make(chan bool, 1)
	c.send(&addLibMsg{libID: libID, reply: reply})
	return <-reply
}

type addLibMsg struct {
	libID string
	reply chan bool
}

func (m *addLibMsg) apply(c *Coordinator) {
	_, exists := c.libraries[m.libID]
	c.libraries[m.libID] = struct{}{}
	m.reply <- !exists
}

// DelLib removes libID from the loaded set.
func (c *Coordinator) DelLib(libID string) {
	reply := make(chan struct{})
	c.send(&delLibMsg{libID: libID, reply: reply})
	<-reply
}

type delLibMsg struct {
	libID string
	reply chan struct{}
}

func (m *delLibMsg) apply(c *Coordinator) {
	delete(c.libraries, m.libID)
	close(m.reply)
}

// ClearLibs empties the loaded-libraries set, run once per build before the
// stale/fresh path decision.
func (c *Coordinator) ClearLibs() {
	reply := make(chan struct{})
	c.send(&clearLibsMsg{reply: reply})
	<-reply
}

type clearLibsMsg struct {
	reply chan struct{}
}

func (m *clearLibsMsg) apply(c *Coordinator) {
	c.libraries = make(map[string]struct{})
	close(m.reply)
}

// GetLibs returns the currently loaded library IDs.
func (c *Coordinator) GetLibs() []string {
	reply := make(chan []string, 1)
	c.send(&getLibsMsg{reply: reply})
	return <-reply
}

type getLibsMsg struct {
	reply chan []string
}

func (m *getLibsMsg) apply(c *Coordinator) {
	out := make([]string, 0, len(c.libraries))
	for id := range c.libraries {
		out = append(out, id)
	}
	m.reply <- out
}
