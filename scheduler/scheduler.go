// Package scheduler implements the core's task scheduler (§4.5): a
// fixed-size worker pool that lets the renderer's per-paint prepare
// work proceed concurrently with the caller thread, joined lazily by
// whichever side next touches the result.
//
// The design notes (spec §9) ask for a join-handle replacing the
// C++ mutex-per-task pattern: a task is "working" iff its Handle has
// not yet been Done()-joined. Handle.done is a channel close rather
// than a mutex lock/unlock pair — simpler, and Go's memory model
// already guarantees a happens-before edge between a channel close
// and a receive that observes it, which is the only property the
// spec's done() barrier requires.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vecraster/vgfx/internal/parallel"
)

// Handle is the consumer-side join point for a task submitted via
// Scheduler.Prepare. Done blocks until the task has run to completion
// and returns any error it recorded.
type Handle struct {
	done chan struct{}
	err  error
}

// Done blocks until the task finishes, then returns the error it
// recorded (nil on success). Done is a no-op (returns nil immediately)
// on a nil Handle, matching spec §4.5's "done() ... is a no-op if the
// task was not working". Calling Done more than once is safe; the
// second and later calls return the same error instantly since the
// channel is already closed.
func (h *Handle) Done() error {
	if h == nil {
		return nil
	}
	<-h.done
	return h.err
}

// Working reports whether the task has not yet completed. The
// renderer's draw phase uses this to decide whether it needs to block
// before consuming a paint's prepared data.
func (h *Handle) Working() bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Scheduler owns a fixed pool of worker goroutines. N=0 means
// synchronous inline execution: Prepare runs fn before returning and
// hands back an already-Done handle (§4.5).
type Scheduler struct {
	pool    *parallel.WorkerPool
	n       int
	logger  atomic.Pointer[slog.Logger]
	tasksAt atomic.Int64 // count of tasks submitted, for diagnostics/tests
}

// New returns a Scheduler with n worker goroutines. n<=0 selects
// synchronous inline execution.
func New(n int) *Scheduler {
	s := &Scheduler{n: n}
	if n > 0 {
		s.pool = parallel.NewWorkerPool(n)
	}
	return s
}

// SetLogger configures debug logging for task dispatch. Called by the
// package that owns the Scheduler (canvas, at construction time) with
// whatever *slog.Logger it was given, rather than this package
// importing vgfx directly for Logger(), to avoid an import cycle.
func (s *Scheduler) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger.Store(l)
	}
}

func (s *Scheduler) log() *slog.Logger {
	if l := s.logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

var nopLogger = slog.New(discardHandler{})

// Prepare submits fn to run asynchronously (or inline, if N==0) and
// returns a Handle the caller can Done() later. fn's return value is
// recorded and surfaced through Handle.Done's return.
//
// Ordering: the caller (render.SoftwareRenderer.PrepareShape) is
// responsible for never submitting a new Prepare for the same paint
// before the previous one's Handle has been Done()-joined, and joins
// that Handle itself before each new submission (spec §4.5's per-paint
// serialization guarantee is the producer's contract, not the
// scheduler's — tasks for different paints carry no ordering
// guarantee between each other, matching spec §4.5).
func (s *Scheduler) Prepare(fn func() error) *Handle {
	h := &Handle{done: make(chan struct{})}
	s.tasksAt.Add(1)
	run := func() {
		defer close(h.done)
		h.err = fn()
	}
	if s.pool == nil {
		run()
		return h
	}
	s.log().Debug("scheduler: dispatching task", "workers", s.n)
	s.pool.Submit(run)
	return h
}

// Workers returns the configured worker count (0 for synchronous).
func (s *Scheduler) Workers() int {
	return s.n
}

// TasksSubmitted returns the number of tasks submitted so far, for
// tests and diagnostics.
func (s *Scheduler) TasksSubmitted() int64 {
	return s.tasksAt.Load()
}

// Close shuts down the worker pool, if any, waiting for queued work to
// finish. Close on a synchronous (N==0) scheduler is a no-op.
func (s *Scheduler) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// discardHandler is a slog.Handler that drops everything; used as the
// scheduler's default before SetLogger is ever called.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
