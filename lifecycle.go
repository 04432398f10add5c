package vgfx

import "sync"

// libMu guards the reference-counted init state (§6.1).
var (
	libMu      sync.Mutex
	libRefs    int
	libThreads int
)

// Init increments the library's initialization counter. The call that
// raises the counter from zero also sets the scheduler pool size new
// canvases pick up by default; later calls leave it unchanged. Repeated
// Init calls are reference-counted: Term must be called an equal number
// of times before shared global state (the loader cache) is released.
//
// threads is the number of scheduler worker goroutines a Canvas
// constructed without an explicit canvas.WithSchedulerSize option will
// use; 0 means synchronous inline execution (§4.5).
func Init(threads int) Result {
	libMu.Lock()
	defer libMu.Unlock()
	if libRefs == 0 {
		libThreads = threads
		Logger().Debug("vgfx: initialized", "threads", threads)
	}
	libRefs++
	return ResultSuccess
}

// Term decrements the initialization counter. At zero, it flushes the
// process-wide loader cache (via the hooks loader registers through
// RegisterTermHook) except loader kinds that opt out of flushing
// (§6.1: "except for loader types the engine keeps alive globally,
// such as fonts" — not applicable here since no font loader is
// implemented in this core, see SPEC_FULL.md §9).
//
// Term called with no matching Init returns ResultInsufficientCondition.
func Term() Result {
	libMu.Lock()
	defer libMu.Unlock()
	if libRefs == 0 {
		return ResultInsufficientCondition
	}
	libRefs--
	if libRefs == 0 {
		libThreads = 0
		Logger().Debug("vgfx: terminated")
		for _, hook := range termHooks {
			hook()
		}
	}
	return ResultSuccess
}

// DefaultSchedulerThreads returns the pool size set by the Init call
// that started the current initialization, or 0 (synchronous) if the
// library is not initialized. Canvas uses this as its default when constructed
// without an explicit scheduler size option.
func DefaultSchedulerThreads() int {
	libMu.Lock()
	defer libMu.Unlock()
	return libThreads
}

// termHooks are callbacks run when the init counter reaches zero.
// Registered by leaf packages (loader) that need to release global
// state without this package importing them back.
var termHooks []func()

// RegisterTermHook registers fn to run when Term drops the
// initialization count to zero.
func RegisterTermHook(fn func()) {
	termHooks = append(termHooks, fn)
}
