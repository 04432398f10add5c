package canvas

import (
	"log/slog"

	"github.com/vecraster/vgfx/render"
)

// Option configures a Canvas at construction time.
type Option func(*config)

type config struct {
	threads    int
	threadsSet bool
	sharedPool bool
	logger     *slog.Logger
}

// globalSpanPool backs WithPooledSpans(true): a rasterizer scratch
// pool shared, behind a lock, across every canvas that opts in (spec
// §5's "shared with a lock" alternative to the per-canvas default).
var globalSpanPool = render.NewRasterizerPool()

// WithSchedulerSize overrides the scheduler worker count this canvas
// uses, instead of the library-wide default set by vgfx.Init.
func WithSchedulerSize(n int) Option {
	return func(c *config) { c.threads, c.threadsSet = n, true }
}

// WithPooledSpans selects whether this canvas's rasterizer scratch
// buffers come from a pool shared (behind a lock) across every canvas
// that also opts in, rather than a private pool of its own. The
// default (false) is a per-canvas pool with no cross-canvas
// contention, per spec §5.
func WithPooledSpans(shared bool) Option {
	return func(c *config) { c.sharedPool = shared }
}

// WithLogger attaches a structured logger the canvas's scheduler logs
// task failures and lifecycle events through. Defaults to vgfx.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
