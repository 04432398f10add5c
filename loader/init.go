package loader

import (
	"log/slog"

	"github.com/vecraster/vgfx"
)

// cacheLogger is kept current by vgfx.RegisterLoggerSetter so
// Flush can log without this package storing its own
// atomic pointer redundantly alongside vgfx's.
var cacheLogger *slog.Logger

// init registers this package's global cache to flush whenever the
// library's init counter (vgfx.Init/vgfx.Term) drops to zero, per
// §6.1: "term() ... flushes loader caches". vgfx does not import this
// package back, so no import cycle.
func init() {
	vgfx.RegisterTermHook(FlushGlobalCache)
	vgfx.RegisterLoggerSetter(func(l *slog.Logger) { cacheLogger = l })
}
