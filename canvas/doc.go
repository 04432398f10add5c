// Package canvas implements Canvas (§3.6, §4.4): the root paint list,
// the target pixel buffer binding, and the update/draw/sync state
// machine every drawing session drives. Canvas is deliberately thin —
// all rasterization and compositing logic lives in render and its
// dependencies — it owns the protocol, not the pixels.
//
// A Canvas is not safe for concurrent use: spec §5 scopes the core to
// a single owning goroutine per canvas, with separate canvases fully
// independent of one another.
package canvas
