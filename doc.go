// Package vgfx is a software 2D vector graphics rendering core: a paint
// tree (vgfx/paint), a software rasterization pipeline (vgfx/geom,
// vgfx/raster, vgfx/stroke, vgfx/fill, vgfx/compose), a renderer state
// machine and canvas (vgfx/render, vgfx/canvas), an asynchronous task
// scheduler (vgfx/scheduler), and a loader contract with a process-wide
// cache (vgfx/loader).
//
// This root package holds only the library-wide concerns that don't
// belong to any one subsystem: process lifecycle (Init/Term), the
// public Result status enum every operation returns, and logging.
// Everything else lives in the subpackages listed above; import them
// directly.
package vgfx
