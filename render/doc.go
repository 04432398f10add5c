// Package render implements the update/draw/sync rendering protocol's
// Renderer trait: turning a paint tree into prepared per-node coverage
// and fill data, then compositing that data into a client-owned pixel
// Target.
//
// Renderer is the only dynamic-dispatch point in the library — paint
// variants and gradient variants are tagged enums, not interfaces —
// so a GPU-backed implementation can satisfy the same interface
// alongside SoftwareRenderer, the only implementation this package
// ships.
package render
