// Package geometry models the DT detector hierarchy — Station → SuperLayer
// → Layer → DriftCell — and gives every element a position in nested
// reference frames through an owned frames.Graph.
//
// Key features:
//   - NewStation(src, wheel, sector, station): builds the whole sub-tree
//     from a geometry Source, wiring each child's transform graph from its
//     parent's plus exactly one placement edge
//   - Fixed cardinalities: up to 3 superlayers (2 may be physically absent),
//     exactly 4 layers per superlayer, one drift cell per wire in the
//     layer's contiguous [first,last] range
//   - Shared Element data holder: identifier, number, bounds, local/global
//     center, optional direction, min-corner accessors, derived angles
//     (pseudorapidity, polar and azimuthal angles)
//   - Trigger-primitive frames (phi and, when superlayer 2 exists, theta)
//     registered lazily into the station graph on first use
//   - Drift-time ingestion from flat attribute records
//
// Local centers are expressed in the station frame, global centers in the
// CMS frame; all lengths in centimeters.
//
// Range errors (wheel ∉ [−2,2], sector ∉ [1,14], …) surface at
// construction time as sentinels and are never silently defaulted.
// Missing optional data (absent superlayer 2, unset direction) is
// non-fatal: accessors return an explicit nil/ok=false and emit a warning
// through the package logger.
//
// A station and everything below it is built once and topology-immutable
// afterwards; only per-cell drift times stay mutable. Nothing here is safe
// for concurrent mutation, and nothing needs it: construction is
// single-threaded and reads are lock-free afterwards.
package geometry
