// Package shapes flattens a built station into renderer-agnostic 2-D
// primitives: bounds rectangles for the station and its superlayers,
// per-cell rectangles carrying their cell reference, and line segments for
// trigger primitives. No drawing dependency; any plotting front end can
// consume the output directly.
//
// Face views:
//   - phi (default): the bending plane, horizontal axis along the station
//     x axis, vertical along z. Cells of superlayers 1 and 3 are drawn;
//     superlayer 2 appears only as its bounds box, wires-on.
//   - eta: the orthogonal plane, horizontal axis along the negated station
//     y axis, vertical along z. Only superlayer 2 cells are drawn.
//
// Coordinates are station-local by default. WithGlobal projects centers
// through the Station→CMS transform: the phi plane becomes CMS x-y, the
// eta plane becomes CMS z against the radial distance. WithInverted mirrors
// the local view through the station's inverted frames (StationNvPhi or
// StationNvEta); it has no effect on global output.
//
// Errors:
//
//	ErrViewMismatch - SegmentLine asked to project a segment onto the
//	                  view the segment does not measure.
package shapes
