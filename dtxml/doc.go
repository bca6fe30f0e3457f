// Package dtxml loads the CMS DT geometry description from its XML dump
// and serves it through the geometry.Source interface, so the detector
// builders stay ignorant of where their numbers come from.
//
// Key features:
//   - Load(path) / Parse(r): one pass over the document, chambers keyed by
//     their " Wh:w St:s Se:c " Id attribute at any nesting depth
//   - per-level records: RawID, LocalPosition, GlobalPosition,
//     NormalVector, Bounds for chambers, superlayers and layers
//   - Wires attributes (first, last) back WireRange; the global Topology
//     element (cellWidth, cellHeight, cellLength) backs CellBounds
//   - wire positions are derived, not stored: layer center plus
//     (w - (first+last)/2) x cellWidth along the layer's measuring axis,
//     which superlayer 2 rotates onto the station y axis
//
// Position text comes in the "(x, y, z)" form, either as a child element
// or as an attribute of the level element; both spellings are accepted.
//
// Lookups for a level that the document does not contain fail with
// geometry.ErrNotFound; levels present but missing the requested record
// fail with geometry.ErrAttributeNotFound, which the builders treat as
// "optional data absent" where the contract allows it.
package dtxml
