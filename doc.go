// Package dtgeo models the hierarchical geometry of the CMS muon drift-tube
// (DT) detector and moves coordinates between its nested reference frames.
//
// 🚀 What is dtgeo?
//
//	A pure-data geometry kernel that brings together:
//		• rigid/    — 4×4 homogeneous rigid-body transforms (rotation + translation)
//		• frames/   — a graph of named frames with DFS path composition
//		• geometry/ — the detector tree: Station → SuperLayer → Layer → DriftCell
//		• segments/ — AM trigger-primitive segments in phi and theta views
//		• records/  — flat attribute records feeding drift times and segments
//		• dtxml/    — the DTGeometry XML description as a geometry source
//		• shapes/   — renderer-agnostic 2-D rectangles & lines per face view
//
// ✨ Why choose dtgeo?
//
//   - Explicit errors – every frame/range failure is a sentinel, matched with errors.Is
//   - One tree, one lifetime – a station owns its superlayers, layers and cells
//   - No drawing deps – shapes are plain structs; plot them with whatever you like
//
// All geometry is in centimeters, all angles in radians, all values float64.
//
// Quick ASCII sketch of one station, bending-plane (phi) view:
//
//	    ┌──────────────────────────┐  SL3 (4 layers of wires, x-measuring)
//	    ├──────────────────────────┤
//	    │        (SL2, z-measuring, rotated 90° about the beam axis)
//	    ├──────────────────────────┤
//	    └──────────────────────────┘  SL1 (4 layers of wires, x-measuring)
//
// Start with geometry.NewStation, then query any element's Graph() to move
// points between "Cell", "Layer", "SuperLayer", "Station" and "CMS".
//
//	go get github.com/dtgeo/dtgeo
package dtgeo
