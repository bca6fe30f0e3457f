// Package frames maintains a graph of named coordinate frames connected by
// elementary rigid-body transforms, and composes transforms between
// arbitrary frame pairs by depth-first search over that graph.
//
// Key features:
//   - New(initial): a graph starts with one registered frame and the
//     implicit identity transform
//   - Add(from, to, ...): one elementary edge per ordered pair, given as a
//     full matrix (WithMatrix) or as rotation and/or translation parts
//     (WithRotation, WithTranslation); re-adding a pair overwrites it
//   - Transformation(from, to): first-path DFS composition; every stored
//     edge is traversable backwards through its exact inverse
//   - TransformPoint / TransformVector (+ batch forms): point semantics
//     apply the full affine map, vector semantics rotation only
//   - Import(src): seed a child graph from its parent's edge set
//
// The detector frame hierarchy is a tree, so whenever a path exists it is
// unique and the first path found is the only one. Add defends that
// invariant: inserting a NEW pair between two frames that are already
// connected fails with ErrRedundantEdge instead of silently creating a
// second, possibly inconsistent route.
//
// Errors:
//
//	ErrIdentityEdge        - attempt to add or remove a frame→itself edge.
//	ErrMissingTransform    - Add called with no transform content at all.
//	ErrConflictingTransform- WithMatrix combined with rotation/translation parts.
//	ErrRedundantEdge       - new edge would create a second path between two frames.
//	ErrEdgeNotFound        - Remove of a pair that was never stored.
//	ErrFrameNotFound       - transform request names an unregistered frame.
//	ErrNoPath              - both frames registered but disconnected.
//
// A Graph is mutated only while its owning detector element is built and
// is read-only afterwards; it is not safe for concurrent mutation.
//
// Complexity: Add/Remove O(1) (plus O(V+E) for the redundancy check),
// Transformation O(V+E) DFS over at most a handful of frames.
package frames
