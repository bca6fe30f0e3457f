// Package frames: Graph construction, edge management, and DFS composition.
package frames

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/rigid"
)

// Graph owns a set of named frames and the elementary transforms between
// them. It is created with a single initial frame and grows monotonically
// while its owning detector element is built; it only shrinks through an
// explicit Remove.
type Graph struct {
	frames map[Frame]struct{}
	edges  map[pair]rigid.Transform
}

// New creates a Graph holding only the initial frame. The frame→itself
// identity transform exists implicitly and can never be added or removed.
func New(initial Frame) *Graph {
	return &Graph{
		frames: map[Frame]struct{}{initial: {}},
		edges:  make(map[pair]rigid.Transform),
	}
}

// Add stores the elementary transform from→to described by the options.
//
// Exactly one description must be usable: WithMatrix alone, or any
// combination of WithRotation and WithTranslation. Re-adding an existing
// ordered pair overwrites it (idempotent, last write wins). Adding a new
// pair between two frames that are already connected fails with
// ErrRedundantEdge, keeping the frame hierarchy a tree. Both frame names
// are registered on success.
func (g *Graph) Add(from, to Frame, opts ...Option) error {
	// 1. Reject identity mutation before touching the options
	if from == to {
		return fmt.Errorf("frames: add %q→%q: %w", from, to, ErrIdentityEdge)
	}

	// 2. Resolve the transform description
	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	t, err := cfg.resolve()
	if err != nil {
		return fmt.Errorf("frames: add %q→%q: %w", from, to, err)
	}

	// 3. Defend the tree invariant: a brand-new pair must not bridge two
	//    frames that already reach each other.
	key := pair{from: from, to: to}
	if _, exists := g.edges[key]; !exists {
		if g.has(from) && g.has(to) && g.connected(from, to) {
			return fmt.Errorf("frames: add %q→%q: %w", from, to, ErrRedundantEdge)
		}
	}

	// 4. Store and register
	g.edges[key] = t
	g.frames[from] = struct{}{}
	g.frames[to] = struct{}{}

	return nil
}

// Remove deletes a stored edge. The identity pair is immutable and frame
// names stay registered even when their last edge is removed.
func (g *Graph) Remove(from, to Frame) error {
	if from == to {
		return fmt.Errorf("frames: remove %q→%q: %w", from, to, ErrIdentityEdge)
	}

	key := pair{from: from, to: to}
	if _, exists := g.edges[key]; !exists {
		return fmt.Errorf("frames: remove %q→%q: %w", from, to, ErrEdgeNotFound)
	}
	delete(g.edges, key)

	return nil
}

// Import copies every stored edge of src into g, registering the frames it
// touches. Pairs already present in g keep their current transform, so a
// child graph seeded from its parent can add its own placement edge first
// or last without surprises.
func (g *Graph) Import(src *Graph) {
	if src == nil {
		return
	}
	for key, t := range src.edges {
		if _, exists := g.edges[key]; exists {
			continue
		}
		g.edges[key] = t
		g.frames[key.from] = struct{}{}
		g.frames[key.to] = struct{}{}
	}
}

// Transformation returns the composed transform mapping from-coordinates
// into to-coordinates, searching the edge set as an undirected graph.
//
// Each stored edge is traversable in either direction; a backwards step
// uses the exact rigid inverse. The first path found wins — the hierarchy
// is a tree, so that path is unique whenever it exists.
func (g *Graph) Transformation(from, to Frame) (rigid.Transform, error) {
	// 1. Both endpoints must be registered
	if !g.has(from) {
		return rigid.Transform{}, fmt.Errorf("frames: %q: %w", from, ErrFrameNotFound)
	}
	if !g.has(to) {
		return rigid.Transform{}, fmt.Errorf("frames: %q: %w", to, ErrFrameNotFound)
	}

	// 2. Identity short-circuit
	if from == to {
		return rigid.Identity(), nil
	}

	// 3. Depth-first search accumulating the product along the path
	visited := map[Frame]bool{from: true}
	if t, ok := g.search(from, to, rigid.Identity(), visited); ok {
		return t, nil
	}

	return rigid.Transform{}, fmt.Errorf("frames: %q→%q: %w", from, to, ErrNoPath)
}

// search recursively extends the path ending at cur, where acc already maps
// the original source frame into cur-coordinates.
func (g *Graph) search(cur, target Frame, acc rigid.Transform, visited map[Frame]bool) (rigid.Transform, bool) {
	for key, t := range g.edges {
		var next Frame
		var step rigid.Transform

		switch cur {
		case key.from:
			next, step = key.to, t
		case key.to:
			next, step = key.from, t.Invert()
		default:
			continue
		}
		if visited[next] {
			continue
		}

		composed := step.Compose(acc)
		if next == target {
			return composed, true
		}

		visited[next] = true
		if found, ok := g.search(next, target, composed, visited); ok {
			return found, ok
		}
	}

	return rigid.Transform{}, false
}

// connected reports whether any chain of edges joins a and b.
func (g *Graph) connected(a, b Frame) bool {
	visited := map[Frame]bool{a: true}
	_, ok := g.search(a, b, rigid.Identity(), visited)

	return ok
}

// TransformPoint maps a point from one frame to another, applying the full
// affine transform along the discovered path.
func (g *Graph) TransformPoint(p mgl64.Vec3, from, to Frame) (mgl64.Vec3, error) {
	t, err := g.Transformation(from, to)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return t.ApplyPoint(p), nil
}

// TransformVector maps a direction from one frame to another, rotation
// only. Callers needing unit directions must renormalize the result.
func (g *Graph) TransformVector(v mgl64.Vec3, from, to Frame) (mgl64.Vec3, error) {
	t, err := g.Transformation(from, to)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return t.ApplyVector(v), nil
}

// TransformPoints is the batch form of TransformPoint: n points in, n
// points out, one path search.
func (g *Graph) TransformPoints(ps []mgl64.Vec3, from, to Frame) ([]mgl64.Vec3, error) {
	t, err := g.Transformation(from, to)
	if err != nil {
		return nil, err
	}

	return t.ApplyPoints(ps), nil
}

// TransformVectors is the batch form of TransformVector.
func (g *Graph) TransformVectors(vs []mgl64.Vec3, from, to Frame) ([]mgl64.Vec3, error) {
	t, err := g.Transformation(from, to)
	if err != nil {
		return nil, err
	}

	return t.ApplyVectors(vs), nil
}

// HasFrame reports whether name has been registered, directly or through
// any Add or Import that touched it.
func (g *Graph) HasFrame(name Frame) bool {
	return g.has(name)
}

// Frames returns all registered frame names in sorted order.
func (g *Graph) Frames() []Frame {
	out := make([]Frame, 0, len(g.frames))
	for f := range g.frames {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Len returns the number of stored elementary edges.
func (g *Graph) Len() int {
	return len(g.edges)
}

func (g *Graph) has(name Frame) bool {
	_, ok := g.frames[name]

	return ok
}
