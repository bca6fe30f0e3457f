// Package frames: Frame and edge types, sentinel errors, and Add options.
package frames

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/rigid"
)

// Frame identifies a coordinate system by name. Names are opaque tokens;
// the detector builders use "Cell", "Layer", "SuperLayer", "Station",
// "CMS" and the auxiliary trigger-primitive and inverted-view frames.
type Frame string

// Sentinel errors for graph operations.
var (
	// ErrIdentityEdge indicates an attempt to add or remove the implicit
	// frame→itself identity transform.
	ErrIdentityEdge = errors.New("frames: identity edge is immutable")

	// ErrMissingTransform indicates Add was called without WithMatrix,
	// WithRotation or WithTranslation.
	ErrMissingTransform = errors.New("frames: no transform given")

	// ErrConflictingTransform indicates WithMatrix was combined with
	// WithRotation or WithTranslation in one Add call.
	ErrConflictingTransform = errors.New("frames: matrix conflicts with rotation/translation parts")

	// ErrRedundantEdge indicates a new edge between two frames that are
	// already connected by a path; the frame hierarchy must stay a tree.
	ErrRedundantEdge = errors.New("frames: frames already connected")

	// ErrEdgeNotFound indicates Remove referenced a pair that was never stored.
	ErrEdgeNotFound = errors.New("frames: edge not found")

	// ErrFrameNotFound indicates a transform request named an unregistered frame.
	ErrFrameNotFound = errors.New("frames: frame not registered")

	// ErrNoPath indicates both frames are registered but no chain of edges
	// connects them. The topology is static once built, so this is a
	// construction-order bug, not a transient condition.
	ErrNoPath = errors.New("frames: no path between frames")
)

// pair is an ordered frame pair used as the edge-map key.
type pair struct {
	from, to Frame
}

// Option configures one Add call.
type Option func(*addConfig)

// addConfig gathers the mutually exclusive ways to describe an edge.
type addConfig struct {
	matrix    *rigid.Transform
	rotation  *mgl64.Mat3
	translate *mgl64.Vec3
}

// WithMatrix provides the full elementary transform. It cannot be combined
// with WithRotation or WithTranslation.
func WithMatrix(t rigid.Transform) Option {
	return func(c *addConfig) { c.matrix = &t }
}

// WithRotation provides the rotation part; translation defaults to zero.
func WithRotation(rot mgl64.Mat3) Option {
	return func(c *addConfig) { c.rotation = &rot }
}

// WithTranslation provides the translation part; rotation defaults to identity.
func WithTranslation(trans mgl64.Vec3) Option {
	return func(c *addConfig) { c.translate = &trans }
}

// resolve validates the option set and produces the elementary transform.
func (c *addConfig) resolve() (rigid.Transform, error) {
	hasParts := c.rotation != nil || c.translate != nil

	switch {
	case c.matrix != nil && hasParts:
		return rigid.Transform{}, ErrConflictingTransform
	case c.matrix != nil:
		return *c.matrix, nil
	case hasParts:
		rot := mgl64.Ident3()
		if c.rotation != nil {
			rot = *c.rotation
		}
		var trans mgl64.Vec3
		if c.translate != nil {
			trans = *c.translate
		}

		return rigid.FromParts(rot, trans), nil
	default:
		return rigid.Transform{}, ErrMissingTransform
	}
}
