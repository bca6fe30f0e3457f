// Package geometry: the Element data holder shared by every node of the
// detector tree, with derived-angle accessors.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/frames"
)

// Element holds the attributes common to every detector node: identifier,
// number, bounds, centers in the station and CMS frames, an optional
// direction, and the node's own transform graph. Concrete types (Station,
// SuperLayer, Layer, DriftCell) embed it; there is no inheritance chain.
type Element struct {
	id           string
	number       int
	bounds       Bounds
	localCenter  mgl64.Vec3
	globalCenter mgl64.Vec3
	direction    mgl64.Vec3
	hasDirection bool
	graph        *frames.Graph
}

// ID returns the raw identifier from the geometry source.
func (e *Element) ID() string { return e.id }

// Number returns the element's number within its parent (superlayer 1–3,
// layer 1–4, wire number for cells, station number for stations).
func (e *Element) Number() int { return e.number }

// Bounds returns the element's spatial dimensions.
func (e *Element) Bounds() Bounds { return e.bounds }

// Width returns the extent along the measuring axis.
func (e *Element) Width() float64 { return e.bounds.Width }

// Height returns the extent across the layers.
func (e *Element) Height() float64 { return e.bounds.Height }

// Length returns the extent along the wires.
func (e *Element) Length() float64 { return e.bounds.Length }

// LocalCenter returns the element center in the station frame.
func (e *Element) LocalCenter() mgl64.Vec3 { return e.localCenter }

// GlobalCenter returns the element center in the CMS frame.
func (e *Element) GlobalCenter() mgl64.Vec3 { return e.globalCenter }

// LocalPositionAtMin returns the lower-left corner of the element in the
// station frame: the center minus half of each bound.
func (e *Element) LocalPositionAtMin() mgl64.Vec3 {
	return minCorner(e.localCenter, e.bounds)
}

// GlobalPositionAtMin returns the lower-left corner in the CMS frame.
func (e *Element) GlobalPositionAtMin() mgl64.Vec3 {
	return minCorner(e.globalCenter, e.bounds)
}

// Direction returns the unit direction toward the interaction point and
// whether one is set. Absence is legitimate partial geometry (a warning,
// not an error).
func (e *Element) Direction() (mgl64.Vec3, bool) {
	if !e.hasDirection {
		logger.Warn("element has no direction assigned", "id", e.id)

		return mgl64.Vec3{}, false
	}

	return e.direction, true
}

// Graph returns the element's transform graph. It is seeded from the
// parent's graph at construction time and read-only afterwards.
func (e *Element) Graph() *frames.Graph { return e.graph }

// PolarAngle returns θ = atan2(√(x²+y²), z) of the global center.
func (e *Element) PolarAngle() float64 {
	g := e.globalCenter

	return math.Atan2(math.Hypot(g.X(), g.Y()), g.Z())
}

// Eta returns the pseudorapidity −ln tan(θ/2) of the global center.
func (e *Element) Eta() float64 {
	return -math.Log(math.Tan(e.PolarAngle() / 2))
}

// AzimuthalAngle returns φ = atan2(y, x) of the global center.
func (e *Element) AzimuthalAngle() float64 {
	g := e.globalCenter

	return math.Atan2(g.Y(), g.X())
}

// resolve fills the element from the geometry source at key k. A missing
// normal vector is partial geometry and leaves the direction unset; every
// other attribute is required.
func (e *Element) resolve(src Source, k Key) error {
	var err error
	if e.id, err = src.RawID(k); err != nil {
		return fmt.Errorf("geometry: resolve id: %w", err)
	}
	if e.localCenter, err = src.LocalPosition(k); err != nil {
		return fmt.Errorf("geometry: resolve %s local position: %w", e.id, err)
	}
	if e.globalCenter, err = src.GlobalPosition(k); err != nil {
		return fmt.Errorf("geometry: resolve %s global position: %w", e.id, err)
	}
	if e.bounds, err = src.Bounds(k); err != nil {
		return fmt.Errorf("geometry: resolve %s bounds: %w", e.id, err)
	}

	dir, err := src.NormalVector(k)
	switch {
	case err == nil:
		e.setDirection(dir)
	case errors.Is(err, ErrAttributeNotFound):
		logger.Warn("element has no normal vector in source", "id", e.id)
	default:
		return fmt.Errorf("geometry: resolve %s normal vector: %w", e.id, err)
	}

	return nil
}

// setDirection normalizes and stores a direction.
func (e *Element) setDirection(dir mgl64.Vec3) {
	if dir.LenSqr() == 0 {
		return
	}
	e.direction = dir.Normalize()
	e.hasDirection = true
}

func minCorner(center mgl64.Vec3, b Bounds) mgl64.Vec3 {
	return mgl64.Vec3{
		center.X() - b.Width/2,
		center.Y() - b.Height/2,
		center.Z() - b.Length/2,
	}
}
