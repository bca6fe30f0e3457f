// Package geometry: the DriftCell builder.
//
// One cell, roughly to scale:
//
//	          /                        /
//	         /________________________/ 235 cm
//	        |                         |
//	 1.3 cm |                         | /
//	        |_________________________|/
//	        <------- 4.2 cm --------->
package geometry

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/frames"
)

// DriftCell is a single wire cell. Bounds come from the detector topology
// (identical for every cell); the wire number doubles as identifier and
// number. The drift time is the one attribute that stays mutable after
// construction.
type DriftCell struct {
	Element

	layer     *Layer
	driftTime float64
}

// newDriftCell builds the cell addressed by key (a wire-level Key within
// the parent layer). Its local center comes straight from the source; its
// global center is derived through the cell's own transform chain, so the
// two stay consistent by construction.
func newDriftCell(src Source, parent *Layer, key Key) (*DriftCell, error) {
	c := &DriftCell{layer: parent}
	c.id = strconv.Itoa(key.Wire)
	c.number = key.Wire

	var err error
	if c.bounds, err = src.CellBounds(); err != nil {
		return nil, fmt.Errorf("geometry: cell %s bounds: %w", c.id, err)
	}
	if c.localCenter, err = src.LocalPosition(key); err != nil {
		return nil, fmt.Errorf("geometry: cell %s local position: %w", c.id, err)
	}

	// Wires share the orientation of their layer.
	if parent.hasDirection {
		c.setDirection(parent.direction)
	}

	// Inherit the layer's edges, then place the cell: the source-stored
	// center is station-frame, the Cell→Layer translation is layer-frame.
	c.graph = frames.New(FrameCell)
	c.graph.Import(parent.Graph())
	inLayer, err := parent.Graph().TransformPoint(c.localCenter, FrameStation, FrameLayer)
	if err != nil {
		return nil, err
	}
	if err = c.graph.Add(FrameCell, FrameLayer, frames.WithTranslation(inLayer)); err != nil {
		return nil, err
	}

	// Global center through the full chain Cell→Layer→SuperLayer→Station→CMS.
	if c.globalCenter, err = c.graph.TransformPoint(mgl64.Vec3{}, FrameCell, FrameCMS); err != nil {
		return nil, err
	}

	return c, nil
}

// Layer returns the parent layer.
func (c *DriftCell) Layer() *Layer { return c.layer }

// DriftTime returns the currently assigned drift time (0 by default).
func (c *DriftCell) DriftTime() float64 { return c.driftTime }

// SetDriftTime assigns the drift time, in nanoseconds.
func (c *DriftCell) SetDriftTime(t float64) { c.driftTime = t }
