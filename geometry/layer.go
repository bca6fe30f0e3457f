// Package geometry: the Layer builder and wire-range validated cell lookup.
package geometry

import (
	"fmt"

	"github.com/dtgeo/dtgeo/frames"
)

// Layer is one plane of drift cells inside a superlayer. Its cells are
// numbered by the contiguous wire range [first, last] the geometry source
// reports for it.
type Layer struct {
	Element

	superLayer *SuperLayer
	first      int
	last       int
	cells      []*DriftCell
}

// newLayer resolves layer n of the parent superlayer and builds one drift
// cell per wire in the reported range.
func newLayer(src Source, parent *SuperLayer, n int) (*Layer, error) {
	if n < 1 || n > LayersPerSuperLayer {
		return nil, fmt.Errorf("geometry: layer %d: %w", n, ErrLayerRange)
	}

	l := &Layer{superLayer: parent}
	l.number = n
	st := parent.station
	key := StationKey(st.wheel, st.sector, st.station).
		WithSuperLayer(parent.number).
		WithLayer(n)
	if err := l.resolve(src, key); err != nil {
		return nil, err
	}

	var err error
	if l.first, l.last, err = src.WireRange(key); err != nil {
		return nil, fmt.Errorf("geometry: resolve %s wire range: %w", l.id, err)
	}

	// Inherit the superlayer's edges, then place the layer: the stored
	// local center is station-frame, so express it in the superlayer frame
	// before using it as the Layer→SuperLayer translation.
	l.graph = frames.New(FrameLayer)
	l.graph.Import(parent.Graph())
	inSL, err := parent.Graph().TransformPoint(l.localCenter, FrameStation, FrameSuperLayer)
	if err != nil {
		return nil, err
	}
	if err = l.graph.Add(FrameLayer, FrameSuperLayer, frames.WithTranslation(inSL)); err != nil {
		return nil, err
	}

	l.cells = make([]*DriftCell, 0, l.last-l.first+1)
	for w := l.first; w <= l.last; w++ {
		cell, err := newDriftCell(src, l, key.WithWire(w))
		if err != nil {
			return nil, err
		}
		l.cells = append(l.cells, cell)
	}

	return l, nil
}

// SuperLayer returns the parent superlayer.
func (l *Layer) SuperLayer() *SuperLayer { return l.superLayer }

// WireRange returns the inclusive wire-number range of this layer.
func (l *Layer) WireRange() (first, last int) {
	return l.first, l.last
}

// Cell returns the drift cell with the given wire number. Numbers outside
// [first, last] fail with ErrCellRange.
func (l *Layer) Cell(n int) (*DriftCell, error) {
	if n < l.first || n > l.last {
		return nil, fmt.Errorf("geometry: cell %d not in [%d,%d]: %w", n, l.first, l.last, ErrCellRange)
	}

	return l.cells[n-l.first], nil
}

// Cells returns all drift cells in wire order.
func (l *Layer) Cells() []*DriftCell {
	out := make([]*DriftCell, len(l.cells))
	copy(out, l.cells)

	return out
}
