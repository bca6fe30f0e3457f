// Package geometry: the SuperLayer builder and the fixed wire-orientation
// rotation rule.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/frames"
)

// SuperLayer is a group of four parallel wire layers sharing one wire
// orientation. Superlayers 1 and 3 measure the bending (phi) coordinate;
// superlayer 2, where present, is rotated 90° about the beam axis and
// measures the orthogonal (theta) coordinate.
type SuperLayer struct {
	Element

	station *Station
	layers  [LayersPerSuperLayer]*Layer
}

// newSuperLayer resolves superlayer n of the parent station and builds its
// four layers. The caller has already checked the superlayer exists, so
// any lookup failure in here is a broken description, not absence.
func newSuperLayer(src Source, parent *Station, n int) (*SuperLayer, error) {
	if n < 1 || n > SuperLayersPerStation {
		return nil, fmt.Errorf("geometry: superlayer %d: %w", n, ErrSuperLayerRange)
	}

	sl := &SuperLayer{station: parent}
	sl.number = n
	key := StationKey(parent.wheel, parent.sector, parent.station).WithSuperLayer(n)
	if err := sl.resolve(src, key); err != nil {
		return nil, err
	}

	// Inherit the parent's edges, then place this superlayer inside the
	// station: rotation from the wire-orientation rule, translation at the
	// superlayer's own center.
	sl.graph = frames.New(FrameSuperLayer)
	sl.graph.Import(parent.Graph())
	if err := sl.graph.Add(FrameSuperLayer, FrameStation,
		frames.WithRotation(superLayerRotation(n)),
		frames.WithTranslation(sl.localCenter)); err != nil {
		return nil, err
	}

	for l := 1; l <= LayersPerSuperLayer; l++ {
		layer, err := newLayer(src, sl, l)
		if err != nil {
			return nil, err
		}
		sl.layers[l-1] = layer
	}

	return sl, nil
}

// Station returns the parent station.
func (sl *SuperLayer) Station() *Station { return sl.station }

// Layer returns the layer with the given number, or nil for an
// out-of-range number.
func (sl *SuperLayer) Layer(n int) *Layer {
	if n < 1 || n > LayersPerSuperLayer {
		return nil
	}

	return sl.layers[n-1]
}

// Layers returns all four layers in number order.
func (sl *SuperLayer) Layers() []*Layer {
	out := make([]*Layer, LayersPerSuperLayer)
	copy(out, sl.layers[:])

	return out
}

// superLayerRotation is the fixed rule table keyed by superlayer number:
// superlayer 2 is rotated 90° about the beam axis relative to 1 and 3,
// mapping x(SL2) → −y(Station) and y(SL2) → x(Station).
func superLayerRotation(n int) mgl64.Mat3 {
	if n != 2 {
		return mgl64.Ident3()
	}

	// Column-major: columns are the images of the SL2 basis vectors.
	return mgl64.Mat3{
		0, -1, 0, // x(SL2) → −y(Station)
		1, 0, 0, // y(SL2) → x(Station)
		0, 0, 1, // z shared (beam axis)
	}
}
