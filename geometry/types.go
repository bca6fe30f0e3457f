// Package geometry: sentinel errors, frame names, Bounds, Key, the Source
// interface, and the package warning logger.
package geometry

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/frames"
)

// Frame names used by the detector builders. Every element's graph speaks
// this fixed vocabulary plus the auxiliary station-level frames.
const (
	FrameCell       frames.Frame = "Cell"
	FrameLayer      frames.Frame = "Layer"
	FrameSuperLayer frames.Frame = "SuperLayer"
	FrameStation    frames.Frame = "Station"
	FrameCMS        frames.Frame = "CMS"

	// Trigger-primitive frames, registered lazily by EnsureTriggerFrames.
	FrameTPsPhi   frames.Frame = "TPsFramePhi"
	FrameTPsTheta frames.Frame = "TPsFrameTheta"

	// Inverted-view frames used by 2-D shape extraction.
	FrameStationNvPhi frames.Frame = "StationNvPhi"
	FrameStationNvEta frames.Frame = "StationNvEta"
)

// Detector cardinalities. Superlayer 2 may be physically absent in some
// stations; everything else is fixed by the DT design.
const (
	SuperLayersPerStation = 3
	LayersPerSuperLayer   = 4
)

// Sentinel errors for construction and lookup.
var (
	// ErrWheelRange indicates a wheel outside [-2, 2].
	ErrWheelRange = errors.New("geometry: wheel must be between -2 and 2")

	// ErrSectorRange indicates a sector outside [1, 14].
	ErrSectorRange = errors.New("geometry: sector must be between 1 and 14")

	// ErrStationNumberRange indicates a station number outside [1, 4].
	ErrStationNumberRange = errors.New("geometry: station must be between 1 and 4")

	// ErrSuperLayerRange indicates a superlayer number outside [1, 3].
	ErrSuperLayerRange = errors.New("geometry: superlayer number must be between 1 and 3")

	// ErrLayerRange indicates a layer number outside [1, 4].
	ErrLayerRange = errors.New("geometry: layer number must be between 1 and 4")

	// ErrCellRange indicates a wire number outside the layer's [first, last] range.
	ErrCellRange = errors.New("geometry: cell number outside wire range")

	// ErrNotFound is returned by Source implementations for unknown keys.
	ErrNotFound = errors.New("geometry: element not found in source")

	// ErrAttributeNotFound is returned by Source implementations when the
	// element exists but does not carry the requested attribute.
	ErrAttributeNotFound = errors.New("geometry: attribute not found in source")

	// ErrSuperLayerAbsent indicates an operation that requires a superlayer
	// which this station does not physically have.
	ErrSuperLayerAbsent = errors.New("geometry: superlayer not present in station")
)

// Bounds are the spatial dimensions of a detector element, in centimeters.
type Bounds struct {
	Width  float64 // along the measuring axis
	Height float64 // across the layers
	Length float64 // along the wires
}

// Key addresses an element in a geometry Source hierarchically. Wheel,
// Sector and Station are always meaningful; SuperLayer, Layer and Wire are
// each "not addressed" when zero (their valid ranges start at 1).
type Key struct {
	Wheel      int
	Sector     int
	Station    int
	SuperLayer int
	Layer      int
	Wire       int
}

// StationKey builds a station-level key.
func StationKey(wheel, sector, station int) Key {
	return Key{Wheel: wheel, Sector: sector, Station: station}
}

// WithSuperLayer returns a copy of k addressing superlayer n.
func (k Key) WithSuperLayer(n int) Key {
	k.SuperLayer = n

	return k
}

// WithLayer returns a copy of k addressing layer n.
func (k Key) WithLayer(n int) Key {
	k.Layer = n

	return k
}

// WithWire returns a copy of k addressing wire n.
func (k Key) WithWire(n int) Key {
	k.Wire = n

	return k
}

// Source is the black-box geometry description the builders read raw
// numbers from. Implementations must be deterministic for equal keys and
// fail with ErrNotFound for unknown keys; a present element lacking a
// requested attribute fails with ErrAttributeNotFound.
//
// Positions are triples in centimeters: LocalPosition in the station
// frame, GlobalPosition in the CMS frame.
type Source interface {
	// RawID returns the element's raw identifier.
	RawID(k Key) (string, error)

	// LocalPosition returns the element center in the station frame.
	LocalPosition(k Key) (mgl64.Vec3, error)

	// GlobalPosition returns the element center in the CMS frame.
	GlobalPosition(k Key) (mgl64.Vec3, error)

	// NormalVector returns the element's direction toward the interaction
	// point, not necessarily unit length.
	NormalVector(k Key) (mgl64.Vec3, error)

	// Bounds returns width, height and length.
	Bounds(k Key) (Bounds, error)

	// WireRange returns the inclusive wire-number range of a layer key.
	WireRange(k Key) (first, last int, err error)

	// CellBounds returns the fixed drift-cell dimensions from the
	// detector topology description.
	CellBounds() (Bounds, error)
}

// logger carries the missing-optional-data warning side-channel. Fatal
// conditions are errors, never logs; this logger only ever warns.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "geometry"})

// SetLogger replaces the package warning logger, e.g. to silence or
// redirect warnings in tests and embedding applications.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
