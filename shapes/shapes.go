package shapes

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/geometry"
	"github.com/dtgeo/dtgeo/segments"
)

// ErrViewMismatch indicates a segment projected onto the wrong face view.
var ErrViewMismatch = errors.New("shapes: segment does not measure the requested view")

// FaceView selects the 2-D plane shapes are extracted in.
type FaceView int

const (
	// ViewPhi is the bending plane: station x against z.
	ViewPhi FaceView = iota
	// ViewEta is the orthogonal plane: negated station y against z.
	ViewEta
)

// String implements fmt.Stringer.
func (v FaceView) String() string {
	if v == ViewEta {
		return "eta"
	}

	return "phi"
}

// Rect is one axis-aligned rectangle in the chosen view plane. X, Y name
// the lower-left corner. Cell is set on per-cell rectangles and nil on
// bounds boxes.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Cell          *geometry.DriftCell
}

// Line is one projected segment: the two endpoints in the view plane plus
// the segment it came from.
type Line struct {
	X1, Y1  float64
	X2, Y2  float64
	Segment *segments.Segment
}

// Shapes is the flattened 2-D picture of one station.
type Shapes struct {
	// Bounds holds the station envelope first, then one box per present
	// superlayer in number order.
	Bounds []Rect
	// Cells holds one rectangle per drift cell visible in the view.
	Cells []Rect
}

// Option adjusts shape extraction.
type Option func(*config)

type config struct {
	view     FaceView
	global   bool
	inverted bool
}

// WithView selects the face view (default phi).
func WithView(v FaceView) Option {
	return func(c *config) { c.view = v }
}

// WithGlobal projects centers into the CMS frame instead of the station
// frame.
func WithGlobal() Option {
	return func(c *config) { c.global = true }
}

// WithInverted mirrors the local view through the station's inverted
// frame. Ignored with WithGlobal: the CMS frame has one orientation.
func WithInverted() Option {
	return func(c *config) { c.inverted = true }
}

func buildConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.global {
		c.inverted = false
	}

	return c
}

// StationShapes extracts the bounds and cell rectangles of a built
// station in the configured view.
func StationShapes(st *geometry.Station, opts ...Option) (*Shapes, error) {
	cfg := buildConfig(opts)
	out := &Shapes{}

	r, err := cfg.rect(st, st.LocalCenter(), st.Bounds(), false)
	if err != nil {
		return nil, fmt.Errorf("shapes: station %s: %w", st.Name(), err)
	}
	out.Bounds = append(out.Bounds, r)

	for _, sl := range st.SuperLayers() {
		isSL2 := sl.Number() == 2

		r, err := cfg.rect(st, sl.LocalCenter(), sl.Bounds(), isSL2)
		if err != nil {
			return nil, fmt.Errorf("shapes: superlayer %d: %w", sl.Number(), err)
		}
		out.Bounds = append(out.Bounds, r)

		// phi shows the measuring cells of SL1/SL3, eta those of SL2.
		if (cfg.view == ViewPhi) == isSL2 {
			continue
		}
		for _, layer := range sl.Layers() {
			for _, cell := range layer.Cells() {
				cr, err := cfg.rect(st, cell.LocalCenter(), cell.Bounds(), isSL2)
				if err != nil {
					return nil, fmt.Errorf("shapes: cell %d/%d/%d: %w",
						sl.Number(), layer.Number(), cell.Number(), err)
				}
				cr.Cell = cell
				out.Cells = append(out.Cells, cr)
			}
		}
	}

	return out, nil
}

// SegmentLine projects one segment onto the view plane as a line of the
// given length centered on the segment anchor.
func SegmentLine(seg *segments.Segment, length float64, opts ...Option) (Line, error) {
	cfg := buildConfig(opts)

	phiSegment := seg.View() == segments.Phi
	if phiSegment != (cfg.view == ViewPhi) {
		return Line{}, fmt.Errorf("%s segment in %s view: %w", seg.View(), cfg.view, ErrViewMismatch)
	}

	st := seg.Station()
	half := seg.Direction().Mul(length / 2)
	a := seg.LocalCenter().Sub(half)
	b := seg.LocalCenter().Add(half)

	x1, y1, err := cfg.project(st, a)
	if err != nil {
		return Line{}, fmt.Errorf("shapes: segment %d: %w", seg.Number(), err)
	}
	x2, y2, err := cfg.project(st, b)
	if err != nil {
		return Line{}, fmt.Errorf("shapes: segment %d: %w", seg.Number(), err)
	}

	return Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Segment: seg}, nil
}

// rect projects one element center and lays its extents around it.
func (c config) rect(st *geometry.Station, center mgl64.Vec3, b geometry.Bounds, isSL2 bool) (Rect, error) {
	x, y, err := c.project(st, center)
	if err != nil {
		return Rect{}, err
	}

	w := c.horizontalExtent(b, isSL2)

	return Rect{X: x - w/2, Y: y - b.Height/2, Width: w, Height: b.Height}, nil
}

// horizontalExtent picks the bound that lies along the view's horizontal
// axis. Superlayer 2 is rotated a quarter turn inside the station, so its
// axes swap relative to everything else.
func (c config) horizontalExtent(b geometry.Bounds, isSL2 bool) float64 {
	along := b.Width  // measuring axis, station x
	across := b.Length // wire axis, station y

	if isSL2 {
		along, across = across, along
	}
	if c.view == ViewEta {
		return across
	}

	return along
}

// project maps one station-frame point onto the 2-D view plane.
func (c config) project(st *geometry.Station, p mgl64.Vec3) (float64, float64, error) {
	g := st.Graph()

	switch {
	case c.global:
		q, err := g.TransformPoint(p, geometry.FrameStation, geometry.FrameCMS)
		if err != nil {
			return 0, 0, err
		}
		if c.view == ViewEta {
			return q.Z(), math.Hypot(q.X(), q.Y()), nil
		}

		return q.X(), q.Y(), nil

	case c.inverted:
		frame := geometry.FrameStationNvPhi
		if c.view == ViewEta {
			frame = geometry.FrameStationNvEta
		}
		q, err := g.TransformPoint(p, geometry.FrameStation, frame)
		if err != nil {
			return 0, 0, err
		}
		p = q
	}

	if c.view == ViewEta {
		return -p.Y(), p.Z(), nil
	}

	return p.X(), p.Z(), nil
}
