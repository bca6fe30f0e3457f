package shapes_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtgeo/dtgeo/geometry"
	"github.com/dtgeo/dtgeo/segments"
	"github.com/dtgeo/dtgeo/shapes"
)

const eps = 1e-9

// viewSource serves one complete chamber at (-1, 1, 2): three superlayers,
// four layers of four wires each, one shared global placement.
type viewSource struct{}

var (
	viewRot = mgl64.Mat3{
		1, 0, 0,
		0, 0, -1,
		0, 1, 0,
	}
	viewTrans = mgl64.Vec3{0, 500, -100}
)

func (s viewSource) has(k geometry.Key) bool {
	return k.Wheel == -1 && k.Sector == 1 && k.Station == 2
}

func viewSLZ(sl int) float64 {
	switch sl {
	case 1:
		return -11.75
	case 3:
		return 11.75
	default:
		return 0
	}
}

func (s viewSource) local(k geometry.Key) mgl64.Vec3 {
	switch {
	case k.Wire != 0:
		off := (float64(k.Wire) - 2.5) * 4.2
		base := s.local(geometry.Key{Wheel: k.Wheel, Sector: k.Sector, Station: k.Station,
			SuperLayer: k.SuperLayer, Layer: k.Layer})
		if k.SuperLayer == 2 {
			return mgl64.Vec3{base.X(), off, base.Z()}
		}

		return mgl64.Vec3{base.X() + off, base.Y(), base.Z()}
	case k.Layer != 0:
		return mgl64.Vec3{0, 0, viewSLZ(k.SuperLayer) + (float64(k.Layer)-2.5)*1.3}
	case k.SuperLayer != 0:
		return mgl64.Vec3{0, 0, viewSLZ(k.SuperLayer)}
	default:
		return mgl64.Vec3{}
	}
}

func (s viewSource) RawID(k geometry.Key) (string, error) {
	if !s.has(k) {
		return "", geometry.ErrNotFound
	}

	return fmt.Sprintf("%d/%d/%d/%d/%d/%d", k.Wheel, k.Sector, k.Station, k.SuperLayer, k.Layer, k.Wire), nil
}

func (s viewSource) LocalPosition(k geometry.Key) (mgl64.Vec3, error) {
	if !s.has(k) {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}

	return s.local(k), nil
}

func (s viewSource) GlobalPosition(k geometry.Key) (mgl64.Vec3, error) {
	if !s.has(k) {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}

	return viewRot.Mul3x1(s.local(k)).Add(viewTrans), nil
}

func (s viewSource) NormalVector(k geometry.Key) (mgl64.Vec3, error) {
	if !s.has(k) {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}

	return mgl64.Vec3{0, 1, 0}, nil
}

func (s viewSource) Bounds(k geometry.Key) (geometry.Bounds, error) {
	if !s.has(k) {
		return geometry.Bounds{}, geometry.ErrNotFound
	}
	switch {
	case k.Layer != 0:
		return geometry.Bounds{Width: 250, Height: 1.3, Length: 235}, nil
	case k.SuperLayer != 0:
		return geometry.Bounds{Width: 250, Height: 5.2, Length: 235}, nil
	default:
		return geometry.Bounds{Width: 250, Height: 30, Length: 250}, nil
	}
}

func (s viewSource) WireRange(k geometry.Key) (int, int, error) {
	if !s.has(k) {
		return 0, 0, geometry.ErrNotFound
	}
	if k.Layer == 0 {
		return 0, 0, geometry.ErrAttributeNotFound
	}

	return 1, 4, nil
}

func (viewSource) CellBounds() (geometry.Bounds, error) {
	return geometry.Bounds{Width: 4.2, Height: 1.3, Length: 235}, nil
}

func buildStation(t *testing.T) *geometry.Station {
	t.Helper()
	st, err := geometry.NewStation(viewSource{}, -1, 1, 2)
	require.NoError(t, err)

	return st
}

func assertRect(t *testing.T, want shapes.Rect, got shapes.Rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Width, got.Width, eps)
	assert.InDelta(t, want.Height, got.Height, eps)
}

func TestStationShapes_PhiLocal(t *testing.T) {
	st := buildStation(t)

	out, err := shapes.StationShapes(st)
	require.NoError(t, err)

	// Station envelope plus the three superlayers.
	require.Len(t, out.Bounds, 4)
	assertRect(t, shapes.Rect{X: -125, Y: -15, Width: 250, Height: 30}, out.Bounds[0])
	assert.Nil(t, out.Bounds[0].Cell)

	// Superlayer 2 shows its wire axis across the bending plane.
	assertRect(t, shapes.Rect{X: -117.5, Y: -2.6, Width: 235, Height: 5.2}, out.Bounds[2])

	// Measuring cells: superlayers 1 and 3, four layers of four wires.
	require.Len(t, out.Cells, 32)
	for _, r := range out.Cells {
		require.NotNil(t, r.Cell)
		assert.NotEqual(t, 2, r.Cell.Layer().SuperLayer().Number())
	}

	// Wire 2 of SL1 layer 1 sits half a cell left of the layer center.
	r := findCell(t, out, 1, 1, 2)
	assertRect(t, shapes.Rect{X: -4.2, Y: -14.35, Width: 4.2, Height: 1.3}, r)
}

func TestStationShapes_EtaLocal(t *testing.T) {
	st := buildStation(t)

	out, err := shapes.StationShapes(st, shapes.WithView(shapes.ViewEta))
	require.NoError(t, err)

	require.Len(t, out.Bounds, 4)
	// Station: wire axis horizontal in the eta plane.
	assertRect(t, shapes.Rect{X: -125, Y: -15, Width: 250, Height: 30}, out.Bounds[0])
	// Superlayer 2: measuring axis horizontal here.
	assertRect(t, shapes.Rect{X: -125, Y: -2.6, Width: 250, Height: 5.2}, out.Bounds[2])

	// Only superlayer 2 cells appear.
	require.Len(t, out.Cells, 16)
	for _, r := range out.Cells {
		assert.Equal(t, 2, r.Cell.Layer().SuperLayer().Number())
	}

	// Wire 2 of SL2 layer 1: offset -2.1 along y projects to +2.1.
	r := findCell(t, out, 2, 1, 2)
	assertRect(t, shapes.Rect{X: 0, Y: -2.6, Width: 4.2, Height: 1.3}, r)
}

func TestStationShapes_Inverted(t *testing.T) {
	st := buildStation(t)

	out, err := shapes.StationShapes(st, shapes.WithInverted())
	require.NoError(t, err)

	// A half turn about z mirrors the bending plane horizontally.
	r := findCell(t, out, 1, 1, 2)
	assertRect(t, shapes.Rect{X: 0, Y: -14.35, Width: 4.2, Height: 1.3}, r)

	out, err = shapes.StationShapes(st, shapes.WithView(shapes.ViewEta), shapes.WithInverted())
	require.NoError(t, err)

	// A half turn about x flips both eta axes.
	r = findCell(t, out, 2, 1, 2)
	assertRect(t, shapes.Rect{X: -4.2, Y: 1.3, Width: 4.2, Height: 1.3}, r)
}

func TestStationShapes_Global(t *testing.T) {
	st := buildStation(t)

	out, err := shapes.StationShapes(st, shapes.WithGlobal())
	require.NoError(t, err)

	// Cell (-2.1, 0, -13.7) lands at CMS (-2.1, 486.3) in the x-y plane.
	r := findCell(t, out, 1, 1, 2)
	assertRect(t, shapes.Rect{X: -4.2, Y: 486.3 - 0.65, Width: 4.2, Height: 1.3}, r)

	// Inversion has no meaning in the CMS frame.
	inv, err := shapes.StationShapes(st, shapes.WithGlobal(), shapes.WithInverted())
	require.NoError(t, err)
	assertRect(t, r, findCell(t, inv, 1, 1, 2))
}

func findCell(t *testing.T, out *shapes.Shapes, sl, layer, wire int) shapes.Rect {
	t.Helper()
	for _, r := range out.Cells {
		c := r.Cell
		if c.Layer().SuperLayer().Number() == sl && c.Layer().Number() == layer && c.Number() == wire {
			return r
		}
	}
	t.Fatalf("cell %d/%d/%d not extracted", sl, layer, wire)

	return shapes.Rect{}
}

func buildSegments(t *testing.T) *segments.Segments {
	t.Helper()
	segs, err := segments.Build(viewSource{}, []map[string]any{
		{"wh": -1, "sc": 1, "st": 2, "psi": 0.0, "x": 0.0},
		{"wh": -1, "sc": 1, "st": 2, "k": 0.0, "z": 5.0},
	})
	require.NoError(t, err)
	require.Equal(t, 2, segs.Len())

	return segs
}

func TestSegmentLine_PhiLocal(t *testing.T) {
	segs := buildSegments(t)

	line, err := shapes.SegmentLine(segs.At(0), 30)
	require.NoError(t, err)

	assert.InDelta(t, -2.1, line.X1, eps)
	assert.InDelta(t, -15.0, line.Y1, eps)
	assert.InDelta(t, -2.1, line.X2, eps)
	assert.InDelta(t, 15.0, line.Y2, eps)
	assert.Same(t, segs.At(0), line.Segment)
}

func TestSegmentLine_ThetaEta(t *testing.T) {
	segs := buildSegments(t)

	line, err := shapes.SegmentLine(segs.At(1), 30, shapes.WithView(shapes.ViewEta))
	require.NoError(t, err)

	// Anchor (-2.1, -5, 0) projects to h = 5; the track runs along z.
	assert.InDelta(t, 5.0, line.X1, eps)
	assert.InDelta(t, -15.0, line.Y1, eps)
	assert.InDelta(t, 5.0, line.X2, eps)
	assert.InDelta(t, 15.0, line.Y2, eps)
}

func TestSegmentLine_ViewMismatch(t *testing.T) {
	segs := buildSegments(t)

	_, err := shapes.SegmentLine(segs.At(0), 30, shapes.WithView(shapes.ViewEta))
	assert.ErrorIs(t, err, shapes.ErrViewMismatch)

	_, err = shapes.SegmentLine(segs.At(1), 30)
	assert.ErrorIs(t, err, shapes.ErrViewMismatch)
}
