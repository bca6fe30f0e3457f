package geometry_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtgeo/dtgeo/geometry"
	"github.com/dtgeo/dtgeo/records"
)

const eps = 1e-9

func buildStation(t *testing.T, station int) *geometry.Station {
	t.Helper()
	st, err := geometry.NewStation(fixSource{}, -1, 1, station)
	require.NoError(t, err)

	return st
}

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), eps)
	assert.InDelta(t, want.Y(), got.Y(), eps)
	assert.InDelta(t, want.Z(), got.Z(), eps)
}

func TestNewStation_RangeValidation(t *testing.T) {
	_, err := geometry.NewStation(fixSource{}, 3, 1, 2)
	assert.ErrorIs(t, err, geometry.ErrWheelRange)

	_, err = geometry.NewStation(fixSource{}, -1, 15, 2)
	assert.ErrorIs(t, err, geometry.ErrSectorRange)

	_, err = geometry.NewStation(fixSource{}, -1, 1, 0)
	assert.ErrorIs(t, err, geometry.ErrStationNumberRange)
}

func TestNewStation_UnknownSlot(t *testing.T) {
	_, err := geometry.NewStation(fixSource{}, 2, 7, 1)
	assert.ErrorIs(t, err, geometry.ErrNotFound)
}

func TestNewStation_BuildsFullHierarchy(t *testing.T) {
	st := buildStation(t, 2)

	assert.Equal(t, "Wheel -1, Sector 1, Station 2", st.Name())
	assert.Equal(t, -1, st.Wheel())
	assert.Equal(t, 1, st.Sector())
	assert.Equal(t, 2, st.StationNumber())

	require.Len(t, st.SuperLayers(), 3)
	for want, sl := range map[int]*geometry.SuperLayer{
		1: st.SuperLayer(1), 2: st.SuperLayer(2), 3: st.SuperLayer(3),
	} {
		require.NotNil(t, sl, "superlayer %d", want)
		assert.Equal(t, want, sl.Number())

		require.Len(t, sl.Layers(), 4)
		for i, layer := range sl.Layers() {
			require.NotNil(t, layer)
			assert.Equal(t, i+1, layer.Number())

			first, last := layer.WireRange()
			assert.Equal(t, fixFirstWire, first)
			assert.Equal(t, fixLastWire, last)
			assert.Len(t, layer.Cells(), last-first+1)
		}
	}
}

// corruptSource hides one layer record inside an otherwise present superlayer.
type corruptSource struct{ fixSource }

func (c corruptSource) RawID(k geometry.Key) (string, error) {
	if k.Station == 2 && k.SuperLayer == 1 && k.Layer == 3 {
		return "", geometry.ErrNotFound
	}
	return c.fixSource.RawID(k)
}

func TestNewStation_MissingLayerInPresentSuperLayerFails(t *testing.T) {
	// Only a missing superlayer record means absence; a hole deeper down is
	// a broken description and must surface as an error.
	_, err := geometry.NewStation(corruptSource{}, -1, 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, geometry.ErrNotFound)
}

func TestNewStation_SuperLayer2Absent(t *testing.T) {
	st := buildStation(t, 4)

	assert.Nil(t, st.SuperLayer(2), "superlayer 2 must read as missing, not fail")
	require.Len(t, st.SuperLayers(), 2)
	assert.Equal(t, 1, st.SuperLayers()[0].Number())
	assert.Equal(t, 3, st.SuperLayers()[1].Number())
}

func TestSuperLayer_OutOfRangeLookupIsNil(t *testing.T) {
	st := buildStation(t, 2)
	assert.Nil(t, st.SuperLayer(0))
	assert.Nil(t, st.SuperLayer(4))
	assert.Nil(t, st.SuperLayer(2).Layer(5))
}

func TestLayerCell_RangeValidation(t *testing.T) {
	layer := buildStation(t, 2).SuperLayer(1).Layer(1)

	_, err := layer.Cell(fixFirstWire - 1)
	assert.ErrorIs(t, err, geometry.ErrCellRange)
	_, err = layer.Cell(fixLastWire + 1)
	assert.ErrorIs(t, err, geometry.ErrCellRange)

	cell, err := layer.Cell(fixFirstWire)
	require.NoError(t, err)
	assert.Equal(t, fixFirstWire, cell.Number())
}

// Scenario: the first wire's stored local center must be exactly the raw
// source value.
func TestCellLocalCenter_MatchesSource(t *testing.T) {
	cell, err := buildStation(t, 2).SuperLayer(1).Layer(1).Cell(fixFirstWire)
	require.NoError(t, err)

	assertVec(t, wireLocal(1, 1, fixFirstWire), cell.LocalCenter())
}

// Scenario: the composed chain Cell→…→Station must land the cell origin on
// its station-frame center, and Cell→…→CMS on its global center.
func TestCellChain_CollapsesToCenters(t *testing.T) {
	st := buildStation(t, 2)
	for _, sl := range st.SuperLayers() {
		for _, layer := range sl.Layers() {
			for _, cell := range layer.Cells() {
				local, err := cell.Graph().TransformPoint(mgl64.Vec3{}, geometry.FrameCell, geometry.FrameStation)
				require.NoError(t, err)
				assertVec(t, cell.LocalCenter(), local)

				global, err := cell.Graph().TransformPoint(mgl64.Vec3{}, geometry.FrameCell, geometry.FrameCMS)
				require.NoError(t, err)
				assertVec(t, cell.GlobalCenter(), global)
			}
		}
	}
}

// Scenario: the derived global center must agree with the source's own
// Station→CMS placement.
func TestCellGlobalCenter_MatchesSourcePlacement(t *testing.T) {
	cell, err := buildStation(t, 2).SuperLayer(3).Layer(2).Cell(3)
	require.NoError(t, err)

	assertVec(t, toGlobal(cell.LocalCenter()), cell.GlobalCenter())
}

func TestStationGraph_RoundTripThroughCMS(t *testing.T) {
	st := buildStation(t, 2)
	p := mgl64.Vec3{12.5, -3, 40}

	fwd, err := st.Graph().TransformPoint(p, geometry.FrameStation, geometry.FrameCMS)
	require.NoError(t, err)
	back, err := st.Graph().TransformPoint(fwd, geometry.FrameCMS, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, p, back)
}

func TestSuperLayer2Rotation_MapsMeasuringAxis(t *testing.T) {
	sl2 := buildStation(t, 2).SuperLayer(2)

	v, err := sl2.Graph().TransformVector(mgl64.Vec3{1, 0, 0}, geometry.FrameSuperLayer, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{0, -1, 0}, v)

	// Superlayer 1 keeps station-aligned axes.
	sl1 := buildStation(t, 2).SuperLayer(1)
	v, err = sl1.Graph().TransformVector(mgl64.Vec3{1, 0, 0}, geometry.FrameSuperLayer, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{1, 0, 0}, v)
}

// Scenario: one record changes exactly one cell's drift time.
func TestSetCellTimes_SingleCellOnly(t *testing.T) {
	st := buildStation(t, 2)
	require.NoError(t, st.SetCellTimes(records.Record{"sl": 1, "l": 2, "w": 3, "time": 380.5}))

	for _, sl := range st.SuperLayers() {
		for _, layer := range sl.Layers() {
			for _, cell := range layer.Cells() {
				want := 0.0
				if sl.Number() == 1 && layer.Number() == 2 && cell.Number() == 3 {
					want = 380.5
				}
				assert.Equal(t, want, cell.DriftTime())
			}
		}
	}
}

func TestSetCellTimes_ViaConstructorOption(t *testing.T) {
	st, err := geometry.NewStation(fixSource{}, -1, 1, 2,
		geometry.WithCellTimes([]map[string]any{
			{"sl": 1, "l": 1, "w": 1, "time": 120},
			{"sl": 3, "l": 4, "w": 2, "time": 240},
		}))
	require.NoError(t, err)

	c1, err := st.SuperLayer(1).Layer(1).Cell(1)
	require.NoError(t, err)
	assert.Equal(t, 120.0, c1.DriftTime())

	c2, err := st.SuperLayer(3).Layer(4).Cell(2)
	require.NoError(t, err)
	assert.Equal(t, 240.0, c2.DriftTime())
}

func TestSetCellTimes_MissingFieldFails(t *testing.T) {
	st := buildStation(t, 2)
	err := st.SetCellTimes(records.Record{"sl": 1, "l": 2, "time": 380})
	assert.ErrorIs(t, err, records.ErrFieldMissing)
}

func TestSetCellTimes_WireOutOfRangeFails(t *testing.T) {
	st := buildStation(t, 2)
	err := st.SetCellTimes(records.Record{"sl": 1, "l": 2, "w": 99, "time": 380})
	assert.ErrorIs(t, err, geometry.ErrCellRange)
}

func TestSetCellTimes_AbsentSuperLayerSkipped(t *testing.T) {
	st := buildStation(t, 4)
	require.NoError(t, st.SetCellTimes(records.Record{"sl": 2, "l": 1, "w": 1, "time": 380}))
}

func TestEnsureTriggerFrames_RegistersPhiAndTheta(t *testing.T) {
	st := buildStation(t, 2)
	require.NoError(t, st.EnsureTriggerFrames())

	// Anchor: middle wire of layer 1 of SL1 at the SL1/SL3 z midpoint.
	anchor, err := st.Graph().TransformPoint(mgl64.Vec3{}, geometry.FrameTPsPhi, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{wireLocal(1, 1, 2).X(), 0, 0}, anchor)

	// The theta frame shares the anchor but carries SL2's axes.
	thetaAnchor, err := st.Graph().TransformPoint(mgl64.Vec3{}, geometry.FrameTPsTheta, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, anchor, thetaAnchor)

	v, err := st.Graph().TransformVector(mgl64.Vec3{1, 0, 0}, geometry.FrameTPsTheta, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{0, -1, 0}, v)

	// Idempotent.
	require.NoError(t, st.EnsureTriggerFrames())
}

func TestEnsureTriggerFrames_NoThetaWithoutSuperLayer2(t *testing.T) {
	st := buildStation(t, 4)
	require.NoError(t, st.EnsureTriggerFrames())

	assert.True(t, st.Graph().HasFrame(geometry.FrameTPsPhi))
	assert.False(t, st.Graph().HasFrame(geometry.FrameTPsTheta))
}

func TestElement_MinCornersAndBounds(t *testing.T) {
	st := buildStation(t, 2)

	b := st.Bounds()
	assert.Equal(t, 250.0, b.Width)
	assert.Equal(t, 30.0, b.Height)
	assert.Equal(t, 250.0, b.Length)

	assertVec(t, mgl64.Vec3{-125, -15, -125}, st.LocalPositionAtMin())
	assertVec(t, toGlobal(mgl64.Vec3{}).Sub(mgl64.Vec3{125, 15, 125}), st.GlobalPositionAtMin())
}

func TestElement_DerivedAngles(t *testing.T) {
	st := buildStation(t, 2)
	g := st.GlobalCenter()

	theta := math.Atan2(math.Hypot(g.X(), g.Y()), g.Z())
	assert.InDelta(t, theta, st.PolarAngle(), eps)
	assert.InDelta(t, -math.Log(math.Tan(theta/2)), st.Eta(), eps)
	assert.InDelta(t, math.Atan2(g.Y(), g.X()), st.AzimuthalAngle(), eps)
}

func TestElement_DirectionFlag(t *testing.T) {
	st := buildStation(t, 2)

	dir, ok := st.Direction()
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, 1, 0}, dir)

	// Cells inherit their layer's orientation.
	cell, err := st.SuperLayer(1).Layer(1).Cell(1)
	require.NoError(t, err)
	cdir, ok := cell.Direction()
	require.True(t, ok)
	assertVec(t, dir, cdir)
}

func TestStationGraph_CarriesInvertedViewFrames(t *testing.T) {
	st := buildStation(t, 2)

	p, err := st.Graph().TransformPoint(mgl64.Vec3{1, 2, 3}, geometry.FrameStationNvPhi, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{-1, -2, 3}, p)

	p, err = st.Graph().TransformPoint(mgl64.Vec3{1, 2, 3}, geometry.FrameStationNvEta, geometry.FrameStation)
	require.NoError(t, err)
	assertVec(t, mgl64.Vec3{1, -2, -3}, p)
}
