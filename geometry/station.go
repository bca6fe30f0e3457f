// Package geometry: the Station builder, auxiliary station frames, and
// drift-time record ingestion.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/frames"
	"github.com/dtgeo/dtgeo/records"
	"github.com/dtgeo/dtgeo/rigid"
)

// Station is a DT chamber at a fixed (wheel, sector, station) slot. It
// owns its superlayers and the root of the transform-graph chain: its
// graph carries Station→CMS plus the inverted-view frames, and lazily the
// trigger-primitive frames.
type Station struct {
	Element

	wheel   int
	sector  int
	station int

	superLayers [SuperLayersPerStation]*SuperLayer
}

// StationOption configures NewStation.
type StationOption func(*stationConfig)

type stationConfig struct {
	cellTimes any
}

// WithCellTimes applies per-cell drift times right after construction.
// The value takes the same shapes records.Normalize accepts.
func WithCellTimes(info any) StationOption {
	return func(c *stationConfig) { c.cellTimes = info }
}

// NewStation builds a station and its full sub-tree (superlayers, layers,
// drift cells) from the geometry source.
//
// Range validation fails with the matching sentinel before any source
// lookup: wheel ∈ [−2,2], sector ∈ [1,14], station ∈ [1,4]. A physically
// absent superlayer 2 is not an error; SuperLayer(2) then returns nil.
func NewStation(src Source, wheel, sector, station int, opts ...StationOption) (*Station, error) {
	// 1. Validate the slot
	if wheel < -2 || wheel > 2 {
		return nil, fmt.Errorf("geometry: wheel %d: %w", wheel, ErrWheelRange)
	}
	if sector < 1 || sector > 14 {
		return nil, fmt.Errorf("geometry: sector %d: %w", sector, ErrSectorRange)
	}
	if station < 1 || station > 4 {
		return nil, fmt.Errorf("geometry: station %d: %w", station, ErrStationNumberRange)
	}

	var cfg stationConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2. Resolve own placement
	st := &Station{wheel: wheel, sector: sector, station: station}
	st.number = station
	key := StationKey(wheel, sector, station)
	if err := st.resolve(src, key); err != nil {
		return nil, err
	}

	// 3. Seed the transform graph: Station→CMS from the chamber's normal
	//    vector and global center, plus the inverted-view frames.
	st.graph = frames.New(FrameStation)
	rot := stationRotation(st)
	if err := st.graph.Add(FrameStation, FrameCMS,
		frames.WithRotation(rot),
		frames.WithTranslation(st.globalCenter)); err != nil {
		return nil, err
	}
	if err := st.graph.Add(FrameStationNvPhi, FrameStation,
		frames.WithRotation(mgl64.Rotate3DZ(math.Pi))); err != nil {
		return nil, err
	}
	if err := st.graph.Add(FrameStationNvEta, FrameStation,
		frames.WithRotation(mgl64.Rotate3DX(math.Pi))); err != nil {
		return nil, err
	}

	// 4. Build the superlayers; number 2 may be physically absent. Absence
	//    is decided by the superlayer's own record: a missing layer or wire
	//    inside a present superlayer is a broken description and propagates.
	for n := 1; n <= SuperLayersPerStation; n++ {
		if _, err := src.RawID(key.WithSuperLayer(n)); isAbsent(err) {
			logger.Warn("superlayer absent", "station", st.Name(), "superlayer", n)

			continue
		}
		sl, err := newSuperLayer(src, st, n)
		if err != nil {
			return nil, err
		}
		st.superLayers[n-1] = sl
	}

	// 5. Optional drift times
	if cfg.cellTimes != nil {
		if err := st.SetCellTimes(cfg.cellTimes); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// Wheel returns the wheel slot within CMS.
func (s *Station) Wheel() int { return s.wheel }

// Sector returns the sector slot within CMS.
func (s *Station) Sector() int { return s.sector }

// StationNumber returns the station type (1–4).
func (s *Station) StationNumber() int { return s.station }

// Name formats the station slot the way the DT community writes it.
func (s *Station) Name() string {
	return fmt.Sprintf("Wheel %d, Sector %d, Station %d", s.wheel, s.sector, s.station)
}

// String implements fmt.Stringer.
func (s *Station) String() string { return s.Name() }

// SuperLayer returns the superlayer with the given number, or nil when it
// does not exist — either an out-of-range number or physically absent
// superlayer 2. Callers must treat nil as "no such superlayer".
func (s *Station) SuperLayer(n int) *SuperLayer {
	if n < 1 || n > SuperLayersPerStation {
		return nil
	}

	return s.superLayers[n-1]
}

// SuperLayers returns the present superlayers in number order.
func (s *Station) SuperLayers() []*SuperLayer {
	out := make([]*SuperLayer, 0, SuperLayersPerStation)
	for _, sl := range s.superLayers {
		if sl != nil {
			out = append(out, sl)
		}
	}

	return out
}

// EnsureTriggerFrames registers the trigger-primitive frames into the
// station graph on first use; later calls are no-ops.
//
// The phi frame sits at the geometric midpoint between superlayers 1 and 3
// along the bending axis, horizontally anchored at the middle wire of
// layer 1 of superlayer 1, with station-aligned axes. The theta frame
// shares that anchor but carries superlayer 2's axes: its translation is
// re-expressed in the superlayer-2 frame and composed with the existing
// SuperLayer→Station transform. When superlayer 2 is absent only the phi
// frame is registered.
func (s *Station) EnsureTriggerFrames() error {
	if s.graph.HasFrame(FrameTPsPhi) {
		return nil
	}

	sl1, sl3 := s.SuperLayer(1), s.SuperLayer(3)
	if sl1 == nil || sl3 == nil {
		return fmt.Errorf("geometry: trigger frames need superlayers 1 and 3: %w", ErrSuperLayerAbsent)
	}

	// 1. Bending-axis midpoint between SL1 and SL3
	zMid := (sl1.LocalCenter().Z() + sl3.LocalCenter().Z()) / 2

	// 2. Horizontal anchor: middle wire of layer 1 of SL1
	ref, err := middleCell(sl1)
	if err != nil {
		return err
	}
	anchor := mgl64.Vec3{ref.LocalCenter().X(), 0, zMid}

	if err = s.graph.Add(FrameTPsPhi, FrameStation, frames.WithTranslation(anchor)); err != nil {
		return err
	}

	// 3. Theta frame only when superlayer 2 exists
	sl2 := s.SuperLayer(2)
	if sl2 == nil {
		return nil
	}
	slToSt, err := sl2.Graph().Transformation(FrameSuperLayer, FrameStation)
	if err != nil {
		return err
	}
	inSL2 := slToSt.Invert().ApplyPoint(anchor)
	theta := slToSt.Compose(rigid.FromTranslation(inSL2))

	return s.graph.Add(FrameTPsTheta, FrameStation, frames.WithMatrix(theta))
}

// SetCellTimes assigns per-cell drift times from flat records with fields
// sl, l, w and time. A record addressing an absent superlayer is partial
// geometry (warned and skipped); a missing field or an out-of-range wire
// is an error.
func (s *Station) SetCellTimes(info any) error {
	recs, err := records.Normalize(info)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		sl, err := rec.Int("sl")
		if err != nil {
			return err
		}
		l, err := rec.Int("l")
		if err != nil {
			return err
		}
		w, err := rec.Int("w")
		if err != nil {
			return err
		}
		time, err := rec.Float("time")
		if err != nil {
			return err
		}

		super := s.SuperLayer(sl)
		if super == nil {
			logger.Warn("drift time for absent superlayer skipped",
				"station", s.Name(), "superlayer", sl)

			continue
		}
		layer := super.Layer(l)
		if layer == nil {
			return fmt.Errorf("geometry: layer %d: %w", l, ErrLayerRange)
		}
		cell, err := layer.Cell(w)
		if err != nil {
			return err
		}
		cell.SetDriftTime(time)
	}

	return nil
}

// stationRotation derives the Station→CMS rotation from the chamber's
// normal vector: z toward the interaction point, y along −z(CMS), x
// completing the right-handed basis (x = y × z).
func stationRotation(s *Station) mgl64.Mat3 {
	dir, ok := s.Element.Direction()
	if !ok {
		return mgl64.Ident3()
	}

	zAxis := dir.Normalize()
	yAxis := mgl64.Vec3{0, 0, -1}
	xAxis := yAxis.Cross(zAxis)

	var rot mgl64.Mat3
	for row := 0; row < 3; row++ {
		rot.Set(row, 0, xAxis[row])
		rot.Set(row, 1, yAxis[row])
		rot.Set(row, 2, zAxis[row])
	}

	return rot
}

// middleCell returns the middle wire of layer 1 of the given superlayer.
func middleCell(sl *SuperLayer) (*DriftCell, error) {
	l1 := sl.Layer(1)
	if l1 == nil {
		return nil, fmt.Errorf("geometry: layer 1: %w", ErrLayerRange)
	}
	first, last := l1.WireRange()

	return l1.Cell((first + last) / 2)
}

// isAbsent reports whether err marks an element the source simply does not
// have (legitimate for superlayer 2 in some stations).
func isAbsent(err error) bool {
	return errors.Is(err, ErrNotFound)
}
