// Package segments: the record-driven builder and the Segments collection.
package segments

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/geometry"
	"github.com/dtgeo/dtgeo/records"
)

// Sentinel errors for segment construction.
var (
	// ErrMissingView indicates a record with neither psi/x nor k/z fields.
	ErrMissingView = errors.New("segments: record carries neither psi/x nor k/z")

	// ErrThetaUnavailable indicates a theta-view record for a station
	// without superlayer 2.
	ErrThetaUnavailable = errors.New("segments: theta view unavailable without superlayer 2")
)

// Segments is an ordered collection of trigger-primitive segments built
// from one batch of records. Segments are independent of each other once
// built.
type Segments struct {
	segs []*Segment
}

// Len returns the number of segments.
func (s *Segments) Len() int { return len(s.segs) }

// At returns the i-th segment (0-based insertion order).
func (s *Segments) At(i int) *Segment { return s.segs[i] }

// All returns the segments in insertion order.
func (s *Segments) All() []*Segment {
	out := make([]*Segment, len(s.segs))
	copy(out, s.segs)

	return out
}

// ByNumber returns the segments whose number is in nums, preserving
// insertion order.
func (s *Segments) ByNumber(nums ...int) []*Segment {
	want := make(map[int]bool, len(nums))
	for _, n := range nums {
		want[n] = true
	}

	var out []*Segment
	for _, seg := range s.segs {
		if want[seg.number] {
			out = append(out, seg)
		}
	}

	return out
}

// Build constructs segments from flat records. Each record names its
// station slot with wh, sc, st and one view:
//
//	psi, x — phi view: psi in degrees, counter-clockwise from the axis
//	         normal to the beam line; x in cm from the trigger-primitive
//	         anchor
//	k, z   — theta view: slope k and offset z, superlayer 2 required
//
// Stations are built once per slot and shared across the batch; their
// trigger-primitive frames are registered on first use. Leftover record
// fields are copied onto the segment verbatim. Numbers come from an
// optional integer "index" field, else from the 1-based record position.
func Build(src geometry.Source, info any) (*Segments, error) {
	recs, err := records.Normalize(info)
	if err != nil {
		return nil, err
	}

	stations := make(map[geometry.Key]*geometry.Station)
	out := &Segments{segs: make([]*Segment, 0, len(recs))}

	for i, rec := range recs {
		seg, err := buildOne(src, rec, stations)
		if err != nil {
			return nil, fmt.Errorf("segments: record %d: %w", i+1, err)
		}

		seg.number = i + 1
		if rec.Has("index") {
			n, err := rec.Int("index")
			if err != nil {
				return nil, fmt.Errorf("segments: record %d: %w", i+1, err)
			}
			seg.number = n
		}
		out.segs = append(out.segs, seg)
	}

	return out, nil
}

// buildOne resolves one record into a segment.
func buildOne(src geometry.Source, rec records.Record, stations map[geometry.Key]*geometry.Station) (*Segment, error) {
	// 1. Station slot is always required
	wh, err := rec.Int("wh")
	if err != nil {
		return nil, err
	}
	sc, err := rec.Int("sc")
	if err != nil {
		return nil, err
	}
	stNum, err := rec.Int("st")
	if err != nil {
		return nil, err
	}

	station, err := stationFor(src, wh, sc, stNum, stations)
	if err != nil {
		return nil, err
	}

	// 2. View selection: psi/x → phi, k/z → theta
	switch {
	case rec.Has("psi") && rec.Has("x"):
		psi, err := rec.Float("psi")
		if err != nil {
			return nil, err
		}
		x, err := rec.Float("x")
		if err != nil {
			return nil, err
		}

		return place(station, Phi, mgl64.DegToRad(psi), x, rec.Without("wh", "sc", "st", "psi", "x", "index"))

	case rec.Has("k") && rec.Has("z"):
		k, err := rec.Float("k")
		if err != nil {
			return nil, err
		}
		z, err := rec.Float("z")
		if err != nil {
			return nil, err
		}

		return place(station, Theta, math.Atan(k), z, rec.Without("wh", "sc", "st", "k", "z", "index"))

	default:
		return nil, ErrMissingView
	}
}

// stationFor builds or reuses the station at the given slot and makes sure
// its trigger-primitive frames exist.
func stationFor(src geometry.Source, wh, sc, st int, cache map[geometry.Key]*geometry.Station) (*geometry.Station, error) {
	key := geometry.StationKey(wh, sc, st)
	if station, ok := cache[key]; ok {
		return station, nil
	}

	station, err := geometry.NewStation(src, wh, sc, st)
	if err != nil {
		return nil, err
	}
	if err = station.EnsureTriggerFrames(); err != nil {
		return nil, err
	}
	cache[key] = station

	return station, nil
}

// place anchors a segment in its trigger-primitive frame and transforms
// anchor and direction into the station and CMS frames.
//
// In the frame the direction is (−sin ψ, 0, cos ψ) — ψ measured from the
// axis normal to the beam line — and the anchor is (offset, 0, 0).
func place(station *geometry.Station, view View, psi, offset float64, extra records.Record) (*Segment, error) {
	frame := geometry.FrameTPsPhi
	if view == Theta {
		if !station.Graph().HasFrame(geometry.FrameTPsTheta) {
			return nil, fmt.Errorf("%s: %w", station.Name(), ErrThetaUnavailable)
		}
		frame = geometry.FrameTPsTheta
	}

	g := station.Graph()
	dirTP := mgl64.Vec3{-math.Sin(psi), 0, math.Cos(psi)}
	anchorTP := mgl64.Vec3{offset, 0, 0}

	// TP frame → station, renormalizing the direction after the rotation.
	local, err := g.TransformPoint(anchorTP, frame, geometry.FrameStation)
	if err != nil {
		return nil, err
	}
	dirLocal, err := g.TransformVector(dirTP, frame, geometry.FrameStation)
	if err != nil {
		return nil, err
	}
	dirLocal = dirLocal.Normalize()

	// Station → CMS for the global snapshot.
	global, err := g.TransformPoint(local, geometry.FrameStation, geometry.FrameCMS)
	if err != nil {
		return nil, err
	}

	return &Segment{
		station:      station,
		view:         view,
		localCenter:  local,
		globalCenter: global,
		direction:    dirLocal,
		extra:        extra,
	}, nil
}

// GlobalDirection returns the segment direction rotated into the CMS
// frame, renormalized after the transform.
func (s *Segment) GlobalDirection() (mgl64.Vec3, error) {
	v, err := s.station.Graph().TransformVector(s.direction, geometry.FrameStation, geometry.FrameCMS)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return v.Normalize(), nil
}
