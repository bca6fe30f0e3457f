// Package segments: the Segment entity.
package segments

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/geometry"
)

// View distinguishes the two trigger-primitive readouts of a station.
type View int

const (
	// Phi is the bending-plane view, measured by superlayers 1 and 3.
	Phi View = iota
	// Theta is the orthogonal view, measured by superlayer 2.
	Theta
)

// String implements fmt.Stringer.
func (v View) String() string {
	if v == Theta {
		return "theta"
	}

	return "phi"
}

// Segment is one reconstructed trigger-primitive path through a station.
// It references the station it lives in but owns none of the tree; its
// centers are snapshots taken at construction time.
type Segment struct {
	station *geometry.Station
	number  int
	view    View

	localCenter  mgl64.Vec3
	globalCenter mgl64.Vec3
	direction    mgl64.Vec3

	extra map[string]any
}

// Station returns the station this segment was reconstructed in.
func (s *Segment) Station() *geometry.Station { return s.station }

// Number returns the segment's index within its collection (1-based).
func (s *Segment) Number() int { return s.number }

// View returns which readout the segment came from.
func (s *Segment) View() View { return s.view }

// LocalCenter returns the segment anchor in the station frame.
func (s *Segment) LocalCenter() mgl64.Vec3 { return s.localCenter }

// GlobalCenter returns the segment anchor in the CMS frame.
func (s *Segment) GlobalCenter() mgl64.Vec3 { return s.globalCenter }

// Direction returns the unit direction in the station frame.
func (s *Segment) Direction() mgl64.Vec3 { return s.direction }

// Attribute returns a pass-through record field that the builder did not
// consume itself, e.g. a quality flag or an analysis column.
func (s *Segment) Attribute(name string) (any, bool) {
	v, ok := s.extra[name]

	return v, ok
}

// String implements fmt.Stringer.
func (s *Segment) String() string {
	return fmt.Sprintf("segment %d (%s) local=%v global=%v dir=%v",
		s.number, s.view, s.localCenter, s.globalCenter, s.direction)
}
