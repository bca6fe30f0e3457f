package geometry_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/geometry"
)

// fixSource is a small, fully consistent in-memory geometry description:
// two stations at (wheel -1, sector 1), numbers 2 and 4; station 4 has no
// superlayer 2 (as MB4 chambers really do not). Each layer carries wires
// 1–4. All local positions are station-frame, globals follow from one
// fixed Station→CMS placement.
type fixSource struct{}

var (
	// Station→CMS placement shared by every fixture element: rotation
	// x→x, y→−z, z→y (the chamber normal points along CMS +y), shifted to
	// (0, 500, −100).
	fixRot = mgl64.Mat3{
		1, 0, 0,
		0, 0, -1,
		0, 1, 0,
	}
	fixTrans = mgl64.Vec3{0, 500, -100}

	// One chamber normal for everything in the fixture.
	fixNormal = mgl64.Vec3{0, 1, 0}
)

const (
	fixFirstWire = 1
	fixLastWire  = 4
	fixCellW     = 4.2
	fixCellH     = 1.3
	fixCellL     = 235.0
)

// superLayerZ stacks SL1 below, SL2 in the middle, SL3 on top.
func superLayerZ(sl int) float64 {
	switch sl {
	case 1:
		return -11.75
	case 3:
		return 11.75
	default:
		return 0
	}
}

// layerLocal staggers even layers by half a cell and spaces layers one
// cell height apart around the superlayer center.
func layerLocal(sl, l int) mgl64.Vec3 {
	x := 0.0
	if l%2 == 0 {
		x = fixCellW / 2
	}

	return mgl64.Vec3{x, 0, superLayerZ(sl) + (float64(l)-2.5)*fixCellH}
}

// wireLocal spreads wires along the measuring axis: station x for SL1/SL3,
// station y for the rotated SL2.
func wireLocal(sl, l, w int) mgl64.Vec3 {
	layer := layerLocal(sl, l)
	off := (float64(w) - (fixFirstWire+fixLastWire)/2.0) * fixCellW
	if sl == 2 {
		return mgl64.Vec3{layer.X(), off, layer.Z()}
	}

	return mgl64.Vec3{layer.X() + off, layer.Y(), layer.Z()}
}

// toGlobal applies the fixture's Station→CMS placement.
func toGlobal(local mgl64.Vec3) mgl64.Vec3 {
	return fixRot.Mul3x1(local).Add(fixTrans)
}

// hasStation limits the fixture to the two known chambers.
func (fixSource) hasStation(k geometry.Key) bool {
	return k.Wheel == -1 && k.Sector == 1 && (k.Station == 2 || k.Station == 4)
}

// hasElement additionally hides superlayer 2 of station 4.
func (s fixSource) hasElement(k geometry.Key) bool {
	if !s.hasStation(k) {
		return false
	}
	if k.Station == 4 && k.SuperLayer == 2 {
		return false
	}

	return true
}

func (s fixSource) RawID(k geometry.Key) (string, error) {
	if !s.hasElement(k) {
		return "", geometry.ErrNotFound
	}
	id := fmt.Sprintf("wh%d-sec%d-st%d", k.Wheel, k.Sector, k.Station)
	if k.SuperLayer != 0 {
		id += fmt.Sprintf("-sl%d", k.SuperLayer)
	}
	if k.Layer != 0 {
		id += fmt.Sprintf("-l%d", k.Layer)
	}
	if k.Wire != 0 {
		id += fmt.Sprintf("-w%d", k.Wire)
	}

	return id, nil
}

func (s fixSource) LocalPosition(k geometry.Key) (mgl64.Vec3, error) {
	if !s.hasElement(k) {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}

	switch {
	case k.Wire != 0:
		return wireLocal(k.SuperLayer, k.Layer, k.Wire), nil
	case k.Layer != 0:
		return layerLocal(k.SuperLayer, k.Layer), nil
	case k.SuperLayer != 0:
		return mgl64.Vec3{0, 0, superLayerZ(k.SuperLayer)}, nil
	default:
		return mgl64.Vec3{}, nil
	}
}

func (s fixSource) GlobalPosition(k geometry.Key) (mgl64.Vec3, error) {
	local, err := s.LocalPosition(k)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return toGlobal(local), nil
}

func (s fixSource) NormalVector(k geometry.Key) (mgl64.Vec3, error) {
	if !s.hasElement(k) {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}
	if k.Wire != 0 {
		return mgl64.Vec3{}, geometry.ErrAttributeNotFound
	}

	return fixNormal, nil
}

func (s fixSource) Bounds(k geometry.Key) (geometry.Bounds, error) {
	if !s.hasElement(k) {
		return geometry.Bounds{}, geometry.ErrNotFound
	}

	switch {
	case k.Layer != 0:
		return geometry.Bounds{Width: 4 * fixCellW, Height: fixCellH, Length: fixCellL}, nil
	case k.SuperLayer != 0:
		return geometry.Bounds{Width: 4 * fixCellW, Height: 4 * fixCellH, Length: 240}, nil
	default:
		return geometry.Bounds{Width: 250, Height: 30, Length: 250}, nil
	}
}

func (s fixSource) WireRange(k geometry.Key) (int, int, error) {
	if !s.hasElement(k) {
		return 0, 0, geometry.ErrNotFound
	}
	if k.Layer == 0 {
		return 0, 0, geometry.ErrAttributeNotFound
	}

	return fixFirstWire, fixLastWire, nil
}

func (fixSource) CellBounds() (geometry.Bounds, error) {
	return geometry.Bounds{Width: fixCellW, Height: fixCellH, Length: fixCellL}, nil
}
