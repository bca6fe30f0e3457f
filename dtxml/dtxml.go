package dtxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dtgeo/dtgeo/geometry"
)

// chamberID matches the Id attribute, e.g. " Wh:-1 St:2 Se:1 ".
var chamberID = regexp.MustCompile(`Wh:\s*(-?\d+)\s+St:\s*(\d+)\s+Se:\s*(\d+)`)

// floatToken matches one signed float inside a "(x, y, z)" position string.
var floatToken = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// node holds the records the document carries for one addressable level.
type node struct {
	rawID string

	local     mgl64.Vec3
	hasLocal  bool
	global    mgl64.Vec3
	hasGlobal bool
	normal    mgl64.Vec3
	hasNormal bool

	bounds    geometry.Bounds
	hasBounds bool

	first, last int
	hasWires    bool

	superLayer int // measuring-axis rule, set on layer nodes
}

// Geometry is the parsed document. It implements geometry.Source and is
// read-only after Parse, so it is safe for concurrent lookups.
type Geometry struct {
	nodes map[geometry.Key]*node

	cellBounds    geometry.Bounds
	hasCellBounds bool
}

// Load parses the XML geometry file at path.
func Load(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dtxml: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("dtxml: %s: %w", path, err)
	}

	return g, nil
}

// Parse reads one XML geometry document. Chamber and Topology elements are
// picked up at any nesting depth; everything else is skipped.
func Parse(r io.Reader) (*Geometry, error) {
	g := &Geometry{nodes: make(map[geometry.Key]*node)}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dtxml: parse: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Topology":
			var topo xmlTopology
			if err := dec.DecodeElement(&topo, &start); err != nil {
				return nil, fmt.Errorf("dtxml: parse Topology: %w", err)
			}
			g.cellBounds = geometry.Bounds{
				Width:  topo.CellWidth,
				Height: topo.CellHeight,
				Length: topo.CellLength,
			}
			g.hasCellBounds = true

		case "Chamber":
			var ch xmlChamber
			if err := dec.DecodeElement(&ch, &start); err != nil {
				return nil, fmt.Errorf("dtxml: parse Chamber: %w", err)
			}
			if err := g.addChamber(ch); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// addChamber registers one chamber subtree under its station key.
func (g *Geometry) addChamber(ch xmlChamber) error {
	m := chamberID.FindStringSubmatch(ch.ID)
	if m == nil {
		return fmt.Errorf("dtxml: chamber rawId=%q: unparseable Id %q", ch.RawID, ch.ID)
	}
	// regexp guarantees plain integers
	wh, _ := strconv.Atoi(m[1])
	st, _ := strconv.Atoi(m[2])
	sc, _ := strconv.Atoi(m[3])

	key := geometry.StationKey(wh, sc, st)
	n, err := ch.xmlLevel.node(0)
	if err != nil {
		return fmt.Errorf("dtxml: chamber %s: %w", ch.ID, err)
	}
	g.nodes[key] = n

	for _, sl := range ch.SuperLayers {
		sn, err := sl.xmlLevel.node(sl.Number)
		if err != nil {
			return fmt.Errorf("dtxml: chamber %s superlayer %d: %w", ch.ID, sl.Number, err)
		}
		g.nodes[key.WithSuperLayer(sl.Number)] = sn

		for _, l := range sl.Layers {
			ln, err := l.xmlLevel.node(sl.Number)
			if err != nil {
				return fmt.Errorf("dtxml: chamber %s sl %d layer %d: %w", ch.ID, sl.Number, l.Number, err)
			}
			if l.Wires != nil {
				ln.first, ln.last = l.Wires.First, l.Wires.Last
				ln.hasWires = true
			}
			g.nodes[key.WithSuperLayer(sl.Number).WithLayer(l.Number)] = ln
		}
	}

	return nil
}

// lookup resolves a key to its stored node.
func (g *Geometry) lookup(k geometry.Key) (*node, error) {
	n, ok := g.nodes[k]
	if !ok {
		return nil, geometry.ErrNotFound
	}

	return n, nil
}

// RawID returns the rawId attribute of the addressed level.
func (g *Geometry) RawID(k geometry.Key) (string, error) {
	n, err := g.lookup(k)
	if err != nil {
		return "", err
	}
	if n.rawID == "" {
		return "", geometry.ErrAttributeNotFound
	}

	return n.rawID, nil
}

// LocalPosition returns the stored station-frame center of the level, or,
// for wire keys, the derived wire position inside its layer.
func (g *Geometry) LocalPosition(k geometry.Key) (mgl64.Vec3, error) {
	if k.Wire != 0 {
		return g.wirePosition(k)
	}

	n, err := g.lookup(k)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if !n.hasLocal {
		return mgl64.Vec3{}, geometry.ErrAttributeNotFound
	}

	return n.local, nil
}

// GlobalPosition returns the stored CMS-frame center of the level.
func (g *Geometry) GlobalPosition(k geometry.Key) (mgl64.Vec3, error) {
	n, err := g.lookup(k)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if !n.hasGlobal {
		return mgl64.Vec3{}, geometry.ErrAttributeNotFound
	}

	return n.global, nil
}

// NormalVector returns the stored chamber normal of the level.
func (g *Geometry) NormalVector(k geometry.Key) (mgl64.Vec3, error) {
	n, err := g.lookup(k)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if !n.hasNormal {
		return mgl64.Vec3{}, geometry.ErrAttributeNotFound
	}

	return n.normal, nil
}

// Bounds returns the stored envelope of the level.
func (g *Geometry) Bounds(k geometry.Key) (geometry.Bounds, error) {
	n, err := g.lookup(k)
	if err != nil {
		return geometry.Bounds{}, err
	}
	if !n.hasBounds {
		return geometry.Bounds{}, geometry.ErrAttributeNotFound
	}

	return n.bounds, nil
}

// WireRange returns the first and last wire numbers of the addressed layer.
func (g *Geometry) WireRange(k geometry.Key) (first, last int, err error) {
	n, err := g.lookup(k)
	if err != nil {
		return 0, 0, err
	}
	if !n.hasWires {
		return 0, 0, geometry.ErrAttributeNotFound
	}

	return n.first, n.last, nil
}

// CellBounds returns the drift-cell envelope shared by the whole detector.
func (g *Geometry) CellBounds() (geometry.Bounds, error) {
	if !g.hasCellBounds {
		return geometry.Bounds{}, geometry.ErrAttributeNotFound
	}

	return g.cellBounds, nil
}

// wirePosition derives a wire center from its layer record: the layer
// center shifted by whole cell widths along the measuring axis. In
// superlayer 2 the measuring axis sits on the station y axis.
func (g *Geometry) wirePosition(k geometry.Key) (mgl64.Vec3, error) {
	layerKey := k
	layerKey.Wire = 0

	n, err := g.lookup(layerKey)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if !n.hasLocal || !n.hasWires {
		return mgl64.Vec3{}, geometry.ErrAttributeNotFound
	}
	if k.Wire < n.first || k.Wire > n.last {
		return mgl64.Vec3{}, geometry.ErrNotFound
	}
	cell, err := g.CellBounds()
	if err != nil {
		return mgl64.Vec3{}, err
	}

	off := (float64(k.Wire) - float64(n.first+n.last)/2) * cell.Width
	if n.superLayer == 2 {
		return n.local.Add(mgl64.Vec3{0, off, 0}), nil
	}

	return n.local.Add(mgl64.Vec3{off, 0, 0}), nil
}
