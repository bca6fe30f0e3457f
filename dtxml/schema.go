package dtxml

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// The decoding structs mirror the document shape: a Chamber subtree with
// nested SuperLayer and Layer elements, each level carrying the same
// position/bounds records.

type xmlTopology struct {
	CellWidth  float64 `xml:"cellWidth"`
	CellHeight float64 `xml:"cellHeight"`
	CellLength float64 `xml:"cellLength"`
}

type xmlVector struct {
	Text string `xml:",chardata"`
}

type xmlBounds struct {
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Length float64 `xml:"length,attr"`
}

type xmlWires struct {
	First int `xml:"first,attr"`
	Last  int `xml:"last,attr"`
}

// xmlLevel carries the records shared by every level. Positions appear
// either as child elements or as attributes depending on the dump writer.
type xmlLevel struct {
	RawID string `xml:"rawId,attr"`

	GlobalElem *xmlVector `xml:"GlobalPosition"`
	LocalElem  *xmlVector `xml:"LocalPosition"`
	NormalElem *xmlVector `xml:"NormalVector"`

	GlobalAttr string `xml:"GlobalPosition,attr"`
	LocalAttr  string `xml:"LocalPosition,attr"`
	NormalAttr string `xml:"NormalVector,attr"`

	Bounds *xmlBounds `xml:"Bounds"`
}

type xmlLayer struct {
	xmlLevel
	Number int       `xml:"layerNumber,attr"`
	Wires  *xmlWires `xml:"Wires"`
}

type xmlSuperLayer struct {
	xmlLevel
	Number int        `xml:"superLayerNumber,attr"`
	Layers []xmlLayer `xml:"Layer"`
}

type xmlChamber struct {
	xmlLevel
	ID          string          `xml:"Id,attr"`
	SuperLayers []xmlSuperLayer `xml:"SuperLayer"`
}

// node converts the decoded level into its lookup record.
func (lv xmlLevel) node(superLayer int) (*node, error) {
	n := &node{rawID: lv.RawID, superLayer: superLayer}

	var err error
	if n.local, n.hasLocal, err = parseVec(lv.LocalElem, lv.LocalAttr); err != nil {
		return nil, fmt.Errorf("LocalPosition: %w", err)
	}
	if n.global, n.hasGlobal, err = parseVec(lv.GlobalElem, lv.GlobalAttr); err != nil {
		return nil, fmt.Errorf("GlobalPosition: %w", err)
	}
	if n.normal, n.hasNormal, err = parseVec(lv.NormalElem, lv.NormalAttr); err != nil {
		return nil, fmt.Errorf("NormalVector: %w", err)
	}

	if lv.Bounds != nil {
		n.bounds.Width = lv.Bounds.Width
		n.bounds.Height = lv.Bounds.Height
		n.bounds.Length = lv.Bounds.Length
		n.hasBounds = true
	}

	return n, nil
}

// parseVec extracts the three floats of a "(x, y, z)" position string,
// preferring the child element over the attribute spelling.
func parseVec(elem *xmlVector, attr string) (mgl64.Vec3, bool, error) {
	text := attr
	if elem != nil {
		text = elem.Text
	}
	if text == "" {
		return mgl64.Vec3{}, false, nil
	}

	parts := floatToken.FindAllString(text, -1)
	if len(parts) != 3 {
		return mgl64.Vec3{}, false, fmt.Errorf("want 3 coordinates in %q, got %d", text, len(parts))
	}

	var v mgl64.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return mgl64.Vec3{}, false, err
		}
		v[i] = f
	}

	return v, true, nil
}
