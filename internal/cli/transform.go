package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/dtgeo/dtgeo/frames"
	"github.com/dtgeo/dtgeo/geometry"
)

// newTransformCmd creates the transform command.
func newTransformCmd() *cobra.Command {
	var flags stationFlags
	var fromName, toName, point string
	var slNum, layerNum, wireNum int
	var trigger, vector bool

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Map a point or vector between two reference frames",
		Long: `Map a point between two reference frames of one station.

Station-level frames (Station, CMS, StationNvPhi, StationNvEta) are always
available; --trigger adds TPsFramePhi and TPsFrameTheta. Cell-level frames
(SuperLayer, Layer, Cell) require drilling down with --sl, --layer and
--wire so the command knows which element's frame chain to walk.`,
		Example: `  # Station center in the CMS frame
  dtgeo transform -g DTGeometry.xml --wheel -1 --sector 1 --station 2 \
      --from Station --to CMS -p 0,0,0

  # Wire 12 of SL1 layer 3, cell frame to CMS
  dtgeo transform -g DTGeometry.xml --wheel -1 --sector 1 --station 2 \
      --sl 1 --layer 3 --wire 12 --from Cell --to CMS -p 0,0,0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(point)
			if err != nil {
				return fmt.Errorf("invalid --point %q: %w", point, err)
			}

			st, err := flags.build(cmd.Context())
			if err != nil {
				return err
			}
			if trigger {
				if err := st.EnsureTriggerFrames(); err != nil {
					return fmt.Errorf("trigger frames: %w", err)
				}
			}

			g, err := elementGraph(st, slNum, layerNum, wireNum)
			if err != nil {
				return err
			}

			from, to := frames.Frame(fromName), frames.Frame(toName)
			var q mgl64.Vec3
			if vector {
				q, err = g.TransformVector(p, from, to)
			} else {
				q, err = g.TransformPoint(p, from, to)
			}
			if err != nil {
				return fmt.Errorf("%s -> %s: %w", fromName, toName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "(%.6f, %.6f, %.6f)\n", q.X(), q.Y(), q.Z())

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&fromName, "from", string(geometry.FrameStation), "source frame")
	cmd.Flags().StringVar(&toName, "to", string(geometry.FrameCMS), "target frame")
	cmd.Flags().StringVarP(&point, "point", "p", "0,0,0", "coordinates as x,y,z")
	cmd.Flags().IntVar(&slNum, "sl", 0, "superlayer number for element-level frames")
	cmd.Flags().IntVar(&layerNum, "layer", 0, "layer number for element-level frames")
	cmd.Flags().IntVar(&wireNum, "wire", 0, "wire number for the Cell frame")
	cmd.Flags().BoolVar(&trigger, "trigger", false, "register the trigger-primitive frames")
	cmd.Flags().BoolVar(&vector, "vector", false, "transform with vector semantics (rotation only)")

	return cmd
}

// elementGraph walks down to the element whose frame chain covers the
// requested depth: the station graph by default, a superlayer, layer or
// cell graph when the drill-down flags are set.
func elementGraph(st *geometry.Station, sl, layer, wire int) (*frames.Graph, error) {
	if sl == 0 {
		if layer != 0 || wire != 0 {
			return nil, fmt.Errorf("--layer and --wire require --sl")
		}

		return st.Graph(), nil
	}

	superLayer := st.SuperLayer(sl)
	if superLayer == nil {
		return nil, fmt.Errorf("superlayer %d not present in %s", sl, st.Name())
	}
	if layer == 0 {
		if wire != 0 {
			return nil, fmt.Errorf("--wire requires --layer")
		}

		return superLayer.Graph(), nil
	}

	l := superLayer.Layer(layer)
	if l == nil {
		return nil, fmt.Errorf("layer %d out of range", layer)
	}
	if wire == 0 {
		return l.Graph(), nil
	}

	cell, err := l.Cell(wire)
	if err != nil {
		return nil, fmt.Errorf("wire %d: %w", wire, err)
	}

	return cell.Graph(), nil
}

// parsePoint parses a coordinate triple like "1.5,0,-3" into a vector.
func parsePoint(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("need exactly 3 coordinates")
	}

	var v mgl64.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid coordinate %q", p)
		}
		v[i] = f
	}

	return v, nil
}
