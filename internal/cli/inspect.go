package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtgeo/dtgeo/geometry"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var flags stationFlags
	var onlySL int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the layout of one station",
		Example: `  # Whole chamber
  dtgeo inspect -g DTGeometry.xml --wheel -1 --sector 1 --station 2

  # One superlayer only
  dtgeo inspect -g DTGeometry.xml --wheel -1 --sector 1 --station 2 --sl 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := flags.build(cmd.Context())
			if err != nil {
				return err
			}
			if onlySL != 0 && (onlySL < 1 || onlySL > geometry.SuperLayersPerStation) {
				return fmt.Errorf("--sl must be between 1 and %d", geometry.SuperLayersPerStation)
			}

			out := cmd.OutOrStdout()
			g := st.GlobalCenter()
			fmt.Fprintf(out, "%s  (id %s)\n", st.Name(), st.ID())
			fmt.Fprintf(out, "  global center: (%.3f, %.3f, %.3f)\n", g.X(), g.Y(), g.Z())
			fmt.Fprintf(out, "  bounds: %.1f x %.1f x %.1f cm\n",
				st.Width(), st.Height(), st.Length())
			fmt.Fprintf(out, "  phi: %.4f rad  eta: %.4f\n", st.AzimuthalAngle(), st.Eta())

			for _, sl := range st.SuperLayers() {
				if onlySL != 0 && sl.Number() != onlySL {
					continue
				}
				c := sl.LocalCenter()
				fmt.Fprintf(out, "  superlayer %d  local center (%.3f, %.3f, %.3f)\n",
					sl.Number(), c.X(), c.Y(), c.Z())
				for _, layer := range sl.Layers() {
					first, last := layer.WireRange()
					fmt.Fprintf(out, "    layer %d: wires %d..%d\n", layer.Number(), first, last)
				}
			}
			if onlySL != 0 && st.SuperLayer(onlySL) == nil {
				fmt.Fprintf(out, "  superlayer %d absent\n", onlySL)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&onlySL, "sl", 0, "restrict output to one superlayer")

	return cmd
}
