package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtgeo/dtgeo/dtxml"
	"github.com/dtgeo/dtgeo/geometry"
)

// stationFlags carries the flags every command needs to address one
// chamber inside the geometry dump.
type stationFlags struct {
	geometryPath string
	wheel        int
	sector       int
	station      int
}

func (f *stationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.geometryPath, "geometry", "g", "", "path to the geometry XML dump")
	cmd.Flags().IntVar(&f.wheel, "wheel", 0, "wheel number (-2..2)")
	cmd.Flags().IntVar(&f.sector, "sector", 1, "sector number (1..14)")
	cmd.Flags().IntVar(&f.station, "station", 1, "station number (1..4)")
	_ = cmd.MarkFlagRequired("geometry")
}

// build loads the dump and constructs the addressed station. A geometry
// that fails to load is fatal for the command.
func (f *stationFlags) build(ctx context.Context) (*geometry.Station, error) {
	logger := loggerFromContext(ctx)

	logger.Debug("loading geometry", "path", f.geometryPath)
	src, err := dtxml.Load(f.geometryPath)
	if err != nil {
		logger.Error("geometry load failed", "err", err)

		return nil, err
	}

	st, err := geometry.NewStation(src, f.wheel, f.sector, f.station)
	if err != nil {
		return nil, fmt.Errorf("build station: %w", err)
	}
	logger.Debug("station built", "name", st.Name())

	return st, nil
}
