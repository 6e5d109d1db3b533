package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/geal-ai/gridinterp"
)

// jsonLevel is one target level in JSON output.
type jsonLevel struct {
	Level  float64  `json:"level"`
	Value  *float64 `json:"value,omitempty"`
	Masked bool     `json:"masked,omitempty"`
}

// jsonLevels is the top-level JSON response of the level command.
type jsonLevels struct {
	Coordinate string      `json:"coordinate"`
	Mode       string      `json:"mode"`
	Order      int         `json:"order"`
	Levels     []jsonLevel `json:"levels"`
}

func newLevelCmd() *cobra.Command {
	var (
		coord, data []float64
		name, mode  string
		order       int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "level [flags] <level>...",
		Short: "Interpolate one column onto new vertical levels",
		Long: `Interpolate a single column, given as coordinate values and data values
from the same levels, onto the target levels. Pressure-like coordinates
(--name containing "pressure") are interpolated in log space unless
--mode says otherwise. Targets outside the column are reported as masked.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := configFromContext(cmd.Context())

			targets := make([]float64, len(args))
			for n, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid level %q: %w", a, err)
				}
				targets[n] = v
			}
			if len(coord) != len(data) {
				return fmt.Errorf("--coord has %d values but --data has %d", len(coord), len(data))
			}

			m := gridinterp.ModeFor(name)
			if mode != "auto" {
				var err error
				if m, err = gridinterp.ParseMode(mode); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("order") {
				order = cfg.Order
			}

			vi := gridinterp.VerticalInterpolator{Mode: m, Order: order, Workers: cfg.Workers}
			logger.Debug("interpolating column", "coord", name, "mode", m, "order", order, "levels", len(coord), "targets", len(targets))
			res, err := vi.Interpolate(
				gridinterp.Column(data...),
				gridinterp.Column(coord...),
				gridinterp.ExpandLevels(targets, 1, 1),
			)
			if err != nil {
				return err
			}
			if n := res.Count(); n > 0 {
				logger.Warn("targets outside the column", "masked", n)
			}

			if asJSON {
				return emitJSON(cmd.OutOrStdout(), levelsJSON(name, m, order, targets, res))
			}
			printLevels(cmd.OutOrStdout(), name, m, targets, res)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64SliceVar(&coord, "coord", nil, "vertical coordinate of each input level, comma separated")
	f.Float64SliceVar(&data, "data", nil, "data value at each input level, comma separated")
	f.StringVar(&name, "name", "air_pressure", "name of the vertical coordinate")
	f.StringVar(&mode, "mode", "auto", "auto, linear or log")
	f.IntVar(&order, "order", gridinterp.LinearOrder, "interpolation order (default from config)")
	f.BoolVar(&asJSON, "json", false, "output results as JSON")
	_ = cmd.MarkFlagRequired("coord")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func levelsJSON(name string, m gridinterp.Mode, order int, targets []float64, res *gridinterp.Masked) jsonLevels {
	out := jsonLevels{Coordinate: name, Mode: m.String(), Order: order, Levels: make([]jsonLevel, len(targets))}
	for n, t := range targets {
		out.Levels[n] = jsonLevel{Level: t}
		if res.Mask[n] {
			out.Levels[n].Masked = true
			continue
		}
		v := res.Data.Vals[n]
		out.Levels[n].Value = &v
	}
	return out
}

func printLevels(w io.Writer, name string, m gridinterp.Mode, targets []float64, res *gridinterp.Masked) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Coordinate : %s (%s)\n", name, m)
	fmt.Fprintf(w, "\n")
	for n, t := range targets {
		if res.Mask[n] {
			fmt.Fprintf(w, "  %12g  (outside column)\n", t)
			continue
		}
		fmt.Fprintf(w, "  %12g  %g\n", t, res.Data.Vals[n])
	}
	fmt.Fprintf(w, "\n")
}

// emitJSON writes v to w as indented JSON.
func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
