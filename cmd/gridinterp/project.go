package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/geal-ai/gridinterp"
)

// jsonProjection is the JSON response of the project command.
type jsonProjection struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	I   float64 `json:"i"`
	J   float64 `json:"j"`
}

func newProjectCmd() *cobra.Command {
	var inverse, asJSON bool

	cmd := &cobra.Command{
		Use:   "project [--inverse] <a> <b>",
		Short: "Convert between lat/lon and HRRR grid metres",
		Long: `Without --inverse, <a> <b> are latitude and longitude in degrees and the
output is the position on the HRRR Lambert conformal grid, in metres from
the grid origin and in fractional grid cells. With --inverse, <a> <b> are
x and y in metres and the output is latitude and longitude.
Put "--" before negative values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid coordinate %q: %w", args[0], err)
			}
			b, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid coordinate %q: %w", args[1], err)
			}

			p := gridinterp.HRRR()
			var out jsonProjection
			if inverse {
				out.X, out.Y = a, b
				out.Lat, out.Lon = p.Inverse(a, b)
			} else {
				out.Lat, out.Lon = a, gridinterp.NormLon(b)
				out.X, out.Y = p.Forward(out.Lat, out.Lon)
			}
			out.I, out.J = out.X/gridinterp.HRRRDx, out.Y/gridinterp.HRRRDy

			inside := out.I >= 0 && out.J >= 0 && out.I <= gridinterp.HRRRNi-1 && out.J <= gridinterp.HRRRNj-1
			if !inside {
				loggerFromContext(cmd.Context()).Warn("point is outside the HRRR CONUS domain", "i", out.I, "j", out.J)
			}

			if asJSON {
				return emitJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "\n")
			fmt.Fprintf(w, "  Location : %.4f°N  %.4f°E\n", out.Lat, out.Lon)
			fmt.Fprintf(w, "  Metres   : x=%.1f  y=%.1f\n", out.X, out.Y)
			fmt.Fprintf(w, "  Grid     : i=%.2f  j=%.2f\n", out.I, out.J)
			fmt.Fprintf(w, "\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&inverse, "inverse", false, "convert x/y metres to lat/lon")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}
