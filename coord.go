package gridinterp

import (
	"slices"
	"strings"
)

// Axis is the CF-style axis designation of a coordinate.
type Axis string

const (
	AxisNone Axis = ""
	AxisX    Axis = "X"
	AxisY    Axis = "Y"
	AxisZ    Axis = "Z"
	AxisT    Axis = "T"
)

// Coord is a named coordinate attached to a Cube.
//
// Dims lists the cube dimensions the coordinate spans, in order. Points is
// row-major over those dimensions. A coordinate with no Dims and a single
// point is scalar: it labels the whole cube.
type Coord struct {
	Name   string
	Units  string
	Axis   Axis // AxisNone: guessed from Name and Units
	Points []float64
	Dims   []int
}

// DimCoord returns a one-dimensional coordinate spanning dimension dim.
func DimCoord(name, units string, dim int, points ...float64) *Coord {
	return &Coord{Name: name, Units: units, Points: points, Dims: []int{dim}}
}

// ScalarCoord returns a coordinate holding one value for the whole cube.
func ScalarCoord(name, units string, v float64) *Coord {
	return &Coord{Name: name, Units: units, Points: []float64{v}}
}

// AxisOf returns the coordinate's axis, guessing it when unset.
func (c *Coord) AxisOf() Axis {
	if c.Axis != AxisNone {
		return c.Axis
	}
	return GuessAxis(c.Name, c.Units)
}

// IsScalar reports whether c spans no dimension.
func (c *Coord) IsScalar() bool { return len(c.Dims) == 0 }

// Copy returns a deep copy of c.
func (c *Coord) Copy() *Coord {
	cp := *c
	cp.Points = slices.Clone(c.Points)
	cp.Dims = slices.Clone(c.Dims)
	return &cp
}

func (c *Coord) equal(o *Coord) bool {
	return c.Name == o.Name && c.Units == o.Units && slices.Equal(c.Dims, o.Dims) && slices.Equal(c.Points, o.Points)
}

// monotonic returns +1 or -1 for strictly increasing or decreasing points,
// 0 otherwise. A single point counts as increasing.
func monotonic(p []float64) int {
	if len(p) == 0 {
		return 0
	}
	up, down := true, true
	for k := 1; k < len(p); k++ {
		if !(p[k] > p[k-1]) {
			up = false
		}
		if !(p[k] < p[k-1]) {
			down = false
		}
	}
	switch {
	case up:
		return 1
	case down:
		return -1
	}
	return 0
}

var axisNames = map[string]Axis{
	"x":                       AxisX,
	"longitude":               AxisX,
	"grid_longitude":          AxisX,
	"projection_x_coordinate": AxisX,
	"y":                       AxisY,
	"latitude":                AxisY,
	"grid_latitude":           AxisY,
	"projection_y_coordinate": AxisY,
	"z":                       AxisZ,
	"altitude":                AxisZ,
	"height":                  AxisZ,
	"depth":                   AxisZ,
	"level_height":            AxisZ,
	"model_level_number":      AxisZ,
	"level_number":            AxisZ,
	"pressure":                AxisZ,
	"air_pressure":            AxisZ,
	"t":                       AxisT,
	"time":                    AxisT,
	"forecast_reference_time": AxisT,
	"forecast_period":         AxisT,
}

// GuessAxis guesses a coordinate's axis from its name and units:
// well-known CF names first, then time units ("hours since ...") and
// pressure units.
func GuessAxis(name, units string) Axis {
	if a, ok := axisNames[strings.ToLower(name)]; ok {
		return a
	}
	u := strings.ToLower(strings.TrimSpace(units))
	if strings.Contains(u, " since ") {
		return AxisT
	}
	switch u {
	case "pa", "hpa", "mb", "mbar", "millibar":
		return AxisZ
	}
	return AxisNone
}
