package gridinterp

import (
	"maps"
	"slices"
)

// LevelNumber names the index dimension coordinate ToLevel adds when the
// target levels cannot serve as the dimension coordinate themselves.
const LevelNumber = "level_number"

// LevelTarget requests interpolation of a vertical coordinate to Values.
// Shape is nil for a flat list of levels, or {M, Y, X} for levels that vary
// across the grid.
type LevelTarget struct {
	Coord  string
	Values []float64
	Shape  []int
}

// Levels requests a flat list of levels of coord.
func Levels(coord string, values ...float64) LevelTarget {
	return LevelTarget{Coord: coord, Values: values}
}

// ToLevel interpolates a (Z, Y, X) cube onto new values of one of its
// vertical coordinates using the level kernel. Pressure-like coordinates are
// interpolated in log space.
//
// Exactly one target may be given. The named coordinate may be the Z
// dimension coordinate or a (Z, Y, X) auxiliary coordinate. The result
// keeps the cube's name, units, attributes, horizontal coordinates and
// scalar coordinates. The target values become the Z dimension coordinate
// when they are a strictly monotonic list; otherwise they are attached as
// an auxiliary coordinate next to a level_number dimension coordinate.
// Points outside a column's range are masked.
func (ip *Interpolator) ToLevel(cube *Cube, targets ...LevelTarget) (*Cube, error) {
	if len(targets) != 1 {
		return nil, configErr("targets", len(targets), "can only specify a single vertical coordinate")
	}
	t := targets[0]
	if err := validateOrder(ip.cfg.Order); err != nil {
		return nil, err
	}
	if cube.NDim() != 3 {
		return nil, shapeErr("cube "+cube.Name, cube.Shape, "(Z, Y, X)")
	}
	nz, ny, nx := cube.Shape[0], cube.Shape[1], cube.Shape[2]

	cin, err := cube.Coord(t.Coord)
	if err != nil {
		return nil, err
	}
	var coordIn *Array3
	switch {
	case slices.Equal(cin.Dims, []int{0}):
		coordIn = Column(cin.Points...)
	case slices.Equal(cin.Dims, []int{0, 1, 2}):
		coordIn = &Array3{Shape: Shape3{Nz: nz, Ny: ny, Nx: nx}, Vals: cin.Points}
	default:
		return nil, shapeErr("coord "+cin.Name, cin.Dims, "dimensions [0] or [0 1 2]")
	}

	shape := t.Shape
	if shape == nil {
		shape = []int{len(t.Values)}
	}
	coordOut, err := ResolveLevels(t.Values, shape, ny, nx)
	if err != nil {
		return nil, err
	}

	data := &Array3{Shape: Shape3{Nz: nz, Ny: ny, Nx: nx}, Vals: cube.nanData()}
	mode := ModeFor(t.Coord)
	res, err := VerticalInterpolator{Mode: mode, Order: ip.cfg.Order, Workers: ip.cfg.Workers}.Interpolate(data, coordIn, coordOut)
	if err != nil {
		return nil, err
	}
	ip.logger.Debug("to level", "cube", cube.Name, "coord", t.Coord, "mode", mode, "levels", coordOut.Shape.Nz, "masked", res.Count())

	m := coordOut.Shape.Nz
	out := &Cube{
		Name:       cube.Name,
		Units:      cube.Units,
		Attributes: maps.Clone(cube.Attributes),
		Shape:      []int{m, ny, nx},
		Data:       res.Data.Vals,
		Mask:       res.Mask,
		DimCoords:  make([]*Coord, 3),
	}
	if out.Attributes == nil {
		out.Attributes = map[string]string{}
	}
	for d := 1; d < 3; d++ {
		if dc := cube.DimCoords[d]; dc != nil {
			out.DimCoords[d] = dc.Copy()
		}
	}

	level := &Coord{Name: t.Coord, Units: cin.Units, Axis: cin.Axis, Points: slices.Clone(t.Values)}
	if len(shape) == 1 && monotonic(level.Points) != 0 {
		level.Dims = []int{0}
		out.DimCoords[0] = level
	} else {
		level.Dims = []int{0}
		if len(shape) == 3 {
			level.Dims = []int{0, 1, 2}
		}
		index := make([]float64, m)
		for k := range index {
			index[k] = float64(k)
		}
		out.DimCoords[0] = DimCoord(LevelNumber, "1", 0, index...)
		out.AuxCoords = append(out.AuxCoords, level)
	}

	for _, sc := range cube.ScalarCoords() {
		if _, err := out.Coord(sc.Name); err == nil {
			continue
		}
		out.AuxCoords = append(out.AuxCoords, sc.Copy())
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}
