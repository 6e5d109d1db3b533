package gridinterp

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Cube is a labeled n-dimensional field: values plus the coordinates that
// locate them. Data is row-major over Shape. Mask, when non-nil, has the
// same length as Data and is true at missing values.
//
// Dimension order for gridded fields is (Z, Y, X) or (Y, X).
type Cube struct {
	Name       string
	Units      string
	Attributes map[string]string
	Shape      []int
	Data       []float64
	Mask       []bool
	DimCoords  []*Coord // one slot per dimension; a slot may be nil
	AuxCoords  []*Coord
}

// NewCube builds a cube from raw values. Copies of dimCoords are assigned
// to dimensions 0, 1, ... in order, with Dims set accordingly.
func NewCube(name, units string, data []float64, shape []int, dimCoords ...*Coord) (*Cube, error) {
	if len(dimCoords) > len(shape) {
		return nil, shapeErr("cube "+name, shape, "at least %d dimensions", len(dimCoords))
	}
	c := &Cube{
		Name:       name,
		Units:      units,
		Attributes: map[string]string{},
		Shape:      slices.Clone(shape),
		Data:       data,
		DimCoords:  make([]*Coord, len(shape)),
	}
	for d, dc := range dimCoords {
		if dc == nil {
			continue
		}
		dc = dc.Copy()
		dc.Dims = []int{d}
		c.DimCoords[d] = dc
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cube) validate() error {
	if len(c.Data) != size(c.Shape) {
		return shapeErr("cube "+c.Name, c.Shape, "%d values", len(c.Data))
	}
	if c.Mask != nil && len(c.Mask) != len(c.Data) {
		return shapeErr("mask of "+c.Name, []int{len(c.Mask)}, "%d values", len(c.Data))
	}
	if len(c.DimCoords) != len(c.Shape) {
		return shapeErr("dim coords of "+c.Name, []int{len(c.DimCoords)}, "one slot per dimension (%d)", len(c.Shape))
	}
	for d, dc := range c.DimCoords {
		if dc == nil {
			continue
		}
		if len(dc.Dims) != 1 || dc.Dims[0] != d || len(dc.Points) != c.Shape[d] {
			return shapeErr("coord "+dc.Name, []int{len(dc.Points)}, "%d points on dimension %d", c.Shape[d], d)
		}
	}
	for _, ac := range c.AuxCoords {
		if err := c.checkCoord(ac); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cube) checkCoord(co *Coord) error {
	n := 1
	for k, d := range co.Dims {
		if d < 0 || d >= len(c.Shape) || (k > 0 && d <= co.Dims[k-1]) {
			return shapeErr("coord "+co.Name, co.Dims, "increasing dimensions of a rank %d cube", len(c.Shape))
		}
		n *= c.Shape[d]
	}
	if len(co.Points) != n {
		return shapeErr("coord "+co.Name, []int{len(co.Points)}, "%d points", n)
	}
	return nil
}

// NDim returns the cube's rank.
func (c *Cube) NDim() int { return len(c.Shape) }

// Coords returns the dimension coordinates followed by the auxiliary ones.
func (c *Cube) Coords() []*Coord {
	out := make([]*Coord, 0, len(c.DimCoords)+len(c.AuxCoords))
	for _, dc := range c.DimCoords {
		if dc != nil {
			out = append(out, dc)
		}
	}
	return append(out, c.AuxCoords...)
}

// Coord looks a coordinate up by name.
func (c *Cube) Coord(name string) (*Coord, error) {
	for _, co := range c.Coords() {
		if co.Name == name {
			return co, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrCoordNotFound, name, c.Name)
}

// CoordByAxis returns the coordinate for an axis, preferring a dimension
// coordinate over an auxiliary one.
func (c *Cube) CoordByAxis(axis Axis) (*Coord, error) {
	for _, co := range c.Coords() {
		if co.AxisOf() == axis {
			return co, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s axis in %s", ErrCoordNotFound, axis, c.Name)
}

// DimCoordByAxis returns the dimension coordinate for an axis and its dimension.
func (c *Cube) DimCoordByAxis(axis Axis) (*Coord, int, error) {
	for d, dc := range c.DimCoords {
		if dc != nil && dc.AxisOf() == axis {
			return dc, d, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: no %s dimension coordinate in %s", ErrCoordNotFound, axis, c.Name)
}

// DimOf returns the dimension co describes, or -1 if it is not a
// dimension coordinate of c.
func (c *Cube) DimOf(co *Coord) int {
	for d, dc := range c.DimCoords {
		if dc == co {
			return d
		}
	}
	return -1
}

// AddAuxCoord attaches co after checking it fits the cube.
func (c *Cube) AddAuxCoord(co *Coord) error {
	if err := c.checkCoord(co); err != nil {
		return err
	}
	if _, err := c.Coord(co.Name); err == nil {
		return configErr("coord", co.Name, "already present in %s", c.Name)
	}
	c.AuxCoords = append(c.AuxCoords, co)
	return nil
}

// RemoveCoord drops the named coordinate and reports whether it existed.
func (c *Cube) RemoveCoord(name string) bool {
	for d, dc := range c.DimCoords {
		if dc != nil && dc.Name == name {
			c.DimCoords[d] = nil
			return true
		}
	}
	for k, ac := range c.AuxCoords {
		if ac.Name == name {
			c.AuxCoords = slices.Delete(c.AuxCoords, k, k+1)
			return true
		}
	}
	return false
}

// ScalarCoords returns the auxiliary coordinates that span no dimension.
func (c *Cube) ScalarCoords() []*Coord {
	var out []*Coord
	for _, ac := range c.AuxCoords {
		if ac.IsScalar() {
			out = append(out, ac)
		}
	}
	return out
}

// Copy returns a deep copy of c.
func (c *Cube) Copy() *Cube {
	cp := &Cube{
		Name:       c.Name,
		Units:      c.Units,
		Attributes: maps.Clone(c.Attributes),
		Shape:      slices.Clone(c.Shape),
		Data:       slices.Clone(c.Data),
		Mask:       slices.Clone(c.Mask),
		DimCoords:  make([]*Coord, len(c.DimCoords)),
	}
	if cp.Attributes == nil {
		cp.Attributes = map[string]string{}
	}
	for d, dc := range c.DimCoords {
		if dc != nil {
			cp.DimCoords[d] = dc.Copy()
		}
	}
	for _, ac := range c.AuxCoords {
		cp.AuxCoords = append(cp.AuxCoords, ac.Copy())
	}
	return cp
}

// WithData returns a copy of c holding data and mask instead of its own values.
func (c *Cube) WithData(data []float64, mask []bool) (*Cube, error) {
	cp := c.Copy()
	cp.Data, cp.Mask = data, mask
	if err := cp.validate(); err != nil {
		return nil, err
	}
	return cp, nil
}

// At returns the value at idx and whether it is present.
func (c *Cube) At(idx ...int) (float64, bool) {
	n := offset(c.Shape, idx)
	if c.Mask != nil && c.Mask[n] {
		return math.NaN(), false
	}
	return c.Data[n], !math.IsNaN(c.Data[n])
}

// Filled returns the data with missing values replaced by fill.
func (c *Cube) Filled(fill float64) []float64 {
	out := slices.Clone(c.Data)
	for n := range out {
		if (c.Mask != nil && c.Mask[n]) || math.IsNaN(out[n]) {
			out[n] = fill
		}
	}
	return out
}

// nanData returns a copy of the data with masked values set to NaN.
func (c *Cube) nanData() []float64 {
	out := slices.Clone(c.Data)
	if c.Mask != nil {
		for n, m := range c.Mask {
			if m {
				out[n] = math.NaN()
			}
		}
	}
	return out
}

// Slice fixes the dimensions in fixed (dimension -> index) and drops them.
// Dimension coordinates of fixed dimensions become scalar coordinates, and
// auxiliary coordinates are cut down the same way as the data.
func (c *Cube) Slice(fixed map[int]int) (*Cube, error) {
	for d, idx := range fixed {
		if d < 0 || d >= len(c.Shape) || idx < 0 || idx >= c.Shape[d] {
			return nil, shapeErr("slice of "+c.Name, c.Shape, "index %d within dimension %d", idx, d)
		}
	}

	renum := make([]int, len(c.Shape))
	next := 0
	for d := range c.Shape {
		if _, ok := fixed[d]; ok {
			renum[d] = -1
			continue
		}
		renum[d] = next
		next++
	}

	data, shape := take(c.Data, c.Shape, fixed)
	out := &Cube{
		Name:       c.Name,
		Units:      c.Units,
		Attributes: maps.Clone(c.Attributes),
		Shape:      shape,
		Data:       data,
		DimCoords:  make([]*Coord, len(shape)),
	}
	if c.Mask != nil {
		out.Mask, _ = take(c.Mask, c.Shape, fixed)
	}

	for d, dc := range c.DimCoords {
		if dc == nil {
			continue
		}
		if idx, ok := fixed[d]; ok {
			out.AuxCoords = append(out.AuxCoords, &Coord{Name: dc.Name, Units: dc.Units, Axis: dc.Axis, Points: []float64{dc.Points[idx]}})
			continue
		}
		nc := dc.Copy()
		nc.Dims = []int{renum[d]}
		out.DimCoords[renum[d]] = nc
	}
	for _, ac := range c.AuxCoords {
		out.AuxCoords = append(out.AuxCoords, sliceCoord(ac, c.Shape, fixed, renum))
	}
	return out, nil
}

func sliceCoord(co *Coord, shape []int, fixed map[int]int, renum []int) *Coord {
	local := make([]int, len(co.Dims))
	lfixed := map[int]int{}
	var dims []int
	for k, d := range co.Dims {
		local[k] = shape[d]
		if idx, ok := fixed[d]; ok {
			lfixed[k] = idx
			continue
		}
		dims = append(dims, renum[d])
	}
	pts, _ := take(co.Points, local, lfixed)
	return &Coord{Name: co.Name, Units: co.Units, Axis: co.Axis, Points: pts, Dims: dims}
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	s := 1
	for d := len(shape) - 1; d >= 0; d-- {
		st[d] = s
		s *= shape[d]
	}
	return st
}

func offset(shape, idx []int) int {
	st := strides(shape)
	n := 0
	for d, i := range idx {
		n += i * st[d]
	}
	return n
}

// take extracts the sub-array with the dimensions in fixed held at the given
// indices. It returns the values and the shape of the remaining dimensions.
func take[T any](vals []T, shape []int, fixed map[int]int) ([]T, []int) {
	st := strides(shape)
	base := 0
	var keptShape, keptStride []int
	for d, n := range shape {
		if idx, ok := fixed[d]; ok {
			base += idx * st[d]
			continue
		}
		keptShape = append(keptShape, n)
		keptStride = append(keptStride, st[d])
	}

	out := make([]T, size(keptShape))
	idx := make([]int, len(keptShape))
	for n := range out {
		off := base
		for a, i := range idx {
			off += i * keptStride[a]
		}
		out[n] = vals[off]
		for a := len(idx) - 1; a >= 0; a-- {
			idx[a]++
			if idx[a] < keptShape[a] {
				break
			}
			idx[a] = 0
		}
	}
	if keptShape == nil {
		keptShape = []int{}
	}
	return out, keptShape
}

// maskNaN returns a mask marking NaN values, or nil when there are none.
func maskNaN(vals []float64) []bool {
	var mask []bool
	for n, v := range vals {
		if math.IsNaN(v) {
			if mask == nil {
				mask = make([]bool, len(vals))
			}
			mask[n] = true
		}
	}
	return mask
}
