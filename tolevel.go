// Package gridinterp interpolates gridded atmospheric and oceanic fields
// indexed by (level, y, x): onto new vertical levels, onto points, along
// horizontal cross-sections, and from one grid onto another.
//
// The vertical kernel (InterpolateToLevel) works on bare arrays. The Cube
// type and the Interpolator methods layer coordinate metadata on top of it.
package gridinterp

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// VerticalInterpolator interpolates a (L, Y, X) field from one set of
// vertical coordinate values onto another, column by column.
// The zero value interpolates linearly on one goroutine.
type VerticalInterpolator struct {
	Mode  Mode
	Order int // 0 or LinearOrder
	// Workers bounds the number of grid rows processed concurrently.
	// Values <= 1 run sequentially. Output does not depend on Workers.
	Workers int
}

// InterpolateToLevel interpolates data, whose levels sit at coordIn, onto the
// levels in coordOut.
//
//	data:     (L, Y, X)
//	coordIn:  (L, Y, X), or (L, 1, 1) for one profile shared by every column
//	coordOut: (M, Y, X)
//
// The result has coordOut's shape. Points whose target level is outside the
// column's range, or whose column is degenerate, are masked.
// An unsupported order or mismatched shapes fail before any work is done.
func InterpolateToLevel(data, coordIn, coordOut *Array3, mode Mode, order int) (*Masked, error) {
	return VerticalInterpolator{Mode: mode, Order: order}.Interpolate(data, coordIn, coordOut)
}

// Interpolate is InterpolateToLevel with v's settings.
func (v VerticalInterpolator) Interpolate(data, coordIn, coordOut *Array3) (*Masked, error) {
	if err := validateOrder(v.Order); err != nil {
		return nil, err
	}
	if err := validateMode(v.Mode); err != nil {
		return nil, err
	}
	if err := checkLevelShapes(data, coordIn, coordOut); err != nil {
		return nil, err
	}

	out := newMasked(coordOut.Shape)
	var shared []float64
	if coordIn.isColumn() {
		shared = coordIn.columnInto(nil, 0, 0)
	}

	ny := data.Shape.Ny
	if v.Workers <= 1 || ny < 2 {
		v.rows(data, coordIn, coordOut, shared, out, 0, ny)
		return out, nil
	}

	// Rows write disjoint parts of out.
	var g errgroup.Group
	g.SetLimit(v.Workers)
	for j := 0; j < ny; j++ {
		j := j
		g.Go(func() error {
			v.rows(data, coordIn, coordOut, shared, out, j, j+1)
			return nil
		})
	}
	return out, g.Wait()
}

func checkLevelShapes(data, coordIn, coordOut *Array3) error {
	for _, a := range []struct {
		name string
		arr  *Array3
	}{{"data", data}, {"input coordinate", coordIn}, {"target levels", coordOut}} {
		if a.arr == nil {
			return shapeErr(a.name, nil, "a non-nil array")
		}
		if len(a.arr.Vals) != a.arr.Shape.Len() {
			return shapeErr(a.name, a.arr.Shape.Slice(), "%d values", len(a.arr.Vals))
		}
	}

	ds := data.Shape
	cs := coordIn.Shape
	if cs.Nz != ds.Nz || !(coordIn.isColumn() || (cs.Ny == ds.Ny && cs.Nx == ds.Nx)) {
		return shapeErr("input coordinate", cs.Slice(), "(%d, %d, %d) or (%d, 1, 1)", ds.Nz, ds.Ny, ds.Nx, ds.Nz)
	}
	if ts := coordOut.Shape; ts.Ny != ds.Ny || ts.Nx != ds.Nx {
		return shapeErr("target levels", ts.Slice(), "(M, %d, %d)", ds.Ny, ds.Nx)
	}
	return nil
}

// rows fills out for grid rows [j0, j1).
func (v VerticalInterpolator) rows(data, coordIn, coordOut *Array3, shared []float64, out *Masked, j0, j1 int) {
	nz := data.Shape.Nz
	col := make([]float64, 0, nz)
	dcol := make([]float64, 0, nz)

	for j := j0; j < j1; j++ {
		for i := 0; i < data.Shape.Nx; i++ {
			c := shared
			if c == nil {
				col = coordIn.columnInto(col, j, i)
				c = col
			}
			dcol = data.columnInto(dcol, j, i)
			dir := direction(c)

			for m := 0; m < coordOut.Shape.Nz; m++ {
				n := out.Data.index(m, j, i)
				val, ok := v.level(c, dcol, dir, coordOut.Vals[n])
				if !ok {
					out.Mask[n] = true
					continue
				}
				out.Data.Vals[n] = val
			}
		}
	}
}

// direction returns +1 for an ascending column and -1 for a descending one,
// judged by its first and last finite values. It returns 0 when the column
// is degenerate: fewer than two finite values, or equal end values.
func direction(c []float64) int {
	first, last := -1, -1
	for k, x := range c {
		if math.IsNaN(x) {
			continue
		}
		if first < 0 {
			first = k
		}
		last = k
	}
	if first < 0 || first == last {
		return 0
	}
	switch {
	case c[last] > c[first]:
		return 1
	case c[last] < c[first]:
		return -1
	}
	return 0
}

// level interpolates one target value t in column c with data d.
func (v VerticalInterpolator) level(c, d []float64, dir int, t float64) (float64, bool) {
	if dir == 0 || math.IsNaN(t) {
		return math.NaN(), false
	}
	for k := 0; k+1 < len(c); k++ {
		a, b := c[k], c[k+1]
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		lo, hi := a, b
		if dir < 0 {
			lo, hi = b, a
		}
		if t < lo || t > hi {
			continue
		}

		// Exact hits return the level's own value, bit for bit.
		switch t {
		case a:
			return present(d[k])
		case b:
			return present(d[k+1])
		}

		ga, okA := v.Mode.transform(a)
		gb, okB := v.Mode.transform(b)
		gt, okT := v.Mode.transform(t)
		if !okA || !okB || !okT {
			return math.NaN(), false
		}
		den := gb - ga
		if den == 0 {
			continue
		}
		dk, dk1 := d[k], d[k+1]
		if math.IsNaN(dk) || math.IsNaN(dk1) {
			return math.NaN(), false
		}
		f := (gt - ga) / den
		return present(dk + f*(dk1-dk))
	}
	return math.NaN(), false
}

func present(x float64) (float64, bool) {
	return x, !math.IsNaN(x)
}
