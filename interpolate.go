package gridinterp

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
)

// Interpolator runs the cube-level operations with one Config.
// It is immutable and safe for concurrent use.
type Interpolator struct {
	cfg    Config
	logger *log.Logger
}

// New validates cfg and returns an Interpolator that does not log.
func New(cfg Config) (*Interpolator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Interpolator{cfg: cfg, logger: log.New(io.Discard)}, nil
}

// Default returns an Interpolator using DefaultConfig.
func Default() *Interpolator {
	ip, _ := New(DefaultConfig())
	return ip
}

// WithLogger returns a copy of ip that logs to l.
func (ip *Interpolator) WithLogger(l *log.Logger) *Interpolator {
	cp := *ip
	if l == nil {
		l = log.New(io.Discard)
	}
	cp.logger = l
	return &cp
}

// Config returns the interpolator's settings.
func (ip *Interpolator) Config() Config { return ip.cfg }

// Point names a dimension coordinate and the values to interpolate it to.
type Point struct {
	Coord  string
	Values []float64
}

// At is shorthand for Point{coord, values}.
func At(coord string, values ...float64) Point { return Point{Coord: coord, Values: values} }

// Interpolate interpolates cube to the given coordinate values.
//
// Each Point must name a one-dimensional dimension coordinate. Dimensions are
// interpolated one after the other, which for linear weights is the same as
// multilinear interpolation. A Point with one value removes its dimension
// and leaves a scalar coordinate; several values replace the dimension's
// points. Auxiliary coordinates spanning an interpolated dimension are
// interpolated with it. Missing values spread to their neighbours as NaN and
// come back masked.
func (ip *Interpolator) Interpolate(cube *Cube, points ...Point) (*Cube, error) {
	return ip.interpolate(cube, true, points...)
}

func (ip *Interpolator) interpolate(cube *Cube, collapse bool, points ...Point) (*Cube, error) {
	work := cube.Copy()
	work.Data = cube.nanData()
	work.Mask = nil

	seen := map[string]bool{}
	fixed := map[int]int{}
	for _, p := range points {
		if seen[p.Coord] {
			return nil, configErr("coord", p.Coord, "requested twice")
		}
		seen[p.Coord] = true
		if len(p.Values) == 0 {
			return nil, configErr("coord", p.Coord, "no target values")
		}

		co, err := work.Coord(p.Coord)
		if err != nil {
			return nil, err
		}
		d := work.DimOf(co)
		if d < 0 {
			return nil, configErr("coord", p.Coord, "not a dimension coordinate of %s", cube.Name)
		}
		w, err := axisWeights(co.Points, p.Values, ip.cfg.Extrapolation)
		if err != nil {
			return nil, fmt.Errorf("interpolating %s: %w", p.Coord, err)
		}

		ip.logger.Debug("interpolating", "cube", cube.Name, "coord", p.Coord, "from", len(co.Points), "to", len(p.Values))

		for _, ac := range work.AuxCoords {
			ax := slices.Index(ac.Dims, d)
			if ax < 0 {
				continue
			}
			local := make([]int, len(ac.Dims))
			for k, dd := range ac.Dims {
				local[k] = work.Shape[dd]
			}
			ac.Points, _ = resample(ac.Points, local, ax, w)
		}
		work.Data, work.Shape = resample(work.Data, work.Shape, d, w)
		work.DimCoords[d] = &Coord{Name: co.Name, Units: co.Units, Axis: co.Axis, Points: slices.Clone(p.Values), Dims: []int{d}}

		if collapse && len(p.Values) == 1 {
			fixed[d] = 0
		}
	}
	work.Mask = maskNaN(work.Data)

	if len(fixed) > 0 {
		return work.Slice(fixed)
	}
	return work, nil
}

// weight describes one resampled point as v[i0] + f*(v[i1]-v[i0]).
type weight struct {
	i0, i1 int
	f      float64
}

func (w weight) apply(v0, v1 float64) float64 {
	switch w.f {
	case 0:
		return v0
	case 1:
		return v1
	}
	return v0 + w.f*(v1-v0)
}

// axisWeights computes linear weights for targets on a strictly monotonic axis.
func axisWeights(axis, targets []float64, ext Extrapolation) ([]weight, error) {
	n := len(axis)
	if n == 0 {
		return nil, configErr("axis", 0, "no points")
	}
	dir := monotonic(axis)
	if dir == 0 {
		return nil, configErr("axis", axis, "not strictly monotonic")
	}

	if n == 1 {
		ws := make([]weight, len(targets))
		for k, t := range targets {
			switch {
			case math.IsNaN(t):
				ws[k] = weight{f: math.NaN()}
			case t != axis[0] && ext == ExtrapolateError:
				return nil, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfBounds, t, axis[0], axis[0])
			}
		}
		return ws, nil
	}

	// Work on an ascending view; map indices back for descending axes.
	asc := axis
	idx := func(a int) int { return a }
	if dir < 0 {
		asc = slices.Clone(axis)
		slices.Reverse(asc)
		idx = func(a int) int { return n - 1 - a }
	}
	lo, hi := asc[0], asc[n-1]

	ws := make([]weight, len(targets))
	for k, t := range targets {
		var a int
		var f float64
		switch {
		case math.IsNaN(t):
			ws[k] = weight{f: math.NaN()}
			continue
		case t == hi:
			a, f = n-2, 1
		case t < lo || t > hi:
			switch ext {
			case ExtrapolateError:
				return nil, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfBounds, t, lo, hi)
			case ExtrapolateClip:
				end := 0
				if t > hi {
					end = n - 1
				}
				ws[k] = weight{i0: idx(end), i1: idx(end)}
				continue
			}
			a = 0
			if t > hi {
				a = n - 2
			}
			f = (t - asc[a]) / (asc[a+1] - asc[a])
		default:
			a = floats.Within(asc, t)
			f = (t - asc[a]) / (asc[a+1] - asc[a])
		}
		ws[k] = weight{i0: idx(a), i1: idx(a + 1), f: f}
	}
	return ws, nil
}

// resample applies weights along one axis of an n-dimensional array.
func resample(vals []float64, shape []int, axis int, ws []weight) ([]float64, []int) {
	outer := size(shape[:axis])
	inner := size(shape[axis+1:])
	n := shape[axis]
	m := len(ws)

	out := make([]float64, outer*m*inner)
	for o := 0; o < outer; o++ {
		for p, w := range ws {
			src0 := (o*n + w.i0) * inner
			src1 := (o*n + w.i1) * inner
			dst := (o*m + p) * inner
			for q := 0; q < inner; q++ {
				out[dst+q] = w.apply(vals[src0+q], vals[src1+q])
			}
		}
	}
	newShape := slices.Clone(shape)
	newShape[axis] = m
	return out, newShape
}
