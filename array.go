package gridinterp

import "math"

// Shape3 is the shape of a (level, y, x) array.
type Shape3 struct {
	Nz, Ny, Nx int
}

// Len returns the number of elements.
func (s Shape3) Len() int { return s.Nz * s.Ny * s.Nx }

// Slice returns the shape as []int{Nz, Ny, Nx}.
func (s Shape3) Slice() []int { return []int{s.Nz, s.Ny, s.Nx} }

// Array3 is a dense (level, y, x) array of float64.
// Values are stored row-major: Vals[(k*Ny+j)*Nx+i].
type Array3 struct {
	Shape Shape3
	Vals  []float64
}

// NewArray3 returns a zeroed array of the given shape.
func NewArray3(nz, ny, nx int) *Array3 {
	s := Shape3{Nz: nz, Ny: ny, Nx: nx}
	return &Array3{Shape: s, Vals: make([]float64, s.Len())}
}

// Array3From wraps vals as a (nz, ny, nx) array without copying.
func Array3From(vals []float64, nz, ny, nx int) (*Array3, error) {
	s := Shape3{Nz: nz, Ny: ny, Nx: nx}
	if nz < 0 || ny < 0 || nx < 0 || len(vals) != s.Len() {
		return nil, shapeErr("array", []int{len(vals)}, "%d values for (%d, %d, %d)", s.Len(), nz, ny, nx)
	}
	return &Array3{Shape: s, Vals: vals}, nil
}

// Column wraps a single vertical profile as an (L, 1, 1) array, which the
// level kernel broadcasts across every grid point.
func Column(vals ...float64) *Array3 {
	return &Array3{Shape: Shape3{Nz: len(vals), Ny: 1, Nx: 1}, Vals: vals}
}

func (a *Array3) index(k, j, i int) int { return (k*a.Shape.Ny+j)*a.Shape.Nx + i }

// At returns the value at (k, j, i).
func (a *Array3) At(k, j, i int) float64 { return a.Vals[a.index(k, j, i)] }

// Set stores v at (k, j, i).
func (a *Array3) Set(k, j, i int, v float64) { a.Vals[a.index(k, j, i)] = v }

// columnInto copies the vertical profile at (j, i) into dst and returns it.
func (a *Array3) columnInto(dst []float64, j, i int) []float64 {
	dst = dst[:0]
	stride := a.Shape.Ny * a.Shape.Nx
	off := j*a.Shape.Nx + i
	for k := 0; k < a.Shape.Nz; k++ {
		dst = append(dst, a.Vals[k*stride+off])
	}
	return dst
}

// isColumn reports whether a is a single (L, 1, 1) profile.
func (a *Array3) isColumn() bool { return a.Shape.Ny == 1 && a.Shape.Nx == 1 }

// Masked pairs an interpolated array with its validity mask.
// Mask[n] is true where Data.Vals[n] could not be computed; those values are
// NaN placeholders and must be treated as missing.
type Masked struct {
	Data *Array3
	Mask []bool
}

func newMasked(s Shape3) *Masked {
	vals := make([]float64, s.Len())
	for n := range vals {
		vals[n] = math.NaN()
	}
	return &Masked{Data: &Array3{Shape: s, Vals: vals}, Mask: make([]bool, s.Len())}
}

// Valid reports whether the value at (k, j, i) was computed.
func (m *Masked) Valid(k, j, i int) bool { return !m.Mask[m.Data.index(k, j, i)] }

// Count returns the number of masked points.
func (m *Masked) Count() int {
	n := 0
	for _, b := range m.Mask {
		if b {
			n++
		}
	}
	return n
}

// Filled returns a copy of the data with masked points replaced by fill.
func (m *Masked) Filled(fill float64) []float64 {
	out := make([]float64, len(m.Data.Vals))
	for n, v := range m.Data.Vals {
		if m.Mask[n] {
			v = fill
		}
		out[n] = v
	}
	return out
}
