package gridinterp

// ExpandLevels broadcasts a flat list of M levels to an (M, ny, nx) array
// holding levels[m] at every grid point of level m.
func ExpandLevels(levels []float64, ny, nx int) *Array3 {
	out := NewArray3(len(levels), ny, nx)
	plane := ny * nx
	for m, v := range levels {
		row := out.Vals[m*plane : (m+1)*plane]
		for n := range row {
			row[n] = v
		}
	}
	return out
}

// ResolveLevels turns a requested target coordinate into an (M, ny, nx)
// array. shape is the shape of values: [M] is broadcast with ExpandLevels,
// [M, ny, nx] is used as-is. Any other rank, or a shape that does not agree
// with len(values) or the grid, is a *ShapeError.
func ResolveLevels(values []float64, shape []int, ny, nx int) (*Array3, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, shapeErr("target levels", shape, "non-negative dimensions")
		}
		n *= d
	}
	if len(shape) > 0 && n != len(values) {
		return nil, shapeErr("target levels", shape, "a shape holding %d values", len(values))
	}

	switch len(shape) {
	case 1:
		return ExpandLevels(values, ny, nx), nil
	case 3:
		if shape[1] != ny || shape[2] != nx {
			return nil, shapeErr("target levels", shape, "(M, %d, %d)", ny, nx)
		}
		return &Array3{Shape: Shape3{Nz: shape[0], Ny: ny, Nx: nx}, Vals: values}, nil
	}
	return nil, shapeErr("target levels", shape, "a list of levels or a (M, %d, %d) array", ny, nx)
}
