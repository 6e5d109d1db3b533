package gridinterp

import (
	"fmt"
	"slices"
)

// Remap3D puts cube onto target's grid.
//
// The cube is first interpolated onto target's X and Y dimension
// coordinates, then onto its vertical coordinate: target's Z dimension
// coordinate, or the coordinate named vertCoord when that is not empty. A
// vertical coordinate that is a dimension coordinate in both cubes is
// handled by the point interpolator; anything else, such as a (Z, Y, X)
// altitude or pressure field, goes through ToLevel.
//
// The result is a copy of target holding the remapped values, with cube's
// name and units, and with cube's time coordinates in place of target's.
func (ip *Interpolator) Remap3D(cube, target *Cube, vertCoord string) (*Cube, error) {
	for _, c := range []*Cube{cube, target} {
		if c.NDim() != 3 {
			return nil, shapeErr("remap "+c.Name, c.Shape, "(Z, Y, X) source and target")
		}
	}

	// Horizontal.
	var pts []Point
	for _, axis := range []Axis{AxisX, AxisY} {
		tc, _, err := target.DimCoordByAxis(axis)
		if err != nil {
			return nil, fmt.Errorf("remap target: %w", err)
		}
		sc, _, err := cube.DimCoordByAxis(axis)
		if err != nil {
			return nil, fmt.Errorf("remap source: %w", err)
		}
		pts = append(pts, At(sc.Name, tc.Points...))
	}
	regridded, err := ip.interpolate(cube, false, pts...)
	if err != nil {
		return nil, err
	}

	// Vertical.
	var z *Coord
	if vertCoord == "" {
		z, _, err = target.DimCoordByAxis(AxisZ)
	} else {
		z, err = target.Coord(vertCoord)
	}
	if err != nil {
		return nil, fmt.Errorf("remap target: %w", err)
	}
	src, err := regridded.Coord(z.Name)
	if err != nil {
		return nil, fmt.Errorf("remap source: %w", err)
	}

	var vert *Cube
	switch {
	case regridded.DimOf(src) >= 0 && len(z.Dims) == 1:
		ip.logger.Debug("remap vertical", "coord", z.Name, "via", "points")
		vert, err = ip.interpolate(regridded, false, At(z.Name, z.Points...))
	case slices.Equal(z.Dims, []int{0}):
		ip.logger.Debug("remap vertical", "coord", z.Name, "via", "levels")
		vert, err = ip.ToLevel(regridded, Levels(z.Name, z.Points...))
	case slices.Equal(z.Dims, []int{0, 1, 2}):
		ip.logger.Debug("remap vertical", "coord", z.Name, "via", "levels")
		vert, err = ip.ToLevel(regridded, LevelTarget{Coord: z.Name, Values: z.Points, Shape: target.Shape})
	default:
		return nil, shapeErr("coord "+z.Name, z.Dims, "dimensions [0] or [0 1 2] of the target")
	}
	if err != nil {
		return nil, err
	}

	if !slices.Equal(vert.Shape, target.Shape) {
		return nil, shapeErr("remapped "+cube.Name, vert.Shape, "target shape %v", target.Shape)
	}
	out, err := target.WithData(vert.Data, vert.Mask)
	if err != nil {
		return nil, fmt.Errorf("remapped %s does not fit %s: %w", cube.Name, target.Name, err)
	}
	out.Name = cube.Name
	out.Units = cube.Units

	for _, ac := range slices.Clone(out.AuxCoords) {
		if ac.AxisOf() == AxisT {
			out.RemoveCoord(ac.Name)
		}
	}
	for _, ac := range vert.AuxCoords {
		if ac.AxisOf() != AxisT {
			continue
		}
		if err := out.AddAuxCoord(ac.Copy()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
