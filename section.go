package gridinterp

import (
	"gonum.org/v1/gonum/floats"
)

// SectionDim is the name of the dimension CrossSection adds.
const SectionDim = "section_index"

// CrossSection interpolates a vertical section along the straight line from
// (xs, ys) to (xf, yf), sampled at npoints evenly spaced points.
//
// cube must be (Z, Y, X) or (Y, X) with X and Y dimension coordinates. The
// result is (Z, npoints) or (npoints) respectively, with the sample x and y
// values as auxiliary coordinates on the section dimension.
func (ip *Interpolator) CrossSection(cube *Cube, xs, xf, ys, yf float64, npoints int) (*Cube, error) {
	if npoints < 2 {
		return nil, configErr("npoints", npoints, "need at least 2 points")
	}
	if r := cube.NDim(); r != 2 && r != 3 {
		return nil, shapeErr("cube "+cube.Name, cube.Shape, "(Z, Y, X) or (Y, X)")
	}
	xc, xd, err := cube.DimCoordByAxis(AxisX)
	if err != nil {
		return nil, err
	}
	yc, yd, err := cube.DimCoordByAxis(AxisY)
	if err != nil {
		return nil, err
	}

	xpoints := floats.Span(make([]float64, npoints), xs, xf)
	ypoints := floats.Span(make([]float64, npoints), ys, yf)

	// The interpolation gives every (y, x) pairing; the section is its diagonal.
	box, err := ip.interpolate(cube, false, At(xc.Name, xpoints...), At(yc.Name, ypoints...))
	if err != nil {
		return nil, err
	}

	cols := make([]*Cube, npoints)
	for i := range cols {
		cols[i], err = box.Slice(map[int]int{yd: i, xd: i})
		if err != nil {
			return nil, err
		}
	}
	section, err := Merge(cols, SectionDim)
	if err != nil {
		return nil, err
	}

	ip.logger.Debug("cross section", "cube", cube.Name, "points", npoints, "shape", section.Shape)
	return section, nil
}

// CrossSectionLatLon is CrossSection between two geographic points on a
// cube whose X and Y coordinates are metres on proj's grid, as produced by
// LambertConformal.Axes. The section runs straight in projected space and
// carries latitude and longitude auxiliary coordinates.
func (ip *Interpolator) CrossSectionLatLon(cube *Cube, proj LambertConformal, lat0, lon0, lat1, lon1 float64, npoints int) (*Cube, error) {
	x0, y0 := proj.Forward(lat0, lon0)
	x1, y1 := proj.Forward(lat1, lon1)
	section, err := ip.CrossSection(cube, x0, x1, y0, y1, npoints)
	if err != nil {
		return nil, err
	}

	xpoints := floats.Span(make([]float64, npoints), x0, x1)
	ypoints := floats.Span(make([]float64, npoints), y0, y1)
	lats := make([]float64, npoints)
	lons := make([]float64, npoints)
	for i := range lats {
		lats[i], lons[i] = proj.Inverse(xpoints[i], ypoints[i])
	}

	dim := section.NDim() - 1
	for _, co := range []*Coord{
		{Name: "latitude", Units: "degrees_north", Points: lats, Dims: []int{dim}},
		{Name: "longitude", Units: "degrees_east", Points: lons, Dims: []int{dim}},
	} {
		section.RemoveCoord(co.Name)
		if err := section.AddAuxCoord(co); err != nil {
			return nil, err
		}
	}
	return section, nil
}
