package gridinterp

import (
	"fmt"
	"maps"
	"slices"
)

// Merge stacks cubes of identical shape, name and units along a new trailing
// dimension named dimName, whose dimension coordinate is the index 0..n-1.
//
// Auxiliary coordinates that agree across the cubes are kept as they are.
// Ones that differ gain the new dimension: a scalar becomes one-dimensional,
// and an (L) coordinate becomes (L, n). Dimension coordinates must be
// identical across the cubes.
func Merge(cubes []*Cube, dimName string) (*Cube, error) {
	if len(cubes) == 0 {
		return nil, configErr("cubes", 0, "nothing to merge")
	}
	first := cubes[0]
	for _, c := range cubes[1:] {
		if !slices.Equal(c.Shape, first.Shape) {
			return nil, shapeErr("cube "+c.Name, c.Shape, "%v like the first cube", first.Shape)
		}
		if c.Name != first.Name || c.Units != first.Units {
			return nil, configErr("cube", c.Name, "cannot merge with %s [%s]", first.Name, first.Units)
		}
	}

	n := len(cubes)
	r := len(first.Shape)
	inner := size(first.Shape)
	out := &Cube{
		Name:       first.Name,
		Units:      first.Units,
		Attributes: maps.Clone(first.Attributes),
		Shape:      append(slices.Clone(first.Shape), n),
		Data:       make([]float64, inner*n),
		DimCoords:  make([]*Coord, r+1),
	}
	if out.Attributes == nil {
		out.Attributes = map[string]string{}
	}

	masked := slices.ContainsFunc(cubes, func(c *Cube) bool { return c.Mask != nil })
	if masked {
		out.Mask = make([]bool, inner*n)
	}
	for k, c := range cubes {
		for p, v := range c.Data {
			out.Data[p*n+k] = v
			if c.Mask != nil {
				out.Mask[p*n+k] = c.Mask[p]
			}
		}
	}

	for d, dc := range first.DimCoords {
		if dc == nil {
			continue
		}
		for _, c := range cubes[1:] {
			if o := c.DimCoords[d]; o == nil || !o.equal(dc) {
				return nil, configErr("coord", dc.Name, "differs between merged cubes")
			}
		}
		out.DimCoords[d] = dc.Copy()
	}
	index := make([]float64, n)
	for k := range index {
		index[k] = float64(k)
	}
	out.DimCoords[r] = DimCoord(dimName, "1", r, index...)

	for _, ac := range first.AuxCoords {
		merged, err := mergeAux(cubes, ac, r)
		if err != nil {
			return nil, err
		}
		out.AuxCoords = append(out.AuxCoords, merged)
	}
	if err := out.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func mergeAux(cubes []*Cube, ac *Coord, newDim int) (*Coord, error) {
	others := make([]*Coord, len(cubes))
	for k, c := range cubes {
		o, err := c.Coord(ac.Name)
		if err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
		others[k] = o
	}

	if !ac.IsScalar() {
		return stackAux(others, ac, newDim)
	}

	pts := make([]float64, len(others))
	same := true
	for k, o := range others {
		if !o.IsScalar() || len(o.Points) != 1 {
			return nil, configErr("coord", ac.Name, "scalar in one cube but not another")
		}
		pts[k] = o.Points[0]
		if pts[k] != pts[0] {
			same = false
		}
	}
	if same {
		return ac.Copy(), nil
	}
	return &Coord{Name: ac.Name, Units: ac.Units, Axis: ac.Axis, Points: pts, Dims: []int{newDim}}, nil
}

// stackAux merges a coordinate that spans dimensions. Differing copies are
// stacked along newDim, which must follow every dimension they span.
func stackAux(others []*Coord, ac *Coord, newDim int) (*Coord, error) {
	same := true
	for _, o := range others {
		if !slices.Equal(o.Dims, ac.Dims) || len(o.Points) != len(ac.Points) {
			return nil, configErr("coord", ac.Name, "spans different dimensions in merged cubes")
		}
		if !o.equal(ac) {
			same = false
		}
	}
	if same {
		return ac.Copy(), nil
	}

	n := len(others)
	pts := make([]float64, len(ac.Points)*n)
	for k, o := range others {
		for p, v := range o.Points {
			pts[p*n+k] = v
		}
	}
	dims := append(slices.Clone(ac.Dims), newDim)
	return &Coord{Name: ac.Name, Units: ac.Units, Axis: ac.Axis, Points: pts, Dims: dims}, nil
}
