package gridinterp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geal-ai/gridinterp"
)

func TestNewCubeValidation(t *testing.T) {
	t.Run("data length", func(t *testing.T) {
		_, err := gridinterp.NewCube("x", "1", make([]float64, 5), []int{2, 3})
		assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
	})
	t.Run("dim coord length", func(t *testing.T) {
		_, err := gridinterp.NewCube("x", "1", make([]float64, 6), []int{2, 3},
			gridinterp.DimCoord("a", "1", 0, 1, 2, 3))
		assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
	})
	t.Run("too many dim coords", func(t *testing.T) {
		_, err := gridinterp.NewCube("x", "1", make([]float64, 2), []int{2},
			gridinterp.DimCoord("a", "1", 0, 1, 2), gridinterp.DimCoord("b", "1", 1, 1))
		assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
	})
	t.Run("nil slot", func(t *testing.T) {
		c, err := gridinterp.NewCube("x", "1", make([]float64, 6), []int{2, 3},
			nil, gridinterp.DimCoord("b", "1", 0, 1, 2, 3))
		require.NoError(t, err)
		assert.Nil(t, c.DimCoords[0])
		assert.Equal(t, []int{1}, c.DimCoords[1].Dims)
	})
}

func TestNewCubeCopiesCoords(t *testing.T) {
	shared := gridinterp.DimCoord("height", "m", 5, 10, 20)
	a, err := gridinterp.NewCube("a", "1", make([]float64, 2), []int{2}, shared)
	require.NoError(t, err)
	b, err := gridinterp.NewCube("b", "1", make([]float64, 6), []int{3, 2}, nil, shared)
	require.NoError(t, err)

	assert.Equal(t, []int{5}, shared.Dims)
	assert.Equal(t, []int{0}, a.DimCoords[0].Dims)
	assert.Equal(t, []int{1}, b.DimCoords[1].Dims)

	a.DimCoords[0].Points[0] = -1
	assert.Equal(t, 10.0, b.DimCoords[1].Points[0])
	assert.Equal(t, 10.0, shared.Points[0])
}

func TestCubeCoordLookup(t *testing.T) {
	c := newTestCube(t)

	co, err := c.Coord("latitude")
	require.NoError(t, err)
	assert.Equal(t, 1, c.DimOf(co))

	for axis, name := range map[gridinterp.Axis]string{
		gridinterp.AxisX: "longitude",
		gridinterp.AxisY: "latitude",
		gridinterp.AxisZ: "air_pressure",
		gridinterp.AxisT: "time",
	} {
		co, err := c.CoordByAxis(axis)
		require.NoError(t, err, "axis %s", axis)
		assert.Equal(t, name, co.Name)
	}

	_, err = c.Coord("altitude")
	assert.ErrorIs(t, err, gridinterp.ErrCoordNotFound)
	_, _, err = c.DimCoordByAxis(gridinterp.AxisT)
	assert.ErrorIs(t, err, gridinterp.ErrCoordNotFound)
}

func TestCubeAddRemoveCoord(t *testing.T) {
	c := newTestCube(t)

	err := c.AddAuxCoord(gridinterp.ScalarCoord("time", "hours", 1))
	assert.ErrorIs(t, err, gridinterp.ErrConfiguration)

	err = c.AddAuxCoord(&gridinterp.Coord{Name: "orography", Points: []float64{1, 2}, Dims: []int{1, 2}})
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)

	err = c.AddAuxCoord(&gridinterp.Coord{Name: "backwards", Points: make([]float64, 20), Dims: []int{2, 1}})
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)

	assert.True(t, c.RemoveCoord("time"))
	assert.False(t, c.RemoveCoord("time"))
	assert.True(t, c.RemoveCoord("longitude"))
	assert.Nil(t, c.DimCoords[2])
}

func TestCubeSlice(t *testing.T) {
	c := newTestCube(t)
	oro := make([]float64, 0, 20)
	for _, lat := range testLat {
		for _, lon := range testLon {
			oro = append(oro, 100*lat+lon)
		}
	}
	require.NoError(t, c.AddAuxCoord(&gridinterp.Coord{Name: "surface_altitude", Units: "m", Points: oro, Dims: []int{1, 2}}))

	s, err := c.Slice(map[int]int{0: 1, 2: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, s.Shape)
	for j, lat := range testLat {
		v, ok := s.At(j)
		assert.True(t, ok)
		assert.InDelta(t, planeT(850, lat, -107), v, 1e-12)
	}

	p, err := s.Coord("air_pressure")
	require.NoError(t, err)
	assert.True(t, p.IsScalar())
	assert.Equal(t, []float64{850}, p.Points)

	lat, err := s.Coord("latitude")
	require.NoError(t, err)
	assert.Equal(t, 0, s.DimOf(lat))

	alt, err := s.Coord("surface_altitude")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, alt.Dims)
	assert.Equal(t, []float64{3893, 3993, 4093, 4193}, alt.Points)

	_, err = c.Slice(map[int]int{1: 4})
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
}

func TestCubeCopyIsDeep(t *testing.T) {
	c := newTestCube(t)
	cp := c.Copy()
	cp.Data[0] = -1
	cp.DimCoords[0].Points[0] = -1
	cp.Attributes["source"] = "changed"

	assert.NotEqual(t, -1.0, c.Data[0])
	assert.Equal(t, 1000.0, c.DimCoords[0].Points[0])
	assert.Equal(t, "unit test", c.Attributes["source"])
}

func TestCubeMaskAndFilled(t *testing.T) {
	c := newTestCube(t)
	mask := make([]bool, len(c.Data))
	mask[0] = true
	c.Data[1] = math.NaN()
	m, err := c.WithData(c.Data, mask)
	require.NoError(t, err)

	_, ok := m.At(0, 0, 0)
	assert.False(t, ok)
	_, ok = m.At(0, 0, 1)
	assert.False(t, ok)
	v, ok := m.At(0, 0, 2)
	assert.True(t, ok)
	assert.InDelta(t, planeT(1000, 40, -108), v, 1e-12)

	filled := m.Filled(-999)
	assert.Equal(t, -999.0, filled[0])
	assert.Equal(t, -999.0, filled[1])

	_, err = c.WithData(c.Data, []bool{true})
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
}

func TestMerge(t *testing.T) {
	var cubes []*gridinterp.Cube
	for k, x := range []float64{10, 20, 30} {
		c, err := gridinterp.NewCube("t", "K", []float64{float64(k), float64(k) + 0.5}, []int{2},
			gridinterp.DimCoord("height", "m", 0, 100, 200))
		require.NoError(t, err)
		require.NoError(t, c.AddAuxCoord(gridinterp.ScalarCoord("x", "m", x)))
		require.NoError(t, c.AddAuxCoord(gridinterp.ScalarCoord("time", "hours since 2000-01-01", 6)))
		cubes = append(cubes, c)
	}

	m, err := gridinterp.Merge(cubes, "index")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, m.Shape)
	assert.Equal(t, []float64{0, 1, 2, 0.5, 1.5, 2.5}, m.Data)
	assert.Nil(t, m.Mask)

	idx, _, err := m.DimCoordByAxis(gridinterp.AxisNone)
	require.NoError(t, err)
	assert.Equal(t, "index", idx.Name)
	assert.Equal(t, []float64{0, 1, 2}, idx.Points)

	x, err := m.Coord("x")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, x.Dims)
	assert.Equal(t, []float64{10, 20, 30}, x.Points)

	tm, err := m.Coord("time")
	require.NoError(t, err)
	assert.True(t, tm.IsScalar())

	t.Run("differing profiles gain the new dimension", func(t *testing.T) {
		var cols []*gridinterp.Cube
		for k := 0; k < 3; k++ {
			c, err := gridinterp.NewCube("t", "K", []float64{1, 2}, []int{2})
			require.NoError(t, err)
			require.NoError(t, c.AddAuxCoord(&gridinterp.Coord{Name: "altitude", Units: "m",
				Points: []float64{float64(k), 100 + float64(k)}, Dims: []int{0}}))
			require.NoError(t, c.AddAuxCoord(&gridinterp.Coord{Name: "model_level_number", Units: "1",
				Points: []float64{1, 2}, Dims: []int{0}}))
			cols = append(cols, c)
		}
		m, err := gridinterp.Merge(cols, "index")
		require.NoError(t, err)

		alt, err := m.Coord("altitude")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, alt.Dims)
		assert.Equal(t, []float64{0, 1, 2, 100, 101, 102}, alt.Points)

		lev, err := m.Coord("model_level_number")
		require.NoError(t, err)
		assert.Equal(t, []int{0}, lev.Dims)
	})
	t.Run("shape mismatch", func(t *testing.T) {
		odd, err := gridinterp.NewCube("t", "K", []float64{1}, []int{1})
		require.NoError(t, err)
		_, err = gridinterp.Merge([]*gridinterp.Cube{cubes[0], odd}, "index")
		assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := gridinterp.Merge(nil, "index")
		assert.ErrorIs(t, err, gridinterp.ErrConfiguration)
	})
}

func TestGuessAxis(t *testing.T) {
	tests := []struct {
		name, units string
		want        gridinterp.Axis
	}{
		{"longitude", "degrees_east", gridinterp.AxisX},
		{"projection_y_coordinate", "m", gridinterp.AxisY},
		{"air_pressure", "hPa", gridinterp.AxisZ},
		{"model_level_number", "1", gridinterp.AxisZ},
		{"level", "Pa", gridinterp.AxisZ},
		{"valid", "hours since 1970-01-01", gridinterp.AxisT},
		{"forecast_period", "hours", gridinterp.AxisT},
		{"section_index", "1", gridinterp.AxisNone},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, gridinterp.GuessAxis(tc.name, tc.units), tc.name)
	}
}
