package gridinterp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geal-ai/gridinterp"
)

// logBetween interpolates in log-pressure between two levels of planeT.
func logBetween(p, p0, p1, lat, lon float64) float64 {
	d0, d1 := planeT(p0, lat, lon), planeT(p1, lat, lon)
	f := (math.Log(p) - math.Log(p0)) / (math.Log(p1) - math.Log(p0))
	return d0 + f*(d1-d0)
}

func TestToLevelPressure(t *testing.T) {
	c := newTestCube(t)
	got, err := gridinterp.Default().ToLevel(c, gridinterp.Levels("air_pressure", 1100, 925, 700))
	require.NoError(t, err)
	require.Equal(t, []int{3, 4, 5}, got.Shape)

	for j, lat := range testLat {
		for i, lon := range testLon {
			_, ok := got.At(0, j, i)
			assert.False(t, ok, "1100 hPa is below every column")

			v, ok := got.At(1, j, i)
			require.True(t, ok)
			assert.InDelta(t, logBetween(925, 1000, 850, lat, lon), v, 1e-9)
			assert.NotEqual(t, planeT(925, lat, lon), v, "pressure is interpolated in log space")

			v, ok = got.At(2, j, i)
			require.True(t, ok)
			assert.InDelta(t, logBetween(700, 850, 500, lat, lon), v, 1e-9)
		}
	}

	assert.Equal(t, "air_pressure", got.DimCoords[0].Name)
	assert.Equal(t, []float64{1100, 925, 700}, got.DimCoords[0].Points)
	assert.Equal(t, "hPa", got.DimCoords[0].Units)
	assert.Equal(t, testLat, got.DimCoords[1].Points)
	assert.Equal(t, testLon, got.DimCoords[2].Points)
	assert.Equal(t, "air_temperature", got.Name)
	assert.Equal(t, "unit test", got.Attributes["source"])

	tm, err := got.Coord("time")
	require.NoError(t, err)
	assert.True(t, tm.IsScalar())
	assert.Equal(t, []float64{490000}, tm.Points)
}

func TestToLevelExactLevels(t *testing.T) {
	c := newTestCube(t)
	got, err := gridinterp.Default().ToLevel(c, gridinterp.Levels("air_pressure", testP...))
	require.NoError(t, err)
	assert.Equal(t, c.Data, got.Data)
	assert.Zero(t, countMasked(got))
}

func TestToLevelNonMonotonicTargets(t *testing.T) {
	c := newTestCube(t)
	got, err := gridinterp.Default().ToLevel(c, gridinterp.Levels("air_pressure", 700, 925, 850))
	require.NoError(t, err)

	assert.Equal(t, gridinterp.LevelNumber, got.DimCoords[0].Name)
	assert.Equal(t, []float64{0, 1, 2}, got.DimCoords[0].Points)
	p, err := got.Coord("air_pressure")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p.Dims)
	assert.Equal(t, []float64{700, 925, 850}, p.Points)

	v, _ := got.At(2, 0, 0)
	assert.Equal(t, c.Data[1*20], v, "exact level returns its data")
}

func TestToLevelGridTargets(t *testing.T) {
	c := newTestCube(t)
	vals := make([]float64, 0, 20)
	for j := range testLat {
		for i := range testLon {
			vals = append(vals, 600+10*float64(j)+20*float64(i))
		}
	}
	got, err := gridinterp.Default().ToLevel(c, gridinterp.LevelTarget{
		Coord:  "air_pressure",
		Values: vals,
		Shape:  []int{1, 4, 5},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 5}, got.Shape)
	assert.Equal(t, gridinterp.LevelNumber, got.DimCoords[0].Name)

	p, err := got.Coord("air_pressure")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, p.Dims)

	for j, lat := range testLat {
		for i, lon := range testLon {
			v, ok := got.At(0, j, i)
			require.True(t, ok)
			assert.InDelta(t, logBetween(vals[j*5+i], 850, 500, lat, lon), v, 1e-9)
		}
	}
}

func TestToLevelAuxAltitude(t *testing.T) {
	// Model levels whose heights rise by 10 m per row.
	const nz, ny, nx = 3, 4, 2
	var data, alt []float64
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				z := 1000*float64(k+1) + 10*float64(j)
				alt = append(alt, z)
				data = append(data, 0.001*z+float64(i))
			}
		}
	}
	c, err := gridinterp.NewCube("air_temperature", "K", data, []int{nz, ny, nx},
		gridinterp.DimCoord("model_level_number", "1", 0, 1, 2, 3))
	require.NoError(t, err)
	require.NoError(t, c.AddAuxCoord(&gridinterp.Coord{Name: "altitude", Units: "m", Points: alt, Dims: []int{0, 1, 2}}))

	got, err := gridinterp.Default().ToLevel(c, gridinterp.Levels("altitude", 1500, 2500))
	require.NoError(t, err)
	require.Equal(t, []int{2, ny, nx}, got.Shape)
	assert.Equal(t, "altitude", got.DimCoords[0].Name)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v, ok := got.At(0, j, i)
			require.True(t, ok)
			assert.InDelta(t, 1.5+float64(i), v, 1e-9)
			v, ok = got.At(1, j, i)
			require.True(t, ok)
			assert.InDelta(t, 2.5+float64(i), v, 1e-9)
		}
	}
}

func TestToLevelErrors(t *testing.T) {
	c := newTestCube(t)
	ip := gridinterp.Default()

	_, err := ip.ToLevel(c)
	assert.ErrorIs(t, err, gridinterp.ErrConfiguration)

	_, err = ip.ToLevel(c, gridinterp.Levels("air_pressure", 700), gridinterp.Levels("altitude", 100))
	var ce *gridinterp.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "targets", ce.Param)

	level, err := c.Slice(map[int]int{0: 0})
	require.NoError(t, err)
	_, err = ip.ToLevel(level, gridinterp.Levels("air_pressure", 700))
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)

	_, err = ip.ToLevel(c, gridinterp.Levels("altitude", 100))
	assert.ErrorIs(t, err, gridinterp.ErrCoordNotFound)

	_, err = ip.ToLevel(c, gridinterp.Levels("latitude", 41))
	assert.ErrorIs(t, err, gridinterp.ErrShapeMismatch)

	_, err = ip.ToLevel(c, gridinterp.LevelTarget{Coord: "air_pressure", Values: make([]float64, 6), Shape: []int{2, 3}})
	var se *gridinterp.ShapeError
	assert.ErrorAs(t, err, &se)
}

func TestToLevelWorkersAgree(t *testing.T) {
	c := newTestCube(t)
	cfg := gridinterp.DefaultConfig()
	cfg.Workers = 3
	parallel, err := gridinterp.New(cfg)
	require.NoError(t, err)

	target := gridinterp.Levels("air_pressure", 975, 800, 600, 400)
	want, err := gridinterp.Default().ToLevel(c, target)
	require.NoError(t, err)
	got, err := parallel.ToLevel(c, target)
	require.NoError(t, err)
	assert.Equal(t, want.Mask, got.Mask)
	assert.Equal(t, want.Filled(-1), got.Filled(-1))
}

func countMasked(c *gridinterp.Cube) int {
	n := 0
	for _, m := range c.Mask {
		if m {
			n++
		}
	}
	return n
}

func TestToLevelMaskedInput(t *testing.T) {
	c := newTestCube(t)
	c.Mask = make([]bool, len(c.Data))
	c.Mask[1*20] = true // 850 hPa at (0, 0)

	got, err := gridinterp.Default().ToLevel(c, gridinterp.Levels("air_pressure", 1000, 925, 850, 700))
	require.NoError(t, err)

	v, ok := got.At(0, 0, 0)
	require.True(t, ok, "exact hit on the finite level below")
	assert.Equal(t, planeT(1000, 40, -110), v)
	for m, p := range []float64{925, 850, 700} {
		v, ok := got.At(m+1, 0, 0)
		assert.False(t, ok, "%g hPa brackets the masked level", p)
		assert.True(t, math.IsNaN(v))
	}

	v, ok = got.At(1, 0, 1)
	require.True(t, ok)
	assert.InDelta(t, logBetween(925, 1000, 850, 40, -109), v, 1e-9)
	assert.Equal(t, 3, countMasked(got))
}
