package gridinterp_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geal-ai/gridinterp"
)

var (
	testP   = []float64{1000, 850, 500}
	testLat = []float64{40, 41, 42, 43}
	testLon = []float64{-110, -109, -108, -107, -106}
)

// planeT is linear in every coordinate, so linear interpolation reproduces it.
func planeT(p, lat, lon float64) float64 { return 2*lon + 3*lat - 0.01*p }

// newTestCube returns a (pressure, latitude, longitude) temperature cube
// with a scalar time coordinate.
func newTestCube(t *testing.T) *gridinterp.Cube {
	t.Helper()
	data := make([]float64, 0, len(testP)*len(testLat)*len(testLon))
	for _, p := range testP {
		for _, lat := range testLat {
			for _, lon := range testLon {
				data = append(data, planeT(p, lat, lon))
			}
		}
	}
	c, err := gridinterp.NewCube("air_temperature", "K", data,
		[]int{len(testP), len(testLat), len(testLon)},
		gridinterp.DimCoord("air_pressure", "hPa", 0, slices.Clone(testP)...),
		gridinterp.DimCoord("latitude", "degrees_north", 1, slices.Clone(testLat)...),
		gridinterp.DimCoord("longitude", "degrees_east", 2, slices.Clone(testLon)...),
	)
	require.NoError(t, err)
	require.NoError(t, c.AddAuxCoord(gridinterp.ScalarCoord("time", "hours since 1970-01-01 00:00:00", 490000)))
	c.Attributes["source"] = "unit test"
	return c
}
