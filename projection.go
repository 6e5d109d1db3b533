package gridinterp

import "math"

const earthRadiusM = 6371229.0 // shape-of-earth=6 (sphere), HRRR standard

// LambertConformal is a Lambert conformal conic projection anchored at a
// grid origin. Forward and Inverse work in metres east and north of the
// origin (La1, Lo1), so a regular grid with spacing dx, dy has point (i, j)
// at (i*dx, j*dy).
type LambertConformal struct {
	La1, Lo1       float64 // grid origin, degrees
	LoV            float64 // central meridian, degrees
	Latin1, Latin2 float64 // standard parallels, degrees
}

// HRRR grid constants (GDT 3.30 of any HRRR CONUS message).
const (
	HRRRNi = 1799
	HRRRNj = 1059
	HRRRDx = 3000.0
	HRRRDy = 3000.0
)

// HRRR returns the projection of the NOAA HRRR CONUS grid.
// Longitudes use the GRIB2 0-360 convention; NormLon is applied internally.
func HRRR() LambertConformal {
	return LambertConformal{
		La1:    21.138123,
		Lo1:    237.280472,
		LoV:    262.5,
		Latin1: 38.5,
		Latin2: 38.5,
	}
}

func (p LambertConformal) n() float64 {
	if p.Latin1 == p.Latin2 {
		return math.Sin(toRad(p.Latin1))
	}
	φ1 := toRad(p.Latin1)
	φ2 := toRad(p.Latin2)
	return math.Log(math.Cos(φ1)/math.Cos(φ2)) /
		math.Log(math.Tan(math.Pi/4+φ2/2)/math.Tan(math.Pi/4+φ1/2))
}

func (p LambertConformal) bigF() float64 {
	n := p.n()
	φ1 := toRad(p.Latin1)
	return math.Cos(φ1) * math.Pow(math.Tan(math.Pi/4+φ1/2), n) / n
}

// rho returns the cone distance (metres) from the pole for a latitude.
func (p LambertConformal) rho(latDeg float64) float64 {
	φ := toRad(latDeg)
	return earthRadiusM * p.bigF() / math.Pow(math.Tan(math.Pi/4+φ/2), p.n())
}

// cone returns unanchored Cartesian coordinates, x east-positive and
// y = -ρ*cos(θ) so y is north-positive.
func (p LambertConformal) cone(lat, lon float64) (x, y float64) {
	ρ := p.rho(lat)
	θ := p.n() * toRad(NormLon(lon)-NormLon(p.LoV))
	return ρ * math.Sin(θ), -ρ * math.Cos(θ)
}

// Forward maps (lat°N, lon°E) to metres from the grid origin.
func (p LambertConformal) Forward(lat, lon float64) (x, y float64) {
	x0, y0 := p.cone(p.La1, p.Lo1)
	x, y = p.cone(lat, lon)
	return x - x0, y - y0
}

// Inverse maps metres from the grid origin back to (lat°N, lon°E signed).
func (p LambertConformal) Inverse(x, y float64) (lat, lon float64) {
	n := p.n()
	x0, y0 := p.cone(p.La1, p.Lo1)
	x += x0
	y += y0

	ρ := math.Sqrt(x*x + y*y)
	if ρ == 0 {
		return 90, NormLon(p.LoV)
	}
	// x = ρ*sin(θ), -y = ρ*cos(θ) → θ = atan2(x, -y)
	θ := math.Atan2(x, -y)
	φ := 2*math.Atan(math.Pow(earthRadiusM*p.bigF()/ρ, 1/n)) - math.Pi/2
	return toDeg(φ), NormLon(p.LoV) + toDeg(θ)/n
}

// Axes returns projection_x_coordinate and projection_y_coordinate
// dimension coordinates, in metres, for an ni by nj grid on p. They are
// meant for dimensions 2 and 1 of a (Z, Y, X) cube; NewCube reassigns Dims.
func (p LambertConformal) Axes(ni, nj int, dx, dy float64) (x, y *Coord) {
	xs := make([]float64, ni)
	for i := range xs {
		xs[i] = float64(i) * dx
	}
	ys := make([]float64, nj)
	for j := range ys {
		ys[j] = float64(j) * dy
	}
	return DimCoord("projection_x_coordinate", "m", 2, xs...),
		DimCoord("projection_y_coordinate", "m", 1, ys...)
}

func toRad(d float64) float64 { return d * math.Pi / 180 }
func toDeg(r float64) float64 { return r * 180 / math.Pi }

// NormLon converts a 0-360 longitude to -180..+180.
func NormLon(lon float64) float64 {
	if lon > 180 {
		return lon - 360
	}
	return lon
}
