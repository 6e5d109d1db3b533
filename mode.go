package gridinterp

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how the interpolation fraction is measured along a column.
type Mode int

const (
	// Linear weights by the difference of coordinate values.
	Linear Mode = iota
	// Logarithmic weights by the difference of the natural log of the
	// coordinate. Used for pressure, which varies roughly exponentially with height.
	Logarithmic
)

func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Logarithmic:
		return "log"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "linear" or "log"/"logarithmic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	}
	return Linear, configErr("mode", s, "want linear or log")
}

// ModeFor returns the mode a caller should use for a vertical coordinate
// name: Logarithmic for anything pressure-like, Linear otherwise.
func ModeFor(coordName string) Mode {
	if strings.Contains(strings.ToLower(coordName), "pressure") {
		return Logarithmic
	}
	return Linear
}

// transform maps a coordinate value into the space the fraction is linear in.
// ok is false when the value has no image (log of a non-positive number).
func (m Mode) transform(v float64) (float64, bool) {
	if m == Logarithmic {
		if !(v > 0) {
			return 0, false
		}
		return math.Log(v), true
	}
	return v, true
}

// LinearOrder is the only interpolation order the level kernel implements.
// Order 0 is accepted as a synonym.
const LinearOrder = 1

func validateOrder(order int) error {
	if order != 0 && order != LinearOrder {
		return configErr("order", order, "only linear interpolation (order 0 or 1) is supported")
	}
	return nil
}

func validateMode(m Mode) error {
	if m != Linear && m != Logarithmic {
		return configErr("mode", m, "want linear or log")
	}
	return nil
}
