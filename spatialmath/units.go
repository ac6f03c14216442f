package spatialmath

import (
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/utils"
)

// AngleUnit is the unit an angle-valued field is written in.
type AngleUnit int

const (
	// Radians is the default unit of SDFormat documents.
	Radians AngleUnit = iota
	// Degrees is the default unit of MJCF documents.
	Degrees
)

// ParseAngleUnit accepts the MJCF compiler spellings ("radian", "degree") as well as their plurals.
// An empty string parses as Degrees.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degree", "degrees", "deg":
		return Degrees, nil
	case "radian", "radians", "rad":
		return Radians, nil
	default:
		return Degrees, errors.Errorf("unknown angle unit %q", s)
	}
}

// String returns the MJCF compiler spelling of the unit.
func (u AngleUnit) String() string {
	if u == Radians {
		return "radian"
	}
	return "degree"
}

// ToRadians converts an angle written in this unit to radians.
func (u AngleUnit) ToRadians(v float64) float64 {
	if u == Degrees {
		return utils.DegToRad(v)
	}
	return v
}

// FromRadians converts an angle in radians to this unit.
func (u AngleUnit) FromRadians(v float64) float64 {
	if u == Degrees {
		return utils.RadToDeg(v)
	}
	return v
}
