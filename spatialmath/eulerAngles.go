package spatialmath

import (
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D Euclidean space.
// The rotation is applied as roll about the fixed x axis, then pitch about the fixed y axis, then yaw about
// the fixed z axis.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	cy := math.Cos(ea.Yaw * 0.5)
	sy := math.Sin(ea.Yaw * 0.5)
	cp := math.Cos(ea.Pitch * 0.5)
	sp := math.Sin(ea.Pitch * 0.5)
	cr := math.Cos(ea.Roll * 0.5)
	sr := math.Sin(ea.Roll * 0.5)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(ea.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ea.Quaternion())
}

// Vector returns the angles as (roll, pitch, yaw) in the given unit.
func (ea *EulerAngles) Vector(unit AngleUnit) r3.Vector {
	return r3.Vector{X: unit.FromRadians(ea.Roll), Y: unit.FromRadians(ea.Pitch), Z: unit.FromRadians(ea.Yaw)}
}

// EulerSequence names the axes and order of a chain of three elemental rotations. Lower case letters rotate
// about the axes of the already rotated frame (intrinsic); upper case letters rotate about the fixed axes
// (extrinsic). "XYZ" is the roll, pitch, yaw convention of EulerAngles.
type EulerSequence string

// RollPitchYaw is the sequence used by EulerAngles.
const RollPitchYaw EulerSequence = "XYZ"

// ParseEulerSequence validates a sequence of exactly three characters from "xyzXYZ".
func ParseEulerSequence(s string) (EulerSequence, error) {
	if len(s) != 3 {
		return "", errors.Errorf("euler sequence %q must have exactly 3 characters", s)
	}
	for _, c := range s {
		if !strings.ContainsRune("xyzXYZ", c) {
			return "", errors.Errorf("euler sequence %q contains invalid axis %q", s, c)
		}
	}
	return EulerSequence(s), nil
}

// Orientation composes the rotations about each axis of the sequence by the corresponding angle in radians.
// The zero value sequence is treated as RollPitchYaw.
func (seq EulerSequence) Orientation(angles r3.Vector) Orientation {
	if seq == "" {
		seq = RollPitchYaw
	}
	values := []float64{angles.X, angles.Y, angles.Z}
	q := quat.Number{Real: 1}
	for i, c := range string(seq) {
		var axis r3.Vector
		switch c {
		case 'x', 'X':
			axis = r3.Vector{X: 1}
		case 'y', 'Y':
			axis = r3.Vector{Y: 1}
		default:
			axis = r3.Vector{Z: 1}
		}
		elemental := (&R4AA{Theta: values[i], RX: axis.X, RY: axis.Y, RZ: axis.Z}).ToQuat()
		if c >= 'a' {
			q = quat.Mul(q, elemental)
		} else {
			q = quat.Mul(elemental, q)
		}
	}
	out := quaternion(Normalize(q))
	return &out
}
