// Package referenceframe resolves poses written relative to other frames, such as a joint written relative
// to its child link or a body nested in another body, into poses relative to a common frame.
package referenceframe

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	spatial "go.viam.com/sdfmjcf/spatialmath"
)

// Resolve expresses local, a pose written relative to parent, in the frame parent is itself written in.
// The translation of local is rotated by the parent orientation and offset by the parent translation, and the
// orientations are multiplied. A nil parent means local is already resolved.
func Resolve(local, parent spatial.Pose) spatial.Pose {
	if local == nil {
		local = spatial.NewZeroPose()
	}
	if parent == nil {
		return local
	}
	return spatial.Compose(parent, local)
}

// ResolveChain resolves a list of poses, each written relative to the one before it. The first pose is written
// relative to the frame the result is expressed in.
func ResolveChain(poses ...spatial.Pose) spatial.Pose {
	resolved := spatial.NewZeroPose()
	for _, p := range poses {
		resolved = Resolve(p, resolved)
	}
	return resolved
}

// PoseSpec is a pose as it is written in a document: a position plus at most one of several orientation
// parameterizations. When more than one is set the first of Quaternion, AxisAngle and Euler wins.
type PoseSpec struct {
	Position   r3.Vector
	Euler      *r3.Vector
	EulerSeq   spatial.EulerSequence
	Quaternion *quat.Number
	AxisAngle  *spatial.R4AA
	// Unit is the unit of Euler and of the AxisAngle angle.
	Unit spatial.AngleUnit
}

// Orientation returns the orientation described by the spec. Non-unit quaternions and axes are normalized.
func (ps PoseSpec) Orientation() spatial.Orientation {
	switch {
	case ps.Quaternion != nil:
		q := ps.Quaternion
		return spatial.NewQuaternion(q.Real, q.Imag, q.Jmag, q.Kmag)
	case ps.AxisAngle != nil:
		return &spatial.R4AA{
			Theta: ps.Unit.ToRadians(ps.AxisAngle.Theta),
			RX:    ps.AxisAngle.RX,
			RY:    ps.AxisAngle.RY,
			RZ:    ps.AxisAngle.RZ,
		}
	case ps.Euler != nil:
		angles := r3.Vector{
			X: ps.Unit.ToRadians(ps.Euler.X),
			Y: ps.Unit.ToRadians(ps.Euler.Y),
			Z: ps.Unit.ToRadians(ps.Euler.Z),
		}
		return ps.EulerSeq.Orientation(angles)
	default:
		return spatial.NewZeroOrientation()
	}
}

// Pose returns the pose described by the spec.
func (ps PoseSpec) Pose() spatial.Pose {
	return spatial.NewPose(ps.Position, ps.Orientation())
}

// EulerIn returns the roll, pitch and yaw of o in the given unit.
func EulerIn(o spatial.Orientation, unit spatial.AngleUnit) r3.Vector {
	if o == nil {
		return r3.Vector{}
	}
	return o.EulerAngles().Vector(unit)
}

// QuaternionOf returns the unit quaternion of o with a non-negative real part.
func QuaternionOf(o spatial.Orientation) quat.Number {
	if o == nil {
		return quat.Number{Real: 1}
	}
	q := spatial.Normalize(o.Quaternion())
	if q.Real < 0 {
		q = spatial.Flip(q)
	}
	return q
}
