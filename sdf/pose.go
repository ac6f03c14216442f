package sdf

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// Rotation formats of a <pose>.
const (
	RotationEulerRPY = "euler_rpy"
	RotationQuatXYZW = "quat_xyzw"
)

// Pose is a <pose> element: "x y z roll pitch yaw" or, with rotation_format="quat_xyzw", "x y z qx qy qz qw".
type Pose struct {
	RelativeTo     string `xml:"relative_to,attr,omitempty"`
	Degrees        bool   `xml:"degrees,attr,omitempty"`
	RotationFormat string `xml:"rotation_format,attr,omitempty"`
	Value          string `xml:",chardata"`
}

// NewPose writes p as a roll, pitch, yaw pose in radians.
func NewPose(p spatialmath.Pose, relativeTo string) *Pose {
	pt := p.Point()
	rpy := referenceframe.EulerIn(p.Orientation(), spatialmath.Radians)
	return &Pose{
		RelativeTo: relativeTo,
		Value:      utils.FloatSliceToSpaceDelimitedString(pt.X, pt.Y, pt.Z, rpy.X, rpy.Y, rpy.Z),
	}
}

// Parse returns the pose written in the element, relative to the frame named by RelativeTo. A nil or empty
// element is the identity.
func (p *Pose) Parse() (spatialmath.Pose, error) {
	if p == nil {
		return spatialmath.NewZeroPose(), nil
	}
	spec, err := p.Spec()
	if err != nil {
		return nil, err
	}
	return spec.Pose(), nil
}

// Spec returns the pose as written, before it is converted to a rotation.
func (p *Pose) Spec() (referenceframe.PoseSpec, error) {
	var spec referenceframe.PoseSpec
	if p == nil {
		return spec, nil
	}
	switch p.RotationFormat {
	case "", RotationEulerRPY:
		values, err := utils.ParseFloats(p.Value, 6)
		if err != nil {
			return spec, errors.Wrap(err, "invalid pose")
		}
		if values == nil {
			return spec, nil
		}
		spec.Position = r3.Vector{X: values[0], Y: values[1], Z: values[2]}
		spec.Euler = &r3.Vector{X: values[3], Y: values[4], Z: values[5]}
		spec.EulerSeq = spatialmath.RollPitchYaw
		if p.Degrees {
			spec.Unit = spatialmath.Degrees
		}
	case RotationQuatXYZW:
		values, err := utils.ParseFloats(p.Value, 7)
		if err != nil {
			return spec, errors.Wrap(err, "invalid pose")
		}
		if values == nil {
			return spec, nil
		}
		spec.Position = r3.Vector{X: values[0], Y: values[1], Z: values[2]}
		spec.Quaternion = &quat.Number{Real: values[6], Imag: values[3], Jmag: values[4], Kmag: values[5]}
	default:
		return spec, errors.Errorf("unknown pose rotation_format %q", p.RotationFormat)
	}
	return spec, nil
}

// SemanticPose is a pose element together with the frame that owns it and the frame it is relative to when
// it has no relative_to attribute.
type SemanticPose struct {
	Name              string
	Raw               *Pose
	DefaultRelativeTo string
}

// RelativeTo returns the frame the raw pose is written relative to.
func (sp SemanticPose) RelativeTo() string {
	if sp.Raw != nil && sp.Raw.RelativeTo != "" {
		return sp.Raw.RelativeTo
	}
	return sp.DefaultRelativeTo
}
