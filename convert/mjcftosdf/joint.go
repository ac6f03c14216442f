package mjcftosdf

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// AddJoint converts joint, one of the joints of body, into an SDFormat joint moving childLink relative to
// parentLink and adds it to model. A free joint of a body nested directly in the worldbody adds nothing and
// returns nil: the link of the body is already free in SDFormat.
func AddJoint(
	model *sdf.Model,
	body *mjcf.Body,
	joint *mjcf.Joint,
	parentLink, childLink string,
	opts Options,
) (*sdf.Joint, error) {
	j, err := newJoint(body, joint, parentLink, childLink, opts)
	if err != nil || j == nil {
		return nil, err
	}
	model.Joints = append(model.Joints, j)
	return j, nil
}

// AddJoints connects the link of body to parentLink with the joints of body. A body without joints is welded
// to its parent with a fixed joint. When a body has several joints they are chained through massless links
// that share the pose of the body, in document order. Nothing is added when any of the joints fails.
func AddJoints(model *sdf.Model, body *mjcf.Body, parentLink string, link *sdf.Link, opts Options) error {
	joints := body.Joints
	if body.FreeJoint != nil {
		joints = append([]*mjcf.Joint{{Name: body.FreeJoint.Name, Type: mjcf.JointFree}}, joints...)
	}
	if len(joints) == 0 {
		weld(model, parentLink, link.Name, opts)
		return nil
	}

	var (
		converted []*sdf.Joint
		links     []*sdf.Link
	)
	parent := parentLink
	for i, mj := range joints {
		child := link.Name
		if i < len(joints)-1 {
			dof := &sdf.Link{
				Name:     opts.frameName(fmt.Sprintf("%s_dof%d", link.Name, i), "link"),
				Inertial: masslessInertial(),
			}
			if link.Pose != nil {
				pose := *link.Pose
				dof.Pose = &pose
			}
			links = append(links, dof)
			child = dof.Name
		}
		j, err := newJoint(body, mj, parent, child, opts)
		if err != nil {
			return err
		}
		if j != nil {
			converted = append(converted, j)
		}
		parent = child
	}
	model.Links = append(model.Links, links...)
	model.Joints = append(model.Joints, converted...)
	return nil
}

// weld adds a fixed joint between two links.
func weld(model *sdf.Model, parentLink, childLink string, opts Options) *sdf.Joint {
	j := &sdf.Joint{
		Name:   opts.frameName(childLink+"_fixed", "joint"),
		Type:   referenceframe.FixedJoint.String(),
		Parent: parentLink,
		Child:  childLink,
	}
	model.Joints = append(model.Joints, j)
	return j
}

func masslessInertial() *sdf.Inertial {
	var mass float64
	return &sdf.Inertial{Mass: &mass, Inertia: &sdf.Inertia{}}
}

func newJoint(body *mjcf.Body, joint *mjcf.Joint, parentLink, childLink string, opts Options) (*sdf.Joint, error) {
	var jointType referenceframe.JointType
	switch t := joint.JointType(); t {
	case mjcf.JointHinge:
		jointType = referenceframe.ContinuousJoint
		if joint.IsLimited() {
			jointType = referenceframe.RevoluteJoint
		}
	case mjcf.JointSlide:
		jointType = referenceframe.PrismaticJoint
	case mjcf.JointBall:
		jointType = referenceframe.BallJoint
	case mjcf.JointFree:
		if parentLink != sdf.WorldFrame {
			return nil, errors.Wrapf(referenceframe.NewUnsupportedJointTypeError(t),
				"body %q is not a child of the worldbody", body.Name)
		}
		return nil, nil
	default:
		return nil, referenceframe.NewUnsupportedJointTypeError(t)
	}

	name := opts.frameName(joint.Name, "joint")
	pos, err := utils.ParseFloats(joint.Pos, 3)
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(name, errors.Wrap(err, "invalid pos"))
	}
	var pose spatialmath.Pose = spatialmath.NewZeroPose()
	if pos != nil {
		pose = spatialmath.NewPoseFromPoint(r3Vector(pos))
	}
	j := &sdf.Joint{
		Name:   name,
		Type:   jointType.String(),
		Pose:   sdf.NewPose(pose, childLink),
		Parent: parentLink,
		Child:  childLink,
	}
	if jointType == referenceframe.BallJoint {
		return j, nil
	}

	// the joint frame has the orientation of the body, so the axis carries over unchanged
	axis, err := opts.Compiler.ResolveAxis(joint)
	if err != nil {
		return nil, err
	}
	j.Axis = &sdf.JointAxis{XYZ: &sdf.AxisXYZ{Value: utils.FloatSliceToSpaceDelimitedString(axis.X, axis.Y, axis.Z)}}

	toSDF := func(v float64) float64 {
		if jointType.IsRotational() {
			return opts.AngleUnit.ToRadians(v)
		}
		return v
	}
	if jointType != referenceframe.ContinuousJoint && joint.IsLimited() {
		limits, err := utils.ParseFloats(joint.Range, 2)
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q: invalid range", name)
		}
		if limits != nil {
			lower, upper := toSDF(limits[0]), toSDF(limits[1])
			j.Axis.Limit = &sdf.JointLimit{Lower: &lower, Upper: &upper}
		}
	}
	if joint.Damping != nil || joint.FrictionLoss != nil || joint.Stiffness != nil || joint.SpringRef != nil {
		dynamics := &sdf.JointDynamics{
			Damping:         joint.Damping,
			Friction:        joint.FrictionLoss,
			SpringStiffness: joint.Stiffness,
		}
		if joint.SpringRef != nil {
			ref := toSDF(*joint.SpringRef)
			dynamics.SpringReference = &ref
		}
		j.Axis.Dynamics = dynamics
	}
	return j, nil
}
