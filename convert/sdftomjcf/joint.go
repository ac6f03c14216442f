package sdftomjcf

import (
	"math"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// FreeJointName is the name of the free joint given to the root body of a model that is not static.
const FreeJointName = "freejoint"

// unlimited is the magnitude SDFormat uses for the default joint limits, which do not limit anything.
const unlimited = 1e16

// AddJoint converts joint, the joint whose child link is body, and adds it to body. A nil joint adds a free
// joint, which is how the root link of a model that is not static moves. Fixed joints add nothing and return a
// nil element.
func AddJoint(body *mjcf.Body, joint *sdf.Joint, opts Options) (mjcf.JointElement, error) {
	if joint == nil {
		fj := &mjcf.FreeJoint{Name: opts.Session.UniqueName(FreeJointName, "joint")}
		body.FreeJoint = fj
		return fj, nil
	}

	jointType, err := joint.JointType()
	if err != nil {
		return nil, err
	}
	var mjType string
	//exhaustive:enforce
	switch jointType {
	case referenceframe.FixedJoint:
		return nil, nil
	case referenceframe.RevoluteJoint, referenceframe.ContinuousJoint:
		mjType = mjcf.JointHinge
	case referenceframe.PrismaticJoint:
		mjType = mjcf.JointSlide
	case referenceframe.BallJoint:
		mjType = mjcf.JointBall
	case referenceframe.UniversalJoint, referenceframe.FreeJoint, referenceframe.GearboxJoint,
		referenceframe.ScrewJoint, referenceframe.Revolute2Joint:
		return nil, referenceframe.NewUnsupportedJointTypeError(jointType.String())
	}

	pose, err := opts.resolvePose(joint.SemanticPose(), joint.Child)
	if err != nil {
		return nil, err
	}
	mj := &mjcf.Joint{
		Name: opts.Session.UniqueName(joint.Name, "joint"),
		Type: mjType,
		Pos:  mjcf.FormatVec3(pose.Point()),
	}

	if mjType != mjcf.JointBall {
		axis, err := opts.resolveAxis(joint)
		if err != nil {
			return nil, err
		}
		mj.Axis = mjcf.FormatVec3(spatialmath.RotateVector(pose.Orientation(), axis))
		addLimits(mj, jointType, joint.Axis, opts.AngleUnit)
		addDynamics(mj, joint.Axis, opts.AngleUnit)
	}

	body.Joints = append(body.Joints, mj)
	return mj, nil
}

// addLimits writes the range of revolute and prismatic joints. Continuous joints never have one.
func addLimits(mj *mjcf.Joint, jointType referenceframe.JointType, axis *sdf.JointAxis, unit spatialmath.AngleUnit) {
	mj.Limited = "false"
	if jointType == referenceframe.ContinuousJoint || axis == nil {
		return
	}
	lower, upper, ok := limitRange(axis.Limit)
	if !ok {
		return
	}
	if jointType.IsRotational() {
		lower, upper = unit.FromRadians(lower), unit.FromRadians(upper)
	}
	mj.Limited = "true"
	mj.Range = utils.FloatSliceToSpaceDelimitedString(lower, upper)
}

// limitRange returns the bounds of a limit. MJCF has no one sided ranges, so a limit is only kept when both of
// its bounds are set to something other than the SDFormat default.
func limitRange(l *sdf.JointLimit) (float64, float64, bool) {
	if l == nil || l.Lower == nil || l.Upper == nil {
		return 0, 0, false
	}
	if math.Abs(*l.Lower) >= unlimited || math.Abs(*l.Upper) >= unlimited {
		return 0, 0, false
	}
	return *l.Lower, *l.Upper, true
}

func addDynamics(mj *mjcf.Joint, axis *sdf.JointAxis, unit spatialmath.AngleUnit) {
	if axis == nil || axis.Dynamics == nil {
		return
	}
	d := axis.Dynamics
	mj.Damping = d.Damping
	mj.FrictionLoss = d.Friction
	mj.Stiffness = d.SpringStiffness
	if d.SpringReference != nil {
		ref := *d.SpringReference
		if mj.Type == mjcf.JointHinge {
			ref = unit.FromRadians(ref)
		}
		mj.SpringRef = &ref
	}
}
