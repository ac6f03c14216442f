package sdftomjcf

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/logging"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// rawResolver returns poses and axes exactly as they are written, whatever frame they are relative to.
type rawResolver struct{}

func (rawResolver) ResolvePose(sp sdf.SemanticPose, _ string) (spatialmath.Pose, error) {
	return sp.Raw.Parse()
}

func (rawResolver) ResolveAxis(_ *sdf.Joint, axis *sdf.JointAxis) (r3.Vector, error) {
	if axis == nil || axis.XYZ == nil {
		return r3.Vector{Z: 1}, nil
	}
	v, err := utils.ParseFloats(axis.XYZ.Value, 3)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}.Normalize(), nil
}

var testPose = spatialmath.NewPose(
	r3.Vector{X: 1, Y: 2, Z: 3},
	&spatialmath.EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4},
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		PoseResolver: rawResolver{},
		AxisResolver: rawResolver{},
		AngleUnit:    spatialmath.Degrees,
		Session:      convert.NewSession(logging.NewTestLogger(t)),
		Asset:        &mjcf.Asset{},
	}
}

// shouldApproximate checks a space delimited attribute against the expected values.
func shouldApproximate(t *testing.T, attr string, expected ...float64) {
	t.Helper()
	actual, err := utils.ParseFloats(attr, len(expected))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cmp.Diff(expected, actual, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)
}

type jointOpts struct {
	xyz      string
	limits   []float64
	dynamics *sdf.JointDynamics
}

func newJoint(jointType referenceframe.JointType, o jointOpts) *sdf.Joint {
	joint := &sdf.Joint{
		Name:  "joint1",
		Type:  string(jointType),
		Pose:  sdf.NewPose(testPose, ""),
		Child: "child",
		Axis:  &sdf.JointAxis{Dynamics: o.dynamics},
	}
	if o.xyz != "" {
		joint.Axis.XYZ = &sdf.AxisXYZ{Value: o.xyz}
	}
	if o.limits != nil {
		joint.Axis.Limit = &sdf.JointLimit{Lower: &o.limits[0], Upper: &o.limits[1]}
	}
	return joint
}

func ptr(v float64) *float64 {
	return &v
}

func TestFreeJoint(t *testing.T) {
	body := &mjcf.Body{}
	mj, err := AddJoint(body, nil, testOptions(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mj.JointName(), test.ShouldEqual, "freejoint")
	test.That(t, mj.Tag(), test.ShouldEqual, "freejoint")
	test.That(t, body.FreeJoint, test.ShouldEqual, mj)
}

func TestFixedJoint(t *testing.T) {
	body := &mjcf.Body{}
	mj, err := AddJoint(body, &sdf.Joint{Type: "fixed"}, testOptions(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mj, test.ShouldBeNil)
	test.That(t, body.Joints, test.ShouldBeEmpty)
}

func TestRevoluteJoint(t *testing.T) {
	expectedAxis := spatialmath.RotateVector(testPose.Orientation(), r3.Vector{X: 1})

	t.Run("without limits", func(t *testing.T) {
		body := &mjcf.Body{}
		mj, err := AddJoint(body, newJoint(referenceframe.RevoluteJoint, jointOpts{xyz: "1 0 0"}), testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		joint := mj.(*mjcf.Joint)
		test.That(t, joint.Name, test.ShouldEqual, "joint1")
		test.That(t, joint.Type, test.ShouldEqual, mjcf.JointHinge)
		shouldApproximate(t, joint.Pos, 1, 2, 3)
		shouldApproximate(t, joint.Axis, expectedAxis.X, expectedAxis.Y, expectedAxis.Z)
		shouldApproximate(t, joint.Axis, math.Sqrt2/4, math.Sqrt2/4, -math.Sqrt(3)/2)
		test.That(t, joint.IsLimited(), test.ShouldBeFalse)
		test.That(t, body.Joints, test.ShouldHaveLength, 1)
	})

	t.Run("with limits", func(t *testing.T) {
		joint := newJoint(referenceframe.RevoluteJoint, jointOpts{xyz: "1 0 0", limits: []float64{-math.Pi / 4, math.Pi / 2}})
		mj, err := AddJoint(&mjcf.Body{}, joint, testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mj.(*mjcf.Joint).IsLimited(), test.ShouldBeTrue)
		shouldApproximate(t, mj.(*mjcf.Joint).Range, -45, 90)
	})

	t.Run("default limits are unlimited", func(t *testing.T) {
		joint := newJoint(referenceframe.RevoluteJoint, jointOpts{xyz: "1 0 0", limits: []float64{-1e16, 1e16}})
		mj, err := AddJoint(&mjcf.Body{}, joint, testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mj.(*mjcf.Joint).IsLimited(), test.ShouldBeFalse)
		test.That(t, mj.(*mjcf.Joint).Range, test.ShouldBeEmpty)
	})

	t.Run("radians", func(t *testing.T) {
		opts := testOptions(t)
		opts.AngleUnit = spatialmath.Radians
		joint := newJoint(referenceframe.RevoluteJoint, jointOpts{xyz: "1 0 0", limits: []float64{-0.5, 0.25}})
		mj, err := AddJoint(&mjcf.Body{}, joint, opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, mj.(*mjcf.Joint).Range, test.ShouldEqual, "-0.5 0.25")
	})

	t.Run("with dynamics", func(t *testing.T) {
		dynamics := &sdf.JointDynamics{
			Damping:         ptr(0.1),
			Friction:        ptr(0.2),
			SpringStiffness: ptr(0.3),
			SpringReference: ptr(math.Pi / 6),
		}
		mj, err := AddJoint(&mjcf.Body{}, newJoint(referenceframe.RevoluteJoint, jointOpts{xyz: "1 0 0", dynamics: dynamics}),
			testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		joint := mj.(*mjcf.Joint)
		test.That(t, joint.Type, test.ShouldEqual, mjcf.JointHinge)
		test.That(t, *joint.Damping, test.ShouldEqual, 0.1)
		test.That(t, *joint.FrictionLoss, test.ShouldEqual, 0.2)
		test.That(t, *joint.Stiffness, test.ShouldEqual, 0.3)
		test.That(t, *joint.SpringRef, test.ShouldAlmostEqual, 30)
	})
}

func TestContinuousJoint(t *testing.T) {
	// limits are dropped even when they are set
	joint := newJoint(referenceframe.ContinuousJoint, jointOpts{
		xyz:      "1 0 0",
		limits:   []float64{-math.Pi / 4, math.Pi / 2},
		dynamics: &sdf.JointDynamics{SpringReference: ptr(math.Pi / 6)},
	})
	mj, err := AddJoint(&mjcf.Body{}, joint, testOptions(t))
	test.That(t, err, test.ShouldBeNil)
	hinge := mj.(*mjcf.Joint)
	test.That(t, hinge.Type, test.ShouldEqual, mjcf.JointHinge)
	test.That(t, hinge.Limited, test.ShouldEqual, "false")
	test.That(t, hinge.IsLimited(), test.ShouldBeFalse)
	shouldApproximate(t, hinge.Pos, 1, 2, 3)
	test.That(t, *hinge.SpringRef, test.ShouldAlmostEqual, 30)
}

func TestPrismaticJoint(t *testing.T) {
	t.Run("with limits", func(t *testing.T) {
		joint := newJoint(referenceframe.PrismaticJoint, jointOpts{xyz: "1 0 0", limits: []float64{-5, 10}})
		mj, err := AddJoint(&mjcf.Body{}, joint, testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		slide := mj.(*mjcf.Joint)
		test.That(t, slide.Type, test.ShouldEqual, mjcf.JointSlide)
		test.That(t, slide.IsLimited(), test.ShouldBeTrue)
		test.That(t, slide.Range, test.ShouldEqual, "-5 10")
		shouldApproximate(t, slide.Axis, math.Sqrt2/4, math.Sqrt2/4, -math.Sqrt(3)/2)
	})

	t.Run("with dynamics", func(t *testing.T) {
		dynamics := &sdf.JointDynamics{
			Damping:         ptr(0.1),
			Friction:        ptr(0.2),
			SpringStiffness: ptr(0.3),
			SpringReference: ptr(0.4),
		}
		mj, err := AddJoint(&mjcf.Body{}, newJoint(referenceframe.PrismaticJoint, jointOpts{xyz: "1 0 0", dynamics: dynamics}),
			testOptions(t))
		test.That(t, err, test.ShouldBeNil)
		slide := mj.(*mjcf.Joint)
		test.That(t, *slide.Damping, test.ShouldEqual, 0.1)
		test.That(t, *slide.FrictionLoss, test.ShouldEqual, 0.2)
		test.That(t, *slide.Stiffness, test.ShouldEqual, 0.3)
		test.That(t, *slide.SpringRef, test.ShouldEqual, 0.4)
	})
}

func TestBallJoint(t *testing.T) {
	mj, err := AddJoint(&mjcf.Body{}, newJoint(referenceframe.BallJoint, jointOpts{}), testOptions(t))
	test.That(t, err, test.ShouldBeNil)
	ball := mj.(*mjcf.Joint)
	test.That(t, ball.Name, test.ShouldEqual, "joint1")
	test.That(t, ball.Type, test.ShouldEqual, mjcf.JointBall)
	shouldApproximate(t, ball.Pos, 1, 2, 3)
	test.That(t, ball.Axis, test.ShouldBeEmpty)
	test.That(t, ball.Range, test.ShouldBeEmpty)
}

func TestUnsupportedJoints(t *testing.T) {
	for _, jointType := range []referenceframe.JointType{
		referenceframe.UniversalJoint,
		referenceframe.FreeJoint,
		referenceframe.GearboxJoint,
		referenceframe.ScrewJoint,
		referenceframe.Revolute2Joint,
	} {
		body := &mjcf.Body{}
		_, err := AddJoint(body, newJoint(jointType, jointOpts{}), testOptions(t))
		test.That(t, errors.Is(err, referenceframe.ErrUnsupportedJointType), test.ShouldBeTrue)
		test.That(t, body.Joints, test.ShouldBeEmpty)
	}

	_, err := AddJoint(&mjcf.Body{}, &sdf.Joint{Name: "j", Type: "hovering"}, testOptions(t))
	test.That(t, errors.Is(err, referenceframe.ErrUnsupportedJointType), test.ShouldBeTrue)
}

type failingAxisResolver struct{}

func (failingAxisResolver) ResolveAxis(joint *sdf.Joint, axis *sdf.JointAxis) (r3.Vector, error) {
	return r3.Vector{}, errors.New("ambiguous expressed_in frame")
}

func TestJointResolverErrors(t *testing.T) {
	model := &sdf.Model{
		Name:  "m",
		Links: []*sdf.Link{{Name: "child"}},
		Joints: []*sdf.Joint{{
			Name:   "joint1",
			Type:   "revolute",
			Pose:   &sdf.Pose{RelativeTo: "missing", Value: "0 0 0 0 0 0"},
			Parent: "world",
			Child:  "child",
		}},
	}
	opts, err := NewOptions(model, spatialmath.Degrees, convert.NewSession(logging.NewTestLogger(t)), &mjcf.Asset{})
	test.That(t, err, test.ShouldBeNil)
	_, err = AddJoint(&mjcf.Body{}, model.Joints[0], opts)
	test.That(t, errors.Is(err, referenceframe.ErrUnresolvableFrame), test.ShouldBeTrue)

	model.Joints[0].Pose = nil
	model.Joints[0].Axis = &sdf.JointAxis{XYZ: &sdf.AxisXYZ{Value: "0 0 0"}}
	opts, err = NewOptions(model, spatialmath.Degrees, convert.NewSession(logging.NewTestLogger(t)), &mjcf.Asset{})
	test.That(t, err, test.ShouldBeNil)
	_, err = AddJoint(&mjcf.Body{}, model.Joints[0], opts)
	test.That(t, errors.Is(err, referenceframe.ErrUnresolvableFrame), test.ShouldBeTrue)

	model.Joints[0].Axis = &sdf.JointAxis{XYZ: &sdf.AxisXYZ{Value: "0 0 1"}}
	opts.AxisResolver = failingAxisResolver{}
	body := &mjcf.Body{}
	_, err = AddJoint(body, model.Joints[0], opts)
	test.That(t, errors.Is(err, referenceframe.ErrUnresolvableFrame), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "ambiguous expressed_in frame")
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint1")
	test.That(t, body.Joints, test.ShouldBeEmpty)
}
