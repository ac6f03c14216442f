package mjcftosdf

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/logging"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/utils"
)

func testOptions(t *testing.T, compiler *mjcf.Compiler) Options {
	t.Helper()
	doc := &mjcf.Mujoco{Compiler: compiler, Worldbody: &mjcf.Body{}, Asset: &mjcf.Asset{}}
	opts, err := NewOptions(doc, convert.NewSession(logging.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	return opts
}

func shouldApproximate(t *testing.T, attr string, expected ...float64) {
	t.Helper()
	actual, err := utils.ParseFloats(attr, len(expected))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cmp.Diff(expected, actual, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)
}

func ptr(v float64) *float64 {
	return &v
}

func TestHingeJoint(t *testing.T) {
	t.Run("limited", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		joint := &mjcf.Joint{Name: "elbow", Pos: "0 0 0.1", Axis: "0 2 0", Limited: "true", Range: "-90 45"}
		j, err := AddJoint(model, &mjcf.Body{Name: "forearm"}, joint, "upper", "forearm", opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, model.Joints, test.ShouldResemble, []*sdf.Joint{j})

		test.That(t, j.Name, test.ShouldEqual, "elbow")
		test.That(t, j.Type, test.ShouldEqual, "revolute")
		test.That(t, j.Parent, test.ShouldEqual, "upper")
		test.That(t, j.Child, test.ShouldEqual, "forearm")
		test.That(t, j.Pose.RelativeTo, test.ShouldEqual, "forearm")
		shouldApproximate(t, j.Pose.Value, 0, 0, 0.1, 0, 0, 0)
		shouldApproximate(t, j.Axis.XYZ.Value, 0, 1, 0)
		test.That(t, j.Axis.XYZ.ExpressedIn, test.ShouldBeEmpty)
		test.That(t, *j.Axis.Limit.Lower, test.ShouldAlmostEqual, -math.Pi/2)
		test.That(t, *j.Axis.Limit.Upper, test.ShouldAlmostEqual, math.Pi/4)
		test.That(t, j.Axis.Dynamics, test.ShouldBeNil)
	})

	t.Run("radians", func(t *testing.T) {
		opts := testOptions(t, &mjcf.Compiler{Angle: "radian"})
		joint := &mjcf.Joint{Name: "elbow", Range: "-1 0.5"}
		j, err := AddJoint(&sdf.Model{}, &mjcf.Body{}, joint, "upper", "forearm", opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, j.Type, test.ShouldEqual, "revolute")
		test.That(t, *j.Axis.Limit.Lower, test.ShouldAlmostEqual, -1.0)
		test.That(t, *j.Axis.Limit.Upper, test.ShouldAlmostEqual, 0.5)
		shouldApproximate(t, j.Axis.XYZ.Value, 0, 0, 1)
	})

	t.Run("unlimited is continuous", func(t *testing.T) {
		opts := testOptions(t, nil)
		joint := &mjcf.Joint{Name: "wheel", Limited: "false", Range: "-90 90", Damping: ptr(0.5), SpringRef: ptr(30)}
		j, err := AddJoint(&sdf.Model{}, &mjcf.Body{}, joint, "base", "wheel_link", opts)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, j.Type, test.ShouldEqual, "continuous")
		test.That(t, j.Axis.Limit, test.ShouldBeNil)
		test.That(t, *j.Axis.Dynamics.Damping, test.ShouldEqual, 0.5)
		test.That(t, *j.Axis.Dynamics.SpringReference, test.ShouldAlmostEqual, math.Pi/6)
	})

	t.Run("zero axis", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		_, err := AddJoint(model, &mjcf.Body{}, &mjcf.Joint{Name: "j", Axis: "0 0 0"}, "a", "b", opts)
		test.That(t, errors.Is(err, referenceframe.ErrUnresolvableFrame), test.ShouldBeTrue)
		test.That(t, model.Joints, test.ShouldBeEmpty)
	})
}

func TestSlideJoint(t *testing.T) {
	opts := testOptions(t, nil)
	joint := &mjcf.Joint{
		Name:         "rail",
		Type:         mjcf.JointSlide,
		Axis:         "1 0 0",
		Range:        "-5 10",
		Damping:      ptr(1),
		FrictionLoss: ptr(2),
		Stiffness:    ptr(3),
		SpringRef:    ptr(0.4),
	}
	j, err := AddJoint(&sdf.Model{}, &mjcf.Body{}, joint, "base", "carriage", opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j.Type, test.ShouldEqual, "prismatic")
	shouldApproximate(t, j.Axis.XYZ.Value, 1, 0, 0)
	test.That(t, *j.Axis.Limit.Lower, test.ShouldEqual, -5.0)
	test.That(t, *j.Axis.Limit.Upper, test.ShouldEqual, 10.0)
	test.That(t, j.Axis.Dynamics, test.ShouldResemble, &sdf.JointDynamics{
		Damping:         ptr(1),
		Friction:        ptr(2),
		SpringStiffness: ptr(3),
		SpringReference: ptr(0.4),
	})
}

func TestBallJoint(t *testing.T) {
	opts := testOptions(t, nil)
	j, err := AddJoint(&sdf.Model{}, &mjcf.Body{}, &mjcf.Joint{Name: "hip", Type: mjcf.JointBall, Range: "0 30"}, "pelvis", "thigh", opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j.Type, test.ShouldEqual, "ball")
	test.That(t, j.Axis, test.ShouldBeNil)
}

func TestFreeJoint(t *testing.T) {
	opts := testOptions(t, nil)
	model := &sdf.Model{}
	j, err := AddJoint(model, &mjcf.Body{}, &mjcf.Joint{Type: mjcf.JointFree}, sdf.WorldFrame, "box", opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, j, test.ShouldBeNil)
	test.That(t, model.Joints, test.ShouldBeEmpty)

	_, err = AddJoint(model, &mjcf.Body{Name: "box"}, &mjcf.Joint{Type: mjcf.JointFree}, "table", "box", opts)
	test.That(t, errors.Is(err, referenceframe.ErrUnsupportedJointType), test.ShouldBeTrue)

	_, err = AddJoint(model, &mjcf.Body{}, &mjcf.Joint{Type: "screw"}, "a", "b", opts)
	test.That(t, errors.Is(err, referenceframe.ErrUnsupportedJointType), test.ShouldBeTrue)
}

func TestAddJoints(t *testing.T) {
	t.Run("welded", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		link := &sdf.Link{Name: "lid"}
		test.That(t, AddJoints(model, &mjcf.Body{Name: "lid"}, "box", link, opts), test.ShouldBeNil)
		test.That(t, model.Joints, test.ShouldResemble, []*sdf.Joint{
			{Name: "lid_fixed", Type: "fixed", Parent: "box", Child: "lid"},
		})
	})

	t.Run("free body of the worldbody", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		body := &mjcf.Body{Name: "ball", FreeJoint: &mjcf.FreeJoint{}}
		test.That(t, AddJoints(model, body, sdf.WorldFrame, &sdf.Link{Name: "ball"}, opts), test.ShouldBeNil)
		test.That(t, model.Joints, test.ShouldBeEmpty)
	})

	t.Run("chained", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		link := &sdf.Link{Name: "gimbal", Pose: &sdf.Pose{Value: "0 0 1 0 0 0"}}
		body := &mjcf.Body{Name: "gimbal", Joints: []*mjcf.Joint{
			{Name: "pan", Axis: "0 0 1"},
			{Name: "tilt", Axis: "0 1 0"},
		}}
		test.That(t, AddJoints(model, body, "base", link, opts), test.ShouldBeNil)

		test.That(t, model.Links, test.ShouldHaveLength, 1)
		dof := model.Links[0]
		test.That(t, dof.Name, test.ShouldEqual, "gimbal_dof0")
		test.That(t, dof.Pose, test.ShouldResemble, link.Pose)
		test.That(t, *dof.Inertial.Mass, test.ShouldEqual, 0.0)

		test.That(t, model.Joints, test.ShouldHaveLength, 2)
		pan, tilt := model.Joints[0], model.Joints[1]
		test.That(t, []string{pan.Parent, pan.Child}, test.ShouldResemble, []string{"base", "gimbal_dof0"})
		test.That(t, pan.Pose.RelativeTo, test.ShouldEqual, "gimbal_dof0")
		test.That(t, []string{tilt.Parent, tilt.Child}, test.ShouldResemble, []string{"gimbal_dof0", "gimbal"})
	})

	t.Run("failure adds nothing", func(t *testing.T) {
		opts := testOptions(t, nil)
		model := &sdf.Model{}
		body := &mjcf.Body{Name: "b", Joints: []*mjcf.Joint{{Name: "ok"}, {Name: "bad", Type: "screw"}}}
		err := AddJoints(model, body, "a", &sdf.Link{Name: "b"}, opts)
		test.That(t, errors.Is(err, referenceframe.ErrUnsupportedJointType), test.ShouldBeTrue)
		test.That(t, model.Links, test.ShouldBeEmpty)
		test.That(t, model.Joints, test.ShouldBeEmpty)
	})
}
