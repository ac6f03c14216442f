package mjcf

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/sdfmjcf/spatialmath"
)

func TestCompilerDefaults(t *testing.T) {
	var c *Compiler
	unit, err := c.Unit()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, unit, test.ShouldEqual, spatialmath.Degrees)
	seq, err := c.Seq()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, seq, test.ShouldEqual, DefaultEulerSeq)

	_, err = (&Compiler{Angle: "gradian"}).Unit()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestResolvePose(t *testing.T) {
	expected := &spatialmath.EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4}

	t.Run("euler degrees roll pitch yaw", func(t *testing.T) {
		c := NewCompiler(spatialmath.Degrees)
		p, err := c.ResolvePose(Frame{Pos: "1 2 3", Euler: "90 60 45"})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.R3VectorAlmostEqual(p.Point(), r3.Vector{X: 1, Y: 2, Z: 3}, 1e-9), test.ShouldBeTrue)
		test.That(t, spatialmath.OrientationAlmostEqual(p.Orientation(), expected), test.ShouldBeTrue)
	})

	t.Run("euler radians intrinsic", func(t *testing.T) {
		c := &Compiler{Angle: "radian", EulerSeq: "zyx"}
		// intrinsic z-y-x is the same rotation as extrinsic X-Y-Z with the angles reversed
		p, err := c.ResolvePose(Frame{Euler: "0.7853981633974483 1.0471975511965976 1.5707963267948966"})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.OrientationAlmostEqual(p.Orientation(), expected), test.ShouldBeTrue)
	})

	t.Run("quat is normalized", func(t *testing.T) {
		p, err := (*Compiler)(nil).ResolvePose(Frame{Quat: "2 0 0 2"})
		test.That(t, err, test.ShouldBeNil)
		rotated := spatialmath.RotateVector(p.Orientation(), r3.Vector{X: 1})
		test.That(t, spatialmath.R3VectorAlmostEqual(rotated, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("axisangle degrees", func(t *testing.T) {
		p, err := (*Compiler)(nil).ResolvePose(Frame{AxisAngle: "0 0 1 90"})
		test.That(t, err, test.ShouldBeNil)
		rotated := spatialmath.RotateVector(p.Orientation(), r3.Vector{X: 1})
		test.That(t, spatialmath.R3VectorAlmostEqual(rotated, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("xyaxes", func(t *testing.T) {
		p, err := (*Compiler)(nil).ResolvePose(Frame{XYAxes: "0 1 0 -1 0 0"})
		test.That(t, err, test.ShouldBeNil)
		rotated := spatialmath.RotateVector(p.Orientation(), r3.Vector{X: 1})
		test.That(t, spatialmath.R3VectorAlmostEqual(rotated, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("zaxis", func(t *testing.T) {
		p, err := (*Compiler)(nil).ResolvePose(Frame{ZAxis: "1 0 0"})
		test.That(t, err, test.ShouldBeNil)
		rotated := spatialmath.RotateVector(p.Orientation(), r3.Vector{Z: 1})
		test.That(t, spatialmath.R3VectorAlmostEqual(rotated, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

		p, err = (*Compiler)(nil).ResolvePose(Frame{ZAxis: "0 0 -1"})
		test.That(t, err, test.ShouldBeNil)
		rotated = spatialmath.RotateVector(p.Orientation(), r3.Vector{Z: 1})
		test.That(t, spatialmath.R3VectorAlmostEqual(rotated, r3.Vector{Z: -1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("errors", func(t *testing.T) {
		for _, f := range []Frame{
			{Euler: "1 2 3", Quat: "1 0 0 0"},
			{Quat: "0 0 0 0"},
			{Quat: "1 0 0"},
			{AxisAngle: "0 0 0 1"},
			{XYAxes: "1 0 0 2 0 0"},
			{ZAxis: "0 0 0"},
			{Pos: "1 x 2"},
		} {
			_, err := (*Compiler)(nil).ResolvePose(f)
			test.That(t, err, test.ShouldNotBeNil)
		}
	})
}

func TestNewFrame(t *testing.T) {
	p := spatialmath.NewPose(r3.Vector{X: 1}, &spatialmath.EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4})
	f := NewFrame(p, spatialmath.Degrees)
	test.That(t, f.Pos, test.ShouldNotBeEmpty)
	test.That(t, f.Euler, test.ShouldNotBeEmpty)

	back, err := NewCompiler(spatialmath.Degrees).ResolvePose(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(back, p), test.ShouldBeTrue)

	test.That(t, NewFrame(spatialmath.NewZeroPose(), spatialmath.Degrees), test.ShouldResemble, Frame{})
}

func TestResolveAxis(t *testing.T) {
	axis, err := (*Compiler)(nil).ResolveAxis(&Joint{Name: "j"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, axis, test.ShouldResemble, r3.Vector{Z: 1})

	axis, err = (*Compiler)(nil).ResolveAxis(&Joint{Name: "j", Axis: "3 0 4"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(axis, r3.Vector{X: 0.6, Z: 0.8}, 1e-9), test.ShouldBeTrue)

	_, err = (*Compiler)(nil).ResolveAxis(&Joint{Name: "j", Axis: "0 0 0"})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCamera(t *testing.T) {
	// an MJCF camera with no rotation looks down the world -z axis
	sdfPose := CameraToSDF(spatialmath.NewZeroPose())
	forward := spatialmath.RotateVector(sdfPose.Orientation(), r3.Vector{X: 1})
	up := spatialmath.RotateVector(sdfPose.Orientation(), r3.Vector{Z: 1})
	test.That(t, spatialmath.R3VectorAlmostEqual(forward, r3.Vector{Z: -1}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(up, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)

	p := spatialmath.NewPose(r3.Vector{X: 1, Y: 2}, &spatialmath.R4AA{Theta: 0.3, RX: 1, RY: 1})
	test.That(t, spatialmath.PoseAlmostEqual(CameraFromSDF(CameraToSDF(p)), p), test.ShouldBeTrue)

	hfov := HorizontalFOV(45, 320, 240)
	test.That(t, hfov, test.ShouldAlmostEqual, 2*math.Atan(math.Tan(math.Pi/8)*4/3))
	test.That(t, VerticalFOV(hfov, 320, 240), test.ShouldAlmostEqual, 45.0)
}

func TestUnmarshal(t *testing.T) {
	doc, err := Unmarshal([]byte(`<mujoco model="m">
  <compiler angle="radian"/>
  <worldbody>
    <body name="b" pos="0 0 1" euler="0 0 1.57">
      <inertial pos="0 0 0" mass="2" diaginertia="1 2 3"/>
      <joint name="j" type="slide" range="-1 1" damping="0.5"/>
      <geom type="box" size="1 1 1" group="3"/>
      <body name="c"/>
    </body>
  </worldbody>
</mujoco>`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, doc.Model, test.ShouldEqual, "m")
	test.That(t, doc.Compiler.Angle, test.ShouldEqual, "radian")
	b := doc.Worldbody.Bodies[0]
	test.That(t, b.Pos, test.ShouldEqual, "0 0 1")
	test.That(t, b.Inertial.Mass, test.ShouldEqual, 2.0)
	test.That(t, b.Joints[0].JointType(), test.ShouldEqual, JointSlide)
	test.That(t, b.Joints[0].IsLimited(), test.ShouldBeTrue)
	test.That(t, *b.Joints[0].Damping, test.ShouldEqual, 0.5)
	test.That(t, *b.Geoms[0].Group, test.ShouldEqual, CollisionGeomGroup)
	test.That(t, b.Bodies, test.ShouldHaveLength, 1)

	_, err = Unmarshal([]byte(`<mujoco/>`))
	test.That(t, err, test.ShouldEqual, ErrNoModelInformation)

	out, err := Marshal(doc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldContainSubstring, `<joint name="j" type="slide" range="-1 1" damping="0.5"></joint>`)
}

func TestMeshName(t *testing.T) {
	asset := &Asset{Meshes: []*MeshAsset{{File: "meshes/arm.stl"}, {Name: "named", File: "x.obj"}}}
	m, ok := asset.FindMesh("arm")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m.File, test.ShouldEqual, "meshes/arm.stl")
	_, ok = asset.FindMesh("x")
	test.That(t, ok, test.ShouldBeFalse)
}
