package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{math.Cos(th / 2.), math.Sin(th / 2.), 0, 0} // in quaternion representation
	aa45x = &R4AA{th, 1., 0., 0.}                                   // in axis-angle representation
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}                // in euler angle representation
)

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{1, 0, 0, 0})
	test.That(t, zero.EulerAngles(), test.ShouldResemble, NewEulerAngles())
}

func TestQuaternions(t *testing.T) {
	qq45x := quaternion(q45x)
	test.That(t, qq45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, qq45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)
	test.That(t, qq45x.AxisAngles().RY, test.ShouldAlmostEqual, aa45x.RY)
	test.That(t, qq45x.AxisAngles().RZ, test.ShouldAlmostEqual, aa45x.RZ)
	test.That(t, qq45x.EulerAngles().Roll, test.ShouldAlmostEqual, ea45x.Roll)
	test.That(t, qq45x.EulerAngles().Pitch, test.ShouldAlmostEqual, ea45x.Pitch)
	test.That(t, qq45x.EulerAngles().Yaw, test.ShouldAlmostEqual, ea45x.Yaw)
}

func TestEulerAngles(t *testing.T) {
	test.That(t, ea45x.Quaternion().Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, ea45x.Quaternion().Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, ea45x.Quaternion().Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, ea45x.Quaternion().Kmag, test.ShouldAlmostEqual, q45x.Kmag)
	test.That(t, ea45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, ea45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)

	t.Run("round trip away from gimbal lock", func(t *testing.T) {
		ea := &EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4}
		back := QuatToEulerAngles(ea.Quaternion())
		test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll)
		test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch)
		test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw)
	})

	t.Run("degrees", func(t *testing.T) {
		ea := &EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4}
		deg := ea.Vector(Degrees)
		test.That(t, deg.X, test.ShouldAlmostEqual, 90.0)
		test.That(t, deg.Y, test.ShouldAlmostEqual, 60.0)
		test.That(t, deg.Z, test.ShouldAlmostEqual, 45.0)
		rad := ea.Vector(Radians)
		test.That(t, rad.X, test.ShouldAlmostEqual, math.Pi/2)
	})
}

func TestAxisAngles(t *testing.T) {
	test.That(t, aa45x.Quaternion().Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, aa45x.Quaternion().Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, aa45x.EulerAngles().Roll, test.ShouldAlmostEqual, ea45x.Roll)

	t.Run("non unit axis is normalized", func(t *testing.T) {
		aa := &R4AA{Theta: th, RX: 5}
		test.That(t, OrientationAlmostEqual(aa, aa45x), test.ShouldBeTrue)
		test.That(t, aa.RX, test.ShouldAlmostEqual, 1.0)
	})

	t.Run("zero axis is not rejected", func(t *testing.T) {
		aa := &R4AA{Theta: th}
		q := aa.Quaternion()
		test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1.0)
		test.That(t, aa.Axis(), test.ShouldResemble, r3.Vector{Z: 1})
	})
}

func TestRotationMatrix(t *testing.T) {
	ea := &EulerAngles{Roll: math.Pi / 2, Pitch: math.Pi / 3, Yaw: math.Pi / 4}
	rm := ea.RotationMatrix()
	test.That(t, OrientationAlmostEqual(rm, ea), test.ShouldBeTrue)

	x := rm.Mul(r3.Vector{X: 1})
	test.That(t, R3VectorAlmostEqual(x, RotateVector(ea, r3.Vector{X: 1}), 1e-9), test.ShouldBeTrue)
	test.That(t, x.X, test.ShouldAlmostEqual, math.Sqrt(2)/4)
	test.That(t, x.Y, test.ShouldAlmostEqual, math.Sqrt(2)/4)
	test.That(t, x.Z, test.ShouldAlmostEqual, -math.Sqrt(3)/2)

	t.Run("from axes", func(t *testing.T) {
		fromAxes := NewRotationMatrixFromAxes(rm.Col(0), rm.Col(1))
		test.That(t, RotationMatrixAlmostEqual(fromAxes, rm, 1e-9), test.ShouldBeTrue)
	})

	t.Run("non orthonormal input", func(t *testing.T) {
		skewed := NewRotationMatrixFromAxes(r3.Vector{X: 2}, r3.Vector{X: 1, Y: 3})
		test.That(t, RotationMatrixAlmostEqual(skewed, QuatToRotationMatrix(quat.Number{Real: 1}), 1e-9), test.ShouldBeTrue)
	})
}

func TestEulerSequence(t *testing.T) {
	angles := r3.Vector{X: math.Pi / 2, Y: math.Pi / 3, Z: math.Pi / 4}

	_, err := ParseEulerSequence("xy")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseEulerSequence("xyw")
	test.That(t, err, test.ShouldNotBeNil)

	seq, err := ParseEulerSequence("XYZ")
	test.That(t, err, test.ShouldBeNil)
	ea := &EulerAngles{Roll: angles.X, Pitch: angles.Y, Yaw: angles.Z}
	test.That(t, OrientationAlmostEqual(seq.Orientation(angles), ea), test.ShouldBeTrue)

	// intrinsic x-y-z is the same rotation as extrinsic Z-Y-X with the angles reversed
	intrinsic, err := ParseEulerSequence("xyz")
	test.That(t, err, test.ShouldBeNil)
	extrinsic := EulerSequence("ZYX").Orientation(r3.Vector{X: angles.Z, Y: angles.Y, Z: angles.X})
	test.That(t, OrientationAlmostEqual(intrinsic.Orientation(angles), extrinsic), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(intrinsic.Orientation(angles), ea), test.ShouldBeFalse)
}

func TestOrientationBetween(t *testing.T) {
	a := &EulerAngles{Roll: 0.3, Pitch: -0.2, Yaw: 1.1}
	b := &EulerAngles{Roll: -1.0, Pitch: 0.4, Yaw: 0.2}
	between := OrientationBetween(a, b)
	q := quat.Mul(between.Quaternion(), a.Quaternion())
	test.That(t, QuaternionAlmostEqual(q, b.Quaternion(), 1e-9), test.ShouldBeTrue)

	inv := OrientationInverse(a)
	test.That(t, QuaternionAlmostEqual(quat.Mul(inv.Quaternion(), a.Quaternion()), quat.Number{Real: 1}, 1e-9), test.ShouldBeTrue)
}
