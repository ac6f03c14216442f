package mjcf

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// DefaultEulerSeq is the euler sequence of a compiler without an eulerseq attribute.
const DefaultEulerSeq spatialmath.EulerSequence = "xyz"

// Compiler is the <compiler> element. Its settings decide how the angles and orientations of the rest of the
// document are read; a nil Compiler reads degrees and intrinsic x-y-z euler angles.
type Compiler struct {
	Angle    string `xml:"angle,attr,omitempty"`
	EulerSeq string `xml:"eulerseq,attr,omitempty"`
	MeshDir  string `xml:"meshdir,attr,omitempty"`
}

// NewCompiler returns the compiler settings matching the frames written by NewFrame.
func NewCompiler(unit spatialmath.AngleUnit) *Compiler {
	return &Compiler{Angle: unit.String(), EulerSeq: string(spatialmath.RollPitchYaw)}
}

// Unit returns the unit of angle valued attributes.
func (c *Compiler) Unit() (spatialmath.AngleUnit, error) {
	if c == nil {
		return spatialmath.Degrees, nil
	}
	return spatialmath.ParseAngleUnit(c.Angle)
}

// Seq returns the sequence of euler attributes.
func (c *Compiler) Seq() (spatialmath.EulerSequence, error) {
	if c == nil || c.EulerSeq == "" {
		return DefaultEulerSeq, nil
	}
	return spatialmath.ParseEulerSequence(c.EulerSeq)
}

// ResolvePose returns the pose written in the attributes of f relative to the parent element.
func (c *Compiler) ResolvePose(f Frame) (spatialmath.Pose, error) {
	pos, err := parseVec3(f.Pos, r3.Vector{})
	if err != nil {
		return nil, errors.Wrap(err, "invalid pos")
	}
	o, err := c.ResolveOrientation(f)
	if err != nil {
		return nil, err
	}
	return spatialmath.NewPose(pos, o), nil
}

// ResolveOrientation returns the orientation written in the attributes of f.
func (c *Compiler) ResolveOrientation(f Frame) (spatialmath.Orientation, error) {
	set := 0
	for _, attr := range []string{f.Quat, f.AxisAngle, f.Euler, f.XYAxes, f.ZAxis} {
		if attr != "" {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("more than one orientation attribute is set")
	}
	unit, err := c.Unit()
	if err != nil {
		return nil, err
	}

	switch {
	case f.Quat != "":
		v, err := parseExact(f.Quat, 4)
		if err != nil {
			return nil, errors.Wrap(err, "invalid quat")
		}
		q := quat.Number{Real: v[0], Imag: v[1], Jmag: v[2], Kmag: v[3]}
		if quat.Abs(q) == 0 {
			return nil, errors.New("quat has zero norm")
		}
		return referenceframe.PoseSpec{Quaternion: &q}.Orientation(), nil
	case f.AxisAngle != "":
		v, err := parseExact(f.AxisAngle, 4)
		if err != nil {
			return nil, errors.Wrap(err, "invalid axisangle")
		}
		if v[0] == 0 && v[1] == 0 && v[2] == 0 {
			return nil, errors.New("axisangle has a zero axis")
		}
		aa := &spatialmath.R4AA{Theta: v[3], RX: v[0], RY: v[1], RZ: v[2]}
		return referenceframe.PoseSpec{AxisAngle: aa, Unit: unit}.Orientation(), nil
	case f.Euler != "":
		v, err := parseVec3(f.Euler, r3.Vector{})
		if err != nil {
			return nil, errors.Wrap(err, "invalid euler")
		}
		seq, err := c.Seq()
		if err != nil {
			return nil, err
		}
		return referenceframe.PoseSpec{Euler: &v, EulerSeq: seq, Unit: unit}.Orientation(), nil
	case f.XYAxes != "":
		v, err := parseExact(f.XYAxes, 6)
		if err != nil {
			return nil, errors.Wrap(err, "invalid xyaxes")
		}
		x := r3.Vector{X: v[0], Y: v[1], Z: v[2]}
		y := r3.Vector{X: v[3], Y: v[4], Z: v[5]}
		if x.Norm() == 0 || y.Sub(x.Mul(y.Dot(x)/x.Norm2())).Norm() == 0 {
			return nil, errors.New("xyaxes are degenerate")
		}
		return spatialmath.NewRotationMatrixFromAxes(x, y), nil
	case f.ZAxis != "":
		z, err := parseVec3(f.ZAxis, r3.Vector{Z: 1})
		if err != nil {
			return nil, errors.Wrap(err, "invalid zaxis")
		}
		if z.Norm() == 0 {
			return nil, errors.New("zaxis has zero length")
		}
		return minimalRotationFromZ(z.Normalize()), nil
	default:
		return spatialmath.NewZeroOrientation(), nil
	}
}

// minimalRotationFromZ returns the smallest rotation that takes the z axis onto z.
func minimalRotationFromZ(z r3.Vector) spatialmath.Orientation {
	axis := r3.Vector{Z: 1}.Cross(z)
	if axis.Norm() < 1e-10 {
		if z.Z > 0 {
			return spatialmath.NewZeroOrientation()
		}
		return &spatialmath.R4AA{Theta: math.Pi, RX: 1}
	}
	angle := math.Acos(math.Max(-1, math.Min(1, z.Z)))
	return &spatialmath.R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z}
}

// ResolveAxis returns the unit axis of a joint in the frame of its body. A missing axis is the z axis.
func (c *Compiler) ResolveAxis(j *Joint) (r3.Vector, error) {
	axis, err := parseVec3(j.Axis, r3.Vector{Z: 1})
	if err != nil {
		return r3.Vector{}, referenceframe.NewUnresolvableFrameError(j.Name, errors.Wrap(err, "invalid axis"))
	}
	if axis.Norm() == 0 {
		return r3.Vector{}, referenceframe.NewUnresolvableFrameError(j.Name, errors.New("axis has zero length"))
	}
	return axis.Normalize(), nil
}

// NewFrame writes p as pos and euler attributes in the given unit, to be read with the roll, pitch, yaw
// sequence of NewCompiler.
func NewFrame(p spatialmath.Pose, unit spatialmath.AngleUnit) Frame {
	var f Frame
	if pt := p.Point(); pt.Norm() > 0 {
		f.Pos = FormatVec3(pt)
	}
	if !spatialmath.OrientationAlmostEqual(p.Orientation(), spatialmath.NewZeroOrientation()) {
		f.Euler = FormatVec3(referenceframe.EulerIn(p.Orientation(), unit))
	}
	return f
}

// FormatVec3 writes a vector as a space delimited attribute.
func FormatVec3(v r3.Vector) string {
	return utils.FloatSliceToSpaceDelimitedString(v.X, v.Y, v.Z)
}

func parseExact(s string, n int) ([]float64, error) {
	v, err := utils.ParseFloats(s, n)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Errorf("expected %d values", n)
	}
	return v, nil
}

func parseVec3(s string, def r3.Vector) (r3.Vector, error) {
	v, err := utils.ParseFloats(s, 3)
	if err != nil {
		return r3.Vector{}, err
	}
	if v == nil {
		return def, nil
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
