package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// symmetryTolerance is the largest difference between mirrored off-diagonal entries of a moment of inertia
// matrix that is still considered symmetric, relative to the largest entry.
const symmetryTolerance = 1e-9

// MassMatrix is the mass of a rigid body with its moment of inertia written as principal moments
// (Ixx, Iyy, Izz) and products of inertia (Ixy, Ixz, Iyz).
type MassMatrix struct {
	Mass               float64
	DiagonalMoments    r3.Vector
	OffDiagonalMoments r3.Vector
}

// NewMassMatrix builds a MassMatrix from a mass and a 3x3 moment of inertia matrix. Only the upper triangle of
// moi is read. Warnings describe inputs that were normalized rather than rejected: an asymmetric matrix, or a
// negative mass which is clamped to zero.
func NewMassMatrix(mass float64, moi mat.Matrix) (MassMatrix, []string) {
	var warnings []string
	if rows, cols := moi.Dims(); rows != 3 || cols != 3 {
		panic(mat.ErrShape)
	}
	if mass < 0 {
		warnings = append(warnings, fmt.Sprintf("negative mass %g clamped to 0", mass))
		mass = 0
	}
	if !isSymmetric(moi) {
		warnings = append(warnings, "moment of inertia is not symmetric, using its upper triangle")
	}
	return MassMatrix{
		Mass:               mass,
		DiagonalMoments:    r3.Vector{X: moi.At(0, 0), Y: moi.At(1, 1), Z: moi.At(2, 2)},
		OffDiagonalMoments: r3.Vector{X: moi.At(0, 1), Y: moi.At(0, 2), Z: moi.At(1, 2)},
	}, warnings
}

// Moi returns the moment of inertia as a symmetric matrix.
func (m MassMatrix) Moi() *mat.SymDense {
	d, o := m.DiagonalMoments, m.OffDiagonalMoments
	return mat.NewSymDense(3, []float64{
		d.X, o.X, o.Y,
		o.X, d.Y, o.Z,
		o.Y, o.Z, d.Z,
	})
}

// FullInertia is a moment of inertia listed as (Ixx, Iyy, Izz, Ixy, Ixz, Iyz).
type FullInertia [6]float64

// NewFullInertia reads the upper triangle of moi.
func NewFullInertia(moi mat.Matrix) FullInertia {
	return FullInertia{moi.At(0, 0), moi.At(1, 1), moi.At(2, 2), moi.At(0, 1), moi.At(0, 2), moi.At(1, 2)}
}

// DiagonalInertia is a moment of inertia with no products of inertia.
func DiagonalInertia(ixx, iyy, izz float64) FullInertia {
	return FullInertia{ixx, iyy, izz, 0, 0, 0}
}

// Moi returns the moment of inertia as a symmetric matrix.
func (f FullInertia) Moi() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		f[0], f[3], f[4],
		f[3], f[1], f[5],
		f[4], f[5], f[2],
	})
}

// Inertial is a MassMatrix expressed at a pose relative to the body that owns it. The orientation of the pose
// is the frame the moment of inertia is written in.
type Inertial struct {
	MassMatrix MassMatrix
	Pose       Pose
}

// Moi returns the moment of inertia rotated into the frame of the body, R * I * R^T.
func (in Inertial) Moi() *mat.SymDense {
	if in.Pose == nil {
		return in.MassMatrix.Moi()
	}
	return RotateMoi(in.Pose.Orientation(), in.MassMatrix.Moi())
}

// FullInertia returns the mass, the moment of inertia in the body frame and the position it is taken about.
// The orientation of the pose is folded into the products of inertia, so callers must not write it out again.
func (in Inertial) FullInertia() (float64, FullInertia, r3.Vector) {
	var pos r3.Vector
	if in.Pose != nil {
		pos = in.Pose.Point()
	}
	return in.MassMatrix.Mass, NewFullInertia(in.Moi()), pos
}

// NewInertialFromFullInertia builds an Inertial from a moment of inertia written in the frame of pose. The result
// is expressed in the body frame: its pose keeps the position of pose and has no rotation.
func NewInertialFromFullInertia(mass float64, fi FullInertia, pose Pose) (Inertial, []string) {
	moi := mat.Matrix(fi.Moi())
	pos := r3.Vector{}
	if pose != nil {
		moi = RotateMoi(pose.Orientation(), fi.Moi())
		pos = pose.Point()
	}
	mm, warnings := NewMassMatrix(mass, moi)
	return Inertial{MassMatrix: mm, Pose: NewPoseFromPoint(pos)}, warnings
}

// RotateMoi rotates a moment of inertia by o, returning R * moi * R^T.
func RotateMoi(o Orientation, moi mat.Symmetric) *mat.SymDense {
	r := o.RotationMatrix().Dense()
	var tmp, rotated mat.Dense
	tmp.Mul(r, moi)
	rotated.Mul(&tmp, r.T())

	out := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			out.SetSym(i, j, rotated.At(i, j))
		}
	}
	return out
}

func isSymmetric(m mat.Matrix) bool {
	scale := 1.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scale = math.Max(scale, math.Abs(m.At(i, j)))
		}
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > symmetryTolerance*scale {
				return false
			}
		}
	}
	return true
}
