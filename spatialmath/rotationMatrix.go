package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m_{ij} represents the element in the ith row and the jth column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 elements in row major order. The rows are
// orthonormalized so that the result is always a valid rotation.
func NewRotationMatrix(m [9]float64) *RotationMatrix {
	rm := &RotationMatrix{mat: m}
	return QuatToRotationMatrix(rm.Quaternion())
}

// NewRotationMatrixFromAxes builds the rotation whose columns are the images of the x and y axes; the z axis is
// their cross product. Both inputs are orthonormalized with Gram-Schmidt, x first.
func NewRotationMatrixFromAxes(x, y r3.Vector) *RotationMatrix {
	if x.Norm() == 0 {
		x = r3.Vector{X: 1}
	}
	x = x.Normalize()
	y = y.Sub(x.Mul(x.Dot(y)))
	if y.Norm() < 1e-12 {
		y = x.Ortho()
	}
	y = y.Normalize()
	z := x.Cross(y)
	return &RotationMatrix{mat: [9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := mgl64.Mat3FromRows(rm.Row(0), rm.Row(1), rm.Row(2))
	q := mgl64.Mat4ToQuat(m.Mat4()).Normalize()
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// At returns the float corresponding to the element at the specified location.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the specified row of the matrix.
func (rm *RotationMatrix) Row(row int) mgl64.Vec3 {
	return mgl64.Vec3{rm.mat[row*3], rm.mat[row*3+1], rm.mat[row*3+2]}
}

// Col returns the specified column of the matrix as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// Mul returns the product of the rotation matrix and the vector v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// Dense returns a copy of the matrix as a gonum dense matrix.
func (rm *RotationMatrix) Dense() *mat.Dense {
	data := rm.mat
	return mat.NewDense(3, 3, data[:])
}

// RotationMatrixAlmostEqual compares every element of two matrices within tol.
func RotationMatrixAlmostEqual(a, b *RotationMatrix, tol float64) bool {
	for i := range a.mat {
		if math.Abs(a.mat[i]-b.mat[i]) > tol {
			return false
		}
	}
	return true
}
