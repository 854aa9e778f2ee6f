package symmetry

import (
	"fmt"
	"math"

	"plane-motif/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Lattice is a 2D lattice given by its basis vectors.
type Lattice struct {
	A geometry.Point `json:"a"`
	B geometry.Point `json:"b"`
}

// Square returns a square lattice with side a.
func Square(a float64) Lattice {
	return Lattice{A: geometry.NewPoint(a, 0), B: geometry.NewPoint(0, a)}
}

// Rectangular returns a rectangular lattice with sides a and b.
func Rectangular(a, b float64) Lattice {
	return Lattice{A: geometry.NewPoint(a, 0), B: geometry.NewPoint(0, b)}
}

// Hexagonal returns a hexagonal lattice with side a and a 120° angle
// between the basis vectors.
func Hexagonal(a float64) Lattice {
	return Oblique(a, a, 2*math.Pi/3)
}

// Oblique returns a lattice with sides a and b separated by gamma radians.
// A lies along the x axis.
func Oblique(a, b, gamma float64) Lattice {
	sin, cos := math.Sincos(gamma)
	return Lattice{A: geometry.NewPoint(a, 0), B: geometry.NewPoint(b*cos, b*sin)}
}

// Basis returns the linear map from fractional to Cartesian coordinates.
func (l Lattice) Basis() geometry.Transform {
	t, err := geometry.NewTransform([][]float64{
		{l.A.X, l.B.X, 0},
		{l.A.Y, l.B.Y, 0},
		{0, 0, 1},
	})
	if err != nil {
		// The bottom row is fixed above.
		panic(err)
	}
	return t
}

// Cartesian converts an operation written in fractional coordinates to
// Cartesian coordinates, B·F·B⁻¹.
func (l Lattice) Cartesian(frac geometry.Transform) (geometry.Transform, error) {
	basis := l.Basis()
	inv, err := basis.Inverse()
	if err != nil {
		return geometry.Transform{}, fmt.Errorf("lattice basis %v %v: %w", l.A, l.B, err)
	}
	return geometry.Chain(inv, frac, basis), nil
}

// Translate returns the lattice translation n·A + m·B.
func (l Lattice) Translate(n, m int) geometry.Transform {
	v := l.A.Scale(float64(n)).Add(l.B.Scale(float64(m)))
	return geometry.Translation(v.X, v.Y)
}

// MetricTensor returns the 2x2 matrix of basis dot products.
func (l Lattice) MetricTensor() *mat.SymDense {
	ab := l.A.X*l.B.X + l.A.Y*l.B.Y
	return mat.NewSymDense(2, []float64{
		l.A.X*l.A.X + l.A.Y*l.A.Y, ab,
		ab, l.B.X*l.B.X + l.B.Y*l.B.Y,
	})
}

// CellArea returns the area of the unit cell.
func (l Lattice) CellArea() float64 {
	return math.Sqrt(mat.Det(l.MetricTensor()))
}

// isIsometry reports whether the linear part of t is orthogonal.
func isIsometry(t geometry.Transform, tol float64) bool {
	lin := mat.NewDense(2, 2, []float64{
		t.At(0, 0), t.At(0, 1),
		t.At(1, 0), t.At(1, 1),
	})
	var gram mat.Dense
	gram.Mul(lin.T(), lin)
	eye := mat.NewDiagDense(2, []float64{1, 1})
	return mat.EqualApprox(&gram, eye, tol)
}
