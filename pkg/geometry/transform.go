package geometry

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Transform is a 3x3 homogeneous affine matrix in row-major order.
//
//	[a b tx]
//	[c d ty]
//	[0 0 1 ]
//
// The zero value is not a valid transform: its bottom row is [0 0 0], and
// Shape.Affine rejects it. Use Identity or one of the other constructors.
type Transform struct {
	m [9]float64
}

// identityEps bounds IsIdentity comparisons.
const identityEps = 1e-10

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Translation returns a transform that adds (tx, ty) to every point.
func Translation(tx, ty float64) Transform {
	return Transform{m: [9]float64{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}}
}

// Rotation returns a rotation about the origin by theta radians.
// Positive theta is counter-clockwise in a y-up frame: (1, 0) maps to
// (cos theta, sin theta).
func Rotation(theta float64) Transform {
	sin, cos := math.Sincos(theta)
	return Transform{m: [9]float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}}
}

// RotationAbout returns a rotation by theta radians about center.
func RotationAbout(theta float64, center Point) Transform {
	back := Point{}.Sub(center)
	return Chain(
		Translation(back.X, back.Y),
		Rotation(theta),
		Translation(center.X, center.Y),
	)
}

// ReflectionAboutX returns the mirror in the x axis, which negates y.
func ReflectionAboutX() Transform {
	return Transform{m: [9]float64{
		1, 0, 0,
		0, -1, 0,
		0, 0, 1,
	}}
}

// ReflectionAboutY returns the mirror in the y axis, which negates x.
func ReflectionAboutY() Transform {
	return Transform{m: [9]float64{
		-1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Scale returns a scaling transform about the origin.
func Scale(sx, sy float64) Transform {
	return Transform{m: [9]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}}
}

// Compose returns the single transform equivalent to applying a first and
// then b, i.e. the product b·a.
func Compose(a, b Transform) Transform {
	var prod mat.Dense
	prod.Mul(b.Dense(), a.Dense())
	return fromMatrix(&prod)
}

// Chain composes transforms in application order. Chain() is the identity.
func Chain(ts ...Transform) Transform {
	out := Identity()
	for _, t := range ts {
		out = Compose(out, t)
	}
	return out
}

// Then returns t followed by next.
func (t Transform) Then(next Transform) Transform {
	return Compose(t, next)
}

// NearZeroCleanup returns a copy of t with every entry whose magnitude is
// below tol replaced by an exact zero.
func NearZeroCleanup(t Transform, tol float64) Transform {
	out := t
	for i, v := range out.m {
		if math.Abs(v) < tol {
			out.m[i] = 0
		}
	}
	return out
}

// NewTransform builds a transform from three rows of three values.
func NewTransform(rows [][]float64) (Transform, error) {
	if len(rows) != 3 {
		return Transform{}, fmt.Errorf("%w: got %d rows, want 3", ErrMalformedTransform, len(rows))
	}
	var t Transform
	for r, row := range rows {
		if len(row) != 3 {
			return Transform{}, fmt.Errorf("%w: row %d has %d columns, want 3", ErrMalformedTransform, r, len(row))
		}
		copy(t.m[r*3:r*3+3], row)
	}
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}
	return t, nil
}

// FromMatrix converts a gonum matrix to a transform, checking its shape
// and bottom row.
func FromMatrix(m mat.Matrix) (Transform, error) {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return Transform{}, fmt.Errorf("%w: matrix is %dx%d, want 3x3", ErrMalformedTransform, r, c)
	}
	t := fromMatrix(m)
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}
	return t, nil
}

// fromMatrix copies a 3x3 matrix without validation.
func fromMatrix(m mat.Matrix) Transform {
	var t Transform
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t.m[r*3+c] = m.At(r, c)
		}
	}
	return t
}

// FromAff3 lifts a 2x3 x/image affine matrix to a homogeneous transform.
func FromAff3(a f64.Aff3) Transform {
	return Transform{m: [9]float64{
		a[0], a[1], a[2],
		a[3], a[4], a[5],
		0, 0, 1,
	}}
}

// Aff3 returns the top two rows in the layout used by golang.org/x/image/draw.
func (t Transform) Aff3() f64.Aff3 {
	return f64.Aff3{t.m[0], t.m[1], t.m[2], t.m[3], t.m[4], t.m[5]}
}

// Validate checks the homogeneous constraint. The bottom row must be
// exactly [0 0 1].
func (t Transform) Validate() error {
	if t.m[6] != 0 || t.m[7] != 0 || t.m[8] != 1 {
		return fmt.Errorf("%w: bottom row is [%g %g %g], want [0 0 1]",
			ErrMalformedTransform, t.m[6], t.m[7], t.m[8])
	}
	return nil
}

// At returns the entry at row r, column c.
func (t Transform) At(r, c int) float64 {
	if r < 0 || r > 2 || c < 0 || c > 2 {
		panic(fmt.Sprintf("geometry: index (%d, %d) out of range", r, c))
	}
	return t.m[r*3+c]
}

// Dense returns a fresh gonum copy of the matrix.
func (t Transform) Dense() *mat.Dense {
	data := t.m
	return mat.NewDense(3, 3, data[:])
}

// Apply maps a single point through the transform.
func (t Transform) Apply(p Point) Point {
	var out mat.VecDense
	out.MulVec(t.Dense(), mat.NewVecDense(3, []float64{p.X, p.Y, 1}))
	return Point{X: out.AtVec(0), Y: out.AtVec(1)}
}

// Determinant returns the determinant of the linear part. A negative value
// means the transform reverses orientation.
func (t Transform) Determinant() float64 {
	return mat.Det(t.Dense())
}

// Inverse returns the inverse transform.
func (t Transform) Inverse() (Transform, error) {
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}
	if det := t.Determinant(); math.Abs(det) < 1e-10 {
		return Transform{}, fmt.Errorf("%w: determinant %g", ErrSingularTransform, det)
	}

	var inv mat.Dense
	if err := inv.Inverse(t.Dense()); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}
	out := fromMatrix(&inv)
	// The solver leaves rounding noise in the homogeneous row.
	out.m[6], out.m[7], out.m[8] = 0, 0, 1
	return out, nil
}

// Equal reports whether every entry matches within tol.
func (t Transform) Equal(o Transform, tol float64) bool {
	for i := range t.m {
		if !scalar.EqualWithinAbs(t.m[i], o.m[i], tol) {
			return false
		}
	}
	return true
}

// IsIdentity returns true if t is the identity within a small tolerance.
func (t Transform) IsIdentity() bool {
	return t.Equal(Identity(), identityEps)
}

// Rows returns the matrix as three rows of three values.
func (t Transform) Rows() [][]float64 {
	return [][]float64{
		{t.m[0], t.m[1], t.m[2]},
		{t.m[3], t.m[4], t.m[5]},
		{t.m[6], t.m[7], t.m[8]},
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("%v", mat.Formatted(t.Dense(), mat.Squeeze()))
}
