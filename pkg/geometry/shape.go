package geometry

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Shape is an ordered, non-empty sequence of points. A shape owns its
// points; nothing outside it can reach them.
type Shape struct {
	points []Point
}

// NewShape creates a shape from a copy of the given points.
func NewShape(points ...Point) (Shape, error) {
	if len(points) == 0 {
		return Shape{}, ErrEmptyShape
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	return Shape{points: pts}, nil
}

// ShapeFromPairs creates a shape from (x, y) pairs, the same format Points
// returns.
func ShapeFromPairs(pairs [][2]float64) (Shape, error) {
	pts := make([]Point, len(pairs))
	for i, xy := range pairs {
		pts[i] = Point{X: xy[0], Y: xy[1]}
	}
	return NewShape(pts...)
}

// Len returns the number of points.
func (s Shape) Len() int {
	return len(s.points)
}

// At returns point i.
func (s Shape) At(i int) Point {
	return s.points[i]
}

// Vertices returns a copy of the points.
func (s Shape) Vertices() []Point {
	pts := make([]Point, len(s.points))
	copy(pts, s.points)
	return pts
}

// Points returns the coordinates as (x, y) pairs in construction order,
// ready for a polygon-drawing routine.
func (s Shape) Points() [][2]float64 {
	out := make([][2]float64, len(s.points))
	for i, p := range s.points {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// Affine returns a new shape whose point i is the image of point i under t.
// The receiver is left untouched.
func (s Shape) Affine(t Transform) (Shape, error) {
	if len(s.points) == 0 {
		return Shape{}, ErrEmptyShape
	}
	if err := t.Validate(); err != nil {
		return Shape{}, err
	}

	// One column (x, y, 1) per point.
	n := len(s.points)
	cols := mat.NewDense(3, n, nil)
	for i, p := range s.points {
		cols.Set(0, i, p.X)
		cols.Set(1, i, p.Y)
		cols.Set(2, i, 1)
	}

	var img mat.Dense
	img.Mul(t.Dense(), cols)

	out := make([]Point, n)
	for i := range out {
		// Row 2 is exactly 1 because the bottom row was validated.
		out[i] = Point{X: img.At(0, i), Y: img.At(1, i)}
	}
	return Shape{points: out}, nil
}

// Cleanup returns a copy with coordinates smaller in magnitude than tol set
// to exactly zero.
func (s Shape) Cleanup(tol float64) Shape {
	out := make([]Point, len(s.points))
	for i, p := range s.points {
		if p.X < tol && p.X > -tol {
			p.X = 0
		}
		if p.Y < tol && p.Y > -tol {
			p.Y = 0
		}
		out[i] = p
	}
	return Shape{points: out}
}

// Equal reports whether both shapes have the same arity and matching
// points within tol.
func (s Shape) Equal(o Shape, tol float64) bool {
	if len(s.points) != len(o.points) {
		return false
	}
	for i := range s.points {
		if !s.points[i].Equal(o.points[i], tol) {
			return false
		}
	}
	return true
}

// Centroid computes the average position of the points.
func (s Shape) Centroid() Point {
	if len(s.points) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range s.points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(s.points))
	return Point{X: sumX / n, Y: sumY / n}
}

// Bounds computes the axis-aligned bounding box of the points.
func (s Shape) Bounds() Rect {
	if len(s.points) == 0 {
		return Rect{}
	}
	minX, minY := s.points[0].X, s.points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Perimeter returns the length of the closed outline.
func (s Shape) Perimeter() float64 {
	n := len(s.points)
	if n < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += s.points[i].Distance(s.points[(i+1)%n])
	}
	return sum
}

// SignedArea returns the shoelace area, positive when the points run
// counter-clockwise in a y-up frame.
func (s Shape) SignedArea() float64 {
	n := len(s.points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p, q := s.points[i], s.points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// IsConvex returns true if the points form a convex polygon.
// The polygon is assumed to be simple (non-self-intersecting).
func (s Shape) IsConvex() bool {
	n := len(s.points)
	if n < 3 {
		return false
	}

	var sign int
	for i := 0; i < n; i++ {
		cross := crossProduct(s.points[i], s.points[(i+1)%n], s.points[(i+2)%n])
		if cross == 0 {
			continue
		}
		current := 1
		if cross < 0 {
			current = -1
		}
		if sign == 0 {
			sign = current
		} else if current != sign {
			return false
		}
	}
	return true
}

// Contains tests if a point is inside the polygon using ray casting.
func (s Shape) Contains(p Point) bool {
	n := len(s.points)
	if n < 3 || !s.Bounds().Contains(p) {
		return false
	}

	inside := false
	for i := 0; i < n; i++ {
		pi, pj := s.points[i], s.points[(i+1)%n]
		// Ray from p going right crosses edge pi-pj.
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}

func (s Shape) String() string {
	parts := make([]string, len(s.points))
	for i, p := range s.points {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Shape[%s]", strings.Join(parts, " "))
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
