package motif

import (
	"errors"
	"fmt"
	"math"

	"plane-motif/pkg/geometry"
	"plane-motif/pkg/symmetry"
)

// Lattice kinds accepted in LatticeSpec.Kind.
const (
	KindSquare      = "square"
	KindRectangular = "rectangular"
	KindHexagonal   = "hexagonal"
	KindOblique     = "oblique"
)

// Result is an evaluated motif.
type Result struct {
	Name      string
	Group     string
	Transform geometry.Transform
	Shapes    []geometry.Shape
}

// Bounds returns the box enclosing every shape.
func (r *Result) Bounds() geometry.Rect {
	if len(r.Shapes) == 0 {
		return geometry.Rect{}
	}
	out := r.Shapes[0].Bounds()
	for _, s := range r.Shapes[1:] {
		out = out.Union(s.Bounds())
	}
	return out
}

// Polygons returns every shape as (x, y) pairs.
func (r *Result) Polygons() [][][2]float64 {
	out := make([][][2]float64, len(r.Shapes))
	for i, s := range r.Shapes {
		out[i] = s.Points()
	}
	return out
}

// Validate reports every problem in the file.
func (f *File) Validate() error {
	var errs []error
	if len(f.Points) == 0 {
		errs = append(errs, geometry.ErrEmptyShape)
	}
	if _, err := symmetry.Lookup(f.groupName()); err != nil {
		errs = append(errs, err)
	}
	switch f.Lattice.Kind {
	case "", KindSquare, KindRectangular, KindHexagonal, KindOblique:
	default:
		errs = append(errs, fmt.Errorf("unknown lattice kind %q", f.Lattice.Kind))
	}
	if f.Lattice.A < 0 || f.Lattice.B < 0 {
		errs = append(errs, errors.New("lattice sides must not be negative"))
	}
	errs = append(errs, f.checkLatticeParams()...)
	if f.Tile.NX < 0 || f.Tile.NY < 0 {
		errs = append(errs, fmt.Errorf("tile %dx%d must not be negative", f.Tile.NX, f.Tile.NY))
	} else if err := symmetry.CheckCells(f.cells()); err != nil {
		errs = append(errs, err)
	}
	if f.Cleanup < 0 {
		errs = append(errs, fmt.Errorf("cleanup tolerance %g must not be negative", f.Cleanup))
	}
	shape, _ := geometry.ShapeFromPairs(f.Points)
	if _, err := Combined(shape, f.Steps); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// checkLatticeParams reports sides and angles the chosen kind would drop.
func (f *File) checkLatticeParams() []error {
	var errs []error
	l := f.Lattice
	switch l.Kind {
	case KindOblique:
		if l.Gamma <= 0 || l.Gamma >= 180 {
			errs = append(errs, fmt.Errorf("oblique lattice angle %g must be in (0, 180) degrees", l.Gamma))
		}
		return errs
	case KindRectangular:
		if l.Gamma != 0 && l.Gamma != 90 {
			errs = append(errs, fmt.Errorf("rectangular lattice angle is 90 degrees, got gamma %g", l.Gamma))
		}
		return errs
	}

	name := l.Kind
	if name == "" {
		name = "default"
	}
	if a := f.side(); l.B != 0 && l.B != a {
		errs = append(errs, fmt.Errorf("%s lattice has equal sides, got a %g and b %g", name, a, l.B))
	}
	if l.Gamma != 0 {
		errs = append(errs, fmt.Errorf("%s lattice fixes its angle, got gamma %g", name, l.Gamma))
	}
	return errs
}

// Evaluate builds the motif, applies its steps, and repeats it with the
// group over the tiled cells.
func (f *File) Evaluate() (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	shape, err := geometry.ShapeFromPairs(f.Points)
	if err != nil {
		return nil, err
	}
	tol := f.Cleanup
	if tol == 0 {
		tol = DefaultCleanup
	}
	combined, err := Combined(shape, f.Steps)
	if err != nil {
		return nil, err
	}
	combined = geometry.NearZeroCleanup(combined, tol)
	moved, err := shape.Affine(combined)
	if err != nil {
		return nil, err
	}

	group, err := symmetry.Lookup(f.groupName())
	if err != nil {
		return nil, err
	}
	nx, ny := f.cells()
	shapes, err := symmetry.Tile(moved, group, f.lattice(group), nx, ny)
	if err != nil {
		return nil, fmt.Errorf("motif %q: %w", f.Name, err)
	}

	for i := range shapes {
		shapes[i] = shapes[i].Cleanup(tol)
	}

	return &Result{
		Name:      f.Name,
		Group:     group.Name,
		Transform: combined,
		Shapes:    shapes,
	}, nil
}

func (f *File) groupName() string {
	if f.Group == "" {
		return "p1"
	}
	return f.Group
}

// cells returns the tiling extent, at least one cell each way.
func (f *File) cells() (int, int) {
	return max(f.Tile.NX, 1), max(f.Tile.NY, 1)
}

func (f *File) side() float64 {
	if f.Lattice.A == 0 {
		return DefaultCell
	}
	return f.Lattice.A
}

func (f *File) lattice(g symmetry.Group) symmetry.Lattice {
	a := f.side()
	b := f.Lattice.B
	if b == 0 {
		b = a
	}

	switch f.Lattice.Kind {
	case KindSquare:
		return symmetry.Square(a)
	case KindRectangular:
		return symmetry.Rectangular(a, b)
	case KindHexagonal:
		return symmetry.Hexagonal(a)
	case KindOblique:
		return symmetry.Oblique(a, b, f.Lattice.Gamma*math.Pi/180)
	default:
		return g.DefaultLattice(a)
	}
}
