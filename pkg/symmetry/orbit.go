package symmetry

import (
	"fmt"

	"plane-motif/pkg/geometry"
)

// isometryTol bounds the orthogonality check on Cartesian operations.
const isometryTol = 1e-9

// MaxShapes caps the number of images Tile will produce.
const MaxShapes = 1 << 20

// CheckCells reports whether an nx × ny block stays within MaxShapes
// cells. Both counts must be at least one.
func CheckCells(nx, ny int) error {
	if nx < 1 || ny < 1 {
		return fmt.Errorf("tile %dx%d: need at least one cell in each direction", nx, ny)
	}
	if nx > MaxShapes/ny {
		return fmt.Errorf("tile %dx%d: %w (%d)", nx, ny, ErrTooManyShapes, MaxShapes)
	}
	return nil
}

// CartesianOps converts every operation of g to Cartesian coordinates on l.
// It fails if any operation does not preserve distances on l.
func (g Group) CartesianOps(l Lattice) ([]geometry.Transform, error) {
	out := make([]geometry.Transform, len(g.Ops))
	for i, op := range g.Ops {
		cart, err := l.Cartesian(op.Frac)
		if err != nil {
			return nil, err
		}
		if !isIsometry(cart, isometryTol) {
			return nil, fmt.Errorf("%s op %q on %s lattice: %w", g.Name, op.Symbol, describe(l), ErrIncompatibleLattice)
		}
		out[i] = cart
	}
	return out, nil
}

// Orbit returns one image of shape per operation of g, in table order.
// The first image equals shape.
func Orbit(shape geometry.Shape, g Group, l Lattice) ([]geometry.Shape, error) {
	ops, err := g.CartesianOps(l)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Shape, 0, len(ops))
	for i, t := range ops {
		img, err := shape.Affine(t)
		if err != nil {
			return nil, fmt.Errorf("%s op %q: %w", g.Name, g.Ops[i].Symbol, err)
		}
		out = append(out, img)
	}
	return out, nil
}

// Tile repeats the orbit of shape over an nx × ny block of cells.
// Cells are visited row by row; within a cell images keep table order.
// It fails with ErrTooManyShapes rather than produce more than MaxShapes
// images.
func Tile(shape geometry.Shape, g Group, l Lattice, nx, ny int) ([]geometry.Shape, error) {
	if err := CheckCells(nx, ny); err != nil {
		return nil, err
	}
	orbit, err := Orbit(shape, g, l)
	if err != nil {
		return nil, err
	}
	cells := nx * ny
	if cells > MaxShapes/len(orbit) {
		return nil, fmt.Errorf("tile %dx%d of %s: %w (%d)", nx, ny, g.Name, ErrTooManyShapes, MaxShapes)
	}

	out := make([]geometry.Shape, 0, cells*len(orbit))
	for m := 0; m < ny; m++ {
		for n := 0; n < nx; n++ {
			shift := l.Translate(n, m)
			for _, img := range orbit {
				moved, err := img.Affine(shift)
				if err != nil {
					return nil, err
				}
				out = append(out, moved)
			}
		}
	}
	return out, nil
}

func describe(l Lattice) string {
	g := l.MetricTensor()
	return fmt.Sprintf("|a|²=%g |b|²=%g a·b=%g", g.At(0, 0), g.At(1, 1), g.At(0, 1))
}
