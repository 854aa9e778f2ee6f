// Package symmetry holds the general positions of the 17 plane groups and
// expands a motif shape into its symmetry images on a lattice.
package symmetry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"plane-motif/pkg/geometry"
)

var (
	// ErrUnknownGroup is returned by Lookup for names not in the table.
	ErrUnknownGroup = errors.New("unknown plane group")

	// ErrBadSymbol is returned for unparseable coordinate triplets.
	ErrBadSymbol = errors.New("bad operation symbol")

	// ErrIncompatibleLattice is returned when an operation is not an
	// isometry on the chosen lattice, e.g. p4 on a rectangular lattice.
	ErrIncompatibleLattice = errors.New("operation is not an isometry of the lattice")

	// ErrTooManyShapes is returned by Tile when the tiling would produce
	// more than MaxShapes images.
	ErrTooManyShapes = errors.New("tiling exceeds shape limit")
)

// System is the lattice family a plane group needs.
type System string

const (
	SystemOblique     System = "oblique"
	SystemRectangular System = "rectangular"
	SystemSquare      System = "square"
	SystemHexagonal   System = "hexagonal"
)

// Operation is one symmetry operation in fractional coordinates.
type Operation struct {
	Symbol string
	Frac   geometry.Transform
}

// Group is a plane group's general position: one operation per image of
// the motif inside a conventional cell. Ops[0] is always the identity.
type Group struct {
	Name   string
	System System
	Ops    []Operation
}

var (
	p3Ops = []string{"x,y", "-y,x-y", "-x+y,-x"}
	p4Ops = []string{"x,y", "-x,-y", "-y,x", "y,-x"}
	p6Ops = append(append([]string{}, p3Ops...), "-x,-y", "y,-x+y", "x-y,x")
)

var table = map[string]struct {
	system System
	ops    []string
}{
	"p1":   {SystemOblique, []string{"x,y"}},
	"p2":   {SystemOblique, []string{"x,y", "-x,-y"}},
	"pm":   {SystemRectangular, []string{"x,y", "-x,y"}},
	"pg":   {SystemRectangular, []string{"x,y", "-x,y+1/2"}},
	"cm":   {SystemRectangular, []string{"x,y", "-x,y", "x+1/2,y+1/2", "-x+1/2,y+1/2"}},
	"pmm":  {SystemRectangular, []string{"x,y", "-x,-y", "-x,y", "x,-y"}},
	"pmg":  {SystemRectangular, []string{"x,y", "-x,-y", "-x+1/2,y", "x+1/2,-y"}},
	"pgg":  {SystemRectangular, []string{"x,y", "-x,-y", "-x+1/2,y+1/2", "x+1/2,-y+1/2"}},
	"cmm":  {SystemRectangular, []string{"x,y", "-x,-y", "-x,y", "x,-y", "x+1/2,y+1/2", "-x+1/2,-y+1/2", "-x+1/2,y+1/2", "x+1/2,-y+1/2"}},
	"p4":   {SystemSquare, p4Ops},
	"p4m":  {SystemSquare, append(append([]string{}, p4Ops...), "-x,y", "x,-y", "y,x", "-y,-x")},
	"p4g":  {SystemSquare, append(append([]string{}, p4Ops...), "-x+1/2,y+1/2", "x+1/2,-y+1/2", "y+1/2,x+1/2", "-y+1/2,-x+1/2")},
	"p3":   {SystemHexagonal, p3Ops},
	"p3m1": {SystemHexagonal, append(append([]string{}, p3Ops...), "-y,-x", "-x+y,y", "x,x-y")},
	"p31m": {SystemHexagonal, append(append([]string{}, p3Ops...), "y,x", "x-y,-y", "-x,-x+y")},
	"p6":   {SystemHexagonal, p6Ops},
	"p6m":  {SystemHexagonal, append(append([]string{}, p6Ops...), "-y,-x", "-x+y,y", "x,x-y", "y,x", "x-y,-y", "-x,-x+y")},
}

// Lookup returns the named plane group.
func Lookup(name string) (Group, error) {
	entry, ok := table[name]
	if !ok {
		return Group{}, fmt.Errorf("%w %q", ErrUnknownGroup, name)
	}
	g := Group{Name: name, System: entry.system, Ops: make([]Operation, len(entry.ops))}
	for i, sym := range entry.ops {
		frac, err := ParseSymbol(sym)
		if err != nil {
			return Group{}, fmt.Errorf("group %s: %w", name, err)
		}
		g.Ops[i] = Operation{Symbol: sym, Frac: frac}
	}
	return g, nil
}

// Names returns the known group names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultLattice returns a lattice of the group's system with side a.
// Rectangular groups get a 1:1 cell and oblique groups a 75° angle.
func (g Group) DefaultLattice(a float64) Lattice {
	switch g.System {
	case SystemSquare, SystemRectangular:
		return Square(a)
	case SystemHexagonal:
		return Hexagonal(a)
	default:
		return Oblique(a, a, 75*math.Pi/180)
	}
}
