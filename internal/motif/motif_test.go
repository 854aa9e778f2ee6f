package motif

import (
	"math"
	"path/filepath"
	"testing"

	"plane-motif/pkg/geometry"
	"plane-motif/pkg/symmetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notebook = `
version: 1
name: notebook triangle
points:
  - [70, 10]
  - [100, 10]
  - [70, 50]
steps:
  - op: rotate
    degrees: 90
group: p4
lattice:
  kind: square
  a: 200
tile:
  nx: 2
  ny: 1
cleanup: 1e-5
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(notebook))
	require.NoError(t, err)

	assert.Equal(t, "notebook triangle", f.Name)
	assert.Equal(t, [][2]float64{{70, 10}, {100, 10}, {70, 50}}, f.Points)
	require.Len(t, f.Steps, 1)
	assert.Equal(t, Step{Op: OpRotate, Degrees: 90}, f.Steps[0])
	assert.Equal(t, LatticeSpec{Kind: KindSquare, A: 200}, f.Lattice)
	assert.Equal(t, TileSpec{NX: 2, NY: 1}, f.Tile)
	assert.Equal(t, 1e-5, f.Cleanup)
	require.NoError(t, f.Validate())
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("points: [[1, 2, 3]]"))
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	f, err := Parse([]byte(notebook))
	require.NoError(t, err)

	res, err := f.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "p4", res.Group)
	require.Len(t, res.Shapes, 2*4)

	// The combined step matrix is cleaned, so the quarter turn is exact.
	want, err := geometry.NewTransform([][]float64{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, want, res.Transform)

	polys := res.Polygons()
	require.Len(t, polys, 8)
	first, err := geometry.ShapeFromPairs(polys[0])
	require.NoError(t, err)
	rotated, err := geometry.ShapeFromPairs([][2]float64{{-10, 70}, {-10, 100}, {-50, 70}})
	require.NoError(t, err)
	assert.True(t, first.Equal(rotated, 1e-9), "got %v", first)

	// Second cell, first image: shifted by one lattice vector.
	shifted, err := rotated.Affine(geometry.Translation(200, 0))
	require.NoError(t, err)
	assert.True(t, res.Shapes[4].Equal(shifted, 1e-9), "got %v", res.Shapes[4])
}

func TestEvaluate_Defaults(t *testing.T) {
	f := &File{Points: [][2]float64{{1, 1}, {2, 1}, {1, 3}}}

	res, err := f.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "p1", res.Group)
	require.Len(t, res.Shapes, 1)
	assert.True(t, res.Transform.IsIdentity())

	src, err := geometry.ShapeFromPairs(f.Points)
	require.NoError(t, err)
	assert.True(t, res.Shapes[0].Equal(src, 1e-9))
}

func TestEvaluate_IncompatibleLattice(t *testing.T) {
	f := New("bad", [][2]float64{{1, 1}, {2, 1}, {1, 3}})
	f.Group = "p6"
	f.Lattice = LatticeSpec{Kind: KindSquare, A: 10}

	_, err := f.Evaluate()
	require.ErrorIs(t, err, symmetry.ErrIncompatibleLattice)
}

func TestValidate_CollectsEverything(t *testing.T) {
	f := &File{
		Group:   "p7",
		Lattice: LatticeSpec{Kind: "triangle", A: -1},
		Tile:    TileSpec{NX: -1},
		Cleanup: -1,
		Steps: []Step{
			{Op: OpTranslate, X: 1},
			{Op: "shear"},
			{Op: OpMatrix, Matrix: [][]float64{{1, 0, 0}, {0, 1, 0}, {1, 0, 1}}},
		},
	}

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, geometry.ErrEmptyShape)
	assert.ErrorIs(t, err, symmetry.ErrUnknownGroup)
	assert.ErrorContains(t, err, `unknown lattice kind "triangle"`)
	assert.ErrorContains(t, err, "lattice sides must not be negative")
	assert.ErrorContains(t, err, "tile -1x0")
	assert.ErrorContains(t, err, "cleanup tolerance")
	assert.ErrorContains(t, err, `step 1: unknown step op "shear"`)

	_, err = f.Evaluate()
	require.Error(t, err)
}

func TestStep_Transform(t *testing.T) {
	center := [2]float64{1, 1}
	tests := []struct {
		name string
		step Step
		want geometry.Transform
	}{
		{"translate", Step{Op: OpTranslate, X: 3, Y: -2}, geometry.Translation(3, -2)},
		{"rotate radians", Step{Op: OpRotate, Angle: 0.5}, geometry.Rotation(0.5)},
		{"rotate degrees", Step{Op: OpRotate, Degrees: 180}, geometry.Rotation(math.Pi)},
		{"rotate about", Step{Op: OpRotate, Degrees: 90, Center: &center}, geometry.RotationAbout(math.Pi/2, geometry.NewPoint(1, 1))},
		{"reflect x", Step{Op: OpReflectX}, geometry.ReflectionAboutX()},
		{"reflect y", Step{Op: OpReflectY}, geometry.ReflectionAboutY()},
		{"scale", Step{Op: OpScale, X: 2, Y: 3}, geometry.Scale(2, 3)},
		{"matrix", Step{Op: OpMatrix, Matrix: [][]float64{{0, 1, 5}, {1, 0, 0}, {0, 0, 1}}},
			geometry.Chain(geometry.ReflectionAboutX(), geometry.Rotation(math.Pi/2), geometry.Translation(5, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.step.Transform()
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want, 1e-12), "got\n%v", got)
		})
	}

	_, err := Step{Op: OpMatrix, Matrix: [][]float64{{1, 0}}}.Transform()
	require.ErrorIs(t, err, geometry.ErrMalformedTransform)
}

func TestCombined_Order(t *testing.T) {
	got, err := Combined(geometry.Shape{}, []Step{
		{Op: OpTranslate, X: 1},
		{Op: OpRotate, Degrees: 90},
	})
	require.NoError(t, err)
	p := got.Apply(geometry.NewPoint(1, 0))
	assert.True(t, p.Equal(geometry.NewPoint(0, 2), 1e-12), "got %v", p)
}

func TestCombined_AboutBounds(t *testing.T) {
	tri, err := geometry.ShapeFromPairs([][2]float64{{70, 10}, {100, 10}, {70, 50}})
	require.NoError(t, err)

	t.Run("half turn keeps the box", func(t *testing.T) {
		got, err := Combined(tri, []Step{{Op: OpRotate, Degrees: 180, About: AboutBounds}})
		require.NoError(t, err)
		moved, err := tri.Affine(got)
		require.NoError(t, err)
		want, err := geometry.ShapeFromPairs([][2]float64{{100, 50}, {70, 50}, {100, 10}})
		require.NoError(t, err)
		assert.True(t, moved.Equal(want, 1e-9), "got %v", moved)
	})

	t.Run("sees earlier steps", func(t *testing.T) {
		got, err := Combined(tri, []Step{
			{Op: OpTranslate, X: 10},
			{Op: OpRotate, Degrees: 90, About: AboutBounds},
		})
		require.NoError(t, err)
		want := geometry.Chain(geometry.Translation(10, 0), geometry.RotationAbout(math.Pi/2, geometry.NewPoint(95, 30)))
		assert.True(t, got.Equal(want, 1e-9), "got\n%v", got)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Combined(geometry.Shape{}, []Step{{Op: OpRotate, Degrees: 90, About: AboutBounds}})
		require.ErrorIs(t, err, geometry.ErrEmptyShape)

		center := [2]float64{1, 1}
		_, err = Combined(tri, []Step{{Op: OpRotate, About: AboutBounds, Center: &center}})
		require.ErrorContains(t, err, "exclusive")

		_, err = Combined(tri, []Step{{Op: OpRotate, About: "centroid"}})
		require.ErrorContains(t, err, `unknown about "centroid"`)
	})
}

func TestValidate_TileLimit(t *testing.T) {
	f := New("huge", [][2]float64{{1, 1}, {2, 1}, {1, 3}})
	f.Tile = TileSpec{NX: 3037000500, NY: 3037000500}

	require.ErrorIs(t, f.Validate(), symmetry.ErrTooManyShapes)
	require.NotPanics(t, func() {
		_, err := f.Evaluate()
		require.ErrorIs(t, err, symmetry.ErrTooManyShapes)
	})

	f.Tile = TileSpec{NX: 1024, NY: 1024}
	require.NoError(t, f.Validate())
}

func TestValidate_LatticeParams(t *testing.T) {
	tests := []struct {
		name    string
		lattice LatticeSpec
		want    string
	}{
		{"square b", LatticeSpec{Kind: KindSquare, A: 10, B: 20}, "square lattice has equal sides, got a 10 and b 20"},
		{"hexagonal gamma", LatticeSpec{Kind: KindHexagonal, A: 10, Gamma: 60}, "hexagonal lattice fixes its angle, got gamma 60"},
		{"default b", LatticeSpec{B: 5}, "default lattice has equal sides, got a 100 and b 5"},
		{"rectangular gamma", LatticeSpec{Kind: KindRectangular, A: 10, B: 5, Gamma: 80}, "rectangular lattice angle is 90 degrees"},
		{"oblique gamma", LatticeSpec{Kind: KindOblique, A: 10, B: 5, Gamma: 180}, "must be in (0, 180) degrees"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New("lattice", [][2]float64{{1, 1}})
			f.Lattice = tt.lattice
			require.ErrorContains(t, f.Validate(), tt.want)
		})
	}

	for _, ok := range []LatticeSpec{
		{Kind: KindSquare, A: 10, B: 10},
		{Kind: KindRectangular, A: 10, B: 5, Gamma: 90},
		{Kind: KindOblique, A: 10, B: 5, Gamma: 75},
	} {
		f := New("lattice", [][2]float64{{1, 1}})
		f.Lattice = ok
		assert.NoError(t, f.Validate(), "%+v", ok)
	}
}

func TestResult_Bounds(t *testing.T) {
	f, err := Parse([]byte(notebook))
	require.NoError(t, err)
	res, err := f.Evaluate()
	require.NoError(t, err)

	box := res.Bounds()
	for _, s := range res.Shapes {
		for _, p := range s.Vertices() {
			assert.True(t, box.Contains(p), "%v outside %+v", p, box)
		}
	}
	// p4 images around the origin plus one shift of 200 along x.
	assert.InDelta(t, -100, box.X, 1e-9)
	assert.InDelta(t, -100, box.Y, 1e-9)
	assert.InDelta(t, 400, box.Width, 1e-9)
	assert.InDelta(t, 200, box.Height, 1e-9)

	assert.Equal(t, geometry.Rect{}, (&Result{}).Bounds())
}

func TestSaveLoad(t *testing.T) {
	orig := New("round trip", [][2]float64{{0, 0}, {1, 0}, {0, 1}})
	orig.Group = "pmm"
	orig.Steps = []Step{{Op: OpScale, X: 2, Y: 2}}

	for _, name := range []string{"motif.yaml", "motif.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, orig.Save(path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, orig.Name, got.Name)
			assert.Equal(t, orig.Points, got.Points)
			assert.Equal(t, orig.Steps, got.Steps)
			assert.Equal(t, orig.Group, got.Group)
			assert.Equal(t, orig.Tile, got.Tile)
			assert.True(t, orig.Modified.Equal(got.Modified))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
