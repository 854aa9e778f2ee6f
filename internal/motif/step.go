package motif

import (
	"fmt"
	"math"

	"plane-motif/pkg/geometry"
)

// Step operations.
const (
	OpTranslate = "translate"
	OpRotate    = "rotate"
	OpReflectX  = "reflect-x"
	OpReflectY  = "reflect-y"
	OpScale     = "scale"
	OpMatrix    = "matrix"
)

// AboutBounds turns a rotate step about the centre of the motif's
// bounding box, as moved by the steps before it.
const AboutBounds = "bounds"

// Step is one transform applied to the motif.
//
// translate and scale read X and Y. rotate reads Angle (radians) or, if
// Angle is zero, Degrees, and turns about Center or, with About set to
// AboutBounds, the bounds centre. matrix reads three rows of three values.
type Step struct {
	Op      string      `json:"op" yaml:"op"`
	X       float64     `json:"x,omitempty" yaml:"x,omitempty"`
	Y       float64     `json:"y,omitempty" yaml:"y,omitempty"`
	Angle   float64     `json:"angle,omitempty" yaml:"angle,omitempty"`
	Degrees float64     `json:"degrees,omitempty" yaml:"degrees,omitempty"`
	Center  *[2]float64 `json:"center,omitempty" yaml:"center,omitempty"`
	About   string      `json:"about,omitempty" yaml:"about,omitempty"`
	Matrix  [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`
}

// Transform returns the step as an affine transform. Steps that depend on
// the motif's position need TransformOn.
func (s Step) Transform() (geometry.Transform, error) {
	return s.TransformOn(geometry.Shape{})
}

// TransformOn returns the step as an affine transform acting on shape.
func (s Step) TransformOn(shape geometry.Shape) (geometry.Transform, error) {
	switch s.Op {
	case OpTranslate:
		return geometry.Translation(s.X, s.Y), nil
	case OpRotate:
		theta := s.Angle
		if theta == 0 {
			theta = s.Degrees * math.Pi / 180
		}
		switch {
		case s.About == AboutBounds && s.Center != nil:
			return geometry.Transform{}, fmt.Errorf("rotate: center and about %q are exclusive", s.About)
		case s.About == AboutBounds:
			if shape.Len() == 0 {
				return geometry.Transform{}, fmt.Errorf("rotate about %s: %w", s.About, geometry.ErrEmptyShape)
			}
			return geometry.RotationAbout(theta, shape.Bounds().Center()), nil
		case s.About != "":
			return geometry.Transform{}, fmt.Errorf("rotate: unknown about %q", s.About)
		case s.Center != nil:
			return geometry.RotationAbout(theta, geometry.NewPoint(s.Center[0], s.Center[1])), nil
		}
		return geometry.Rotation(theta), nil
	case OpReflectX:
		return geometry.ReflectionAboutX(), nil
	case OpReflectY:
		return geometry.ReflectionAboutY(), nil
	case OpScale:
		return geometry.Scale(s.X, s.Y), nil
	case OpMatrix:
		return geometry.NewTransform(s.Matrix)
	default:
		return geometry.Transform{}, fmt.Errorf("unknown step op %q", s.Op)
	}
}

// Combined composes steps in order into a single transform. Each step sees
// shape as moved by the steps before it.
func Combined(shape geometry.Shape, steps []Step) (geometry.Transform, error) {
	ts := make([]geometry.Transform, len(steps))
	for i, s := range steps {
		t, err := s.TransformOn(shape)
		if err != nil {
			return geometry.Transform{}, fmt.Errorf("step %d: %w", i, err)
		}
		ts[i] = t
		if shape.Len() > 0 {
			if shape, err = shape.Affine(t); err != nil {
				return geometry.Transform{}, fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return geometry.Chain(ts...), nil
}
