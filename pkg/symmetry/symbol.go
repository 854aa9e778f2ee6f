package symmetry

import (
	"fmt"
	"strconv"
	"strings"

	"plane-motif/pkg/geometry"
)

// ParseSymbol converts a coordinate-triplet symbol such as "-y,x-y" or
// "-x+1/2,y+1/2" into a transform acting on fractional coordinates.
// Each of the two comma-separated expressions is a signed sum of x, y and
// rational constants.
func ParseSymbol(symbol string) (geometry.Transform, error) {
	parts := strings.Split(strings.ReplaceAll(symbol, " ", ""), ",")
	if len(parts) != 2 {
		return geometry.Transform{}, fmt.Errorf("%w %q: want two expressions, got %d", ErrBadSymbol, symbol, len(parts))
	}

	rows := [][]float64{nil, nil, {0, 0, 1}}
	for i, expr := range parts {
		row, err := parseExpr(expr)
		if err != nil {
			return geometry.Transform{}, fmt.Errorf("%w %q: %v", ErrBadSymbol, symbol, err)
		}
		rows[i] = row
	}
	return geometry.NewTransform(rows)
}

// parseExpr returns the row [cx cy c] for an expression like "-x+y+1/2".
func parseExpr(expr string) ([]float64, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}
	row := make([]float64, 3)
	for i := 0; i < len(expr); {
		sign := 1.0
		switch expr[i] {
		case '+':
			i++
		case '-':
			sign = -1
			i++
		default:
			if i > 0 {
				return nil, fmt.Errorf("missing operator before %q", expr[i:])
			}
		}
		if i >= len(expr) {
			return nil, fmt.Errorf("dangling sign in %q", expr)
		}

		switch c := expr[i]; {
		case c == 'x' || c == 'X':
			row[0] += sign
			i++
		case c == 'y' || c == 'Y':
			row[1] += sign
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.' || expr[j] == '/') {
				j++
			}
			v, err := parseRational(expr[i:j])
			if err != nil {
				return nil, err
			}
			row[2] += sign * v
			i = j
		default:
			return nil, fmt.Errorf("unexpected %q", c)
		}
	}
	return row, nil
}

func parseRational(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	if !ok {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("bad fraction %q", s)
	}
	return n / d, nil
}
