// Command planegroup expands a motif file by its plane group and prints
// the resulting polygons as JSON.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"plane-motif/internal/motif"
	"plane-motif/internal/version"
	"plane-motif/pkg/geometry"
	"plane-motif/pkg/symmetry"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// output is the JSON document written to stdout.
type output struct {
	Name      string         `json:"name"`
	Group     string         `json:"group"`
	Transform [][]float64    `json:"transform"`
	Bounds    geometry.Rect  `json:"bounds"`
	Polygons  [][][2]float64 `json:"polygons"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planegroup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("f", "", "Path to motif file (.yaml or .json)")
	group := fs.String("group", "", "Override the plane group")
	tile := fs.String("tile", "", "Override the tiling, e.g. 3x2")
	list := fs.Bool("list", false, "List known plane groups")
	verbose := fs.Bool("v", false, "Debug logging")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}
	if *list {
		for _, name := range symmetry.Names() {
			g, err := symmetry.Lookup(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(stdout, "%-5s %-12s %2d ops\n", g.Name, g.System, len(g.Ops))
		}
		return 0
	}
	if *file == "" {
		fmt.Fprintln(stderr, "Usage: planegroup -f <motif.yaml> [-group p4] [-tile 3x2] [-v]")
		return 1
	}

	logger := newLogger(stderr, *verbose)
	defer func() { _ = logger.Sync() }()

	if err := expand(logger, stdout, *file, *group, *tile); err != nil {
		logger.Error("expand failed", zap.String("file", *file), zap.Error(err))
		return 1
	}
	return 0
}

func expand(logger *zap.Logger, stdout io.Writer, path, group, tile string) error {
	f, err := motif.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded motif",
		zap.String("name", f.Name),
		zap.Int("points", len(f.Points)),
		zap.Int("steps", len(f.Steps)))

	if group != "" {
		f.Group = group
	}
	if tile != "" {
		nx, ny, err := parseTile(tile)
		if err != nil {
			return fmt.Errorf("bad -tile %q: %w", tile, err)
		}
		f.Tile.NX, f.Tile.NY = nx, ny
	}

	res, err := f.Evaluate()
	if err != nil {
		return err
	}
	logger.Info("expanded motif",
		zap.String("name", res.Name),
		zap.String("group", res.Group),
		zap.Int("shapes", len(res.Shapes)),
		zap.Stringer("transform", res.Transform))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Name:      res.Name,
		Group:     res.Group,
		Transform: res.Transform.Rows(),
		Bounds:    res.Bounds(),
		Polygons:  res.Polygons(),
	})
}

// parseTile reads "NxM" with both counts positive.
func parseTile(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errors.New("want NxM")
	}
	nx, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, err
	}
	ny, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, err
	}
	if nx < 1 || ny < 1 {
		return 0, 0, errors.New("counts must be positive")
	}
	return nx, ny, nil
}

// newLogger builds a JSON logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
