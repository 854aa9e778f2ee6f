// Package motif provides motif description files: the points of a motif,
// the transforms applied to it and the plane group used to repeat it.
package motif

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCleanup is the tolerance below which output coordinates snap to 0.
	DefaultCleanup = 1e-9

	// DefaultCell is the cell side used when a file gives none.
	DefaultCell = 100.0
)

// File is a motif description (.yaml, .yml or .json).
type File struct {
	Version  int       `json:"version" yaml:"version"`
	Name     string    `json:"name" yaml:"name"`
	Created  time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`

	// Motif vertices, in order.
	Points [][2]float64 `json:"points" yaml:"points"`

	// Applied to the motif in order before the group expands it.
	Steps []Step `json:"steps,omitempty" yaml:"steps,omitempty"`

	Group   string      `json:"group,omitempty" yaml:"group,omitempty"`
	Lattice LatticeSpec `json:"lattice,omitempty" yaml:"lattice,omitempty"`
	Tile    TileSpec    `json:"tile,omitempty" yaml:"tile,omitempty"`

	// Coordinates with magnitude below this are written as 0.
	Cleanup float64 `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`
}

// LatticeSpec selects the lattice the group acts on. An empty Kind picks
// the group's own lattice family.
type LatticeSpec struct {
	Kind  string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	A     float64 `json:"a,omitempty" yaml:"a,omitempty"`
	B     float64 `json:"b,omitempty" yaml:"b,omitempty"`
	Gamma float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"` // degrees
}

// TileSpec is the number of cells along each basis vector.
type TileSpec struct {
	NX int `json:"nx,omitempty" yaml:"nx,omitempty"`
	NY int `json:"ny,omitempty" yaml:"ny,omitempty"`
}

// New creates a motif file with default settings.
func New(name string, points [][2]float64) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Points:   points,
		Group:    "p1",
		Lattice:  LatticeSpec{A: DefaultCell},
		Tile:     TileSpec{NX: 1, NY: 1},
		Cleanup:  DefaultCleanup,
	}
}

// Load loads a motif from a file. JSON is used for .json files and YAML
// for everything else.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isJSON(path) {
		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &f, nil
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML motif.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the motif to a file in the format implied by its extension.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
