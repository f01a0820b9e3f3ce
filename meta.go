package main

import (
	"fmt"
	"path/filepath"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"gopkg.in/yaml.v2"
)

// ImportMeta is a texture import
// read from the YAML manifest.
type ImportMeta struct {
	// Asset is the path the texture is stored
	// under, the texture path as written by default.
	Asset     string `yaml:"asset"`
	Texture   string `yaml:"texture"`
	Sheet     string `yaml:"sheet"`
	Pivot     []int  `yaml:"pivot"`
	FramesDir string `yaml:"framesDir"`
}

// Manifest is the batch description of imports
// sharing one resource file.
type Manifest struct {
	Out          string       `yaml:"out"`
	Origin       string       `yaml:"origin"`
	NumericOrder bool         `yaml:"numericOrder"`
	Imports      []ImportMeta `yaml:"imports"`
}

// DefaultManifest returns the values used
// for keys the manifest leaves out.
func DefaultManifest() Manifest {
	return Manifest{
		Out:    "./stage.res",
		Origin: string(slicing.OriginBottomLeft),
	}
}

// ReadManifest decodes and checks a manifest.
func ReadManifest(contents []byte) (*Manifest, error) {
	manifest := DefaultManifest()

	if err := yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	if _, ok := slicing.ParseOrigin(manifest.Origin); !ok {
		return nil, fmt.Errorf("manifest: unknown origin '%s'", manifest.Origin)
	}

	for i, meta := range manifest.Imports {
		if meta.Texture == "" || meta.Sheet == "" {
			return nil, fmt.Errorf("manifest: import %d needs both texture and sheet", i)
		}

		if len(meta.Pivot) != 0 && len(meta.Pivot) != 2 {
			return nil, fmt.Errorf("manifest: import '%s': pivot must be [x, y]", meta.Texture)
		}
	}

	return &manifest, nil
}

// Resolve makes the file paths of the manifest
// relative to the directory it was read from.
func (m *Manifest) Resolve(dir string) {
	m.Out = resolvePath(dir, m.Out)

	for i := range m.Imports {
		if m.Imports[i].Asset == "" {
			m.Imports[i].Asset = filepath.ToSlash(m.Imports[i].Texture)
		}

		m.Imports[i].Texture = resolvePath(dir, m.Imports[i].Texture)
		m.Imports[i].Sheet = resolvePath(dir, m.Imports[i].Sheet)

		if m.Imports[i].FramesDir != "" {
			m.Imports[i].FramesDir = resolvePath(dir, m.Imports[i].FramesDir)
		}
	}
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// PivotFor returns the pivot of the import, the bottom
// centre of the first frame when none is given.
func (meta ImportMeta) PivotFor(doc *sheet.Document) (sheet.Pivot, error) {
	if len(meta.Pivot) == 2 {
		return sheet.Pivot{X: meta.Pivot[0], Y: meta.Pivot[1]}, nil
	}

	return sheet.DefaultPivot(doc.Frames)
}

// Files returns the files the manifest imports read.
func (m *Manifest) Files() []string {
	files := make([]string, 0, 2*len(m.Imports))

	for _, meta := range m.Imports {
		files = append(files, meta.Sheet, meta.Texture)
	}

	return files
}

// Affected returns the imports reading the file.
func (m *Manifest) Affected(file string) []ImportMeta {
	affected := []ImportMeta{}

	for _, meta := range m.Imports {
		if samePath(meta.Sheet, file) || samePath(meta.Texture, file) {
			affected = append(affected, meta)
		}
	}

	return affected
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}
