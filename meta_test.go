package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alacrity-engine/asepack/sheet"
)

const manifestYAML = `
out: build/stage.res
numericOrder: true
imports:
  - texture: sprites/hero.png
    sheet: sprites/hero.json
    pivot: [8, 23]
    framesDir: build/frames/hero
  - texture: /abs/villain.png
    sheet: /abs/villain.json
`

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest([]byte(manifestYAML))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}

	if m.Origin != "bottom-left" {
		t.Fatalf("expected default origin, got %q", m.Origin)
	}
	if !m.NumericOrder {
		t.Fatal("expected numeric order")
	}
	if len(m.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(m.Imports))
	}

	m.Resolve("/work")

	if m.Out != filepath.Join("/work", "build/stage.res") {
		t.Fatalf("unexpected out: %s", m.Out)
	}
	if m.Imports[0].Sheet != filepath.Join("/work", "sprites/hero.json") {
		t.Fatalf("unexpected sheet: %s", m.Imports[0].Sheet)
	}
	if m.Imports[0].FramesDir != filepath.Join("/work", "build/frames/hero") {
		t.Fatalf("unexpected frames dir: %s", m.Imports[0].FramesDir)
	}
	if m.Imports[0].Asset != "sprites/hero.png" {
		t.Fatalf("expected the texture path as written, got %s", m.Imports[0].Asset)
	}
	if m.Imports[1].Texture != "/abs/villain.png" {
		t.Fatalf("absolute path changed: %s", m.Imports[1].Texture)
	}
	if m.Imports[1].FramesDir != "" {
		t.Fatalf("expected no frames dir, got %s", m.Imports[1].FramesDir)
	}
}

func TestReadManifest_Defaults(t *testing.T) {
	m, err := ReadManifest([]byte("imports: []\n"))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.Out != "./stage.res" || m.NumericOrder {
		t.Fatalf("unexpected defaults: %+v", m)
	}
}

func TestReadManifest_Invalid(t *testing.T) {
	cases := map[string]string{
		"origin":   "origin: centre\n",
		"no sheet": "imports:\n  - texture: a.png\n",
		"pivot":    "imports:\n  - texture: a.png\n    sheet: a.json\n    pivot: [1]\n",
		"not yaml": "imports: [\n",
	}

	for name, contents := range cases {
		if _, err := ReadManifest([]byte(contents)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestPivotFor(t *testing.T) {
	doc := &sheet.Document{Frames: []sheet.Frame{{Frame: sheet.Rect{W: 16, H: 24}}}}

	pivot, err := ImportMeta{Pivot: []int{3, 4}}.PivotFor(doc)
	if err != nil || pivot != (sheet.Pivot{X: 3, Y: 4}) {
		t.Fatalf("unexpected pivot %+v, %v", pivot, err)
	}

	pivot, err = ImportMeta{}.PivotFor(doc)
	if err != nil || pivot != (sheet.Pivot{X: 8, Y: 23}) {
		t.Fatalf("unexpected default pivot %+v, %v", pivot, err)
	}

	if _, err := (ImportMeta{}).PivotFor(&sheet.Document{}); !errors.Is(err, sheet.ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestManifest_Affected(t *testing.T) {
	m, err := ReadManifest([]byte(manifestYAML))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	m.Resolve("/work")

	if files := m.Files(); len(files) != 4 || files[2] != "/abs/villain.json" {
		t.Fatalf("unexpected files: %v", files)
	}

	tests := []struct {
		file string
		want []string
	}{
		{"/work/sprites/hero.json", []string{"sprites/hero.png"}},
		{"/work/sprites/../sprites/hero.png", []string{"sprites/hero.png"}},
		{"/abs/villain.png", []string{"/abs/villain.png"}},
		{"/work/other.json", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, meta := range m.Affected(tt.file) {
			got = append(got, meta.Asset)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Affected(%s): expected %v, got %v", tt.file, tt.want, got)
		}
	}
}
