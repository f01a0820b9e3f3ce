// Package slicing derives named sprite slices and their
// pivots from a parsed sheet description.
package slicing

import (
	"strconv"
	"strings"

	"github.com/alacrity-engine/asepack/sheet"
)

// Origin is the corner the target slicing
// convention measures rectangles from.
type Origin string

const (
	// OriginBottomLeft measures y upward from the bottom edge.
	OriginBottomLeft Origin = "bottom-left"
	// OriginTopLeft measures y downward from the top edge,
	// the convention of the sheet description itself.
	OriginTopLeft Origin = "top-left"
)

// ParseOrigin converts a flag or manifest value to an Origin.
// An empty string selects OriginBottomLeft.
func ParseOrigin(s string) (Origin, bool) {
	switch Origin(s) {
	case "", OriginBottomLeft:
		return OriginBottomLeft, true
	case OriginTopLeft:
		return OriginTopLeft, true
	}

	return "", false
}

// NameSeparator joins a tag name and the 1-based frame position.
const NameSeparator = "__"

// Key identifies a slice by its tag and 1-based position in it.
type Key struct {
	Tag   string `yaml:"tag"`
	Index int    `yaml:"index"`
}

// Name formats the key as a slice name.
func (k Key) Name() string {
	return SliceName(k.Tag, k.Index)
}

// SliceName returns the name of the index-th (1-based) slice of the tag.
func SliceName(tag string, index int) string {
	return tag + NameSeparator + strconv.Itoa(index)
}

// ParseSliceName splits a slice name into its key. The
// separator is searched from the end, so tag names may
// contain it too.
func ParseSliceName(name string) (Key, bool) {
	i := strings.LastIndex(name, NameSeparator)

	if i < 0 {
		return Key{}, false
	}

	suffix := name[i+len(NameSeparator):]

	if !isDigits(suffix) {
		return Key{}, false
	}

	index, err := strconv.Atoi(suffix)

	if err != nil {
		return Key{}, false
	}

	return Key{Tag: name[:i], Index: index}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// UV is a pivot normalized to the slice size.
// Components fall outside of [0, 1] when the
// pivot lies outside of the slice.
type UV struct {
	U float64 `yaml:"u"`
	V float64 `yaml:"v"`
}

// Slice is a named rectangle of the source image.
type Slice struct {
	Name  string     `yaml:"name"`
	Key   Key        `yaml:"key"`
	Rect  sheet.Rect `yaml:"rect"`
	Pivot UV         `yaml:"pivot"`
}
