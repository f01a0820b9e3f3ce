// Package timeline turns frame tags into keyframe timelines
// and matches them with the sprites the slicing step produced.
package timeline

import (
	"sort"
	"strings"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
)

// Handle is a materialized sprite addressed by its slice name.
type Handle interface {
	SliceName() string
}

// Name is a Handle carrying nothing but the slice name.
type Name string

// SliceName implements Handle.
func (n Name) SliceName() string { return string(n) }

// Order selects how sprites of one tag are sorted by name.
type Order int

const (
	// SortLexical compares whole names as strings, so Run__10
	// sorts before Run__2. Tags of up to 9 frames come out right.
	SortLexical Order = iota
	// SortNumeric compares the parsed frame positions.
	SortNumeric
)

// Reconcile orders the handles tag by tag, in tag declaration order,
// sorting the handles of each tag by name. A tag takes the handles
// named "<tag>__1" through "<tag>__<count>"; higher positions belong
// to a longer tag of the same name and are left out. It fails with
// sheet.ErrNameMismatch unless every expected slice name is held by
// exactly one handle.
func Reconcile[H Handle](handles []H, tags []sheet.Tag, order Order) ([]H, error) {
	if len(tags) == 0 {
		return nil, sheet.ErrEmptyTagSet
	}

	ordered := make([]H, 0, len(handles))

	for _, tag := range tags {
		subset := selectTag(handles, tag)
		sortHandles(subset, order)

		if err := checkNames(subset, tag); err != nil {
			return nil, err
		}

		ordered = append(ordered, subset...)
	}

	return ordered, nil
}

// selectTag picks the handles named "<tag>__<k>" with k in 1..count.
func selectTag[H Handle](handles []H, tag sheet.Tag) []H {
	prefix := tag.Name + slicing.NameSeparator
	count := tag.Count()
	subset := []H{}

	for _, h := range handles {
		name := h.SliceName()

		if !strings.HasPrefix(name, prefix) {
			continue
		}

		key, ok := slicing.ParseSliceName(name)

		if !ok || key.Tag != tag.Name {
			continue
		}

		if key.Index < 1 || key.Index > count {
			continue
		}

		subset = append(subset, h)
	}

	return subset
}

func sortHandles[H Handle](handles []H, order Order) {
	if order == SortNumeric {
		sort.SliceStable(handles, func(i, j int) bool {
			ki, _ := slicing.ParseSliceName(handles[i].SliceName())
			kj, _ := slicing.ParseSliceName(handles[j].SliceName())

			return ki.Index < kj.Index
		})

		return
	}

	sort.SliceStable(handles, func(i, j int) bool {
		return handles[i].SliceName() < handles[j].SliceName()
	})
}

func checkNames[H Handle](subset []H, tag sheet.Tag) error {
	seen := make(map[string]int, len(subset))

	for _, h := range subset {
		seen[h.SliceName()]++
	}

	for i := 1; i <= tag.Count(); i++ {
		name := slicing.SliceName(tag.Name, i)

		switch seen[name] {
		case 0:
			return sheet.Errorf(sheet.ErrNameMismatch,
				"no sprite named '%s'", name)

		case 1:

		default:
			return sheet.Errorf(sheet.ErrNameMismatch,
				"%d sprites named '%s'", seen[name], name)
		}
	}

	return nil
}

// Offset returns where the handles of tags[position] start in the
// reconciled sequence and how many there are.
func Offset(tags []sheet.Tag, position int) (offset, count int) {
	for _, tag := range tags[:position] {
		offset += tag.Count()
	}

	return offset, tags[position].Count()
}
