package main

import (
	"errors"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"github.com/alacrity-engine/asepack/timeline"
	"gopkg.in/yaml.v2"
)

// InspectReport is what the inspect command prints.
type InspectReport struct {
	Origin    slicing.Origin    `yaml:"origin"`
	Pivot     sheet.Pivot       `yaml:"pivot"`
	Slices    []slicing.Slice   `yaml:"slices"`
	Timelines []InspectTimeline `yaml:"timelines"`
}

// InspectTimeline is a timeline with
// keyframes referring to slice names.
type InspectTimeline struct {
	Tag       string            `yaml:"tag"`
	Keyframes []InspectKeyframe `yaml:"keyframes"`
}

// InspectKeyframe is one keyframe of an InspectTimeline.
type InspectKeyframe struct {
	TimeMs int    `yaml:"timeMs"`
	Slice  string `yaml:"slice"`
}

// Inspect runs the slicing and timeline steps without a store,
// matching the timelines against the computed slice names, and
// encodes the result as YAML.
func Inspect(doc *sheet.Document, pivot sheet.Pivot, origin slicing.Origin, order timeline.Order) ([]byte, error) {
	slices, err := slicing.Computer{Origin: origin}.Slices(doc.Meta.Size,
		doc.Frames, doc.Meta.FrameTags, pivot)

	if err != nil {
		return nil, err
	}

	report := InspectReport{
		Origin: origin,
		Pivot:  pivot,
		Slices: slices,
	}

	// One handle per name, as a store keyed by name would return.
	handles := []timeline.Name{}
	seen := map[string]bool{}

	for _, slice := range slices {
		if !seen[slice.Name] {
			handles = append(handles, timeline.Name(slice.Name))
			seen[slice.Name] = true
		}
	}

	timelines, err := timeline.Build(doc.Frames, doc.Meta.FrameTags, handles, order)

	if err != nil && !errors.Is(err, sheet.ErrEmptyTagSet) {
		return nil, err
	}

	for _, tl := range timelines {
		it := InspectTimeline{Tag: tl.Tag.Name}

		for _, kf := range tl.Keyframes {
			it.Keyframes = append(it.Keyframes, InspectKeyframe{
				TimeMs: kf.TimestampMs,
				Slice:  kf.Handle.SliceName(),
			})
		}

		report.Timelines = append(report.Timelines, it)
	}

	return yaml.Marshal(report)
}
