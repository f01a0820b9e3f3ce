package timeline

import (
	"github.com/alacrity-engine/asepack/sheet"
)

// Entry is one keyframe of a tag.
type Entry struct {
	Tag         string `yaml:"tag"`
	TimestampMs int    `yaml:"timestampMs"`
	LocalIndex  int    `yaml:"localIndex"`
}

// Keyframe pairs an entry with the sprite it shows.
type Keyframe[H Handle] struct {
	Entry
	Handle H
}

// Timeline is the ordered keyframe sequence of one tag.
type Timeline[H Handle] struct {
	Tag       sheet.Tag
	Keyframes []Keyframe[H]
}

// Timestamps returns, for every frame of the tag, the total duration
// of the tag's frames up to and including it. The first keyframe
// fires once the first frame's duration has elapsed.
func Timestamps(frames []sheet.Frame, tag sheet.Tag) ([]int, error) {
	if err := sheet.ValidateTags(frames, []sheet.Tag{tag}); err != nil {
		return nil, err
	}

	stamps := make([]int, 0, tag.Count())
	elapsed := 0

	for i := tag.From; i <= tag.To; i++ {
		elapsed += frames[i].Duration
		stamps = append(stamps, elapsed)
	}

	return stamps, nil
}

// Entries returns the keyframe entries of the tag.
func Entries(frames []sheet.Frame, tag sheet.Tag) ([]Entry, error) {
	stamps, err := Timestamps(frames, tag)

	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(stamps))

	for i, stamp := range stamps {
		entries[i] = Entry{
			Tag:         tag.Name,
			TimestampMs: stamp,
			LocalIndex:  i + 1,
		}
	}

	return entries, nil
}

// Build reconciles the handles with the tags and returns one
// timeline per tag, in tag order. It returns sheet.ErrEmptyTagSet
// when there are no tags; callers treat that as nothing to do.
func Build[H Handle](frames []sheet.Frame, tags []sheet.Tag, handles []H, order Order) ([]Timeline[H], error) {
	if len(tags) == 0 {
		return nil, sheet.ErrEmptyTagSet
	}

	if err := sheet.ValidateTags(frames, tags); err != nil {
		return nil, err
	}

	ordered, err := Reconcile(handles, tags, order)

	if err != nil {
		return nil, err
	}

	timelines := make([]Timeline[H], 0, len(tags))

	for position, tag := range tags {
		entries, err := Entries(frames, tag)

		if err != nil {
			return nil, err
		}

		offset, count := Offset(tags, position)
		segment := ordered[offset : offset+count]
		keyframes := make([]Keyframe[H], count)

		for i, entry := range entries {
			keyframes[i] = Keyframe[H]{
				Entry:  entry,
				Handle: segment[i],
			}
		}

		timelines = append(timelines, Timeline[H]{
			Tag:       tag,
			Keyframes: keyframes,
		})
	}

	return timelines, nil
}
