package slicing

import (
	"github.com/alacrity-engine/asepack/sheet"
)

// Computer produces slices for a target coordinate convention.
type Computer struct {
	Origin Origin
}

// NewComputer returns a computer targeting
// the bottom-left origin convention.
func NewComputer() Computer {
	return Computer{Origin: OriginBottomLeft}
}

// Slices returns one slice per frame of every tag, tag by tag.
// Frames no tag covers produce no slice, frames covered by
// several tags produce one slice per tag.
func (c Computer) Slices(size sheet.Size, frames []sheet.Frame, tags []sheet.Tag, pivot sheet.Pivot) ([]Slice, error) {
	if err := sheet.ValidateTags(frames, tags); err != nil {
		return nil, err
	}

	total := 0

	for _, tag := range tags {
		total += tag.Count()
	}

	slices := make([]Slice, 0, total)

	for _, tag := range tags {
		count := 1

		for i := tag.From; i <= tag.To; i++ {
			rect := frames[i].Frame
			key := Key{Tag: tag.Name, Index: count}

			slices = append(slices, Slice{
				Name:  key.Name(),
				Key:   key,
				Rect:  c.convert(rect, size),
				Pivot: PivotUV(pivot, rect),
			})

			count++
		}
	}

	return slices, nil
}

func (c Computer) convert(rect sheet.Rect, size sheet.Size) sheet.Rect {
	if c.Origin == OriginTopLeft {
		return rect
	}

	return ToBottomLeft(rect, size.H)
}

// ToBottomLeft converts a top-left origin rectangle
// to the bottom-left origin of an image of the given height.
func ToBottomLeft(rect sheet.Rect, height int) sheet.Rect {
	rect.Y = height - rect.H - rect.Y
	return rect
}

// FromBottomLeft is the inverse of ToBottomLeft.
func FromBottomLeft(rect sheet.Rect, height int) sheet.Rect {
	rect.Y = height - rect.H - rect.Y
	return rect
}

// PivotUV normalizes a pixel pivot to the frame rectangle,
// flipping v so it grows upward.
func PivotUV(pivot sheet.Pivot, rect sheet.Rect) UV {
	return UV{
		U: float64(pivot.X) / float64(rect.W),
		V: 1 - float64(pivot.Y)/float64(rect.H),
	}
}
