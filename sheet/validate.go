package sheet

// ValidateTags checks every tag references an existing,
// non-empty range of frames.
func ValidateTags(frames []Frame, tags []Tag) error {
	for _, tag := range tags {
		if tag.From < 0 || tag.To >= len(frames) || tag.From > tag.To {
			return Errorf(ErrOutOfRange,
				"tag '%s' spans [%d, %d] but the sheet has %d frames",
				tag.Name, tag.From, tag.To, len(frames))
		}
	}

	return nil
}

// ValidatePivot reports whether the pivot lies inside the first
// frame. All frames are assumed to share its dimensions.
func ValidatePivot(frames []Frame, pivot Pivot) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	rect := frames[0].Frame
	inside := rect.X <= pivot.X && rect.Y <= pivot.Y &&
		pivot.X < rect.X+rect.W && pivot.Y < rect.Y+rect.H

	if !inside {
		return Errorf(ErrInvalidPivot,
			"(%d, %d) is not inside the %dx%d frame at (%d, %d)",
			pivot.X, pivot.Y, rect.W, rect.H, rect.X, rect.Y)
	}

	return nil
}

// DefaultPivot returns the bottom centre of the first frame.
func DefaultPivot(frames []Frame) (Pivot, error) {
	if len(frames) == 0 {
		return Pivot{}, ErrNoFrames
	}

	rect := frames[0].Frame

	return Pivot{X: rect.W / 2, Y: rect.H - 1}, nil
}
