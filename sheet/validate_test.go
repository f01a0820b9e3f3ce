package sheet

import (
	"errors"
	"testing"
)

func framesOf(rects ...Rect) []Frame {
	frames := make([]Frame, len(rects))
	for i, r := range rects {
		frames[i] = Frame{Frame: r, Duration: 100}
	}
	return frames
}

func TestValidatePivot(t *testing.T) {
	frames := framesOf(Rect{X: 0, Y: 0, W: 10, H: 20}, Rect{X: 10, Y: 0, W: 10, H: 20})

	tests := []struct {
		name  string
		pivot Pivot
		valid bool
	}{
		{"origin", Pivot{0, 0}, true},
		{"bottom centre", Pivot{5, 19}, true},
		{"last pixel", Pivot{9, 19}, true},
		{"x on right edge", Pivot{10, 0}, false},
		{"y on bottom edge", Pivot{0, 20}, false},
		{"negative", Pivot{-1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePivot(frames, tt.pivot)
			if tt.valid && err != nil {
				t.Fatalf("expected valid pivot, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidPivot) {
				t.Fatalf("expected ErrInvalidPivot, got %v", err)
			}
		})
	}
}

func TestValidatePivot_UsesFrameOffset(t *testing.T) {
	frames := framesOf(Rect{X: 4, Y: 8, W: 10, H: 10})

	if err := ValidatePivot(frames, Pivot{3, 8}); !errors.Is(err, ErrInvalidPivot) {
		t.Fatalf("expected ErrInvalidPivot, got %v", err)
	}
	if err := ValidatePivot(frames, Pivot{13, 17}); err != nil {
		t.Fatalf("expected valid pivot, got %v", err)
	}
}

func TestValidatePivot_NoFrames(t *testing.T) {
	if err := ValidatePivot(nil, Pivot{}); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestValidateTags(t *testing.T) {
	frames := framesOf(Rect{W: 1, H: 1}, Rect{W: 1, H: 1}, Rect{W: 1, H: 1})

	if err := ValidateTags(frames, []Tag{{Name: "A", From: 0, To: 2}, {Name: "B", From: 1, To: 1}}); err != nil {
		t.Fatalf("ValidateTags: %v", err)
	}

	bad := []Tag{
		{Name: "past end", From: 5, To: 5},
		{Name: "negative", From: -1, To: 0},
		{Name: "reversed", From: 2, To: 1},
		{Name: "to past end", From: 0, To: 3},
	}
	for _, tag := range bad {
		if err := ValidateTags(frames, []Tag{tag}); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s: expected ErrOutOfRange, got %v", tag.Name, err)
		}
	}
}

func TestDefaultPivot(t *testing.T) {
	pivot, err := DefaultPivot(framesOf(Rect{W: 16, H: 24}))
	if err != nil {
		t.Fatalf("DefaultPivot: %v", err)
	}
	if pivot != (Pivot{X: 8, Y: 23}) {
		t.Fatalf("unexpected pivot: %+v", pivot)
	}

	if _, err := DefaultPivot(nil); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestTagCount(t *testing.T) {
	if n := (Tag{From: 3, To: 3}).Count(); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := (Tag{From: 0, To: 2}).Count(); n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}
