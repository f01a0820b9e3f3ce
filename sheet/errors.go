package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a tag references
	// frames outside of the sheet or has from > to.
	ErrOutOfRange = errors.New("tag frame range out of bounds")
	// ErrNameMismatch indicates the materialized sprite set
	// doesn't hold exactly one sprite per expected slice name.
	ErrNameMismatch = errors.New("sprite names don't match slices")
	// ErrEmptyTagSet is not a failure: the sheet has no tags,
	// so there is nothing to build timelines from.
	ErrEmptyTagSet = errors.New("sheet has no frame tags")
	// ErrInvalidPivot indicates the pivot lies outside of the frame.
	ErrInvalidPivot = errors.New("pivot outside of the frame")
	// ErrNoFrames indicates the sheet has no frames at all.
	ErrNoFrames = errors.New("sheet has no frames")
)

// Error attaches details to one of the error kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
