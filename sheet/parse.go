package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// FrameList is the "frames" member of the sheet description.
// Aseprite writes it either as an array or as an object keyed by
// frame file name; both decode into sheet order.
type FrameList []Frame

// UnmarshalJSON implements json.Unmarshaler.
func (l *FrameList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var frames []Frame

		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return err
		}

		*l = frames
		return nil
	}

	// Object layout: keep document order, which
	// a Go map would lose.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()

	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("frames: expected array or object, got %v", tok)
	}

	frames := []Frame{}

	for dec.More() {
		tok, err = dec.Token()

		if err != nil {
			return err
		}

		name, ok := tok.(string)

		if !ok {
			return fmt.Errorf("frames: unexpected key %v", tok)
		}

		var frame Frame

		if err := dec.Decode(&frame); err != nil {
			return fmt.Errorf("frames: '%s': %w", name, err)
		}

		if frame.Name == "" {
			frame.Name = name
		}

		frames = append(frames, frame)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = frames
	return nil
}

// Parse decodes a sheet description.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sheet: decode: %w", err)
	}

	return &doc, nil
}

// Load reads and decodes the sheet description at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("sheet: load %s: %w", path, err)
	}

	doc, err := Parse(data)

	if err != nil {
		return nil, fmt.Errorf("sheet: %s: %w", path, err)
	}

	return doc, nil
}
