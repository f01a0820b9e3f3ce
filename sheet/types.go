package sheet

// Rect is a pixel rectangle with a top-left
// origin and y growing downward.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Size is the pixel size of the whole sheet image.
type Size struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Frame is one physical frame of the sheet.
type Frame struct {
	Name     string `json:"filename,omitempty"`
	Frame    Rect   `json:"frame"`
	Duration int    `json:"duration"`
}

// Tag is a named inclusive range of frame indices.
type Tag struct {
	Name      string `json:"name" yaml:"name"`
	From      int    `json:"from" yaml:"from"`
	To        int    `json:"to" yaml:"to"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Count returns the number of frames covered by the tag.
func (t Tag) Count() int {
	return t.To - t.From + 1
}

// Meta is the "meta" object of the sheet description.
type Meta struct {
	App       string `json:"app,omitempty"`
	Version   string `json:"version,omitempty"`
	Image     string `json:"image,omitempty"`
	Size      Size   `json:"size"`
	FrameTags []Tag  `json:"frameTags"`
}

// Document is a parsed sheet description.
type Document struct {
	Frames FrameList `json:"frames"`
	Meta   Meta      `json:"meta"`
}

// Pivot is a pixel-space point relative to the
// top-left corner of a frame. One pivot is shared
// by every frame of the sheet.
type Pivot struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}
