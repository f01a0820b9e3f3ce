// Package importer runs a sheet through slicing and timeline
// building and hands the results to the asset store.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"github.com/alacrity-engine/asepack/store"
	"github.com/alacrity-engine/asepack/timeline"
)

// Slicer cuts a texture into named sprites and
// lists them back in an order of its own choosing.
type Slicer interface {
	ApplySlices(texture string, size sheet.Size, slices []slicing.Slice) error
	Sprites(texture string) ([]store.Sprite, error)
}

// AnimationWriter persists clips and the controller grouping them.
// Overwriting an asset must keep its ID.
type AnimationWriter interface {
	UpsertClip(clip store.Clip) (store.Clip, error)
	UpsertController(ctrl store.Controller) (store.Controller, error)
}

// Job is a single texture import.
type Job struct {
	// Texture is the asset path of the source image.
	Texture  string
	Document *sheet.Document
	Pivot    sheet.Pivot
}

// Result holds everything an import produced.
type Result struct {
	Slices     []slicing.Slice
	Timelines  []timeline.Timeline[store.Sprite]
	Clips      []store.Clip
	Controller *store.Controller
}

// Importer slices textures and generates their animations.
type Importer struct {
	Slicer     Slicer
	Animations AnimationWriter
	Computer   slicing.Computer
	Order      timeline.Order
	Logger     *log.Logger
}

// New returns an importer targeting the bottom-left origin
// and sorting sprites lexically.
func New(slicer Slicer, animations AnimationWriter, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Importer{
		Slicer:     slicer,
		Animations: animations,
		Computer:   slicing.NewComputer(),
		Order:      timeline.SortLexical,
		Logger:     logger,
	}
}

// Import slices the texture, then builds and stores one clip per
// tag plus a controller for the texture. A sheet without tags is
// sliced but gets no animation assets.
func (imp *Importer) Import(job Job) (Result, error) {
	var result Result

	if job.Document == nil {
		return result, fmt.Errorf("import %s: no sheet description", job.Texture)
	}

	// Slice the texture.
	doc := job.Document
	slices, err := imp.Computer.Slices(doc.Meta.Size,
		doc.Frames, doc.Meta.FrameTags, job.Pivot)

	if err != nil {
		return result, fmt.Errorf("import %s: slice: %w", job.Texture, err)
	}

	if err := imp.Slicer.ApplySlices(job.Texture, doc.Meta.Size, slices); err != nil {
		return result, fmt.Errorf("import %s: apply slices: %w", job.Texture, err)
	}

	result.Slices = slices
	imp.Logger.Printf("sliced %s into %d sprites (%s origin)",
		job.Texture, len(slices), imp.Computer.Origin)

	// Match the sprites with the frame tags.
	sprites, err := imp.Slicer.Sprites(job.Texture)

	if err != nil {
		return result, fmt.Errorf("import %s: list sprites: %w", job.Texture, err)
	}

	timelines, err := timeline.Build(doc.Frames, doc.Meta.FrameTags, sprites, imp.Order)

	if errors.Is(err, sheet.ErrEmptyTagSet) {
		imp.Logger.Printf("%s has no frame tags, skipping animations", job.Texture)
		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("import %s: timelines: %w", job.Texture, err)
	}

	result.Timelines = timelines
	warnDuplicateTags(imp.Logger, job.Texture, doc.Meta.FrameTags)

	// Build every clip before anything is written.
	clips := make([]store.Clip, 0, len(timelines))
	ctrl := store.Controller{Path: ControllerPath(job.Texture)}
	registered := map[string]bool{}

	for _, tl := range timelines {
		clips = append(clips, ClipFor(job.Texture, tl))
	}

	// Save the clips.
	for i, clip := range clips {
		saved, err := imp.Animations.UpsertClip(clip)

		if err != nil {
			return result, fmt.Errorf("import %s: %w", job.Texture, err)
		}

		clips[i] = saved

		// A repeated tag overwrites its clip but keeps one state.
		if registered[saved.Tag] {
			continue
		}

		registered[saved.Tag] = true
		ctrl.States = append(ctrl.States, store.State{
			Name: saved.Tag,
			Clip: saved.Path,
		})
	}

	result.Clips = clips

	// Register them under the controller.
	saved, err := imp.Animations.UpsertController(ctrl)

	if err != nil {
		return result, fmt.Errorf("import %s: %w", job.Texture, err)
	}

	result.Controller = &saved
	imp.Logger.Printf("wrote %d clips under %s", len(clips), saved.Path)

	return result, nil
}

// ClipFor converts a timeline to a clip asset of the texture.
func ClipFor(texture string, tl timeline.Timeline[store.Sprite]) store.Clip {
	clip := store.Clip{
		Path:      ClipPath(texture, tl.Tag.Name),
		Texture:   texture,
		Tag:       tl.Tag.Name,
		Keyframes: make([]store.Keyframe, 0, len(tl.Keyframes)),
	}

	for _, kf := range tl.Keyframes {
		clip.Keyframes = append(clip.Keyframes, store.Keyframe{
			TimeMs: kf.TimestampMs,
			Sprite: kf.Handle.Ref(),
			Frame:  kf.Handle.Frame(),
		})
	}

	return clip
}

// ClipPath returns "<dir>/<base>__<tag>.anim" for the texture.
func ClipPath(texture, tag string) string {
	dir, base := splitTexture(texture)
	return path.Join(dir, base+slicing.NameSeparator+tag+".anim")
}

// ControllerPath returns "<dir>/<base>.controller" for the texture.
func ControllerPath(texture string) string {
	dir, base := splitTexture(texture)
	return path.Join(dir, base+".controller")
}

func splitTexture(texture string) (dir, base string) {
	p := filepath.ToSlash(texture)
	base = path.Base(p)

	return path.Dir(p), strings.TrimSuffix(base, path.Ext(base))
}

func warnDuplicateTags(logger *log.Logger, texture string, tags []sheet.Tag) {
	seen := map[string]bool{}

	for _, tag := range tags {
		if seen[tag.Name] {
			logger.Printf("warning: %s declares tag '%s' more than once, "+
				"its clip is overwritten", texture, tag.Name)
		}

		seen[tag.Name] = true
	}
}
