package store

import (
	"fmt"

	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"
)

// Keyframe shows a sprite from TimeMs on.
type Keyframe struct {
	TimeMs int
	Sprite string
	Frame  geometry.Rect
}

// Clip is an animation asset of one tag.
type Clip struct {
	ID        uint64
	Path      string
	Texture   string
	Tag       string
	Keyframes []Keyframe
}

// State binds a clip to a controller under the tag name.
type State struct {
	Name string
	Clip string
}

// Controller selects between the clips of a texture.
type Controller struct {
	ID     uint64
	Path   string
	States []State
}

// clipRecord is what the animation codec does not carry.
type clipRecord struct {
	ID      uint64   `yaml:"id"`
	Tag     string   `yaml:"tag"`
	Sprites []string `yaml:"sprites"`
}

// controllerRecord is what the tag codec does not carry.
type controllerRecord struct {
	ID     uint64   `yaml:"id"`
	States []string `yaml:"states"`
}

// animationData converts the keyframe timestamps
// back into per-frame durations.
func animationData(clip Clip) *codec.AnimationData {
	anim := &codec.AnimationData{
		SpritesheetID: clip.Texture,
		TextureID:     clip.Texture,
		Frames:        make([]geometry.Rect, 0, len(clip.Keyframes)),
		Durations:     make([]int32, 0, len(clip.Keyframes)),
	}

	previous := 0

	for _, kf := range clip.Keyframes {
		anim.Frames = append(anim.Frames, kf.Frame)
		anim.Durations = append(anim.Durations, int32(kf.TimeMs-previous))
		previous = kf.TimeMs
	}

	return anim
}

// UpsertClip creates the clip or overwrites the one stored under
// the same path. An overwritten clip keeps its ID.
func (s *Store) UpsertClip(clip Clip) (Clip, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		// Keep the ID of the previous version.
		recBuck, err := tx.CreateBucketIfNotExists([]byte(clipsBucket))

		if err != nil {
			return err
		}

		var rec clipRecord

		if _, err := getRecord(recBuck, clip.Path, &rec); err != nil {
			return err
		}

		clip.ID, err = assignID(recBuck, rec.ID)

		if err != nil {
			return err
		}

		rec = clipRecord{
			ID:      clip.ID,
			Tag:     clip.Tag,
			Sprites: make([]string, 0, len(clip.Keyframes)),
		}

		for _, kf := range clip.Keyframes {
			rec.Sprites = append(rec.Sprites, kf.Sprite)
		}

		if err := putRecord(recBuck, clip.Path, rec); err != nil {
			return err
		}

		// Save the animation itself.
		data, err := animationData(clip).ToBytes()

		if err != nil {
			return err
		}

		animBuck, err := tx.CreateBucketIfNotExists([]byte(animationsBucket))

		if err != nil {
			return err
		}

		return animBuck.Put([]byte(clip.Path), data)
	})

	if err != nil {
		return Clip{}, fmt.Errorf("store: clip '%s': %w", clip.Path, err)
	}

	return clip, nil
}

// Clip returns the clip stored under the path.
func (s *Store) Clip(path string) (Clip, error) {
	clip := Clip{Path: path}

	err := s.db.View(func(tx *bolt.Tx) error {
		data, err := get(tx, animationsBucket, path)

		if err != nil {
			return err
		}

		anim, err := codec.AnimationDataFromBytes(data)

		if err != nil {
			return fmt.Errorf("decode '%s': %w", path, err)
		}

		var rec clipRecord

		if err := view(tx, clipsBucket, path, &rec); err != nil {
			return err
		}

		if len(rec.Sprites) != len(anim.Frames) {
			return fmt.Errorf("'%s' has %d frames but %d sprites",
				path, len(anim.Frames), len(rec.Sprites))
		}

		clip.ID = rec.ID
		clip.Texture = anim.TextureID
		clip.Tag = rec.Tag
		clip.Keyframes = make([]Keyframe, 0, len(anim.Frames))
		timeMs := 0

		for i, frame := range anim.Frames {
			timeMs += int(anim.Durations[i])
			clip.Keyframes = append(clip.Keyframes, Keyframe{
				TimeMs: timeMs,
				Sprite: rec.Sprites[i],
				Frame:  frame,
			})
		}

		return nil
	})

	if err != nil {
		return Clip{}, fmt.Errorf("store: %w", err)
	}

	return clip, nil
}

// UpsertController creates the controller or overwrites the one
// stored under the same path. An overwritten controller keeps its ID.
// The clip paths are saved as an engine tag.
func (s *Store) UpsertController(ctrl Controller) (Controller, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		// Keep the ID of the previous version.
		recBuck, err := tx.CreateBucketIfNotExists([]byte(controllersBucket))

		if err != nil {
			return err
		}

		var rec controllerRecord

		if _, err := getRecord(recBuck, ctrl.Path, &rec); err != nil {
			return err
		}

		ctrl.ID, err = assignID(recBuck, rec.ID)

		if err != nil {
			return err
		}

		rec = controllerRecord{
			ID:     ctrl.ID,
			States: make([]string, 0, len(ctrl.States)),
		}
		clips := make([]string, 0, len(ctrl.States))

		for _, state := range ctrl.States {
			rec.States = append(rec.States, state.Name)
			clips = append(clips, state.Clip)
		}

		if err := putRecord(recBuck, ctrl.Path, rec); err != nil {
			return err
		}

		// Save the clip list as a tag.
		tagData, err := codec.EncodeTag(clips)

		if err != nil {
			return err
		}

		tagBuck, err := tx.CreateBucketIfNotExists([]byte(tagsBucket))

		if err != nil {
			return err
		}

		return tagBuck.Put([]byte(ctrl.Path), tagData)
	})

	if err != nil {
		return Controller{}, fmt.Errorf("store: controller '%s': %w", ctrl.Path, err)
	}

	return ctrl, nil
}

// Controller returns the controller stored under the path.
func (s *Store) Controller(path string) (Controller, error) {
	ctrl := Controller{Path: path}

	err := s.db.View(func(tx *bolt.Tx) error {
		data, err := get(tx, tagsBucket, path)

		if err != nil {
			return err
		}

		clips, err := codec.DecodeTag(data)

		if err != nil {
			return fmt.Errorf("decode '%s': %w", path, err)
		}

		var rec controllerRecord

		if err := view(tx, controllersBucket, path, &rec); err != nil {
			return err
		}

		if len(rec.States) != len(clips) {
			return fmt.Errorf("'%s' has %d clips but %d states",
				path, len(clips), len(rec.States))
		}

		ctrl.ID = rec.ID
		ctrl.States = make([]State, 0, len(clips))

		for i, clip := range clips {
			ctrl.States = append(ctrl.States, State{
				Name: rec.States[i],
				Clip: clip,
			})
		}

		return nil
	})

	if err != nil {
		return Controller{}, fmt.Errorf("store: %w", err)
	}

	return ctrl, nil
}

func get(tx *bolt.Tx, bucket, key string) ([]byte, error) {
	buck := tx.Bucket([]byte(bucket))

	if buck == nil {
		return nil, fmt.Errorf("the %s bucket not found", bucket)
	}

	data := buck.Get([]byte(key))

	if data == nil {
		return nil, fmt.Errorf("'%s' not found in %s", key, bucket)
	}

	return data, nil
}

func view(tx *bolt.Tx, bucket, key string, v any) error {
	buck := tx.Bucket([]byte(bucket))

	if buck == nil {
		return fmt.Errorf("the %s bucket not found", bucket)
	}

	found, err := getRecord(buck, key, v)

	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("'%s' not found in %s", key, bucket)
	}

	return nil
}
