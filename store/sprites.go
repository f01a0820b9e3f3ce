package store

import (
	"fmt"

	"github.com/alacrity-engine/asepack/sheet"
	"github.com/alacrity-engine/asepack/slicing"
	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"
)

// Texture is the import state of a source image.
type Texture struct {
	ID       uint64 `yaml:"id"`
	Name     string `yaml:"name"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Readable bool   `yaml:"readable"`
	Sprites  int    `yaml:"sprites"`
}

// Sprite is a slice materialized in the store.
type Sprite struct {
	Texture string      `yaml:"texture"`
	Name    string      `yaml:"name"`
	Key     slicing.Key `yaml:"key"`
	Rect    sheet.Rect  `yaml:"rect"`
	Pivot   slicing.UV  `yaml:"pivot"`
}

// SliceName returns the name the sprite was sliced under.
func (s Sprite) SliceName() string {
	return s.Name
}

// Frame returns the sprite rectangle in engine geometry.
func (s Sprite) Frame() geometry.Rect {
	return geometry.R(float64(s.Rect.X), float64(s.Rect.Y),
		float64(s.Rect.X+s.Rect.W), float64(s.Rect.Y+s.Rect.H))
}

// Ref addresses the sprite across textures.
func (s Sprite) Ref() string {
	return s.Texture + "#" + s.Name
}

// ApplySlices marks the texture readable and replaces
// all of its sprites with the given slices.
func (s *Store) ApplySlices(texture string, size sheet.Size, slices []slicing.Slice) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		// Register the texture for the engine.
		texBuck, err := tx.CreateBucketIfNotExists([]byte(texturesBucket))

		if err != nil {
			return err
		}

		texData := &codec.TextureData{PictureID: texture}
		data, err := texData.ToBytes()

		if err != nil {
			return err
		}

		err = texBuck.Put([]byte(texture), data)

		if err != nil {
			return err
		}

		// Update the import state.
		importBuck, err := tx.CreateBucketIfNotExists([]byte(importsBucket))

		if err != nil {
			return err
		}

		var tex Texture

		if _, err := getRecord(importBuck, texture, &tex); err != nil {
			return err
		}

		tex.ID, err = assignID(importBuck, tex.ID)

		if err != nil {
			return err
		}

		tex.Name = texture
		tex.Width = size.W
		tex.Height = size.H
		tex.Readable = true
		tex.Sprites = len(slices)

		if err := putRecord(importBuck, texture, tex); err != nil {
			return err
		}

		// Drop the previous sprites.
		spritesBuck, err := tx.CreateBucketIfNotExists([]byte(spritesBucket))

		if err != nil {
			return err
		}

		if spritesBuck.Bucket([]byte(texture)) != nil {
			if err := spritesBuck.DeleteBucket([]byte(texture)); err != nil {
				return err
			}
		}

		buck, err := spritesBuck.CreateBucket([]byte(texture))

		if err != nil {
			return err
		}

		// Save the new ones.
		for _, slice := range slices {
			sprite := Sprite{
				Texture: texture,
				Name:    slice.Name,
				Key:     slice.Key,
				Rect:    slice.Rect,
				Pivot:   slice.Pivot,
			}

			if err := putRecord(buck, slice.Name, sprite); err != nil {
				return err
			}
		}

		return nil
	})
}

// Sprites returns the sprites of the texture in key order,
// which is byte-wise by name rather than slicing order.
func (s *Store) Sprites(texture string) ([]Sprite, error) {
	sprites := []Sprite{}

	err := s.db.View(func(tx *bolt.Tx) error {
		spritesBuck := tx.Bucket([]byte(spritesBucket))

		if spritesBuck == nil {
			return fmt.Errorf("the sprites bucket not found")
		}

		buck := spritesBuck.Bucket([]byte(texture))

		if buck == nil {
			return fmt.Errorf("texture '%s' not sliced", texture)
		}

		return buck.ForEach(func(k, v []byte) error {
			var sprite Sprite

			if _, err := getRecord(buck, string(k), &sprite); err != nil {
				return err
			}

			sprites = append(sprites, sprite)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	return sprites, nil
}

// Texture returns the import state of the texture.
func (s *Store) Texture(name string) (Texture, error) {
	var tex Texture

	err := s.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte(importsBucket))

		if buck == nil {
			return fmt.Errorf("the imports bucket not found")
		}

		found, err := getRecord(buck, name, &tex)

		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("texture '%s' not found", name)
		}

		return nil
	})

	if err != nil {
		return Texture{}, fmt.Errorf("store: %w", err)
	}

	return tex, nil
}
