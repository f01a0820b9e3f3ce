// Package store keeps sliced textures and generated animation
// assets in a bbolt resource file.
//
// The textures, animations and tags buckets hold engine records
// encoded with the resource codec. IDs and the names the codec
// does not carry live in YAML side records next to them.
package store

import (
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v2"
)

const (
	texturesBucket    = "textures"
	importsBucket     = "imports"
	spritesBucket     = "sprites"
	animationsBucket  = "animations"
	clipsBucket       = "clips"
	tagsBucket        = "tags"
	controllersBucket = "controllers"
)

// Store is a resource file holding textures,
// their sprites and the animation assets built from them.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the resource file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: time.Second})

	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the resource file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the resource file.
func (s *Store) Path() string {
	return s.db.Path()
}

// Size returns the size of the resource file in bytes.
func (s *Store) Size() (int64, error) {
	info, err := os.Stat(s.db.Path())

	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func getRecord(buck *bolt.Bucket, key string, v any) (bool, error) {
	data := buck.Get([]byte(key))

	if data == nil {
		return false, nil
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode '%s': %w", key, err)
	}

	return true, nil
}

func putRecord(buck *bolt.Bucket, key string, v any) error {
	data, err := yaml.Marshal(v)

	if err != nil {
		return fmt.Errorf("encode '%s': %w", key, err)
	}

	return buck.Put([]byte(key), data)
}

// assignID keeps the ID of an existing record
// and allocates a new one otherwise.
func assignID(buck *bolt.Bucket, existing uint64) (uint64, error) {
	if existing != 0 {
		return existing, nil
	}

	return buck.NextSequence()
}
