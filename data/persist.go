package data

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Save gob-encodes bundle to path, replacing any existing file. The bundle
// is written to a temporary file first, so a failed save leaves path as it was.
func Save(path string, bundle Bundle) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := gob.NewEncoder(tmp).Encode(bundle); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to encode bundle: %w", ErrSerialization, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return nil
}

// Load reads a bundle written by Save and checks every split's invariants.
func Load(path string) (Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	defer file.Close()

	var bundle Bundle
	if err := gob.NewDecoder(file).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode gob file: %w", ErrSerialization, err)
	}

	for split, res := range bundle {
		if err := res.Validate(); err != nil {
			return nil, fmt.Errorf("%w: split %q: %w", ErrInvalidBundle, split, err)
		}
	}
	return bundle, nil
}
