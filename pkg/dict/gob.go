// CLAUDE:SUMMARY Gob serialization and deserialization of vocabulary entries for fast loading.
package dict

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// loadGob deserializes entries from a gob-encoded file.
func loadGob(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return entries, nil
}

// SaveGob serializes entries, in file order, to a gob-encoded file at path.
func SaveGob(entries []Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}

// Compile reads the CSV vocabulary in dir and writes dir/data.gob next to it.
// It returns the number of entries written.
func Compile(dir string) (int, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return 0, err
	}
	entries, err := loadCSV(filepath.Join(dir, manifest.DataFile), manifest.Format)
	if err != nil {
		return 0, fmt.Errorf("dict %s: %w", manifest.ID, err)
	}
	// Validate before writing so a broken CSV never produces a gob.
	if _, err := FromEntries(manifest, entries); err != nil {
		return 0, err
	}
	if err := SaveGob(entries, filepath.Join(dir, "data.gob")); err != nil {
		return 0, err
	}
	return len(entries), nil
}
