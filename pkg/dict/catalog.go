package dict

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// VocabInfo is the public metadata for a vocabulary found on disk.
type VocabInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Locale  string `json:"locale"`
	Source  string `json:"source"`
	License string `json:"license"`
	Dir     string `json:"dir"`
}

// Catalog indexes the vocabulary directories under a root directory.
type Catalog struct {
	root   string
	vocabs []VocabInfo
}

// NewCatalog scans root for subdirectories holding a manifest.yaml.
// Directories without a manifest are skipped; a broken manifest is an error.
func NewCatalog(root string) (*Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read vocab dir %s: %w", root, err)
	}

	c := &Catalog{root: root}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		path := filepath.Join(dir, "manifest.yaml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := LoadManifest(path)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary %s: %w", entry.Name(), err)
		}
		c.vocabs = append(c.vocabs, VocabInfo{
			ID:      m.ID,
			Version: m.Version,
			Locale:  m.Locale,
			Source:  m.Source,
			License: m.License,
			Dir:     dir,
		})
	}
	sort.Slice(c.vocabs, func(i, j int) bool { return c.vocabs[i].ID < c.vocabs[j].ID })
	return c, nil
}

// List returns metadata for all vocabularies, sorted by ID.
func (c *Catalog) List() []VocabInfo {
	out := make([]VocabInfo, len(c.vocabs))
	copy(out, c.vocabs)
	return out
}

// Find returns the vocabulary for a locale. When several match, the first by
// ID wins.
func (c *Catalog) Find(locale string) (VocabInfo, error) {
	for _, v := range c.vocabs {
		if v.Locale == locale {
			return v, nil
		}
	}
	return VocabInfo{}, fmt.Errorf("no vocabulary for locale %q in %s", locale, c.root)
}

// Load finds and loads the vocabulary for a locale.
func (c *Catalog) Load(locale string) (*Dictionary, error) {
	v, err := c.Find(locale)
	if err != nil {
		return nil, err
	}
	return LoadDictionary(v.Dir)
}
