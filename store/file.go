package store

import (
	"encoding/json"
	"fmt"
	"os"

	"honnef.co/go/glyphedit/glyph"
)

// LoadFont reads a font from a JSON file.
func LoadFont(path string) (*glyph.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f glyph.Font
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("store: parsing %s: %w", path, err)
	}
	return &f, nil
}

// SaveFont writes a font to a JSON file.
func SaveFont(path string, f *glyph.Font) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Open loads a font file into a Memory store.
func Open(path string) (*Memory, error) {
	f, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	return NewMemory(f), nil
}
