package atlas

import (
	"encoding/json"
	"fmt"
	"os"
)

type metadataFile struct {
	Width    int                     `json:"width"`
	Height   int                     `json:"height"`
	Fallback string                  `json:"fallback"`
	Entries  map[string]metadataTile `json:"entries"`
}

type metadataTile struct {
	Index int `json:"index"`
	X     int `json:"x"`
	Y     int `json:"y"`
	W     int `json:"w"`
	H     int `json:"h"`
}

// Metadata is a resolver backed by an atlas description file with explicit
// pixel rectangles per name.
type Metadata struct {
	regions  map[string]Region
	fallback Region
}

// LoadFile reads atlas metadata from a JSON file. The "fallback" field names
// the entry substituted for unresolved lookups; when absent or unknown the
// zero region is used.
func LoadFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas metadata: %w", err)
	}
	var meta metadataFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse atlas metadata %s: %w", path, err)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("atlas metadata %s: invalid dimensions %dx%d", path, meta.Width, meta.Height)
	}

	m := &Metadata{regions: make(map[string]Region, len(meta.Entries))}
	for name, tile := range meta.Entries {
		m.regions[name] = Region{
			Index: tile.Index,
			U0:    float32(tile.X) / float32(meta.Width),
			V0:    float32(tile.Y) / float32(meta.Height),
			U1:    float32(tile.X+tile.W) / float32(meta.Width),
			V1:    float32(tile.Y+tile.H) / float32(meta.Height),
		}
	}
	if fb, ok := m.regions[meta.Fallback]; ok {
		m.fallback = fb
	}
	return m, nil
}

// Resolve returns the region for name.
func (m *Metadata) Resolve(name string) (Region, bool) {
	r, ok := m.regions[name]
	return r, ok
}

// Fallback returns the region for the configured fallback entry.
func (m *Metadata) Fallback() Region {
	return m.fallback
}
