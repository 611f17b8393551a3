package blockdef

import (
	"encoding/json"
	"fmt"
	"os"
)

type packFile struct {
	Blocks []packBlock `json:"blocks"`
}

type packBlock struct {
	ID      uint8             `json:"id"`
	Name    string            `json:"name"`
	Opaque  bool              `json:"opaque"`
	Texture string            `json:"texture"`
	Faces   map[string]string `json:"faces"`
}

// Face keys accepted in a pack file. "side" covers the four lateral faces.
var faceKeys = map[string][]int{
	"east":   {0},
	"west":   {1},
	"top":    {2},
	"bottom": {3},
	"north":  {4},
	"south":  {5},
	"side":   {0, 1, 4, 5},
}

// LoadFile reads a JSON block pack. "texture" names a texture for all six
// faces; entries under "faces" override individual faces.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block pack: %w", err)
	}
	var pack packFile
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse block pack %s: %w", path, err)
	}

	blocks := make([]Block, 0, len(pack.Blocks))
	for _, pb := range pack.Blocks {
		if pb.Name == "" {
			return nil, fmt.Errorf("block pack %s: block %d has no name", path, pb.ID)
		}
		b := Block{ID: pb.ID, Name: pb.Name, Opaque: pb.Opaque, Textures: uniform(pb.Texture)}
		for key, name := range pb.Faces {
			faces, ok := faceKeys[key]
			if !ok {
				return nil, fmt.Errorf("block pack %s: block %q has unknown face %q", path, pb.Name, key)
			}
			for _, f := range faces {
				b.Textures[f] = name
			}
		}
		blocks = append(blocks, b)
	}
	return NewRegistry(blocks), nil
}
