// Package blockdef holds static block definitions: opacity and per-face
// texture names. Definitions come from the built-in default set or from a
// JSON pack; a Registry is immutable once built.
//
// Face indices pair each axis with its negative: 0 +X, 1 -X, 2 +Y, 3 -Y,
// 4 +Z, 5 -Z.
package blockdef

// FaceCount is the number of block faces.
const FaceCount = 6

// Block describes one block type.
type Block struct {
	ID       uint8
	Name     string
	Opaque   bool
	Textures [FaceCount]string
}

// Registry resolves block definitions by ID or name.
type Registry struct {
	byID   [256]*Block
	byName map[string]*Block
}

// NewRegistry builds a registry from a definition list. Later entries with a
// repeated ID or name replace earlier ones.
func NewRegistry(blocks []Block) *Registry {
	r := &Registry{byName: make(map[string]*Block, len(blocks))}
	for i := range blocks {
		b := blocks[i]
		r.byID[b.ID] = &b
		r.byName[b.Name] = &b
	}
	return r
}

// ByID returns the definition for id.
func (r *Registry) ByID(id uint8) (Block, bool) {
	b := r.byID[id]
	if b == nil {
		return Block{}, false
	}
	return *b, true
}

// ByName returns the definition with the given name.
func (r *Registry) ByName(name string) (Block, bool) {
	b, ok := r.byName[name]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// All returns every registered definition, ordered by ID.
func (r *Registry) All() []Block {
	out := make([]Block, 0, len(r.byName))
	for _, b := range r.byID {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out
}

// IsOpaque reports whether id fully hides the block face behind it.
// Unregistered IDs are treated as transparent so their neighbors stay
// visible.
func (r *Registry) IsOpaque(id uint8) bool {
	b := r.byID[id]
	return b != nil && b.Opaque
}

// TextureFor returns the texture name for one face of a block, or "" when
// the block or face is unknown.
func (r *Registry) TextureFor(id uint8, face int) string {
	b := r.byID[id]
	if b == nil || face < 0 || face >= FaceCount {
		return ""
	}
	return b.Textures[face]
}
