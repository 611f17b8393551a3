// Package atlas maps texture names to regions of a packed texture atlas.
// Packing itself happens elsewhere; this package only resolves names against
// atlas metadata, from a JSON description or a uniform grid.
package atlas

// Region is one named tile of the atlas: the material index plus normalized
// UV bounds.
type Region struct {
	Index  int
	U0, V0 float32
	U1, V1 float32
}

// Resolver maps a texture name to its atlas region. Fallback returns the
// region consumers should substitute for names that fail to resolve.
type Resolver interface {
	Resolve(name string) (Region, bool)
	Fallback() Region
}

// Grid is a uniform-grid resolver: the atlas is cols×rows equal tiles and
// every name maps to a tile index in row-major order. Index 0 doubles as the
// fallback tile.
type Grid struct {
	cols, rows int
	names      map[string]int
}

// NewGrid builds a uniform-grid resolver. names maps texture names to
// row-major tile indices.
func NewGrid(cols, rows int, names map[string]int) *Grid {
	return &Grid{cols: cols, rows: rows, names: names}
}

// Resolve returns the region for name.
func (g *Grid) Resolve(name string) (Region, bool) {
	i, ok := g.names[name]
	if !ok || i < 0 || i >= g.cols*g.rows {
		return Region{}, false
	}
	return g.region(i), true
}

// Fallback returns tile 0.
func (g *Grid) Fallback() Region {
	return g.region(0)
}

func (g *Grid) region(i int) Region {
	du := 1 / float32(g.cols)
	dv := 1 / float32(g.rows)
	u := float32(i%g.cols) * du
	v := float32(i/g.cols) * dv
	return Region{Index: i, U0: u, V0: v, U1: u + du, V1: v + dv}
}
