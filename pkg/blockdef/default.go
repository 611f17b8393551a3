package blockdef

// Default block IDs. ID 0 is always air.
const (
	Air uint8 = iota
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Wood
	Leaves
	Water
	Bedrock
)

// Default returns the built-in block set. It is enough to render the stock
// terrain generators without any external pack.
func Default() *Registry {
	return NewRegistry([]Block{
		{ID: Air, Name: "air"},
		{ID: Stone, Name: "stone", Opaque: true, Textures: uniform("stone")},
		{ID: Dirt, Name: "dirt", Opaque: true, Textures: uniform("dirt")},
		{ID: Grass, Name: "grass", Opaque: true, Textures: topSideBottom("grass_top", "grass_side", "dirt")},
		{ID: Sand, Name: "sand", Opaque: true, Textures: uniform("sand")},
		{ID: Gravel, Name: "gravel", Opaque: true, Textures: uniform("gravel")},
		{ID: Wood, Name: "wood", Opaque: true, Textures: topSideBottom("wood_top", "wood_side", "wood_top")},
		{ID: Leaves, Name: "leaves", Textures: uniform("leaves")},
		{ID: Water, Name: "water", Textures: uniform("water")},
		{ID: Bedrock, Name: "bedrock", Opaque: true, Textures: uniform("bedrock")},
	})
}

func uniform(name string) [FaceCount]string {
	var t [FaceCount]string
	for i := range t {
		t[i] = name
	}
	return t
}

func topSideBottom(top, side, bottom string) [FaceCount]string {
	return [FaceCount]string{side, side, top, bottom, side, side}
}
