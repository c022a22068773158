package block

// Порядок граней совпадает с vec.FaceOffsets
const (
	FaceSouth  = iota // +Z
	FaceNorth         // -Z
	FaceTop           // +Y
	FaceBottom        // -Y
	FaceWest          // -X
	FaceEast          // +X
)

// Properties описывает свойства материала
type Properties struct {
	ID    BlockID
	Name  string // строковый идентификатор, например "minecraft:stone"
	Solid bool   // участвует в столкновениях и закрывает соседние грани
	Loose bool   // размещённый блок падает до опоры (песок)

	// Textures - имя текстуры для каждой грани, в порядке Face*
	Textures [6]string
}

func sameTexture(name string) [6]string {
	return [6]string{name, name, name, name, name, name}
}

func init() {
	Register(AirBlockID, Properties{Name: "minecraft:air"})
	Register(BedrockBlockID, Properties{
		Name: "minecraft:bedrock", Solid: true,
		Textures: sameTexture("textures/bedrock.png"),
	})
	Register(StoneBlockID, Properties{
		Name: "minecraft:stone", Solid: true,
		Textures: sameTexture("textures/stone.png"),
	})
	Register(DirtBlockID, Properties{
		Name: "minecraft:dirt", Solid: true,
		Textures: sameTexture("textures/dirt.png"),
	})
	// Трава: сверху своя текстура, снизу земля
	Register(GrassBlockID, Properties{
		Name: "minecraft:grass_block", Solid: true,
		Textures: [6]string{
			"textures/grass/grass_side.png",
			"textures/grass/grass_side.png",
			"textures/grass/grass_top.png",
			"textures/dirt.png",
			"textures/grass/grass_side.png",
			"textures/grass/grass_side.png",
		},
	})
	Register(SandBlockID, Properties{
		Name: "minecraft:sand", Solid: true, Loose: true,
		Textures: sameTexture("textures/sand.png"),
	})
	Register(WaterBlockID, Properties{
		Name:     "minecraft:water",
		Textures: sameTexture("textures/water.png"),
	})
	Register(OakLogBlockID, Properties{
		Name: "minecraft:oak_log", Solid: true,
		Textures: [6]string{
			"textures/oak_log.png",
			"textures/oak_log.png",
			"textures/oak_log_top.png",
			"textures/oak_log_top.png",
			"textures/oak_log.png",
			"textures/oak_log.png",
		},
	})
	Register(OakLeavesBlockID, Properties{
		Name: "minecraft:oak_leaves", Solid: true,
		Textures: sameTexture("textures/oak_leaves.png"),
	})
}
