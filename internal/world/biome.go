package world

import (
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// BiomeType представляет тип биома колонки
type BiomeType int

const (
	BiomeDesert BiomeType = iota
	BiomePlains
	BiomeMountains
	BiomeOcean
)

// Пороги шума биомов и добавки к высоте
const (
	DesertMax    = -0.4 // ниже - пустыня
	PlainsMax    = 0.1  // ниже - равнины
	MountainsMax = 0.6  // ниже - горы, выше - океан

	desertLift = 5
	plainsLift = 10
	oceanDepth = 10 // глубина дна океана под уровнем моря
)

type biomeMaterials struct {
	surface    block.BlockID
	subsurface block.BlockID
}

var biomeTable = [...]biomeMaterials{
	BiomeDesert:    {surface: block.SandBlockID, subsurface: block.SandBlockID},
	BiomePlains:    {surface: block.GrassBlockID, subsurface: block.DirtBlockID},
	BiomeMountains: {surface: block.StoneBlockID, subsurface: block.StoneBlockID},
	BiomeOcean:     {surface: block.SandBlockID, subsurface: block.DirtBlockID},
}

// String возвращает имя биома
func (b BiomeType) String() string {
	switch b {
	case BiomeDesert:
		return "Desert"
	case BiomePlains:
		return "Plains"
	case BiomeMountains:
		return "Mountains"
	case BiomeOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}

// Materials возвращает материал поверхности и подповерхностного слоя
func (b BiomeType) Materials() (surface, subsurface block.BlockID) {
	m := biomeTable[b]
	return m.surface, m.subsurface
}

// IsSpawnable сообщает, может ли игрок появиться в колонке этого биома
func (b BiomeType) IsSpawnable() bool {
	return b == BiomePlains || b == BiomeDesert
}

// ClassifyBiome определяет биом колонки и итоговую высоту поверхности
func ClassifyBiome(s ColumnSample) (BiomeType, int) {
	switch {
	case s.Biome < DesertMax:
		return BiomeDesert, s.Base + desertLift
	case s.Biome < PlainsMax:
		return BiomePlains, s.Base + plainsLift
	case s.Biome < MountainsMax:
		return BiomeMountains, s.Base + s.Relief
	default:
		return BiomeOcean, SeaLevel - oceanDepth
	}
}
