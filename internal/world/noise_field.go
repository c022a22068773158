package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-sandbox/internal/util"
)

// Константы шума рельефа
const (
	SeaLevel = 62 // уровень моря

	TerrainScale       = 300.0  // размер деталей базового рельефа
	TerrainOctaves     = 3
	TerrainPersistence = 0.4

	MountainScale       = 1000.0 // размер деталей горного рельефа
	MountainOctaves     = 4
	MountainPersistence = 0.6

	BiomeScale = 200.0 // размер областей биомов

	terrainAmplitude  = 32.0
	mountainAmplitude = 80.0
)

// ColumnSample - значения шума для одной колонки мира
type ColumnSample struct {
	Base   int     // базовая высота поверхности
	Relief int     // добавка горного рельефа
	Biome  float64 // сырое значение шума биомов, примерно [-1, 1]
}

// NoiseField объединяет три независимых генератора шума:
// базовый рельеф, горы и биомы
type NoiseField struct {
	terrain  *util.FractalNoise
	mountain *util.FractalNoise
	biome    *util.FractalNoise
}

// NewNoiseField создаёт поле шума из одного сида
func NewNoiseField(seed int64) *NoiseField {
	return newNoiseField(rand.New(rand.NewSource(seed)))
}

func newNoiseField(rng *rand.Rand) *NoiseField {
	return &NoiseField{
		terrain:  util.NewFractalNoise(rng, TerrainOctaves, TerrainScale, TerrainPersistence),
		mountain: util.NewFractalNoise(rng, MountainOctaves, MountainScale, MountainPersistence),
		biome:    util.NewFractalNoise(rng, 1, BiomeScale, 1),
	}
}

// Sample возвращает значения шума для колонки (x, z).
// Чистая функция координат и сида.
func (nf *NoiseField) Sample(x, z int) ColumnSample {
	fx, fz := float64(x), float64(z)
	return ColumnSample{
		Base:   int(math.Round(nf.terrain.Sample(fx, fz)*terrainAmplitude + SeaLevel)),
		Relief: int(math.Round(math.Abs(nf.mountain.Sample(fx, fz)) * mountainAmplitude)),
		Biome:  nf.biome.Sample(fx, fz),
	}
}

// Precompute считает шум для всего прямоугольника width×depth.
// Индекс колонки: x*depth + z.
func (nf *NoiseField) Precompute(width, depth int) []ColumnSample {
	if width <= 0 || depth <= 0 {
		return nil
	}
	samples := make([]ColumnSample, 0, width*depth)
	for x := 0; x < width; x++ {
		for z := 0; z < depth; z++ {
			samples = append(samples, nf.Sample(x, z))
		}
	}
	return samples
}
