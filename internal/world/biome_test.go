package world

import (
	"testing"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const biomeWindow = 48 // размер тестового мира

// seedWithBiome ищет сид, при котором в мире biomeWindow×biomeWindow есть колонка биома b
func seedWithBiome(t *testing.T, b BiomeType) int64 {
	t.Helper()
	for seed := int64(1); seed <= 2000; seed++ {
		field := NewNoiseField(seed)
		for x := 0; x < biomeWindow; x += 3 {
			for z := 0; z < biomeWindow; z += 3 {
				if got, _ := ClassifyBiome(field.Sample(x, z)); got == b {
					return seed
				}
			}
		}
	}
	require.FailNow(t, "Не найден сид с биомом", "%s", b)
	return 0
}

func TestBiomeSamplerCoversFullRange(t *testing.T) {
	counts := make(map[BiomeType]int)
	minV, maxV := 1.0, -1.0
	for seed := int64(1); seed <= 20; seed++ {
		field := NewNoiseField(seed)
		for x := 0; x < 400; x += 4 {
			for z := 0; z < 400; z += 4 {
				s := field.Sample(x, z)
				minV = min(minV, s.Biome)
				maxV = max(maxV, s.Biome)
				b, _ := ClassifyBiome(s)
				counts[b]++
			}
		}
	}

	assert.GreaterOrEqual(t, minV, -1.0)
	assert.LessOrEqual(t, maxV, 1.0)
	assert.Greater(t, maxV, MountainsMax, "Шум биомов должен доходить до океана")
	assert.Less(t, minV, DesertMax, "Шум биомов должен доходить до пустыни")
	for _, b := range []BiomeType{BiomeDesert, BiomePlains, BiomeMountains, BiomeOcean} {
		assert.Positive(t, counts[b], "Биом %s должен встречаться", b)
	}
}

func TestGenerateProducesEveryBiome(t *testing.T) {
	for _, b := range []BiomeType{BiomeDesert, BiomePlains, BiomeMountains, BiomeOcean} {
		t.Run(b.String(), func(t *testing.T) {
			seed := seedWithBiome(t, b)
			store, _ := NewTerrainGenerator(biomeWindow, biomeWindow, WithSeed(seed)).Generate(testContext(t))
			samples := NewNoiseField(seed).Precompute(biomeWindow, biomeWindow)
			surface, _ := b.Materials()

			found := false
			for x := 0; x < biomeWindow && !found; x++ {
				for z := 0; z < biomeWindow && !found; z++ {
					col := vec.Vec2{X: x, Z: z}
					biome, height := ClassifyBiome(samples[col.Index(biomeWindow)])
					if biome != b || store.BlockAt(col.At(height)) != surface {
						continue
					}
					if b == BiomeOcean && !waterFilled(store, col, height) {
						continue
					}
					found = true
				}
			}
			assert.True(t, found, "В мире сида %d должна быть колонка биома %s", seed, b)
		})
	}
}

// waterFilled проверяет, что колонка залита водой от height+1 до уровня моря
func waterFilled(store *Store, col vec.Vec2, height int) bool {
	for y := height + 1; y <= SeaLevel; y++ {
		if store.BlockAt(col.At(y)) != block.WaterBlockID {
			return false
		}
	}
	return store.BlockAt(col.At(SeaLevel+1)) == block.AirBlockID
}
