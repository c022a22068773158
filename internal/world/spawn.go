package world

import (
	"math/rand"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// spawnClearance - сколько клеток над поверхностью должно быть свободно
const spawnClearance = 2

// findSpawnPoint ищет колонку равнины или пустыни со свободным местом
// над поверхностью. Если за SpawnAttempts попыток не нашлось, берёт
// центр мира.
func (g *TerrainGenerator) findSpawnPoint(store *Store, surface []int, rng *rand.Rand) vec.Vec3 {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for i := 0; i < SpawnAttempts; i++ {
		col := vec.Vec2{X: rng.Intn(g.Width), Z: rng.Intn(g.Depth)}
		height := surface[col.Index(g.Depth)]
		if height == noSurface {
			continue
		}
		if isSpaceClear(store, col.At(height)) {
			return col.At(height + spawnClearance)
		}
	}

	spawnFallbacks.Inc()
	logging.Warn("⚠️ Свободная колонка для появления не найдена, используется центр мира")
	return g.fallbackSpawn(surface)
}

// isSpaceClear проверяет, что над клеткой поверхности нет твёрдых блоков.
// Вода не мешает. Вызывается под блокировкой хранилища.
func isSpaceClear(store *Store, top vec.Vec3) bool {
	for dy := 1; dy <= spawnClearance; dy++ {
		if store.solidAt(top.Up(dy)) {
			return false
		}
	}
	return true
}

// fallbackSpawn возвращает точку над центром мира. Свободное место
// здесь не проверяется.
func (g *TerrainGenerator) fallbackSpawn(surface []int) vec.Vec3 {
	center := vec.Vec2{X: g.Width / 2, Z: g.Depth / 2}
	height := SeaLevel
	if center.InBounds(g.Width, g.Depth) && surface != nil {
		if h := surface[center.Index(g.Depth)]; h != noSurface {
			height = h
		}
	}
	return center.At(height + spawnClearance)
}
