package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Константы генерации
const (
	TreeChance         = 0.015 // шанс дерева на колонку
	LeafChance         = 0.7   // шанс каждого листа кроны
	SpawnAttempts      = 100   // попыток найти точку появления
	subsurfaceDepth    = 2     // слоёв подповерхностного материала под поверхностью
	noSurface          = math.MinInt32
	tracerInstrumentID = "github.com/annel0/voxel-sandbox/internal/world"
)

// TerrainGenerator генерирует ограниченный мир width×depth
type TerrainGenerator struct {
	Width int
	Depth int
	Seed  int64 // сид всей генерации: шум, деревья, точка появления
}

// Option настраивает генератор
type Option func(*TerrainGenerator)

// WithSeed фиксирует сид генерации (по умолчанию - случайный)
func WithSeed(seed int64) Option {
	return func(g *TerrainGenerator) {
		g.Seed = seed
	}
}

// NewTerrainGenerator создаёт генератор мира указанного размера
func NewTerrainGenerator(width, depth int, opts ...Option) *TerrainGenerator {
	g := &TerrainGenerator{
		Width: width,
		Depth: depth,
		Seed:  rand.Int63(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Assembly генерирует мир со случайным сидом процесса
func Assembly(width, depth int) (*Store, vec.Vec3) {
	return NewTerrainGenerator(width, depth).Generate(context.Background())
}

// Generate строит мир целиком и выбирает точку появления.
// Генерация не возвращает ошибок: при любых размерах результат есть.
func (g *TerrainGenerator) Generate(ctx context.Context) (*Store, vec.Vec3) {
	_, span := otel.Tracer(tracerInstrumentID).Start(ctx, "world.Generate",
		trace.WithAttributes(
			attribute.Int("world.width", g.Width),
			attribute.Int("world.depth", g.Depth),
			attribute.Int64("world.seed", g.Seed),
		))
	defer span.End()

	start := time.Now()
	store := NewStore()

	if g.Width <= 0 || g.Depth <= 0 {
		logging.Warn("⚠️ Пустой мир: размер %dx%d", g.Width, g.Depth)
		spawn := g.fallbackSpawn(nil)
		span.SetAttributes(attribute.Int("world.voxels", 0))
		return store, spawn
	}

	rng := rand.New(rand.NewSource(g.Seed))
	field := newNoiseField(rng)
	samples := field.Precompute(g.Width, g.Depth)

	// Высоты поверхности равнин и пустынь - кандидаты для появления
	surface := make([]int, g.Width*g.Depth)

	store.mu.Lock()
	for x := 0; x < g.Width; x++ {
		for z := 0; z < g.Depth; z++ {
			idx := x*g.Depth + z
			biome, height := ClassifyBiome(samples[idx])
			g.generateColumn(store, x, z, height, biome)

			if biome.IsSpawnable() {
				surface[idx] = height
			} else {
				surface[idx] = noSurface
			}
		}
	}
	store.mu.Unlock()

	trees := g.generateFeatures(store, rng)
	spawn := g.findSpawnPoint(store, surface, rng)

	voxels := store.Len()
	generationDuration.Observe(time.Since(start).Seconds())
	generatedVoxels.Set(float64(voxels))
	span.SetAttributes(
		attribute.Int("world.voxels", voxels),
		attribute.Int("world.trees", trees),
	)

	logging.LogWorldGenerated(g.Width, g.Depth, g.Seed, voxels, spawn.X, spawn.Y, spawn.Z)
	logging.Debug("Генерация заняла %v, деревьев: %d", time.Since(start), trees)
	return store, spawn
}

// generateColumn заполняет колонку (x, z) до высоты height.
// Вызывается под эксклюзивной блокировкой хранилища.
func (g *TerrainGenerator) generateColumn(store *Store, x, z, height int, biome BiomeType) {
	surfaceID, subsurfaceID := biome.Materials()

	for y := 1; y <= height; y++ {
		id := block.StoneBlockID
		switch {
		case y == height:
			id = surfaceID
		case y >= height-subsurfaceDepth:
			id = subsurfaceID
		}
		store.place(NewVoxel(id, vec.Vec3{X: x, Y: y, Z: z}))
	}

	if biome == BiomeOcean && height < SeaLevel {
		for y := height + 1; y <= SeaLevel; y++ {
			store.place(NewVoxel(block.WaterBlockID, vec.Vec3{X: x, Y: y, Z: z}))
		}
	}

	store.place(NewVoxel(block.BedrockBlockID, vec.Vec3{X: x, Y: 0, Z: z}))
}
