package world

import (
	"math/rand"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

const (
	minTrunkHeight = 4
	maxTrunkHeight = 6
	crownRadius    = 2
)

// generateFeatures расставляет деревья и возвращает их количество.
// Поверхность пересчитывается по всему хранилищу заново: здесь нужны
// и каменные колонки гор, которых нет в карте точек появления.
func (g *TerrainGenerator) generateFeatures(store *Store, rng *rand.Rand) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	surface := make([]int, g.Width*g.Depth)
	for i := range surface {
		surface[i] = noSurface
	}

	for el := store.voxels.Front(); el != nil; el = el.Next() {
		v := el.Value
		switch v.ID {
		case block.GrassBlockID, block.SandBlockID, block.StoneBlockID:
		default:
			continue
		}
		col := v.Pos.Column()
		if !col.InBounds(g.Width, g.Depth) {
			continue
		}
		if idx := col.Index(g.Depth); v.Pos.Y > surface[idx] {
			surface[idx] = v.Pos.Y
		}
	}

	trees := 0
	for x := 0; x < g.Width; x++ {
		for z := 0; z < g.Depth; z++ {
			if rng.Float64() >= TreeChance {
				continue
			}
			if y := surface[x*g.Depth+z]; y != noSurface {
				placeTree(store, vec.Vec3{X: x, Y: y, Z: z}, rng)
				trees++
			}
		}
	}

	treesPlaced.Add(float64(trees))
	return trees
}

// placeTree ставит ствол над клеткой root и крону вокруг его вершины.
// Пересечения с уже стоящими блоками не проверяются: побеждает
// последняя запись.
func placeTree(store *Store, root vec.Vec3, rng *rand.Rand) {
	trunk := minTrunkHeight + rng.Intn(maxTrunkHeight-minTrunkHeight+1)
	for dy := 1; dy <= trunk; dy++ {
		store.place(NewVoxel(block.OakLogBlockID, root.Up(dy)))
	}

	center := root.Up(trunk + 1)
	for dx := -crownRadius; dx <= crownRadius; dx++ {
		for dz := -crownRadius; dz <= crownRadius; dz++ {
			for dy := -1; dy <= 1; dy++ {
				// Углы квадрата 5×5 пропускаем
				if abs(dx) == crownRadius && abs(dz) == crownRadius {
					continue
				}
				if rng.Float64() < LeafChance {
					store.place(NewVoxel(block.OakLeavesBlockID, center.Add(vec.Vec3{X: dx, Y: dy, Z: dz})))
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
