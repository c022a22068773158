package world

import (
	"math"
	"sort"

	"github.com/annel0/voxel-sandbox/internal/vec"
)

const (
	// SettleGravity - ускорение падающих блоков, мягче гравитации игрока
	SettleGravity float32 = -9.8
	// VoidLevel - ниже этой высоты падающий блок останавливается
	VoidLevel = -64
)

// Settle продвигает падающие воксели на dt секунд. Воксель, который
// войдёт в твёрдую клетку, встаёт в клетку над ней и навсегда
// становится статичным. Возвращает количество осевших за шаг.
func (s *Store) Settle(dt float32) int {
	if dt <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.dynamic) == 0 {
		return 0
	}

	// Снизу вверх, чтобы стопка оседала за один проход
	positions := make([]vec.Vec3, 0, len(s.dynamic))
	for pos := range s.dynamic {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})

	settled := 0
	for _, pos := range positions {
		v, ok := s.voxels.Get(pos)
		if !ok || !v.Dynamic {
			delete(s.dynamic, pos)
			continue
		}
		if s.fall(v, dt) {
			settled++
		}
	}

	settleSteps.Inc()
	settledTotal.Add(float64(settled))
	return settled
}

// fall продвигает один воксель, true - если он осел
func (s *Store) fall(v *Voxel, dt float32) bool {
	v.fallVel += SettleGravity * dt
	newY := v.fallY + v.fallVel*dt
	newCell := int(math.Floor(float64(newY)))
	cur := v.Pos.Y

	land := func(y int) {
		v.Dynamic = false
		v.fallVel = 0
		v.fallY = float32(y)
		delete(s.dynamic, v.Pos)
		s.move(v.Pos, vec.Vec3{X: v.Pos.X, Y: y, Z: v.Pos.Z})
		s.version++
	}

	// Проверяем все клетки на пути, чтобы не пролететь сквозь опору
	for y := cur - 1; y >= newCell; y-- {
		if y < VoidLevel {
			land(VoidLevel)
			return true
		}
		if s.solidAt(vec.Vec3{X: v.Pos.X, Y: y, Z: v.Pos.Z}) {
			land(y + 1)
			return true
		}
	}

	v.fallY = newY
	if newCell != cur {
		s.move(v.Pos, vec.Vec3{X: v.Pos.X, Y: newCell, Z: v.Pos.Z})
	}
	return false
}
