package world

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Voxel - единичный куб решётки с материалом
type Voxel struct {
	ID  block.BlockID // материал
	Pos vec.Vec3      // клетка решётки

	// VisibleFaces - производное для рендера значение, пересчитывается
	// RecomputeFaces. Порядок граней как в vec.FaceOffsets.
	VisibleFaces [6]bool

	// Dynamic - блок падает под действием пассивной гравитации
	Dynamic bool

	// Состояние падения: вертикальная позиция и скорость
	fallY   float32
	fallVel float32
}

// NewVoxel создаёт статичный воксель, все грани считаются видимыми
func NewVoxel(id block.BlockID, pos vec.Vec3) *Voxel {
	return &Voxel{
		ID:           id,
		Pos:          pos,
		VisibleFaces: [6]bool{true, true, true, true, true, true},
	}
}

// NewDynamicVoxel создаёт воксель, подверженный оседанию
func NewDynamicVoxel(id block.BlockID, pos vec.Vec3) *Voxel {
	v := NewVoxel(id, pos)
	v.Dynamic = true
	v.fallY = float32(pos.Y)
	return v
}

// IsSolid возвращает true для материалов, участвующих в столкновениях
func (v *Voxel) IsSolid() bool {
	return v.ID.IsSolid()
}
