package physics

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// VoxelSource - то, что физика читает из мира
type VoxelSource interface {
	// SolidAt сообщает, занята ли клетка твёрдым блоком (вода не в счёт)
	SolidAt(pos vec.Vec3) bool
	// Len возвращает количество вокселей в мире
	Len() int
}

// BoxAt возвращает AABB сущности размера size, стоящей ногами в точке pos
// (pos - центр нижней грани)
func BoxAt(pos, size mgl32.Vec3) cube.BBox {
	hw, hd := size.X()/2, size.Z()/2
	return cube.Box(
		pos.X()-hw, pos.Y(), pos.Z()-hd,
		pos.X()+hw, pos.Y()+size.Y(), pos.Z()+hd,
	)
}

// VoxelBox возвращает единичный куб клетки решётки
func VoxelBox(cell vec.Vec3) cube.BBox {
	x, y, z := float32(cell.X), float32(cell.Y), float32(cell.Z)
	return cube.Box(x, y, z, x+1, y+1, z+1)
}

// Intersects проверяет строгое пересечение двух AABB по всем трём осям.
// Касание гранями пересечением не считается.
func Intersects(a, b cube.BBox) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin.X() < bMax.X() && aMax.X() > bMin.X() &&
		aMin.Y() < bMax.Y() && aMax.Y() > bMin.Y() &&
		aMin.Z() < bMax.Z() && aMax.Z() > bMin.Z()
}

// SolidCells вызывает fn для каждой твёрдой клетки, строго пересекающей box
func SolidCells(world VoxelSource, box cube.BBox, fn func(cell vec.Vec3, cellBox cube.BBox)) {
	min, max := box.Min(), box.Max()
	x0, x1 := int(math32.Floor(min.X())), int(math32.Floor(max.X()))
	y0, y1 := int(math32.Floor(min.Y())), int(math32.Floor(max.Y()))
	z0, z1 := int(math32.Floor(min.Z())), int(math32.Floor(max.Z()))

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				cell := vec.Vec3{X: x, Y: y, Z: z}
				if !world.SolidAt(cell) {
					continue
				}
				cellBox := VoxelBox(cell)
				if Intersects(box, cellBox) {
					fn(cell, cellBox)
				}
			}
		}
	}
}

// CollidesWithWorld проверяет, пересекает ли box хотя бы одну твёрдую клетку
func CollidesWithWorld(world VoxelSource, box cube.BBox) bool {
	hit := false
	SolidCells(world, box, func(vec.Vec3, cube.BBox) {
		hit = true
	})
	return hit
}

// sweptBox растягивает box вдоль оси axis от позиции from до позиции to
func sweptBox(from, to cube.BBox, axis int) cube.BBox {
	min, max := to.Min(), to.Max()
	min[axis] = math32.Min(from.Min()[axis], to.Min()[axis])
	max[axis] = math32.Max(from.Max()[axis], to.Max()[axis])
	return cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
}
