package vec

// Vec2 задаёт колонку мира на горизонтальной плоскости (X, Z)
type Vec2 struct {
	X, Z int
}

// At возвращает точку колонки на высоте y
func (v Vec2) At(y int) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Z}
}

// Index возвращает индекс колонки в плоском массиве мира глубиной depth
// (порядок x-major, как при генерации)
func (v Vec2) Index(depth int) int {
	return v.X*depth + v.Z
}

// InBounds проверяет, лежит ли колонка в прямоугольнике [0,width)×[0,depth)
func (v Vec2) InBounds(width, depth int) bool {
	return v.X >= 0 && v.X < width && v.Z >= 0 && v.Z < depth
}
