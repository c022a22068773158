package vec

// Vec3 представляет точку целочисленной решётки вокселей
type Vec3 struct {
	X int
	Y int
	Z int
}

// Смещения к шести соседям в порядке граней: +Z, -Z, +Y, -Y, -X, +X
var FaceOffsets = [6]Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
}

// Column возвращает колонку (X, Z), в которой лежит точка
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Up возвращает точку на n клеток выше
func (v Vec3) Up(n int) Vec3 {
	return Vec3{X: v.X, Y: v.Y + n, Z: v.Z}
}
