package util

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина, общие для всех генераторов
const (
	perlinLacunarity = 2.0 // рост частоты между октавами (beta в go-perlin)
	offsetRange      = 4096.0
	// Двумерный шум go-perlin ограничен ±√0.5, растягиваем до ±1
	perlin2DGain = math.Sqrt2
)

// FractalNoise - многооктавный шум Перлина с заданной частотой и смещением.
// Значение Sample нормировано суммой амплитуд и лежит в [-1, 1].
type FractalNoise struct {
	perlin      *perlin.Perlin
	frequency   float64
	offsetX     float64
	offsetZ     float64
	octaves     int
	persistence float64
	norm        float64
}

// RandSource - источник случайных чисел, из которого берутся сид и смещения
type RandSource interface {
	Int63() int64
	Float64() float64
}

// NewFractalNoise создаёт генератор шума.
// persistence - затухание амплитуды между октавами, scale - размер
// характерных деталей в мировых единицах (частота = 1/scale).
func NewFractalNoise(rng RandSource, octaves int, scale, persistence float64) *FractalNoise {
	if octaves < 1 {
		octaves = 1
	}
	if persistence <= 0 {
		persistence = 0.5
	}

	seed := rng.Int63()
	// Узлы решётки шума Перлина всегда дают 0, поэтому сдвигаем
	// начало координат на случайную нецелую величину
	offsetX := rng.Float64() * offsetRange
	offsetZ := rng.Float64() * offsetRange

	// go-perlin делит вклад каждой следующей октавы на alpha
	alpha := 1.0 / persistence

	norm := 0.0
	amplitude := 1.0
	for i := 0; i < octaves; i++ {
		norm += amplitude
		amplitude *= persistence
	}

	return &FractalNoise{
		perlin:      perlin.NewPerlin(alpha, perlinLacunarity, int32(octaves), seed),
		frequency:   1.0 / scale,
		offsetX:     offsetX,
		offsetZ:     offsetZ,
		octaves:     octaves,
		persistence: persistence,
		norm:        norm,
	}
}

// Sample возвращает значение шума в точке мира (x, z)
func (n *FractalNoise) Sample(x, z float64) float64 {
	v := n.perlin.Noise2D(x*n.frequency+n.offsetX, z*n.frequency+n.offsetZ) * perlin2DGain / n.norm
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// Octaves возвращает количество октав
func (n *FractalNoise) Octaves() int {
	return n.octaves
}

// Persistence возвращает затухание амплитуды между октавами
func (n *FractalNoise) Persistence() float64 {
	return n.persistence
}
