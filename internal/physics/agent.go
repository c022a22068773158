package physics

import (
	"errors"
	"fmt"
	"time"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Физические константы
const (
	Gravity      float32 = -32.174 // ускорение свободного падения, блоков/с²
	JumpSpeed    float32 = 8.0     // вертикальная скорость прыжка
	DefaultSpeed float32 = 4.317   // скорость ходьбы, блоков/с
	Clearance    float32 = 0.001   // зазор после выталкивания из блока
	GroundProbe  float32 = 0.01    // толщина щупа под ногами
	MaxPitch     float32 = 89.0
)

// Размер AABB игрока
var DefaultSize = mgl32.Vec3{0.6, 1.8, 0.6}

var (
	// ErrEmptyStore возвращается, если мир не содержит ни одного вокселя
	ErrEmptyStore = errors.New("physics: пустое хранилище вокселей")
	// ErrInvalidDelta возвращается для отрицательного или нечислового dt
	ErrInvalidDelta = errors.New("physics: некорректный шаг времени")
	// ErrInvalidLook возвращается для нечислового поворота камеры
	ErrInvalidLook = errors.New("physics: некорректный поворот")
)

// Agent - кинематическое состояние игрока
type Agent struct {
	Position mgl32.Vec3 // центр нижней грани AABB
	Velocity mgl32.Vec3 // блоков в секунду
	Size     mgl32.Vec3 // ширина, высота, глубина AABB
	Grounded bool       // стоит на опоре, можно прыгать

	Yaw   float32    // горизонтальный поворот в градусах
	Pitch float32    // вертикальный поворот в градусах
	Front mgl32.Vec3 // единичный вектор взгляда
	Speed float32    // базовая скорость движения
}

// NewAgent создаёт игрока в точке pos, смотрящего вдоль -Z
func NewAgent(pos mgl32.Vec3) *Agent {
	return &Agent{
		Position: pos,
		Size:     DefaultSize,
		Yaw:      -90,
		Pitch:    0,
		Front:    mgl32.Vec3{0, 0, -1},
		Speed:    DefaultSpeed,
	}
}

// BoundingBox возвращает текущий AABB игрока
func (a *Agent) BoundingBox() cube.BBox {
	return BoxAt(a.Position, a.Size)
}

// Look применяет приращения поворота; pitch ограничен ±89°.
// Нечисловые приращения отклоняются без изменения состояния.
func (a *Agent) Look(dyaw, dpitch float32) error {
	if !isFinite(dyaw) || !isFinite(dpitch) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidLook, dyaw, dpitch)
	}
	a.Yaw += dyaw
	a.Pitch = mgl32.Clamp(a.Pitch+dpitch, -MaxPitch, MaxPitch)
	a.updateFront()
	return nil
}

// Step продвигает игрока на dt секунд с учётом намерений и столкновений.
// Ошибка возвращается только при нарушении предусловий.
func (a *Agent) Step(world VoxelSource, dt float32, in Intent) error {
	if world == nil || world.Len() == 0 {
		return ErrEmptyStore
	}
	if dt < 0 || !isFinite(dt) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	start := time.Now()
	defer func() {
		stepDuration.Observe(time.Since(start).Seconds())
	}()

	a.updateFront()
	a.applyIntent(in)

	// Гравитация действует всегда, опору восстанавливает разрешение столкновений
	a.Velocity[1] += Gravity * dt

	tentative := a.Position.Add(a.Velocity.Mul(dt))
	resolved, landed := a.resolveCollisions(world, tentative)
	if landed {
		landings.Inc()
	}

	a.Grounded = a.probeGround(world, resolved)
	a.Position = resolved
	return nil
}

// updateFront пересчитывает вектор взгляда из yaw/pitch
func (a *Agent) updateFront() {
	yaw, pitch := mgl32.DegToRad(a.Yaw), mgl32.DegToRad(a.Pitch)
	a.Front = safeNormalize(mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	})
}

// applyIntent задаёт горизонтальную скорость и обрабатывает прыжок
func (a *Agent) applyIntent(in Intent) {
	forward := safeNormalize(mgl32.Vec3{a.Front.X(), 0, a.Front.Z()})
	right := safeNormalize(mgl32.Vec3{-a.Front.Z(), 0, a.Front.X()})

	var dir mgl32.Vec3
	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Backward {
		dir = dir.Sub(forward)
	}
	if in.Left {
		dir = dir.Sub(right)
	}
	if in.Right {
		dir = dir.Add(right)
	}
	dir = safeNormalize(dir)

	a.Velocity[0] = dir.X() * a.Speed
	a.Velocity[2] = dir.Z() * a.Speed

	if in.Jump && a.Grounded {
		a.Velocity[1] = JumpSpeed
		a.Grounded = false
	}
}

// resolveCollisions разрешает движение к tentative по осям X, Y, Z.
// На каждой оси координаты предыдущих осей уже разрешены. Возвращает
// итоговую позицию и признак приземления на оси Y.
func (a *Agent) resolveCollisions(world VoxelSource, tentative mgl32.Vec3) (mgl32.Vec3, bool) {
	pos := a.Position
	landed := false

	for axis := 0; axis < 3; axis++ {
		before := BoxAt(pos, a.Size)
		pos[axis] = tentative[axis]

		v := a.Velocity[axis]
		if v == 0 {
			continue
		}

		// Берём объём, заметённый по оси, чтобы не проскочить тонкую стену
		swept := sweptBox(before, BoxAt(pos, a.Size), axis)

		hit := false
		var limit float32
		SolidCells(world, swept, func(_ vec.Vec3, cellBox cube.BBox) {
			if v > 0 {
				face := cellBox.Min()[axis]
				if !hit || face < limit {
					limit = face
				}
			} else {
				face := cellBox.Max()[axis]
				if !hit || face > limit {
					limit = face
				}
			}
			hit = true
		})
		if !hit {
			continue
		}

		pos[axis] = a.snap(axis, v, limit)
		a.Velocity[axis] = 0
		collisions.WithLabelValues(axisNames[axis]).Inc()
		if axis == 1 && v < 0 {
			landed = true
		}
	}
	return pos, landed
}

// snap возвращает координату оси, при которой AABB касается грани face
// с зазором Clearance со стороны, противоположной скорости
func (a *Agent) snap(axis int, v, face float32) float32 {
	switch axis {
	case 1:
		if v > 0 {
			return face - a.Size.Y() - Clearance
		}
		return face + Clearance
	default:
		half := a.Size[axis] / 2
		if v > 0 {
			return face - half - Clearance
		}
		return face + half + Clearance
	}
}

// probeGround проверяет тонкий щуп под ногами в точке pos
func (a *Agent) probeGround(world VoxelSource, pos mgl32.Vec3) bool {
	hw, hd := a.Size.X()/2, a.Size.Z()/2
	probe := cube.Box(
		pos.X()-hw, pos.Y()-GroundProbe, pos.Z()-hd,
		pos.X()+hw, pos.Y(), pos.Z()+hd,
	)
	return CollidesWithWorld(world, probe)
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// safeNormalize нормализует вектор; нулевой и нечисловой векторы дают ноль
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.LenSqr(); !(l >= 1e-12) || math32.IsInf(l, 0) {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
