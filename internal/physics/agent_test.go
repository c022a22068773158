package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickDt float32 = 1.0 / 60

// gridWorld - минимальный мир из твёрдых клеток
type gridWorld map[vec.Vec3]bool

func (g gridWorld) SolidAt(pos vec.Vec3) bool { return g[pos] }
func (g gridWorld) Len() int                  { return len(g) }

// flatWorld строит каменный пол y=0 размером (2r+1)×(2r+1)
func flatWorld(r int) gridWorld {
	g := gridWorld{}
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			g[vec.Vec3{X: x, Y: 0, Z: z}] = true
		}
	}
	return g
}

func stepN(t *testing.T, a *Agent, w VoxelSource, n int, in Intent) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, a.Step(w, tickDt, in))
	}
}

func TestAgentRestsOnFloor(t *testing.T) {
	w := flatWorld(3)
	a := NewAgent(mgl32.Vec3{0.5, 1, 0.5})

	stepN(t, a, w, 120, Intent{})

	assert.InDelta(t, 1+Clearance, a.Position.Y(), 1e-4, "Игрок должен стоять на полу с зазором")
	assert.InDelta(t, 0.5, a.Position.X(), 1e-6)
	assert.InDelta(t, 0.5, a.Position.Z(), 1e-6)
	assert.True(t, a.Grounded, "Игрок на полу должен быть на земле")
	assert.Zero(t, a.Velocity.Y(), "Вертикальная скорость гасится полом")
}

func TestAgentFallsAndLands(t *testing.T) {
	w := flatWorld(2)
	a := NewAgent(mgl32.Vec3{0.5, 10, 0.5})

	require.NoError(t, a.Step(w, tickDt, Intent{}))
	assert.False(t, a.Grounded, "В воздухе игрок не на земле")
	assert.Less(t, a.Velocity.Y(), float32(0))

	stepN(t, a, w, 180, Intent{})
	assert.True(t, a.Grounded)
	assert.InDelta(t, 1+Clearance, a.Position.Y(), 1e-4)
}

func TestAgentJump(t *testing.T) {
	w := flatWorld(3)
	a := NewAgent(mgl32.Vec3{0.5, 1, 0.5})
	stepN(t, a, w, 5, Intent{})
	require.True(t, a.Grounded)

	a.applyIntent(Intent{Jump: true})
	assert.Equal(t, JumpSpeed, a.Velocity.Y(), "Прыжок задаёт вертикальную скорость")
	assert.False(t, a.Grounded, "После прыжка игрок не на земле")

	maxY := a.Position.Y()
	for i := 0; i < 120 && (i == 0 || !a.Grounded); i++ {
		require.NoError(t, a.Step(w, tickDt, Intent{}))
		if a.Position.Y() > maxY {
			maxY = a.Position.Y()
		}
	}

	assert.Greater(t, maxY, float32(1.8), "Прыжок поднимает почти на блок")
	assert.True(t, a.Grounded, "Игрок должен приземлиться")
	assert.Zero(t, a.Velocity.Y(), "После приземления вертикальная скорость нулевая")
	assert.InDelta(t, 1+Clearance, a.Position.Y(), 1e-4)
}

func TestAgentCannotJumpInAir(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 50, 0})
	a.Velocity[1] = -3

	a.applyIntent(Intent{Jump: true})
	assert.Equal(t, float32(-3), a.Velocity.Y(), "В воздухе прыжок игнорируется")
}

func TestAgentStopsAtWall(t *testing.T) {
	w := flatWorld(4)
	for z := -4; z <= 4; z++ {
		w[vec.Vec3{X: 3, Y: 1, Z: z}] = true
		w[vec.Vec3{X: 3, Y: 2, Z: z}] = true
	}

	a := NewAgent(mgl32.Vec3{0.5, 1, 0.5})
	require.NoError(t, a.Look(90, 0)) // смотрим вдоль +X
	stepN(t, a, w, 120, Intent{Forward: true})

	assert.InDelta(t, 3-a.Size.X()/2-Clearance, a.Position.X(), 1e-3, "Игрок упирается в стену")
	assert.Zero(t, a.Velocity.X(), "Скорость вдоль стены гасится")
	assert.InDelta(t, 0.5, a.Position.Z(), 1e-3, "Боковой дрейф отсутствует")
	assert.True(t, a.Grounded)
}

func TestAgentHitsCeiling(t *testing.T) {
	w := flatWorld(2)
	w[vec.Vec3{X: 0, Y: 3, Z: 0}] = true

	a := NewAgent(mgl32.Vec3{0.5, 1 + Clearance, 0.5})
	a.Grounded = true
	a.applyIntent(Intent{Jump: true})
	require.NoError(t, a.Step(w, 0.1, Intent{}))

	assert.LessOrEqual(t, a.Position.Y()+a.Size.Y(), float32(3), "Голова не входит в потолок")
	assert.Zero(t, a.Velocity.Y(), "Удар о потолок гасит скорость")
}

func TestAgentOpposingIntentsCancel(t *testing.T) {
	a := NewAgent(mgl32.Vec3{})
	a.applyIntent(Intent{Forward: true, Backward: true, Left: true, Right: true})

	assert.Zero(t, a.Velocity.X())
	assert.Zero(t, a.Velocity.Z())
}

func TestAgentDiagonalSpeed(t *testing.T) {
	a := NewAgent(mgl32.Vec3{})
	a.applyIntent(Intent{Forward: true, Right: true})

	horizontal := mgl32.Vec2{a.Velocity.X(), a.Velocity.Z()}.Len()
	assert.InDelta(t, DefaultSpeed, horizontal, 1e-4, "Диагональ не быстрее прямого движения")
}

func TestAgentForwardFollowsYaw(t *testing.T) {
	a := NewAgent(mgl32.Vec3{})
	a.applyIntent(Intent{Forward: true})

	assert.InDelta(t, 0, a.Velocity.X(), 1e-5)
	assert.InDelta(t, -DefaultSpeed, a.Velocity.Z(), 1e-5, "По умолчанию игрок идёт вдоль -Z")
}

func TestAgentNeverOverlapsWorld(t *testing.T) {
	w := flatWorld(12)
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 25; i++ {
		x, z := rng.Intn(21)-10, rng.Intn(21)-10
		if x == 0 && z == 0 {
			continue
		}
		h := 1 + rng.Intn(3)
		for y := 1; y <= h; y++ {
			w[vec.Vec3{X: x, Y: y, Z: z}] = true
		}
	}

	a := NewAgent(mgl32.Vec3{0.5, 1, 0.5})
	for i := 0; i < 1200; i++ {
		if i%30 == 0 {
			require.NoError(t, a.Look(float32(rng.Intn(360)), 0))
		}
		in := Intent{
			Forward: rng.Intn(2) == 0,
			Left:    rng.Intn(4) == 0,
			Right:   rng.Intn(4) == 0,
			Jump:    rng.Intn(10) == 0,
		}
		require.NoError(t, a.Step(w, tickDt, in))
		require.False(t, CollidesWithWorld(w, a.BoundingBox()),
			"Тик %d: игрок пересекает мир в %v", i, a.Position)
	}
}

func TestAgentStepPreconditions(t *testing.T) {
	a := NewAgent(mgl32.Vec3{})

	assert.ErrorIs(t, a.Step(gridWorld{}, tickDt, Intent{}), ErrEmptyStore)
	assert.ErrorIs(t, a.Step(nil, tickDt, Intent{}), ErrEmptyStore)

	w := flatWorld(1)
	assert.ErrorIs(t, a.Step(w, -1, Intent{}), ErrInvalidDelta)
	assert.ErrorIs(t, a.Step(w, float32(math.NaN()), Intent{}), ErrInvalidDelta)
	assert.ErrorIs(t, a.Step(w, float32(math.Inf(1)), Intent{}), ErrInvalidDelta)
	assert.Equal(t, mgl32.Vec3{}, a.Position, "Ошибочный шаг не меняет состояние")
}

func TestAgentZeroDeltaKeepsPosition(t *testing.T) {
	w := flatWorld(1)
	a := NewAgent(mgl32.Vec3{0.5, 1 + Clearance, 0.5})

	require.NoError(t, a.Step(w, 0, Intent{Forward: true}))
	assert.Equal(t, mgl32.Vec3{0.5, 1 + Clearance, 0.5}, a.Position)
	assert.True(t, a.Grounded)
}

func TestAgentLookClampsPitch(t *testing.T) {
	a := NewAgent(mgl32.Vec3{})
	assert.Equal(t, float32(-90), a.Yaw, "Начальный поворот вдоль -Z")

	require.NoError(t, a.Look(0, 120))
	assert.Equal(t, MaxPitch, a.Pitch)
	require.NoError(t, a.Look(0, -500))
	assert.Equal(t, -MaxPitch, a.Pitch)
	assert.InDelta(t, 1, a.Front.Len(), 1e-5, "Вектор взгляда единичный")
}

func TestAgentLookRejectsNonFinite(t *testing.T) {
	w := flatWorld(2)
	a := NewAgent(mgl32.Vec3{0.5, 1, 0.5})
	require.NoError(t, a.Look(30, 10))
	yaw, pitch, front := a.Yaw, a.Pitch, a.Front

	nan := float32(math.NaN())
	inf := float32(math.Inf(-1))
	assert.ErrorIs(t, a.Look(nan, 0), ErrInvalidLook)
	assert.ErrorIs(t, a.Look(0, nan), ErrInvalidLook)
	assert.ErrorIs(t, a.Look(inf, 0), ErrInvalidLook)

	assert.Equal(t, yaw, a.Yaw, "Отклонённый поворот не меняет yaw")
	assert.Equal(t, pitch, a.Pitch)
	assert.Equal(t, front, a.Front)

	stepN(t, a, w, 30, Intent{Forward: true})
	assert.False(t, math.IsNaN(float64(a.Position.X())), "Позиция остаётся числовой")
	assert.False(t, math.IsNaN(float64(a.Position.Z())))
}

func TestSafeNormalizeNaN(t *testing.T) {
	nan := float32(math.NaN())
	assert.Equal(t, mgl32.Vec3{}, safeNormalize(mgl32.Vec3{nan, 0, 1}))
	assert.Equal(t, mgl32.Vec3{}, safeNormalize(mgl32.Vec3{}))
	assert.InDelta(t, 1, safeNormalize(mgl32.Vec3{3, 0, 4}).Len(), 1e-6)
}
