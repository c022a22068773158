package game

import (
	"context"
	"math"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt float32 = 1.0 / 60

func newTestSession(t *testing.T, settle bool) *Session {
	t.Helper()
	return NewSession(context.Background(), Options{Width: 16, Depth: 16, Seed: 42, Settle: settle})
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, true)

	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err, "ID сессии - UUID")
	assert.Equal(t, int64(42), s.Seed)
	assert.Positive(t, s.Store.Len())
	assert.InDelta(t, float32(s.Spawn.X)+0.5, s.Agent.Position.X(), 1e-6, "Игрок в центре клетки")
	assert.InDelta(t, float32(s.Spawn.Y), s.Agent.Position.Y(), 1e-6)
	assert.False(t, s.Store.RecomputeFacesIfDirty(), "Грани посчитаны при создании")
}

func TestSessionTickAgentSettlesOnGround(t *testing.T) {
	s := newTestSession(t, true)

	for i := 0; i < 240; i++ {
		_, err := s.Tick(context.Background(), physics.Intent{}, 0, 0, dt)
		require.NoError(t, err)
	}
	assert.True(t, s.Agent.Grounded, "После падения игрок стоит на земле")
	assert.Equal(t, uint64(240), s.Ticks)
}

func TestSessionTickInvalidDelta(t *testing.T) {
	s := newTestSession(t, false)

	_, err := s.Tick(context.Background(), physics.Intent{}, 0, 0, -1)
	assert.ErrorIs(t, err, physics.ErrInvalidDelta)
	assert.Zero(t, s.Ticks, "Ошибочный тик не засчитывается")
}

func TestSessionTickLook(t *testing.T) {
	s := newTestSession(t, false)

	_, err := s.Tick(context.Background(), physics.Intent{}, 30, 200, dt)
	require.NoError(t, err)
	assert.Equal(t, float32(-60), s.Agent.Yaw)
	assert.Equal(t, physics.MaxPitch, s.Agent.Pitch)
}

func TestDropVoxelSettles(t *testing.T) {
	s := newTestSession(t, true)
	// Высоко над миром, над опорной колонкой 0,0
	top := vec.Vec3{X: 0, Y: 300, Z: 0}
	floor := vec.Vec3{X: 0, Y: 250, Z: 0}
	require.NoError(t, s.DropVoxel(block.StoneBlockID, floor))
	require.NoError(t, s.DropVoxel(block.SandBlockID, top))
	assert.Equal(t, 1, s.Store.DynamicCount(), "Песок падает, камень висит")

	settled := 0
	for i := 0; i < 600 && s.Store.DynamicCount() > 0; i++ {
		res, err := s.Tick(context.Background(), physics.Intent{}, 0, 0, dt)
		require.NoError(t, err)
		settled += res.Settled
	}

	assert.Equal(t, 1, settled)
	assert.Equal(t, block.SandBlockID, s.Store.BlockAt(floor.Up(1)), "Песок лёг на камень")
}

func TestDropVoxelWithoutSettling(t *testing.T) {
	s := newTestSession(t, false)
	pos := vec.Vec3{X: 1, Y: 300, Z: 1}

	require.NoError(t, s.DropVoxel(block.SandBlockID, pos))
	assert.Zero(t, s.Store.DynamicCount(), "Без оседания песок статичен")
	assert.Equal(t, block.SandBlockID, s.Store.BlockAt(pos))
}

func TestDropVoxelUnknownMaterial(t *testing.T) {
	s := newTestSession(t, false)

	assert.ErrorIs(t, s.DropVoxel(block.AirBlockID, vec.Vec3{}), ErrUnknownMaterial)
	assert.ErrorIs(t, s.DropVoxel(block.BlockID(200), vec.Vec3{}), ErrUnknownMaterial)
}

func TestSessionTickRejectsNaNLook(t *testing.T) {
	s := newTestSession(t, false)
	before := s.Agent.Position

	_, err := s.Tick(context.Background(), physics.Intent{Forward: true}, float32(math.NaN()), 0, dt)
	assert.ErrorIs(t, err, physics.ErrInvalidLook)
	assert.Equal(t, before, s.Agent.Position, "Тик с ошибкой не двигает игрока")
	assert.Zero(t, s.Ticks)
}
