package game

import (
	"context"
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/voxel-sandbox/internal/game"

// Options параметры сессии
type Options struct {
	Width  int
	Depth  int
	Seed   int64
	Random bool // игнорировать Seed и взять случайный
	Settle bool // включить оседание сыпучих блоков
}

// Session владеет миром и игроком и прогоняет их по тикам.
// Методы сессии не предназначены для конкурентного вызова.
type Session struct {
	ID     string
	Seed   int64
	Store  *world.Store
	Agent  *physics.Agent
	Spawn  vec.Vec3
	Ticks  uint64
	settle bool
}

// NewSession генерирует мир и ставит игрока в центр клетки появления
func NewSession(ctx context.Context, opts Options) *Session {
	var genOpts []world.Option
	if !opts.Random {
		genOpts = append(genOpts, world.WithSeed(opts.Seed))
	}
	gen := world.NewTerrainGenerator(opts.Width, opts.Depth, genOpts...)
	store, spawn := gen.Generate(ctx)
	store.RecomputeFaces()

	s := &Session{
		ID:    uuid.NewString(),
		Seed:  gen.Seed,
		Store: store,
		Agent: physics.NewAgent(mgl32.Vec3{
			float32(spawn.X) + 0.5,
			float32(spawn.Y),
			float32(spawn.Z) + 0.5,
		}),
		Spawn:  spawn,
		settle: opts.Settle,
	}
	logging.Info("🎮 Сессия %s создана, игрок в (%d,%d,%d)", s.ID, spawn.X, spawn.Y, spawn.Z)
	return s
}

// TickResult итог одного тика
type TickResult struct {
	Settled         int  // осевших блоков
	FacesRecomputed bool // менялась ли видимость граней
}

// Tick применяет поворот камеры, шаг физики, оседание блоков и при
// необходимости пересчитывает видимость граней.
func (s *Session) Tick(ctx context.Context, in physics.Intent, dyaw, dpitch, dt float32) (TickResult, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "game.Tick",
		trace.WithAttributes(attribute.Int64("game.tick", int64(s.Ticks))))
	defer span.End()

	var res TickResult
	from := s.Agent.Position

	if err := s.Agent.Look(dyaw, dpitch); err != nil {
		span.RecordError(err)
		return res, fmt.Errorf("тик %d: %w", s.Ticks, err)
	}
	if err := s.Agent.Step(s.Store, dt, in); err != nil {
		span.RecordError(err)
		return res, fmt.Errorf("тик %d: %w", s.Ticks, err)
	}

	to := s.Agent.Position
	logging.LogAgentMovement(s.ID, from.X(), from.Y(), from.Z(), to.X(), to.Y(), to.Z(), s.Agent.Grounded)

	if s.settle {
		res.Settled = s.Store.Settle(dt)
	}
	res.FacesRecomputed = s.Store.RecomputeFacesIfDirty()

	s.Ticks++
	return res, nil
}

// DropVoxel ставит блок материала id в клетку pos. Сыпучие материалы
// становятся падающими и оседают в следующих тиках.
func (s *Session) DropVoxel(id block.BlockID, pos vec.Vec3) error {
	if !block.IsValidBlockID(id) || id == block.AirBlockID {
		return fmt.Errorf("%w: %d", ErrUnknownMaterial, id)
	}
	if id.IsLoose() && s.settle {
		s.Store.Place(world.NewDynamicVoxel(id, pos))
	} else {
		s.Store.Place(world.NewVoxel(id, pos))
	}
	logging.Debug("🧱 Блок %s поставлен в (%d,%d,%d)", id, pos.X, pos.Y, pos.Z)
	return nil
}
