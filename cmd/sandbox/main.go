package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/game"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/observability"
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/getsentry/sentry-go"
)

// Каждые statusEvery тиков выводится состояние игрока
const statusEvery = 60

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или GAME_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logging.SetLogDir(cfg.Logging.GetDir())
	logger, err := logging.NewLogger(cfg.Logging.GetComponent())
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	level := logging.ParseLevel(cfg.Logging.GetLevel())
	logger.SetLevels(level, logging.DEBUG)
	logging.SetDefaultLogger(logger)
	logging.GetLoggerManager().SetLevels(level, logging.DEBUG)
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	if dsn := cfg.Sentry.GetDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logging.Warn("⚠️ Sentry не инициализирован: %v", err)
		} else {
			defer sentry.Flush(5 * time.Second)
			defer sentry.Recover()
		}
	}

	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		sentry.CaptureException(err)
		sentry.Flush(5 * time.Second)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info("🎮 Запуск voxel-sandbox...")

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.GetServiceName(), cfg.Telemetry.Enabled)
	if err != nil {
		return fmt.Errorf("инициализация телеметрии: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("⚠️ Ошибка остановки телеметрии: %v", err)
		}
	}()

	monitor, err := observability.NewResourceMonitor()
	if err != nil {
		logging.Warn("⚠️ Метрики процесса недоступны: %v", err)
	}
	exporter := observability.NewMetricsExporter(cfg.Metrics.GetAddr(), monitor)
	if err := world.RegisterMetrics(exporter.Registry()); err != nil {
		return fmt.Errorf("регистрация метрик мира: %w", err)
	}
	if err := physics.RegisterMetrics(exporter.Registry()); err != nil {
		return fmt.Errorf("регистрация метрик физики: %w", err)
	}
	exporter.StartHTTP()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exporter.Stop(stopCtx); err != nil {
			logging.Warn("⚠️ Ошибка остановки /metrics: %v", err)
		}
	}()

	width, depth := cfg.World.GetWidth(), cfg.World.GetDepth()
	if err := observability.CheckWorldBudget(width, depth); err != nil {
		if errors.Is(err, observability.ErrWorldTooLarge) {
			return err
		}
		logging.Warn("⚠️ Проверка памяти пропущена: %v", err)
	}

	seed, fixed := cfg.World.GetSeed()
	session := game.NewSession(ctx, game.Options{
		Width:  width,
		Depth:  depth,
		Seed:   seed,
		Random: !fixed,
		Settle: cfg.Simulation.SettleEnabled(),
	})

	return simulate(ctx, session, cfg.Simulation.GetTickRate(), cfg.Simulation.GetTicks())
}

// simulate гоняет сессию с фиксированной частотой по скрипту:
// идём вперёд, периодически прыгаем и поворачиваем.
func simulate(ctx context.Context, s *game.Session, tickRate, ticks int) error {
	dt := float32(1) / float32(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	gameLog := logging.GetGameLogger()
	logging.Info("▶️ Симуляция: %d тиков с частотой %d Гц", ticks, tickRate)

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал завершения на тике %d", i)
			return nil
		case <-ticker.C:
		}

		in, dyaw := scriptedIntent(i, tickRate)
		res, err := s.Tick(ctx, in, dyaw, 0, dt)
		if err != nil {
			return err
		}

		if i%statusEvery == 0 {
			p := s.Agent.Position
			gameLog.Info("🏃 Тик %d: позиция (%.2f, %.2f, %.2f), на земле: %v, осело: %d",
				i, p.X(), p.Y(), p.Z(), s.Agent.Grounded, res.Settled)
		}
	}

	logging.Info("👋 Симуляция завершена, отпечаток мира %x", s.Store.Fingerprint())
	return nil
}

// scriptedIntent возвращает намерение и поворот для тика i
func scriptedIntent(i, tickRate int) (physics.Intent, float32) {
	in := physics.Intent{Forward: true}
	// Прыжок раз в секунду
	if i%tickRate == 0 {
		in.Jump = true
	}
	// Каждые три секунды - плавный поворот на 90° за секунду
	var dyaw float32
	if (i/tickRate)%3 == 2 {
		dyaw = 90 / float32(tickRate)
	}
	return in, dyaw
}
