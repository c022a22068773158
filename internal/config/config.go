package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации песочницы.
// Любое незаданное поле берётся из переменной окружения или значения по умолчанию.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Sentry     SentryConfig     `yaml:"sentry"`
}

type WorldConfig struct {
	Width int    `yaml:"width"`
	Depth int    `yaml:"depth"`
	Seed  *int64 `yaml:"seed"` // nil - случайный сид процесса
}

type SimulationConfig struct {
	TickRate int   `yaml:"tick_rate"` // тиков в секунду
	Ticks    int   `yaml:"ticks"`     // сколько тиков прогнать
	Settle   *bool `yaml:"settle"`    // пассивная гравитация блоков
}

type LoggingConfig struct {
	Component string `yaml:"component"`
	Dir       string `yaml:"dir"`
	Level     string `yaml:"level"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

// GetWidth возвращает ширину мира с поддержкой fallback значений
func (w *WorldConfig) GetWidth() int {
	return getIntWithEnvFallback(w.Width, "GAME_WORLD_WIDTH", 64)
}

// GetDepth возвращает глубину мира с поддержкой fallback значений
func (w *WorldConfig) GetDepth() int {
	return getIntWithEnvFallback(w.Depth, "GAME_WORLD_DEPTH", 64)
}

// GetSeed возвращает фиксированный сид, если он задан в конфиге или окружении
func (w *WorldConfig) GetSeed() (int64, bool) {
	if w.Seed != nil {
		return *w.Seed, true
	}
	if envVal := os.Getenv("GAME_WORLD_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed, true
		}
	}
	return 0, false
}

// GetTickRate возвращает частоту симуляции
func (s *SimulationConfig) GetTickRate() int {
	return getIntWithEnvFallback(s.TickRate, "GAME_TICK_RATE", 60)
}

// GetTicks возвращает количество тиков симуляции
func (s *SimulationConfig) GetTicks() int {
	return getIntWithEnvFallback(s.Ticks, "GAME_TICKS", 600)
}

// SettleEnabled сообщает, включена ли пассивная гравитация блоков
func (s *SimulationConfig) SettleEnabled() bool {
	if s.Settle != nil {
		return *s.Settle
	}
	return true
}

// GetComponent возвращает имя компонента для файла логов
func (l *LoggingConfig) GetComponent() string {
	return getStringWithEnvFallback(l.Component, "GAME_LOG_COMPONENT", "sandbox")
}

// GetDir возвращает каталог логов
func (l *LoggingConfig) GetDir() string {
	return getStringWithEnvFallback(l.Dir, "GAME_LOG_DIR", "logs")
}

// GetLevel возвращает минимальный уровень вывода в консоль
func (l *LoggingConfig) GetLevel() string {
	return getStringWithEnvFallback(l.Level, "GAME_LOG_LEVEL", "INFO")
}

// GetAddr возвращает адрес Prometheus эндпоинта
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "GAME_METRICS_ADDR", ":2112")
}

// GetServiceName возвращает имя сервиса для OpenTelemetry
func (t *TelemetryConfig) GetServiceName() string {
	return getStringWithEnvFallback(t.ServiceName, "OTEL_SERVICE_NAME", "voxel-sandbox")
}

// GetDSN возвращает DSN Sentry; пустая строка отключает отправку
func (s *SentryConfig) GetDSN() string {
	return getStringWithEnvFallback(s.DSN, "SENTRY_DSN", "")
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configVal > 0 {
		return configVal
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	// Используем дефолтное значение
	return defaultVal
}

func getStringWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV GAME_CONFIG; если и он не
// задан, возвращает пустой конфиг (все значения - по умолчанию).
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфига %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига %s: %w", path, err)
	}

	return &cfg, nil
}
