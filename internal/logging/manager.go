package logging

import (
	"fmt"
	"sync"
)

// LoggerManager выдаёт логгеры компонентов (world, physics, game...).
// Новые логгеры получают уровни, заданные через SetLevels.
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger

	consoleLevel LogLevel
	fileLevel    LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = newLoggerManager()
	})
	return globalManager
}

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers:      make(map[string]*Logger),
		consoleLevel: INFO,
		fileLevel:    TRACE,
	}
}

// SetLevels задаёт уровни для всех уже созданных и будущих логгеров компонентов
func (lm *LoggerManager) SetLevels(console, file LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.consoleLevel, lm.fileLevel = console, file
	for _, l := range lm.loggers {
		l.SetLevels(console, file)
	}
}

// GetLogger возвращает логгер компонента, создавая его при первом запросе
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать логгер %s: %w", component, err)
	}
	logger.SetLevels(lm.consoleLevel, lm.fileLevel)
	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный fallback, если файл не открылся
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		lm.mu.Lock()
		defer lm.mu.Unlock()
		return &Logger{
			component:       component,
			consoleLogger:   defaultLogger.consoleLogger,
			minConsoleLevel: lm.consoleLevel,
			minFileLevel:    ERROR,
		}
	}
	return logger
}

// CloseAll закрывает файлы всех логгеров
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("не удалось закрыть логгер %s: %w", component, err)
		}
	}
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// GetGameLogger возвращает логгер игровой сессии
func GetGameLogger() *Logger {
	return GetLoggerManager().MustGetLogger("game")
}
