package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня, при ошибке возвращает INFO
func ParseLevel(name string) LogLevel {
	for l := TRACE; l <= ERROR; l++ {
		if l.String() == name {
			return l
		}
	}
	return INFO
}

// Logger пишет сообщения компонента в консоль и в файл
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
}

var (
	logDirMu sync.RWMutex
	logDir   = "logs"
)

// Глобальный логгер, используемый функциями Info/Debug/...
var defaultLogger = &Logger{
	consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
	minConsoleLevel: INFO,
	minFileLevel:    ERROR,
}

var defaultEnabled bool

// SetLogDir задаёт каталог для файлов логов
func SetLogDir(dir string) {
	logDirMu.Lock()
	defer logDirMu.Unlock()
	if dir != "" {
		logDir = dir
	}
}

// NewLogger создаёт логгер компонента с файлом logs/<component>_<время>.log
func NewLogger(component string) (*Logger, error) {
	logDirMu.RLock()
	dir := logDir
	logDirMu.RUnlock()

	// Создаем директорию для логов
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	// Создаем файл для логов с временной меткой
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	return &Logger{
		component:       component,
		consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
		fileLogger:      log.New(file, "", log.LstdFlags),
		file:            file,
		minConsoleLevel: INFO,
		minFileLevel:    TRACE,
	}, nil
}

// NewWriterLogger создаёт логгер без файла, пишущий в w
func NewWriterLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", 0),
		minConsoleLevel: level,
		minFileLevel:    ERROR,
	}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// SetLevels задаёт минимальные уровни для консоли и файла
func (l *Logger) SetLevels(console, file LogLevel) {
	l.minConsoleLevel = console
	l.minFileLevel = file
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logMessage(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logMessage(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// logMessage внутренняя функция для логирования
func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	if l == nil {
		return
	}

	message := fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, args...))
	if l.component != "" {
		message = fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, fmt.Sprintf(format, args...))
	}

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if l.consoleLogger != nil && level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// InitDefaultLogger инициализирует глобальный логгер компонента
func InitDefaultLogger(component string) error {
	logger, err := NewLogger(component)
	if err != nil {
		return err
	}
	defaultLogger = logger
	defaultEnabled = true
	return nil
}

// SetDefaultLogger подменяет глобальный логгер (удобно в тестах)
func SetDefaultLogger(l *Logger) {
	if l == nil {
		defaultEnabled = false
		return
	}
	defaultLogger = l
	defaultEnabled = true
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	if defaultLogger != nil {
		defaultLogger.Close()
	}
	defaultEnabled = false
}

// Пока InitDefaultLogger не вызван, функции ниже ничего не пишут

func Trace(format string, args ...interface{}) {
	if defaultEnabled {
		defaultLogger.logMessage(TRACE, format, args...)
	}
}

func Debug(format string, args ...interface{}) {
	if defaultEnabled {
		defaultLogger.logMessage(DEBUG, format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if defaultEnabled {
		defaultLogger.logMessage(INFO, format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if defaultEnabled {
		defaultLogger.logMessage(WARN, format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if defaultEnabled {
		defaultLogger.logMessage(ERROR, format, args...)
	}
}

// LogAgentMovement логирует перемещение игрока за тик
func LogAgentMovement(sessionID string, fromX, fromY, fromZ, toX, toY, toZ float32, grounded bool) {
	Trace("Agent %s movement: (%.3f,%.3f,%.3f) -> (%.3f,%.3f,%.3f) grounded:%v",
		sessionID, fromX, fromY, fromZ, toX, toY, toZ, grounded)
}

// LogWorldGenerated логирует итог генерации мира
func LogWorldGenerated(width, depth int, seed int64, voxels int, spawnX, spawnY, spawnZ int) {
	Info("🌍 Мир %dx%d (seed=%d) сгенерирован: %d вокселей, точка появления (%d,%d,%d)",
		width, depth, seed, voxels, spawnX, spawnY, spawnZ)
}
