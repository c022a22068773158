package observability

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Грубая оценка памяти мира: максимальная высота колонки с водой и рельефом
// и средний размер записи хранилища вместе с накладными расходами карты.
const (
	maxColumnHeight = 160
	bytesPerVoxel   = 160
	budgetFraction  = 0.5 // доля доступной памяти, которую может занять мир
)

// ErrWorldTooLarge возвращается, если мир заданного размера не поместится в память.
var ErrWorldTooLarge = errors.New("мир слишком велик для доступной памяти")

// ProcessStats снимок ресурсов процесса.
type ProcessStats struct {
	Uptime      time.Duration
	HeapAllocMB float64
	RSSMB       float64
	CPUPercent  float64
	Goroutines  int
}

// ResourceMonitor читает метрики процесса через gopsutil.
type ResourceMonitor struct {
	startTime time.Time
	proc      *process.Process
}

// NewResourceMonitor создает монитор для текущего процесса
func NewResourceMonitor() (*ResourceMonitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть процесс: %w", err)
	}
	return &ResourceMonitor{startTime: time.Now(), proc: proc}, nil
}

// Snapshot возвращает текущие показатели. Ошибки gopsutil не фатальны:
// соответствующие поля остаются нулевыми.
func (rm *ResourceMonitor) Snapshot() ProcessStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := ProcessStats{
		Uptime:      time.Since(rm.startTime),
		HeapAllocMB: float64(m.HeapAlloc) / 1024 / 1024,
		Goroutines:  runtime.NumGoroutine(),
	}
	if info, err := rm.proc.MemoryInfo(); err == nil && info != nil {
		stats.RSSMB = float64(info.RSS) / 1024 / 1024
	}
	if cpu, err := rm.proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats
}

// EstimateWorldBytes возвращает верхнюю оценку памяти под мир width×depth.
func EstimateWorldBytes(width, depth int) uint64 {
	if width <= 0 || depth <= 0 {
		return 0
	}
	return uint64(width) * uint64(depth) * maxColumnHeight * bytesPerVoxel
}

// CheckWorldBudget проверяет, что мир поместится в доступную память системы.
func CheckWorldBudget(width, depth int) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("не удалось получить сведения о памяти: %w", err)
	}
	return checkBudget(EstimateWorldBytes(width, depth), vm.Available)
}

func checkBudget(need, available uint64) error {
	if float64(need) > float64(available)*budgetFraction {
		return fmt.Errorf("%w: нужно ~%d MB, доступно %d MB",
			ErrWorldTooLarge, need/1024/1024, available/1024/1024)
	}
	return nil
}
