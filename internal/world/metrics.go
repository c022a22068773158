package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus-метрики генерации и оседания. Регистрируются вызовом
// RegisterMetrics; до регистрации значения просто накапливаются.
var (
	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "world",
		Name:      "generation_duration_seconds",
		Help:      "Длительность генерации мира.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	generatedVoxels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "world",
		Name:      "voxels",
		Help:      "Количество вокселей в последнем сгенерированном мире.",
	})
	treesPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "trees_placed_total",
		Help:      "Общее число посаженных деревьев.",
	})
	spawnFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "spawn_fallbacks_total",
		Help:      "Сколько раз точка появления выбиралась запасным способом (центр мира).",
	})
	settleSteps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "settle_steps_total",
		Help:      "Шаги пассивной гравитации, в которых были падающие блоки.",
	})
	settledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "world",
		Name:      "settled_voxels_total",
		Help:      "Общее число осевших блоков.",
	})
)

// RegisterMetrics регистрирует метрики пакета в указанном регистре
func RegisterMetrics(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		generationDuration, generatedVoxels, treesPlaced,
		spawnFallbacks, settleSteps, settledTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
