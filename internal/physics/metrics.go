package physics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var axisNames = [3]string{"x", "y", "z"}

var (
	stepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "physics",
		Name:      "step_duration_seconds",
		Help:      "Длительность одного шага физики игрока.",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
	collisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physics",
		Name:      "collisions_total",
		Help:      "Столкновения с блоками по осям.",
	}, []string{"axis"})
	landings = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physics",
		Name:      "landings_total",
		Help:      "Столкновения при движении вниз по оси Y.",
	})
)

// RegisterMetrics регистрирует метрики пакета в указанном регистре
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{stepDuration, collisions, landings} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
