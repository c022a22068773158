package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsExporter обслуживает /metrics и раз в секунду обновляет метрики процесса.
type MetricsExporter struct {
	registry *prometheus.Registry
	monitor  *ResourceMonitor
	server   *http.Server
	quit     chan struct{}
	done     chan struct{}
	started  bool
	stopOnce sync.Once

	heapAlloc prometheus.Gauge
	rss       prometheus.Gauge
	cpu       prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер со своим регистром, но не запускает HTTP-сервер.
// monitor может быть nil - тогда метрики процесса не публикуются.
func NewMetricsExporter(addr string, monitor *ResourceMonitor) *MetricsExporter {
	reg := prometheus.NewRegistry()
	me := &MetricsExporter{
		registry: reg,
		monitor:  monitor,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "heap_alloc_megabytes",
			Help:      "Занятая куча Go, MB.",
		}),
		rss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "resident_megabytes",
			Help:      "Резидентная память процесса, MB.",
		}),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом, %.",
		}),
	}
	reg.MustRegister(me.heapAlloc, me.rss, me.cpu)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	me.server = &http.Server{Addr: addr, Handler: mux}
	return me
}

// Registry возвращает регистр, в котором пакеты регистрируют свои коллекторы.
func (m *MetricsExporter) Registry() prometheus.Registerer {
	return m.registry
}

// StartHTTP запускает HTTP-эндпоинт Prometheus. Метод неблокирующий,
// вызывается не более одного раза.
func (m *MetricsExporter) StartHTTP() {
	m.started = true
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", m.server.Addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	go m.loop()
}

// Stop останавливает обновление метрик и HTTP-сервер.
// Безопасен без StartHTTP и при повторном вызове.
func (m *MetricsExporter) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() {
		close(m.quit)
		if m.started {
			<-m.done
		}
	})
	return m.server.Shutdown(ctx)
}

func (m *MetricsExporter) loop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.collect()
		case <-m.quit:
			return
		}
	}
}

func (m *MetricsExporter) collect() {
	if m.monitor == nil {
		return
	}
	s := m.monitor.Snapshot()
	m.heapAlloc.Set(s.HeapAllocMB)
	m.rss.Set(s.RSSMB)
	m.cpu.Set(s.CPUPercent)
}
