package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Goroutines int
	Opponents  int
	Layers     int
	States     int64
	Evaluated  int64
}

type MetricsCollector interface {
	Start(goroutines, opponents int)
	AddLayer(size int)
	AddEvaluated()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	goroutines int
	opponents  int
	layers     atomic.Int32
	states     atomic.Int64
	evaluated  atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines, opponents int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.opponents = opponents
	m.layers.Store(0)
	m.states.Store(0)
	m.evaluated.Store(0)
}

func (m *metricsCollector) AddLayer(size int) {
	m.layers.Add(1)
	m.states.Add(int64(size))
}

func (m *metricsCollector) AddEvaluated() {
	m.evaluated.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Goroutines: m.goroutines,
		Opponents:  m.opponents,
		Layers:     int(m.layers.Load()),
		States:     m.states.Load(),
		Evaluated:  m.evaluated.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(goroutines, opponents int) {}
func (m *noMetricsCollector) AddLayer(size int)                {}
func (m *noMetricsCollector) AddEvaluated()                    {}
func (m *noMetricsCollector) Complete() SearchMetrics          { return SearchMetrics{} }
