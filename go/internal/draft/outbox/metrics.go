package outbox

import (
	"sync"
	"time"
)

// MetricsCollector defines the interface for collecting outbox metrics
type MetricsCollector interface {
	RecordEventProcessed(eventType string, success bool, duration time.Duration)
	RecordOutboxLag(lag int)
	RecordPublishAttempt(eventType string, attempt int, success bool)
	RecordDropped(eventType string)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordEventProcessed(eventType string, success bool, duration time.Duration) {
}
func (n *NoOpMetricsCollector) RecordOutboxLag(lag int)                                          {}
func (n *NoOpMetricsCollector) RecordPublishAttempt(eventType string, attempt int, success bool) {}
func (n *NoOpMetricsCollector) RecordDropped(eventType string)                                   {}

// Stats is a snapshot of the counters kept by MemoryMetrics
type Stats struct {
	Published     uint64    `json:"published"`
	Failed        uint64    `json:"failed"`
	Dropped       uint64    `json:"dropped"`
	Retries       uint64    `json:"retries"`
	Pending       int       `json:"pending"`
	LastPublished time.Time `json:"last_published,omitempty"`
}

// MemoryMetrics counts outbox activity in process for the health endpoint
type MemoryMetrics struct {
	mu    sync.Mutex
	stats Stats
}

func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{}
}

func (m *MemoryMetrics) RecordEventProcessed(eventType string, success bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.stats.Published++
		m.stats.LastPublished = time.Now()
	} else {
		m.stats.Failed++
	}
}

func (m *MemoryMetrics) RecordOutboxLag(lag int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Pending = lag
}

func (m *MemoryMetrics) RecordPublishAttempt(eventType string, attempt int, success bool) {
	if attempt <= 1 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Retries++
}

func (m *MemoryMetrics) RecordDropped(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Dropped++
}

func (m *MemoryMetrics) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
