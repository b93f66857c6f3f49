package outbox

import (
	"context"
	"time"
)

type HealthStatus struct {
	Healthy       bool      `json:"healthy"`
	Enabled       bool      `json:"enabled"`
	WorkerRunning bool      `json:"worker_running"`
	NATSConnected bool      `json:"nats_connected"`
	LastEventTime time.Time `json:"last_event_time,omitempty"`
	Stats         Stats     `json:"stats"`
	Errors        []string  `json:"errors"`
}

type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

type connectionChecker interface {
	Connected() bool
}

// RelayHealthChecker reports on the worker and its broker connection
type RelayHealthChecker struct {
	worker  *Worker
	conn    connectionChecker
	metrics *MemoryMetrics
}

func NewRelayHealthChecker(worker *Worker, conn connectionChecker, metrics *MemoryMetrics) *RelayHealthChecker {
	return &RelayHealthChecker{worker: worker, conn: conn, metrics: metrics}
}

func (h *RelayHealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy: true,
		Enabled: true,
		Errors:  []string{},
	}

	if h.metrics != nil {
		status.Stats = h.metrics.Stats()
		status.LastEventTime = status.Stats.LastPublished
	}

	status.WorkerRunning = h.worker.Running()
	if !status.WorkerRunning {
		status.Healthy = false
		status.Errors = append(status.Errors, "outbox worker not running")
	}

	if h.conn != nil {
		status.NATSConnected = h.conn.Connected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	return status
}

// DisabledHealthChecker is used when no broker is configured
type DisabledHealthChecker struct{}

func (DisabledHealthChecker) Check(context.Context) HealthStatus {
	return HealthStatus{Healthy: true, Errors: []string{}}
}
