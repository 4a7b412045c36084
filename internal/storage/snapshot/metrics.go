package snapshot

import "gpustat-server/internal/domain"

// MetricsStore holds the most recently pushed snapshot for stream consumers.
type MetricsStore struct {
	Store[domain.Snapshot]
}

func NewMetricsStore() *MetricsStore {
	return &MetricsStore{}
}
