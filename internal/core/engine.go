// Package core
package core

import (
	"context"
	"sync"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"

	"github.com/google/uuid"
)

type CPUReader interface {
	Collect(ctx context.Context) (domain.CPURecord, error)
}

type MemoryReader interface {
	Collect(ctx context.Context) (domain.MemoryRecord, error)
}

type GPUReader interface {
	Collect(ctx context.Context) ([]domain.GPURecord, error)
	Status(ctx context.Context) domain.GPUStatus
}

type SystemReader interface {
	Collect(ctx context.Context) (domain.SystemRecord, error)
}

type CapabilityChecker interface {
	Refresh() domain.CapabilityState
	State() domain.CapabilityState
}

// Engine assembles one Snapshot per request. CPU, memory, and system records
// are computed fresh on every call; GPU records are served from a cache that
// is replaced wholesale once its age exceeds the TTL. A failing probe costs
// its own fields only, never the snapshot.
type Engine struct {
	log        logger.Logger
	capability CapabilityChecker
	cpu        CPUReader
	memory     MemoryReader
	gpu        GPUReader
	system     SystemReader

	instanceID uuid.UUID
	gpuTTL     time.Duration
	now        func() time.Time

	mu    sync.Mutex
	cache gpuCache
}

type gpuCache struct {
	records []domain.GPURecord
	at      time.Time
}

func NewEngine(
	log logger.Logger,
	capability CapabilityChecker,
	cpu CPUReader,
	memory MemoryReader,
	gpu GPUReader,
	system SystemReader,
	gpuTTL time.Duration,
) *Engine {
	return &Engine{
		log:        log,
		capability: capability,
		cpu:        cpu,
		memory:     memory,
		gpu:        gpu,
		system:     system,
		instanceID: uuid.New(),
		gpuTTL:     gpuTTL,
		now:        time.Now,
	}
}

func (e *Engine) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	state := e.capability.Refresh()

	snap := domain.Snapshot{
		Timestamp: float64(e.now().UnixNano()) / 1e9,
		GPUs:      e.gpus(ctx),
	}

	if rec, err := e.cpu.Collect(ctx); err != nil {
		e.log.Error("engine: cpu probe failed", "error", err)
	} else {
		snap.CPU = rec
	}

	if rec, err := e.memory.Collect(ctx); err != nil {
		e.log.Error("engine: memory probe failed", "error", err)
	} else {
		snap.Memory = rec
	}

	if rec, err := e.system.Collect(ctx); err != nil {
		e.log.Error("engine: system probe failed", "error", err)
	} else {
		snap.System = rec
	}

	snap.System.InstanceID = e.instanceID
	snap.System.MetricsAvailable = state.Available
	snap.System.MetricsStatus = state
	snap.System.GPUStatus = e.gpu.Status(ctx)

	return snap, nil
}

// Status is the lightweight diagnostic view: capability state plus the GPU
// status probe, with none of the slow metric sampling.
func (e *Engine) Status(ctx context.Context) domain.StatusReport {
	return domain.StatusReport{
		InstanceID: e.instanceID,
		Timestamp:  float64(e.now().UnixNano()) / 1e9,
		Metrics:    e.capability.State(),
		GPU:        e.gpu.Status(ctx),
	}
}

// gpus serves the cached sequence while it is fresh. The probe itself runs
// outside the lock; concurrent refreshes race benignly and the last writer
// wins, which is the documented outcome.
func (e *Engine) gpus(ctx context.Context) []domain.GPURecord {
	e.mu.Lock()
	if !e.cache.at.IsZero() && e.now().Sub(e.cache.at) < e.gpuTTL {
		cached := e.cache.records
		e.mu.Unlock()
		return cached
	}
	e.mu.Unlock()

	records, err := e.gpu.Collect(ctx)
	if err != nil {
		e.log.Error("engine: gpu probe failed", "error", err)
	}
	if records == nil {
		records = []domain.GPURecord{}
	}

	e.mu.Lock()
	e.cache = gpuCache{records: records, at: e.now()}
	e.mu.Unlock()

	return records
}
