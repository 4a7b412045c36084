package gpu

import (
	"context"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"
)

const (
	listTimeout   = 5 * time.Second
	statusTimeout = 3 * time.Second
	queryTimeout  = 10 * time.Second
)

// runner executes an external tool with a hard timeout, returning stdout.
type runner func(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)

type Collector struct {
	log logger.Logger

	run       runner
	nvmlRead  func() ([]domain.GPURecord, error)
	sysfsRoot string
}

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:       log,
		run:       runCommand,
		nvmlRead:  readNVML,
		sysfsRoot: "/sys/class/drm",
	}
}
