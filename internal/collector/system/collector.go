// Package system
package system

import (
	"context"
	"os"
	"runtime"
	"strings"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"

	"github.com/shirou/gopsutil/v3/host"
)

type Collector struct {
	log       logger.Logger
	libUsable func() bool
}

func NewCollector(log logger.Logger, libUsable func() bool) *Collector {
	return &Collector{log: log, libUsable: libUsable}
}

// Collect fills the identity portion of a SystemRecord. The capability and
// GPU status fields are stamped in by the snapshot builder.
func (c *Collector) Collect(ctx context.Context) (domain.SystemRecord, error) {
	rec := domain.SystemRecord{
		Platform:          platformName(),
		Architecture:      runtime.GOARCH,
		Hostname:          hostname(),
		LinuxDistribution: distribution(ctx),
		KernelVersion:     kernelVersion(ctx),
	}

	if c.libUsable() {
		if info, err := host.Info(); err == nil {
			rec.PlatformVersion = info.PlatformVersion
			rec.Uptime = float64(info.Uptime)
			if info.Hostname != "" {
				rec.Hostname = info.Hostname
			}
			return rec, nil
		}
		c.log.Warn("system: library read failed, using /proc fallbacks")
	}

	rec.PlatformVersion = platformVersionFromProc()
	rec.Uptime = uptimeSeconds()
	return rec, nil
}

func platformName() string {
	switch runtime.GOOS {
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
