// Package memory
package memory

import (
	"context"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"

	"github.com/shirou/gopsutil/v3/mem"
)

func NewCollector(log logger.Logger, libUsable func() bool) *Collector {
	return &Collector{log: log, libUsable: libUsable}
}

func (c *Collector) Collect(ctx context.Context) (domain.MemoryRecord, error) {
	if c.libUsable() {
		rec, err := collectLib()
		if err == nil {
			return rec, nil
		}
		c.log.Warn("memory: library read failed, using /proc/meminfo", "error", err)
	}

	return c.collectProc()
}

func collectLib() (domain.MemoryRecord, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return domain.MemoryRecord{}, err
	}

	swap, err := mem.SwapMemory()
	if err != nil {
		return domain.MemoryRecord{}, err
	}

	return domain.MemoryRecord{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		Free:        vm.Free,
		Percent:     vm.UsedPercent,
		SwapTotal:   swap.Total,
		SwapUsed:    swap.Used,
		SwapFree:    swap.Free,
		SwapPercent: swap.UsedPercent,
	}, nil
}
