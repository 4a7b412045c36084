// Package cpu
package cpu

import (
	"context"
	"errors"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"

	"github.com/shirou/gopsutil/v3/cpu"
)

func NewCollector(log logger.Logger, libUsable func() bool) *Collector {
	return &Collector{log: log, libUsable: libUsable}
}

// Collect blocks for the sampling window of whichever tier runs: roughly two
// seconds on the library path (overall plus per-core, one second each) and
// 100ms on the /proc/stat path.
func (c *Collector) Collect(ctx context.Context) (domain.CPURecord, error) {
	if c.libUsable() {
		rec, err := c.collectLib()
		if err == nil {
			return rec, nil
		}
		c.log.Warn("cpu: library read failed, using /proc fallbacks", "error", err)
	}

	return c.collectProc(ctx)
}

func (c *Collector) collectLib() (domain.CPURecord, error) {
	physical, err := cpu.Counts(false)
	if err != nil {
		return domain.CPURecord{}, err
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		return domain.CPURecord{}, err
	}

	overall, err := cpu.Percent(time.Second, false)
	if err != nil {
		return domain.CPURecord{}, err
	}

	usage, err := firstSample(overall)
	if err != nil {
		return domain.CPURecord{}, err
	}

	perCore, err := cpu.Percent(time.Second, true)
	if err != nil {
		perCore = []float64{}
	}
	if perCore == nil {
		perCore = []float64{}
	}

	rec := domain.CPURecord{
		Name:          c.libName(),
		CoresPhysical: physical,
		CoresLogical:  logical,
		UsagePercent:  usage,
		UsagePerCore:  perCore,
		Frequency:     libFrequency(),
		Temperature:   sensorTemperature(),
	}

	return rec, nil
}

// firstSample guards the library returning an empty slice with a nil
// error; collectLib must fail on it so the /proc tier runs instead.
func firstSample(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, errors.New("empty usage sample")
	}
	return samples[0], nil
}

func (c *Collector) libName() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return nameFromProc()
	}
	return infos[0].ModelName
}

// libFrequency combines the library's current clock with the cpufreq min/max
// sysfs values, which the library does not expose.
func libFrequency() *domain.CPUFrequency {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return nil
	}

	current := infos[0].Mhz
	if current == 0 {
		current = readFreqMHz("/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq")
	}

	min := readFreqMHz("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_min_freq")
	max := readFreqMHz("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq")

	if current == 0 && min == 0 && max == 0 {
		return nil
	}

	return &domain.CPUFrequency{Current: current, Min: min, Max: max}
}
