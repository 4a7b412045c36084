package cpu

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"gpustat-server/internal/domain"
	"gpustat-server/pkg"
)

const (
	cpuInfoPath  = "/proc/cpuinfo"
	procStatPath = "/proc/stat"

	statSampleGap = 100 * time.Millisecond
	nprocTimeout  = 5 * time.Second
)

func (c *Collector) collectProc(ctx context.Context) (domain.CPURecord, error) {
	usage, err := c.sampleUsage()
	if err != nil {
		c.log.Warn("cpu: /proc/stat sampling failed", "error", err)
		usage = 0
	}

	rec := domain.CPURecord{
		Name:          nameFromProc(),
		CoresPhysical: physicalCoresFromProc(),
		CoresLogical:  logicalCores(ctx),
		UsagePercent:  usage,
		UsagePerCore:  []float64{},
		Frequency:     nil,
		Temperature:   thermalZoneTemperature(),
	}

	return rec, nil
}

func nameFromProc() string {
	data, err := os.ReadFile(cpuInfoPath)
	if err != nil {
		return "Unknown CPU"
	}
	return parseModelName(data)
}

func parseModelName(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "model name") {
			if _, value, ok := strings.Cut(line, ":"); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return "Unknown CPU"
}

func physicalCoresFromProc() int {
	data, err := os.ReadFile(cpuInfoPath)
	if err != nil {
		return 1
	}
	return parsePhysicalCores(data)
}

// parsePhysicalCores counts distinct (physical id, core id) pairs. A table
// without those fields, such as on ARM or inside some VMs, counts as one.
func parsePhysicalCores(data []byte) int {
	pairs := make(map[string]struct{})
	var physical, core string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "physical id"):
			if _, v, ok := strings.Cut(line, ":"); ok {
				physical = strings.TrimSpace(v)
			}
		case strings.HasPrefix(line, "core id"):
			if _, v, ok := strings.Cut(line, ":"); ok {
				core = strings.TrimSpace(v)
				pairs[physical+"/"+core] = struct{}{}
			}
		case line == "":
			physical, core = "", ""
		}
	}

	if len(pairs) == 0 {
		return 1
	}
	return len(pairs)
}

func logicalCores(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, nprocTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "nproc").Output()
	if err != nil {
		return 1
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// sampleUsage takes two cumulative counter snapshots ~100ms apart and
// derives busy time from the idle delta.
func (c *Collector) sampleUsage() (float64, error) {
	first, err := readStatLine()
	if err != nil {
		return 0, err
	}

	time.Sleep(statSampleGap)

	second, err := readStatLine()
	if err != nil {
		return 0, err
	}

	return usageBetween(first, second), nil
}

type cpuTimes struct {
	idle  uint64
	total uint64
}

func readStatLine() (cpuTimes, error) {
	data, err := os.ReadFile(procStatPath)
	if err != nil {
		return cpuTimes{}, err
	}
	return parseStatLine(data)
}

func parseStatLine(data []byte) (cpuTimes, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		var t cpuTimes
		for i, field := range strings.Fields(line)[1:] {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				continue
			}
			t.total += v
			if i == 3 {
				t.idle = v
			}
		}
		return t, nil
	}

	return cpuTimes{}, scanner.Err()
}

// usageBetween clamps to [0, 100] and rounds to one decimal place.
func usageBetween(first, second cpuTimes) float64 {
	totalDelta := int64(second.total) - int64(first.total)
	idleDelta := int64(second.idle) - int64(first.idle)

	if totalDelta <= 0 {
		return 0
	}

	usage := float64(totalDelta-idleDelta) / float64(totalDelta) * 100
	return pkg.Round1(pkg.Clamp(usage, 0, 100))
}
